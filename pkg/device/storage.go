package device

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Storage 三级键值存储
//
// 关卡事实（level facts）在每次进入新关卡时清空，
// 会话事实（session facts）伴随进程生命周期，
// 游戏事实（game facts）通过 gdata 跨平台持久化。
//
// 架构说明：
//   - 值统一为字符串，复杂数据由调用方自行编码
//   - gdataManager 为 nil 时进入降级模式：游戏事实仅保存在内存中
type Storage struct {
	gdataManager *gdata.Manager
	level        map[string]string
	session      map[string]string
	game         map[string]string
}

// 持久化存储路径常量
const (
	factsObject   = "facts"
	factsProperty = "game"
)

// NewStorage 创建持久化存储
//
// 参数：
//   - appName: gdata 应用标识，决定平台上的存储位置
//
// 返回：
//   - *Storage: 存储实例，已加载之前持久化的游戏事实
//   - error: gdata 打开失败时返回错误
func NewStorage(appName string) (*Storage, error) {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage: %w", err)
	}

	s := &Storage{
		gdataManager: manager,
		level:        make(map[string]string),
		session:      make(map[string]string),
		game:         make(map[string]string),
	}
	if err := s.loadGameFacts(); err != nil {
		// 加载失败不是致命错误，从空的游戏事实开始
		log.Printf("[Storage] Warning: failed to load game facts: %v (starting empty)", err)
	}
	return s, nil
}

// NewMemoryStorage 创建纯内存存储（降级模式，不持久化）
func NewMemoryStorage() *Storage {
	return &Storage{
		level:   make(map[string]string),
		session: make(map[string]string),
		game:    make(map[string]string),
	}
}

// Manager 返回底层的 gdata 管理器（降级模式下为 nil）
// 供需要独立存储对象的上层（如设置管理）复用同一个应用目录。
func (s *Storage) Manager() *gdata.Manager {
	return s.gdataManager
}

// SetLevelFact 记录一条关卡事实
// 关卡事实在 ClearLevelFacts 时全部丢弃。
func (s *Storage) SetLevelFact(key, value string) {
	s.level[key] = value
}

// LevelFact 读取关卡事实，不存在时返回 defaultValue
func (s *Storage) LevelFact(key, defaultValue string) string {
	if v, ok := s.level[key]; ok {
		return v
	}
	return defaultValue
}

// ClearLevelFacts 清空所有关卡事实
// 每次 Stage.OnScreenChange 都会调用。
func (s *Storage) ClearLevelFacts() {
	s.level = make(map[string]string)
}

// SetSessionFact 记录一条会话事实（进程退出后丢失）
func (s *Storage) SetSessionFact(key, value string) {
	s.session[key] = value
}

// SessionFact 读取会话事实，不存在时返回 defaultValue
func (s *Storage) SessionFact(key, defaultValue string) string {
	if v, ok := s.session[key]; ok {
		return v
	}
	return defaultValue
}

// ClearSessionFacts 清空所有会话事实
func (s *Storage) ClearSessionFacts() {
	s.session = make(map[string]string)
}

// SetGameFact 记录一条游戏事实并立即持久化
//
// 持久化失败只记录日志：内存中的值仍然生效，
// 下次写入会再次尝试保存全部游戏事实。
func (s *Storage) SetGameFact(key, value string) {
	s.game[key] = value
	if err := s.saveGameFacts(); err != nil {
		log.Printf("[Storage] Warning: failed to persist game facts: %v", err)
	}
}

// GameFact 读取游戏事实，不存在时返回 defaultValue
func (s *Storage) GameFact(key, defaultValue string) string {
	if v, ok := s.game[key]; ok {
		return v
	}
	return defaultValue
}

// loadGameFacts 从 gdata 加载持久化的游戏事实
func (s *Storage) loadGameFacts() error {
	if s.gdataManager == nil {
		return nil
	}
	if !s.gdataManager.ObjectPropExists(factsObject, factsProperty) {
		return nil
	}
	data, err := s.gdataManager.LoadObjectProp(factsObject, factsProperty)
	if err != nil {
		return fmt.Errorf("failed to load game facts: %w", err)
	}
	facts := make(map[string]string)
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return fmt.Errorf("failed to unmarshal game facts: %w", err)
	}
	s.game = facts
	return nil
}

// saveGameFacts 将全部游戏事实持久化到 gdata
func (s *Storage) saveGameFacts() error {
	if s.gdataManager == nil {
		return nil // 降级模式：不持久化，也不报错
	}
	data, err := yaml.Marshal(s.game)
	if err != nil {
		return fmt.Errorf("failed to marshal game facts: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(factsObject, factsProperty, data); err != nil {
		return fmt.Errorf("failed to save game facts: %w", err)
	}
	return nil
}
