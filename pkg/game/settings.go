package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 全局音频设置
// 不绑定具体游戏或关卡，跨进程持久化。
type Settings struct {
	MusicVolume  float64 `yaml:"musicVolume"`
	SfxVolume    float64 `yaml:"sfxVolume"`
	MusicEnabled bool    `yaml:"musicEnabled"`
	SfxEnabled   bool    `yaml:"sfxEnabled"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		MusicVolume:  0.7,
		SfxVolume:    0.8,
		MusicEnabled: true,
		SfxEnabled:   true,
	}
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "audio"
)

// SettingsManager 设置的加载、保存和内存管理
// gdataManager 为 nil 时进入降级模式：设置只存在于内存中。
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *Settings
}

// NewSettingsManager 创建设置管理器并加载已保存的设置
// 加载失败不是致命错误：退回默认设置并返回 nil error。
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[Settings] Warning: failed to load settings: %v (using defaults)", err)
	}
	return sm, nil
}

// Load 从 gdata 加载设置
// 降级模式或文件不存在时使用默认设置。
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sm.settings = &loaded
	return nil
}

// Save 保存设置到 gdata
// 降级模式下什么都不做，也不报错。
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Get 返回当前设置
func (sm *SettingsManager) Get() *Settings {
	return sm.settings
}

// SetMusicVolume 设置音乐音量（内存中，需 Save 持久化）
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clampVolume(volume)
}

// SetSfxVolume 设置音效音量（内存中，需 Save 持久化）
func (sm *SettingsManager) SetSfxVolume(volume float64) {
	sm.settings.SfxVolume = clampVolume(volume)
}

// SetMusicEnabled 设置音乐开关（内存中，需 Save 持久化）
func (sm *SettingsManager) SetMusicEnabled(enabled bool) {
	sm.settings.MusicEnabled = enabled
}

// SetSfxEnabled 设置音效开关（内存中，需 Save 持久化）
func (sm *SettingsManager) SetSfxEnabled(enabled bool) {
	sm.settings.SfxEnabled = enabled
}

// EffectiveMusicVolume 返回实际生效的音乐音量（关闭时为 0）
func (sm *SettingsManager) EffectiveMusicVolume() float64 {
	if !sm.settings.MusicEnabled {
		return 0
	}
	return sm.settings.MusicVolume
}

// EffectiveSfxVolume 返回实际生效的音效音量（关闭时为 0）
func (sm *SettingsManager) EffectiveSfxVolume() float64 {
	if !sm.settings.SfxEnabled {
		return 0
	}
	return sm.settings.SfxVolume
}

// clampVolume 将音量限制在 0.0 ~ 1.0
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
