// Package game 提供关卡推进与全局设置
//
// Manager 是游戏的顶层状态机：splash、选关、帮助、游玩四种模式，
// 始终复用同一个 Stage 实例，模式切换时通过 OnScreenChange 显式重置。
package game

import (
	"log"
	"strconv"

	"github.com/decker502/jetlag/pkg/config"
	"github.com/decker502/jetlag/pkg/device"
	"github.com/decker502/jetlag/pkg/stage"
)

// Mode 顶层游戏模式
type Mode int

const (
	// ModeSplash 开场画面
	ModeSplash Mode = iota
	// ModeChooser 选关画面
	ModeChooser
	// ModeHelp 帮助画面
	ModeHelp
	// ModePlay 游玩中
	ModePlay
)

// Builder 画面构造回调
// index 的含义取决于模式：关卡编号、帮助页编号或选关页编号（都从 1 开始）。
type Builder func(index int, s *stage.Stage)

// 已解锁关卡的持久化键
const unlockedLevelFact = "unlockedLevel"

// Manager 顶层状态机
//
// 实现 stage.Sequencer：关卡胜负时由 Stage 回调 AdvanceLevel/RepeatLevel。
// 游玩模式下推进关卡，帮助模式下翻页。
type Manager struct {
	cfg      *config.Config
	dev      *device.Device
	stage    *stage.Stage
	settings *SettingsManager

	mode      Mode
	level     int
	helpIndex int

	splashBuilder  Builder
	chooserBuilder Builder
	helpBuilder    Builder
	levelBuilder   Builder
}

// NewManager 创建顶层状态机
// Stage 在这里创建并绑定，整个进程生命周期内只有这一个实例。
func NewManager(cfg *config.Config, dev *device.Device) *Manager {
	m := &Manager{
		cfg:   cfg,
		dev:   dev,
		stage: stage.NewStage(cfg, dev),
		mode:  ModeSplash,
		level: 1,
	}
	m.stage.SetSequencer(m)

	settings, err := NewSettingsManager(dev.Storage.Manager())
	if err != nil {
		log.Printf("[Manager] Warning: settings unavailable: %v", err)
	}
	m.settings = settings
	return m
}

// Stage 返回唯一的编排器实例
func (m *Manager) Stage() *stage.Stage {
	return m.stage
}

// Settings 返回设置管理器
func (m *Manager) Settings() *SettingsManager {
	return m.settings
}

// Mode 返回当前模式
func (m *Manager) Mode() Mode {
	return m.mode
}

// LevelIndex 返回当前关卡编号（从 1 开始）
func (m *Manager) LevelIndex() int {
	return m.level
}

// HelpIndex 返回当前帮助页编号（从 1 开始）
func (m *Manager) HelpIndex() int {
	return m.helpIndex
}

// SetSplashBuilder 设置开场画面构造回调
func (m *Manager) SetSplashBuilder(b Builder) {
	m.splashBuilder = b
}

// SetChooserBuilder 设置选关画面构造回调
func (m *Manager) SetChooserBuilder(b Builder) {
	m.chooserBuilder = b
}

// SetHelpBuilder 设置帮助画面构造回调
func (m *Manager) SetHelpBuilder(b Builder) {
	m.helpBuilder = b
}

// SetLevelBuilder 设置关卡构造回调
func (m *Manager) SetLevelBuilder(b Builder) {
	m.levelBuilder = b
}

// Launch 进入第一个画面
// 有开场画面时从开场开始，否则直接进入第一关。
func (m *Manager) Launch() {
	if m.splashBuilder != nil {
		m.DoSplash()
		return
	}
	m.DoPlay(1)
}

// DoSplash 切换到开场画面
func (m *Manager) DoSplash() {
	if m.splashBuilder == nil {
		log.Printf("[Manager] Warning: no splash builder registered")
		return
	}
	m.mode = ModeSplash
	m.stage.OnScreenChange()
	m.splashBuilder(1, m.stage)
}

// DoChooser 切换到选关画面
// index 为选关页编号；没有注册选关画面时退回开场画面。
func (m *Manager) DoChooser(index int) {
	if m.chooserBuilder == nil {
		m.DoSplash()
		return
	}
	if index < 1 {
		index = 1
	}
	m.mode = ModeChooser
	m.stage.OnScreenChange()
	m.chooserBuilder(index, m.stage)
}

// DoHelp 切换到第 index 页帮助画面
func (m *Manager) DoHelp(index int) {
	if m.helpBuilder == nil {
		log.Printf("[Manager] Warning: no help builder registered")
		return
	}
	if index < 1 || index > m.cfg.NumHelpScenes {
		index = 1
	}
	m.mode = ModeHelp
	m.helpIndex = index
	m.stage.OnScreenChange()
	m.helpBuilder(index, m.stage)
}

// DoPlay 进入第 level 关
// 关卡编号被限制在 [1, NumLevels]，同时推进解锁进度。
func (m *Manager) DoPlay(level int) {
	if m.levelBuilder == nil {
		log.Printf("[Manager] Warning: no level builder registered")
		return
	}
	if level < 1 {
		level = 1
	}
	if m.cfg.NumLevels > 0 && level > m.cfg.NumLevels {
		level = m.cfg.NumLevels
	}
	m.mode = ModePlay
	m.level = level
	m.unlock(level)
	m.stage.OnScreenChange()
	m.levelBuilder(level, m.stage)
}

// UnlockedLevel 返回已解锁的最大关卡编号
func (m *Manager) UnlockedLevel() int {
	v := m.dev.Storage.GameFact(unlockedLevelFact, "1")
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// unlock 推进解锁进度（只增不减）
func (m *Manager) unlock(level int) {
	if level > m.UnlockedLevel() {
		m.dev.Storage.SetGameFact(unlockedLevelFact, strconv.Itoa(level))
	}
}

// AdvanceLevel 进入下一个画面（stage.Sequencer）
//
// 游玩模式下进入下一关，最后一关之后回到选关画面；
// 帮助模式下翻到下一页，最后一页之后回到开场画面。
func (m *Manager) AdvanceLevel() {
	switch m.mode {
	case ModePlay:
		if m.cfg.NumLevels > 0 && m.level >= m.cfg.NumLevels {
			m.DoChooser(1)
			return
		}
		m.DoPlay(m.level + 1)
	case ModeHelp:
		if m.helpIndex >= m.cfg.NumHelpScenes {
			m.DoSplash()
			return
		}
		m.DoHelp(m.helpIndex + 1)
	default:
		log.Printf("[Manager] Warning: AdvanceLevel in mode %d ignored", m.mode)
	}
}

// RepeatLevel 重玩当前关（stage.Sequencer）
func (m *Manager) RepeatLevel() {
	if m.mode != ModePlay {
		log.Printf("[Manager] Warning: RepeatLevel in mode %d ignored", m.mode)
		return
	}
	m.DoPlay(m.level)
}

// Update 推进一帧
func (m *Manager) Update(delta float64) {
	m.stage.Update(delta)
}
