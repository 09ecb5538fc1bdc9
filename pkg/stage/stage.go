// Package stage 实现逐帧编排核心
//
// Stage 是会话级聚合：同一时刻恰好持有一个世界场景和一个 HUD，
// 以及至多一个瞬态弹出层（welcome/win/lose/pause）。每帧的推进顺序、
// 弹出层生命周期、手势路由和音乐状态机都在这里。
package stage

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/jetlag/pkg/config"
	"github.com/decker502/jetlag/pkg/device"
)

// Sequencer 关卡推进器（外部协作者）
// 关卡结束时由 Stage 调用，通常由 game.Manager 实现。
// Stage 只保留反向引用，从不拥有它。
type Sequencer interface {
	// AdvanceLevel 进入下一关
	AdvanceLevel()
	// RepeatLevel 重玩当前关
	RepeatLevel()
}

// DefaultBackgroundColor 默认帧背景色（不透明白）
const DefaultBackgroundColor uint32 = 0xFFFFFF

// Stage 逐帧编排器
//
// 状态机：AwaitingScreenChange → Active → (TransientOverlay)* → Active → ...
// OnScreenChange 之前调用 Update/Draw/手势方法属于前置条件违规，
// 会被防御性拦截并记录日志。
//
// 弹出层存在期间，所有手势和渲染流量只进弹出层，世界和 HUD 完全挂起
// （物理不推进，计时器不走，音乐不启动）。
type Stage struct {
	cfg       *config.Config
	dev       *device.Device
	sequencer Sequencer

	world      *WorldScene
	hud        *OverlayScene
	overlay    *OverlayScene
	background *ParallaxScene
	foreground *ParallaxScene
	score      *Score

	// 一次性场景构造回调：第一次触发即被消费（置 nil）
	welcomeBuilder OverlayBuilder
	winBuilder     OverlayBuilder
	loseBuilder    OverlayBuilder
	pauseBuilder   OverlayBuilder

	// gestureHudFirst 决定点按在 HUD 和世界之间的优先顺序
	gestureHudFirst bool

	// backgroundColor 24 位 RGB 帧背景色
	backgroundColor uint32

	music        device.Sound
	musicPlaying bool
}

// NewStage 创建编排器
//
// 返回的 Stage 处于 AwaitingScreenChange 状态：
// 必须先 OnScreenChange 再使用其他方法。
func NewStage(cfg *config.Config, dev *device.Device) *Stage {
	return &Stage{
		cfg:             cfg,
		dev:             dev,
		score:           NewScore(),
		gestureHudFirst: true,
		backgroundColor: DefaultBackgroundColor,
	}
}

// SetSequencer 设置关卡推进器（反向引用）
func (s *Stage) SetSequencer(seq Sequencer) {
	s.sequencer = seq
}

// OnScreenChange 进入新关卡前的整体重置
//
// 停止并清除音乐、清空关卡事实、重置计分状态和所有一次性构造回调，
// 然后重建世界场景、HUD 和前后景。进入新关卡后、调用任何其他
// Stage 方法之前必须先调用本方法。
func (s *Stage) OnScreenChange() {
	s.StopMusic()
	s.music = nil

	s.dev.Storage.ClearLevelFacts()
	s.score.Reset()

	s.welcomeBuilder = nil
	s.winBuilder = nil
	s.loseBuilder = nil
	s.pauseBuilder = nil
	s.overlay = nil
	s.gestureHudFirst = true
	s.backgroundColor = DefaultBackgroundColor

	s.world = NewWorldScene(s.cfg)
	s.hud = NewOverlayScene(s.cfg)
	s.background = NewParallaxScene()
	s.foreground = NewParallaxScene()
}

// World 返回当前世界场景（OnScreenChange 之前为 nil）
func (s *Stage) World() *WorldScene {
	return s.world
}

// HUD 返回当前 HUD 场景
func (s *Stage) HUD() *OverlayScene {
	return s.hud
}

// Background 返回背景视差场景
func (s *Stage) Background() *ParallaxScene {
	return s.background
}

// Foreground 返回前景视差场景
func (s *Stage) Foreground() *ParallaxScene {
	return s.foreground
}

// Score 返回计分状态
func (s *Stage) Score() *Score {
	return s.score
}

// Device 返回设备能力集合
func (s *Stage) Device() *device.Device {
	return s.dev
}

// Config 返回框架配置
func (s *Stage) Config() *config.Config {
	return s.cfg
}

// HasOverlay 返回当前是否有瞬态弹出层
func (s *Stage) HasOverlay() bool {
	return s.overlay != nil
}

// SetBackgroundColor 设置 24 位 RGB 帧背景色
func (s *Stage) SetBackgroundColor(rgb uint32) {
	s.backgroundColor = rgb & 0xFFFFFF
}

// SetGestureHudFirst 设置点按路由优先级
// true（默认）时 HUD 先于世界拿到点按。
func (s *Stage) SetGestureHudFirst(hudFirst bool) {
	s.gestureHudFirst = hudFirst
}

// SetWelcomeSceneBuilder 设置开场画面构造回调（一次性）
func (s *Stage) SetWelcomeSceneBuilder(b OverlayBuilder) {
	s.welcomeBuilder = b
}

// SetWinSceneBuilder 设置胜利画面构造回调（一次性）
func (s *Stage) SetWinSceneBuilder(b OverlayBuilder) {
	s.winBuilder = b
}

// SetLoseSceneBuilder 设置失败画面构造回调（一次性）
func (s *Stage) SetLoseSceneBuilder(b OverlayBuilder) {
	s.loseBuilder = b
}

// SetPauseSceneBuilder 设置暂停画面构造回调（一次性）
// 下一帧开头即会弹出，通常由 HUD 上的暂停按钮设置。
func (s *Stage) SetPauseSceneBuilder(b OverlayBuilder) {
	s.pauseBuilder = b
}

// installOverlay 构造并激活一个瞬态弹出层
func (s *Stage) installOverlay(b OverlayBuilder) {
	overlay := NewOverlayScene(s.cfg)
	b(&OverlayAPI{overlay: overlay, stage: s})
	s.overlay = overlay
}

// clearOverlay 关闭当前弹出层
func (s *Stage) clearOverlay() {
	s.overlay = nil
}

// Update 推进一帧游戏逻辑
//
// 顺序固定：
//  1. 待处理的 welcome 构造回调 → 弹出并消费
//  2. 否则待处理的 pause 构造回调 → 弹出并消费
//  3. 有弹出层 → 到此为止（世界完全挂起）
//  4. 确保音乐播放；按真实间隔推进胜负倒计时和秒表
//     （倒计时跌破 0 的瞬间结束关卡，本帧提前返回）；
//     倾斜输入 → 固定步长物理推进 → 一次性事件队列（只执行一次）→
//     重复事件队列 → 延迟删除清理 → 摄像机调整
//
// 参数：
//   - delta: 距上一帧的真实时间（秒）
func (s *Stage) Update(delta float64) {
	if s.welcomeBuilder != nil {
		b := s.welcomeBuilder
		s.welcomeBuilder = nil
		s.installOverlay(b)
	} else if s.pauseBuilder != nil {
		b := s.pauseBuilder
		s.pauseBuilder = nil
		s.installOverlay(b)
	}

	if s.overlay != nil {
		return
	}

	if s.world == nil {
		log.Printf("[Stage] Warning: Update called before OnScreenChange")
		return
	}

	s.PlayMusic()

	if s.score.TickLose(delta) {
		s.EndLevel(false)
		return
	}
	if s.score.TickWin(delta) {
		s.EndLevel(true)
		return
	}
	s.score.TickStopwatch(delta)

	ax, ay := s.dev.Accelerometer.Get()
	s.world.HandleTilt(ax, ay)

	s.world.Advance()
	s.world.RunOneTimeEvents()
	s.world.RunRepeatEvents()
	s.world.SweepDefunct()
	s.world.AdjustCamera()
}

// Draw 渲染一帧
//
// 有弹出层时只画弹出层。否则按固定顺序：帧背景色 → 背景视差 →
// 世界 → 前景视差 → HUD。
//
// 参数：
//   - elapsed: 距上一帧的真实时间（秒），传给各层做动画
func (s *Stage) Draw(screen *ebiten.Image, elapsed float64) {
	if screen == nil {
		return
	}
	if s.overlay != nil {
		s.overlay.Draw(screen, elapsed)
		return
	}
	if s.world == nil {
		log.Printf("[Stage] Warning: Draw called before OnScreenChange")
		return
	}

	screen.Fill(rgbColor(s.backgroundColor))
	s.background.Draw(screen, s.world.Camera(), elapsed)
	s.world.Draw(screen, elapsed)
	s.foreground.Draw(screen, s.world.Camera(), elapsed)
	s.hud.Draw(screen, elapsed)
}

// EndLevel 结束当前关卡
//
// 胜利时：如果设置了胜利画面构造回调，弹出它（一次性消费）；
// 否则直接让推进器进入下一关。失败时与失败画面/重玩对称。
func (s *Stage) EndLevel(win bool) {
	if win {
		if s.winBuilder != nil {
			b := s.winBuilder
			s.winBuilder = nil
			s.installOverlay(b)
			return
		}
		s.advance()
		return
	}
	if s.loseBuilder != nil {
		b := s.loseBuilder
		s.loseBuilder = nil
		s.installOverlay(b)
		return
	}
	s.repeat()
}

// advance 委托推进器进入下一关
func (s *Stage) advance() {
	if s.sequencer == nil {
		log.Printf("[Stage] Warning: no sequencer set, cannot advance level")
		return
	}
	s.sequencer.AdvanceLevel()
}

// repeat 委托推进器重玩当前关
func (s *Stage) repeat() {
	if s.sequencer == nil {
		log.Printf("[Stage] Warning: no sequencer set, cannot repeat level")
		return
	}
	s.sequencer.RepeatLevel()
}

// Tap 路由一次点按（屏幕像素坐标）
//
// 弹出层存在时独占事件。否则按 gestureHudFirst 决定的顺序尝试
// HUD 和世界：第一个候选消费了事件，第二个就不会被调用。
func (s *Stage) Tap(sx, sy float64) bool {
	if s.overlay != nil {
		return s.overlay.Tap(sx, sy)
	}
	if s.world == nil {
		return false
	}
	if s.gestureHudFirst {
		if s.hud.Tap(sx, sy) {
			return true
		}
		return s.world.Tap(sx, sy)
	}
	if s.world.Tap(sx, sy) {
		return true
	}
	return s.hud.Tap(sx, sy)
}

// PanStart 路由拖动开始
// 没有弹出层时拖动只进 HUD，世界从不直接收到拖动。
func (s *Stage) PanStart(sx, sy float64) bool {
	if s.overlay != nil {
		return s.overlay.PanStart(sx, sy)
	}
	if s.hud == nil {
		return false
	}
	return s.hud.PanStart(sx, sy)
}

// PanMove 路由拖动
func (s *Stage) PanMove(sx, sy, dx, dy float64) bool {
	if s.overlay != nil {
		return s.overlay.PanMove(sx, sy, dx, dy)
	}
	if s.hud == nil {
		return false
	}
	return s.hud.PanMove(sx, sy, dx, dy)
}

// PanStop 路由拖动结束
func (s *Stage) PanStop(sx, sy float64) bool {
	if s.overlay != nil {
		return s.overlay.PanStop(sx, sy)
	}
	if s.hud == nil {
		return false
	}
	return s.hud.PanStop(sx, sy)
}

// TouchDown 路由指针按下（只进弹出层或 HUD）
func (s *Stage) TouchDown(sx, sy float64) bool {
	if s.overlay != nil {
		return s.overlay.TouchDown(sx, sy)
	}
	if s.hud == nil {
		return false
	}
	return s.hud.TouchDown(sx, sy)
}

// TouchUp 路由指针抬起（只进弹出层或 HUD）
func (s *Stage) TouchUp(sx, sy float64) bool {
	if s.overlay != nil {
		return s.overlay.TouchUp(sx, sy)
	}
	if s.hud == nil {
		return false
	}
	return s.hud.TouchUp(sx, sy)
}

// Swipe 路由滑动（永远只进弹出层或 HUD）
func (s *Stage) Swipe(fromSX, fromSY, toSX, toSY, vx, vy float64) bool {
	if s.overlay != nil {
		return s.overlay.Swipe(fromSX, fromSY, toSX, toSY, vx, vy)
	}
	if s.hud == nil {
		return false
	}
	return s.hud.Swipe(fromSX, fromSY, toSX, toSY, vx, vy)
}

// SetMusic 设置本关背景音乐（不自动播放）
func (s *Stage) SetMusic(snd device.Sound) {
	s.music = snd
}

// PlayMusic 开始播放背景音乐
// 幂等：已在播放时重复调用不会产生第二次 Play。
func (s *Stage) PlayMusic() {
	if s.musicPlaying || s.music == nil {
		return
	}
	s.musicPlaying = true
	s.music.Play()
}

// PauseMusic 暂停背景音乐
// 幂等：未在播放时是空操作。
func (s *Stage) PauseMusic() {
	if !s.musicPlaying {
		return
	}
	s.musicPlaying = false
	s.music.Pause()
}

// StopMusic 停止背景音乐并回到开头
// 幂等：已停止时是空操作（不会调用底层 Stop）。
func (s *Stage) StopMusic() {
	if !s.musicPlaying {
		return
	}
	s.musicPlaying = false
	s.music.Stop()
}

// MusicPlaying 返回背景音乐是否在播放
func (s *Stage) MusicPlaying() bool {
	return s.musicPlaying
}

// rgbColor 把 24 位 RGB 转为不透明颜色
func rgbColor(rgb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 0xFF,
	}
}
