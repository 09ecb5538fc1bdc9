// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 New()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/jetlag/pkg/config"
	"github.com/decker502/jetlag/pkg/device"
	"github.com/decker502/jetlag/pkg/game"
)

// 单帧 delta 上限（秒）
// 窗口失焦或断点恢复后第一帧的真实间隔可能非常大，
// 直接喂给物理和计时器会产生跳变。
const maxFrameDelta = 0.25

// App 游戏应用的核心包装器，实现 ebiten.Game 接口
//
// 每帧以真实墙钟时间推进游戏逻辑（而不是假定固定 60 TPS），
// 并把触摸屏手势翻译后路由进编排器。
type App struct {
	cfg     *config.Config
	dev     *device.Device
	manager *game.Manager
	verbose bool

	lastFrame time.Time
	delta     float64

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// New 创建并初始化游戏应用
//
// 加载设备能力并组装顶层状态机。调用方随后通过 Manager()
// 注册画面构造回调，再调用 Manager().Launch() 进入第一个画面。
func New(cfg *config.Config, verbose bool) (*App, error) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dev, err := device.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize device: %w", err)
	}

	a := &App{
		cfg:     cfg,
		dev:     dev,
		manager: game.NewManager(cfg, dev),
		verbose: verbose,
	}
	log.Printf("[App] Initialized: %dx%d @ %.0f px/m", cfg.ScreenWidth, cfg.ScreenHeight, cfg.PixelMeterRatio)
	return a, nil
}

// Manager 返回顶层状态机
func (a *App) Manager() *game.Manager {
	return a.manager
}

// Device 返回设备能力集合
func (a *App) Device() *device.Device {
	return a.dev
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Update 推进一帧游戏逻辑
//
// 按真实墙钟时间计算 delta，轮询触摸屏手势并路由到编排器，
// 然后推进状态机。
func (a *App) Update() error {
	now := time.Now()
	if a.lastFrame.IsZero() {
		a.delta = 0
	} else {
		a.delta = now.Sub(a.lastFrame).Seconds()
		if a.delta > maxFrameDelta {
			a.delta = maxFrameDelta
		}
	}
	a.lastFrame = now

	a.handleFullscreenToggle()

	st := a.manager.Stage()
	for _, g := range a.dev.Touch.Update(a.delta) {
		switch g.Kind {
		case device.GestureTap:
			st.Tap(g.X, g.Y)
		case device.GesturePanStart:
			st.PanStart(g.X, g.Y)
		case device.GesturePanMove:
			st.PanMove(g.X, g.Y, g.DX, g.DY)
		case device.GesturePanStop:
			st.PanStop(g.X, g.Y)
		case device.GestureTouchDown:
			st.TouchDown(g.X, g.Y)
		case device.GestureTouchUp:
			st.TouchUp(g.X, g.Y)
		case device.GestureSwipe:
			st.Swipe(g.StartX, g.StartY, g.X, g.Y, g.VX, g.VY)
		}
	}

	a.manager.Update(a.delta)
	return nil
}

// handleFullscreenToggle F11 切换全屏（仅桌面端有意义）
// 退出全屏后需要等待几帧窗口管理器才能正确接受新尺寸。
func (a *App) handleFullscreenToggle() {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.ScreenWidth, a.cfg.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}
}

// Draw 渲染一帧
func (a *App) Draw(screen *ebiten.Image) {
	a.manager.Stage().Draw(screen, a.delta)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 控制全屏时的缩放滤波和 letterbox 颜色。
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 独立于实际窗口大小，Ebitengine 自动处理缩放。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.ScreenWidth, a.cfg.ScreenHeight
}
