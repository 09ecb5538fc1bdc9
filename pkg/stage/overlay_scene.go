package stage

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/jetlag/pkg/config"
)

// Control 弹出层/HUD 上的一个交互区域
//
// 范围为场景坐标（米）的轴对齐矩形；W 为 0 表示整个屏幕。
// 每类手势回调都返回是否消费了事件，为 nil 表示不关心该手势。
type Control struct {
	// X, Y 左上角（米）
	X, Y float64
	// W, H 尺寸（米），W 为 0 表示全屏
	W, H float64

	OnTap       func(x, y float64) bool
	OnPanStart  func(x, y float64) bool
	OnPanMove   func(x, y, dx, dy float64) bool
	OnPanStop   func(x, y float64) bool
	OnTouchDown func(x, y float64) bool
	OnTouchUp   func(x, y float64) bool
	OnSwipe     func(fromX, fromY, toX, toY, vx, vy float64) bool
}

// contains 判断场景坐标是否落在控件范围内
func (c *Control) contains(x, y float64) bool {
	if c.W <= 0 {
		return true
	}
	return x >= c.X && x <= c.X+c.W && y >= c.Y && y <= c.Y+c.H
}

// OverlayScene 轻量场景
//
// 用于 HUD 和瞬态的 welcome/win/lose/pause 画面：一组可绘制元素
// 加一组交互控件，没有物理世界。拥有自己的摄像机（固定在原点），
// 手势坐标通过它从屏幕像素换算到场景坐标。
type OverlayScene struct {
	camera      *Camera
	renderables []Renderable
	controls    []*Control
	// fadeColor 非 nil 时在所有元素之前铺满整屏
	fadeColor color.Color
}

// NewOverlayScene 创建空的轻量场景
func NewOverlayScene(cfg *config.Config) *OverlayScene {
	return &OverlayScene{
		camera: NewCamera(cfg.ScreenWidth, cfg.ScreenHeight, cfg.PixelMeterRatio),
	}
}

// Camera 返回场景摄像机
func (o *OverlayScene) Camera() *Camera {
	return o.camera
}

// AddRenderable 加入一个可绘制元素（后加入的绘制在上层）
func (o *OverlayScene) AddRenderable(r Renderable) {
	if r == nil {
		return
	}
	o.renderables = append(o.renderables, r)
}

// AddControl 加入一个交互控件（后加入的优先收到手势）
func (o *OverlayScene) AddControl(c *Control) {
	if c == nil {
		return
	}
	o.controls = append(o.controls, c)
}

// SetFadeColor 设置整屏底色（通常为半透明黑，用于遮住下层画面）
func (o *OverlayScene) SetFadeColor(clr color.Color) {
	o.fadeColor = clr
}

// Draw 按加入顺序绘制所有元素，底色（如有）最先铺满
func (o *OverlayScene) Draw(screen *ebiten.Image, elapsed float64) {
	if o.fadeColor != nil {
		screen.Fill(o.fadeColor)
	}
	for _, r := range o.renderables {
		r.Render(screen, o.camera, elapsed)
	}
}

// Tap 分发点按，返回是否被消费
func (o *OverlayScene) Tap(sx, sy float64) bool {
	x, y := o.camera.ScreenToMeters(sx, sy)
	for i := len(o.controls) - 1; i >= 0; i-- {
		c := o.controls[i]
		if c.OnTap == nil || !c.contains(x, y) {
			continue
		}
		if c.OnTap(x, y) {
			return true
		}
	}
	return false
}

// PanStart 分发拖动开始，返回是否被消费
func (o *OverlayScene) PanStart(sx, sy float64) bool {
	x, y := o.camera.ScreenToMeters(sx, sy)
	for i := len(o.controls) - 1; i >= 0; i-- {
		c := o.controls[i]
		if c.OnPanStart == nil || !c.contains(x, y) {
			continue
		}
		if c.OnPanStart(x, y) {
			return true
		}
	}
	return false
}

// PanMove 分发拖动，位移同样换算成米，返回是否被消费
func (o *OverlayScene) PanMove(sx, sy, sdx, sdy float64) bool {
	x, y := o.camera.ScreenToMeters(sx, sy)
	dx := sdx / o.camera.Ratio()
	dy := sdy / o.camera.Ratio()
	for i := len(o.controls) - 1; i >= 0; i-- {
		c := o.controls[i]
		if c.OnPanMove == nil || !c.contains(x, y) {
			continue
		}
		if c.OnPanMove(x, y, dx, dy) {
			return true
		}
	}
	return false
}

// PanStop 分发拖动结束，返回是否被消费
func (o *OverlayScene) PanStop(sx, sy float64) bool {
	x, y := o.camera.ScreenToMeters(sx, sy)
	for i := len(o.controls) - 1; i >= 0; i-- {
		c := o.controls[i]
		if c.OnPanStop == nil || !c.contains(x, y) {
			continue
		}
		if c.OnPanStop(x, y) {
			return true
		}
	}
	return false
}

// TouchDown 分发指针按下，返回是否被消费
func (o *OverlayScene) TouchDown(sx, sy float64) bool {
	x, y := o.camera.ScreenToMeters(sx, sy)
	for i := len(o.controls) - 1; i >= 0; i-- {
		c := o.controls[i]
		if c.OnTouchDown == nil || !c.contains(x, y) {
			continue
		}
		if c.OnTouchDown(x, y) {
			return true
		}
	}
	return false
}

// TouchUp 分发指针抬起，返回是否被消费
func (o *OverlayScene) TouchUp(sx, sy float64) bool {
	x, y := o.camera.ScreenToMeters(sx, sy)
	for i := len(o.controls) - 1; i >= 0; i-- {
		c := o.controls[i]
		if c.OnTouchUp == nil || !c.contains(x, y) {
			continue
		}
		if c.OnTouchUp(x, y) {
			return true
		}
	}
	return false
}

// Swipe 分发滑动（按起点命中控件），返回是否被消费
func (o *OverlayScene) Swipe(fromSX, fromSY, toSX, toSY, vx, vy float64) bool {
	fromX, fromY := o.camera.ScreenToMeters(fromSX, fromSY)
	toX, toY := o.camera.ScreenToMeters(toSX, toSY)
	for i := len(o.controls) - 1; i >= 0; i-- {
		c := o.controls[i]
		if c.OnSwipe == nil || !c.contains(fromX, fromY) {
			continue
		}
		if c.OnSwipe(fromX, fromY, toX, toY, vx/o.camera.Ratio(), vy/o.camera.Ratio()) {
			return true
		}
	}
	return false
}
