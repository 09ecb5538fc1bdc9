package device

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GestureKind 手势类型
type GestureKind int

const (
	// GestureTap 快速点按（按下和抬起都在很小的范围和时间内）
	GestureTap GestureKind = iota
	// GestureSwipe 快速滑动（抬起时位移和速度超过阈值）
	GestureSwipe
	// GesturePanStart 拖动开始（按住并移出容差范围）
	GesturePanStart
	// GesturePanMove 拖动中（每帧一次，携带相对上一帧的位移）
	GesturePanMove
	// GesturePanStop 拖动结束
	GesturePanStop
	// GestureTouchDown 指针按下
	GestureTouchDown
	// GestureTouchUp 指针抬起
	GestureTouchUp
)

// Gesture 一次手势事件
// 坐标为逻辑屏幕像素。Swipe 额外携带起点和速度。
type Gesture struct {
	Kind GestureKind
	// X, Y 事件位置
	X, Y float64
	// DX, DY PanMove 相对上一帧的位移
	DX, DY float64
	// StartX, StartY Swipe 的起点
	StartX, StartY float64
	// VX, VY Swipe 的速度（像素/秒）
	VX, VY float64
}

// 手势识别阈值
const (
	// tapMaxSeconds 点按的最长持续时间
	tapMaxSeconds = 0.30
	// panSlopPixels 移动超过此距离视为拖动而不是点按
	panSlopPixels = 12.0
	// swipeMinPixels 滑动的最小总位移
	swipeMinPixels = 120.0
	// swipeMaxSeconds 滑动的最长持续时间
	swipeMaxSeconds = 0.40
)

// TouchScreen 把鼠标和触摸输入统一成手势事件流
//
// 每帧调用一次 Update，返回本帧识别出的手势（可能为空）。
// 同时支持触摸（移动设备）和鼠标左键（桌面设备），优先触摸。
type TouchScreen struct {
	pressed        bool
	panning        bool
	startX, startY float64
	lastX, lastY   float64
	heldSeconds    float64
}

// NewTouchScreen 创建手势识别器
func NewTouchScreen() *TouchScreen {
	return &TouchScreen{}
}

// Update 采样当前输入状态并返回本帧的手势事件
//
// 参数：
//   - delta: 距上一帧的时间（秒），用于点按/滑动的时间判定
func (t *TouchScreen) Update(delta float64) []Gesture {
	pressed, x, y := pointerState()
	return t.step(delta, pressed, float64(x), float64(y))
}

// step 手势状态机的单步推进
// 与 Ebitengine 输入解耦，便于测试中直接喂入指针序列。
func (t *TouchScreen) step(delta float64, pressed bool, x, y float64) []Gesture {
	var out []Gesture

	switch {
	case pressed && !t.pressed:
		// 按下
		t.pressed = true
		t.panning = false
		t.startX, t.startY = x, y
		t.lastX, t.lastY = x, y
		t.heldSeconds = 0
		out = append(out, Gesture{Kind: GestureTouchDown, X: x, Y: y})

	case pressed && t.pressed:
		// 按住：超出容差后进入拖动状态
		t.heldSeconds += delta
		if !t.panning && dist(t.startX, t.startY, x, y) > panSlopPixels {
			t.panning = true
			out = append(out, Gesture{Kind: GesturePanStart, X: x, Y: y})
		} else if t.panning && (x != t.lastX || y != t.lastY) {
			out = append(out, Gesture{
				Kind: GesturePanMove,
				X:    x, Y: y,
				DX: x - t.lastX, DY: y - t.lastY,
			})
		}
		t.lastX, t.lastY = x, y

	case !pressed && t.pressed:
		// 抬起：抬起瞬间指针位置不可靠（触摸已结束），用最后记录的位置
		t.pressed = false
		t.heldSeconds += delta
		x, y = t.lastX, t.lastY
		out = append(out, Gesture{Kind: GestureTouchUp, X: x, Y: y})

		if t.panning {
			out = append(out, Gesture{Kind: GesturePanStop, X: x, Y: y})
		}

		total := dist(t.startX, t.startY, x, y)
		held := t.heldSeconds
		switch {
		case total >= swipeMinPixels && held <= swipeMaxSeconds && held > 0:
			out = append(out, Gesture{
				Kind: GestureSwipe,
				X:    x, Y: y,
				StartX: t.startX, StartY: t.startY,
				VX: (x - t.startX) / held, VY: (y - t.startY) / held,
			})
		case !t.panning && held <= tapMaxSeconds:
			out = append(out, Gesture{Kind: GestureTap, X: x, Y: y})
		}
		t.panning = false
	}

	return out
}

// dist 两点间的欧氏距离
func dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// pointerState 读取当前指针状态，优先触摸输入
// 触摸抬起的那一帧 ebiten.TouchPosition 返回 (0,0)，
// 状态机用 lastX/lastY 兜底，这里只需报告 pressed=false。
func pointerState() (pressed bool, x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// inpututil 仅用于区分"刚刚抬起"场景下的坐标来源
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return false, 0, 0
	}

	x, y = ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y
}
