package stage

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/jetlag/pkg/config"
	"github.com/decker502/jetlag/pkg/physics"
)

// 物理世界固定时间步（秒）
//
// 物理推进不使用真实帧间隔：无论渲染帧率如何，每帧恒定推进 1/45 秒。
// 计分计时器和动画仍然使用真实间隔。这是刻意保留的不对称，
// 改掉会改变手感。
const PhysicsTimestep = 1.0 / 45.0

// WorldScene 游戏世界场景
//
// 持有物理世界、摄像机、角色集合和两个事件队列。
// 事件队列是延迟调用列表：游戏逻辑在上一帧投递，
// 编排层在本帧的固定位置同步执行（物理推进之后、摄像机/渲染之前），
// 队列内部按插入顺序执行，一次性队列先于重复队列。
type WorldScene struct {
	physics  *physics.World
	camera   *Camera
	registry *Registry

	oneTimeEvents []func()
	repeatEvents  []func()
}

// NewWorldScene 创建世界场景
//
// 默认无重力（俯视视角），场景边界等于一屏。
// 横版游戏通过 Physics().SetGravity 和 Camera().SetBounds 调整。
func NewWorldScene(cfg *config.Config) *WorldScene {
	camera := NewCamera(cfg.ScreenWidth, cfg.ScreenHeight, cfg.PixelMeterRatio)
	camera.SetBounds(cfg.MetersWidth(), cfg.MetersHeight())
	return &WorldScene{
		physics:  physics.NewWorld(0, 0),
		camera:   camera,
		registry: NewRegistry(),
	}
}

// Physics 返回物理世界
func (w *WorldScene) Physics() *physics.World {
	return w.physics
}

// Camera 返回世界摄像机
func (w *WorldScene) Camera() *Camera {
	return w.camera
}

// AddActor 把角色加入场景（后加入的绘制在上层）
func (w *WorldScene) AddActor(a Actor) {
	w.registry.Add(a)
}

// ActorCount 返回当前角色数量
func (w *WorldScene) ActorCount() int {
	return w.registry.Len()
}

// AddOneTimeEvent 投递一个一次性事件
// 下一个清理点恰好执行一次，之后从队列消失。无法取消。
func (w *WorldScene) AddOneTimeEvent(fn func()) {
	if fn == nil {
		return
	}
	w.oneTimeEvents = append(w.oneTimeEvents, fn)
}

// AddRepeatEvent 投递一个每帧重复执行的事件
func (w *WorldScene) AddRepeatEvent(fn func()) {
	if fn == nil {
		return
	}
	w.repeatEvents = append(w.repeatEvents, fn)
}

// RunOneTimeEvents 按插入顺序执行并清空一次性事件队列
//
// 执行期间投递的新事件留到下一帧：先把队列摘下来再执行，
// 保证"本帧入队的事件在下一帧执行恰好一次"。
func (w *WorldScene) RunOneTimeEvents() {
	pending := w.oneTimeEvents
	w.oneTimeEvents = nil
	for _, fn := range pending {
		fn()
	}
}

// RunRepeatEvents 按插入顺序执行重复事件队列（不清空）
func (w *WorldScene) RunRepeatEvents() {
	for _, fn := range w.repeatEvents {
		fn()
	}
}

// Advance 按固定时间步推进物理世界
// 碰撞回调（OnCollide）在本调用内同步触发。
func (w *WorldScene) Advance() {
	w.physics.AdvanceWorld(PhysicsTimestep)
}

// HandleTilt 把重力感应读数交给物理世界
func (w *WorldScene) HandleTilt(x, y float64) {
	w.physics.HandleTilt(x, y)
}

// SweepDefunct 清理标记删除的角色并销毁其物理体
func (w *WorldScene) SweepDefunct() {
	w.registry.Sweep()
}

// AdjustCamera 重新计算摄像机焦点
func (w *WorldScene) AdjustCamera() {
	w.camera.Update()
}

// Tap 把点按（屏幕像素坐标）分发给命中的最上层角色
// 返回是否有角色消费了事件。
func (w *WorldScene) Tap(sx, sy float64) bool {
	x, y := w.camera.ScreenToMeters(sx, sy)
	return w.registry.Tap(x, y)
}

// Draw 按加入顺序绘制所有角色
func (w *WorldScene) Draw(screen *ebiten.Image, elapsed float64) {
	w.registry.ForEach(func(a Actor) {
		a.Draw(screen, w.camera, elapsed)
	})
}
