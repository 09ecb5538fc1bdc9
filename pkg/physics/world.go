// Package physics 包装 Box2D 物理世界
//
// 框架把接触求解、宽窄相交检测全部交给 Box2D；本包只负责：
//   - 以固定迭代次数推进世界
//   - 把 BeginContact/EndContact 翻译成 actor 的 OnCollide 回调
//   - 倾斜输入到力/速度的换算
//
// 世界坐标以米为单位，像素换算由场景的 Camera 处理。
package physics

import (
	"github.com/ByteArena/box2d"
)

// 接触求解迭代次数，Box2D 手册推荐值
const (
	velocityIterations = 8
	positionIterations = 3
)

// Contact 一次碰撞接触
// 直接暴露 Box2D 的接触接口：回调方可以读取触碰状态，
// 或调用 SetEnabled(false) 让本次接触不产生物理响应（单向平台等）。
type Contact = box2d.B2ContactInterface

// CollisionHandler 碰撞回调能力
//
// 物理体通过 UserData 关联一个 CollisionHandler，接触开始时双方的
// OnCollide 都会被调用一次。回调在 Step 内部执行，此时世界被锁定：
// 回调中不得创建/销毁物理体，只能改标志、记分或向事件队列投递。
type CollisionHandler interface {
	OnCollide(other CollisionHandler, contact Contact)
}

// BodyKind 物理体类型
type BodyKind int

const (
	// StaticBody 静态体（地形、墙壁）
	StaticBody BodyKind = iota
	// KinematicBody 运动学体（按速度移动，不受力）
	KinematicBody
	// DynamicBody 动力学体（完整物理模拟）
	DynamicBody
)

// FixtureOpts 碰撞体参数
type FixtureOpts struct {
	Density     float64
	Friction    float64
	Restitution float64
	// Sensor 为 true 时只产生接触回调，不产生碰撞响应
	Sensor bool
}

// World Box2D 世界的包装
type World struct {
	b2         box2d.B2World
	tiltBodies []*Body
	// tiltAsVelocity 为 true 时倾斜读数直接作为速度，否则作为力
	tiltAsVelocity bool
	// tiltMultiplier 倾斜读数的放大系数
	tiltMultiplier float64
}

// NewWorld 创建物理世界
//
// 参数：
//   - gravityX, gravityY: 重力加速度（米/秒²），俯视视角游戏用 (0, 0)
func NewWorld(gravityX, gravityY float64) *World {
	w := &World{
		b2:             box2d.MakeB2World(box2d.MakeB2Vec2(gravityX, gravityY)),
		tiltMultiplier: 1.0,
	}
	w.b2.SetContactListener(&contactListener{})
	return w
}

// AdvanceWorld 按固定时间步推进物理世界
//
// 接触回调（OnCollide）在本调用内部同步触发。
//
// 参数：
//   - timestep: 物理时间步（秒），编排层固定传 1/45
func (w *World) AdvanceWorld(timestep float64) {
	w.b2.Step(timestep, velocityIterations, positionIterations)
}

// SetGravity 修改重力加速度
func (w *World) SetGravity(x, y float64) {
	w.b2.SetGravity(box2d.MakeB2Vec2(x, y))
}

// CreateBoxBody 创建矩形物理体
//
// 参数：
//   - kind: 物理体类型
//   - cx, cy: 中心位置（米）
//   - width, height: 尺寸（米）
//   - opts: 碰撞体参数
func (w *World) CreateBoxBody(kind BodyKind, cx, cy, width, height float64, opts FixtureOpts) *Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = bodyType(kind)
	bd.Position.Set(cx, cy)
	bd.FixedRotation = false
	b2body := w.b2.CreateBody(&bd)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(width/2, height/2)

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	applyOpts(&fd, opts)
	b2body.CreateFixtureFromDef(&fd)

	return &Body{world: w, b2: b2body, width: width, height: height}
}

// CreateCircleBody 创建圆形物理体
//
// 参数：
//   - cx, cy: 圆心位置（米）
//   - radius: 半径（米）
func (w *World) CreateCircleBody(kind BodyKind, cx, cy, radius float64, opts FixtureOpts) *Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = bodyType(kind)
	bd.Position.Set(cx, cy)
	b2body := w.b2.CreateBody(&bd)

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = radius

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	applyOpts(&fd, opts)
	b2body.CreateFixtureFromDef(&fd)

	return &Body{world: w, b2: b2body, width: radius * 2, height: radius * 2}
}

// DestroyBody 销毁物理体
// 不能在接触回调（Step 期间）中调用，场景的延迟清理保证了这一点。
func (w *World) DestroyBody(b *Body) {
	if b == nil || b.b2 == nil {
		return
	}
	w.b2.DestroyBody(b.b2)
	b.b2 = nil
}

// RegisterTilt 把物理体注册为受倾斜输入影响
func (w *World) RegisterTilt(b *Body) {
	w.tiltBodies = append(w.tiltBodies, b)
}

// SetTiltAsVelocity 切换倾斜输入的作用方式
// true: 读数直接设为速度（操控感强）；false: 读数作为力（默认，有惯性）。
func (w *World) SetTiltAsVelocity(v bool) {
	w.tiltAsVelocity = v
}

// SetTiltMultiplier 设置倾斜读数的放大系数
func (w *World) SetTiltMultiplier(m float64) {
	w.tiltMultiplier = m
}

// HandleTilt 把本帧的重力感应读数施加到所有注册体上
//
// 参数：
//   - x, y: 加速度计读数
func (w *World) HandleTilt(x, y float64) {
	if x == 0 && y == 0 && !w.tiltAsVelocity {
		return
	}
	fx := x * w.tiltMultiplier
	fy := y * w.tiltMultiplier
	for _, b := range w.tiltBodies {
		if b.b2 == nil {
			continue
		}
		if w.tiltAsVelocity {
			b.b2.SetLinearVelocity(box2d.MakeB2Vec2(fx, fy))
		} else {
			b.b2.ApplyForceToCenter(box2d.MakeB2Vec2(fx, fy), true)
		}
	}
}

// bodyType 转换为 Box2D 的体类型常量
func bodyType(kind BodyKind) uint8 {
	switch kind {
	case DynamicBody:
		return box2d.B2BodyType.B2_dynamicBody
	case KinematicBody:
		return box2d.B2BodyType.B2_kinematicBody
	default:
		return box2d.B2BodyType.B2_staticBody
	}
}

// applyOpts 应用碰撞体参数到 fixture 定义
func applyOpts(fd *box2d.B2FixtureDef, opts FixtureOpts) {
	fd.Density = opts.Density
	if fd.Density == 0 {
		fd.Density = 1.0
	}
	fd.Friction = opts.Friction
	fd.Restitution = opts.Restitution
	fd.IsSensor = opts.Sensor
}

// contactListener 把 Box2D 接触事件转发给双方的 CollisionHandler
type contactListener struct{}

func (contactListener) BeginContact(contact box2d.B2ContactInterface) {
	a, _ := contact.GetFixtureA().GetBody().GetUserData().(CollisionHandler)
	b, _ := contact.GetFixtureB().GetBody().GetUserData().(CollisionHandler)
	if a == nil || b == nil {
		return
	}
	a.OnCollide(b, contact)
	b.OnCollide(a, contact)
}

func (contactListener) EndContact(contact box2d.B2ContactInterface) {}

func (contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}
