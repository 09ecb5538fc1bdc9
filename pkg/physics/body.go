package physics

import (
	"github.com/ByteArena/box2d"
)

// Body 物理体句柄
//
// 持有 Box2D body 和创建时的逻辑尺寸（米）。
// Destroy 之后 b2 为 nil，所有方法都会安全地变成空操作。
type Body struct {
	world  *World
	b2     *box2d.B2Body
	width  float64
	height float64
}

// SetHandler 关联碰撞回调
// 接触发生时，双方通过 UserData 找到各自的 CollisionHandler。
func (b *Body) SetHandler(h CollisionHandler) {
	if b.b2 == nil {
		return
	}
	b.b2.SetUserData(h)
}

// Position 返回中心位置（米）
func (b *Body) Position() (x, y float64) {
	if b.b2 == nil {
		return 0, 0
	}
	p := b.b2.GetPosition()
	return p.X, p.Y
}

// SetPosition 瞬移到新位置，保持当前角度
func (b *Body) SetPosition(x, y float64) {
	if b.b2 == nil {
		return
	}
	b.b2.SetTransform(box2d.MakeB2Vec2(x, y), b.b2.GetAngle())
}

// Angle 返回旋转角（弧度）
func (b *Body) Angle() float64 {
	if b.b2 == nil {
		return 0
	}
	return b.b2.GetAngle()
}

// Velocity 返回线速度（米/秒）
func (b *Body) Velocity() (vx, vy float64) {
	if b.b2 == nil {
		return 0, 0
	}
	v := b.b2.GetLinearVelocity()
	return v.X, v.Y
}

// SetVelocity 设置线速度（米/秒）
func (b *Body) SetVelocity(vx, vy float64) {
	if b.b2 == nil {
		return
	}
	b.b2.SetLinearVelocity(box2d.MakeB2Vec2(vx, vy))
}

// ApplyForce 向质心施加力（牛顿）
func (b *Body) ApplyForce(fx, fy float64) {
	if b.b2 == nil {
		return
	}
	b.b2.ApplyForceToCenter(box2d.MakeB2Vec2(fx, fy), true)
}

// SetFixedRotation 禁止/允许旋转
func (b *Body) SetFixedRotation(fixed bool) {
	if b.b2 == nil {
		return
	}
	b.b2.SetFixedRotation(fixed)
}

// Size 返回创建时的逻辑尺寸（米）
func (b *Body) Size() (width, height float64) {
	return b.width, b.height
}

// Destroy 销毁物理体
func (b *Body) Destroy() {
	if b.world != nil {
		b.world.DestroyBody(b)
	}
}

// Destroyed 返回物理体是否已被销毁
func (b *Body) Destroyed() bool {
	return b.b2 == nil
}
