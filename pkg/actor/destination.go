package actor

import (
	"github.com/decker502/jetlag/pkg/physics"
	"github.com/decker502/jetlag/pkg/stage"
)

// Destination 终点
// 有容量限制：满员后再有 hero 触碰也不会被吸收。
type Destination struct {
	Base
	capacity int
	arrivals int
}

// NewDestination 创建终点并加入世界
// 默认容量为 1。通常用传感器碰撞体创建。
func NewDestination(st *stage.Stage, body *physics.Body, app stage.Appearance) *Destination {
	d := &Destination{Base: newBase(st, body, app), capacity: 1}
	body.SetHandler(d)
	st.World().AddActor(d)
	return d
}

// SetCapacity 设置容量
func (d *Destination) SetCapacity(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	d.capacity = capacity
}

// Arrivals 返回已吸收的 hero 数量
func (d *Destination) Arrivals() int {
	return d.arrivals
}

// Receive 尝试吸收一个 hero，满员时返回 false
func (d *Destination) Receive() bool {
	if d.arrivals >= d.capacity {
		return false
	}
	d.arrivals++
	return true
}

// OnCollide 终结性空实现，到达由 hero 一侧驱动
func (d *Destination) OnCollide(other physics.CollisionHandler, contact physics.Contact) {}
