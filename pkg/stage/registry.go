package stage

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/jetlag/pkg/physics"
)

// Actor 世界场景中的一个角色
//
// 碰撞回调在物理步进内部触发，此时不允许销毁物理体，
// 所以删除采用两段式：回调中只做 defunct 标记，
// 注册表在帧内固定的清理点统一 Dispose。
type Actor interface {
	physics.CollisionHandler

	// Draw 绘制自身
	Draw(screen *ebiten.Image, camera *Camera, elapsed float64)
	// Contains 判断场景坐标（米）是否落在角色范围内
	Contains(x, y float64) bool
	// Tap 点按回调，返回是否消费了该事件
	Tap(x, y float64) bool
	// Defunct 返回角色是否已被标记删除
	Defunct() bool
	// Dispose 释放物理资源，只能由注册表在清理点调用
	Dispose()
}

// Registry 角色注册表
// 维护角色集合和延迟删除队列，遍历顺序为加入顺序（同时是绘制顺序）。
type Registry struct {
	actors []Actor
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{actors: make([]Actor, 0, 16)}
}

// Add 加入一个角色
func (r *Registry) Add(a Actor) {
	r.actors = append(r.actors, a)
}

// Len 返回当前角色数量（含已标记删除但尚未清理的）
func (r *Registry) Len() int {
	return len(r.actors)
}

// ForEach 按加入顺序遍历所有未标记删除的角色
func (r *Registry) ForEach(fn func(Actor)) {
	for _, a := range r.actors {
		if !a.Defunct() {
			fn(a)
		}
	}
}

// Tap 把点按分发给命中的最上层角色
//
// 逆序遍历：后加入的角色绘制在上层，优先拿到事件。
// 返回是否有角色消费了事件。
func (r *Registry) Tap(x, y float64) bool {
	for i := len(r.actors) - 1; i >= 0; i-- {
		a := r.actors[i]
		if a.Defunct() || !a.Contains(x, y) {
			continue
		}
		if a.Tap(x, y) {
			return true
		}
	}
	return false
}

// Sweep 清理所有标记删除的角色
// 必须在物理步进之外调用（物理世界未锁定时）。
func (r *Registry) Sweep() {
	kept := r.actors[:0]
	for _, a := range r.actors {
		if a.Defunct() {
			a.Dispose()
			continue
		}
		kept = append(kept, a)
	}
	// 清掉尾部引用，避免悬挂已删除的角色
	for i := len(kept); i < len(r.actors); i++ {
		r.actors[i] = nil
	}
	r.actors = kept
}
