package actor

import (
	"github.com/decker502/jetlag/pkg/physics"
	"github.com/decker502/jetlag/pkg/stage"
)

// Goodie 可拾取物
//
// 被 hero 触碰时消失，并按四个分量调整计分（分量可以为负，
// 实现惩罚型道具）。通常用传感器碰撞体创建，避免挡住 hero。
type Goodie struct {
	Base
	deltas    [stage.GoodieTypes]int
	onCollect func(g *Goodie, h *Hero)
}

// NewGoodie 创建 goodie 并加入世界
// 默认只给第 0 类计分 +1。
func NewGoodie(st *stage.Stage, body *physics.Body, app stage.Appearance) *Goodie {
	g := &Goodie{Base: newBase(st, body, app)}
	g.deltas[0] = 1
	body.SetHandler(g)
	st.World().AddActor(g)
	return g
}

// SetDeltas 设置四个计分分量（可以为负）
func (g *Goodie) SetDeltas(d0, d1, d2, d3 int) {
	g.deltas = [stage.GoodieTypes]int{d0, d1, d2, d3}
}

// SetCollectCallback 设置拾取回调，在计分之后、胜负判定之前执行
func (g *Goodie) SetCollectCallback(fn func(g *Goodie, h *Hero)) {
	g.onCollect = fn
}

// OnCollide 终结性空实现
// 拾取由 hero 一侧驱动，goodie 与其他角色的接触没有语义。
func (g *Goodie) OnCollide(other physics.CollisionHandler, contact physics.Contact) {}
