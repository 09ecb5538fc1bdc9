package actor

import (
	"github.com/decker502/jetlag/pkg/physics"
	"github.com/decker502/jetlag/pkg/stage"
)

// Hero 玩家控制的角色，所有碰撞决策的发起方
//
// 与 Goodie 碰撞触发拾取，与 Destination 碰撞触发到达，
// 与 Enemy 碰撞按强度与伤害结算。创建时自动登记计分并加入世界。
type Hero struct {
	Base
	strength int
}

// NewHero 创建 hero 并加入世界
// 初始强度为 1：碰到默认伤害（2）的敌人会阵亡。
func NewHero(st *stage.Stage, body *physics.Body, app stage.Appearance) *Hero {
	h := &Hero{Base: newBase(st, body, app), strength: 1}
	body.SetHandler(h)
	st.World().AddActor(h)
	st.Score().HeroCreated()
	return h
}

// Strength 返回当前强度
func (h *Hero) Strength() int {
	return h.strength
}

// SetStrength 设置强度
func (h *Hero) SetStrength(strength int) {
	h.strength = strength
}

// OnCollide 按对方的角色类型分派碰撞语义
// Obstacle 只依赖物理响应，不需要游戏语义。
func (h *Hero) OnCollide(other physics.CollisionHandler, contact physics.Contact) {
	if h.Defunct() {
		return
	}
	switch o := other.(type) {
	case *Goodie:
		h.collect(o)
	case *Destination:
		h.arrive(o)
	case *Enemy:
		h.fight(o)
	}
}

// collect 拾取 goodie
// 标记立即生效（防止同一 goodie 被重复拾取），计分与胜负判定
// 延迟到一次性事件队列。
func (h *Hero) collect(g *Goodie) {
	if g.Defunct() {
		return
	}
	g.Remove()
	st := h.stage
	st.World().AddOneTimeEvent(func() {
		win := false
		for i, delta := range g.deltas {
			if delta == 0 {
				continue
			}
			if st.Score().AddGoodie(i, delta) {
				win = true
			}
		}
		if g.onCollect != nil {
			g.onCollect(g, h)
		}
		if win {
			st.EndLevel(true)
		}
	})
}

// arrive 尝试进入终点，满员时什么都不发生
func (h *Hero) arrive(d *Destination) {
	if !d.Receive() {
		return
	}
	h.Remove()
	st := h.stage
	st.World().AddOneTimeEvent(func() {
		if st.Score().Arrive() {
			st.EndLevel(true)
		}
	})
}

// fight 与敌人结算
// 强度高于敌人伤害时扣除伤害并击败敌人，否则 hero 阵亡；
// 最后一个 hero 阵亡即判负。
func (h *Hero) fight(e *Enemy) {
	if e.Defunct() {
		return
	}
	if h.strength > e.damage {
		h.strength -= e.damage
		e.defeat(h)
		return
	}
	h.Remove()
	st := h.stage
	st.World().AddOneTimeEvent(func() {
		if st.Score().HeroDefeated() {
			st.EndLevel(false)
		}
	})
}
