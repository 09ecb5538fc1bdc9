package actor

import (
	"github.com/decker502/jetlag/pkg/physics"
	"github.com/decker502/jetlag/pkg/stage"
)

// Enemy 敌对角色
//
// 与 hero 的结算由 hero 一侧驱动（见 Hero.fight）；
// 被击败时消失并登记计分，达成击败数量条件则判胜。
type Enemy struct {
	Base
	damage   int
	onDefeat func(e *Enemy)
}

// NewEnemy 创建敌人并加入世界
// 默认伤害为 2：强度为 1 的 hero 碰到即阵亡。
func NewEnemy(st *stage.Stage, body *physics.Body, app stage.Appearance) *Enemy {
	e := &Enemy{Base: newBase(st, body, app), damage: 2}
	body.SetHandler(e)
	st.World().AddActor(e)
	st.Score().EnemyCreated()
	return e
}

// Damage 返回伤害值
func (e *Enemy) Damage() int {
	return e.damage
}

// SetDamage 设置伤害值
func (e *Enemy) SetDamage(damage int) {
	e.damage = damage
}

// SetDefeatCallback 设置被击败时的回调
func (e *Enemy) SetDefeatCallback(fn func(e *Enemy)) {
	e.onDefeat = fn
}

// Defeat 直接击败该敌人（点按消灭、子弹命中等非碰撞途径）
func (e *Enemy) Defeat() {
	if e.Defunct() {
		return
	}
	e.defeat(nil)
}

// OnCollide 终结性空实现，结算由 hero 一侧驱动
func (e *Enemy) OnCollide(other physics.CollisionHandler, contact physics.Contact) {}

// defeat 标记删除并延迟计分与胜负判定
func (e *Enemy) defeat(by *Hero) {
	e.Remove()
	st := e.stage
	st.World().AddOneTimeEvent(func() {
		if e.onDefeat != nil {
			e.onDefeat(e)
		}
		if st.Score().EnemyDefeated() {
			st.EndLevel(true)
		}
	})
}
