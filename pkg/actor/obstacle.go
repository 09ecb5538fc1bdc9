package actor

import (
	"github.com/decker502/jetlag/pkg/physics"
	"github.com/decker502/jetlag/pkg/stage"
)

// Obstacle 地形与墙壁
// 只依赖物理响应（阻挡、反弹），没有游戏语义。
type Obstacle struct {
	Base
}

// NewObstacle 创建障碍物并加入世界
func NewObstacle(st *stage.Stage, body *physics.Body, app stage.Appearance) *Obstacle {
	o := &Obstacle{Base: newBase(st, body, app)}
	body.SetHandler(o)
	st.World().AddActor(o)
	return o
}

// OnCollide 终结性空实现
func (o *Obstacle) OnCollide(other physics.CollisionHandler, contact physics.Contact) {}
