// Package actor 提供封闭的角色类型集合
//
// 五种角色（Hero/Goodie/Enemy/Obstacle/Destination）覆盖两体碰撞的
// 所有游戏语义。碰撞决策全部由 Hero 一侧驱动：其余角色的 OnCollide
// 是终结性的空实现，保证同一次接触不会被两侧重复处理。
//
// 碰撞回调在物理步进内部触发，期间不允许销毁物理体，所以所有
// 计分与关卡结束动作都经由世界场景的一次性事件队列延迟到本帧的
// 固定执行点。
package actor

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/jetlag/pkg/physics"
	"github.com/decker502/jetlag/pkg/stage"
)

// Base 所有角色共享的状态
//
// 持有物理体、外观和点按回调。本身不实现 OnCollide：
// 每个具体角色必须自己决定碰撞语义。
type Base struct {
	stage      *stage.Stage
	body       *physics.Body
	appearance stage.Appearance
	onTap      func(x, y float64) bool
	defunct    bool
}

// newBase 组装共享状态
func newBase(st *stage.Stage, body *physics.Body, app stage.Appearance) Base {
	return Base{stage: st, body: body, appearance: app}
}

// Body 返回物理体
func (b *Base) Body() *physics.Body {
	return b.body
}

// Stage 返回所属编排器
func (b *Base) Stage() *stage.Stage {
	return b.stage
}

// SetAppearance 替换外观
func (b *Base) SetAppearance(app stage.Appearance) {
	b.appearance = app
}

// SetTapHandler 设置点按回调，返回值表示是否消费该事件
func (b *Base) SetTapHandler(fn func(x, y float64) bool) {
	b.onTap = fn
}

// Remove 标记删除
// 物理体要到注册表的清理点才真正销毁。
func (b *Base) Remove() {
	b.defunct = true
}

// Defunct 返回是否已标记删除
func (b *Base) Defunct() bool {
	return b.defunct
}

// Dispose 销毁物理体，只能由注册表在清理点调用
func (b *Base) Dispose() {
	if b.body != nil {
		b.body.Destroy()
	}
}

// Draw 按物理体的位置和角度绘制外观
func (b *Base) Draw(screen *ebiten.Image, camera *stage.Camera, elapsed float64) {
	if b.appearance == nil || b.body == nil {
		return
	}
	cx, cy := b.body.Position()
	w, h := b.body.Size()
	b.appearance.Draw(screen, camera, cx, cy, w, h, b.body.Angle())
}

// Contains 判断场景坐标（米）是否落在角色的包围盒内
func (b *Base) Contains(x, y float64) bool {
	if b.body == nil {
		return false
	}
	cx, cy := b.body.Position()
	w, h := b.body.Size()
	return x >= cx-w/2 && x <= cx+w/2 && y >= cy-h/2 && y <= cy+h/2
}

// Tap 分发点按，没有回调时不消费
func (b *Base) Tap(x, y float64) bool {
	if b.onTap == nil {
		return false
	}
	return b.onTap(x, y)
}
