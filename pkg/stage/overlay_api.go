package stage

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// OverlayBuilder 瞬态场景的构造回调
// 由游戏关卡代码提供，用传入的 OverlayAPI 填充 welcome/win/lose/pause 画面。
type OverlayBuilder func(overlay *OverlayAPI)

// OverlayAPI 暴露给构造回调的受限句柄
//
// 只提供两类能力：向弹出层添加元素，以及触发所属 Stage 的转场。
// 刻意不暴露 Stage 本身，构造回调无法越权操作世界场景。
type OverlayAPI struct {
	overlay *OverlayScene
	stage   *Stage
}

// AddText 添加一行固定文本
func (o *OverlayAPI) AddText(x, y, size float64, clr color.Color, centered bool, str string) {
	o.overlay.AddRenderable(&TextLine{X: x, Y: y, Size: size, Color: clr, Centered: centered, Text: str})
}

// AddTextProducer 添加一行每帧重新求值的文本
func (o *OverlayAPI) AddTextProducer(x, y, size float64, clr color.Color, centered bool, producer func() string) {
	o.overlay.AddRenderable(&TextLine{X: x, Y: y, Size: size, Color: clr, Centered: centered, Producer: producer})
}

// AddImage 添加一张图片
func (o *OverlayAPI) AddImage(x, y, w, h float64, img *ebiten.Image) {
	o.overlay.AddRenderable(&Picture{X: x, Y: y, W: w, H: h, Image: img})
}

// AddFilledRect 添加一个色块（常用作半透明遮罩）
func (o *OverlayAPI) AddFilledRect(x, y, w, h float64, clr color.Color) {
	o.overlay.AddRenderable(&FilledRect{X: x, Y: y, W: w, H: h, Color: clr})
}

// SetFadeColor 设置弹出层整屏底色（通常为半透明黑）
func (o *OverlayAPI) SetFadeColor(clr color.Color) {
	o.overlay.SetFadeColor(clr)
}

// AddTapControl 添加一个点按区域
// w 为 0 表示整个屏幕。onTap 返回是否消费事件。
func (o *OverlayAPI) AddTapControl(x, y, w, h float64, onTap func(x, y float64) bool) {
	o.overlay.AddControl(&Control{X: x, Y: y, W: w, H: h, OnTap: onTap})
}

// Score 返回所属 Stage 的计分状态（弹出层常显示统计数字）
func (o *OverlayAPI) Score() *Score {
	return o.stage.Score()
}

// Dismiss 关闭弹出层，恢复世界场景
// 只有当本弹出层仍是活动弹出层时才生效。
func (o *OverlayAPI) Dismiss() {
	if o.stage.overlay == o.overlay {
		o.stage.clearOverlay()
	}
}

// DismissAndAdvance 关闭弹出层并进入下一关
func (o *OverlayAPI) DismissAndAdvance() {
	o.Dismiss()
	o.stage.advance()
}

// DismissAndRepeat 关闭弹出层并重玩当前关
func (o *OverlayAPI) DismissAndRepeat() {
	o.Dismiss()
	o.stage.repeat()
}
