package stage

import (
	"bytes"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Appearance actor 的外观
// 由 actor 在自己的物理体位置上绘制，坐标和尺寸均为米。
type Appearance interface {
	// Draw 在场景坐标 (cx,cy) 处绘制 w x h 的外观，angle 为弧度
	Draw(screen *ebiten.Image, camera *Camera, cx, cy, w, h, angle float64)
}

// Renderable 场景中的独立可绘制元素（文本、图片、色块）
// HUD 和弹出层由一组 Renderable 构成。
type Renderable interface {
	// Render 绘制自身，elapsed 为距上一帧的秒数（供动画使用）
	Render(screen *ebiten.Image, camera *Camera, elapsed float64)
}

var (
	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource
)

// defaultFaceSource 返回默认字体（Go Regular）
// 框架不带任何美术资源，文本默认用 gofont 渲染，游戏可自带图片字体。
func defaultFaceSource() *text.GoTextFaceSource {
	fontOnce.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			// goregular.TTF 是编译期嵌入的合法字体，解析失败说明构建已损坏
			log.Fatalf("[Appearance] failed to parse embedded font: %v", err)
		}
		fontSource = src
	})
	return fontSource
}

// ImageAppearance 图片外观
type ImageAppearance struct {
	Image *ebiten.Image
}

// Draw 把图片缩放到目标尺寸并绕中心旋转后绘制
func (a *ImageAppearance) Draw(screen *ebiten.Image, camera *Camera, cx, cy, w, h, angle float64) {
	if a.Image == nil || screen == nil {
		return
	}
	bounds := a.Image.Bounds()
	pw := w * camera.Ratio()
	ph := h * camera.Ratio()
	sx, sy := camera.MetersToScreen(cx, cy)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(pw/float64(bounds.Dx()), ph/float64(bounds.Dy()))
	op.GeoM.Translate(-pw/2, -ph/2)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(a.Image, op)
}

// ColorRect 纯色矩形外观
type ColorRect struct {
	Color color.Color
}

// Draw 绘制以 (cx,cy) 为中心的矩形（忽略旋转）
func (a *ColorRect) Draw(screen *ebiten.Image, camera *Camera, cx, cy, w, h, angle float64) {
	if screen == nil {
		return
	}
	sx, sy := camera.MetersToScreen(cx-w/2, cy-h/2)
	vector.DrawFilledRect(screen, float32(sx), float32(sy),
		float32(w*camera.Ratio()), float32(h*camera.Ratio()), a.Color, true)
}

// ColorCircle 纯色圆形外观
type ColorCircle struct {
	Color color.Color
}

// Draw 绘制以 (cx,cy) 为圆心、w/2 为半径的圆
func (a *ColorCircle) Draw(screen *ebiten.Image, camera *Camera, cx, cy, w, h, angle float64) {
	if screen == nil {
		return
	}
	sx, sy := camera.MetersToScreen(cx, cy)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy),
		float32(w/2*camera.Ratio()), a.Color, true)
}

// TextLine 一行文本
//
// Producer 不为 nil 时每帧重新取文本（计分板、倒计时显示等），
// 否则使用固定的 Text。
type TextLine struct {
	// X, Y 位置（米）
	X, Y float64
	// Text 固定文本
	Text string
	// Producer 动态文本来源，优先于 Text
	Producer func() string
	// Size 字号（像素）
	Size float64
	// Color 文本颜色
	Color color.Color
	// Centered 为 true 时 (X,Y) 是文本中心，否则是左上角
	Centered bool
}

// Render 绘制文本
func (t *TextLine) Render(screen *ebiten.Image, camera *Camera, elapsed float64) {
	if screen == nil {
		return
	}
	str := t.Text
	if t.Producer != nil {
		str = t.Producer()
	}
	if str == "" {
		return
	}

	size := t.Size
	if size <= 0 {
		size = 24
	}
	face := &text.GoTextFace{Source: defaultFaceSource(), Size: size}

	sx, sy := camera.MetersToScreen(t.X, t.Y)
	if t.Centered {
		w, h := text.Measure(str, face, 0)
		sx -= w / 2
		sy -= h / 2
	}

	clr := t.Color
	if clr == nil {
		clr = color.Black
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// Picture 固定位置的图片元素
type Picture struct {
	Image *ebiten.Image
	// X, Y 左上角位置（米）
	X, Y float64
	// W, H 尺寸（米）
	W, H float64
}

// Render 绘制图片
func (p *Picture) Render(screen *ebiten.Image, camera *Camera, elapsed float64) {
	if p.Image == nil || screen == nil {
		return
	}
	bounds := p.Image.Bounds()
	sx, sy := camera.MetersToScreen(p.X, p.Y)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(p.W*camera.Ratio()/float64(bounds.Dx()), p.H*camera.Ratio()/float64(bounds.Dy()))
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(p.Image, op)
}

// FilledRect 固定位置的色块元素（弹出层遮罩、按钮底色）
type FilledRect struct {
	// X, Y 左上角位置（米）
	X, Y float64
	// W, H 尺寸（米）
	W, H  float64
	Color color.Color
}

// Render 绘制色块
func (f *FilledRect) Render(screen *ebiten.Image, camera *Camera, elapsed float64) {
	if screen == nil {
		return
	}
	sx, sy := camera.MetersToScreen(f.X, f.Y)
	vector.DrawFilledRect(screen, float32(sx), float32(sy),
		float32(f.W*camera.Ratio()), float32(f.H*camera.Ratio()), f.Color, true)
}
