package stage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ParallaxLayer 一个滚动的背景/前景层
//
// 层以 Speed 倍的摄像机位移滚动（0 = 固定，1 = 与世界同步），
// Auto 层则无视摄像机、按 AutoSpeed 自动滚动。图片在水平方向
// 无缝平铺，铺满整个视口宽度。
type ParallaxLayer struct {
	Image *ebiten.Image
	// Speed 摄像机位移的跟随系数
	Speed float64
	// Auto 为 true 时按 AutoSpeed 自动滚动（米/秒），忽略摄像机
	Auto      bool
	AutoSpeed float64
	// Y 层顶边的场景纵坐标（米）
	Y float64
	// W, H 单张贴图的尺寸（米）
	W, H float64

	// autoOffset 自动滚动累计位移（米）
	autoOffset float64
}

// ParallaxScene 有序的视差层列表
// 按加入顺序绘制（先加入的在远处），渲染相对摄像机位置，没有物理。
type ParallaxScene struct {
	layers []*ParallaxLayer
}

// NewParallaxScene 创建空的视差场景
func NewParallaxScene() *ParallaxScene {
	return &ParallaxScene{}
}

// AddLayer 加入一层
func (p *ParallaxScene) AddLayer(l *ParallaxLayer) {
	if l == nil {
		return
	}
	p.layers = append(p.layers, l)
}

// LayerCount 返回层数
func (p *ParallaxScene) LayerCount() int {
	return len(p.layers)
}

// Draw 绘制所有层
//
// 参数：
//   - camera: 世界摄像机（决定视差偏移）
//   - elapsed: 距上一帧的秒数（推进自动滚动层）
func (p *ParallaxScene) Draw(screen *ebiten.Image, camera *Camera, elapsed float64) {
	if screen == nil {
		return
	}
	for _, l := range p.layers {
		l.draw(screen, camera, elapsed)
	}
}

// offsetFor 计算本帧的水平偏移（米）：跟随摄像机或自动滚动
func (l *ParallaxLayer) offsetFor(camX, elapsed float64) float64 {
	if l.Auto {
		l.autoOffset += l.AutoSpeed * elapsed
		return l.autoOffset
	}
	return camX * l.Speed
}

// draw 平铺绘制单层
func (l *ParallaxLayer) draw(screen *ebiten.Image, camera *Camera, elapsed float64) {
	if l.Image == nil || l.W <= 0 || l.H <= 0 {
		return
	}

	camX, camY := camera.Offset()
	offsetMeters := l.offsetFor(camX, elapsed)

	ratio := camera.Ratio()
	tileW := l.W * ratio
	screenW := float64(screen.Bounds().Dx())
	sy := (l.Y - camY*l.Speed) * ratio

	bounds := l.Image.Bounds()
	scaleX := tileW / float64(bounds.Dx())
	scaleY := l.H * ratio / float64(bounds.Dy())

	// 从视口左边之外开始平铺，保证整屏覆盖
	start := -math.Mod(offsetMeters*ratio, tileW)
	if start > 0 {
		start -= tileW
	}
	for x := start; x < screenW; x += tileW {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scaleX, scaleY)
		op.GeoM.Translate(x, sy)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(l.Image, op)
	}
}
