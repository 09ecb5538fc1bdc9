package device

import (
	"github.com/decker502/jetlag/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// Accelerometer 重力感应读数来源
//
// 读数约定与浏览器 devicemotion 一致：x 为左右倾斜，y 为前后倾斜，
// 单位为重力加速度的倍数，水平放置时两者均为 0。
type Accelerometer interface {
	// Get 返回当前帧的倾斜读数
	Get() (x, y float64)
}

// disabledAccelerometer 永远返回 0 的空实现
// 用于 ForceAccelerometerOff 或没有任何可用输入源的平台。
type disabledAccelerometer struct{}

func (disabledAccelerometer) Get() (x, y float64) { return 0, 0 }

// KeyboardAccelerometer 用方向键模拟重力感应
//
// 桌面端没有真实的加速度计，开发调试时用方向键代替：
// 按住方向键视为向该方向倾斜 Max。
type KeyboardAccelerometer struct {
	// Max 按键按下时模拟的倾斜幅度
	Max float64
}

// Get 根据当前按下的方向键返回模拟读数
func (k *KeyboardAccelerometer) Get() (x, y float64) {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		x -= k.Max
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		x += k.Max
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		y -= k.Max
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		y += k.Max
	}
	return x, y
}

// NewAccelerometer 根据配置选择重力感应实现
//
// 移动端模式下目前也返回禁用实现：Ebitengine 尚未暴露原生
// 加速度计，移动端游戏应通过触摸手势控制。
func NewAccelerometer(cfg *config.Config) Accelerometer {
	if cfg.ForceAccelerometerOff || cfg.MobileMode {
		return disabledAccelerometer{}
	}
	return &KeyboardAccelerometer{Max: 1.0}
}
