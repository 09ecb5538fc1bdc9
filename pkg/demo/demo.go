// Package demo 用框架搭建的一个最小完整游戏
//
// 三关：倾斜控制 hero 抵达终点、限时收集 goodie、消灭全部敌人。
// 覆盖开场/选关/帮助画面、四种弹出层、HUD 控件和全部手势路由，
// 既是框架的集成示例，也是手工验收的入口。
package demo

import (
	"fmt"
	"image/color"

	"github.com/decker502/jetlag/pkg/game"
	"github.com/decker502/jetlag/pkg/stage"
)

// 配色
var (
	colorTitle  = color.RGBA{0x2B, 0x48, 0x6B, 0xFF}
	colorText   = color.RGBA{0x33, 0x33, 0x33, 0xFF}
	colorButton = color.RGBA{0x4C, 0x7A, 0xB0, 0xFF}
	colorLabel  = color.White
	colorMask   = color.RGBA{0x00, 0x00, 0x00, 0xB0}
)

// Register 把示例游戏的全部画面注册到状态机
func Register(m *game.Manager) {
	m.SetSplashBuilder(func(index int, s *stage.Stage) { buildSplash(m, s) })
	m.SetChooserBuilder(func(index int, s *stage.Stage) { buildChooser(m, s) })
	m.SetHelpBuilder(buildHelp)
	m.SetLevelBuilder(buildLevel)
}

// button HUD 上的一个带文字的按钮
func button(s *stage.Stage, x, y, w, h float64, label string, onTap func() bool) {
	hud := s.HUD()
	hud.AddRenderable(&stage.FilledRect{X: x, Y: y, W: w, H: h, Color: colorButton})
	hud.AddRenderable(&stage.TextLine{
		X: x + w/2, Y: y + h/2, Text: label, Size: 32, Color: colorLabel, Centered: true,
	})
	hud.AddControl(&stage.Control{
		X: x, Y: y, W: w, H: h,
		OnTap: func(px, py float64) bool { return onTap() },
	})
}

// buildSplash 开场画面：标题加三个入口按钮
func buildSplash(m *game.Manager, s *stage.Stage) {
	s.SetBackgroundColor(0xE8F0F8)
	hud := s.HUD()
	hud.AddRenderable(&stage.TextLine{
		X: 8, Y: 2.2, Text: "Tilt Maze", Size: 96, Color: colorTitle, Centered: true,
	})

	button(s, 6.5, 4.0, 3, 0.8, "Play", func() bool {
		m.DoPlay(1)
		return true
	})
	button(s, 6.5, 5.2, 3, 0.8, "Levels", func() bool {
		m.DoChooser(1)
		return true
	})
	button(s, 6.5, 6.4, 3, 0.8, "Help", func() bool {
		m.DoHelp(1)
		return true
	})
}

// buildChooser 选关画面：每关一个按钮，未解锁的只显示灰色占位
func buildChooser(m *game.Manager, s *stage.Stage) {
	s.SetBackgroundColor(0xE8F0F8)
	hud := s.HUD()
	hud.AddRenderable(&stage.TextLine{
		X: 8, Y: 1.6, Text: "Choose a Level", Size: 64, Color: colorTitle, Centered: true,
	})

	unlocked := m.UnlockedLevel()
	for i := 1; i <= m.Stage().Config().NumLevels; i++ {
		x := 3.0 + float64(i-1)*3.5
		if i > unlocked {
			hud.AddRenderable(&stage.FilledRect{
				X: x, Y: 4, W: 2.5, H: 2.5, Color: color.RGBA{0xAA, 0xAA, 0xAA, 0xFF},
			})
			continue
		}
		level := i
		button(s, x, 4, 2.5, 2.5, fmt.Sprintf("%d", level), func() bool {
			m.DoPlay(level)
			return true
		})
	}

	button(s, 0.5, 8, 2, 0.7, "Back", func() bool {
		m.DoSplash()
		return true
	})
}

// buildHelp 帮助画面：点按任意位置翻页，翻完回到开场
func buildHelp(index int, s *stage.Stage) {
	s.SetBackgroundColor(0xFFF8E8)
	hud := s.HUD()

	if index < 1 || index > len(helpPages) {
		index = 1
	}
	lines := helpPages[index-1]
	for i, line := range lines {
		hud.AddRenderable(&stage.TextLine{
			X: 8, Y: 2.5 + float64(i)*0.9, Text: line, Size: 40, Color: colorText, Centered: true,
		})
	}
	hud.AddRenderable(&stage.TextLine{
		X: 8, Y: 8, Text: "(tap to continue)", Size: 28, Color: colorText, Centered: true,
	})
	hud.AddControl(&stage.Control{
		OnTap: func(x, y float64) bool {
			s.EndLevel(true)
			return true
		},
	})
}

var helpPages = [][]string{
	{
		"Tilt (arrow keys on desktop) to roll the hero.",
		"Reach the green destination to win.",
	},
	{
		"Collect blue goodies, avoid the red penalty.",
		"Tap enemies to defeat them before they reach you.",
	},
}
