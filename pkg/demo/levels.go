package demo

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/jetlag/pkg/actor"
	"github.com/decker502/jetlag/pkg/physics"
	"github.com/decker502/jetlag/pkg/stage"
)

// buildLevel 分派到具体关卡
func buildLevel(index int, s *stage.Stage) {
	switch index {
	case 1:
		buildLevel1(s)
	case 2:
		buildLevel2(s)
	case 3:
		buildLevel3(s)
	default:
		buildLevel1(s)
	}
}

// walls 沿摄像机边界放四面静态墙
func walls(s *stage.Stage) {
	w, h := s.World().Camera().ViewMeters()
	phys := s.World().Physics()
	thick := 0.1
	gray := &stage.ColorRect{Color: color.RGBA{0x55, 0x55, 0x55, 0xFF}}

	top := phys.CreateBoxBody(physics.StaticBody, w/2, thick/2, w, thick, physics.FixtureOpts{Friction: 0.3})
	bottom := phys.CreateBoxBody(physics.StaticBody, w/2, h-thick/2, w, thick, physics.FixtureOpts{Friction: 0.3})
	left := phys.CreateBoxBody(physics.StaticBody, thick/2, h/2, thick, h, physics.FixtureOpts{Friction: 0.3})
	right := phys.CreateBoxBody(physics.StaticBody, w-thick/2, h/2, thick, h, physics.FixtureOpts{Friction: 0.3})
	for _, b := range []*physics.Body{top, bottom, left, right} {
		actor.NewObstacle(s, b, gray)
	}
}

// tiltHero 创建倾斜控制的圆形 hero 并登记到倾斜系统
func tiltHero(s *stage.Stage, x, y float64) *actor.Hero {
	phys := s.World().Physics()
	body := phys.CreateCircleBody(physics.DynamicBody, x, y, 0.4,
		physics.FixtureOpts{Density: 1, Friction: 0.3, Restitution: 0.2})
	body.SetFixedRotation(true)
	hero := actor.NewHero(s, body, &stage.ColorCircle{Color: color.RGBA{0x2B, 0x6B, 0xD0, 0xFF}})
	phys.RegisterTilt(body)
	phys.SetTiltAsVelocity(true)
	phys.SetTiltMultiplier(5)
	return hero
}

// pauseButton HUD 右上角的暂停按钮
// 点按后下一帧弹出暂停层：继续、重玩或回到开场。
func pauseButton(s *stage.Stage) {
	hud := s.HUD()
	hud.AddRenderable(&stage.FilledRect{X: 15.1, Y: 0.2, W: 0.7, H: 0.7, Color: colorButton})
	hud.AddRenderable(&stage.TextLine{X: 15.45, Y: 0.55, Text: "II", Size: 28, Color: colorLabel, Centered: true})
	hud.AddControl(&stage.Control{
		X: 15.1, Y: 0.2, W: 0.7, H: 0.7,
		OnTap: func(x, y float64) bool {
			s.SetPauseSceneBuilder(func(api *stage.OverlayAPI) {
				api.SetFadeColor(colorMask)
				api.AddText(8, 3, 64, color.White, true, "Paused")
				api.AddText(8, 5, 36, color.White, true, "tap to resume")
				api.AddTapControl(0, 0, 0, 0, func(x, y float64) bool {
					api.Dismiss()
					return true
				})
			})
			return true
		},
	})
}

// winOverlay 标准的胜利弹出层
func winOverlay(s *stage.Stage, message string) {
	s.SetWinSceneBuilder(func(api *stage.OverlayAPI) {
		api.SetFadeColor(colorMask)
		api.AddText(8, 4, 72, color.White, true, message)
		api.AddTapControl(0, 0, 0, 0, func(x, y float64) bool {
			api.DismissAndAdvance()
			return true
		})
	})
}

// loseOverlay 标准的失败弹出层
func loseOverlay(s *stage.Stage, message string) {
	s.SetLoseSceneBuilder(func(api *stage.OverlayAPI) {
		api.SetFadeColor(colorMask)
		api.AddText(8, 4, 72, color.White, true, message)
		api.AddTapControl(0, 0, 0, 0, func(x, y float64) bool {
			api.DismissAndRepeat()
			return true
		})
	})
}

// buildLevel1 第一关：倾斜 hero 到终点
func buildLevel1(s *stage.Stage) {
	s.SetBackgroundColor(0xF0F4E8)
	walls(s)

	hero := tiltHero(s, 2, 4.5)
	s.World().Camera().SetChase(hero.Body())

	phys := s.World().Physics()
	dest := phys.CreateBoxBody(physics.StaticBody, 14, 4.5, 1, 1, physics.FixtureOpts{Sensor: true})
	actor.NewDestination(s, dest, &stage.ColorRect{Color: color.RGBA{0x3B, 0xA0, 0x55, 0xFF}})
	s.Score().SetVictoryDestination(1)

	// 两根挡路的柱子
	for _, cx := range []float64{6.0, 10.0} {
		pillar := phys.CreateBoxBody(physics.StaticBody, cx, 4.5, 0.5, 4, physics.FixtureOpts{Friction: 0.3})
		actor.NewObstacle(s, pillar, &stage.ColorRect{Color: color.RGBA{0x8B, 0x6F, 0x47, 0xFF}})
	}

	pauseButton(s)
	s.SetWelcomeSceneBuilder(func(api *stage.OverlayAPI) {
		api.SetFadeColor(colorMask)
		api.AddText(8, 4, 56, color.White, true, "Tilt to reach the green square")
		api.AddTapControl(0, 0, 0, 0, func(x, y float64) bool {
			api.Dismiss()
			return true
		})
	})
	winOverlay(s, "Level clear!")
}

// buildLevel2 第二关：限时收集 goodie，含负分惩罚道具
func buildLevel2(s *stage.Stage) {
	s.SetBackgroundColor(0xE8F4F0)
	walls(s)

	hero := tiltHero(s, 8, 4.5)
	s.World().Camera().SetChase(hero.Body())

	phys := s.World().Physics()
	blue := color.RGBA{0x2B, 0x6B, 0xD0, 0xFF}
	for _, p := range [][2]float64{{3, 2}, {13, 2}, {3, 7}, {13, 7}} {
		body := phys.CreateCircleBody(physics.StaticBody, p[0], p[1], 0.3, physics.FixtureOpts{Sensor: true})
		actor.NewGoodie(s, body, &stage.ColorCircle{Color: blue})
	}

	// 惩罚道具：碰到扣一分
	penalty := phys.CreateCircleBody(physics.StaticBody, 8, 2, 0.3, physics.FixtureOpts{Sensor: true})
	bad := actor.NewGoodie(s, penalty, &stage.ColorCircle{Color: color.RGBA{0xD0, 0x3B, 0x3B, 0xFF}})
	bad.SetDeltas(-1, 0, 0, 0)

	s.Score().SetVictoryGoodies(4, 0, 0, 0)
	s.Score().SetLoseCountdown(30)

	hud := s.HUD()
	hud.AddRenderable(&stage.TextLine{
		X: 0.3, Y: 0.2, Size: 32, Color: colorText,
		Producer: func() string {
			return fmt.Sprintf("Goodies: %d / 4", s.Score().GoodieCount(0))
		},
	})
	hud.AddRenderable(&stage.TextLine{
		X: 0.3, Y: 0.8, Size: 32, Color: colorText,
		Producer: func() string {
			remaining, active := s.Score().LoseCountdown()
			if !active {
				return ""
			}
			return fmt.Sprintf("Time: %.0f", remaining)
		},
	})

	pauseButton(s)
	winOverlay(s, "All goodies collected!")
	loseOverlay(s, "Out of time...")
}

// buildLevel3 第三关：消灭全部敌人
// 弱敌人可以直接点按消灭，hero 升级后也能撞死它们。
func buildLevel3(s *stage.Stage) {
	s.SetBackgroundColor(0xF4E8E8)
	s.Background().AddLayer(&stage.ParallaxLayer{
		Image: stripeTile(), Speed: 0.4, Y: 0, W: 4, H: 9,
	})
	walls(s)

	hero := tiltHero(s, 2, 4.5)
	hero.SetStrength(5)
	s.World().Camera().SetChase(hero.Body())

	phys := s.World().Physics()
	red := color.RGBA{0xC0, 0x30, 0x30, 0xFF}
	for _, p := range [][2]float64{{10, 2}, {12, 4.5}, {10, 7}} {
		body := phys.CreateCircleBody(physics.DynamicBody, p[0], p[1], 0.4,
			physics.FixtureOpts{Density: 1, Friction: 0.3})
		enemy := actor.NewEnemy(s, body, &stage.ColorCircle{Color: red})
		enemy.SetDamage(2)
		enemy.SetTapHandler(func(x, y float64) bool {
			enemy.Defeat()
			return true
		})
	}
	s.Score().SetVictoryEnemyCount(-1)
	s.Score().SetStopwatch(0)

	hud := s.HUD()
	hud.AddRenderable(&stage.TextLine{
		X: 0.3, Y: 0.2, Size: 32, Color: colorText,
		Producer: func() string {
			v, _ := s.Score().StopwatchValue()
			return fmt.Sprintf("Elapsed: %.1f", v)
		},
	})

	pauseButton(s)
	winOverlay(s, "You win!")
	loseOverlay(s, "Defeated...")
}

// stripeTile 生成一张程序化的条纹贴图（框架不带美术资源）
func stripeTile() *ebiten.Image {
	img := ebiten.NewImage(64, 144)
	img.Fill(color.RGBA{0xEE, 0xE0, 0xE0, 0xFF})
	stripe := ebiten.NewImage(8, 144)
	stripe.Fill(color.RGBA{0xE0, 0xD0, 0xD0, 0xFF})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(28, 0)
	img.DrawImage(stripe, op)
	return img
}
