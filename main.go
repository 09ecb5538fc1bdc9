package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/jetlag/pkg/app"
	"github.com/decker502/jetlag/pkg/config"
	"github.com/decker502/jetlag/pkg/demo"
	"github.com/decker502/jetlag/pkg/embedded"
)

// 嵌入的配置文件路径
const configPath = "assets/config/jetlag.yaml"

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	configFile := flag.String("config", "", "load config from file instead of the embedded one")
	flag.Parse()

	embedded.Init(assetsFS)

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	gameApp, err := app.New(cfg, *verbose || cfg.Verbose)
	if err != nil {
		log.Fatalf("app init failed: %v", err)
	}

	demo.Register(gameApp.Manager())
	gameApp.Manager().Launch()

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("Tilt Maze")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

// loadConfig 优先用命令行指定的文件，否则用嵌入的默认配置
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	data, err := embedded.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	return config.Parse(data)
}
