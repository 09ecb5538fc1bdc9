//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包，
// 仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.jetlag -o build/android/jetlag.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/JetLag.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/jetlag/pkg/app"
	"github.com/decker502/jetlag/pkg/config"
	"github.com/decker502/jetlag/pkg/demo"
	"github.com/decker502/jetlag/pkg/embedded"
)

func init() {
	// assetsFS 在 mobile/embed.go 中声明
	embedded.Init(assetsFS)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	cfg.MobileMode = true

	gameApp, err := app.New(cfg, false)
	if err != nil {
		log.Fatalf("app init failed: %v", err)
	}

	demo.Register(gameApp.Manager())
	gameApp.Manager().Launch()

	mobile.SetGame(gameApp)
}

// loadConfig 读取嵌入的配置
func loadConfig() (*config.Config, error) {
	data, err := embedded.ReadFile("assets/config/jetlag.yaml")
	if err != nil {
		return nil, err
	}
	return config.Parse(data)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
