// Package config 提供框架启动配置的加载与校验
//
// 配置使用 YAML 格式，与项目其他数据文件保持一致。
// 游戏作者通常把配置嵌入到二进制中（见根目录 embed.go），
// 也可以直接在代码里构造 Config 并调用 Validate()。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 框架启动配置
//
// 屏幕尺寸为逻辑尺寸（像素），实际窗口缩放由 Ebitengine 处理。
// PixelMeterRatio 定义物理世界的米和屏幕像素之间的换算关系，
// 所有场景坐标均以米为单位。
type Config struct {
	// ScreenWidth 逻辑屏幕宽度（像素）
	ScreenWidth int `yaml:"screenWidth"`
	// ScreenHeight 逻辑屏幕高度（像素）
	ScreenHeight int `yaml:"screenHeight"`
	// PixelMeterRatio 每米对应的像素数
	PixelMeterRatio float64 `yaml:"pixelMeterRatio"`

	// NumLevels 游戏关卡总数，AdvanceLevel 用它判断是否回到选关界面
	NumLevels int `yaml:"numLevels"`
	// NumHelpScenes 帮助页数量，为 0 表示没有帮助界面
	NumHelpScenes int `yaml:"numHelpScenes"`

	// StorageKey 持久化存储的应用标识（gdata 的 AppName）
	StorageKey string `yaml:"storageKey"`

	// MobileMode 移动端模式（禁用键盘模拟重力感应等桌面特性）
	MobileMode bool `yaml:"mobileMode"`
	// ForceAccelerometerOff 强制关闭重力感应输入
	ForceAccelerometerOff bool `yaml:"forceAccelerometerOff"`

	// Verbose 启用详细日志输出
	Verbose bool `yaml:"verbose"`
}

// Default 返回默认配置
//
// 默认值对应 16:9 的 1600x900 逻辑屏幕，每米 100 像素，
// 即世界可见区域为 16m x 9m。
func Default() *Config {
	return &Config{
		ScreenWidth:     1600,
		ScreenHeight:    900,
		PixelMeterRatio: 100,
		NumLevels:       1,
		NumHelpScenes:   0,
		StorageKey:      "jetlag-game",
		MobileMode:      false,
		Verbose:         false,
	}
}

// Parse 从 YAML 数据解析配置
//
// 未出现在 YAML 中的字段保持默认值。
//
// 返回：
//   - *Config: 解析后的配置
//   - error: 如果反序列化或校验失败返回错误
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load 从文件加载配置
//
// 参数：
//   - path: 配置文件路径（如 "assets/config/jetlag.yaml"）
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Validate 校验配置的合法性
//
// 返回：
//   - error: 第一个不合法的字段对应的错误，全部合法返回 nil
func (c *Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size: %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.PixelMeterRatio <= 0 {
		return fmt.Errorf("invalid pixelMeterRatio: %f (must be > 0)", c.PixelMeterRatio)
	}
	if c.NumLevels < 1 {
		return fmt.Errorf("invalid numLevels: %d (must be >= 1)", c.NumLevels)
	}
	if c.NumHelpScenes < 0 {
		return fmt.Errorf("invalid numHelpScenes: %d", c.NumHelpScenes)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storageKey must not be empty")
	}
	return nil
}

// MetersWidth 返回屏幕宽度对应的米数
func (c *Config) MetersWidth() float64 {
	return float64(c.ScreenWidth) / c.PixelMeterRatio
}

// MetersHeight 返回屏幕高度对应的米数
func (c *Config) MetersHeight() float64 {
	return float64(c.ScreenHeight) / c.PixelMeterRatio
}
