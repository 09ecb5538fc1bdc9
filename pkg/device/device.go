// Package device 提供框架消费的设备抽象
//
// 包含四类外部能力：重力感应（Accelerometer）、触摸/鼠标手势
// （TouchScreen）、持久化键值存储（Storage）和音频播放（Speaker）。
// 核心编排层只依赖这里定义的接口，便于在测试中替换为 mock。
package device

import (
	"fmt"
	"log"

	"github.com/decker502/jetlag/pkg/config"
)

// Device 设备能力集合
// 由 pkg/app 在启动时创建一次，生命周期与进程一致。
type Device struct {
	Accelerometer Accelerometer
	Touch         *TouchScreen
	Storage       *Storage
	Speaker       *Speaker
}

// New 根据配置创建设备能力集合
//
// 存储初始化失败不是致命错误：降级为纯内存模式并继续运行
// （与 gdata 在受限平台上的行为保持一致）。
//
// 参数：
//   - cfg: 框架配置
//
// 返回：
//   - *Device: 设备集合
//   - error: 目前仅在音频上下文创建失败时返回
func New(cfg *config.Config) (*Device, error) {
	if cfg == nil {
		return nil, fmt.Errorf("device.New: config must not be nil")
	}

	storage, err := NewStorage(cfg.StorageKey)
	if err != nil {
		log.Printf("[Device] Warning: persistent storage unavailable: %v (using in-memory mode)", err)
		storage = NewMemoryStorage()
	}

	return &Device{
		Accelerometer: NewAccelerometer(cfg),
		Touch:         NewTouchScreen(),
		Storage:       storage,
		Speaker:       NewSpeaker(),
	}, nil
}
