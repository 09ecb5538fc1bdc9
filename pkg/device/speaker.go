package device

import (
	"bytes"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	internalaudio "github.com/decker502/jetlag/internal/audio"
)

// 音频上下文采样率
const sampleRate = 48000

// Sound 一个可播放的音频句柄
//
// 背景音乐和音效都通过这个接口操作。Stage 的音乐状态机只依赖
// Play/Pause/Stop，测试中用 mock 实现验证幂等语义。
type Sound interface {
	// Play 从当前位置开始播放
	Play()
	// Pause 暂停播放，保留播放位置
	Pause()
	// Stop 停止播放并回到开头
	Stop()
	// IsPlaying 返回是否正在播放
	IsPlaying() bool
	// SetVolume 设置音量 (0.0 ~ 1.0)
	SetVolume(volume float64)
}

// Speaker 音频播放设备
// 包装 Ebitengine 的 audio.Context，负责解码并创建 Sound。
type Speaker struct {
	ctx *audio.Context
}

// NewSpeaker 创建音频播放设备
//
// audio.Context 全进程只能存在一个，重复创建时复用现有实例。
func NewSpeaker() *Speaker {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Speaker{ctx: ctx}
}

// NewSound 解码音频数据并创建播放句柄
//
// 参数：
//   - name: 资源名（决定解码器，如 "music/theme.ogg"）
//   - data: 压缩音频数据
//   - loop: 是否无限循环（背景音乐用 true）
//
// 返回：
//   - Sound: 播放句柄
//   - error: 解码或播放器创建失败
func (s *Speaker) NewSound(name string, data []byte, loop bool) (Sound, error) {
	stream, err := internalaudio.Decode(name, bytes.NewReader(data), sampleRate)
	if err != nil {
		return nil, err
	}

	var player *audio.Player
	if loop {
		looped := audio.NewInfiniteLoop(stream, stream.Length())
		player, err = s.ctx.NewPlayer(looped)
	} else {
		player, err = s.ctx.NewPlayer(stream)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", name, err)
	}

	return &playerSound{name: name, player: player}, nil
}

// playerSound 基于 audio.Player 的 Sound 实现
type playerSound struct {
	name   string
	player *audio.Player
}

func (p *playerSound) Play() {
	p.player.Play()
}

func (p *playerSound) Pause() {
	p.player.Pause()
}

func (p *playerSound) Stop() {
	p.player.Pause()
	if err := p.player.Rewind(); err != nil {
		log.Printf("[Speaker] Warning: failed to rewind %s: %v", p.name, err)
	}
}

func (p *playerSound) IsPlaying() bool {
	return p.player.IsPlaying()
}

func (p *playerSound) SetVolume(volume float64) {
	p.player.SetVolume(volume)
}
