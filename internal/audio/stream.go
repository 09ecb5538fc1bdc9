// Package audio 提供音频文件到 PCM 流的解码
//
// 按文件扩展名选择解码器，输出统一重采样到目标采样率的流，
// 可直接交给 Ebitengine 的 audio.Player 播放。
package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Stream 解码后的 PCM 流
// 实现 io.ReadSeeker，并额外提供 Length（无限循环播放时需要）。
type Stream struct {
	io.ReadSeeker
	length int64
}

// Length 返回解码后 PCM 数据的总字节数
func (s *Stream) Length() int64 {
	return s.length
}

// Decode 解码一个音频文件
//
// 支持 .mp3 / .ogg / .wav，按 name 的扩展名选择解码器。
//
// 参数：
//   - name: 资源名（仅用扩展名，如 "music/theme.ogg"）
//   - src: 压缩音频数据
//   - sampleRate: 目标采样率（需与 audio.Context 一致）
//
// 返回：
//   - *Stream: 解码后的 PCM 流
//   - error: 不支持的格式或解码失败
func Decode(name string, src io.Reader, sampleRate int) (*Stream, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".mp3":
		d, err := mp3.DecodeWithSampleRate(sampleRate, src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode mp3 %s: %w", name, err)
		}
		return &Stream{ReadSeeker: d, length: d.Length()}, nil
	case ".ogg":
		d, err := vorbis.DecodeWithSampleRate(sampleRate, src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg %s: %w", name, err)
		}
		return &Stream{ReadSeeker: d, length: d.Length()}, nil
	case ".wav":
		d, err := wav.DecodeWithSampleRate(sampleRate, src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav %s: %w", name, err)
		}
		return &Stream{ReadSeeker: d, length: d.Length()}, nil
	default:
		return nil, fmt.Errorf("unsupported audio format %q (only .mp3/.ogg/.wav)", ext)
	}
}
