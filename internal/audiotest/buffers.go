// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/ik5/audtrim/audio"
)

// SineBuffer returns a buffer holding a full-scale sine wave on every channel.
func SineBuffer(sampleRate, channels, frames int, frequency float64) *audio.Buffer {
	return FuncBuffer(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// ConstantBuffer returns a buffer where every sample equals value.
func ConstantBuffer(sampleRate, channels, frames int, value float32) *audio.Buffer {
	return FuncBuffer(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// IndexBuffer encodes the frame index and channel into each sample as
// frame/frames + channel, so slicing results can be checked exactly.
func IndexBuffer(sampleRate, channels, frames int) *audio.Buffer {
	return FuncBuffer(sampleRate, channels, frames, func(frame, channel int) float32 {
		return float32(frame)/float32(frames) + float32(channel)
	})
}

// FuncBuffer builds a buffer from a per-sample generator.
func FuncBuffer(sampleRate, channels, frames int, fn func(frame, channel int) float32) *audio.Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
		for f := range frames {
			data[c][f] = fn(f, c)
		}
	}

	return &audio.Buffer{SampleRate: sampleRate, Channels: data}
}
