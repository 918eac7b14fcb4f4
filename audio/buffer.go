// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer holds decoded PCM audio with one float32 slice per channel.
//
// Every channel slice has exactly Frames() elements. Pipeline stages never
// change a Buffer they received; they build a new one.
type Buffer struct {
	SampleRate int
	Channels   [][]float32

	// Truncated is set when the buffer was decoded from a bounded prefix of
	// its source, so it holds less audio than the source does.
	Truncated bool
}

// NewBuffer validates the channel layout and returns a Buffer over channels.
// The slices are not copied.
func NewBuffer(sampleRate int, channels [][]float32) (*Buffer, error) {
	b := &Buffer{SampleRate: sampleRate, Channels: channels}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks that b has a positive sample rate, at least one channel
// and channel slices of equal length. Buffers built as literals should be
// validated before they are indexed by frame.
func (b *Buffer) Validate() error {
	if b == nil || len(b.Channels) == 0 {
		return ErrNoChannels
	}
	if b.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	frames := len(b.Channels[0])
	for i, ch := range b.Channels[1:] {
		if len(ch) != frames {
			return fmt.Errorf("channel %d has %d frames, want %d: %w", i+1, len(ch), frames, ErrChannelLength)
		}
	}
	return nil
}

// NewSilentBuffer allocates a zeroed buffer.
func NewSilentBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	return &Buffer{SampleRate: sampleRate, Channels: data}
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.Channels) }

// Frames returns the number of frames (samples per channel).
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Seconds returns the buffer length in seconds.
func (b *Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Duration returns the buffer length as a time.Duration.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Seconds() * float64(time.Second))
}

// Reader streams the buffer as an interleaved Source, starting at fromFrame.
func (b *Buffer) Reader(fromFrame int) Source {
	fromFrame = max(0, min(fromFrame, b.Frames()))
	return &bufferSource{buf: b, pos: fromFrame}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.NumChannels() }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.NumChannels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.buf.Frames() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		idx := f * channels
		for c := range channels {
			dst[idx+c] = s.buf.Channels[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Frames() {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
