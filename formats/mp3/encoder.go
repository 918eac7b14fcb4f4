// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"context"
	"fmt"
	"slices"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/utils"
)

const (
	// BlockSize is the number of frames handed to the engine per call.
	BlockSize = 1152

	// DefaultBitRate in kbit/s.
	DefaultBitRate = 128

	// MIMEType of encoded output.
	MIMEType = "audio/mp3"

	engineChannels = 2
)

var (
	mpeg1Rates = []int{32000, 44100, 48000}
	mpeg2Rates = []int{8000, 11025, 12000, 16000, 22050, 24000}

	mpeg1BitRates = []int{32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}
	mpeg2BitRates = []int{8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160}
)

// Engine is a stateful MP3 encoder. Blocks must be submitted in order, and
// Flush must be called once after the last block to drain buffered frames.
type Engine interface {
	EncodeBlock(left, right []int16) ([]byte, error)
	Flush() ([]byte, error)
	Close() error
}

// EngineFactory opens an engine for the given stream parameters.
type EngineFactory func(sampleRate, channels, bitRate int) (Engine, error)

// Encoder encodes buffers to constant bit rate MP3.
type Encoder struct {
	// BitRate in kbit/s. Zero means DefaultBitRate.
	BitRate int

	// NewEngine overrides the engine used for encoding. Nil selects the
	// built-in LAME engine.
	NewEngine EngineFactory
}

func (Encoder) MIMEType() string  { return MIMEType }
func (Encoder) Extension() string { return "mp3" }

// ValidateParams reports whether rate and bitRate form a valid MPEG layer III
// configuration.
func ValidateParams(sampleRate, bitRate int) error {
	switch {
	case slices.Contains(mpeg1Rates, sampleRate):
		if !slices.Contains(mpeg1BitRates, bitRate) {
			return fmt.Errorf("%w: bit rate %d kbit/s not valid for MPEG-1 at %d Hz", ErrEncoderInit, bitRate, sampleRate)
		}
	case slices.Contains(mpeg2Rates, sampleRate):
		if !slices.Contains(mpeg2BitRates, bitRate) {
			return fmt.Errorf("%w: bit rate %d kbit/s not valid for MPEG-2 at %d Hz", ErrEncoderInit, bitRate, sampleRate)
		}
	default:
		return fmt.Errorf("%w: unsupported sample rate %d Hz", ErrEncoderInit, sampleRate)
	}

	return nil
}

// Encode converts buf to MP3 in blocks of BlockSize frames and appends the
// engine's flush output. Mono input is fed to both engine channels.
//
// progress, if not nil, receives blocks/total*90 after each block, 95 after
// the flush and 100 once the output is assembled.
func (e Encoder) Encode(ctx context.Context, buf *audio.Buffer, progress func(float64)) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoderInit, err)
	}

	channels := buf.NumChannels()
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d channels, want 1 or 2", ErrEncoderInit, channels)
	}

	bitRate := e.BitRate
	if bitRate == 0 {
		bitRate = DefaultBitRate
	}

	if err := ValidateParams(buf.SampleRate, bitRate); err != nil {
		return nil, err
	}

	newEngine := e.NewEngine
	if newEngine == nil {
		newEngine = newLameEngine
	}

	eng, err := newEngine(buf.SampleRate, engineChannels, bitRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoderInit, err)
	}
	defer eng.Close()

	frames := buf.Frames()
	total := (frames + BlockSize - 1) / BlockSize

	left := make([]int16, BlockSize)
	right := make([]int16, BlockSize)
	chunks := make([][]byte, 0, total+1)
	size := 0

	for block := range total {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := block * BlockSize
		end := min(start+BlockSize, frames)
		n := end - start

		utils.Float32sToInt16s(left[:n], buf.Channels[0][start:end])
		if channels == 2 {
			utils.Float32sToInt16s(right[:n], buf.Channels[1][start:end])
		} else {
			copy(right[:n], left[:n])
		}

		data, err := eng.EncodeBlock(left[:n], right[:n])
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrEncoding, block, err)
		}
		if len(data) > 0 {
			chunks = append(chunks, data)
			size += len(data)
		}

		if progress != nil {
			progress(float64(block+1) / float64(total) * 90)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tail, err := eng.Flush()
	if err != nil {
		return nil, fmt.Errorf("%w: flush: %w", ErrEncoding, err)
	}
	if len(tail) > 0 {
		chunks = append(chunks, tail)
		size += len(tail)
	}

	if progress != nil {
		progress(95)
	}

	out := make([]byte, 0, size)
	for _, c := range chunks {
		out = append(out, c...)
	}

	if progress != nil {
		progress(100)
	}

	return out, nil
}
