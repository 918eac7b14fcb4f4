// SPDX-License-Identifier: EPL-2.0

//go:build !nolame

package mp3

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/internal/audiotest"
)

// flushRecorder wraps the LAME engine and records what Flush returned.
type flushRecorder struct {
	Engine
	blocks  int
	flushed int
	closed  bool
}

func (r *flushRecorder) EncodeBlock(left, right []int16) ([]byte, error) {
	r.blocks++
	return r.Engine.EncodeBlock(left, right)
}

func (r *flushRecorder) Flush() ([]byte, error) {
	data, err := r.Engine.Flush()
	r.flushed = len(data)
	return data, err
}

func (r *flushRecorder) Close() error {
	r.closed = true
	return r.Engine.Close()
}

func halfSine(channels, frames int) *audio.Buffer {
	return audiotest.FuncBuffer(44100, channels, frames, func(frame, _ int) float32 {
		return float32(0.5 * math.Sin(2*math.Pi*440*float64(frame)/44100))
	})
}

func TestLameEngine_RoundTrip(t *testing.T) {
	t.Parallel()

	frames := BlockSize*3 + 100

	tests := []struct {
		name     string
		channels int
	}{
		{"mono", 1},
		{"stereo", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			channels := tt.channels

			var rec *flushRecorder
			enc := Encoder{
				BitRate: 128,
				NewEngine: func(rate, ch, bitRate int) (Engine, error) {
					eng, err := newLameEngine(rate, ch, bitRate)
					if err != nil {
						return nil, err
					}
					rec = &flushRecorder{Engine: eng}
					return rec, nil
				},
			}

			out, err := enc.Encode(context.Background(), halfSine(channels, frames), nil)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if rec.blocks != 4 {
				t.Errorf("blocks = %d, want 4", rec.blocks)
			}
			if rec.flushed == 0 {
				t.Error("flush returned no data for unaligned input")
			}
			if !rec.closed {
				t.Error("engine not closed")
			}

			src, err := Decoder{}.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			decoded, err := audio.ReadAll(src)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			if decoded.SampleRate != 44100 || decoded.NumChannels() != 2 {
				t.Fatalf("decoded %d Hz, %d channels", decoded.SampleRate, decoded.NumChannels())
			}

			// the encoder adds its start delay, an info frame and end padding
			got := decoded.Frames()
			if got < frames || got > frames+3*BlockSize {
				t.Errorf("decoded %d frames, want %d..%d", got, frames, frames+3*BlockSize)
			}

			var peak, spread float32
			for i := BlockSize * 2; i < min(got, frames); i++ {
				l, r := decoded.Channels[0][i], decoded.Channels[1][i]
				peak = max(peak, float32(math.Abs(float64(l))))
				if channels == 1 {
					spread = max(spread, float32(math.Abs(float64(l-r))))
				}
			}
			if peak < 0.3 || peak > 0.7 {
				t.Errorf("decoded peak = %v, want about 0.5", peak)
			}
			if spread > 0.05 {
				t.Errorf("mono input decoded with channel difference %v", spread)
			}
		})
	}
}

func TestLameEngine_FlushAfterPartialBlock(t *testing.T) {
	t.Parallel()

	eng, err := newLameEngine(44100, 2, 128)
	if err != nil {
		t.Fatalf("newLameEngine() error = %v", err)
	}
	defer eng.Close()

	left := make([]int16, 100)
	right := make([]int16, 100)
	for i := range left {
		left[i] = int16(i * 100)
		right[i] = -left[i]
	}

	if _, err := eng.EncodeBlock(left, right); err != nil {
		t.Fatalf("EncodeBlock() error = %v", err)
	}

	tail, err := eng.Flush()
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if len(tail) == 0 {
		t.Fatal("Flush() returned no data")
	}
}
