// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
)

var errBoom = errors.New("boom")

func funcBuffer(rate, channels, frames int, fn func(frame, channel int) float32) *Buffer {
	b := NewSilentBuffer(rate, channels, frames)
	for c := range channels {
		for f := range frames {
			b.Channels[c][f] = fn(f, c)
		}
	}
	return b
}

func sineBuffer(rate, channels, frames int, freq float64) *Buffer {
	return funcBuffer(rate, channels, frames, func(f, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(f) / float64(rate)))
	})
}

func constBuffer(rate, channels, frames int, v float32) *Buffer {
	return funcBuffer(rate, channels, frames, func(int, int) float32 { return v })
}

// rampBuffer sets sample (f, c) to f + 1000*c.
func rampBuffer(rate, channels, frames int) *Buffer {
	return funcBuffer(rate, channels, frames, func(f, c int) float32 { return float32(f + 1000*c) })
}

// choppySource limits every read to chunk samples, which may split frames,
// and answers every other call with (0, nil).
type choppySource struct {
	Source
	chunk   int
	calls   int
	pending []float32
	eof     bool
	closed  bool
}

func (s *choppySource) ReadSamples(dst []float32) (int, error) {
	s.calls++
	if s.calls%2 == 0 {
		return 0, nil
	}

	if len(s.pending) == 0 && !s.eof {
		tmp := make([]float32, 64*s.Channels())
		n, err := s.Source.ReadSamples(tmp)
		s.pending = append(s.pending, tmp[:n]...)
		if err == io.EOF {
			s.eof = true
		} else if err != nil {
			return 0, err
		}
	}

	n := copy(dst[:min(len(dst), s.chunk)], s.pending)
	s.pending = s.pending[n:]
	if s.eof && len(s.pending) == 0 {
		return n, io.EOF
	}
	return n, nil
}

func (s *choppySource) Close() error {
	s.closed = true
	return nil
}

// failingSource returns data for a while, then an error.
type failingSource struct {
	Source
	after int
	read  int
}

func (s *failingSource) ReadSamples(dst []float32) (int, error) {
	if s.read >= s.after {
		return 0, errBoom
	}
	n, err := s.Source.ReadSamples(dst[:min(len(dst), s.after-s.read)])
	s.read += n
	return n, err
}

// stuckSource never produces data nor ends.
type stuckSource struct{ Source }

func (stuckSource) ReadSamples([]float32) (int, error) { return 0, nil }

func drain(src Source, bufSize int) ([]float32, error) {
	buf := make([]float32, bufSize)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
