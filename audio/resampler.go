// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audtrim/utils"
)

// Resampler streams from src to a target sample rate using cubic interpolation.
// Works on interleaved samples and preserves the channel count. A one-pole
// low-pass runs on the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// window over source frames base-1, base, base+1, base+2
	frames [4][]float32
	base   int
	frac   float64
	total  int // real source frames read so far

	in     []float32
	primed bool
	eof    bool
	done   bool

	lowpass bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
		in:       make([]float32, channels),
		lowpass:  ratio > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("close resampler source: %w", err)
	}
	return nil
}

// readFrame reads one source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.in)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("resample read: %w", err)
	}

	if n < r.channels {
		r.eof = true
		return false, nil
	}

	copy(dst, r.in)
	if r.lowpass {
		for c := range r.channels {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}
	r.total++

	return true, nil
}

// fill loads the source frame for slot, or repeats the previous slot past the end.
func (r *Resampler) fill(slot int) error {
	ok, err := r.readFrame(r.frames[slot])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.frames[slot], r.frames[slot-1])
	}
	return nil
}

func (r *Resampler) prime() error {
	n, err := r.src.ReadSamples(r.in)
	if err != nil && err != io.EOF {
		return fmt.Errorf("resample prime: %w", err)
	}
	if n < r.channels {
		return io.EOF
	}
	if err == io.EOF {
		r.eof = true
	}

	// seed the filter with the first frame to avoid a warm-up transient
	copy(r.state, r.in)
	copy(r.frames[1], r.in)
	copy(r.frames[0], r.in)
	r.total = 1

	if err := r.fill(2); err != nil {
		return err
	}
	return r.fill(3)
}

func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.base++

	return r.fill(3)
}

// ReadSamples produces samples at the target rate.
// dst length should be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			r.done = true
			return 0, err
		}
		r.primed = true
	}

	written := 0
	needed := len(dst) / r.channels

	for written < needed {
		for r.frac >= 1.0 {
			r.frac -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if r.eof && float64(r.base)+r.frac > float64(r.total-1) {
			r.done = true
			break
		}

		alpha := float32(r.frac)
		out := written * r.channels
		for c := range r.channels {
			dst[out+c] = utils.CubicInterpolate(
				r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
		}

		written++
		r.frac += r.ratio
	}

	if r.done {
		return written * r.channels, io.EOF
	}
	return written * r.channels, nil
}
