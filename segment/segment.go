// SPDX-License-Identifier: EPL-2.0

// Package segment cuts a time range out of a decoded buffer.
package segment

import (
	"fmt"
	"math"

	"github.com/ik5/audtrim/audio"
)

// MaxChannels is the channel count kept by Extract; further channels are
// dropped, not mixed.
const MaxChannels = 2

// Extract copies the samples between start and end seconds into a new
// buffer. The sample range is [floor(start*rate), min(floor(end*rate), frames)).
//
// An empty or inverted range, a negative start or a non-finite bound fails
// with audio.ErrInvalidSelection. Samples are copied verbatim; buf is not
// modified.
func Extract(buf *audio.Buffer, start, end float64) (*audio.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	if !finite(start) || !finite(end) || start < 0 {
		return nil, fmt.Errorf("%w: range %v..%v", audio.ErrInvalidSelection, start, end)
	}

	rate := float64(buf.SampleRate)
	first := int(math.Floor(start * rate))
	last := min(int(math.Floor(end*rate)), buf.Frames())

	if last-first <= 0 {
		return nil, fmt.Errorf("%w: range %v..%v selects no samples of %v s", audio.ErrInvalidSelection, start, end, buf.Seconds())
	}

	channels := make([][]float32, min(MaxChannels, buf.NumChannels()))
	for c := range channels {
		channels[c] = append([]float32(nil), buf.Channels[c][first:last]...)
	}

	return &audio.Buffer{SampleRate: buf.SampleRate, Channels: channels}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
