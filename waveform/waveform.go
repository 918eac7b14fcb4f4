// SPDX-License-Identifier: EPL-2.0

// Package waveform computes peak overviews for drawing a buffer.
package waveform

import (
	"fmt"

	"github.com/ik5/audtrim/audio"
)

// Peaks mixes buf down to mono and returns the maximum absolute sample of
// each of buckets equal slices. With more buckets than frames, frames are
// repeated. Truncated buffers are fine.
func Peaks(buf *audio.Buffer, buckets int) ([]float32, error) {
	if buckets <= 0 || buf == nil || buf.Frames() == 0 {
		return nil, nil
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	mono, err := audio.ReadAll(audio.NewMonoMixer(buf.Reader(0)))
	if err != nil {
		return nil, fmt.Errorf("mix waveform: %w", err)
	}

	samples := mono.Channels[0]
	frames := len(samples)
	peaks := make([]float32, buckets)

	for i := range peaks {
		lo := i * frames / buckets
		hi := max((i+1)*frames/buckets, lo+1)

		var peak float32
		for _, s := range samples[lo:hi] {
			if s < 0 {
				s = -s
			}
			peak = max(peak, s)
		}
		peaks[i] = peak
	}

	return peaks, nil
}
