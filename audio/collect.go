// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// ReadAll drains src into a Buffer, de-interleaving its samples per channel.
//
// The source is not closed.
func ReadAll(src Source) (*Buffer, error) {
	buf, _, err := collect(src, -1)
	return buf, err
}

// ReadPrefix reads at most maxFrames frames from src. The returned Buffer is
// marked Truncated when src still had data after maxFrames.
func ReadPrefix(src Source, maxFrames int) (*Buffer, error) {
	buf, more, err := collect(src, maxFrames)
	if err != nil {
		return nil, err
	}
	buf.Truncated = more
	return buf, nil
}

const maxEmptyReads = 100

func collect(src Source, maxFrames int) (*Buffer, bool, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, false, ErrNoChannels
	}
	if src.SampleRate() <= 0 {
		return nil, false, ErrInvalidSampleRate
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	// read whole frames only
	bufSize -= bufSize % channels
	tmp := make([]float32, bufSize)

	data := make([][]float32, channels)
	frames := 0

	// interleaved samples may arrive split across reads
	var carry []float32
	empty := 0

	for {
		want := len(tmp)
		if maxFrames >= 0 {
			left := (maxFrames-frames)*channels - len(carry)
			if left <= 0 {
				more, err := hasMore(src, channels)
				if err != nil {
					return nil, false, err
				}
				return finish(src.SampleRate(), data), more, nil
			}
			want = min(want, left)
		}

		n, err := src.ReadSamples(tmp[:want])
		if n == 0 && err == nil {
			empty++
			if empty >= maxEmptyReads {
				return nil, false, io.ErrNoProgress
			}
			continue
		}
		empty = 0

		if n > 0 {
			samples := tmp[:n]
			if len(carry) > 0 {
				samples = append(carry, samples...)
				carry = nil
			}

			whole := len(samples) / channels
			for f := range whole {
				for c := range channels {
					data[c] = append(data[c], samples[f*channels+c])
				}
			}
			frames += whole

			if rest := samples[whole*channels:]; len(rest) > 0 {
				carry = append([]float32(nil), rest...)
			}
		}

		if err == io.EOF {
			return finish(src.SampleRate(), data), false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("read samples: %w", err)
		}
	}
}

// hasMore reads one frame past the prefix limit to see whether src holds more.
func hasMore(src Source, channels int) (bool, error) {
	one := make([]float32, channels)
	for range maxEmptyReads {
		n, err := src.ReadSamples(one)
		if n > 0 {
			return true, nil
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("read past prefix: %w", err)
		}
	}
	return false, io.ErrNoProgress
}

func finish(sampleRate int, data [][]float32) *Buffer {
	for c := range data {
		if data[c] == nil {
			data[c] = []float32{}
		}
	}
	return &Buffer{SampleRate: sampleRate, Channels: data}
}
