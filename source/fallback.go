// SPDX-License-Identifier: EPL-2.0

package source

import (
	"math"

	"github.com/ik5/audtrim/audio"
)

// Placeholder parameters.
const (
	PlaceholderSeconds    = 30
	PlaceholderSampleRate = 44100
	PlaceholderChannels   = 2
	PlaceholderFrequency  = 440.0
	PlaceholderLevelDB    = -6.0
)

// Placeholder builds the synthetic stand-in returned with KindFallback: a
// sine tone on every channel.
func Placeholder() *audio.Buffer {
	frames := PlaceholderSeconds * PlaceholderSampleRate
	amp := math.Pow(10, PlaceholderLevelDB/20)
	step := 2 * math.Pi * PlaceholderFrequency / PlaceholderSampleRate

	tone := make([]float32, frames)
	for i := range tone {
		tone[i] = float32(amp * math.Sin(step*float64(i)))
	}

	channels := make([][]float32, PlaceholderChannels)
	channels[0] = tone
	for c := 1; c < PlaceholderChannels; c++ {
		channels[c] = append([]float32(nil), tone...)
	}

	return &audio.Buffer{SampleRate: PlaceholderSampleRate, Channels: channels}
}
