// SPDX-License-Identifier: EPL-2.0

// Package formats wires the individual codec packages into a decoder
// registry.
package formats

import (
	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats/aiff"
	"github.com/ik5/audtrim/formats/flac"
	"github.com/ik5/audtrim/formats/mp3"
	"github.com/ik5/audtrim/formats/vorbis"
	"github.com/ik5/audtrim/formats/wav"
)

// Format keys used by the registry and by format sniffing.
const (
	WAV  = "wav"
	MP3  = "mp3"
	Ogg  = "ogg"
	AIFF = "aiff"
	FLAC = "flac"
)

// NewRegistry returns a registry with every supported decoder registered.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(WAV, wav.Decoder{})
	reg.Register(MP3, mp3.Decoder{})
	reg.Register(Ogg, vorbis.Decoder{})
	reg.Register(AIFF, aiff.Decoder{})
	reg.Register(FLAC, flac.Decoder{})

	return reg
}
