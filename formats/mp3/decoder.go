// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audtrim/audio"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte

	// odd holds a trailing byte left over from a read that split a sample
	odd    byte
	hasOdd bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // sample capacity, not bytes

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	// go-mp3 returns 16-bit little-endian PCM bytes, stereo interleaved
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	off := 0
	if s.hasOdd {
		s.buf[0] = s.odd
		s.hasOdd = false
		off = 1
	}

	n, err := s.dec.Read(s.buf[off:])
	n += off
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}

	if n%2 == 1 {
		s.odd = s.buf[n-1]
		s.hasOdd = true
		n--
	}

	samples := n / 2
	for i := range samples {
		val := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(val) / 32768.0
	}

	return samples, err
}

// Decoder decodes MPEG audio layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	// go-mp3 always outputs stereo
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   2,
		buf:        make([]byte, 8192),
	}, nil
}
