// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// ErrUnsupportedLayout is returned for streams with no channels, no sample
// rate or a bit depth outside 4..32.
var ErrUnsupportedLayout = errors.New("unsupported FLAC layout")

// frameParser is the part of flac.Stream the source uses, to allow testing
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	stream     frameParser
	closer     io.Closer
	sampleRate int
	channels   int
	bitDepth   int

	// current frame, consumed from pos
	cur *frame.Frame
	pos int
	eof bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 * s.channels }

func (s *source) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		if s.cur == nil || s.pos >= s.cur.Subframes[0].NSamples {
			if s.eof {
				break
			}

			f, err := s.stream.ParseNext()
			if err == io.EOF {
				s.eof = true
				break
			}
			if err != nil {
				return written, fmt.Errorf("flac: %w", err)
			}
			if len(f.Subframes) < s.channels {
				return written, fmt.Errorf("%w: frame has %d subframes, want %d", ErrUnsupportedLayout, len(f.Subframes), s.channels)
			}
			s.cur, s.pos = f, 0
			continue
		}

		n := min((len(dst)-written)/s.channels, s.cur.Subframes[0].NSamples-s.pos)
		for i := range n {
			for c := range s.channels {
				dst[written+i*s.channels+c] = utils.IntToFloat32(int(s.cur.Subframes[c].Samples[s.pos+i]), s.bitDepth)
			}
		}
		s.pos += n
		written += n * s.channels
	}

	if s.eof && (s.cur == nil || s.pos >= s.cur.Subframes[0].NSamples) {
		return written, io.EOF
	}

	return written, nil
}

// Decoder decodes FLAC streams with github.com/mewkiz/flac.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("flac: %w", err)
	}

	info := stream.Info
	sampleRate := int(info.SampleRate)
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)

	if sampleRate == 0 || channels == 0 || bitDepth < 4 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels, %d bits", ErrUnsupportedLayout, sampleRate, channels, bitDepth)
	}

	return &source{
		stream:     stream,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}, nil
}
