// SPDX-License-Identifier: EPL-2.0

package player

import (
	"encoding/binary"
	"io"
	"sync"
	"sync/atomic"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/utils"
)

const bytesPerSample = 2

// stream renders a buffer from a start frame as interleaved int16 LE at the
// device rate and channel count.
type stream struct {
	src      audio.Source
	rate     int
	channels int
	start    float64

	mu  sync.Mutex
	tmp []float32

	produced atomic.Int64
	eofOnce  sync.Once
	onEOF    func()
}

func newStream(buf *audio.Buffer, fromFrame, rate, channels int, onEOF func()) *stream {
	var src audio.Source = buf.Reader(fromFrame)
	if buf.SampleRate != rate {
		src = audio.NewResampler(src, rate)
	}
	src = audio.NewChannelMapper(src, channels)

	return &stream{
		src:      src,
		rate:     rate,
		channels: channels,
		start:    float64(fromFrame) / float64(buf.SampleRate),
		onEOF:    onEOF,
	}
}

func (s *stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	samples := len(p) / bytesPerSample
	samples -= samples % s.channels
	if samples == 0 {
		return 0, nil
	}

	if cap(s.tmp) < samples {
		s.tmp = make([]float32, samples)
	}
	tmp := s.tmp[:samples]

	n, err := s.src.ReadSamples(tmp)
	n -= n % s.channels

	for i, v := range tmp[:n] {
		binary.LittleEndian.PutUint16(p[i*bytesPerSample:], uint16(utils.Float32ToInt16(v)))
	}
	s.produced.Add(int64(n / s.channels))

	if err == io.EOF && s.onEOF != nil {
		s.eofOnce.Do(s.onEOF)
	}

	return n * bytesPerSample, err
}

// position in seconds of the last frame handed to the device.
func (s *stream) position() float64 {
	return s.start + float64(s.produced.Load())/float64(s.rate)
}

func (s *stream) Close() error {
	return s.src.Close()
}
