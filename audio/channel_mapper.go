// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper adapts a source to a fixed channel count.
//
// Mono input is copied into every output channel. Input with more channels
// than requested keeps the first ones; no mixing is done.
type ChannelMapper struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMapper(src Source, channels int) *ChannelMapper {
	return &ChannelMapper{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.channels }
func (m *ChannelMapper) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMapper) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("close mapped source: %w", err)
	}
	return nil
}

func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	if frames == 0 {
		return 0, nil
	}

	need := frames * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	got := n / in

	for f := range got {
		base := f * in
		out := f * m.channels
		for c := range m.channels {
			if in == 1 {
				dst[out+c] = m.tmp[base]
			} else if c < in {
				dst[out+c] = m.tmp[base+c]
			} else {
				dst[out+c] = 0
			}
		}
	}

	return got * m.channels, err
}
