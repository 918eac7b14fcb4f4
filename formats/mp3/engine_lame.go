// SPDX-License-Identifier: EPL-2.0

//go:build !nolame

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/viert/lame"
)

const lameQuality = 2

var errLameParams = errors.New("lame_init_params rejected the configuration")

type lameEngine struct {
	enc *lame.Encoder
	pcm []byte
}

func newLameEngine(sampleRate, channels, bitRate int) (Engine, error) {
	enc := lame.Init()
	enc.SetNumChannels(channels)
	enc.SetInSamplerate(sampleRate)
	enc.SetBitrate(bitRate)
	enc.SetQuality(lameQuality)

	if rc := enc.InitParams(); rc < 0 {
		enc.Close()
		return nil, fmt.Errorf("%w (code %d)", errLameParams, rc)
	}

	return &lameEngine{
		enc: enc,
		pcm: make([]byte, BlockSize*channels*2),
	}, nil
}

func (e *lameEngine) EncodeBlock(left, right []int16) ([]byte, error) {
	need := len(left) * 4
	if cap(e.pcm) < need {
		e.pcm = make([]byte, need)
	}
	pcm := e.pcm[:need]

	for i := range left {
		binary.LittleEndian.PutUint16(pcm[i*4:], uint16(left[i]))
		binary.LittleEndian.PutUint16(pcm[i*4+2:], uint16(right[i]))
	}

	return append([]byte(nil), e.enc.Encode(pcm)...), nil
}

func (e *lameEngine) Flush() ([]byte, error) {
	return append([]byte(nil), e.enc.Flush()...), nil
}

func (e *lameEngine) Close() error {
	e.enc.Close()
	return nil
}
