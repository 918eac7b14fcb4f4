// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"sync"
)

const (
	fakeFrameSamples = 1152
	fakeDelay        = 576
)

// ErrFakeEngine is returned by FakeEngine when told to fail.
var ErrFakeEngine = errors.New("fake engine failure")

// FakeEngine stands in for an MP3 encoder engine. It buffers samples like a
// real encoder with look-ahead: a frame is emitted only after a full frame
// plus the delay has been received, and Flush emits whatever is still held.
//
// Each emitted frame is 8 bytes: 0xFF 0xFB, frame number, then the first
// left and right sample of the block that completed it.
type FakeEngine struct {
	mu sync.Mutex

	pending int
	frames  int

	Blocks  [][2][]int16
	Flushed bool
	Closed  bool

	// FailAtBlock makes EncodeBlock fail on that block index when >= 0.
	FailAtBlock int

	// Gate, when set, is received from before each block is encoded.
	Gate chan struct{}
	// Entered, when set, receives once per block before waiting on Gate.
	Entered chan int
}

// NewFakeEngine returns an engine that never fails.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{FailAtBlock: -1}
}

func (e *FakeEngine) EncodeBlock(left, right []int16) ([]byte, error) {
	e.mu.Lock()
	idx := len(e.Blocks)
	entered, gate := e.Entered, e.Gate
	e.mu.Unlock()

	if entered != nil {
		entered <- idx
	}
	if gate != nil {
		<-gate
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if idx == e.FailAtBlock {
		return nil, ErrFakeEngine
	}

	e.Blocks = append(e.Blocks, [2][]int16{
		append([]int16(nil), left...),
		append([]int16(nil), right...),
	})
	e.pending += len(left)

	var out []byte
	for e.pending >= fakeFrameSamples+fakeDelay {
		e.pending -= fakeFrameSamples
		out = append(out, e.frame(left[0], right[0])...)
	}

	return out, nil
}

func (e *FakeEngine) Flush() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Flushed = true

	var out []byte
	for e.pending > 0 {
		e.pending -= min(e.pending, fakeFrameSamples)
		out = append(out, e.frame(0, 0)...)
	}

	return out, nil
}

func (e *FakeEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Closed = true
	return nil
}

// BlockCount returns how many blocks were encoded.
func (e *FakeEngine) BlockCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.Blocks)
}

func (e *FakeEngine) frame(l, r int16) []byte {
	e.frames++
	return []byte{0xFF, 0xFB, byte(e.frames), 0, byte(l), byte(l >> 8), byte(r), byte(r >> 8)}
}
