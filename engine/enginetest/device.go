// SPDX-License-Identifier: EPL-2.0

// Package enginetest provides an in-memory output device.
package enginetest

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/ik5/audtrim/engine"
)

var ErrOpen = errors.New("fake device open failure")

// Device records players and suspend calls.
type Device struct {
	mu sync.Mutex

	Players    []*Player
	Suspends   int
	Resumes    int
	Opened     int
	FailOpen   bool
	SampleRate int
}

var _ engine.Device = (*Device)(nil)

// Factory opens d, counting each open.
func (d *Device) Factory(ctx context.Context, sampleRate, channels int) (engine.Device, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.FailOpen {
		return nil, ErrOpen
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.Opened++
	d.SampleRate = sampleRate
	return d, nil
}

func (d *Device) NewPlayer(r io.Reader) engine.Player {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := &Player{r: r}
	d.Players = append(d.Players, p)
	return p
}

func (d *Device) Suspend() error {
	d.mu.Lock()
	d.Suspends++
	d.mu.Unlock()
	return nil
}

func (d *Device) Resume() error {
	d.mu.Lock()
	d.Resumes++
	d.mu.Unlock()
	return nil
}

// LastPlayer returns the most recent player or nil.
func (d *Device) LastPlayer() *Player {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.Players) == 0 {
		return nil
	}
	return d.Players[len(d.Players)-1]
}

// Player pulls bytes only when Drain is called.
type Player struct {
	mu      sync.Mutex
	r       io.Reader
	playing bool
	closed  bool
}

func (p *Player) Play() {
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()
}

func (p *Player) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) Close() error {
	p.mu.Lock()
	p.closed = true
	p.playing = false
	p.mu.Unlock()
	return nil
}

func (p *Player) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Drain reads up to n bytes from the stream, as the device would while
// playing. It returns the bytes read and io.EOF once the stream ends.
func (p *Player) Drain(n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0

	for read < n {
		m, err := p.r.Read(buf[read:])
		read += m
		if err != nil {
			return buf[:read], err
		}
		if m == 0 {
			break
		}
	}

	return buf[:read], nil
}
