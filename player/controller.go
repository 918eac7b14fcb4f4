// SPDX-License-Identifier: EPL-2.0

package player

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/engine"
)

// ErrNotLoaded is returned by operations that need a buffer.
var ErrNotLoaded = errors.New("no audio loaded")

// ErrInvalidPosition is returned by Seek for a NaN position.
var ErrInvalidPosition = errors.New("invalid playhead position")

var errStale = errors.New("stale stream")

// Output provides the device a Controller plays on. *engine.Engine
// satisfies it.
type Output interface {
	Device(ctx context.Context) (engine.Device, error)
	SampleRate() int
}

// Controller plays one buffer at a time on an Output.
type Controller struct {
	out     Output
	onState func(State)

	mu     sync.Mutex
	state  State
	buf    *audio.Buffer
	pos    float64 // seconds, while no stream is active
	stream *stream
	player engine.Player
	gen    int
	err    error
}

// NewController returns an idle controller. onState may be nil; it is
// called without the controller lock held.
func NewController(out Output, onState func(State)) *Controller {
	return &Controller{out: out, onState: onState}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error that moved the controller to Error.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Buffer returns the loaded buffer or nil.
func (c *Controller) Buffer() *audio.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf
}

// Duration of the loaded buffer in seconds.
func (c *Controller) Duration() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buf == nil {
		return 0
	}
	return c.buf.Seconds()
}

// Position returns the playhead in seconds. While playing it is the last
// position handed to the device, which runs slightly ahead of what is heard.
func (c *Controller) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

func (c *Controller) position() float64 {
	if c.stream != nil {
		return min(c.stream.position(), c.buf.Seconds())
	}
	return c.pos
}

// BeginLoad drops the current buffer and waits for Load.
func (c *Controller) BeginLoad() error {
	return c.apply(EventLoad, func() error {
		c.teardown()
		c.buf = nil
		c.pos = 0
		c.err = nil
		return nil
	})
}

// Load makes buf the current buffer with the playhead at zero.
func (c *Controller) Load(buf *audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	if c.State() != Loading {
		if err := c.BeginLoad(); err != nil {
			return err
		}
	}

	return c.apply(EventLoaded, func() error {
		c.buf = buf
		c.pos = 0
		return nil
	})
}

// Play starts or resumes playback, opening the device on first use. From
// Ended playback restarts at zero.
func (c *Controller) Play(ctx context.Context) error {
	c.mu.Lock()
	if c.state == Ended {
		c.teardown()
		c.pos = 0
	}
	c.mu.Unlock()

	return c.apply(EventPlay, func() error {
		if c.player == nil {
			if err := c.open(ctx); err != nil {
				return err
			}
		}
		c.player.Play()
		return nil
	})
}

// Pause holds the playhead.
func (c *Controller) Pause() error {
	return c.apply(EventPause, func() error {
		c.pausePlayer()
		return nil
	})
}

// Seek moves the playhead, clamped to the buffer. Playback continues from
// the new position if it was running.
func (c *Controller) Seek(ctx context.Context, seconds float64) error {
	if math.IsNaN(seconds) {
		return ErrInvalidPosition
	}

	return c.apply(EventSeek, func() error {
		active := c.player != nil && (c.state == Playing || c.state == Buffering)

		c.teardown()
		c.pos = max(0, min(seconds, c.buf.Seconds()))

		if !active {
			return nil
		}
		if err := c.open(ctx); err != nil {
			return err
		}
		if c.state == Playing {
			c.player.Play()
		}
		return nil
	})
}

// Stall marks playback as waiting for data.
func (c *Controller) Stall() error {
	return c.apply(EventStall, func() error {
		c.pausePlayer()
		return nil
	})
}

// Resume continues after Stall.
func (c *Controller) Resume() error {
	return c.apply(EventResume, func() error {
		if c.player != nil {
			c.player.Play()
		}
		return nil
	})
}

// Finish marks the end of the buffer as reached.
func (c *Controller) Finish() error {
	return c.apply(EventFinish, func() error {
		c.pos = c.position()
		c.pausePlayer()
		return nil
	})
}

// Fail stops playback and records err.
func (c *Controller) Fail(err error) error {
	return c.apply(EventFail, func() error {
		c.teardown()
		c.err = err
		log.Printf("player: %v", err)
		return nil
	})
}

// Stop halts playback and rewinds to zero.
func (c *Controller) Stop() error {
	return c.apply(EventStop, func() error {
		c.teardown()
		c.pos = 0
		return nil
	})
}

// Close releases the player. The controller returns to Idle.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.teardown()
	c.buf = nil
	changed := c.state != Idle
	c.state = Idle
	c.mu.Unlock()

	if changed && c.onState != nil {
		c.onState(Idle)
	}
	return nil
}

// apply runs fn under the lock if ev is valid in the current state and
// commits the transition when fn succeeds.
func (c *Controller) apply(ev Event, fn func() error) error {
	c.mu.Lock()

	next, err := Transition(c.state, ev)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if needsBuffer(ev) && c.buf == nil {
		c.mu.Unlock()
		return ErrNotLoaded
	}

	if err := fn(); err != nil {
		c.mu.Unlock()
		return err
	}

	changed := next != c.state
	c.state = next
	c.mu.Unlock()

	if changed && c.onState != nil {
		c.onState(next)
	}
	return nil
}

func needsBuffer(ev Event) bool {
	switch ev {
	case EventPlay, EventSeek:
		return true
	default:
		return false
	}
}

// open creates a stream at pos and a paused player for it.
func (c *Controller) open(ctx context.Context) error {
	dev, err := c.out.Device(ctx)
	if err != nil {
		return err
	}

	c.gen++
	gen := c.gen
	from := int(math.Floor(c.pos * float64(c.buf.SampleRate)))

	c.stream = newStream(c.buf, from, c.out.SampleRate(), engine.Channels, func() {
		// the device reads on its own goroutine and may hold its own locks
		go c.ended(gen)
	})
	c.player = dev.NewPlayer(c.stream)

	return nil
}

func (c *Controller) ended(gen int) {
	err := c.apply(EventFinish, func() error {
		if gen != c.gen {
			return errStale
		}
		c.pos = c.position()
		c.pausePlayer()
		return nil
	})
	if err != nil && !errors.Is(err, errStale) && !errors.Is(err, ErrInvalidTransition) {
		log.Printf("player: finish: %v", err)
	}
}

func (c *Controller) pausePlayer() {
	if c.player != nil {
		c.player.Pause()
	}
}

// teardown closes the player and keeps its position.
func (c *Controller) teardown() {
	if c.stream != nil {
		c.pos = c.position()
	}
	if c.player != nil {
		if err := c.player.Close(); err != nil {
			log.Printf("player: close: %v", err)
		}
	}
	if c.stream != nil {
		c.stream.Close()
	}
	c.player, c.stream = nil, nil
	c.gen++
}
