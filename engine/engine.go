// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats"
)

const (
	// DefaultSampleRate of the output device.
	DefaultSampleRate = 44100

	// Channels of the output device. Playback is always stereo.
	Channels = 2
)

var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("audio engine closed")

	// ErrNotOpen is returned by Resume and Suspend before the device is
	// opened.
	ErrNotOpen = errors.New("audio device not open")
)

// Player plays a stream of interleaved little-endian int16 samples.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

// Device is an open output device.
type Device interface {
	NewPlayer(r io.Reader) Player
	Suspend() error
	Resume() error
}

// DeviceFactory opens an output device at sampleRate with channels
// interleaved int16 channels.
type DeviceFactory func(ctx context.Context, sampleRate, channels int) (Device, error)

// State of an Engine.
type State int

const (
	Closed State = iota
	Running
	Suspended
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// Engine owns the output device and the decoder registry. The device is
// opened on first use.
type Engine struct {
	mu         sync.Mutex
	sampleRate int
	factory    DeviceFactory
	device     Device
	state      State
	closed     bool

	regOnce  sync.Once
	registry *audio.Registry
}

// Option configures an Engine.
type Option func(*Engine)

func WithSampleRate(rate int) Option {
	return func(e *Engine) {
		if rate > 0 {
			e.sampleRate = rate
		}
	}
}

// WithDeviceFactory replaces the oto device, mostly for tests.
func WithDeviceFactory(f DeviceFactory) Option {
	return func(e *Engine) { e.factory = f }
}

// New returns an engine whose device is not yet open.
func New(opts ...Option) *Engine {
	e := &Engine{
		sampleRate: DefaultSampleRate,
		factory:    NewOtoFactory(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// SampleRate of the output device.
func (e *Engine) SampleRate() int {
	return e.sampleRate
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Registry returns the decoder registry with every built-in format.
func (e *Engine) Registry() *audio.Registry {
	e.regOnce.Do(func() {
		e.registry = formats.NewRegistry()
	})
	return e.registry
}

// Device returns the output device, opening or resuming it as needed.
func (e *Engine) Device(ctx context.Context) (Device, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrClosed
	}

	switch e.state {
	case Running:
		return e.device, nil
	case Suspended:
		if err := e.device.Resume(); err != nil {
			return nil, fmt.Errorf("resume audio device: %w", err)
		}
		e.state = Running
		return e.device, nil
	}

	dev, err := e.factory(ctx, e.sampleRate, Channels)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	e.device = dev
	e.state = Running
	log.Printf("Audio output initialized: %dHz, %d channels", e.sampleRate, Channels)

	return dev, nil
}

// Resume restarts a suspended device.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.closed:
		return ErrClosed
	case e.device == nil:
		return ErrNotOpen
	case e.state == Running:
		return nil
	}

	if err := e.device.Resume(); err != nil {
		return fmt.Errorf("resume audio device: %w", err)
	}
	e.state = Running
	return nil
}

// Suspend pauses the device without closing it.
func (e *Engine) Suspend() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.closed:
		return ErrClosed
	case e.device == nil:
		return ErrNotOpen
	case e.state == Suspended:
		return nil
	}

	if err := e.device.Suspend(); err != nil {
		return fmt.Errorf("suspend audio device: %w", err)
	}
	e.state = Suspended
	return nil
}

// Close suspends the device for good. A process can open only one oto
// context, so a closed engine cannot be reopened.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	var err error
	if e.device != nil && e.state == Running {
		err = e.device.Suspend()
	}
	e.state = Closed
	e.device = nil

	return err
}
