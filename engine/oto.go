// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

var errFormatChanged = errors.New("oto context already created with another format")

type newContextFunc func(*oto.NewContextOptions) (*oto.Context, chan struct{}, error)

// otoOpener creates the oto context once and keeps it with its ready channel,
// since oto allows a single context per process. An open call that gives up
// waiting leaves the context pending for the next call.
type otoOpener struct {
	mu         sync.Mutex
	newContext newContextFunc

	otoCtx     *oto.Context
	ready      chan struct{}
	sampleRate int
	channels   int
}

// NewOtoFactory returns a DeviceFactory that opens the system output through
// oto. Calls after the first reuse the same context.
func NewOtoFactory() DeviceFactory {
	o := &otoOpener{newContext: oto.NewContext}
	return o.open
}

func (o *otoOpener) open(ctx context.Context, sampleRate, channels int) (Device, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ready == nil {
		otoCtx, ready, err := o.newContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create oto context: %w", err)
		}
		o.otoCtx, o.ready = otoCtx, ready
		o.sampleRate, o.channels = sampleRate, channels
	} else if o.sampleRate != sampleRate || o.channels != channels {
		return nil, fmt.Errorf("%w: %dHz/%dch, asked for %dHz/%dch",
			errFormatChanged, o.sampleRate, o.channels, sampleRate, channels)
	}

	select {
	case <-o.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &otoDevice{ctx: o.otoCtx}, nil
}

type otoDevice struct {
	ctx *oto.Context
}

func (d *otoDevice) NewPlayer(r io.Reader) Player {
	return d.ctx.NewPlayer(r)
}

func (d *otoDevice) Suspend() error { return d.ctx.Suspend() }
func (d *otoDevice) Resume() error  { return d.ctx.Resume() }
