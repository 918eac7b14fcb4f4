// SPDX-License-Identifier: EPL-2.0

package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats"
	"github.com/ik5/audtrim/formats/mp3"
	"github.com/ik5/audtrim/formats/wav"
	"github.com/ik5/audtrim/segment"
	"github.com/ik5/audtrim/source"
)

// DefaultReleaseDelay between delivery and Handle.Release.
const DefaultReleaseDelay = 100 * time.Millisecond

// Resolver loads the full source for an export. *source.Resolver
// satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, locator string, opts ...source.ResolveOption) source.Result
}

// Request describes one export.
type Request struct {
	// Locator is resolved when Buffer is nil or truncated.
	Locator string
	// Buffer is the already decoded source, if any.
	Buffer *audio.Buffer

	Start, End float64

	// BaseFilename seeds the artifact names; the locator is used when empty.
	BaseFilename string

	Formats []string

	// Progress receives values in [0, 100], never decreasing. It is called
	// from the exporting goroutine.
	Progress func(float64)
}

// Result of a finished export.
type Result struct {
	Artifacts []Artifact
	// Failed holds the formats that did not encode.
	Failed map[string]error
}

// Orchestrator runs exports one at a time.
type Orchestrator struct {
	resolver     Resolver
	sink         Sink
	releaseDelay time.Duration
	onState      func(State)
	onNotice     func(Notice)

	busy  atomic.Bool
	state atomic.Int32

	mu       sync.Mutex
	encoders map[string]Encoder
	pending  map[uint64]*pendingRelease
	nextID   uint64
	closed   bool

	// one count per scheduled release until its handle is released
	releases sync.WaitGroup
}

type pendingRelease struct {
	timer  *time.Timer
	handle Handle
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithResolver sets the resolver used when a request has no usable buffer.
func WithResolver(r Resolver) Option {
	return func(o *Orchestrator) { o.resolver = r }
}

// WithSink sets where artifacts are delivered. The default is a MemorySink.
func WithSink(s Sink) Option {
	return func(o *Orchestrator) { o.sink = s }
}

func WithReleaseDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.releaseDelay = d }
}

// WithStateHook registers fn to observe state changes.
func WithStateHook(fn func(State)) Option {
	return func(o *Orchestrator) { o.onState = fn }
}

// WithNoticeHook registers fn to receive one notice per failed export.
func WithNoticeHook(fn func(Notice)) Option {
	return func(o *Orchestrator) { o.onNotice = fn }
}

// WithEncoder registers enc for format, replacing any default.
func WithEncoder(format string, enc Encoder) Option {
	return func(o *Orchestrator) { o.encoders[format] = enc }
}

// New returns an idle orchestrator with WAV and MP3 encoders registered.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		releaseDelay: DefaultReleaseDelay,
		encoders: map[string]Encoder{
			formats.WAV: wav.Encoder{},
			formats.MP3: mp3.Encoder{BitRate: mp3.DefaultBitRate},
		},
		pending: make(map[uint64]*pendingRelease),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.resolver == nil {
		o.resolver = source.NewResolver(nil)
	}
	if o.sink == nil {
		o.sink = &MemorySink{}
	}

	return o
}

// RegisterEncoder adds or replaces the encoder for format.
func (o *Orchestrator) RegisterEncoder(format string, enc Encoder) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.encoders[format] = enc
}

// Formats lists the registered output formats, sorted.
func (o *Orchestrator) Formats() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]string, 0, len(o.encoders))
	for f := range o.encoders {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// State returns the current state.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

// Busy reports whether an export is running.
func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

// Export runs req to completion. A call made while another export is
// running fails with ErrExportInProgress and does no work.
//
// When some formats fail and others succeed, the returned Result carries the
// successful artifacts and the error is a *PartialError. On any other error
// no artifacts are returned.
func (o *Orchestrator) Export(ctx context.Context, req Request) (*Result, error) {
	if !o.busy.CompareAndSwap(false, true) {
		o.notify(ErrExportInProgress)
		return nil, ErrExportInProgress
	}
	defer o.busy.Store(false)

	res, err := o.run(ctx, req)
	if err != nil {
		o.notify(err)

		var partial *PartialError
		if !errors.As(err, &partial) {
			o.setState(Failed)
			o.setState(Idle)
			return nil, err
		}
	}

	o.setState(Idle)
	return res, err
}

func (o *Orchestrator) run(ctx context.Context, req Request) (*Result, error) {
	o.mu.Lock()
	closed := o.closed
	o.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	prog := &progress{fn: req.Progress}

	o.setState(Preparing)
	prog.report(0)

	encoders, err := o.prepare(req)
	if err != nil {
		return nil, err
	}

	buf, err := o.buffer(ctx, req)
	if err != nil {
		return nil, err
	}
	prog.report(5)

	o.setState(Extracting)
	seg, err := segment.Extract(buf, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	prog.report(10)

	o.setState(Encoding)
	res := &Result{}
	encoded := make([][]byte, len(req.Formats))
	failed := make(map[string]error)
	var firstErr error

	span := 85.0 / float64(len(req.Formats))
	for i, format := range req.Formats {
		base := 10 + span*float64(i)
		data, err := encoders[i].Encode(ctx, seg, func(p float64) {
			prog.report(base + span*clamp(p, 0, 100)/100)
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			failed[format] = err
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		encoded[i] = data
		prog.report(base + span)
	}

	if len(failed) == len(req.Formats) {
		return nil, firstErr
	}

	o.setState(Finalizing)
	name := req.BaseFilename
	if name == "" {
		name = req.Locator
	}

	for i, format := range req.Formats {
		if _, bad := failed[format]; bad {
			continue
		}

		a := Artifact{
			Format:   format,
			Filename: Filename(name, req.Start, req.End, encoders[i].Extension()),
			MIMEType: encoders[i].MIMEType(),
			Data:     encoded[i],
		}

		h, err := o.sink.Deliver(ctx, a)
		if err != nil {
			failed[format] = err
			continue
		}
		o.scheduleRelease(h)
		res.Artifacts = append(res.Artifacts, a)
	}

	if len(res.Artifacts) == 0 {
		return nil, failed[req.Formats[0]]
	}

	prog.report(100)

	if len(failed) > 0 {
		res.Failed = failed
		return res, &PartialError{Failed: failed}
	}
	return res, nil
}

// prepare validates the request before any decoding or encoding.
func (o *Orchestrator) prepare(req Request) ([]Encoder, error) {
	if !validRange(req.Start, req.End) {
		return nil, fmt.Errorf("%w: start %g, end %g", audio.ErrInvalidSelection, req.Start, req.End)
	}

	if len(req.Formats) == 0 {
		return nil, ErrNoFormats
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	encoders := make([]Encoder, len(req.Formats))
	for i, f := range req.Formats {
		if slices.Index(req.Formats, f) != i {
			return nil, fmt.Errorf("%w: %q requested twice", ErrUnknownFormat, f)
		}
		enc, ok := o.encoders[f]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
		encoders[i] = enc
	}

	return encoders, nil
}

// buffer returns the complete decoded source. Truncated buffers are never
// used; fallbacks are errors.
func (o *Orchestrator) buffer(ctx context.Context, req Request) (*audio.Buffer, error) {
	buf := req.Buffer
	if buf == nil || buf.Truncated {
		if req.Locator == "" {
			if buf != nil {
				return nil, source.ErrTruncatedBuffer
			}
			return nil, ErrNoSource
		}

		var err error
		if buf, err = o.resolver.Resolve(ctx, req.Locator).ForExport(); err != nil {
			return nil, err
		}
	}

	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("source buffer: %w", err)
	}
	return buf, nil
}

func (o *Orchestrator) scheduleRelease(h Handle) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++

	o.releases.Add(1)
	p := &pendingRelease{handle: h}
	p.timer = time.AfterFunc(o.releaseDelay, func() {
		o.mu.Lock()
		_, ok := o.pending[id]
		delete(o.pending, id)
		o.mu.Unlock()

		if ok {
			release(h)
			o.releases.Done()
		}
	})
	o.pending[id] = p
}

// WaitReleased blocks until every handle delivered so far has been released
// by its timer or by Close, or until ctx ends. It must not run concurrently
// with Export.
func (o *Orchestrator) WaitReleased(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.releases.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports how many handles await release.
func (o *Orchestrator) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

// Close releases all pending handles immediately. Later exports fail with
// ErrClosed.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	o.closed = true
	pending := o.pending
	o.pending = make(map[uint64]*pendingRelease)
	o.mu.Unlock()

	var errs []error
	for _, p := range pending {
		p.timer.Stop()
		if err := p.handle.Release(); err != nil {
			errs = append(errs, err)
		}
		o.releases.Done()
	}
	return errors.Join(errs...)
}

func (o *Orchestrator) setState(s State) {
	if State(o.state.Swap(int32(s))) == s {
		return
	}
	if o.onState != nil {
		o.onState(s)
	}
}

func (o *Orchestrator) notify(err error) {
	n := NoticeFor(err)
	log.Printf("export: %s (%v)", n.Message, err)

	if o.onNotice != nil {
		o.onNotice(n)
	}
}

func release(h Handle) {
	if err := h.Release(); err != nil {
		log.Printf("export: release artifact: %v", err)
	}
}

func validRange(start, end float64) bool {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(end, 0) {
		return false
	}
	return start >= 0 && start < end
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// progress drops values that would move backwards.
type progress struct {
	fn   func(float64)
	last float64
	sent bool
}

func (p *progress) report(v float64) {
	if p.fn == nil {
		return
	}
	if p.sent && v <= p.last {
		return
	}
	p.last, p.sent = v, true
	p.fn(v)
}
