// SPDX-License-Identifier: EPL-2.0

package audtrim

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/engine"
	"github.com/ik5/audtrim/export"
	"github.com/ik5/audtrim/marker"
	"github.com/ik5/audtrim/player"
	"github.com/ik5/audtrim/source"
	"github.com/ik5/audtrim/waveform"
)

// Session ties one loaded source to its markers, playback and export.
type Session struct {
	engine   *engine.Engine
	resolver *source.Resolver
	exporter *export.Orchestrator
	player   *player.Controller
	markers  *marker.Set

	onNotice     func(export.Notice)
	onPlayer     func(player.State)
	ownsEngine   bool
	ownsExporter bool

	mu      sync.RWMutex
	locator string
	preview *audio.Buffer
	full    *audio.Buffer
	kind    source.Kind
}

// Option configures a Session.
type Option func(*Session)

// WithEngine shares an engine between sessions. The session does not close
// it.
func WithEngine(e *engine.Engine) Option {
	return func(s *Session) { s.engine = e }
}

func WithResolver(r *source.Resolver) Option {
	return func(s *Session) { s.resolver = r }
}

// WithExporter replaces the default orchestrator. The session does not
// close it.
func WithExporter(o *export.Orchestrator) Option {
	return func(s *Session) { s.exporter = o }
}

// WithNoticeHook receives load fallbacks and export failures.
func WithNoticeHook(fn func(export.Notice)) Option {
	return func(s *Session) { s.onNotice = fn }
}

// WithPlayerHook observes playback state changes.
func WithPlayerHook(fn func(player.State)) Option {
	return func(s *Session) { s.onPlayer = fn }
}

// NewSession returns an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{markers: marker.NewSet(0)}

	for _, opt := range opts {
		opt(s)
	}

	if s.engine == nil {
		s.engine = engine.New()
		s.ownsEngine = true
	}
	if s.resolver == nil {
		s.resolver = source.NewResolver(s.engine.Registry())
	}
	if s.exporter == nil {
		s.exporter = export.New(
			export.WithResolver(s.resolver),
			export.WithNoticeHook(s.notify),
		)
		s.ownsExporter = true
	}

	s.player = player.NewController(s.engine, s.onPlayer)

	return s
}

// Load resolves locator and makes it the current source. A bounded prefix is
// decoded first for the overview; the complete source is decoded only when
// the prefix did not cover it. When decoding fails a placeholder is loaded
// for playback and a notice is sent, but the session cannot export it.
//
// Markers are cleared.
func (s *Session) Load(ctx context.Context, locator string) error {
	if err := s.player.BeginLoad(); err != nil {
		return err
	}

	res := s.resolver.Resolve(ctx, locator, source.WithFallback(), source.WithPrefix(0))
	preview, err := res.ForPreview()
	if err != nil {
		s.player.Fail(err)
		return fmt.Errorf("load %s: %w", locator, err)
	}

	full := preview
	if res.Kind == source.KindOK && preview.Truncated {
		fullRes := s.resolver.Resolve(ctx, locator, source.WithFallback())
		if full, err = fullRes.ForPreview(); err != nil {
			s.player.Fail(err)
			return fmt.Errorf("load %s: %w", locator, err)
		}
		res = fullRes
	}

	if res.Kind == source.KindFallback {
		s.notify(export.Notice{
			Message: "The audio could not be decoded. A placeholder tone is loaded instead and cannot be exported.",
			Err:     res.Err,
		})
	}

	s.mu.Lock()
	s.locator = locator
	s.preview = preview
	s.full = full
	s.kind = res.Kind
	s.mu.Unlock()

	s.markers.SetDuration(full.Seconds())

	if err := s.player.Load(full); err != nil {
		return err
	}

	log.Printf("session: loaded %s (%s, %.2fs)", locator, res.Kind, full.Seconds())
	return nil
}

// Locator of the loaded source.
func (s *Session) Locator() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locator
}

// Kind tells whether the loaded buffer is the source or a placeholder.
func (s *Session) Kind() source.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kind
}

// Peaks returns the waveform overview of the loaded source.
func (s *Session) Peaks(buckets int) ([]float32, error) {
	s.mu.RLock()
	buf := s.preview
	s.mu.RUnlock()

	return waveform.Peaks(buf, buckets)
}

func (s *Session) Markers() *marker.Set { return s.markers }

func (s *Session) Player() *player.Controller { return s.player }

func (s *Session) Exporter() *export.Orchestrator { return s.exporter }

// Mark places a marker of type t at the playhead.
func (s *Session) Mark(t marker.Type) (marker.Marker, error) {
	return s.markers.SetMarker(t, s.player.Position())
}

// Export encodes the marked range into formats. The decoded source is reused
// unless it is a placeholder, in which case the locator is decoded again and
// the export fails with the decode error.
func (s *Session) Export(ctx context.Context, formats []string, progress func(float64)) (*export.Result, error) {
	s.mu.RLock()
	req := export.Request{
		Locator:      s.locator,
		BaseFilename: s.locator,
		Formats:      formats,
		Progress:     progress,
	}
	if s.kind == source.KindOK {
		req.Buffer = s.full
	}
	s.mu.RUnlock()

	if start, end, ok := s.markers.Range(); ok {
		req.Start, req.End = start, end
	}

	return s.exporter.Export(ctx, req)
}

// Close stops playback and releases pending exports.
func (s *Session) Close() error {
	s.player.Close()

	var err error
	if s.ownsExporter {
		err = s.exporter.Close()
	}
	if s.ownsEngine {
		if cerr := s.engine.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (s *Session) notify(n export.Notice) {
	if s.onNotice != nil {
		s.onNotice(n)
	}
}
