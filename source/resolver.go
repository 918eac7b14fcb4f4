// SPDX-License-Identifier: EPL-2.0

package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats"
)

const (
	// DefaultPrefixBytes bounds the bytes read for preview decodes.
	DefaultPrefixBytes = 8 << 20

	defaultHTTPTimeout = 30 * time.Second
)

// Resolver turns locators into decoded buffers. Supported locators are
// http(s) URLs, file:// URLs, blob: references and plain paths.
type Resolver struct {
	registry    *audio.Registry
	client      *http.Client
	blobDir     string
	folderHint  string
	prefixBytes int64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the client used for http(s) locators.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.client = c }
}

// WithBlobDir sets the directory blob: references are resolved in.
func WithBlobDir(dir string) Option {
	return func(r *Resolver) { r.blobDir = dir }
}

// WithFolderHint sets the directory relative paths are resolved against.
func WithFolderHint(dir string) Option {
	return func(r *Resolver) { r.folderHint = dir }
}

// WithDefaultPrefix sets the byte limit used by WithPrefix(0).
func WithDefaultPrefix(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.prefixBytes = n
		}
	}
}

// NewResolver returns a resolver decoding through reg. A nil registry gets
// every built-in decoder.
func NewResolver(reg *audio.Registry, opts ...Option) *Resolver {
	if reg == nil {
		reg = formats.NewRegistry()
	}

	r := &Resolver{
		registry:    reg,
		client:      &http.Client{Timeout: defaultHTTPTimeout},
		prefixBytes: DefaultPrefixBytes,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

type resolveConfig struct {
	fallback bool
	prefix   int64
}

// ResolveOption adjusts a single Resolve call.
type ResolveOption func(*resolveConfig)

// WithFallback turns a decode failure into a KindFallback result carrying
// Placeholder(). Fetch failures and empty sources still fail.
func WithFallback() ResolveOption {
	return func(c *resolveConfig) { c.fallback = true }
}

// WithPrefix decodes at most maxBytes of the source; zero uses the
// resolver's default limit. The buffer is marked Truncated when the source
// was longer.
func WithPrefix(maxBytes int64) ResolveOption {
	return func(c *resolveConfig) {
		c.prefix = maxBytes
		if c.prefix <= 0 {
			c.prefix = -1
		}
	}
}

// Resolve fetches and decodes locator.
func (r *Resolver) Resolve(ctx context.Context, locator string, opts ...ResolveOption) Result {
	var cfg resolveConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.prefix < 0 {
		cfg.prefix = r.prefixBytes
	}

	if locator == "" {
		return failed(ErrEmptySource)
	}

	data, err := r.fetch(ctx, locator, cfg.prefix)
	if err != nil {
		return failed(err)
	}
	if len(data) == 0 {
		return failed(ErrEmptySource)
	}

	truncated := false
	if cfg.prefix > 0 && int64(len(data)) > cfg.prefix {
		data = data[:cfg.prefix]
		truncated = true
	}

	format := Sniff(data, locator)
	buf, err := r.decode(data, format, truncated)
	if err != nil {
		derr := &DecodeError{Locator: locator, Format: format, Err: err}
		if !cfg.fallback {
			return failed(derr)
		}

		log.Printf("source: %v; using placeholder audio", derr)
		return Result{Kind: KindFallback, Buffer: Placeholder(), Format: format, Err: derr}
	}

	buf.Truncated = truncated
	return ok(buf, format)
}

func (r *Resolver) decode(data []byte, format string, truncated bool) (*audio.Buffer, error) {
	if format == "" {
		return nil, ErrUnknownFormat
	}

	dec, found := r.registry.Get(format)
	if !found {
		return nil, ErrUnknownFormat
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if truncated {
		src = &lenientSource{Source: src}
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if buf.Frames() == 0 {
		return nil, ErrNoFrames
	}

	return buf, nil
}

// lenientSource ends the stream at the first error once data has been read.
// A prefix cut mid-frame is expected to fail at its tail.
type lenientSource struct {
	audio.Source
	read bool
}

func (s *lenientSource) ReadSamples(dst []float32) (int, error) {
	n, err := s.Source.ReadSamples(dst)
	if n > 0 {
		s.read = true
	}
	if err != nil && !errors.Is(err, io.EOF) && s.read {
		return n, io.EOF
	}
	return n, err
}
