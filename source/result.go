// SPDX-License-Identifier: EPL-2.0

package source

import "github.com/ik5/audtrim/audio"

// Kind tags the outcome of a resolve.
type Kind int

const (
	// KindOK carries the decoded source.
	KindOK Kind = iota
	// KindFallback carries a synthetic stand-in; Err holds the decode failure.
	KindFallback
	// KindErr carries no buffer.
	KindErr
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindFallback:
		return "fallback"
	case KindErr:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of Resolver.Resolve.
type Result struct {
	Kind   Kind
	Buffer *audio.Buffer
	Format string
	Err    error
}

func ok(buf *audio.Buffer, format string) Result {
	return Result{Kind: KindOK, Buffer: buf, Format: format}
}

func failed(err error) Result {
	return Result{Kind: KindErr, Err: err}
}

// ForPreview returns a buffer fit for display: the decoded source or its
// stand-in. Only KindErr fails.
func (r Result) ForPreview() (*audio.Buffer, error) {
	if r.Kind == KindErr {
		return nil, r.Err
	}
	return r.Buffer, nil
}

// ForExport returns the buffer only if it is the complete decoded source.
// Stand-ins fail with their decode error and prefix buffers with
// ErrTruncatedBuffer.
func (r Result) ForExport() (*audio.Buffer, error) {
	if r.Kind != KindOK {
		return nil, r.Err
	}

	if r.Buffer.Truncated {
		return nil, ErrTruncatedBuffer
	}
	return r.Buffer, nil
}
