// SPDX-License-Identifier: EPL-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrEmptySource is returned when a locator is empty or yields no bytes.
	ErrEmptySource = errors.New("empty source")

	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("decode failed")

	// ErrTruncatedBuffer is returned by Result.ForExport for buffers decoded
	// from a bounded prefix.
	ErrTruncatedBuffer = errors.New("buffer was decoded from a truncated prefix")

	// ErrUnknownFormat is wrapped in a DecodeError when neither the content
	// nor the locator identify a registered format.
	ErrUnknownFormat = errors.New("unknown audio format")

	// ErrNoFrames is wrapped in a DecodeError when a stream decodes to no audio.
	ErrNoFrames = errors.New("stream contains no audio frames")

	// ErrUnsupportedLocator is returned for locator schemes the resolver
	// cannot fetch.
	ErrUnsupportedLocator = errors.New("unsupported locator")
)

// DecodeError reports bytes that could not be turned into PCM.
type DecodeError struct {
	Locator string
	Format  string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("decode %s: %v", e.Locator, e.Err)
	}
	return fmt.Sprintf("decode %s as %s: %v", e.Locator, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// FetchError reports a failure to obtain the bytes behind a locator.
type FetchError struct {
	Locator string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Locator, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Temporary reports whether retrying the fetch may succeed: network errors
// and server side HTTP statuses.
func (e *FetchError) Temporary() bool {
	if errors.Is(e.Err, context.Canceled) {
		return false
	}

	var status *StatusError
	if errors.As(e.Err, &status) {
		return status.Code >= http.StatusInternalServerError || status.Code == http.StatusTooManyRequests
	}

	var netErr net.Error
	return errors.As(e.Err, &netErr)
}

// StatusError is an unexpected HTTP response status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}
