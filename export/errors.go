// SPDX-License-Identifier: EPL-2.0

package export

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrExportInProgress is returned when Export is called while another
	// export is running.
	ErrExportInProgress = errors.New("an export is already in progress")

	// ErrNoFormats is returned for a request without output formats.
	ErrNoFormats = errors.New("no output format requested")

	// ErrUnknownFormat is returned for a format without a registered encoder.
	ErrUnknownFormat = errors.New("no encoder registered for format")

	// ErrNoSource is returned when a request has neither a buffer nor a locator.
	ErrNoSource = errors.New("request has no audio source")

	// ErrClosed is returned by Export after Close.
	ErrClosed = errors.New("orchestrator closed")
)

// PartialError reports an export where some formats succeeded and others
// failed.
type PartialError struct {
	Failed map[string]error
}

func (e *PartialError) Error() string {
	formats := slices.Sorted(maps.Keys(e.Failed))

	parts := make([]string, 0, len(formats))
	for _, f := range formats {
		parts = append(parts, fmt.Sprintf("%s: %v", f, e.Failed[f]))
	}
	return "export partially failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the per-format errors to errors.Is and errors.As.
func (e *PartialError) Unwrap() []error {
	formats := slices.Sorted(maps.Keys(e.Failed))

	errs := make([]error, 0, len(formats))
	for _, f := range formats {
		errs = append(errs, e.Failed[f])
	}
	return errs
}
