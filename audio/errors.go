// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrChannelLength is returned when channel slices of a Buffer differ in length.
	ErrChannelLength = errors.New("channel lengths differ")

	// ErrNoChannels is returned for a Buffer without any channel data.
	ErrNoChannels = errors.New("buffer has no channels")

	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")

	// ErrInvalidSelection is returned when a time range selects no samples,
	// or when start and end markers are missing or out of order.
	ErrInvalidSelection = errors.New("invalid selection")
)
