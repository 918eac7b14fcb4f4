// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	// ErrEncoderInit is returned when the encoder cannot be configured for the
	// requested buffer, either because the parameters are invalid or because
	// no engine is available.
	ErrEncoderInit = errors.New("mp3 encoder initialization failed")

	// ErrEncoding is returned when the engine fails on a block or on flush.
	ErrEncoding = errors.New("mp3 encoding failed")

	ErrInvalidDstSize = errors.New("destination length must be a multiple of the channel count")
)
