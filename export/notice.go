// SPDX-License-Identifier: EPL-2.0

package export

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats/mp3"
	"github.com/ik5/audtrim/formats/wav"
	"github.com/ik5/audtrim/source"
)

// Notice is the user-facing report of a failed export.
type Notice struct {
	Message string
	// Retryable is set when trying again unchanged may succeed.
	Retryable bool
	Err       error
}

// NoticeFor classifies err into a user-facing notice.
func NoticeFor(err error) Notice {
	n := Notice{Err: err}

	var (
		fetchErr   *source.FetchError
		partialErr *PartialError
	)

	switch {
	case errors.As(err, &partialErr):
		formats := make([]string, 0, len(partialErr.Failed))
		n.Retryable = false
		for f, ferr := range partialErr.Failed {
			formats = append(formats, f)
			n.Retryable = n.Retryable || NoticeFor(ferr).Retryable
		}
		slices.Sort(formats)
		n.Message = fmt.Sprintf("Export finished, but %s failed.", strings.Join(formats, " and "))
	case errors.Is(err, ErrExportInProgress):
		n.Message = "An export is already running. Wait for it to finish."
		n.Retryable = true
	case errors.Is(err, audio.ErrInvalidSelection):
		n.Message = "The markers do not select any audio. Place the start marker before the end marker."
	case errors.Is(err, ErrNoFormats), errors.Is(err, ErrUnknownFormat):
		n.Message = "Choose a supported output format."
	case errors.As(err, &fetchErr):
		if fetchErr.Temporary() {
			n.Message = "Could not load the audio. Check the connection and try again."
			n.Retryable = true
		} else {
			n.Message = "Could not load the audio source."
		}
	case errors.Is(err, source.ErrEmptySource), errors.Is(err, ErrNoSource):
		n.Message = "The audio source is empty."
	case errors.Is(err, source.ErrDecode):
		n.Message = "The audio could not be decoded, so it cannot be exported."
	case errors.Is(err, audio.ErrChannelLength), errors.Is(err, audio.ErrNoChannels), errors.Is(err, audio.ErrInvalidSampleRate):
		n.Message = "The decoded audio is malformed and cannot be exported."
	case errors.Is(err, mp3.ErrEncoderInit):
		n.Message = "MP3 export is not available for this audio."
	case errors.Is(err, mp3.ErrEncoding), errors.Is(err, wav.ErrEncoding):
		n.Message = "Encoding failed. Try again."
		n.Retryable = true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		n.Message = "The export was canceled."
		n.Retryable = true
	case errors.Is(err, ErrClosed):
		n.Message = "The exporter has shut down."
	default:
		n.Message = "Export failed: " + err.Error()
		n.Retryable = true
	}

	return n
}
