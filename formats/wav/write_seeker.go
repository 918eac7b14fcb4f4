// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"io"
)

var errNegativePosition = errors.New("negative position")

// writeSeeker is an in-memory io.WriteSeeker; the go-audio encoder seeks
// back to patch chunk sizes on Close.
type writeSeeker struct {
	buf []byte
	pos int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	end := w.pos + len(p)
	if end > len(w.buf) {
		if end > cap(w.buf) {
			grown := make([]byte, len(w.buf), max(end, 2*cap(w.buf)))
			copy(grown, w.buf)
			w.buf = grown
		}
		w.buf = w.buf[:end]
	}

	copy(w.buf[w.pos:], p)
	w.pos = end

	return len(p), nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(w.pos) + offset
	case io.SeekEnd:
		next = int64(len(w.buf)) + offset
	default:
		return 0, errors.New("invalid whence")
	}

	if next < 0 {
		return 0, errNegativePosition
	}

	w.pos = int(next)
	return next, nil
}

// Bytes returns the written data.
func (w *writeSeeker) Bytes() []byte { return w.buf }
