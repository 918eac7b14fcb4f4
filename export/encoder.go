// SPDX-License-Identifier: EPL-2.0

package export

import (
	"context"

	"github.com/ik5/audtrim/audio"
)

// Encoder turns a buffer into file bytes. progress receives values in
// [0, 100] and may be nil.
type Encoder interface {
	MIMEType() string
	Extension() string
	Encode(ctx context.Context, buf *audio.Buffer, progress func(float64)) ([]byte, error)
}

// Artifact is an encoded segment ready for delivery.
type Artifact struct {
	Format   string
	Filename string
	MIMEType string
	Data     []byte
}
