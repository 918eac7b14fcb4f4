// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes and encodes MPEG audio layer III.
//
// Decoding uses github.com/hajimehoshi/go-mp3 and always yields stereo
// float32 samples in [-1.0, 1.0].
//
// # Encoding
//
// Encoder converts an audio.Buffer to constant bit rate MP3. The buffer is
// cut into blocks of BlockSize (1152) frames, each block is converted to
// int16 and submitted to an Engine in order, and the engine is flushed once
// at the end. The flush output carries the frames the engine still held
// back, so it is never empty when the input length is not a multiple of
// BlockSize.
//
//	enc := mp3.Encoder{BitRate: 192}
//	data, err := enc.Encode(ctx, buf, func(p float64) {
//	    fmt.Printf("%.0f%%\n", p)
//	})
//
// Mono buffers are encoded as two identical channels. Sample rates are
// limited to the MPEG-1 and MPEG-2 layer III rates, and the bit rate must be
// in the table for that MPEG version; otherwise Encode fails with
// ErrEncoderInit before any block is produced.
//
// The default engine wraps libmp3lame through github.com/viert/lame and
// needs cgo. Build with the nolame tag to drop it; Encode then fails with
// ErrEncoderInit unless Encoder.NewEngine supplies another engine.
package mp3
