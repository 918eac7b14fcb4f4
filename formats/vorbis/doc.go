// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with
// github.com/jfreymuth/oggvorbis.
//
// The decoder already produces interleaved float32 samples in [-1.0, 1.0],
// so samples are passed through without conversion. Channel count and sample
// rate come from the stream's identification header.
package vorbis
