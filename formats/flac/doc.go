// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams with github.com/mewkiz/flac.
//
// Frames are parsed lazily as samples are requested. Each subframe sample is
// normalized by the full scale of the stream's bit depth and interleaved
// into the caller's buffer.
package flac
