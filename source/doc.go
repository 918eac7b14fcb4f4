// SPDX-License-Identifier: EPL-2.0

// Package source resolves audio locators into decoded buffers.
//
// A locator is an http or https URL, a file:// URL, a blob: reference into
// a configured directory, or a plain path. The bytes are sniffed for their
// container format (with the extension as a fallback) and decoded through an
// audio.Registry.
//
// Resolve never panics on bad input; it returns a Result tagged KindOK,
// KindFallback or KindErr. A fallback carries a synthetic 440 Hz tone
// together with the DecodeError that caused it, and is only produced when
// the caller asked for it with WithFallback.
//
// Buffers meant for export must be taken with Result.ForExport, which
// refuses stand-ins and buffers decoded from a WithPrefix read:
//
//	res := r.Resolve(ctx, "https://example.com/song.mp3")
//	buf, err := res.ForExport()
package source
