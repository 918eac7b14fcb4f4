// SPDX-License-Identifier: EPL-2.0

// Package audtrim plays audio files and exports marked segments of them.
//
// A Session loads one source, keeps its start and end markers and exports
// the range between them:
//
//	s := audtrim.NewSession()
//	defer s.Close()
//
//	if err := s.Load(ctx, "https://example.com/interview.mp3"); err != nil {
//	    return err
//	}
//	s.Markers().SetMarker(marker.Start, 65)
//	s.Markers().SetMarker(marker.End, 130)
//
//	res, err := s.Export(ctx, []string{"wav", "mp3"}, nil)
//
// For one-off cuts without playback use ExportFile.
//
// # Supported Formats
//
// Sources are decoded from:
//   - WAV (8, 16, 24 and 32 bit PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//   - FLAC via formats/flac
//
// Segments are written as 16-bit PCM WAV or 128 kbit/s MP3.
//
// # Locators
//
// A locator is an http(s) URL, a file:// URL, a blob: reference into the
// configured blob directory, or a file path. Relative paths are looked up
// under the folder hint.
//
// # Preview and export buffers
//
// Loading decodes at most a bounded prefix for the waveform overview. Export
// always works from the complete decoded source and never from a
// placeholder: a source that cannot be decoded fails the export with the
// decode error.
//
// See the subpackages for the individual stages.
package audtrim
