// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Both directions go through github.com/go-audio/wav.
//
// # Decoding WAV Files
//
// The Decoder reads integer PCM files at 8, 16, 24 or 32 bits per sample,
// mono or multi-channel, at any sample rate:
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//
// The decoder returns an audio.Source that provides samples as float32
// values in the range [-1.0, 1.0]. Non-seekable readers are buffered in
// memory first since the RIFF parser needs to seek.
//
// # Encoding WAV Files
//
// Encode serializes an audio.Buffer as 16-bit PCM:
//
//	data, err := wav.Encode(buf)
//
// The output always has the canonical 44-byte header:
//
//	0  "RIFF", size-8, "WAVE"
//	12 "fmt ", 16, format=1, channels, rate, rate*channels*2, channels*2, 16
//	36 "data", data size
//
// followed by interleaved little-endian samples, channel 0 first.
//
// Float samples are clamped to [-1, 1] and scaled by 32768 when negative and
// 32767 otherwise (see utils.Float32ToInt16), so 1.0 becomes 32767 and -1.0
// becomes -32768.
//
// Encoder wraps Encode for the export pipeline and reports progress.
//
// # Error Handling
//
//   - ErrNotWavFile: The input is not a RIFF/WAVE file
//   - ErrOnlyPCMSupported: Float or compressed WAV data
//   - ErrUnsupportedBitDepth: Bit depth other than 8, 16, 24, 32
//   - ErrUnsupportedWavLayout: Missing or unreadable chunks
//   - ErrEncoding: Writing the output failed
package wav
