// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample model shared by every other package.
//
// Two representations are used side by side:
//
//   - Source streams interleaved float32 samples in [-1, 1]. Decoders
//     produce Sources and the streaming processors (Resampler, MonoMixer,
//     ChannelMapper) wrap them.
//   - Buffer holds a whole decoded signal with one slice per channel. It is
//     what the trimming and encoding stages work on.
//
// ReadAll and ReadPrefix turn a Source into a Buffer; Buffer.Reader goes the
// other way.
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns the number of float32 values written, not frames. A
// source may return its final samples together with io.EOF.
//
// # Resampling
//
// The Resampler converts between sample rates with Catmull-Rom cubic
// interpolation and keeps the channel count. When downsampling, a one-pole
// low-pass filter runs on the input first:
//
//	r := audio.NewResampler(buf.Reader(0), 44100)
//
// A source of N frames resampled by ratio src/dst yields
// floor((N-1)/ratio)+1 frames.
//
// # Channel Handling
//
// MonoMixer averages all channels into one. ChannelMapper adapts to a fixed
// count without mixing: mono is copied to every output, extra channels are
// dropped and missing ones are silent.
//
// # Registry
//
// Registry maps format keys ("wav", "mp3", "ogg", "aiff", "flac") to
// Decoders and is safe for concurrent use.
//
// # Buffers
//
// A Buffer is never modified by the stages that consume it. A Buffer read
// with ReadPrefix from a longer source is marked Truncated and must not be
// used where the whole signal is needed.
package audio
