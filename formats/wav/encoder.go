// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"context"
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/utils"
)

const (
	// HeaderSize is the length of the canonical RIFF/WAVE header written by Encode.
	HeaderSize = 44

	// MIMEType of encoded output.
	MIMEType = "audio/wav"

	bitDepth = 16

	// frames converted per encoder write
	chunkFrames = 8192
)

// Encode serializes buf as a 16-bit PCM WAV file: a 44-byte header followed
// by interleaved little-endian samples.
func Encode(buf *audio.Buffer) ([]byte, error) {
	return encode(context.Background(), buf, nil)
}

// Encoder encodes buffers to WAV for the export pipeline.
type Encoder struct{}

func (Encoder) MIMEType() string  { return MIMEType }
func (Encoder) Extension() string { return "wav" }

// Encode serializes buf, reporting progress in percent. The final report of
// 100 comes after the byte stream is complete.
func (Encoder) Encode(ctx context.Context, buf *audio.Buffer, progress func(float64)) ([]byte, error) {
	return encode(ctx, buf, progress)
}

func encode(ctx context.Context, buf *audio.Buffer, progress func(float64)) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	channels := buf.NumChannels()
	frames := buf.Frames()

	out := &writeSeeker{buf: make([]byte, 0, HeaderSize+frames*channels*2)}
	enc := wav.NewEncoder(out, buf.SampleRate, bitDepth, channels, formatPCM)

	ib := &goaudio.IntBuffer{
		Data:           make([]int, min(frames, chunkFrames)*channels),
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: buf.SampleRate},
		SourceBitDepth: bitDepth,
	}

	for start := 0; start < frames; start += chunkFrames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+chunkFrames, frames)
		ib.Data = ib.Data[:(end-start)*channels]

		for f := start; f < end; f++ {
			idx := (f - start) * channels
			for c := range channels {
				ib.Data[idx+c] = int(utils.Float32ToInt16(buf.Channels[c][f]))
			}
		}

		if err := enc.Write(ib); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
		}

		if progress != nil {
			progress(float64(end) / float64(frames) * 95)
		}
	}

	if frames == 0 {
		// an empty write still emits the header and data chunk
		ib.Data = ib.Data[:0]
		if err := enc.Write(ib); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
		}
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	if progress != nil {
		progress(100)
	}

	return out.Bytes(), nil
}
