// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	samples []int
	offset  int
	err     error
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

// writeAIFF encodes interleaved samples with the go-audio encoder.
func writeAIFF(t *testing.T, rate, bitDepth, channels int, samples []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := aiff.NewEncoder(f, rate, bitDepth, channels)
	buf := &goaudio.IntBuffer{
		Data:           samples,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not AIFF data")},
		{"empty", []byte{}},
		{"riff", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := []int{0, 0, 16384, -16384, -32768, 32767, 100, -100}
	data := writeAIFF(t, 22050, 16, 2, samples)

	// non-seekable input goes through the in-memory path
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 22050 || src.Channels() != 2 {
		t.Fatalf("format = %d Hz %d ch, want 22050 Hz 2 ch", src.SampleRate(), src.Channels())
	}

	dst := make([]float32, 16)
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(samples) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(samples))
	}

	for i, s := range samples {
		if want := float32(s) / 32768; dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}

func TestSource_ReadSamples_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		in       []int
		want     []float32
	}{
		{"8-bit", 8, []int{-128, 64}, []float32{-1, 0.5}},
		{"16-bit", 16, []int{-32768, 16384}, []float32{-1, 0.5}},
		{"24-bit", 24, []int{-8388608, 4194304}, []float32{-1, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &source{
				dec:        &mockAiffReader{samples: tt.in},
				sampleRate: 44100,
				channels:   1,
				bitDepth:   tt.bitDepth,
			}

			dst := make([]float32, 8)
			n, err := src.ReadSamples(dst)
			if err != io.EOF {
				t.Errorf("short read error = %v, want io.EOF", err)
			}
			if n != len(tt.want) {
				t.Fatalf("n = %d, want %d", n, len(tt.want))
			}
			for i := range tt.want {
				if dst[i] != tt.want[i] {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_FrameAligned(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockAiffReader{samples: make([]int, 100)},
		sampleRate: 44100,
		channels:   2,
		bitDepth:   16,
	}

	n, err := src.ReadSamples(make([]float32, 5))
	if err != nil || n != 4 {
		t.Errorf("ReadSamples() = %d, %v; want 4, nil", n, err)
	}
}

func TestSource_ReadSamples_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk")

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"unexpected eof", io.ErrUnexpectedEOF, io.EOF},
		{"other", boom, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &source{dec: &mockAiffReader{err: tt.err}, sampleRate: 8000, channels: 1, bitDepth: 16}

			_, err := src.ReadSamples(make([]float32, 4))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadSamples() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
