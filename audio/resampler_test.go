// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(NewSilentBuffer(44100, 2, 1000).Reader(0), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		frames   int
		channels int
		want     int
	}{
		{"same rate", 8000, 8000, 100, 1, 100},
		{"44.1k to 16k", 44100, 16000, 44100, 1, 16000},
		{"44.1k to 8k stereo", 44100, 8000, 44100, 2, 8000},
		{"8k to 16k", 8000, 16000, 8000, 1, 15999},
		{"48k to 44.1k", 48000, 44100, 4800, 2, 4410},
		{"single frame", 44100, 8000, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResampler(sineBuffer(tt.srcRate, tt.channels, tt.frames, 440).Reader(0), tt.dstRate)

			got, err := drain(r, 1024*tt.channels)
			if err != nil {
				t.Fatalf("drain error = %v", err)
			}
			if frames := len(got) / tt.channels; frames != tt.want {
				t.Errorf("output frames = %d, want %d", frames, tt.want)
			}
		})
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	in := sineBuffer(8000, 2, 500, 300)
	got, err := drain(NewResampler(in.Reader(0), 8000), 64)
	if err != nil {
		t.Fatalf("drain error = %v", err)
	}

	for f := range in.Frames() {
		for c := range 2 {
			if got[f*2+c] != in.Channels[c][f] {
				t.Fatalf("frame %d ch %d = %v, want %v", f, c, got[f*2+c], in.Channels[c][f])
			}
		}
	}
}

func TestResampler_ConstantPreserved(t *testing.T) {
	t.Parallel()

	for _, dstRate := range []int{8000, 22050, 96000} {
		got, err := drain(NewResampler(constBuffer(44100, 1, 4410, 0.5).Reader(0), dstRate), 512)
		if err != nil {
			t.Fatalf("drain error = %v", err)
		}
		for i, v := range got {
			if math.Abs(float64(v-0.5)) > 1e-5 {
				t.Fatalf("dstRate %d: sample %d = %v, want 0.5", dstRate, i, v)
			}
		}
	}
}

func TestResampler_SinePreserved(t *testing.T) {
	t.Parallel()

	// 200 Hz is well below both Nyquist limits
	got, err := drain(NewResampler(sineBuffer(8000, 1, 8000, 200).Reader(0), 44100), 1024)
	if err != nil {
		t.Fatalf("drain error = %v", err)
	}

	ratio := 8000.0 / 44100.0
	for i := 100; i < len(got)-100; i++ {
		want := math.Sin(2 * math.Pi * 200 * float64(i) * ratio / 8000)
		if math.Abs(float64(got[i])-want) > 0.01 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestResampler_StereoIndependent(t *testing.T) {
	t.Parallel()

	in := funcBuffer(44100, 2, 4410, func(_, c int) float32 {
		if c == 0 {
			return 0.25
		}
		return -0.75
	})

	got, err := drain(NewResampler(in.Reader(0), 16000), 256)
	if err != nil {
		t.Fatalf("drain error = %v", err)
	}

	for f := 0; f < len(got)/2; f++ {
		if math.Abs(float64(got[2*f]-0.25)) > 1e-5 || math.Abs(float64(got[2*f+1]+0.75)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.25, -0.75)", f, got[2*f], got[2*f+1])
		}
	}
}

func TestResampler_EOF(t *testing.T) {
	t.Parallel()

	r := NewResampler(NewSilentBuffer(8000, 1, 0).Reader(0), 16000)

	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("empty source ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}

	n, err = r.ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("repeat ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestResampler_Errors(t *testing.T) {
	t.Parallel()

	r := NewResampler(NewSilentBuffer(8000, 2, 100).Reader(0), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd dst error = %v, want ErrInvalidDstSize", err)
	}

	src := &failingSource{Source: sineBuffer(8000, 1, 1000, 100).Reader(0), after: 50}
	if _, err := drain(NewResampler(src, 16000), 64); !errors.Is(err, errBoom) {
		t.Errorf("source error = %v, want errBoom", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := &choppySource{Source: NewSilentBuffer(8000, 1, 10).Reader(0), chunk: 1}
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.closed {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := sineBuffer(44100, 2, 44100, 440)
	dst := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		r := NewResampler(buf.Reader(0), 16000)
		for {
			if _, err := r.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
