// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"log"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/internal/audiotest"
)

// Example_processingChain resamples a stereo buffer and folds it to mono.
func Example_processingChain() {
	buf := audiotest.SineBuffer(44100, 2, 44100, 440)

	resampled := audio.NewResampler(buf.Reader(0), 16000)
	mono := audio.NewMonoMixer(resampled)

	out, err := audio.ReadAll(mono)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d Hz, %d channel(s), %d frames\n", out.SampleRate, out.NumChannels(), out.Frames())

	// Output:
	// 16000 Hz, 1 channel(s), 16000 frames
}

// ExampleReadPrefix reads the head of a long source for a quick overview.
func ExampleReadPrefix() {
	src := audiotest.NewSineSource(8000, 1, 8000*60, 100)

	head, err := audio.ReadPrefix(src, 8000)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(head.Seconds(), head.Truncated)

	// Output:
	// 1 true
}

// ExampleNewChannelMapper widens mono to stereo for an output device.
func ExampleNewChannelMapper() {
	buf := audiotest.ConstantBuffer(8000, 1, 2, 0.5)

	stereo := audio.NewChannelMapper(buf.Reader(0), 2)

	dst := make([]float32, 4)
	n, _ := stereo.ReadSamples(dst)
	fmt.Println(dst[:n])

	// Output:
	// [0.5 0.5 0.5 0.5]
}

// ExampleRegistry shows looking up decoders by format key.
func ExampleRegistry() {
	reg := audio.NewRegistry()
	reg.Register("wav", nil)
	reg.Register("mp3", nil)

	_, ok := reg.Get("ogg")
	fmt.Println(reg.Formats(), ok)

	// Output:
	// [mp3 wav] false
}
