// SPDX-License-Identifier: EPL-2.0

package export

import (
	"math"
	"testing"
)

func TestTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00m00s"},
		{1.999, "00m01s"},
		{59.9, "00m59s"},
		{60, "01m00s"},
		{725.4, "12m05s"},
		{6000, "100m00s"},
		{-3, "00m00s"},
		{math.NaN(), "00m00s"},
	}

	for _, tt := range tests {
		if got := Timestamp(tt.seconds); got != tt.want {
			t.Errorf("Timestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		base       string
		start, end float64
		ext        string
		want       string
	}{
		{"plain", "interview.mp3", 1, 2, "wav", "interview_00m01s_00m02s.wav"},
		{"directory stripped", "/calls/2024/interview.ogg", 61.5, 125, "mp3", "interview_01m01s_02m05s.mp3"},
		{"url with query", "https://host/a/b/track.flac?sig=1", 0, 30, "wav", "track_00m00s_00m30s.wav"},
		{"windows path", `C:\audio\memo.wav`, 5, 6, "mp3", "memo_00m05s_00m06s.mp3"},
		{"no extension", "memo", 5, 6, "wav", "memo_00m05s_00m06s.wav"},
		{"only dots kept", "my.voice.memo.wav", 5, 6, "wav", "my.voice.memo_00m05s_00m06s.wav"},
		{"empty", "", 0, 1, "wav", "audio_00m00s_00m01s.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Filename(tt.base, tt.start, tt.end, tt.ext); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}
