// SPDX-License-Identifier: EPL-2.0

package source

import "testing"

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		locator string
		want    string
	}{
		{"wav magic", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), "x", "wav"},
		{"riff avi", []byte("RIFF\x00\x00\x00\x00AVI LIST"), "x", ""},
		{"aiff magic", []byte("FORM\x00\x00\x00\x00AIFFCOMM"), "x", "aiff"},
		{"aifc magic", []byte("FORM\x00\x00\x00\x00AIFCFVER"), "x", "aiff"},
		{"ogg magic", []byte("OggS\x00\x02"), "x", "ogg"},
		{"flac magic", []byte("fLaC\x00\x00\x00\x22"), "x", "flac"},
		{"id3 tag", []byte("ID3\x04\x00"), "x", "mp3"},
		{"mpeg frame sync", []byte{0xFF, 0xFB, 0x90, 0x64}, "x", "mp3"},
		{"adts aac is not mp3", []byte{0xFF, 0xF1, 0x50, 0x80}, "x", ""},
		{"magic wins over extension", []byte("OggS"), "song.mp3", "ogg"},
		{"extension fallback", []byte("????"), "song.FLAC", "flac"},
		{"url extension", []byte("????"), "https://cdn.example.com/a/b/track.aif?sig=abc", "aiff"},
		{"wave extension", nil, "take.wave", "wav"},
		{"unknown", []byte("hello"), "notes.txt", ""},
		{"no extension", []byte("hello"), "blob:1234", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Sniff(tt.data, tt.locator); got != tt.want {
				t.Errorf("Sniff() = %q, want %q", got, tt.want)
			}
		})
	}
}
