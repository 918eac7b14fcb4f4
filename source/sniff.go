// SPDX-License-Identifier: EPL-2.0

package source

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/ik5/audtrim/formats"
)

var extFormats = map[string]string{
	".wav":  formats.WAV,
	".wave": formats.WAV,
	".mp3":  formats.MP3,
	".ogg":  formats.Ogg,
	".oga":  formats.Ogg,
	".aif":  formats.AIFF,
	".aiff": formats.AIFF,
	".aifc": formats.AIFF,
	".flac": formats.FLAC,
}

// Sniff identifies the container format from leading bytes, falling back to
// the locator's extension. It returns "" when neither matches.
func Sniff(data []byte, locator string) string {
	if f := sniffMagic(data); f != "" {
		return f
	}
	return formatFromExt(locator)
}

func sniffMagic(data []byte) string {
	switch {
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WAVE":
		return formats.WAV
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("FORM")) &&
		(string(data[8:12]) == "AIFF" || string(data[8:12]) == "AIFC"):
		return formats.AIFF
	case bytes.HasPrefix(data, []byte("OggS")):
		return formats.Ogg
	case bytes.HasPrefix(data, []byte("fLaC")):
		return formats.FLAC
	case bytes.HasPrefix(data, []byte("ID3")):
		return formats.MP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0 && data[1]&0x06 != 0:
		// MPEG audio frame sync; layer bits 00 would be ADTS AAC
		return formats.MP3
	}
	return ""
}

func formatFromExt(locator string) string {
	p := locator
	if u, err := url.Parse(locator); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	}
	return extFormats[strings.ToLower(path.Ext(p))]
}
