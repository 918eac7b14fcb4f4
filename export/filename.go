// SPDX-License-Identifier: EPL-2.0

package export

import (
	"fmt"
	"math"
	"net/url"
	"path"
	"strings"
)

const defaultBase = "audio"

// Timestamp formats seconds as MMmSSs, e.g. 12m05s. Fractions are dropped
// and minutes are not capped at 99.
func Timestamp(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}

	total := int(math.Floor(seconds))
	return fmt.Sprintf("%02dm%02ds", total/60, total%60)
}

// Filename derives <base>_<start>_<end>.<ext>. The base loses any directory
// and extension.
func Filename(base string, start, end float64, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", BaseName(base), Timestamp(start), Timestamp(end), ext)
}

// BaseName strips directories, query strings and the extension from a file
// name, path or URL.
func BaseName(name string) string {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" && u.Path != "" {
		name = u.Path
	}

	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.TrimSuffix(name, path.Ext(name))

	if name == "" || name == "." || name == "/" {
		return defaultBase
	}
	return name
}
