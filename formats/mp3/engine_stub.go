// SPDX-License-Identifier: EPL-2.0

//go:build nolame

package mp3

import "errors"

var errNoEngine = errors.New("built with nolame: no MP3 engine available")

func newLameEngine(int, int, int) (Engine, error) {
	return nil, errNoEngine
}
