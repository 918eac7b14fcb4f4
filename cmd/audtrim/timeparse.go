// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errBadTime = errors.New("want seconds or [h:]mm:ss")

// parseTime accepts "65", "65.5", "1:05", "1:05.5" and "1:01:05".
func parseTime(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", errBadTime)
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", errBadTime, s)
	}

	var total float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", errBadTime, s)
		}
		// only the leading field may exceed 59
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("%w: %q", errBadTime, s)
		}
		total = total*60 + v
	}

	return total, nil
}
