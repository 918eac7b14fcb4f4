// SPDX-License-Identifier: EPL-2.0

package utils

import "testing"

func TestFullScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		want     float32
	}{
		{8, 128},
		{16, 32768},
		{20, 524288},
		{24, 8388608},
		{32, 2147483648},
		{0, 32768},
		{64, 32768},
	}

	for _, tt := range tests {
		if got := FullScale(tt.bitDepth); got != tt.want {
			t.Errorf("FullScale(%d) = %v, want %v", tt.bitDepth, got, tt.want)
		}
	}
}

func TestIntToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v        int
		bitDepth int
		want     float32
	}{
		{0, 16, 0},
		{-32768, 16, -1},
		{16384, 16, 0.5},
		{-64, 8, -0.5},
		{-8388608, 24, -1},
		{4194304, 24, 0.5},
	}

	for _, tt := range tests {
		if got := IntToFloat32(tt.v, tt.bitDepth); got != tt.want {
			t.Errorf("IntToFloat32(%d, %d) = %v, want %v", tt.v, tt.bitDepth, got, tt.want)
		}
	}
}
