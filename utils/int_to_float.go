// SPDX-License-Identifier: EPL-2.0

package utils

// FullScale returns the magnitude of the most negative value of a signed
// integer sample of the given bit depth. Unknown depths fall back to 16 bits.
func FullScale(bitDepth int) float32 {
	if bitDepth < 2 || bitDepth > 32 {
		bitDepth = 16
	}
	return float32(uint64(1) << (bitDepth - 1))
}

// IntToFloat32 normalizes a signed integer sample to [-1.0, 1.0).
func IntToFloat32(v int, bitDepth int) float32 {
	return float32(v) / FullScale(bitDepth)
}
