// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalized sample to 16-bit PCM.
//
// The sample is clamped to [-1, 1]; negative values scale by 32768 and
// positive values by 32767 so both ends of the int16 range are reachable.
// The product is truncated toward zero.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	if x < 0 {
		return int16(x * 32768.0)
	}
	return int16(x * 32767.0)
}

// Float32sToInt16s converts src into dst and returns the number converted,
// which is the shorter of the two lengths.
func Float32sToInt16s(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}
