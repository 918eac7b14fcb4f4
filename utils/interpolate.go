// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through four consecutive
// samples at x in [0, 1], where x = 0 yields y1 and x = 1 yields y2.
//
// The curve may overshoot the neighbouring samples near a peak; callers
// that need a bounded result clamp afterwards (Float32ToInt16 does).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	return y1 + 0.5*x*(y2-y0+x*(2*y0-5*y1+4*y2-y3+x*(3*(y1-y2)+y3-y0)))
}
