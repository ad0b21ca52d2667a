package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to the inclusive range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T float32 | float64 | int](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates from a toward b by t. t is not clamped; values
// outside [0, 1] extrapolate.
//
// Parameters:
//   - a: the start value
//   - b: the end value
//   - t: the interpolation fraction
//
// Returns:
//   - float32: a + (b-a)*t
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
