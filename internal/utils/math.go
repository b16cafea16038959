package utils

import "cmp"

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp is inclusive on both ends; values at or past a bound return that bound.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v >= hi {
		return hi
	}
	if v <= lo {
		return lo
	}
	return v
}

// Digits counts decimal digits of n; zero has none, which is how the score
// window centres an empty score.
func Digits(n uint32) int {
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}
