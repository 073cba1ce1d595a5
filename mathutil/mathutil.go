// Package mathutil holds small arithmetic helpers with no shared state.
package mathutil

import (
	"errors"
	"math"
)

var (
	// ErrNegative indicates an argument that must not be negative.
	ErrNegative = errors.New("mathutil: value can't be negative")

	// ErrOverflow indicates a result that doesn't fit in the return type.
	ErrOverflow = errors.New("mathutil: result overflows int64")
)

// Integer is any built-in integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Real is any built-in integer or floating point type.
type Real interface {
	Integer | ~float32 | ~float64
}

// Sum returns the sum of values, zero for none.
func Sum[T Real](values ...T) T {
	var result T
	for _, v := range values {
		result += v
	}
	return result
}

// Average returns the arithmetic mean of values, NaN for none.
func Average[T Real](values ...T) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return float64(Sum(values...)) / float64(len(values))
}

// Factorial returns n!. 0! is 1.
func Factorial(n int64) (int64, error) {
	if n < 0 {
		return 0, ErrNegative
	}

	result := int64(1)
	for i := int64(2); i <= n; i++ {
		if result > math.MaxInt64/i {
			return 0, ErrOverflow
		}
		result *= i
	}
	return result, nil
}

func abs[T Integer](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// GCD returns the greatest common divisor of |a| and |b|.
func GCD[T Integer](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return abs(a)
}

// LCM returns the least common multiple of |a| and |b|, zero if either is zero.
func LCM[T Integer](a, b T) T {
	if a == 0 || b == 0 {
		return 0
	}
	return abs(a) / GCD(a, b) * abs(b)
}

// IsCoprime reports whether a and b share no factor other than 1.
func IsCoprime[T Integer](a, b T) bool {
	return GCD(a, b) == 1
}

// IsMultiple reports whether n is a multiple of m. Nothing is a multiple of zero.
func IsMultiple[T Integer](n, m T) bool {
	return m != 0 && n%m == 0
}

// IsPrime reports whether v is prime, by trial division over 6k±1.
func IsPrime[T Integer](v T) bool {
	if v < 4 {
		return v > 1
	}
	if v%2 == 0 || v%3 == 0 {
		return false
	}
	for i := T(5); i <= v/i; i += 6 {
		if v%i == 0 || v%(i+2) == 0 {
			return false
		}
	}
	return true
}

// PrimeFactors returns the prime factors of v in ascending order, repeated
// by multiplicity. Values below 2 have none.
//
//	PrimeFactors(14) == []int{2, 7}
//	PrimeFactors(8)  == []int{2, 2, 2}
func PrimeFactors[T Integer](v T) []T {
	var factors []T
	for div := T(2); v > 1 && div <= v/div; div++ {
		for v%div == 0 {
			factors = append(factors, div)
			v /= div
		}
	}
	if v > 1 {
		factors = append(factors, v)
	}
	return factors
}
