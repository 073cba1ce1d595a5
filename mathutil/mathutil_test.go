package mathutil

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// TestSum verifies sums across numeric kinds.
func TestSum(t *testing.T) {
	if got := Sum(1, 2, 3, 4); got != 10 {
		t.Errorf("Sum(ints) = %d, want 10", got)
	}
	if got := Sum[int64](); got != 0 {
		t.Errorf("Sum() = %d, want 0", got)
	}
	if got := Sum(0.5, 0.25, 0.125); got != 0.875 {
		t.Errorf("Sum(floats) = %v, want 0.875", got)
	}
	if got := Sum[float32](1.5, 2.5); got != 4 {
		t.Errorf("Sum(float32) = %v, want 4", got)
	}
}

// TestAverage verifies means, including integer inputs with fractional means.
func TestAverage(t *testing.T) {
	if got := Average(1, 2); got != 1.5 {
		t.Errorf("Average(1, 2) = %v, want 1.5", got)
	}
	if got := Average(2.0, 4.0, 9.0); got != 5 {
		t.Errorf("Average(2, 4, 9) = %v, want 5", got)
	}
	if got := Average[int](); !math.IsNaN(got) {
		t.Errorf("Average() = %v, want NaN", got)
	}
}

// TestFactorial verifies n! and its error cases.
func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int64
		want int64
	}{
		{0, 1},
		{1, 1},
		{5, 120},
		{10, 3628800},
		{20, 2432902008176640000},
	}
	for _, tt := range tests {
		got, err := Factorial(tt.n)
		if err != nil {
			t.Errorf("Factorial(%d) failed: %v", tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Factorial(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}

	if _, err := Factorial(-1); !errors.Is(err, ErrNegative) {
		t.Errorf("Factorial(-1): expected ErrNegative, got %v", err)
	}
	if _, err := Factorial(21); !errors.Is(err, ErrOverflow) {
		t.Errorf("Factorial(21): expected ErrOverflow, got %v", err)
	}
}

// TestGCD verifies the greatest common divisor ignores signs.
func TestGCD(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{12, 18, 6},
		{18, 12, 6},
		{-12, 18, 6},
		{12, -18, 6},
		{7, 0, 7},
		{0, 7, 7},
		{17, 5, 1},
	}
	for _, tt := range tests {
		if got := GCD(tt.a, tt.b); got != tt.want {
			t.Errorf("GCD(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}

	if got := GCD[uint64](48, 180); got != 12 {
		t.Errorf("GCD[uint64](48, 180) = %d, want 12", got)
	}
}

// TestLCM verifies the least common multiple.
func TestLCM(t *testing.T) {
	tests := []struct{ a, b, want int64 }{
		{2, 3, 6},
		{4, 6, 12},
		{-4, 6, 12},
		{0, 6, 0},
		{21, 6, 42},
	}
	for _, tt := range tests {
		if got := LCM(tt.a, tt.b); got != tt.want {
			t.Errorf("LCM(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestIsCoprime verifies relative primality.
func TestIsCoprime(t *testing.T) {
	if !IsCoprime(8, 15) {
		t.Error("8 and 15 should be coprime")
	}
	if IsCoprime(8, 12) {
		t.Error("8 and 12 should not be coprime")
	}
}

// TestIsMultiple verifies the divisibility check rules rely on.
func TestIsMultiple(t *testing.T) {
	tests := []struct {
		n, m int
		want bool
	}{
		{12, 3, true},
		{100, 3, false},
		{4, 2, true},
		{3, 2, false},
		{0, 2, true},
		{5, 0, false},
	}
	for _, tt := range tests {
		if got := IsMultiple(tt.n, tt.m); got != tt.want {
			t.Errorf("IsMultiple(%d, %d) = %v, want %v", tt.n, tt.m, got, tt.want)
		}
	}
}

// TestIsPrime verifies primality over small and larger values.
func TestIsPrime(t *testing.T) {
	primes := []int64{2, 3, 5, 7, 11, 13, 97, 7919, 2147483647}
	for _, p := range primes {
		if !IsPrime(p) {
			t.Errorf("%d should be prime", p)
		}
	}

	composites := []int64{-7, 0, 1, 4, 9, 25, 49, 91, 7917, 2147483649}
	for _, c := range composites {
		if IsPrime(c) {
			t.Errorf("%d should not be prime", c)
		}
	}
}

// TestPrimeFactors verifies factorization with multiplicity.
func TestPrimeFactors(t *testing.T) {
	tests := []struct {
		v    int
		want []int
	}{
		{14, []int{2, 7}},
		{8, []int{2, 2, 2}},
		{360, []int{2, 2, 2, 3, 3, 5}},
		{97, []int{97}},
		{1, nil},
		{0, nil},
		{-12, nil},
	}
	for _, tt := range tests {
		if got := PrimeFactors(tt.v); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PrimeFactors(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}

	if got := PrimeFactors[int64](600851475143); !reflect.DeepEqual(got, []int64{71, 839, 1471, 6857}) {
		t.Errorf("PrimeFactors(600851475143) = %v", got)
	}
}
