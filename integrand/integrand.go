// Package integrand compiles textual expressions in x into integrands.
//
//	f, err := integrand.Compile("1/(x+1)")
//	di, err := quadrature.NewDefiniteIntegral(f.Func(), 2, 3)
//
// Expressions use the expr language (https://expr-lang.org) with these
// additions: sin, cos, tan, asin, acos, atan, sinh, cosh, tanh, exp, log,
// sqrt, pow and the constants pi and e.
package integrand

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/alexshd/quadrature"
)

// Variable is the name of the integration variable.
const Variable = "x"

// ErrEmpty indicates an empty expression.
var ErrEmpty = errors.New("integrand: empty expression")

// env is the evaluation environment. expr resolves names through the
// field tags; X is the only field that changes between evaluations.
type env struct {
	X float64 `expr:"x"`

	Pi float64 `expr:"pi"`
	E  float64 `expr:"e"`

	Sin  func(float64) float64          `expr:"sin"`
	Cos  func(float64) float64          `expr:"cos"`
	Tan  func(float64) float64          `expr:"tan"`
	Asin func(float64) float64          `expr:"asin"`
	Acos func(float64) float64          `expr:"acos"`
	Atan func(float64) float64          `expr:"atan"`
	Sinh func(float64) float64          `expr:"sinh"`
	Cosh func(float64) float64          `expr:"cosh"`
	Tanh func(float64) float64          `expr:"tanh"`
	Exp  func(float64) float64          `expr:"exp"`
	Log  func(float64) float64          `expr:"log"`
	Sqrt func(float64) float64          `expr:"sqrt"`
	Pow  func(float64, float64) float64 `expr:"pow"`
}

var library = env{
	Pi:   math.Pi,
	E:    math.E,
	Sin:  math.Sin,
	Cos:  math.Cos,
	Tan:  math.Tan,
	Asin: math.Asin,
	Acos: math.Acos,
	Atan: math.Atan,
	Sinh: math.Sinh,
	Cosh: math.Cosh,
	Tanh: math.Tanh,
	Exp:  math.Exp,
	Log:  math.Log,
	Sqrt: math.Sqrt,
	Pow:  math.Pow,
}

// Integrand is a compiled expression in x.
type Integrand struct {
	source  string
	program *vm.Program
}

// Compile parses and type-checks src as a float expression in x.
func Compile(src string) (*Integrand, error) {
	if src == "" {
		return nil, ErrEmpty
	}

	program, err := expr.Compile(src, expr.Env(environment(0)), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("integrand %q: %w", src, err)
	}
	return &Integrand{source: src, program: program}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Integrand {
	f, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return f
}

// environment copies library by value, so concurrent evaluations never
// share an environment.
func environment(x float64) env {
	e := library
	e.X = x
	return e
}

// Source returns the expression text.
func (f *Integrand) Source() string {
	return f.source
}

// Eval evaluates the expression at x.
func (f *Integrand) Eval(x float64) (float64, error) {
	out, err := expr.Run(f.program, environment(x))
	if err != nil {
		return math.NaN(), fmt.Errorf("integrand %q at x=%g: %w", f.source, x, err)
	}

	v, ok := out.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("integrand %q at x=%g: result is %T, not float64", f.source, x, out)
	}
	return v, nil
}

// Func adapts the expression to a quadrature.Func. Evaluation errors
// become NaN, which propagates into the approximation.
func (f *Integrand) Func() quadrature.Func {
	return func(x float64) float64 {
		v, err := f.Eval(x)
		if err != nil {
			return math.NaN()
		}
		return v
	}
}

// Constant evaluates an expression that doesn't depend on x, such as "pi/2".
func Constant(src string) (float64, error) {
	f, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return f.Eval(0)
}
