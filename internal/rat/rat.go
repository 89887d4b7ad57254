// Package rat implements the exact rational values that every rpnc
// computation produces: an arbitrary-precision signed numerator over a
// positive denominator, always in lowest terms. Zero is (0, 1). All
// operations return new values; a Rat is never mutated after creation,
// which is what lets concurrent evaluation passes share results freely.
package rat

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrDivisionByZero reports a division whose divisor evaluated to zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrModulusZero reports a modular exponentiation whose modulus
	// coerced to zero.
	ErrModulusZero = errors.New("modulus is zero")
)

// Rat is an immutable exact rational. The zero value is the number zero.
type Rat struct {
	v *big.Rat
}

var zeroRat = big.NewRat(0, 1)

func (a Rat) rat() *big.Rat {
	if a.v == nil {
		return zeroRat
	}
	return a.v
}

func wrap(v *big.Rat) Rat { return Rat{v: v} }

// Int returns the rational n/1.
func Int(n int64) Rat { return wrap(big.NewRat(n, 1)) }

// FromBigInt returns the rational n/1. The argument is copied.
func FromBigInt(n *big.Int) Rat {
	return wrap(new(big.Rat).SetInt(n))
}

func (a Rat) Add(b Rat) Rat { return wrap(new(big.Rat).Add(a.rat(), b.rat())) }
func (a Rat) Sub(b Rat) Rat { return wrap(new(big.Rat).Sub(a.rat(), b.rat())) }
func (a Rat) Mul(b Rat) Rat { return wrap(new(big.Rat).Mul(a.rat(), b.rat())) }

// Div returns a/b, or ErrDivisionByZero when b is zero.
func (a Rat) Div(b Rat) (Rat, error) {
	if b.IsZero() {
		return Rat{}, ErrDivisionByZero
	}
	return wrap(new(big.Rat).Quo(a.rat(), b.rat())), nil
}

// PosSub returns max(a-b, 0); it can never be negative.
func (a Rat) PosSub(b Rat) Rat {
	d := new(big.Rat).Sub(a.rat(), b.rat())
	if d.Sign() < 0 {
		return Rat{}
	}
	return wrap(d)
}

// Floor returns the greatest integer not above a, as a rational with
// denominator 1.
func (a Rat) Floor() Rat {
	return FromBigInt(a.floor())
}

// floor computes floor(a) as an integer. big.Int.Div is Euclidean and
// the denominator is always positive, so Div(num, den) is exactly the
// floor of the quotient.
func (a Rat) floor() *big.Int {
	r := a.rat()
	return new(big.Int).Div(r.Num(), r.Denom())
}

// FloorAbs coerces a to the non-negative integer floor(abs(a)), the
// rule both exponentiation forms apply to their exponent and modulus
// operands.
func (a Rat) FloorAbs() *big.Int {
	r := a.rat()
	q := new(big.Int).Quo(r.Num(), r.Denom())
	return q.Abs(q)
}

// IntDiv returns floor(a/b) with denominator 1, or ErrDivisionByZero
// when b is zero.
func (a Rat) IntDiv(b Rat) (Rat, error) {
	q, err := a.Div(b)
	if err != nil {
		return Rat{}, err
	}
	return q.Floor(), nil
}

// Abs returns the absolute value of a.
func (a Rat) Abs() Rat { return wrap(new(big.Rat).Abs(a.rat())) }

// Pow returns a raised to floor(abs(b)). A fractional or negative
// exponent is truncated, not rejected, preserving exactness.
func (a Rat) Pow(b Rat) Rat {
	e := b.FloorAbs()
	r := a.rat()
	num := new(big.Int).Exp(r.Num(), e, nil)
	den := new(big.Int).Exp(r.Denom(), e, nil)
	return wrap(new(big.Rat).SetFrac(num, den))
}

// PowMod returns floor(a)^floor(abs(e)) mod floor(abs(m)) with
// denominator 1, or ErrModulusZero when the coerced modulus is zero.
func (a Rat) PowMod(e, m Rat) (Rat, error) {
	mi := m.FloorAbs()
	if mi.Sign() == 0 {
		return Rat{}, ErrModulusZero
	}
	base := a.floor()
	out := new(big.Int).Exp(base, e.FloorAbs(), mi)
	if out.Sign() < 0 {
		out.Add(out, mi)
	}
	return FromBigInt(out), nil
}

func (a Rat) IsZero() bool { return a.rat().Sign() == 0 }
func (a Rat) Sign() int    { return a.rat().Sign() }

// IsInt reports whether a has denominator 1.
func (a Rat) IsInt() bool { return a.rat().IsInt() }

func (a Rat) Cmp(b Rat) int    { return a.rat().Cmp(b.rat()) }
func (a Rat) Equal(b Rat) bool { return a.Cmp(b) == 0 }

// Num returns a copy of the numerator.
func (a Rat) Num() *big.Int { return new(big.Int).Set(a.rat().Num()) }

// Denom returns a copy of the denominator; it is always positive.
func (a Rat) Denom() *big.Int { return new(big.Int).Set(a.rat().Denom()) }

// String renders "n" for integers and "n/d" otherwise.
func (a Rat) String() string {
	r := a.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	return fmt.Sprintf("%v/%v", r.Num(), r.Denom())
}
