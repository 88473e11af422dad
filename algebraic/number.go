package algebraic

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/njchilds90/gogrim/interval"
)

const basePrec = 128

// ============================================================
// Number
// ============================================================

// Number is an exact algebraic number. Irrational values keep an enclosure
// that isolates one root of the minimal polynomial: a real value has an
// exactly zero imaginary part and a real part excluding zero, a non-real
// value has an imaginary part excluding zero.
type Number struct {
	rat  *big.Rat
	poly ZPoly
	enc  interval.Complex
	prec uint
}

// NewRat returns the rational number q.
func NewRat(q *big.Rat) *Number {
	r := new(big.Rat).Set(q)
	poly := ZPoly{new(big.Int).Neg(r.Num()), new(big.Int).Set(r.Denom())}
	return &Number{
		rat:  r,
		poly: poly,
		enc:  interval.Real(interval.NewContext(basePrec).FromRat(r)),
		prec: basePrec,
	}
}

func NewInt(n *big.Int) *Number { return NewRat(new(big.Rat).SetInt(n)) }

func NewInt64(n int64) *Number { return NewRat(big.NewRat(n, 1)) }

// I returns the imaginary unit.
func I() *Number {
	return &Number{poly: NewZPoly(1, 0, 1), enc: interval.ComplexInt64(0, 1), prec: basePrec}
}

// GoldenRatio returns (1 + sqrt 5)/2.
func GoldenRatio() *Number {
	ctx := interval.NewContext(basePrec)
	return &Number{poly: NewZPoly(-1, -1, 1), enc: interval.Real(ctx.GoldenRatio()), prec: basePrec}
}

// Minpoly returns the primitive minimal polynomial with positive leading
// coefficient.
func (x *Number) Minpoly() ZPoly { return x.poly }

func (x *Number) Degree() int { return x.poly.Degree() }

func (x *Number) IsRational() bool { return x.rat != nil }

// Rat returns a copy of the value of a rational number, or nil.
func (x *Number) Rat() *big.Rat {
	if x.rat == nil {
		return nil
	}
	return new(big.Rat).Set(x.rat)
}

func (x *Number) IsZero() bool { return x.rat != nil && x.rat.Sign() == 0 }

func (x *Number) IsOne() bool { return x.rat != nil && x.rat.Cmp(big.NewRat(1, 1)) == 0 }

func (x *Number) IsReal() bool { return x.rat != nil || x.enc.IsReal() }

// IsInteger reports whether x is a rational integer.
func (x *Number) IsInteger() bool { return x.rat != nil && x.rat.IsInt() }

// Complex128 approximates x.
func (x *Number) Complex128() complex128 { return x.enc.Complex128() }

func (x *Number) String() string {
	if x.rat != nil {
		return x.rat.RatString()
	}
	return fmt.Sprintf("root of %s near %v", x.poly, x.Complex128())
}

// Enclosure encloses x at the given working precision.
func (x *Number) Enclosure(prec uint, b Budget) (interval.Complex, error) {
	return x.enclosure(prec, b)
}

func (x *Number) enclosure(prec uint, b Budget) (interval.Complex, error) {
	if x.rat != nil {
		if prec <= x.prec {
			return x.enc, nil
		}
		return interval.Real(interval.NewContext(prec).FromRat(x.rat)), nil
	}
	if prec <= x.prec {
		return x.enc, nil
	}
	for p := prec; p <= b.maxPrec(); p *= 2 {
		roots, ok := isolate(x.poly, p)
		if !ok {
			continue
		}
		k, ok := uniqueOverlap(roots, x.enc)
		if !ok {
			continue
		}
		z := roots[k]
		if x.enc.IsReal() {
			z = interval.Real(z.Re)
		}
		return z, nil
	}
	return interval.Complex{}, errors.Wrapf(ErrBudgetExceeded, "refining root of %s", x.poly)
}

// locate builds the number with minimal polynomial poly whose value lies
// in the target enclosure.
func locate(poly ZPoly, target func(prec uint) (interval.Complex, bool), b Budget) (*Number, error) {
	poly = poly.Primitive()
	if err := b.admits(poly); err != nil {
		return nil, err
	}
	if poly.Degree() == 1 {
		return NewRat(new(big.Rat).SetFrac(new(big.Int).Neg(poly[0]), poly[1])), nil
	}
	for prec := uint(basePrec); prec <= b.maxPrec(); prec *= 2 {
		roots, ok := isolate(poly, prec)
		if !ok {
			continue
		}
		t, ok := target(prec)
		if !ok {
			continue
		}
		k, ok := uniqueOverlap(roots, t)
		if !ok {
			continue
		}
		x := &Number{poly: poly, enc: roots[k], prec: prec}
		if t.IsReal() {
			x.enc = interval.Real(x.enc.Re)
		}
		return x.settle(b)
	}
	return nil, errors.Wrapf(ErrBudgetExceeded, "locating root of %s", poly)
}

// settle refines the enclosure until the reality and sign of x are
// visible in it.
func (x *Number) settle(b Budget) (*Number, error) {
	for {
		decided := x.enc.IsReal() && !x.enc.Re.ContainsZero() ||
			!x.enc.IsReal() && !x.enc.Im.ContainsZero()
		if decided {
			return x, nil
		}
		prec := 2 * x.prec
		if prec > b.maxPrec() {
			return nil, errors.Wrapf(ErrBudgetExceeded, "settling root of %s", x.poly)
		}
		z, err := x.enclosure(prec, b)
		if err != nil {
			return nil, err
		}
		x = &Number{poly: x.poly, enc: z, prec: prec}
	}
}

// ============================================================
// Unary operations
// ============================================================

func (x *Number) Neg() *Number {
	if x.rat != nil {
		return NewRat(new(big.Rat).Neg(x.rat))
	}
	ctx := interval.NewContext(x.prec)
	return &Number{poly: x.poly.NegateVar().Primitive(), enc: ctx.Neg(x.enc), prec: x.prec}
}

func (x *Number) Conj() *Number {
	if x.IsReal() {
		return x
	}
	ctx := interval.NewContext(x.prec)
	return &Number{poly: x.poly, enc: ctx.Conj(x.enc), prec: x.prec}
}

// Sign returns the sign of a real number; it panics on non-real values.
func (x *Number) Sign() int {
	if x.rat != nil {
		return x.rat.Sign()
	}
	if !x.enc.IsReal() {
		panic("algebraic: sign of a non-real number")
	}
	if x.enc.Re.Positive() {
		return 1
	}
	return -1
}

func (b Budget) Inv(x *Number) (*Number, error) {
	if x.IsZero() {
		return nil, ErrDivisionByZero
	}
	if x.rat != nil {
		return NewRat(new(big.Rat).Inv(x.rat)), nil
	}
	return locate(x.poly.Reverse(), func(prec uint) (interval.Complex, bool) {
		z, err := x.enclosure(prec, b)
		if err != nil {
			return z, false
		}
		return interval.NewContext(prec).Inv(z)
	}, b)
}

// ============================================================
// Field arithmetic
// ============================================================

func (b Budget) Add(x, y *Number) (*Number, error) {
	switch {
	case x.rat != nil && y.rat != nil:
		return NewRat(new(big.Rat).Add(x.rat, y.rat)), nil
	case y.rat != nil:
		return b.shift(x, y.rat)
	case x.rat != nil:
		return b.shift(y, x.rat)
	}
	return b.binary(x, y, false)
}

func (b Budget) Sub(x, y *Number) (*Number, error) { return b.Add(x, y.Neg()) }

func (b Budget) Mul(x, y *Number) (*Number, error) {
	switch {
	case x.IsZero() || y.IsZero():
		return NewInt64(0), nil
	case x.rat != nil && y.rat != nil:
		return NewRat(new(big.Rat).Mul(x.rat, y.rat)), nil
	case y.rat != nil:
		return b.scale(x, y.rat)
	case x.rat != nil:
		return b.scale(y, x.rat)
	}
	return b.binary(x, y, true)
}

func (b Budget) Div(x, y *Number) (*Number, error) {
	iy, err := b.Inv(y)
	if err != nil {
		return nil, err
	}
	return b.Mul(x, iy)
}

// shift returns x + q.
func (b Budget) shift(x *Number, q *big.Rat) (*Number, error) {
	if q.Sign() == 0 {
		return x, nil
	}
	poly := x.poly.Q().Compose(NewQPoly(new(big.Rat).Neg(q), big.NewRat(1, 1))).Primitive()
	return locate(poly, func(prec uint) (interval.Complex, bool) {
		z, err := x.enclosure(prec, b)
		if err != nil {
			return z, false
		}
		ctx := interval.NewContext(prec)
		return ctx.Add(z, interval.Real(ctx.FromRat(q))), true
	}, b)
}

// scale returns q x for q != 0.
func (b Budget) scale(x *Number, q *big.Rat) (*Number, error) {
	if q.Cmp(big.NewRat(1, 1)) == 0 {
		return x, nil
	}
	poly := x.poly.Q().Compose(NewQPoly(new(big.Rat), new(big.Rat).Inv(q))).Primitive()
	return locate(poly, func(prec uint) (interval.Complex, bool) {
		z, err := x.enclosure(prec, b)
		if err != nil {
			return z, false
		}
		ctx := interval.NewContext(prec)
		return ctx.Mul(z, interval.Real(ctx.FromRat(q))), true
	}, b)
}

// binary computes x + y or x y for irrational operands. With leading
// coefficients ca and cb, every conjugate value times ca cb is an
// algebraic integer, so the product of (t - ca cb v) over all conjugate
// pairs has integer coefficients.
func (b Budget) binary(x, y *Number, mul bool) (*Number, error) {
	scale := new(big.Int).Mul(x.poly.Lead(), y.poly.Lead())
	combine := func(ctx interval.Context, u, v interval.Complex) interval.Complex {
		if mul {
			return ctx.Mul(u, v)
		}
		return ctx.Add(u, v)
	}
	r, err := integerPoly(func(prec uint) ([]interval.Complex, error) {
		ctx := interval.NewContext(prec)
		ra, _, err := rootsOf(x.poly, prec, b)
		if err != nil {
			return nil, err
		}
		rb, _, err := rootsOf(y.poly, prec, b)
		if err != nil {
			return nil, err
		}
		s := interval.Real(interval.FromInt(scale))
		out := make([]interval.Complex, 0, len(ra)*len(rb))
		for _, u := range ra {
			for _, v := range rb {
				out = append(out, ctx.Mul(s, combine(ctx, u, v)))
			}
		}
		return out, nil
	}, b)
	if err != nil {
		return nil, err
	}
	target := func(prec uint) (interval.Complex, bool) {
		u, err := x.enclosure(prec, b)
		if err != nil {
			return u, false
		}
		v, err := y.enclosure(prec, b)
		if err != nil {
			return v, false
		}
		return combine(interval.NewContext(prec), u, v), true
	}
	poly, err := minimalFactor(r, scale, target, b)
	if err != nil {
		return nil, err
	}
	return locate(poly, target, b)
}
