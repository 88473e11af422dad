package interval

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/njchilds90/gogrim/term"
)

// ============================================================
// Term evaluation
// ============================================================

type unaryFn func(Context, Complex) (Complex, bool)

var unaryOps = map[string]unaryFn{
	"Pos":         func(_ Context, z Complex) (Complex, bool) { return z, true },
	"Parentheses": func(_ Context, z Complex) (Complex, bool) { return z, true },
	"Brackets":    func(_ Context, z Complex) (Complex, bool) { return z, true },
	"Neg":         func(c Context, z Complex) (Complex, bool) { return c.Neg(z), true },
	"Sqrt":        Context.Sqrt,
	"Exp":         Context.Exp,
	"Log":         Context.Log,
	"Sin":         Context.Sin,
	"Cos":         Context.Cos,
	"Tan":         Context.Tan,
	"Sinh":        Context.Sinh,
	"Cosh":        Context.Cosh,
	"Tanh":        Context.Tanh,
	"Atan":        Context.Atan,
	"Floor":       Context.Floor,
	"Ceil":        Context.Ceil,
	"Gamma":       Context.Gamma,
	"Erf":         Context.Erf,
	"Cot": func(c Context, z Complex) (Complex, bool) {
		t, ok := c.Tan(z)
		if !ok {
			return Complex{}, false
		}
		return c.Inv(t)
	},
	"Sec": func(c Context, z Complex) (Complex, bool) {
		t, ok := c.Cos(z)
		if !ok {
			return Complex{}, false
		}
		return c.Inv(t)
	},
	"Csc": func(c Context, z Complex) (Complex, bool) {
		t, ok := c.Sin(z)
		if !ok {
			return Complex{}, false
		}
		return c.Inv(t)
	},
	"Erfc": func(c Context, z Complex) (Complex, bool) {
		e, ok := c.Erf(z)
		if !ok {
			return Complex{}, false
		}
		return c.Sub(ComplexInt64(1, 0), e), true
	},
	"Factorial": func(c Context, z Complex) (Complex, bool) {
		return c.Gamma(c.Add(z, ComplexInt64(1, 0)))
	},
	"Abs": func(c Context, z Complex) (Complex, bool) { return Real(c.Abs(z)), true },
	"Re":  func(_ Context, z Complex) (Complex, bool) { return Real(z.Re), true },
	"Im":  func(_ Context, z Complex) (Complex, bool) { return Real(z.Im), true },
	"Arg": func(c Context, z Complex) (Complex, bool) {
		if z.IsZero() {
			return ComplexInt64(0, 0), true
		}
		a, ok := c.Arg(z)
		return Real(a), ok
	},
	"Sign": func(c Context, z Complex) (Complex, bool) {
		if z.IsZero() {
			return z, true
		}
		if z.IsReal() {
			switch {
			case z.Re.Positive():
				return ComplexInt64(1, 0), true
			case z.Re.Negative():
				return ComplexInt64(-1, 0), true
			}
			return Complex{}, false
		}
		return c.Div(z, Real(c.Abs(z)))
	},
}

// Evaluate encloses the numeric value of t. It fails for symbols, for
// operators without a numeric rule, and wherever the enclosure would be
// unbounded.
func (c Context) Evaluate(t *term.Term) (Complex, bool) {
	z, ok := c.eval(t)
	if !ok || !z.IsFinite() {
		return Complex{}, false
	}
	return z, true
}

// RealEnclosure succeeds only when the imaginary part is exactly zero,
// which proves t real.
func (c Context) RealEnclosure(t *term.Term) (Ball, bool) {
	z, ok := c.Evaluate(t)
	if !ok || !z.IsReal() {
		return Ball{}, false
	}
	return z.Re, true
}

// ComplexEnclosure succeeds when t is a finite complex number.
func (c Context) ComplexEnclosure(t *term.Term) (Complex, bool) {
	return c.Evaluate(t)
}

func (c Context) eval(t *term.Term) (Complex, bool) {
	switch {
	case t.IsInteger():
		return Real(FromInt(t.IntValue())), true
	case t.IsSymbol():
		return c.constant(t.Name())
	case !t.IsApply() || !t.Head().IsSymbol():
		return Complex{}, false
	}
	name := t.Head().Name()
	args := t.Args()
	if name == "Decimal" {
		return c.decimal(args)
	}
	if fn, ok := unaryOps[name]; ok {
		if len(args) != 1 {
			return Complex{}, false
		}
		z, ok := c.eval(args[0])
		if !ok {
			return Complex{}, false
		}
		return fn(c, z)
	}
	vals := make([]Complex, len(args))
	for i, a := range args {
		v, ok := c.eval(a)
		if !ok {
			return Complex{}, false
		}
		vals[i] = v
	}
	switch name {
	case "Add":
		sum := ComplexInt64(0, 0)
		for _, v := range vals {
			sum = c.Add(sum, v)
		}
		return sum, true
	case "Mul":
		prod := ComplexInt64(1, 0)
		for _, v := range vals {
			prod = c.Mul(prod, v)
		}
		return prod, true
	case "Sub":
		if len(vals) == 2 {
			return c.Sub(vals[0], vals[1]), true
		}
	case "Div":
		if len(vals) == 2 {
			return c.Div(vals[0], vals[1])
		}
	case "Pow":
		if len(vals) == 2 {
			return c.Pow(vals[0], vals[1])
		}
	}
	return Complex{}, false
}

func (c Context) constant(name string) (Complex, bool) {
	switch name {
	case "Pi":
		return Real(c.Pi()), true
	case "ConstE":
		return Real(c.E()), true
	case "ConstI":
		return ComplexInt64(0, 1), true
	case "GoldenRatio":
		return Real(c.GoldenRatio()), true
	case "ConstGamma":
		return Real(c.EulerGamma()), true
	case "ConstCatalan":
		return Real(c.Catalan()), true
	}
	return Complex{}, false
}

// decimal reads Decimal("1.25") exactly.
func (c Context) decimal(args []*term.Term) (Complex, bool) {
	if len(args) != 1 || !args[0].IsText() {
		return Complex{}, false
	}
	q, ok := ParseDecimal(args[0].TextValue())
	if !ok {
		return Complex{}, false
	}
	return Real(c.FromRat(q)), true
}

// ParseDecimal converts a decimal literal to an exact rational.
func ParseDecimal(s string) (*big.Rat, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, false
	}
	return d.Rat(), true
}
