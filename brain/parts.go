package brain

import (
	"github.com/njchilds90/gogrim/term"
)

// Absolute value, real and imaginary parts, argument and rounding.

func (s *Session) simpleAbs(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	switch {
	case x.IsInteger():
		v := x.IntValue()
		return term.BigInt(v.Abs(v))
	case x.Equal(term.Undefined):
		return x
	case s.IsInfinity(x) == True:
		return term.Infinity
	}
	if z, ok := s.complexEnclosure(x); ok {
		if z.Im.IsZero() {
			if z.Re.NonNegative() {
				return x
			}
			if z.Re.Negative() {
				return s.Simplify(neg(x))
			}
		}
		if z.Re.IsZero() {
			if z.Im.NonNegative() {
				return s.Simplify(mul(neg(term.ConstI), x))
			}
			if z.Im.Negative() {
				return s.Simplify(mul(term.ConstI, x))
			}
		}
	}
	switch {
	case s.IsNonNegative(x) == True:
		return x
	case s.IsNonPositive(x) == True:
		return s.Simplify(neg(x))
	case x.Is(term.Exp, 1) && s.IsComplex(x.Arg(0)) == True:
		if s.IsReal(s.Simplify(div(x.Arg(0), term.ConstI))) == True {
			return num(1)
		}
	}
	return term.Abs.Of(x)
}

// splitReal separates the factors of a product into known real ones and
// the rest.
func (s *Session) splitReal(factors []*term.Term) (known, rest *term.Term, ok bool) {
	var rs, others []*term.Term
	for _, f := range factors {
		if s.IsReal(f) == True {
			rs = append(rs, f)
		} else {
			others = append(others, f)
		}
	}
	if len(rs) == 0 {
		return nil, nil, false
	}
	return productOf(rs), productOf(others), true
}

func productOf(fs []*term.Term) *term.Term {
	switch len(fs) {
	case 0:
		return num(1)
	case 1:
		return fs[0]
	}
	return mul(fs...)
}

// part distributes Re or Im over sums, differences and negations.
func (s *Session) part(x *term.Term, f func([]*term.Term) *term.Term) (*term.Term, bool) {
	one := func(t *term.Term) *term.Term { return f([]*term.Term{t}) }
	switch {
	case x.HasHead(term.Add):
		parts := make([]*term.Term, x.NumArgs())
		for i, a := range x.Args() {
			parts[i] = one(a)
		}
		return s.simpleAdd(parts), true
	case x.Is(term.Sub, 2):
		return s.simpleSub([]*term.Term{one(x.Arg(0)), one(x.Arg(1))}), true
	case x.Is(term.Neg, 1):
		return s.simpleNeg([]*term.Term{one(x.Arg(0))}), true
	}
	return nil, false
}

func (s *Session) simpleRe(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	switch {
	case s.IsInteger(x) == True:
		return x
	case s.IsComplex(x) != True:
		return term.Re.Of(x)
	case s.IsReal(x) == True:
		return x
	}
	if v, ok := s.part(x, s.simpleRe); ok {
		return v
	}
	switch {
	case x.HasHead(term.Mul):
		if r, o, ok := s.splitReal(x.Args()); ok {
			return s.Simplify(mul(r, term.Re.Of(o)))
		}
	case x.Is(term.Div, 2):
		a, b := x.Arg(0), x.Arg(1)
		if s.IsNotZero(b) == True && s.IsReal(b) == True {
			if s.IsReal(a) == True {
				return div(a, b)
			}
			return s.Simplify(div(term.Re.Of(a), b))
		}
	case x.Is(term.Exp, 1):
		a := x.Arg(0)
		return s.Simplify(mul(term.Exp.Of(term.Re.Of(a)), term.Cos.Of(term.Im.Of(a))))
	}
	if z, ok := s.complexEnclosure(x); ok && z.Re.IsZero() {
		return num(0)
	}
	return term.Re.Of(x)
}

func (s *Session) simpleIm(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	switch {
	case s.IsComplex(x) != True:
		return term.Im.Of(x)
	case s.IsReal(x) == True:
		return num(0)
	case x.Equal(term.ConstI):
		return num(1)
	}
	if v, ok := s.part(x, s.simpleIm); ok {
		return v
	}
	switch {
	case x.HasHead(term.Mul):
		if r, o, ok := s.splitReal(x.Args()); ok {
			return s.Simplify(mul(r, term.Im.Of(o)))
		}
	case x.Is(term.Exp, 1):
		a := x.Arg(0)
		return s.Simplify(mul(term.Exp.Of(term.Re.Of(a)), term.Sin.Of(term.Im.Of(a))))
	}
	if v := s.Simplify(div(x, term.ConstI)); s.IsReal(v) == True {
		return v
	}
	return term.Im.Of(x)
}

func (s *Session) simpleArg(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	switch {
	case s.IsComplex(x) != True:
		return term.Arg.Of(x)
	case x.IsInt(0):
		return x
	case s.IsNonNegative(x) == True:
		return num(0)
	case s.IsNegative(x) == True:
		return term.Pi
	case s.IsPositive(div(x, term.ConstI)) == True:
		return div(term.Pi, num(2))
	case s.IsNegative(div(x, term.ConstI)) == True:
		return s.Simplify(neg(div(term.Pi, num(2))))
	}
	return term.Arg.Of(x)
}

// rounded evaluates Floor or Ceil numerically when the enclosure pins a
// single integer.
func (s *Session) rounded(head *term.Term, args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	if s.IsInteger(x) == True {
		return x
	}
	t := head.Of(x)
	if v, ok := s.realEnclosure(t); ok && v.IsExact() {
		if n, ok := v.UniqueInteger(); ok {
			return term.BigInt(n)
		}
	}
	return t
}

func (s *Session) simpleFloor(args []*term.Term) *term.Term { return s.rounded(term.Floor, args) }

func (s *Session) simpleCeil(args []*term.Term) *term.Term { return s.rounded(term.Ceil, args) }
