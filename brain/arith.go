package brain

import (
	"math/big"
	"slices"

	"github.com/njchilds90/gogrim/internal/numtheory"
	"github.com/njchilds90/gogrim/term"
)

// ============================================================
// Sums
// ============================================================

// termCoeff walks a sum, calling emit with every summand and its rational
// coefficient.
func (s *Session) termCoeff(x *term.Term, c *big.Rat, emit func(*term.Term, *big.Rat)) {
	scaled := func(k *big.Rat) *big.Rat { return new(big.Rat).Mul(c, k) }
	switch {
	case x.IsInteger():
		emit(term.Int(1), scaled(new(big.Rat).SetInt(x.IntValue())))
	case x.HasHead(term.Add):
		for _, a := range x.Args() {
			s.termCoeff(a, c, emit)
		}
	case x.Is(term.Sub, 2):
		s.termCoeff(x.Arg(0), c, emit)
		s.termCoeff(x.Arg(1), new(big.Rat).Neg(c), emit)
	case x.Is(term.Neg, 1):
		s.termCoeff(x.Arg(0), new(big.Rat).Neg(c), emit)
	case x.HasHead(term.Mul) && x.NumArgs() >= 2:
		v, err := s.evaluateRational(x.Arg(0))
		if err != nil {
			emit(x, c)
			return
		}
		s.termCoeff(s.simpleMul(x.Args()[1:]), scaled(v), emit)
	case x.Is(term.Div, 2) && x.Arg(1).IsInteger() && x.Arg(1).Sign() != 0:
		q := new(big.Rat).SetInt(x.Arg(1).IntValue())
		s.termCoeff(x.Arg(0), new(big.Rat).Quo(c, q), emit)
	default:
		emit(x, c)
	}
}

// realFirst orders terms with known real terms first, then by complexity
// and printed form.
func (s *Session) realFirst(ts []*term.Term) {
	s.sortTerms(ts, func(t *term.Term) bool { return s.IsReal(t) != True })
}

func (s *Session) sortTerms(ts []*term.Term, late func(*term.Term) bool) {
	type keyed struct {
		t    *term.Term
		late bool
		cost int
		repr string
	}
	ks := make([]keyed, len(ts))
	for i, t := range ts {
		ks[i] = keyed{t, late(t), s.Complexity(t), t.String()}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		if a.late != b.late {
			if a.late {
				return 1
			}
			return -1
		}
		if a.cost != b.cost {
			return a.cost - b.cost
		}
		switch {
		case a.repr < b.repr:
			return -1
		case a.repr > b.repr:
			return 1
		}
		return 0
	})
	for i, k := range ks {
		ts[i] = k.t
	}
}

func (s *Session) simpleAdd(args []*term.Term) *term.Term {
	switch len(args) {
	case 0:
		return num(0)
	case 1:
		return s.Simplify(args[0])
	}
	args = s.simplifyAll(args)
	if !s.all(args, s.IsComplex) {
		return add(args...)
	}
	coeffs := term.NewMap[*big.Rat]()
	for _, a := range args {
		s.termCoeff(a, big.NewRat(1, 1), func(t *term.Term, c *big.Rat) {
			if old, ok := coeffs.Get(t); ok {
				c = new(big.Rat).Add(old, c)
			}
			coeffs.Put(t, c)
		})
	}
	var terms []*term.Term
	coeffs.Each(func(t *term.Term, c *big.Rat) bool {
		switch {
		case c.Sign() == 0:
		case c.Cmp(big.NewRat(1, 1)) == 0:
			terms = append(terms, t)
		case c.Cmp(big.NewRat(-1, 1)) == 0:
			if t.IsInt(1) {
				terms = append(terms, num(-1))
			} else {
				terms = append(terms, neg(t))
			}
		case c.IsInt():
			terms = append(terms, s.simpleMul([]*term.Term{t, term.BigInt(c.Num())}))
		default:
			terms = append(terms, s.simpleMul([]*term.Term{t, div(term.BigInt(c.Num()), term.BigInt(c.Denom()))}))
		}
		return true
	})
	s.realFirst(terms)
	switch {
	case len(terms) == 0:
		return num(0)
	case len(terms) == 1:
		return terms[0]
	case len(terms) == 2 && terms[1].Is(term.Neg, 1):
		return sub(terms[0], terms[1].Arg(0))
	}
	return add(terms...)
}

func (s *Session) simpleSub(args []*term.Term) *term.Term {
	if len(args) != 2 {
		return nil
	}
	x, y := args[0], args[1]
	if s.IsComplex(x) == True && s.IsComplex(y) == True {
		return s.simpleAdd([]*term.Term{x, neg(y)})
	}
	return sub(s.Simplify(x), s.Simplify(y))
}

// ============================================================
// Products
// ============================================================

// baseExp walks a product, calling emit with every base and exponent.
func (s *Session) baseExp(x *term.Term, emit func(b, e *term.Term)) {
	switch {
	case x.HasHead(term.Mul):
		for _, a := range x.Args() {
			s.baseExp(a, emit)
		}
	case x.Is(term.Div, 2):
		s.baseExp(x.Arg(0), emit)
		s.baseExp(x.Arg(1), func(b, e *term.Term) { emit(b, s.simpleNeg([]*term.Term{e})) })
	case x.Is(term.Exp, 1):
		emit(term.ConstE, x.Arg(0))
	case x.Is(term.Pow, 2) && x.Arg(1).IsInteger():
		e := x.Arg(1)
		s.baseExp(x.Arg(0), func(b2, e2 *term.Term) { emit(b2, s.simpleMul([]*term.Term{e2, e})) })
	case x.Is(term.Pow, 2):
		emit(x.Arg(0), x.Arg(1))
	case x.Is(term.Sqrt, 1):
		emit(x.Arg(0), frac(1, 2))
	case x.Is(term.Neg, 1):
		emit(num(-1), num(1))
		s.baseExp(x.Arg(0), emit)
	default:
		emit(x, num(1))
	}
}

var half = frac(1, 2)

func (s *Session) simpleMul(args []*term.Term) *term.Term {
	switch len(args) {
	case 0:
		return num(1)
	case 1:
		return s.Simplify(args[0])
	}
	args = s.simplifyAll(args)
	if !s.all(args, s.IsComplex) {
		return mul(args...)
	}
	for _, a := range args {
		if a.IsInt(0) {
			return num(0)
		}
	}

	prefactor := big.NewRat(1, 1)
	exps := term.NewMap[*term.Term]()
	for _, a := range args {
		s.baseExp(a, func(b, e *term.Term) {
			if b.IsInteger() && e.IsInteger() && b.Sign() != 0 {
				n, small := e.Int64()
				if b.IsInt(-1) {
					if e.IntValue().Bit(0) == 1 {
						prefactor.Neg(prefactor)
					}
					return
				}
				if small && n >= -2 && n <= 2 {
					p, _ := ratPow(new(big.Rat).SetInt(b.IntValue()), n)
					prefactor.Mul(prefactor, p)
					return
				}
			}
			if old, ok := exps.Get(b); ok {
				e = add(old, e)
			}
			exps.Put(b, e)
		})
	}

	var nums, dens []*term.Term
	exps.Each(func(b, e *term.Term) bool {
		e = s.Simplify(e)
		if b.Equal(term.ConstE) {
			switch {
			case e.IsInt(0):
			case e.IsInt(1):
				nums = append(nums, term.ConstE)
			default:
				nums = append(nums, term.Exp.Of(e))
			}
			return true
		}
		switch {
		case e.IsInteger():
			switch c := e.IntValue(); {
			case c.Sign() == 0:
			case e.IsInt(1):
				nums = append(nums, b)
			case e.IsInt(-1):
				dens = append(dens, b)
			case c.Sign() > 0:
				nums = append(nums, pow(b, e))
			default:
				dens = append(dens, pow(b, term.BigInt(c.Neg(c))))
			}
		case e.Is(term.Neg, 1):
			dens = append(dens, pow(b, e.Arg(0)))
		case e.Equal(half):
			nums = append(nums, sqrt(b))
		default:
			nums = append(nums, pow(b, e))
		}
		return true
	})

	s.realFirst(nums)
	s.sortTerms(dens, func(t *term.Term) bool { return s.IsReal(t) == True })
	if p := prefactor.Num(); !p.IsInt64() || p.Int64() != 1 {
		nums = append([]*term.Term{term.BigInt(p)}, nums...)
	}
	if q := prefactor.Denom(); !q.IsInt64() || q.Int64() != 1 {
		dens = append([]*term.Term{term.BigInt(q)}, dens...)
	}
	n, d := productOf(nums), productOf(dens)
	if d.IsInt(1) {
		return n
	}
	return div(n, d)
}

func (s *Session) simpleDiv(args []*term.Term) *term.Term {
	if len(args) != 2 {
		return nil
	}
	quotient := func(x, y *term.Term) *term.Term {
		if s.IsComplex(x) == True && s.IsComplex(y) == True && s.IsNotZero(y) == True {
			return s.simpleMul([]*term.Term{x, pow(y, num(-1))})
		}
		return nil
	}
	if q := quotient(args[0], args[1]); q != nil {
		return q
	}
	x, y := s.Simplify(args[0]), s.Simplify(args[1])
	if q := quotient(x, y); q != nil {
		return q
	}
	return div(x, y)
}

// ============================================================
// Powers and elementary functions
// ============================================================

func (s *Session) simplePow(args []*term.Term) *term.Term {
	if len(args) != 2 {
		return nil
	}
	x, y := s.Simplify(args[0]), s.Simplify(args[1])
	if s.IsComplex(x) == True && s.IsComplex(y) == True {
		switch {
		case x.IsInteger() && y.IsInteger() && y.Sign() >= 0 && y.IntValue().Cmp(big.NewInt(2)) <= 0:
			return term.BigInt(new(big.Int).Exp(x.IntValue(), y.IntValue(), nil))
		case y.IsInt(0):
			return num(1)
		case y.IsInt(1):
			return x
		case x.IsInt(1):
			return num(1)
		case x.IsInt(0):
			if s.IsPositive(y) == True {
				return num(0)
			}
			if s.IsNegative(y) == True {
				return term.UnsignedInfinity
			}
		}
	}
	if x.Equal(term.ConstE) {
		return term.Exp.Of(y)
	}
	return pow(x, y)
}

func (s *Session) simpleExp(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	return s.simplePow([]*term.Term{term.ConstE, args[0]})
}

func (s *Session) simpleLog(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	switch {
	case x.IsInt(1):
		return num(0)
	case x.Equal(term.ConstE):
		return num(1)
	case x.Is(term.Exp, 1) && s.IsReal(x.Arg(0)) == True:
		return x.Arg(0)
	}
	return term.Log.Of(x)
}

func (s *Session) simpleSqrt(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	switch {
	case x.IsInt(0), x.IsInt(1), x.Equal(term.Infinity), x.Equal(term.UnsignedInfinity), x.Equal(term.Undefined):
		return x
	case x.IsInt(-1):
		return term.ConstI
	case x.Equal(negInfinity):
		return mul(term.ConstI, term.Infinity)
	case x.IsInteger():
		v := x.IntValue()
		negative := v.Sign() < 0
		if r, exact := numtheory.Isqrt(v.Abs(v)); exact {
			if negative {
				return mul(term.BigInt(r), term.ConstI)
			}
			return term.BigInt(r)
		}
	}
	if s.IsNegative(x) == True {
		return mul(s.simpleSqrt([]*term.Term{neg(x)}), term.ConstI)
	}
	if x.Is(term.Pow, 2) {
		base := x.Arg(0)
		if e, ok := x.Arg(1).Int64(); ok && e > 0 && e%2 == 0 &&
			s.IsReal(base) == True && s.IsNonNegative(base) == True {
			if e == 2 {
				return base
			}
			return pow(base, num(e/2))
		}
	}
	return sqrt(x)
}

// sinTable holds sin(pi k/120) for the multiples with a closed form.
var sinTable = map[int64]*term.Term{
	0:  num(0),
	10: div(mul(sqrt(num(2)), sub(sqrt(num(3)), num(1))), num(4)),
	12: div(sub(sqrt(num(5)), num(1)), num(4)),
	15: div(sqrt(sub(num(2), sqrt(num(2)))), num(2)),
	20: half,
	30: div(sqrt(num(2)), num(2)),
	36: div(add(sqrt(num(5)), num(1)), num(4)),
	40: div(sqrt(num(3)), num(2)),
	45: div(sqrt(add(sqrt(num(2)), num(2))), num(2)),
	50: div(mul(sqrt(num(2)), add(sqrt(num(3)), num(1))), num(4)),
	60: num(1),
}

// sinPiOver120 returns sin(pi v/120) for 0 <= v < 120.
func (s *Session) sinPiOver120(v int64) *term.Term {
	if v > 60 {
		v = 120 - v
	}
	if t, ok := sinTable[v]; ok {
		return t
	}
	if v > 30 {
		return term.Cos.Of(s.Simplify(div(mul(term.Pi, num(60-v)), num(120))))
	}
	return term.Sin.Of(s.Simplify(div(mul(term.Pi, num(v)), num(120))))
}

// piMultiple reads x as pi k/120 for an integer k.
func (s *Session) piMultiple(x *term.Term) (int64, bool) {
	return s.Simplify(mul(x, div(num(120), term.Pi))).Int64()
}

func (s *Session) simpleSin(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	if x.IsInt(0) {
		return x
	}
	if s.IsComplex(x) == True {
		if s.IsInteger(s.Simplify(div(x, term.Pi))) == True {
			return num(0)
		}
		if k, ok := s.piMultiple(x); ok {
			k = numtheory.Mod(k, 240)
			if k >= 120 {
				return s.Simplify(neg(s.sinPiOver120(k - 120)))
			}
			return s.sinPiOver120(k)
		}
		if s.IsNegative(x) == True {
			return neg(term.Sin.Of(s.Simplify(neg(x))))
		}
		if v := s.Simplify(div(x, term.ConstI)); s.IsReal(v) == True {
			return s.Simplify(mul(term.Sinh.Of(v), term.ConstI))
		}
	}
	return term.Sin.Of(x)
}

func (s *Session) simpleCos(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	if x.IsInt(0) {
		return num(1)
	}
	if s.IsComplex(x) == True {
		if k, ok := s.piMultiple(x); ok {
			return s.Simplify(term.Sin.Of(div(mul(num(k+60), term.Pi), num(120))))
		}
		if s.IsNegative(x) == True {
			return term.Cos.Of(s.Simplify(neg(x)))
		}
		if v := s.Simplify(div(x, term.ConstI)); s.IsReal(v) == True {
			return s.Simplify(term.Cosh.Of(v))
		}
	}
	return term.Cos.Of(x)
}
