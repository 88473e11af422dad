package brain

import (
	"math/big"

	"github.com/njchilds90/gogrim/algebraic"
	"github.com/njchilds90/gogrim/internal/numtheory"
	"github.com/njchilds90/gogrim/term"
)

const (
	maxFactorial      = 100
	maxRisingExpanded = 30
	maxBernoulli      = 1000
	maxZetaShift      = 20
	maxHurwitzInteger = 50
	maxDigammaDenom   = 12
	maxDigammaArg     = 100
)

// ============================================================
// Zeta functions
// ============================================================

func (s *Session) simpleRiemannZeta(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	switch len(args) {
	case 1:
		x := args[0]
		if n, ok := x.Int64(); ok {
			switch {
			case n == 1:
				return term.UnsignedInfinity
			case n <= 0 && n >= -20:
				// zeta(-m) = (-1)^m B_(m+1) / (m+1)
				m := -n
				v := numtheory.Bernoulli(int(m + 1))
				v.Quo(v, big.NewRat(m+1, 1))
				if m%2 == 1 {
					v.Neg(v)
				}
				return ratTerm(v)
			case n == 2:
				return div(pow(term.Pi, num(2)), num(6))
			case n >= 4 && n%2 == 0 && n <= 20:
				// zeta(2k) = (-1)^(k+1) B_2k (2 pi)^2k / (2 (2k)!)
				c := numtheory.Bernoulli(int(n))
				c.Mul(c, new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(n))))
				c.Quo(c, new(big.Rat).SetInt(new(big.Int).Lsh(numtheory.Factorial(n), 1)))
				if (n/2)%2 == 0 {
					c.Neg(c)
				}
				return s.Simplify(mul(ratTerm(c), pow(term.Pi, num(n))))
			}
		}
		switch {
		case x.Equal(term.Infinity):
			return num(1)
		case x.Is(term.RiemannZetaZero, 1):
			if s.IsInteger(x.Arg(0)) == True && s.IsNotZero(x.Arg(0)) == True {
				return num(0)
			}
		}
	case 2:
		x, r := args[0], args[1]
		if r.IsInteger() && r.Sign() >= 0 {
			switch {
			case r.IsInt(0):
				return s.Simplify(term.RiemannZeta.Of(x))
			case r.IsInt(1) && x.IsInt(0):
				return neg(div(term.Log.Of(mul(num(2), term.Pi)), num(2)))
			case x.IsInt(1):
				return term.UnsignedInfinity
			case x.Equal(term.Infinity):
				return num(0)
			}
		}
	}
	return term.RiemannZeta.Of(args...)
}

// hurwitzBase lists Hurwitz zeta values at rational shifts with a closed
// form. A nil exponent matches any s.
type hurwitzBase struct {
	s     *term.Term
	a     *big.Rat
	value func(s *term.Term) *term.Term
}

var hurwitzBases = []hurwitzBase{
	{nil, big.NewRat(1, 2), func(x *term.Term) *term.Term {
		return mul(sub(pow(num(2), x), num(1)), term.RiemannZeta.Of(x))
	}},
	{num(2), big.NewRat(1, 4), func(*term.Term) *term.Term {
		return add(pow(term.Pi, num(2)), mul(num(8), term.ConstCatalan))
	}},
	{num(2), big.NewRat(3, 4), func(*term.Term) *term.Term {
		return sub(pow(term.Pi, num(2)), mul(num(8), term.ConstCatalan))
	}},
	{num(3), big.NewRat(1, 4), func(*term.Term) *term.Term {
		return add(mul(num(28), term.RiemannZeta.Of(num(3))), pow(term.Pi, num(3)))
	}},
	{num(3), big.NewRat(3, 4), func(*term.Term) *term.Term {
		return sub(mul(num(28), term.RiemannZeta.Of(num(3))), pow(term.Pi, num(3)))
	}},
	{num(3), big.NewRat(1, 6), func(*term.Term) *term.Term {
		return add(mul(num(91), term.RiemannZeta.Of(num(3))), mul(num(2), sqrt(num(3)), pow(term.Pi, num(3))))
	}},
	{num(3), big.NewRat(5, 6), func(*term.Term) *term.Term {
		return sub(mul(num(91), term.RiemannZeta.Of(num(3))), mul(num(2), sqrt(num(3)), pow(term.Pi, num(3))))
	}},
}

func (s *Session) simpleHurwitzZeta(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) != 2 {
		return term.HurwitzZeta.Of(args...)
	}
	x, a := args[0], args[1]
	if s.IsComplex(x) != True || s.IsComplex(a) != True {
		return term.HurwitzZeta.Of(args...)
	}
	switch {
	case x.IsInt(1):
		return term.UnsignedInfinity
	case x.IsInt(0):
		return s.Simplify(sub(half, a))
	case s.Element(x, term.ZZLessEqual.Of(num(0))) == True:
		n1 := add(neg(x), num(1))
		return s.Simplify(neg(div(term.BernoulliPolynomial.Of(n1, a), n1)))
	case s.Element(x, term.ZZGreaterEqual.Of(num(2))) == True && s.Element(a, term.ZZLessEqual.Of(num(0))) == True:
		return term.UnsignedInfinity
	}
	if n, ok := a.Int64(); ok {
		switch {
		case n == 1:
			return s.Simplify(term.RiemannZeta.Of(x))
		case n >= 2 && n <= maxHurwitzInteger:
			terms := make([]*term.Term, 0, n-1)
			for k := int64(1); k < n; k++ {
				terms = append(terms, div(num(1), pow(num(k), x)))
			}
			return s.Simplify(sub(term.RiemannZeta.Of(x), add(terms...)))
		}
	}
	if s.IsRational(a) != True {
		return term.HurwitzZeta.Of(args...)
	}
	for _, hb := range hurwitzBases {
		if hb.s != nil && !hb.s.Equal(x) {
			continue
		}
		n, ok := s.Simplify(sub(a, ratTerm(hb.a))).Int64()
		if !ok || n > maxZetaShift || n < -maxZetaShift {
			continue
		}
		base := hb.value(x)
		// zeta(s, a + n) = zeta(s, a) - sum_{0<=k<n} (a + k)^-s
		var terms []*term.Term
		lo, hi := int64(0), n
		if n < 0 {
			lo, hi = n, 0
		}
		for k := lo; k < hi; k++ {
			shift := new(big.Rat).Add(hb.a, big.NewRat(k, 1))
			terms = append(terms, div(num(1), pow(ratTerm(shift), x)))
		}
		if n >= 0 {
			return s.Simplify(sub(base, add(terms...)))
		}
		return s.Simplify(add(base, add(terms...)))
	}
	return term.HurwitzZeta.Of(args...)
}

// ============================================================
// Gamma and related functions
// ============================================================

func (s *Session) simpleGamma(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) != 1 {
		return term.Gamma.Of(args...)
	}
	z := args[0]
	if n, ok := z.Int64(); ok {
		switch {
		case n <= 0:
			return term.UnsignedInfinity
		case n <= maxFactorial:
			return term.BigInt(numtheory.Factorial(n - 1))
		}
	}
	if z.IsInteger() && z.Sign() <= 0 {
		return term.UnsignedInfinity
	}
	if z.Equal(term.Infinity) {
		return term.Infinity
	}
	if s.IsRational(z) == True {
		if x, err := s.evaluateRational(z); err == nil && !x.IsInt() && x.Denom().IsInt64() {
			if q := x.Denom().Int64(); 60%q == 0 || 24%q == 0 {
				return s.gammaRat(x)
			}
		}
	}
	return term.Gamma.Of(z)
}

func (s *Session) simpleFactorial(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) == 1 && args[0].IsInteger() {
		if args[0].Sign() < 0 {
			return term.UnsignedInfinity
		}
		if n, ok := args[0].Int64(); ok && n <= maxFactorial {
			return term.BigInt(numtheory.Factorial(n))
		}
	}
	return term.Factorial.Of(args...)
}

func (s *Session) simpleRisingFactorial(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) != 2 {
		return term.RisingFactorial.Of(args...)
	}
	a := args[0]
	n, ok := args[1].Int64()
	if !ok || n < 0 {
		return term.RisingFactorial.Of(args...)
	}
	if n <= maxFactorial && a.IsInteger() {
		v := big.NewInt(1)
		for k := int64(0); k < n; k++ {
			v.Mul(v, new(big.Int).Add(a.IntValue(), big.NewInt(k)))
		}
		return term.BigInt(v)
	}
	if n <= maxRisingExpanded && s.IsComplex(a) == True {
		factors := make([]*term.Term, n)
		for k := range factors {
			factors[k] = add(a, num(int64(k)))
		}
		return s.Simplify(productOf(factors))
	}
	return term.RisingFactorial.Of(args...)
}

// digammaRat evaluates psi(x) for rational x with a small denominator by
// Gauss's digamma theorem and the recurrence psi(x + 1) = psi(x) + 1/x.
func (s *Session) digammaRat(x *big.Rat) (*term.Term, bool) {
	if x.IsInt() || !x.Denom().IsInt64() || x.Denom().Int64() > maxDigammaDenom {
		return nil, false
	}
	if new(big.Rat).Abs(x).Cmp(big.NewRat(maxDigammaArg, 1)) > 0 {
		return nil, false
	}
	q := x.Denom().Int64()
	n := new(big.Int).Div(x.Num(), x.Denom()).Int64()
	p := numtheory.Mod(x.Num().Int64(), q)
	terms := []*term.Term{
		neg(term.ConstGamma),
		neg(term.Log.Of(num(2 * q))),
		neg(mul(div(term.Pi, num(2)), term.Cot.Of(div(mul(term.Pi, num(p)), num(q))))),
	}
	for k := int64(1); k <= (q-1)/2; k++ {
		terms = append(terms, mul(num(2),
			term.Cos.Of(div(mul(num(2), term.Pi, num(k*p)), num(q))),
			term.Log.Of(term.Sin.Of(div(mul(term.Pi, num(k)), num(q))))))
	}
	base := big.NewRat(p, q)
	shift := new(big.Rat)
	switch {
	case n > 0:
		for k := int64(0); k < n; k++ {
			shift.Add(shift, new(big.Rat).Inv(new(big.Rat).Add(base, big.NewRat(k, 1))))
		}
	case n < 0:
		for k := int64(1); k <= -n; k++ {
			shift.Sub(shift, new(big.Rat).Inv(new(big.Rat).Sub(base, big.NewRat(k, 1))))
		}
	}
	if shift.Sign() != 0 {
		terms = append(terms, ratTerm(shift))
	}
	return s.Simplify(add(terms...)), true
}

func (s *Session) simpleDigamma(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) == 2 && args[1].IsInt(0) {
		args = args[:1]
	}
	switch len(args) {
	case 1:
		z := args[0]
		if z.Equal(term.Infinity) {
			return term.Infinity
		}
		if z.IsInteger() {
			if z.Sign() <= 0 {
				return term.UnsignedInfinity
			}
			if n, ok := z.Int64(); ok && n <= maxFactorial {
				if n == 1 {
					return neg(term.ConstGamma)
				}
				return sub(ratTerm(numtheory.Harmonic(n-1)), term.ConstGamma)
			}
		}
		if x, err := s.evaluateRational(z); err == nil {
			if v, ok := s.digammaRat(x); ok {
				return v
			}
		}
	case 2:
		z, r := args[0], args[1]
		if r.IsInteger() && r.Sign() > 0 {
			if z.Equal(term.Infinity) {
				return num(0)
			}
			if s.IsComplex(z) == True {
				switch s.Element(z, term.ZZLessEqual.Of(num(0))) {
				case True:
					return term.UnsignedInfinity
				case False:
					// psi^(r)(z) = (-1)^(r+1) r! zeta(r+1, z)
					r1 := add(r, num(1))
					return s.Simplify(mul(pow(num(-1), r1), term.Factorial.Of(r), term.HurwitzZeta.Of(r1, z)))
				}
			}
		}
	}
	return term.DigammaFunction.Of(args...)
}

// ============================================================
// Bernoulli numbers and polynomials
// ============================================================

func (s *Session) simpleBernoulliB(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) == 1 && args[0].IsInteger() && args[0].Sign() >= 0 {
		n := args[0]
		if n.IntValue().Bit(0) == 1 && !n.IsInt(1) {
			return num(0)
		}
		if k, ok := n.Int64(); ok && k <= maxBernoulli {
			return ratTerm(numtheory.Bernoulli(int(k)))
		}
	}
	return term.BernoulliB.Of(args...)
}

func (s *Session) simpleBernoulliPolynomial(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) != 2 {
		return term.BernoulliPolynomial.Of(args...)
	}
	n, ok := args[0].Int64()
	if !ok || n < 0 || n > maxFactorial {
		return term.BernoulliPolynomial.Of(args...)
	}
	x := args[1]
	coeffs := numtheory.BernoulliPolynomial(int(n))
	if q, err := s.evaluateRational(x); err == nil {
		return ratTerm(algebraic.NewQPoly(coeffs...).Eval(q))
	}
	var terms []*term.Term
	for k := len(coeffs) - 1; k >= 0; k-- {
		c := coeffs[k]
		if c.Sign() == 0 {
			continue
		}
		var mono *term.Term
		switch k {
		case 0:
			terms = append(terms, ratTerm(c))
			continue
		case 1:
			mono = x
		default:
			mono = pow(x, num(int64(k)))
		}
		if c.Cmp(big.NewRat(1, 1)) == 0 {
			terms = append(terms, mono)
		} else {
			terms = append(terms, mul(ratTerm(c), mono))
		}
	}
	return s.Simplify(add(terms...))
}

// ============================================================
// Airy functions
// ============================================================

// airyKind holds the special values of Ai or Bi.
type airyKind struct {
	head, zero     *term.Term
	atZero, deriv0 *term.Term
	atInf          *term.Term
}

var (
	third      = frac(1, 3)
	gammaThird = term.Gamma.Of(third)

	airyAi = airyKind{
		head:   term.AiryAi,
		zero:   term.AiryAiZero,
		atZero: div(gammaThird, mul(num(2), pow(num(3), frac(1, 6)), term.Pi)),
		deriv0: neg(div(num(1), mul(pow(num(3), third), gammaThird))),
		atInf:  num(0),
	}
	airyBi = airyKind{
		head:   term.AiryBi,
		zero:   term.AiryBiZero,
		atZero: div(mul(pow(num(3), third), gammaThird), mul(num(2), term.Pi)),
		deriv0: div(pow(num(3), frac(1, 6)), gammaThird),
		atInf:  term.Infinity,
	}
)

func (s *Session) airy(k airyKind, args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) == 2 && args[1].IsInt(0) {
		args = args[:1]
	}
	positiveIndex := func(n *term.Term) bool {
		return s.Simplify(term.Element.Of(n, term.ZZGreaterEqual.Of(num(1)))).Equal(term.True)
	}
	switch len(args) {
	case 1:
		x := args[0]
		switch {
		case x.IsInt(0):
			return k.atZero
		case x.Equal(term.Infinity):
			return k.atInf
		case x.Equal(negInfinity):
			return num(0)
		case x.Is(k.zero, 1) && positiveIndex(x.Arg(0)):
			return num(0)
		}
	case 2:
		x, r := args[0], args[1]
		if n, ok := r.Int64(); ok && n >= 0 {
			if x.IsInt(0) {
				if n%3 == 2 {
					return num(0)
				}
				if n == 1 {
					return k.deriv0
				}
			}
			if s.IsComplex(x) == True {
				// f'' = x f
				f, f1 := k.head.Of(x), k.head.Of(x, num(1))
				switch n {
				case 2:
					return s.Simplify(mul(x, f))
				case 3:
					return s.Simplify(add(f, mul(x, f1)))
				case 4:
					return s.Simplify(add(mul(pow(x, num(2)), f), mul(num(2), f1)))
				}
			}
		}
		if x.Is(k.zero, 2) && positiveIndex(x.Arg(0)) && s.Equal(r, x.Arg(1)) == True &&
			s.Simplify(term.Element.Of(r, term.ZZGreaterEqual.Of(num(0)))).Equal(term.True) {
			return num(0)
		}
	}
	return k.head.Of(args...)
}

func (s *Session) simpleAiryAi(args []*term.Term) *term.Term { return s.airy(airyAi, args) }

func (s *Session) simpleAiryBi(args []*term.Term) *term.Term { return s.airy(airyBi, args) }

// ============================================================
// Error functions
// ============================================================

func (s *Session) simpleErf(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) != 1 {
		return term.Erf.Of(args...)
	}
	x := args[0]
	switch {
	case x.IsInt(0):
		return num(0)
	case x.Equal(term.Infinity):
		return num(1)
	case x.Equal(negInfinity):
		return num(-1)
	case s.IsNegative(x) == True:
		return neg(term.Erf.Of(s.Simplify(neg(x))))
	}
	return term.Erf.Of(x)
}

func (s *Session) simpleErfc(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) != 1 {
		return term.Erfc.Of(args...)
	}
	x := args[0]
	switch {
	case x.IsInt(0):
		return num(1)
	case x.Equal(term.Infinity):
		return num(0)
	case x.Equal(negInfinity):
		return num(2)
	}
	return term.Erfc.Of(x)
}
