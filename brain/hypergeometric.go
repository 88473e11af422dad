package brain

import (
	"math/big"

	"github.com/njchilds90/gogrim/term"
)

const (
	// maxTerminating bounds the length of a terminating series expanded
	// into a sum.
	maxTerminating = 30
	// maxHalfInteger bounds |2b| for the closed forms of 0F1(b, z).
	maxHalfInteger = 7
)

// pfq is the parameter list of a generalized hypergeometric function.
type pfq struct {
	as, bs      []*term.Term
	z           *term.Term
	regularized bool
}

func (s *Session) simpleHypergeometric0F1(args []*term.Term) *term.Term {
	if len(args) != 2 {
		return nil
	}
	return s.hypergeometric(pfq{bs: args[:1], z: args[1]})
}

func (s *Session) simpleHypergeometric0F1Regularized(args []*term.Term) *term.Term {
	if len(args) != 2 {
		return nil
	}
	return s.hypergeometric(pfq{bs: args[:1], z: args[1], regularized: true})
}

func (s *Session) simpleHypergeometric1F1(args []*term.Term) *term.Term {
	if len(args) != 3 {
		return nil
	}
	return s.hypergeometric(pfq{as: args[:1], bs: args[1:2], z: args[2]})
}

func (s *Session) simpleHypergeometric1F1Regularized(args []*term.Term) *term.Term {
	if len(args) != 3 {
		return nil
	}
	return s.hypergeometric(pfq{as: args[:1], bs: args[1:2], z: args[2], regularized: true})
}

func (s *Session) simpleHypergeometric2F1(args []*term.Term) *term.Term {
	if len(args) != 4 {
		return nil
	}
	return s.hypergeometric(pfq{as: args[:2], bs: args[2:3], z: args[3]})
}

func (s *Session) simpleHypergeometric2F1Regularized(args []*term.Term) *term.Term {
	if len(args) != 4 {
		return nil
	}
	return s.hypergeometric(pfq{as: args[:2], bs: args[2:3], z: args[3], regularized: true})
}

func (s *Session) simpleHypergeometricPFQ(args []*term.Term) *term.Term {
	return s.generalPFQ(args, false)
}

func (s *Session) simpleHypergeometricPFQRegularized(args []*term.Term) *term.Term {
	return s.generalPFQ(args, true)
}

func (s *Session) generalPFQ(args []*term.Term, regularized bool) *term.Term {
	if len(args) != 3 || !oneOf(args[0], term.List, term.Tuple) || !oneOf(args[1], term.List, term.Tuple) {
		return nil
	}
	return s.hypergeometric(pfq{as: args[0].Args(), bs: args[1].Args(), z: args[2], regularized: regularized})
}

// hypergeometric evaluates pFq in two stages. The first stage defines the
// value at z = 0, expands terminating series and cancels equal numerator
// and denominator parameters; the second looks for closed forms.
func (s *Session) hypergeometric(f pfq) *term.Term {
	f.as = s.simplifyAll(f.as)
	f.bs = s.simplifyAll(f.bs)
	f.z = s.Simplify(f.z)
	var prefactor []*term.Term

	if s.all(f.as, s.IsComplex) && s.all(f.bs, s.IsComplex) && s.IsComplex(f.z) == True {
		if s.IsZero(f.z) == True {
			return s.hypergeometricAtZero(f)
		}
		if v, ok := s.terminatingSeries(f); ok {
			return v
		}
		var removed []*term.Term
		f, removed = s.cancelParameters(f)
		if f.regularized {
			for _, b := range removed {
				prefactor = append(prefactor, div(num(1), term.Gamma.Of(b)))
			}
		}
		if v := s.hypergeometricClosedForm(f); v != nil {
			if len(prefactor) > 0 {
				return s.Simplify(mul(append(prefactor, v)...))
			}
			return v
		}
	}

	res := hypergeometricTerm(f)
	if len(prefactor) > 0 {
		return mul(append(prefactor, res)...)
	}
	return res
}

func (s *Session) hypergeometricAtZero(f pfq) *term.Term {
	if !f.regularized {
		return num(1)
	}
	factors := make([]*term.Term, 0, len(f.bs))
	for _, b := range f.bs {
		if b.IsInteger() && b.Sign() <= 0 {
			return num(0)
		}
		factors = append(factors, div(num(1), term.Gamma.Of(b)))
	}
	return s.Simplify(productOf(factors))
}

// terminatingSeries sums the series when a numerator parameter is a
// non-positive integer -n and no denominator parameter can hit a pole
// before the series stops.
func (s *Session) terminatingSeries(f pfq) (*term.Term, bool) {
	var stop *big.Int
	for _, a := range f.as {
		if a.IsInteger() && a.Sign() <= 0 {
			if v := a.IntValue(); stop == nil || v.Cmp(stop) > 0 {
				stop = v
			}
		}
	}
	if stop == nil {
		return nil, false
	}
	if !stop.IsInt64() || stop.Int64() < -maxTerminating {
		return nil, false
	}
	n := stop.Int64()
	if !f.regularized {
		window := term.Range.Of(num(n+1), num(0))
		undecided := func(xs []*term.Term) bool {
			for _, x := range xs {
				if !s.Simplify(term.Element.Of(x, window)).Equal(term.False) {
					return true
				}
			}
			return false
		}
		if undecided(f.bs) && undecided(f.as) {
			return nil, false
		}
	}
	terms := make([]*term.Term, 0, -n+1)
	for k := int64(0); k <= -n; k++ {
		kt := num(k)
		var factors []*term.Term
		for _, a := range f.as {
			factors = append(factors, term.RisingFactorial.Of(a, kt))
		}
		factors = append(factors, pow(f.z, kt), div(num(1), term.Factorial.Of(kt)))
		for _, b := range f.bs {
			switch {
			case !f.regularized:
				factors = append(factors, div(num(1), term.RisingFactorial.Of(b, kt)))
			case b.IsInteger() && new(big.Int).Add(b.IntValue(), big.NewInt(k)).Sign() <= 0:
				factors = append(factors, num(0))
			default:
				factors = append(factors, div(num(1), term.Gamma.Of(add(b, kt))))
			}
		}
		terms = append(terms, s.Simplify(mul(factors...)))
	}
	return s.Simplify(add(terms...)), true
}

// cancelParameters drops pairs of equal numerator and denominator
// parameters where the denominator is not a pole, and returns the
// dropped denominators.
func (s *Session) cancelParameters(f pfq) (pfq, []*term.Term) {
	as := append([]*term.Term(nil), f.as...)
	var bs, removed []*term.Term
	for _, b := range f.bs {
		dropped := false
		if s.Simplify(term.Element.Of(b, term.ZZLessEqual.Of(num(0)))).Equal(term.False) {
			for j, a := range as {
				if s.Equal(a, b) == True {
					as = append(as[:j], as[j+1:]...)
					dropped = true
					break
				}
			}
		}
		if dropped {
			removed = append(removed, b)
		} else {
			bs = append(bs, b)
		}
	}
	f.as, f.bs = as, bs
	return f, removed
}

// hypergeometricTerm rebuilds the function term under its most specific
// name.
func hypergeometricTerm(f pfq) *term.Term {
	p, q := len(f.as), len(f.bs)
	if q == 0 {
		f.regularized = false
	}
	if p == 0 && q == 0 {
		return term.Exp.Of(f.z)
	}
	params := append(append(append([]*term.Term(nil), f.as...), f.bs...), f.z)
	type shape struct{ p, q int }
	plain := map[shape]*term.Term{
		{0, 1}: term.Hypergeometric0F1,
		{1, 1}: term.Hypergeometric1F1,
		{1, 2}: term.Hypergeometric1F2,
		{2, 0}: term.Hypergeometric2F0,
		{2, 1}: term.Hypergeometric2F1,
		{2, 2}: term.Hypergeometric2F2,
		{3, 2}: term.Hypergeometric3F2,
	}
	regularized := map[shape]*term.Term{
		{0, 1}: term.Hypergeometric0F1Regularized,
		{1, 1}: term.Hypergeometric1F1Regularized,
		{1, 2}: term.Hypergeometric1F2Regularized,
		{2, 1}: term.Hypergeometric2F1Regularized,
		{2, 2}: term.Hypergeometric2F2Regularized,
		{3, 2}: term.Hypergeometric3F2Regularized,
	}
	table, general := plain, term.HypergeometricPFQ
	if f.regularized {
		table, general = regularized, term.HypergeometricPFQRegularized
	}
	if h, ok := table[shape{p, q}]; ok {
		return h.Of(params...)
	}
	return general.Of(term.List.Of(f.as...), term.List.Of(f.bs...), f.z)
}

// hypergeometricClosedForm returns nil when no closed form applies.
func (s *Session) hypergeometricClosedForm(f pfq) *term.Term {
	p, q := len(f.as), len(f.bs)
	switch {
	case p == 0 && q == 0:
		return s.Simplify(term.Exp.Of(f.z))
	case p == 1 && q == 0:
		return s.Simplify(pow(sub(num(1), f.z), neg(f.as[0])))
	case p == 0 && q == 1:
		return s.hypergeometric0F1(f.bs[0], f.z, f.regularized)
	case p == 2 && q == 1 && f.z.IsInt(1):
		return s.gauss2F1(f.as[0], f.as[1], f.bs[0], f.regularized)
	}
	return nil
}

func (s *Session) hypergeometric0F1(b, z *term.Term, regularized bool) *term.Term {
	if n, ok := b.Int64(); ok && n <= 0 {
		if regularized {
			return s.Simplify(mul(pow(z, num(1-n)), term.Hypergeometric0F1Regularized.Of(num(2-n), z)))
		}
		if s.IsNotZero(z) == True {
			return term.UnsignedInfinity
		}
	}
	n, ok := s.Simplify(mul(num(2), b)).Int64()
	if !ok || n%2 == 0 || n > maxHalfInteger || n < -maxHalfInteger {
		return nil
	}
	val := s.halfInteger0F1(big.NewRat(n, 2), z)
	if n >= 3 {
		val = s.Simplify(term.Cases.Of(
			term.Tuple.Of(val, term.NotEqual.Of(z, num(0))),
			term.Tuple.Of(num(1), term.Equal.Of(z, num(0)))))
	}
	if regularized {
		return s.Simplify(div(val, term.Gamma.Of(b)))
	}
	return s.Simplify(val)
}

// halfInteger0F1 expresses 0F1(b, z) for half-integer b through Cosh and
// Sinh, using the contiguous relation
// 0F1(b-1, z) - 0F1(b, z) = z/(b(b-1)) 0F1(b+1, z).
func (s *Session) halfInteger0F1(b *big.Rat, z *term.Term) *term.Term {
	w := mul(num(2), sqrt(z))
	shifted := func(d int64) *big.Rat { return new(big.Rat).Add(b, big.NewRat(d, 1)) }
	switch {
	case b.Cmp(big.NewRat(1, 2)) == 0:
		return s.Simplify(term.Cosh.Of(w))
	case b.Cmp(big.NewRat(-1, 2)) == 0:
		return s.Simplify(sub(term.Cosh.Of(w), mul(w, term.Sinh.Of(w))))
	case b.Cmp(big.NewRat(3, 2)) == 0:
		return s.Simplify(div(term.Sinh.Of(w), w))
	case b.Cmp(big.NewRat(3, 2)) > 0:
		c := new(big.Rat).Mul(shifted(-2), shifted(-1))
		return mul(div(ratTerm(c), z), sub(s.halfInteger0F1(shifted(-2), z), s.halfInteger0F1(shifted(-1), z)))
	}
	c := new(big.Rat).Mul(b, shifted(1))
	return add(s.halfInteger0F1(shifted(1), z), mul(div(z, ratTerm(c)), s.halfInteger0F1(shifted(2), z)))
}

// gauss2F1 applies Gauss's summation 2F1(a, b; c; 1) =
// Gamma(c) Gamma(c-a-b) / (Gamma(c-a) Gamma(c-b)) when Re(c-a-b) > 0.
func (s *Session) gauss2F1(a, b, c *term.Term, regularized bool) *term.Term {
	if s.IsComplex(a) != True || s.IsComplex(b) != True || s.IsComplex(c) != True {
		return nil
	}
	if !s.Simplify(term.NotElement.Of(c, term.ZZLessEqual.Of(num(0)))).Equal(term.True) {
		return nil
	}
	cab := sub(sub(c, a), b)
	if !s.Simplify(term.Greater.Of(term.Re.Of(cab), num(0))).Equal(term.True) {
		return nil
	}
	den := mul(term.Gamma.Of(sub(c, a)), term.Gamma.Of(sub(c, b)))
	if regularized {
		return s.Simplify(div(term.Gamma.Of(cab), den))
	}
	return s.Simplify(div(mul(term.Gamma.Of(c), term.Gamma.Of(cab)), den))
}
