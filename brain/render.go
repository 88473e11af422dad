package brain

import (
	"math"
	"math/big"

	"go.uber.org/zap"

	"github.com/njchilds90/gogrim/algebraic"
	"github.com/njchilds90/gogrim/internal/numtheory"
	"github.com/njchilds90/gogrim/term"
)

// renderDepth bounds the recursion of AlgebraicToTerm through shifts,
// deflations and real/imaginary splits.
const renderDepth = 8

// AlgebraicToTerm writes an algebraic number as a closed-form term, or
// reports false when no radical form is found within the budget.
func (s *Session) AlgebraicToTerm(x *algebraic.Number) (*term.Term, bool) {
	return s.render(x, renderDepth)
}

func (s *Session) render(x *algebraic.Number, depth int) (*term.Term, bool) {
	if x.IsRational() {
		return ratTerm(x.Rat()), true
	}
	if depth == 0 {
		return nil, false
	}
	if x.Degree() == 2 {
		return quadraticTerm(x), true
	}
	b := s.budget
	fail := func(err error) (*term.Term, bool) {
		s.log.Debug("no closed form", zap.Stringer("number", x), zap.Error(err))
		return nil, false
	}

	pol := x.Minpoly()
	d := pol.Degree()

	if n := pol.IsCyclotomic(); n > 0 && algebraic.Cyclotomic(n).Equal(pol) {
		for k := int64(1); k <= int64(n); k++ {
			v, err := b.RootOfUnity(k, int64(n))
			if err != nil {
				return fail(err)
			}
			if same, err := b.Equal(v, x); err == nil && same {
				return expTwoPiI(k, int64(n)), true
			}
		}
	}

	if t, ok := s.renderScaledRoot(x, pol, depth); ok {
		return t, true
	}

	// depression: remove the x^(d-1) term
	if lead, sub1 := pol[d], pol[d-1]; sub1.Sign() != 0 {
		shift := new(big.Rat).SetFrac(new(big.Int).Neg(sub1), new(big.Int).Mul(big.NewInt(int64(d)), lead))
		y, err := b.Sub(x, algebraic.NewRat(shift))
		if err != nil {
			return fail(err)
		}
		if t, ok := s.render(y, depth-1); ok {
			return add(t, ratTerm(shift)), true
		}
	}

	if _, n := pol.Deflation(); n > 1 {
		if t, ok := s.renderDeflated(x, int64(n), depth); ok {
			return t, true
		}
	}

	switch d {
	case 3:
		if t, ok := s.renderCubic(x, depth); ok {
			return t, true
		}
	case 4:
		if t, ok := s.renderQuartic(x, depth); ok {
			return t, true
		}
	}

	if !x.IsReal() {
		re, err := b.Re(x)
		if err != nil {
			return fail(err)
		}
		im, err := b.Im(x)
		if err != nil {
			return fail(err)
		}
		rt, ok := s.render(re, depth-1)
		if !ok {
			return nil, false
		}
		it, ok := s.render(im, depth-1)
		if !ok {
			return nil, false
		}
		switch {
		case it.IsInt(0):
			return rt, true
		case rt.IsInt(0):
			return mul(it, term.ConstI), true
		}
		return add(rt, mul(it, term.ConstI)), true
	}
	return nil, false
}

// quadraticTerm writes a + b sqrt(c).
func quadraticTerm(x *algebraic.Number) *term.Term {
	a, b, c, _ := x.AsQuadratic()
	if b.Sign() == 0 {
		return ratTerm(a)
	}
	A := ratTerm(a)
	var B *term.Term
	switch {
	case c.Sign() > 0:
		B = sqrt(term.BigInt(c))
	case c.IsInt64() && c.Int64() == -1:
		B = term.ConstI
	default:
		B = mul(sqrt(term.BigInt(new(big.Int).Neg(c))), term.ConstI)
	}
	aZero := a.Sign() == 0
	switch {
	case b.Cmp(big.NewRat(1, 1)) == 0:
		if aZero {
			return B
		}
		return add(A, B)
	case b.Cmp(big.NewRat(-1, 1)) == 0:
		if aZero {
			return neg(B)
		}
		return sub(A, B)
	case b.Sign() > 0:
		if aZero {
			return mul(ratTerm(b), B)
		}
		return add(A, mul(ratTerm(b), B))
	}
	mb := ratTerm(new(big.Rat).Neg(b))
	if aZero {
		return neg(mul(mb, B))
	}
	return sub(A, mul(mb, B))
}

// renderScaledRoot recognises v times a root of unity for rational v.
func (s *Session) renderScaledRoot(x *algebraic.Number, pol algebraic.ZPoly, depth int) (*term.Term, bool) {
	d := pol.Degree()
	if pol[d-1].Sign() == 0 {
		return nil, false
	}
	q, ok := intRoot(pol[d], d)
	if !ok {
		return nil, false
	}
	qd1 := new(big.Int).Exp(q, big.NewInt(int64(d-1)), nil)
	p, m := new(big.Int).QuoRem(pol[d-1], qd1, new(big.Int))
	if m.Sign() != 0 {
		return nil, false
	}
	v := new(big.Rat).SetFrac(p, q)
	u, err := s.budget.Div(x, algebraic.NewRat(v))
	if err != nil || u.IsRational() || u.Minpoly().IsCyclotomic() == 0 {
		return nil, false
	}
	t, ok := s.render(u, depth-1)
	if !ok {
		return nil, false
	}
	return mul(ratTerm(v), t), true
}

// intRoot returns the exact positive n-th root of a > 0.
func intRoot(a *big.Int, n int) (*big.Int, bool) {
	if a.Sign() <= 0 {
		return nil, false
	}
	if n == 1 {
		return new(big.Int).Set(a), true
	}
	f, _ := new(big.Float).SetInt(a).Float64()
	guess := int64(0)
	if f > 0 {
		guess = int64(math.Pow(f, 1/float64(n)) + 0.5)
	}
	for c := guess - 2; c <= guess+2; c++ {
		if c <= 0 {
			continue
		}
		r := big.NewInt(c)
		if new(big.Int).Exp(r, big.NewInt(int64(n)), nil).Cmp(a) == 0 {
			return r, true
		}
	}
	return nil, false
}

// renderDeflated handles minimal polynomials in x^n: x is a root of unity
// times the principal n-th root of x^n.
func (s *Session) renderDeflated(x *algebraic.Number, n int64, depth int) (*term.Term, bool) {
	b := s.budget
	y, negated := x, false
	if x.IsReal() && x.Sign() < 0 {
		y, negated = x.Neg(), true
	}
	v, err := b.PowInt(y, n)
	if err != nil {
		return nil, false
	}
	vroot, err := b.Root(v, n)
	if err != nil {
		return nil, false
	}
	A, ok := s.render(v, depth-1)
	if !ok {
		return nil, false
	}
	if n == 2 {
		A = sqrt(A)
	} else {
		A = pow(A, frac(1, n))
	}
	for k := int64(0); k < n; k++ {
		w, err := b.RootOfUnity(k, n)
		if err != nil {
			return nil, false
		}
		c, err := b.Mul(w, vroot)
		if err != nil {
			return nil, false
		}
		if same, err := b.Equal(c, y); err != nil || !same {
			continue
		}
		kk, nn := k, n
		if negated {
			t := new(big.Rat).Add(big.NewRat(k, n), big.NewRat(1, 2))
			kk, nn = t.Num().Int64(), t.Denom().Int64()
		}
		B := expTwoPiI(kk, nn)
		switch {
		case B.IsInt(1):
			return A, true
		case B.IsInt(-1):
			return neg(A), true
		case B.Equal(term.ConstI):
			return mul(A, term.ConstI), true
		case B.Equal(neg(term.ConstI)):
			return neg(mul(A, term.ConstI)), true
		}
		return mul(B, A), true
	}
	return nil, false
}

// renderCubic applies Cardano's formula and keeps the candidate that
// evaluates to x.
func (s *Session) renderCubic(x *algebraic.Number, depth int) (*term.Term, bool) {
	b := s.budget
	pol := x.Minpoly()
	d, c, bb, a := pol[0], pol[1], pol[2], pol[3]
	mulI := func(xs ...*big.Int) *big.Int {
		out := big.NewInt(1)
		for _, v := range xs {
			out.Mul(out, v)
		}
		return out
	}
	// D0 = b^2 - 3ac, D1 = 2b^3 - 9abc + 27a^2 d
	d0 := new(big.Int).Sub(mulI(bb, bb), mulI(big.NewInt(3), a, c))
	d1 := mulI(big.NewInt(2), bb, bb, bb)
	d1.Sub(d1, mulI(big.NewInt(9), a, bb, c))
	d1.Add(d1, mulI(big.NewInt(27), a, a, d))
	disc := new(big.Int).Sub(mulI(d1, d1), mulI(big.NewInt(4), d0, d0, d0))

	root, err := b.Sqrt(algebraic.NewInt(disc))
	if err != nil {
		return nil, false
	}
	half := algebraic.NewRat(big.NewRat(1, 2))
	c3, err := b.Add(algebraic.NewInt(d1), root)
	if err == nil {
		c3, err = b.Mul(c3, half)
	}
	if err == nil && c3.IsZero() {
		c3, err = b.Sub(algebraic.NewInt(d1), root)
		if err == nil {
			c3, err = b.Mul(c3, half)
		}
	}
	if err != nil {
		return nil, false
	}
	ct, ok := s.render(c3, depth-1)
	if !ok {
		return nil, false
	}
	C := pow(ct, frac(1, 3))
	w1, w2 := expTwoPiI(1, 3), expTwoPiI(2, 3)
	B, D0 := term.BigInt(bb), term.BigInt(d0)
	den := term.BigInt(mulI(big.NewInt(-3), a))
	candidates := []*term.Term{
		div(add(B, C, div(D0, C)), den),
		div(add(B, mul(w1, C), div(mul(w2, D0), C)), den),
		div(add(B, mul(w2, C), div(mul(w1, D0), C)), den),
	}
	return s.firstMatching(x, candidates)
}

func (s *Session) firstMatching(x *algebraic.Number, candidates []*term.Term) (*term.Term, bool) {
	for _, t := range candidates {
		v, err := s.EvaluateAlgebraic(t)
		if err != nil {
			continue
		}
		if same, err := s.budget.Equal(v, x); err == nil && same {
			return t, true
		}
	}
	return nil, false
}

// renderQuartic solves the depressed quartic through the roots of its
// resolvent cubic.
func (s *Session) renderQuartic(x *algebraic.Number, depth int) (*term.Term, bool) {
	b := s.budget
	pol := x.Minpoly().Q()
	shift := new(big.Rat).Quo(pol.Coeff(3), new(big.Rat).Mul(big.NewRat(-4, 1), pol.Coeff(4)))
	reduced := pol.Compose(algebraic.NewQPoly(shift, big.NewRat(1, 1))).Monic()
	p, q, r := reduced.Coeff(2), reduced.Coeff(1), reduced.Coeff(0)
	if q.Sign() == 0 {
		return nil, false
	}
	// resolvent z^3 + 2p z^2 + (p^2 - 4r) z - q^2
	c1 := new(big.Rat).Mul(p, p)
	c1.Sub(c1, new(big.Rat).Mul(big.NewRat(4, 1), r))
	resolvent := algebraic.NewQPoly(
		new(big.Rat).Neg(new(big.Rat).Mul(q, q)), c1,
		new(big.Rat).Mul(big.NewRat(2, 1), p), big.NewRat(1, 1))
	roots, err := b.PolynomialRoots(resolvent)
	if err != nil {
		return nil, false
	}
	var parts []*term.Term
	for _, rt := range roots {
		for i := 0; i < rt.Multiplicity; i++ {
			v, err := b.Sqrt(rt.Value)
			if err != nil {
				return nil, false
			}
			var t *term.Term
			var ok bool
			if v.Degree() <= 2 {
				t, ok = s.render(v, depth-1)
			} else {
				t, ok = s.render(rt.Value, depth-1)
				t = sqrt(t)
			}
			if !ok {
				return nil, false
			}
			parts = append(parts, t)
		}
	}
	if len(parts) != 3 {
		return nil, false
	}
	sh := ratTerm(shift)
	var candidates []*term.Term
	for signs := 0; signs < 8; signs++ {
		var acc *term.Term
		for i, t := range parts {
			minus := signs&(4>>i) != 0
			switch {
			case acc == nil && minus:
				acc = neg(t)
			case acc == nil:
				acc = t
			case minus:
				acc = sub(acc, t)
			default:
				acc = add(acc, t)
			}
		}
		candidates = append(candidates, add(div(acc, num(2)), sh))
	}
	return s.firstMatching(x, candidates)
}

// ============================================================
// Roots of unity
// ============================================================

// expTwoPiI writes exp(2 pi i k/n) with radicals when it has a small
// standard form and as Exp(p pi i/q) otherwise.
func expTwoPiI(k, n int64) *term.Term {
	k = numtheory.Mod(k, n)
	halfSqrt2 := div(sqrt(num(2)), num(2))
	sqrt3i := mul(sqrt(num(3)), term.ConstI)
	switch {
	case k == 0:
		return num(1)
	case n == 2*k:
		return num(-1)
	case n == 4*k:
		return term.ConstI
	case 3*n == 4*k:
		return neg(term.ConstI)
	case n == 8*k:
		return mul(halfSqrt2, add(num(1), term.ConstI))
	case 3*n == 8*k:
		return mul(halfSqrt2, add(num(-1), term.ConstI))
	case 5*n == 8*k:
		return mul(halfSqrt2, sub(num(-1), term.ConstI))
	case 7*n == 8*k:
		return mul(halfSqrt2, sub(num(1), term.ConstI))
	case n == 3*k:
		return div(add(num(-1), sqrt3i), num(2))
	case 2*n == 3*k:
		return div(sub(num(-1), sqrt3i), num(2))
	case n == 6*k:
		return div(add(num(1), sqrt3i), num(2))
	case 5*n == 6*k:
		return div(sub(num(1), sqrt3i), num(2))
	}
	u := big.NewRat(2*k, n)
	p, q := term.BigInt(u.Num()), term.BigInt(u.Denom())
	if u.Num().IsInt64() && u.Num().Int64() == 1 {
		return term.Exp.Of(div(mul(term.Pi, term.ConstI), q))
	}
	return term.Exp.Of(div(mul(p, term.Pi, term.ConstI), q))
}
