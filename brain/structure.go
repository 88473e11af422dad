package brain

import (
	"go.uber.org/zap"

	"github.com/njchilds90/gogrim/algebraic"
	"github.com/njchilds90/gogrim/term"
)

// ============================================================
// Sums and zero sets
// ============================================================

// maxUnrolled bounds the number of terms of a Sum expanded explicitly;
// only sums of fewer terms are unrolled.
const maxUnrolled = 100

// span returns the number of integers in [a, b] if it is below limit.
// An empty range has length zero.
func span(a, b, limit int64) (int64, bool) {
	if b < a {
		return 0, true
	}
	if a < 0 && b >= 0 && b-limit >= a {
		return 0, false
	}
	n := b - a
	if n >= limit-1 {
		return 0, false
	}
	return n + 1, true
}

func (s *Session) simpleSum(args []*term.Term) *term.Term {
	if len(args) != 2 && len(args) != 3 {
		return nil
	}
	body, loop := args[0], args[1]
	cond := term.True
	if len(args) == 3 {
		cond = args[2]
	}
	if !loop.Is(term.For, 3) {
		return nil
	}
	v := loop.Arg(0)
	a, aok := s.Simplify(loop.Arg(1)).Int64()
	b, bok := s.Simplify(loop.Arg(2)).Int64()
	if !aok || !bok {
		return nil
	}
	n, ok := span(a, b, maxUnrolled)
	if !ok {
		return nil
	}
	var terms []*term.Term
	for k := int64(0); k < n; k++ {
		at := term.Rules(v, num(a+k))
		if !cond.Equal(term.True) {
			switch inc := s.Simplify(cond.Replace(at, true)); {
			case inc.Equal(term.False):
				continue
			case !inc.Equal(term.True):
				return term.Sum.Of(args...)
			}
		}
		terms = append(terms, body.Replace(at, true))
	}
	return s.Simplify(add(terms...))
}

// impliesComplex reports whether membership in dom makes v a complex
// number.
func (s *Session) impliesComplex(v, dom *term.Term) bool {
	p := New(nil, term.Element.Of(v, dom),
		WithLogger(s.log), WithBudget(s.budget), WithPrecision(s.prec))
	return p.has(term.Element.Of(v, term.CC))
}

func (s *Session) simpleZeros(args []*term.Term) *term.Term {
	if len(args) != 2 && len(args) != 3 {
		return nil
	}
	expr, loop := args[0], args[1]
	keep := term.Zeros.Of(args...)
	if !loop.Is(term.ForElement, 2) {
		return keep
	}
	v, dom := loop.Arg(0), loop.Arg(1)
	if !s.impliesComplex(v, dom) {
		return keep
	}
	cond := term.Element.Of(v, dom)
	if len(args) == 3 {
		cond = term.And.Of(cond, args[2])
	}
	poly, err := s.evaluatePoly(expr, v)
	if err != nil {
		if poly, err = s.evaluatePoly(s.Simplify(expr), v); err != nil {
			return keep
		}
	}
	if poly.IsZero() {
		return term.Set.Of(append([]*term.Term{v}, args[1:]...)...)
	}
	roots, err := s.budget.PolynomialRoots(poly)
	if err != nil {
		s.log.Debug("polynomial roots", zap.Stringer("term", expr), zap.Error(err))
		return keep
	}
	var out []*term.Term
	for _, r := range roots {
		rt, ok := s.AlgebraicToTerm(r.Value)
		if !ok {
			return keep
		}
		switch c := s.Simplify(cond.Replace(term.Rules(v, rt), true)); {
		case c.Equal(term.True):
			out = append(out, rt)
		case !c.Equal(term.False):
			return keep
		}
	}
	return term.Set.Of(out...)
}

// ============================================================
// Local definitions and piecewise terms
// ============================================================

// callReplacer substitutes calls of a local function by its body.
type callReplacer struct {
	name    *term.Term
	formals []*term.Term
	body    *term.Term
	bad     bool
}

func (c *callReplacer) apply(t *term.Term) *term.Term {
	if t.IsAtom() {
		return t
	}
	if t.Head().Equal(c.name) {
		if t.NumArgs() != len(c.formals) {
			c.bad = true
			return t
		}
		at := term.NewMap[*term.Term]()
		for i, f := range c.formals {
			at.Put(f, c.apply(t.Arg(i)))
		}
		return c.body.Replace(at, true)
	}
	args := make([]*term.Term, t.NumArgs())
	for i, a := range t.Args() {
		args[i] = c.apply(a)
	}
	return c.apply(t.Head()).Of(args...)
}

func (s *Session) simpleWhere(args []*term.Term) *term.Term {
	if len(args) == 0 {
		return nil
	}
	expr := args[0]
	defs := append([]*term.Term(nil), args[1:]...)
	substitute := func(i int, f func(*term.Term) *term.Term) {
		for j := i + 1; j < len(defs); j++ {
			defs[j] = f(defs[j])
		}
		expr = f(expr)
	}
	for i, d := range defs {
		if !d.Is(term.Def, 2) && !d.Is(term.Equal, 2) {
			return term.Where.Of(args...)
		}
		v, value := d.Arg(0), s.Simplify(d.Arg(1))
		switch {
		case v.IsSymbol():
			at := term.Rules(v, value)
			substitute(i, func(t *term.Term) *term.Term { return t.Replace(at, true) })
		case oneOf(v, term.Tuple, term.List, term.Matrix2x2):
			if !oneOf(value, term.Tuple, term.List, term.Matrix2x2) || value.NumArgs() != v.NumArgs() {
				return term.Where.Of(args...)
			}
			at := term.NewMap[*term.Term]()
			for k, x := range v.Args() {
				if !x.IsSymbol() {
					return term.Where.Of(args...)
				}
				at.Put(x, value.Arg(k))
			}
			substitute(i, func(t *term.Term) *term.Term { return t.Replace(at, true) })
		case v.IsApply() && v.Head().IsSymbol() && !term.IsBuiltin(v.Head().Name()):
			c := &callReplacer{name: v.Head(), formals: v.Args(), body: value}
			substitute(i, c.apply)
			if c.bad {
				return term.Where.Of(args...)
			}
		default:
			return term.Where.Of(args...)
		}
	}
	return s.Simplify(expr)
}

func (s *Session) simpleCases(args []*term.Term) *term.Term {
	var open []*term.Term
	for _, a := range args {
		if a.NumArgs() != 2 {
			return nil
		}
		val, cond := a.Arg(0), s.Simplify(a.Arg(1))
		switch {
		case cond.Equal(term.True):
			return s.Simplify(val)
		case cond.Equal(term.False):
			continue
		}
		open = append(open, a.WithArgs([]*term.Term{val, cond}))
	}
	if len(open) == 1 && open[0].Arg(1).Equal(term.Otherwise) {
		return s.Simplify(open[0].Arg(0))
	}
	return term.Cases.Of(open...)
}

// ============================================================
// Matrices
// ============================================================

func (s *Session) simpleDet(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	m, err := s.evaluateMatrix(args[0])
	if err != nil {
		return nil
	}
	d, err := m.Det()
	if err != nil {
		return nil
	}
	return ratTerm(d)
}

// rootSet renders the distinct values of roots as a Set, optionally
// taking square roots first.
func (s *Session) rootSet(roots []algebraic.Root, squareRoot bool) (*term.Term, bool) {
	out := make([]*term.Term, 0, len(roots))
	for _, r := range roots {
		x := r.Value
		if squareRoot {
			var err error
			if x, err = s.budget.Sqrt(x); err != nil {
				return nil, false
			}
		}
		t, ok := s.AlgebraicToTerm(x)
		if !ok {
			return nil, false
		}
		out = append(out, t)
	}
	return term.Set.Of(out...), true
}

func (s *Session) simpleSpectrum(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	m, err := s.evaluateMatrix(args[0])
	if err != nil {
		return nil
	}
	eig, err := s.budget.MatrixEigenvalues(m)
	if err != nil {
		return nil
	}
	if t, ok := s.rootSet(eig, false); ok {
		return t
	}
	return nil
}

func (s *Session) simpleSingularValues(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	m, err := s.evaluateMatrix(args[0])
	if err != nil {
		return nil
	}
	g, err := m.Mul(m.Transpose())
	if err != nil {
		return nil
	}
	eig, err := s.budget.MatrixEigenvalues(g)
	if err != nil {
		return nil
	}
	if t, ok := s.rootSet(eig, true); ok {
		return t
	}
	return nil
}
