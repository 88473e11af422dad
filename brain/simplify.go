package brain

import (
	"go.uber.org/zap"

	"github.com/njchilds90/gogrim/term"
)

// handler rewrites an application given its unsimplified arguments. A nil
// result means no rule applies and the arguments are simplified in place.
type handler func(s *Session, args []*term.Term) *term.Term

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"Not":          (*Session).simpleNot,
		"And":          (*Session).simpleAnd,
		"Or":           (*Session).simpleOr,
		"Implies":      (*Session).simpleImplies,
		"Equal":        (*Session).simpleEqual,
		"NotEqual":     (*Session).simpleNotEqual,
		"Element":      (*Session).simpleElement,
		"NotElement":   (*Session).simpleNotElement,
		"LessEqual":    (*Session).simpleLessEqual,
		"Less":         (*Session).simpleLess,
		"GreaterEqual": (*Session).simpleGreaterEqual,
		"Greater":      (*Session).simpleGreater,
		"Pos":          (*Session).simpleUnwrap,
		"Parentheses":  (*Session).simpleUnwrap,
		"Brackets":     (*Session).simpleUnwrap,
		"Braces":       (*Session).simpleUnwrap,
		"Neg":          (*Session).simpleNeg,

		"Add":  (*Session).simpleAdd,
		"Sub":  (*Session).simpleSub,
		"Mul":  (*Session).simpleMul,
		"Div":  (*Session).simpleDiv,
		"Pow":  (*Session).simplePow,
		"Exp":  (*Session).simpleExp,
		"Sqrt": (*Session).simpleSqrt,
		"Log":  (*Session).simpleLog,
		"Sin":  (*Session).simpleSin,
		"Cos":  (*Session).simpleCos,

		"Abs":   (*Session).simpleAbs,
		"Re":    (*Session).simpleRe,
		"Im":    (*Session).simpleIm,
		"Arg":   (*Session).simpleArg,
		"Floor": (*Session).simpleFloor,
		"Ceil":  (*Session).simpleCeil,

		"Sum":            (*Session).simpleSum,
		"Zeros":          (*Session).simpleZeros,
		"Where":          (*Session).simpleWhere,
		"Cases":          (*Session).simpleCases,
		"Det":            (*Session).simpleDet,
		"Spectrum":       (*Session).simpleSpectrum,
		"SingularValues": (*Session).simpleSingularValues,

		"RiemannZeta":         (*Session).simpleRiemannZeta,
		"HurwitzZeta":         (*Session).simpleHurwitzZeta,
		"DigammaFunction":     (*Session).simpleDigamma,
		"Gamma":               (*Session).simpleGamma,
		"Factorial":           (*Session).simpleFactorial,
		"RisingFactorial":     (*Session).simpleRisingFactorial,
		"BernoulliB":          (*Session).simpleBernoulliB,
		"BernoulliPolynomial": (*Session).simpleBernoulliPolynomial,
		"AiryAi":              (*Session).simpleAiryAi,
		"AiryBi":              (*Session).simpleAiryBi,
		"Erf":                 (*Session).simpleErf,
		"Erfc":                (*Session).simpleErfc,

		"Hypergeometric0F1":            (*Session).simpleHypergeometric0F1,
		"Hypergeometric0F1Regularized": (*Session).simpleHypergeometric0F1Regularized,
		"Hypergeometric1F1":            (*Session).simpleHypergeometric1F1,
		"Hypergeometric1F1Regularized": (*Session).simpleHypergeometric1F1Regularized,
		"Hypergeometric2F1":            (*Session).simpleHypergeometric2F1,
		"Hypergeometric2F1Regularized": (*Session).simpleHypergeometric2F1Regularized,
		"HypergeometricPFQ":            (*Session).simpleHypergeometricPFQ,
		"HypergeometricPFQRegularized": (*Session).simpleHypergeometricPFQRegularized,

		"ModularJ":           (*Session).simpleModularJ,
		"ModularLambda":      (*Session).simpleModularLambda,
		"DedekindEta":        (*Session).simpleDedekindEta,
		"DedekindEtaEpsilon": (*Session).simpleDedekindEtaEpsilon,
		"EllipticK":          (*Session).simpleEllipticK,
		"EllipticE":          (*Session).simpleEllipticE,
		"DirichletCharacter": (*Session).simpleDirichletCharacter,
	}
}

// ============================================================
// Entry point
// ============================================================

// Simplify returns a term equal to t under the session hypotheses,
// hopefully simpler. Known facts simplify to True. Results are memoised;
// a term met again while it is being simplified is returned unchanged.
func (s *Session) Simplify(t *term.Term) *term.Term {
	if s.facts.Contains(t) {
		return term.True
	}
	if t.IsAtom() {
		return t
	}
	if e, ok := s.cache.Get(t); ok {
		if e.state == inProgress {
			s.log.Debug("simplification cycle", zap.Stringer("term", t))
			return t
		}
		return e.value
	}
	s.cache.Put(t, cacheEntry{state: inProgress})
	out := s.dispatch(t)
	s.cache.Put(t, cacheEntry{state: done, value: out})
	return out
}

func (s *Session) dispatch(t *term.Term) *term.Term {
	if s.rules != nil {
		t = s.applyRules(t)
	}
	head := t.Head()
	if head == nil || !head.IsSymbol() {
		return t
	}
	h, ok := handlers[head.Name()]
	if !ok {
		if s.rules != nil {
			return t
		}
		return s.children(t)
	}
	out := h(s, t.Args())
	if out == nil {
		out = s.children(t)
	}
	if s.rules != nil && !out.Equal(t) {
		out = s.applyRules(out)
	}
	return out
}

// children simplifies the arguments of t and keeps its head.
func (s *Session) children(t *term.Term) *term.Term {
	return t.WithArgs(s.simplifyAll(t.Args()))
}

func (s *Session) simplifyAll(args []*term.Term) []*term.Term {
	out := make([]*term.Term, len(args))
	for i, a := range args {
		out[i] = s.Simplify(a)
	}
	return out
}

// applyRules replaces a ground term by its cheapest known form, or
// simplifies the arguments and tries every rewrite rule indexed under the
// head, keeping the cheapest strictly simpler result.
func (s *Session) applyRules(t *term.Term) *term.Term {
	if v, ok := s.rules.Ground(t); ok {
		return v
	}
	if t.IsAtom() {
		return t
	}
	t = s.children(t)
	rules := s.rules.RulesFor(t.Head())
	if len(rules) == 0 {
		return t
	}
	best, cost := t, s.Complexity(t)
	var fired string
	for _, r := range rules {
		cand, err := s.RewriteRule(t, r, false)
		if err != nil {
			continue
		}
		if c := s.Complexity(cand); c < cost {
			best, cost, fired = cand, c, r.ID
		}
	}
	if best == t {
		return t
	}
	s.log.Debug("rule fired", zap.String("rule", fired), zap.Stringer("term", t))
	return s.Simplify(best)
}

// ============================================================
// Logic
// ============================================================

func (s *Session) simpleNot(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	switch {
	case x.Equal(term.True):
		return term.False
	case x.Equal(term.False):
		return term.True
	case x.Is(term.NotEqual, 2):
		return term.Equal.Of(x.Args()...)
	case x.Is(term.Equal, 2):
		return term.NotEqual.Of(x.Args()...)
	case x.Is(term.NotElement, 2):
		return term.Element.Of(x.Args()...)
	case x.Is(term.Element, 2):
		return term.NotElement.Of(x.Args()...)
	}
	return term.Not.Of(x)
}

// connective simplifies And (absorbing False, neutral True) or Or.
func (s *Session) connective(head, absorbing, neutral *term.Term, args []*term.Term) *term.Term {
	var kept []*term.Term
	for _, a := range args {
		v := s.Simplify(a)
		if v.Equal(absorbing) {
			return absorbing
		}
		if !v.Equal(neutral) {
			kept = append(kept, v)
		}
	}
	switch len(kept) {
	case 0:
		return neutral
	case 1:
		return kept[0]
	}
	return head.Of(kept...)
}

func (s *Session) simpleAnd(args []*term.Term) *term.Term {
	return s.connective(term.And, term.False, term.True, args)
}

func (s *Session) simpleOr(args []*term.Term) *term.Term {
	return s.connective(term.Or, term.True, term.False, args)
}

func (s *Session) simpleImplies(args []*term.Term) *term.Term {
	if len(args) != 2 {
		return nil
	}
	p, q := s.Simplify(args[0]), s.Simplify(args[1])
	switch {
	case p.Equal(term.False):
		return term.True
	case p.Equal(term.True):
		return q
	}
	return term.Implies.Of(p, q)
}

// equality returns True when all args are equal, False when some pair
// differs, Unknown otherwise.
func (s *Session) equality(args []*term.Term) Truth {
	all := true
	for _, a := range args[1:] {
		if s.Equal(args[0], a) != True {
			all = false
			break
		}
	}
	if all {
		return True
	}
	for i := range args {
		for j := i + 1; j < len(args); j++ {
			if s.Equal(args[i], args[j]) == False {
				return False
			}
		}
	}
	return Unknown
}

func (s *Session) simpleEqual(args []*term.Term) *term.Term {
	if len(args) < 2 {
		return nil
	}
	args = s.simplifyAll(args)
	switch s.equality(args) {
	case True:
		return term.True
	case False:
		return term.False
	}
	return term.Equal.Of(args...)
}

func (s *Session) simpleNotEqual(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) == 2 {
		switch s.equality(args) {
		case True:
			return term.False
		case False:
			return term.True
		}
	}
	return term.NotEqual.Of(args...)
}

func (s *Session) simpleElement(args []*term.Term) *term.Term {
	if len(args) != 2 {
		return nil
	}
	args = s.simplifyAll(args)
	if v := s.Element(args[0], args[1]); v != Unknown {
		return v.Term()
	}
	return term.Element.Of(args...)
}

func (s *Session) simpleNotElement(args []*term.Term) *term.Term {
	if len(args) != 2 {
		return nil
	}
	args = s.simplifyAll(args)
	if v := s.Element(args[0], args[1]); v != Unknown {
		return v.Not().Term()
	}
	return term.NotElement.Of(args...)
}

// ============================================================
// Order relations
// ============================================================

var negInfinity = term.Neg.Of(term.Infinity)

// order decides a binary order relation. strict selects < over <=, and
// flip swaps the operands first so that > and >= reuse the same table.
func (s *Session) order(head *term.Term, args []*term.Term, strict, flip bool) *term.Term {
	args = s.simplifyAll(args)
	if len(args) != 2 {
		return head.Of(args...)
	}
	a, b := args[0], args[1]
	if flip {
		a, b = b, a
	}
	if a.IsInteger() && b.IsInteger() {
		c := a.IntValue().Cmp(b.IntValue())
		if strict {
			return truthOf(c < 0).Term()
		}
		return truthOf(c <= 0).Term()
	}
	if s.IsReal(a) == True && s.IsReal(b) == True {
		if d, ok := s.realEnclosure(term.Sub.Of(a, b)); ok {
			if strict {
				if d.Negative() {
					return term.True
				}
				if d.NonNegative() {
					return term.False
				}
			} else {
				if d.NonPositive() {
					return term.True
				}
				if d.Positive() {
					return term.False
				}
			}
		}
	}
	if s.IsExtendedReal(a) == True && s.IsExtendedReal(b) == True {
		if v := s.extendedOrder(a, b, strict); v != Unknown {
			return v.Term()
		}
	}
	return head.Of(args...)
}

func (s *Session) extendedOrder(a, b *term.Term, strict bool) Truth {
	aReal, bReal := s.IsReal(a) == True, s.IsReal(b) == True
	if strict {
		switch {
		case s.Equal(a, b) == True:
			return False
		case a.Equal(negInfinity) && (bReal || b.Equal(term.Infinity)):
			return True
		case aReal && b.Equal(term.Infinity):
			return True
		case a.Equal(term.Infinity), b.Equal(negInfinity):
			return False
		}
		return Unknown
	}
	switch {
	case s.Equal(a, b) == True, a.Equal(negInfinity), b.Equal(term.Infinity):
		return True
	case aReal && b.Equal(negInfinity), bReal && a.Equal(term.Infinity):
		return False
	case a.Equal(term.Infinity) && b.Equal(negInfinity):
		return False
	}
	return Unknown
}

func (s *Session) simpleLessEqual(args []*term.Term) *term.Term {
	return s.order(term.LessEqual, args, false, false)
}

func (s *Session) simpleLess(args []*term.Term) *term.Term {
	return s.order(term.Less, args, true, false)
}

func (s *Session) simpleGreaterEqual(args []*term.Term) *term.Term {
	return s.order(term.GreaterEqual, args, false, true)
}

func (s *Session) simpleGreater(args []*term.Term) *term.Term {
	return s.order(term.Greater, args, true, true)
}

// ============================================================
// Grouping and negation
// ============================================================

func (s *Session) simpleUnwrap(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	return s.Simplify(args[0])
}

func (s *Session) simpleNeg(args []*term.Term) *term.Term {
	if len(args) != 1 {
		return nil
	}
	x := s.Simplify(args[0])
	switch {
	case x.Is(term.Neg, 1):
		return x.Arg(0)
	case x.Is(term.Sub, 2):
		return term.Sub.Of(x.Arg(1), x.Arg(0))
	case x.IsInteger():
		return term.BigInt(x.IntValue().Neg(x.IntValue()))
	}
	return term.Neg.Of(x)
}
