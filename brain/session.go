// Package brain holds the inference and simplification engine: a Session
// keeps the hypotheses of one question, answers ternary predicates about
// terms, and rewrites terms into simpler equivalent forms.
package brain

import (
	"go.uber.org/zap"

	"github.com/njchilds90/gogrim/algebraic"
	"github.com/njchilds90/gogrim/interval"
	"github.com/njchilds90/gogrim/term"
)

// ============================================================
// Truth
// ============================================================

// Truth is the answer of a predicate: True, False or Unknown.
type Truth int8

const (
	Unknown Truth = iota
	True
	False
)

func truthOf(b bool) Truth {
	if b {
		return True
	}
	return False
}

func (t Truth) String() string {
	switch t {
	case True:
		return "True"
	case False:
		return "False"
	}
	return "Unknown"
}

// Not swaps True and False and keeps Unknown.
func (t Truth) Not() Truth {
	switch t {
	case True:
		return False
	case False:
		return True
	}
	return Unknown
}

// Term returns term.True, term.False or term.Unknown.
func (t Truth) Term() *term.Term {
	switch t {
	case True:
		return term.True
	case False:
		return term.False
	}
	return term.Unknown
}

// ============================================================
// Session
// ============================================================

type cacheState uint8

const (
	inProgress cacheState = iota + 1
	done
)

type cacheEntry struct {
	state cacheState
	value *term.Term
}

// Session answers questions under a fixed set of hypotheses. It is not
// safe for concurrent use; run one session per goroutine.
type Session struct {
	log        *zap.Logger
	budget     algebraic.Budget
	prec       uint
	rules      RuleBase
	penalty    *term.Map[int]
	variables  []*term.Term
	hypotheses []*term.Term
	facts      *term.HashSet
	cache      *term.Map[cacheEntry]
	bare       *Session
}

// Option configures a Session.
type Option func(*Session)

func WithLogger(l *zap.Logger) Option { return func(s *Session) { s.log = l } }

func WithBudget(b algebraic.Budget) Option { return func(s *Session) { s.budget = b } }

// WithPrecision sets the working precision in bits of numeric enclosures.
func WithPrecision(prec uint) Option { return func(s *Session) { s.prec = prec } }

// WithRuleBase plugs a knowledge base into simplification.
func WithRuleBase(rb RuleBase) Option { return func(s *Session) { s.rules = rb } }

// WithPenalty overrides the complexity of the given terms.
func WithPenalty(p *term.Map[int]) Option { return func(s *Session) { s.penalty = p } }

// New opens a session over variables under assumptions (nil for none).
// The And-flattened assumptions are inferred as facts, followed by the
// facts of the rule base, if any.
func New(variables []*term.Term, assumptions *term.Term, opts ...Option) *Session {
	s := &Session{
		log:     zap.NewNop(),
		budget:  algebraic.DefaultBudget,
		prec:    interval.DefaultPrec,
		penalty: term.NewMap[int](),
		facts:   term.NewHashSet(),
		cache:   term.NewMap[cacheEntry](),
	}
	for _, o := range opts {
		o(s)
	}
	s.variables = append([]*term.Term(nil), variables...)
	if assumptions != nil {
		s.hypotheses = assumptions.HeadArgsFlattened(term.And)
	}
	for _, h := range s.hypotheses {
		s.Infer(h)
	}
	if s.rules != nil {
		for _, f := range s.rules.Facts() {
			s.Infer(f)
		}
	}
	s.log.Debug("session opened",
		zap.Int("variables", len(s.variables)),
		zap.Int("hypotheses", len(s.hypotheses)),
		zap.Int("facts", s.facts.Len()))
	return s
}

func (s *Session) Variables() []*term.Term { return append([]*term.Term(nil), s.variables...) }

func (s *Session) Hypotheses() []*term.Term { return append([]*term.Term(nil), s.hypotheses...) }

// Facts lists the known facts in the order they were inferred.
func (s *Session) Facts() []*term.Term { return s.facts.Items() }

func (s *Session) Budget() algebraic.Budget { return s.budget }

// derive opens a session with the same configuration under other
// assumptions.
func (s *Session) derive(variables []*term.Term, assumptions *term.Term) *Session {
	return New(variables, assumptions,
		WithLogger(s.log), WithBudget(s.budget), WithPrecision(s.prec),
		WithRuleBase(s.rules), WithPenalty(s.penalty))
}

// plain is the hypothesis-free session without rule base that decides
// facts about constants while hypotheses are expanded.
func (s *Session) plain() *Session {
	if s.bare == nil {
		s.bare = New(nil, nil, WithLogger(s.log), WithBudget(s.budget), WithPrecision(s.prec))
	}
	return s.bare
}

func (s *Session) ctx() interval.Context { return interval.NewContext(s.prec) }

func (s *Session) realEnclosure(t *term.Term) (interval.Ball, bool) {
	return s.ctx().RealEnclosure(t)
}

func (s *Session) complexEnclosure(t *term.Term) (interval.Complex, bool) {
	return s.ctx().ComplexEnclosure(t)
}

// ============================================================
// Inference
// ============================================================

// Infer records fact and the facts it implies about domains.
func (s *Session) Infer(fact *term.Term) {
	s.facts.Add(fact)
	if fact.Is(term.Element, 2) {
		s.inferDomain(fact.Arg(0), fact.Arg(1))
	}
}

func (s *Session) addFact(f *term.Term) {
	if s.facts.Add(f) {
		s.log.Debug("fact", zap.Stringer("fact", f))
	}
}

func (s *Session) inferNotDomain(x, dom *term.Term) {
	if dom.HasHead(term.Union) {
		for _, d := range dom.Args() {
			s.inferNotDomain(x, d)
		}
		return
	}
	s.addFact(term.NotElement.Of(x, dom))
	if dom.Is(term.Set, 1) {
		s.addFact(term.NotEqual.Of(x, dom.Arg(0)))
	}
	var excluded []*term.Term
	switch {
	case dom.Equal(term.CC):
		excluded = []*term.Term{term.RR, term.QQ, term.ZZ, term.PP, term.HH, term.Alg}
	case dom.Equal(term.RR):
		excluded = []*term.Term{term.QQ, term.ZZ, term.PP}
	case dom.Equal(term.QQ):
		excluded = []*term.Term{term.ZZ, term.PP}
	case dom.Equal(term.ZZ):
		excluded = []*term.Term{term.PP}
	case dom.Equal(term.Alg):
		excluded = []*term.Term{term.QQ, term.ZZ}
	}
	for _, d := range excluded {
		s.addFact(term.NotElement.Of(x, d))
	}
}

func (s *Session) inferElements(x *term.Term, doms ...*term.Term) {
	for _, d := range doms {
		s.addFact(term.Element.Of(x, d))
	}
}

// inferBoth records rel(x, v) and its mirror image flip(v, x).
func (s *Session) inferBoth(rel, flip, x, v *term.Term) {
	s.addFact(rel.Of(x, v))
	s.addFact(flip.Of(v, x))
}

func (s *Session) inferDomain(x, dom *term.Term) {
	if dom.HasHead(term.Intersection) {
		for _, d := range dom.Args() {
			s.inferDomain(x, d)
		}
		return
	}
	s.addFact(term.Element.Of(x, dom))
	if dom.Is(term.SetMinus, 2) {
		s.inferDomain(x, dom.Arg(0))
		s.inferNotDomain(x, dom.Arg(1))
		return
	}
	if dom.Is(term.Set, 1) {
		s.addFact(term.Equal.Of(x, dom.Arg(0)))
	}
	switch {
	case dom.Equal(term.RR):
		s.inferElements(x, term.CC)
	case dom.Equal(term.QQ):
		s.inferElements(x, term.RR, term.CC, term.Alg)
	case dom.Equal(term.ZZ):
		s.inferElements(x, term.QQ, term.RR, term.CC, term.Alg)
	case dom.Equal(term.HH), dom.Equal(term.Alg):
		s.inferElements(x, term.CC)
	case dom.Equal(term.PP):
		s.inferElements(x,
			term.ZZGreaterEqual.Of(term.Int(2)),
			term.ClosedOpenInterval.Of(term.Int(2), term.Infinity),
			term.ZZ, term.QQ, term.RR, term.CC, term.Alg)
	case dom.HasHead(term.ZZGreaterEqual), dom.HasHead(term.ZZLessEqual), dom.HasHead(term.Range):
		s.inferElements(x, term.ZZ, term.QQ, term.RR, term.CC, term.Alg)
	case dom.NumArgs() == 2 && isInterval(dom):
		s.inferInterval(x, dom)
	}
}

func isInterval(dom *term.Term) bool {
	return dom.HasHead(term.OpenInterval) || dom.HasHead(term.ClosedInterval) ||
		dom.HasHead(term.OpenClosedInterval) || dom.HasHead(term.ClosedOpenInterval)
}

func (s *Session) inferInterval(x, dom *term.Term) {
	a, b := dom.Arg(0), dom.Arg(1)
	openLeft := dom.HasHead(term.OpenInterval) || dom.HasHead(term.OpenClosedInterval)
	openRight := dom.HasHead(term.OpenInterval) || dom.HasHead(term.ClosedOpenInterval)
	p := s.plain()

	if openLeft {
		s.inferBoth(term.Greater, term.Less, x, a)
	} else {
		s.inferBoth(term.GreaterEqual, term.LessEqual, x, a)
	}
	if openRight {
		s.inferBoth(term.Less, term.Greater, x, b)
	} else {
		s.inferBoth(term.LessEqual, term.GreaterEqual, x, b)
	}

	inReals := false
	switch {
	case dom.HasHead(term.OpenInterval):
		inReals = true
	case dom.HasHead(term.ClosedInterval):
		inReals = p.Element(a, term.RR) == True && p.Element(b, term.RR) == True
	case dom.HasHead(term.OpenClosedInterval):
		inReals = p.Element(b, term.RR) == True
	case dom.HasHead(term.ClosedOpenInterval):
		inReals = p.Element(a, term.RR) == True
	}
	if inReals {
		s.inferElements(x, term.RR, term.CC)
	}

	for _, n := range []int64{-1, 0, 1} {
		v := term.Int(n)
		if p.Simplify(term.GreaterEqual.Of(a, v)).Equal(term.True) {
			if openLeft {
				s.inferBoth(term.Greater, term.Less, x, v)
			} else {
				s.inferBoth(term.GreaterEqual, term.LessEqual, x, v)
			}
		}
		if p.Simplify(term.LessEqual.Of(b, v)).Equal(term.True) {
			if openRight {
				s.inferBoth(term.Less, term.Greater, x, v)
			} else {
				s.inferBoth(term.LessEqual, term.GreaterEqual, x, v)
			}
		}
	}
}
