package brain

import (
	"github.com/pkg/errors"

	"github.com/njchilds90/gogrim/term"
)

var (
	// ErrUnsupportedShape is returned by the exact evaluators when a term
	// is outside the shapes they can read.
	ErrUnsupportedShape = errors.New("brain: unsupported shape")

	// ErrMatchFailure is returned when a pattern does not match, or its
	// assumptions cannot be proven for the match.
	ErrMatchFailure = errors.New("brain: no match")
)

// Rule is a rewrite lhs -> rhs valid for every assignment of Variables
// satisfying Assumptions. A nil Assumptions means True.
type Rule struct {
	ID          string
	Variables   []*term.Term
	LHS         *term.Term
	RHS         *term.Term
	Assumptions *term.Term
}

// RuleBase supplies knowledge to a session.
type RuleBase interface {
	// Ground returns the preferred form of a constant term, if known.
	Ground(t *term.Term) (*term.Term, bool)
	// RulesFor returns the rules whose left-hand side has the given head.
	RulesFor(head *term.Term) []Rule
	// Facts lists constant statements asserted at session start.
	Facts() []*term.Term
}

// Match binds the free variables of pattern to subterms of t. Every
// occurrence of a variable must bind the same subterm, all other parts
// must agree structurally, and assumptions under the binding must
// simplify to True. The arguments of Add and Mul match in any order.
func (s *Session) Match(t, pattern *term.Term, variables []*term.Term, assumptions *term.Term) (*term.Map[*term.Term], error) {
	free := term.NewHashSet(variables...)
	binding := term.NewMap[*term.Term]()
	var walk func(t, p *term.Term) bool
	var unordered func(ts, ps []*term.Term) bool
	unordered = func(ts, ps []*term.Term) bool {
		if len(ps) == 0 {
			return true
		}
		for i, a := range ts {
			saved := binding.Clone()
			rest := append(append([]*term.Term{}, ts[:i]...), ts[i+1:]...)
			if walk(a, ps[0]) && unordered(rest, ps[1:]) {
				return true
			}
			binding = saved
		}
		return false
	}
	walk = func(t, p *term.Term) bool {
		if free.Contains(p) {
			if old, ok := binding.Get(p); ok {
				return old.Equal(t)
			}
			binding.Put(p, t)
			return true
		}
		if t.Equal(p) {
			return true
		}
		if t.IsAtom() || p.IsAtom() || t.NumArgs() != p.NumArgs() || !t.Head().Equal(p.Head()) {
			return false
		}
		if commutes(p) {
			return unordered(t.Args(), p.Args())
		}
		for i, a := range t.Args() {
			if !walk(a, p.Arg(i)) {
				return false
			}
		}
		return true
	}
	if !walk(t, pattern) {
		return nil, ErrMatchFailure
	}
	if assumptions != nil {
		if !s.Simplify(assumptions.Replace(binding, false)).Equal(term.True) {
			return nil, errors.Wrapf(ErrMatchFailure, "assumptions of %s", pattern)
		}
	}
	return binding, nil
}

// maxUnordered bounds the arity of sums and products matched without
// regard to argument order.
const maxUnordered = 6

func commutes(p *term.Term) bool {
	return (p.HasHead(term.Add) || p.HasHead(term.Mul)) && p.NumArgs() <= maxUnordered
}

// RewriteRule applies r to t. Without recursion only t itself is tried;
// with recursion the rule is applied to the outermost matching subterms.
// ErrMatchFailure is returned when the rule fires nowhere.
func (s *Session) RewriteRule(t *term.Term, r Rule, recursive bool) (*term.Term, error) {
	try := func(u *term.Term) (*term.Term, bool) {
		m, err := s.Match(u, r.LHS, r.Variables, r.Assumptions)
		if err != nil {
			return nil, false
		}
		return r.RHS.Replace(m, false), true
	}
	if !recursive {
		if v, ok := try(t); ok {
			return v, nil
		}
		return nil, errors.Wrapf(ErrMatchFailure, "rule %s", r.ID)
	}
	fired := false
	var walk func(u *term.Term) *term.Term
	walk = func(u *term.Term) *term.Term {
		if v, ok := try(u); ok {
			fired = true
			return v
		}
		if u.IsAtom() {
			return u
		}
		args := make([]*term.Term, u.NumArgs())
		for i, a := range u.Args() {
			args[i] = walk(a)
		}
		return u.WithArgs(args)
	}
	out := walk(t)
	if !fired {
		return nil, errors.Wrapf(ErrMatchFailure, "rule %s", r.ID)
	}
	return out, nil
}
