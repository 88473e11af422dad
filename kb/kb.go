package kb

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/njchilds90/gogrim/brain"
	"github.com/njchilds90/gogrim/term"
)

// Base is a compiled corpus. It is read-only after Build and safe to share
// between sessions.
type Base struct {
	entries map[string]Entry
	order   []string
	facts   []*term.Term
	ground  *term.Map[*term.Term]
	rules   map[string][]brain.Rule
	log     *zap.Logger
}

var _ brain.RuleBase = (*Base)(nil)

// Option configures Build.
type Option func(*Base)

func WithLogger(l *zap.Logger) Option { return func(b *Base) { b.log = l } }

// Build compiles corpus. Constant entries become facts; for a constant
// Equal every side but the cheapest is mapped to the cheapest. Entries
// with variables become rewrite rules indexed by the head of their left
// side: an Equal(lhs, rhs) rewrites lhs to rhs and any other statement
// rewrites itself to True.
func Build(corpus Corpus, opts ...Option) (*Base, error) {
	b := &Base{
		entries: make(map[string]Entry, len(corpus)),
		ground:  term.NewMap[*term.Term](),
		rules:   make(map[string][]brain.Rule),
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(b)
	}
	for _, e := range corpus {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, dup := b.entries[e.ID]; dup {
			return nil, errors.Wrapf(ErrBadEntry, "%s: duplicate id", e.ID)
		}
		b.entries[e.ID] = e
		b.order = append(b.order, e.ID)
		if e.IsConstant() {
			b.addConstant(e)
		} else if err := b.addRule(e); err != nil {
			return nil, err
		}
	}
	b.log.Debug("knowledge base built",
		zap.Int("entries", len(b.order)),
		zap.Int("facts", len(b.facts)),
		zap.Int("ground", b.ground.Len()),
		zap.Int("heads", len(b.rules)))
	return b, nil
}

func (b *Base) addConstant(e Entry) {
	f := e.Formula
	b.facts = append(b.facts, f)
	if !f.HasHead(term.Equal) || f.NumArgs() < 2 {
		return
	}
	best := f.Arg(0)
	for _, side := range f.Args()[1:] {
		if brain.Complexity(side) < brain.Complexity(best) {
			best = side
		}
	}
	for _, side := range f.Args() {
		if side.Equal(best) {
			continue
		}
		if old, ok := b.ground.Get(side); ok && brain.Complexity(old) <= brain.Complexity(best) {
			continue
		}
		b.ground.Put(side, best)
	}
}

func (b *Base) addRule(e Entry) error {
	r := brain.Rule{ID: e.ID, Variables: e.Variables, Assumptions: e.Assumptions}
	if e.Formula.Is(term.Equal, 2) {
		r.LHS, r.RHS = e.Formula.Arg(0), e.Formula.Arg(1)
	} else {
		r.LHS, r.RHS = e.Formula, term.True
	}
	head := r.LHS.Head()
	if head == nil || !head.IsSymbol() {
		return errors.Wrapf(ErrBadEntry, "%s: left side %s has no symbol head", e.ID, r.LHS)
	}
	b.rules[head.Name()] = append(b.rules[head.Name()], r)
	return nil
}

// Ground returns the cheapest known form of the constant t.
func (b *Base) Ground(t *term.Term) (*term.Term, bool) { return b.ground.Get(t) }

// RulesFor returns the rules whose left side has the given head.
func (b *Base) RulesFor(head *term.Term) []brain.Rule {
	if head == nil || !head.IsSymbol() {
		return nil
	}
	return b.rules[head.Name()]
}

// Facts returns the constant statements of the corpus.
func (b *Base) Facts() []*term.Term { return b.facts }

// Entry looks up an entry by id.
func (b *Base) Entry(id string) (Entry, bool) {
	e, ok := b.entries[id]
	return e, ok
}

// Len is the number of entries.
func (b *Base) Len() int { return len(b.order) }

// Corpus returns the entries in the order they were built.
func (b *Base) Corpus() Corpus {
	out := make(Corpus, len(b.order))
	for i, id := range b.order {
		out[i] = b.entries[id]
	}
	return out
}
