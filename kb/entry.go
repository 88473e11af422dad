// Package kb holds knowledge-base entries and compiles them into the rule
// base a brain.Session consults while simplifying.
package kb

import (
	"github.com/pkg/errors"

	"github.com/njchilds90/gogrim/term"
)

// ErrBadEntry is returned, wrapped with the entry id, for entries that
// cannot be read or indexed.
var ErrBadEntry = errors.New("kb: bad entry")

// Entry is one proven statement. Formula holds for every assignment of
// Variables satisfying Assumptions; an entry without variables is a
// constant statement.
type Entry struct {
	ID          string
	Variables   []*term.Term
	Formula     *term.Term
	Assumptions *term.Term
}

// Corpus is an ordered list of entries.
type Corpus []Entry

// IsConstant reports whether e has no variables.
func (e Entry) IsConstant() bool { return len(e.Variables) == 0 }

// Validate checks that e has an id and a formula, that its variables are
// distinct symbols, and that no free variable is left undeclared.
func (e Entry) Validate() error {
	if e.ID == "" {
		return errors.Wrap(ErrBadEntry, "missing id")
	}
	if e.Formula == nil {
		return errors.Wrapf(ErrBadEntry, "%s: missing formula", e.ID)
	}
	declared := term.NewHashSet()
	for _, v := range e.Variables {
		if !v.IsSymbol() || term.IsBuiltin(v.Name()) {
			return errors.Wrapf(ErrBadEntry, "%s: variable %s is not a free symbol", e.ID, v)
		}
		if !declared.Add(v) {
			return errors.Wrapf(ErrBadEntry, "%s: variable %s declared twice", e.ID, v)
		}
	}
	parts := []*term.Term{e.Formula}
	if e.Assumptions != nil {
		parts = append(parts, e.Assumptions)
	}
	for _, p := range parts {
		for _, v := range p.FreeVariables() {
			if !declared.Contains(v) {
				return errors.Wrapf(ErrBadEntry, "%s: undeclared variable %s", e.ID, v)
			}
		}
	}
	return nil
}

// Term encodes e as Entry(ID(id), Formula(f), Variables(...), Assumptions(a)),
// leaving out the parts that are empty.
func (e Entry) Term() *term.Term {
	parts := []*term.Term{term.ID.Of(term.Text(e.ID)), term.Formula.Of(e.Formula)}
	if len(e.Variables) > 0 {
		parts = append(parts, term.Variables.Of(e.Variables...))
	}
	if e.Assumptions != nil {
		parts = append(parts, term.Assumptions.Of(e.Assumptions))
	}
	return term.Entry.Of(parts...)
}

// FromTerm reads the encoding produced by Entry.Term.
func FromTerm(t *term.Term) (Entry, error) {
	var e Entry
	if !t.HasHead(term.Entry) {
		return e, errors.Wrapf(ErrBadEntry, "not an entry: %s", t)
	}
	for _, part := range t.Args() {
		switch {
		case part.Is(term.ID, 1) && part.Arg(0).IsText():
			e.ID = part.Arg(0).TextValue()
		case part.Is(term.Formula, 1):
			e.Formula = part.Arg(0)
		case part.HasHead(term.Variables):
			e.Variables = part.Args()
		case part.Is(term.Assumptions, 1):
			e.Assumptions = part.Arg(0)
		default:
			return e, errors.Wrapf(ErrBadEntry, "unexpected part %s", part)
		}
	}
	return e, e.Validate()
}
