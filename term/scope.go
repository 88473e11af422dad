package term

import (
	set "github.com/hashicorp/go-set/v3"
)

// ============================================================
// Variable scoping
// ============================================================
//
// Binding forms:
//   Where(body, Def(x, v), ...)      x bound in body and in later defs
//   Def(f(x, y), rhs)                f bound afterwards, x and y inside rhs
//   Def(Tuple(a, b), v)              destructuring, also Matrix2x2
//   Def(Tuple(f(i), For(i, 1, n)), v) binds f and n
//   Head(body, For(i, a, b), ...)    i bound in the non-binder arguments
//   Head(body, ForElement(x, S))     likewise
//
// The bounds of a binder are evaluated in the scope of the binders that
// precede it, never its own.

func isBinder(t *Term) bool {
	return t.HasHead(For) || t.HasHead(ForElement)
}

func hasBindings(head *Term, args []*Term) bool {
	if head.Equal(Where) {
		return true
	}
	for _, a := range args {
		if isBinder(a) {
			return true
		}
	}
	return false
}

// FreeVariables returns the non-builtin symbols of t that are not bound by
// a binding form or listed in bound, in order of first occurrence.
func (t *Term) FreeVariables(bound ...*Term) []*Term {
	b := set.New[string](len(bound))
	for _, v := range bound {
		if v.IsSymbol() {
			b.Insert(v.str)
		}
	}
	found := NewHashSet()
	collectFree(t, b, found)
	return found.Items()
}

func bindName(s *set.Set[string], t *Term) {
	if t != nil && t.IsSymbol() {
		s.Insert(t.str)
	}
}

func collectFree(e *Term, bound *set.Set[string], found *HashSet) {
	if e.IsAtom() {
		if e.IsSymbol() && !IsBuiltin(e.str) && !bound.Contains(e.str) {
			found.Add(e)
		}
		return
	}
	head, args := e.head, e.args
	if head.Equal(Subscript) && len(args) == 2 && args[0].IsSymbol() && args[1].IsInteger() {
		collectFree(args[0], bound, found)
		return
	}
	if !hasBindings(head, args) {
		collectFree(head, bound, found)
		for _, a := range args {
			collectFree(a, bound, found)
		}
		return
	}
	where := head.Equal(Where)
	local := bound.Copy()
	var remaining []*Term
	for i, arg := range args {
		if where && i == 0 {
			remaining = append(remaining, arg)
			continue
		}
		def := where && (arg.HasHead(Equal) || arg.HasHead(Def))
		if !(isBinder(arg) || def) || len(arg.args) == 0 {
			remaining = append(remaining, arg)
			continue
		}
		newVar := arg.args[0]
		if def && newVar.IsApply() && newVar.head.IsSymbol() && !IsBuiltin(newVar.head.str) {
			inner := local.Copy()
			for _, x := range newVar.args {
				bindName(inner, x)
			}
			for _, data := range arg.args[1:] {
				collectFree(data, inner, found)
			}
			bindName(local, newVar.head)
			continue
		}
		for _, data := range arg.args[1:] {
			collectFree(data, local, found)
		}
		switch {
		case newVar.HasHead(Tuple):
			if len(newVar.args) == 2 && newVar.args[1].HasHead(For) {
				fi, loop := newVar.args[0], newVar.args[1]
				if len(loop.args) == 3 && loop.args[1].IsInteger() && loop.args[2].IsSymbol() {
					bindName(local, loop.args[2])
					bindName(local, fi.head)
				}
			} else {
				for _, sub := range newVar.args {
					bindName(local, sub)
				}
			}
		case newVar.HasHead(Matrix2x2):
			for _, sub := range newVar.args {
				bindName(local, sub)
			}
		default:
			bindName(local, newVar)
		}
	}
	for _, arg := range remaining {
		collectFree(arg, local, found)
	}
}

// Rules builds a substitution map from alternating key, value arguments.
func Rules(pairs ...*Term) *Map[*Term] {
	if len(pairs)%2 != 0 {
		panic("term: Rules needs key/value pairs")
	}
	m := NewMap[*Term]()
	for i := 0; i < len(pairs); i += 2 {
		m.Put(pairs[i], pairs[i+1])
	}
	return m
}

func without(rules *Map[*Term], k *Term) *Map[*Term] {
	if k == nil || !rules.Has(k) {
		return rules
	}
	c := rules.Clone()
	c.Delete(k)
	return c
}

// Replace substitutes every subterm found in rules. In plain mode every
// occurrence is replaced, heads included. In semantic mode only free
// occurrences are replaced: variables bound by a binding form shadow the
// rules inside its scope.
func (t *Term) Replace(rules *Map[*Term], semantic bool) *Term {
	if v, ok := rules.Get(t); ok {
		return v
	}
	if t.IsAtom() || rules.Len() == 0 {
		return t
	}
	if !semantic || !hasBindings(t.head, t.args) {
		head := t.head.Replace(rules, semantic)
		changed := head != t.head
		args := make([]*Term, len(t.args))
		for i, a := range t.args {
			args[i] = a.Replace(rules, semantic)
			changed = changed || args[i] != a
		}
		if !changed {
			return t
		}
		return applyOwned(head, args)
	}

	where := t.head.Equal(Where)
	out := make([]*Term, len(t.args))
	copy(out, t.args)
	var remaining []int
	for i, arg := range out {
		if where && i == 0 {
			remaining = append(remaining, i)
			continue
		}
		def := where && (arg.HasHead(Equal) || arg.HasHead(Def))
		if !(isBinder(arg) || def) || len(arg.args) == 0 {
			remaining = append(remaining, i)
			continue
		}
		newVar := arg.args[0]
		if def && newVar.IsApply() && newVar.head.IsSymbol() && !IsBuiltin(newVar.head.str) {
			inner := rules
			for _, x := range newVar.args {
				inner = without(inner, x)
			}
			out[i] = arg.head.Of(replaceTail(newVar, arg.args[1:], inner)...)
			rules = without(rules, newVar.head)
			continue
		}
		bindArgs := replaceTail(newVar, arg.args[1:], rules)
		switch {
		case newVar.HasHead(Tuple):
			if len(newVar.args) == 2 && newVar.args[1].HasHead(For) {
				fi, loop := newVar.args[0], newVar.args[1]
				if len(loop.args) == 3 {
					rules = without(rules, loop.args[2])
				}
				rules = without(rules, fi.head)
			} else {
				for _, sub := range newVar.args {
					rules = without(rules, sub)
				}
			}
		case newVar.HasHead(Matrix2x2):
			for _, sub := range newVar.args {
				rules = without(rules, sub)
			}
		default:
			rules = without(rules, newVar)
		}
		out[i] = arg.head.Of(bindArgs...)
	}
	for _, i := range remaining {
		out[i] = out[i].Replace(rules, semantic)
	}
	return applyOwned(t.head, out)
}

func replaceTail(first *Term, rest []*Term, rules *Map[*Term]) []*Term {
	out := make([]*Term, 0, len(rest)+1)
	out = append(out, first)
	for _, a := range rest {
		out = append(out, a.Replace(rules, true))
	}
	return out
}

// ============================================================
// Traversal
// ============================================================

// HeadArgsFlattened returns the arguments of nested applications of head,
// or t itself when its head differs.
func (t *Term) HeadArgsFlattened(head *Term) []*Term {
	if !t.HasHead(head) {
		return []*Term{t}
	}
	var out []*Term
	for _, a := range t.args {
		out = append(out, a.HeadArgsFlattened(head)...)
	}
	return out
}

// Subexpressions lists t and all of its subterms in pre-order, heads
// included.
func (t *Term) Subexpressions() []*Term {
	var out []*Term
	var walk func(*Term)
	walk = func(e *Term) {
		out = append(out, e)
		if e.IsApply() {
			walk(e.head)
			for _, a := range e.args {
				walk(a)
			}
		}
	}
	walk(t)
	return out
}

// Contains reports whether sub occurs anywhere in t.
func (t *Term) Contains(sub *Term) bool {
	if t.Equal(sub) {
		return true
	}
	if t.IsAtom() {
		return false
	}
	if t.head.Contains(sub) {
		return true
	}
	for _, a := range t.args {
		if a.Contains(sub) {
			return true
		}
	}
	return false
}
