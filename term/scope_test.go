package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/njchilds90/gogrim/term"
)

func plus(p, q *Term) *Term  { return Add.Of(p, q) }
func minus(p, q *Term) *Term { return Sub.Of(p, q) }
func times(p, q *Term) *Term { return Mul.Of(p, q) }

func assertFree(t *testing.T, expr *Term, want ...*Term) {
	t.Helper()
	assert.ElementsMatch(t, names(want), names(expr.FreeVariables()), "free variables of %s", expr)
}

// ============================================================
// Free variables
// ============================================================

func TestFreeVariables(t *testing.T) {
	assertFree(t, plus(plus(x, y), Int(1)), x, y)
	assertFree(t, plus(Pi, Int(1)))
	assertFree(t, plus(x, Where.Of(y, Def.Of(y, Int(3)))), x)
	assertFree(t, plus(x, Where.Of(y, Def.Of(y, y))), x, y)
	assertFree(t, plus(x, Where.Of(y, Def.Of(y, Int(3)), Def.Of(z, y))), x)
	assertFree(t, Sum.Of(f.Of(n), For.Of(n, a, b)), f, a, b)
	assertFree(t, Sum.Of(f.Of(n), ForElement.Of(n, S)), f, S)
	assertFree(t, Where.Of(plus(t_, times(y, u)), Def.Of(Tuple.Of(t_, u), v)), y, v)
	assertFree(t, Where.Of(f.Of(b), Def.Of(f.Of(z), plus(z, a))), a, b)
	assertFree(t, Where.Of(f.Of(b), Def.Of(f.Of(z, x), minus(plus(z, x), a))), a, b)
	assertFree(t, Where.Of(f.Of(b), Def.Of(f.Of(z, x), plus(minus(plus(z, x), a), f))), a, b, f)
	assertFree(t, Where.Of(
		Sum.Of(times(a_.Of(i), b), For.Of(i, Int(1), n)),
		Def.Of(Tuple.Of(a_.Of(i), For.Of(i, Int(1), n)), T),
	), T, b)
	assertFree(t, Where.Of(minus(times(a, d), times(b, c)), Def.Of(Matrix2x2.Of(a, b, c, d), M)), M)
}

func TestFreeVariables_ExplicitBound(t *testing.T) {
	assertFree(t, plus(x, y).Replace(Rules(), false), x, y)
	got := plus(x, y).FreeVariables(x)
	assert.Equal(t, []string{"y"}, names(got))
}

func TestFreeVariables_Subscript(t *testing.T) {
	assertFree(t, Subscript.Of(a, Int(2)), a)
	assertFree(t, Subscript.Of(a, n), a, n)
}

// ============================================================
// Replace
// ============================================================

func assertReplace(t *testing.T, expr *Term, rules *Map[*Term], semantic bool, want *Term) {
	t.Helper()
	got := expr.Replace(rules, semantic)
	assert.True(t, got.Equal(want), "replace in %s: want %s, got %s", expr, want, got)
}

func TestReplace_Plain(t *testing.T) {
	assertReplace(t, plus(plus(x, y), Int(1)), Rules(x, z), false, plus(plus(z, y), Int(1)))
	assertReplace(t, plus(x, y), Rules(x, y, y, x), false, plus(y, x))
	assertReplace(t, Where.Of(y, Def.Of(y, Int(3))), Rules(y, Int(5)), false, Where.Of(Int(5), Def.Of(Int(5), Int(3))))
}

func TestReplace_PlainReplacesHeads(t *testing.T) {
	assertReplace(t, f.Of(x), Rules(f, g), false, g.Of(x))
}

func TestReplace_UnchangedKeepsIdentity(t *testing.T) {
	expr := plus(x, Int(1))
	assert.Same(t, expr, expr.Replace(Rules(z, Int(2)), false))
}

func TestReplace_Semantic(t *testing.T) {
	five, three, two := Int(5), Int(3), Int(2)
	assertReplace(t, Where.Of(y, Def.Of(y, three)), Rules(y, five), true, Where.Of(y, Def.Of(y, three)))
	assertReplace(t, Where.Of(y, Def.Of(y, y)), Rules(y, five), true, Where.Of(y, Def.Of(y, five)))
	assertReplace(t,
		Where.Of(x, Def.Of(x, y), Def.Of(y, x)), Rules(x, five, y, three), true,
		Where.Of(x, Def.Of(x, three), Def.Of(y, x)))
	assertReplace(t,
		Where.Of(plus(x, z), Def.Of(x, y), Def.Of(y, x)), Rules(x, five, y, three, z, two), true,
		Where.Of(plus(x, two), Def.Of(x, three), Def.Of(y, x)))
	assertReplace(t,
		Where.Of(plus(a, b), Def.Of(Tuple.Of(a, b, c), T.Of(a))), Rules(a, two, T, S, b, Int(8)), true,
		Where.Of(plus(a, b), Def.Of(Tuple.Of(a, b, c), S.Of(two))))
	assertReplace(t,
		Where.Of(Sum.Of(times(a_.Of(i), b), For.Of(i, Int(1), n)), Def.Of(Tuple.Of(a_.Of(i), For.Of(i, Int(1), n)), T)),
		Rules(a_, f, i, Int(7), b, five, n, Int(8), T, S), true,
		Where.Of(Sum.Of(times(a_.Of(i), five), For.Of(i, Int(1), n)), Def.Of(Tuple.Of(a_.Of(i), For.Of(i, Int(1), n)), S)))
}

func TestReplace_SemanticLocalFunctions(t *testing.T) {
	body := Where.Of(f.Of(b), Def.Of(f.Of(z), plus(z, a)))
	assertReplace(t, body, Rules(f, g), true, body)
	assertReplace(t, body, Rules(f, g, z, w), true, body)
	withB := Where.Of(f.Of(b), Def.Of(f.Of(z), plus(z, a)), Def.Of(b, f.Of(a)))
	assertReplace(t, withB, Rules(f, g, z, w), true, withB)
	assertReplace(t, body, Rules(f, g, z, w, a, b, b, a), true, Where.Of(f.Of(a), Def.Of(f.Of(z), plus(z, b))))
}

func TestReplace_SemanticDestructuring(t *testing.T) {
	assertReplace(t,
		Where.Of(plus(minus(times(a, d), times(b, c)), e), Def.Of(Matrix2x2.Of(a, b, c, d), M)),
		Rules(a, Int(2), M, S, e, Int(7)), true,
		Where.Of(plus(minus(times(a, d), times(b, c)), Int(7)), Def.Of(Matrix2x2.Of(a, b, c, d), S)))
}

func TestReplace_SemanticBinders(t *testing.T) {
	one, ten := Int(1), Int(10)
	assertReplace(t, Sum.Of(f.Of(n), For.Of(n, a, b)), Rules(a, one, b, ten), true, Sum.Of(f.Of(n), For.Of(n, one, ten)))
	assertReplace(t, Sum.Of(f.Of(n), For.Of(n, a, b)), Rules(a, one, b, ten, f, g), true, Sum.Of(g.Of(n), For.Of(n, one, ten)))
	assertReplace(t, Sum.Of(f.Of(n), For.Of(n, a, b)), Rules(a, one, b, ten, f, g, n, m), true, Sum.Of(g.Of(n), For.Of(n, one, ten)))
	assertReplace(t,
		Sum.Of(f.Of(n), For.Of(n, a, b), Q.Of(n, a)), Rules(a, one, b, ten, f, g, n, m, Q, R), true,
		Sum.Of(g.Of(n), For.Of(n, one, ten), R.Of(n, one)))
	assertReplace(t, Set.Of(plus(x, y), ForElement.Of(x, S)), Rules(x, y), true, Set.Of(plus(x, y), ForElement.Of(x, S)))
	assertReplace(t, Set.Of(plus(x, y), ForElement.Of(x, S), P.Of(x)), Rules(x, y), true, Set.Of(plus(x, y), ForElement.Of(x, S), P.Of(x)))
	assertReplace(t,
		Set.Of(plus(x, y), ForElement.Of(x, S), P.Of(x)), Rules(x, y, S, x, P, Q, y, Int(5)), true,
		Set.Of(plus(x, Int(5)), ForElement.Of(x, x), Q.Of(x)))
}

// ============================================================
// Traversal
// ============================================================

func TestHeadArgsFlattened(t *testing.T) {
	expr := And.Of(And.Of(a, b), c)
	assert.Equal(t, []string{"a", "b", "c"}, names(expr.HeadArgsFlattened(And)))
	assert.Equal(t, []string{"And(And(a, b), c)"}, names(expr.HeadArgsFlattened(Or)))
}

func TestSubexpressionsAndContains(t *testing.T) {
	expr := Add.Of(x, Mul.Of(Int(2), y))
	assert.Equal(t, []string{"Add(x, Mul(2, y))", "Add", "x", "Mul(2, y)", "Mul", "2", "y"}, names(expr.Subexpressions()))
	assert.True(t, expr.Contains(y))
	assert.True(t, expr.Contains(Mul))
	assert.False(t, expr.Contains(z))
}
