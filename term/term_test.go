package term_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/njchilds90/gogrim/term"
)

var (
	x, y, z = Sym("x"), Sym("y"), Sym("z")
	a, b, c = Sym("a"), Sym("b"), Sym("c")
	d, e    = Sym("d"), Sym("e")
	f, g    = Sym("f"), Sym("g")
	n, m, i = Sym("n"), Sym("m"), Sym("i")
	w, t_   = Sym("w"), Sym("t")
	u, v    = Sym("u"), Sym("v")
	S, T    = Sym("S"), Sym("T")
	M, P    = Sym("M"), Sym("P")
	Q, R    = Sym("Q"), Sym("R")
	a_      = Sym("a_")
)

func names(ts []*Term) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

// ============================================================
// Construction and equality
// ============================================================

func TestTerm_Atoms(t *testing.T) {
	assert.True(t, x.IsSymbol())
	assert.True(t, Int(5).IsInteger())
	assert.True(t, Text("hi").IsText())
	assert.Nil(t, x.Head())
	assert.Nil(t, x.Args())

	app := Add.Of(x, Int(1))
	assert.True(t, app.IsApply())
	assert.Equal(t, "Add", app.Head().Name())
	assert.Len(t, app.Args(), 2)
}

func TestTerm_StructuralEquality(t *testing.T) {
	p := Add.Of(x, Mul.Of(Int(2), y))
	q := Add.Of(Sym("x"), Mul.Of(Int(2), Sym("y")))
	assert.True(t, p.Equal(q))
	assert.Equal(t, p.Hash(), q.Hash())
	assert.False(t, p.Equal(Add.Of(y, Mul.Of(Int(2), x))))
	assert.False(t, Int(3).Equal(Text("3")))
	assert.False(t, Sym("3").Equal(Int(3)))
}

func TestTerm_LargeIntegers(t *testing.T) {
	big1 := MustParse("123456789012345678901234567890")
	big2 := MustParse("123456789012345678901234567890")
	assert.True(t, big1.Equal(big2))
	_, ok := big1.Int64()
	assert.False(t, ok)
	assert.True(t, Int(-7).Equal(MustParse("-7")))
	assert.Equal(t, -1, Int(-7).Sign())
}

func TestTerm_ZeroArgumentApplication(t *testing.T) {
	empty := Set.Of()
	assert.True(t, empty.IsApply())
	assert.Equal(t, 0, empty.NumArgs())
	assert.Equal(t, "Set()", empty.String())
}

func TestTerm_NilHeadPanics(t *testing.T) {
	assert.PanicsWithValue(t, "term: application without head", func() { Apply(nil, x) })
}

func TestTerm_Builtins(t *testing.T) {
	assert.True(t, IsBuiltin("Add"))
	assert.True(t, IsBuiltin("AlgebraicNumbers"))
	assert.True(t, IsBuiltin("Entry"))
	assert.False(t, IsBuiltin("x"))
	assert.Contains(t, Builtins(), "HurwitzZeta")
}

// ============================================================
// Maps and sets
// ============================================================

func TestMap_InsertionOrderAndDelete(t *testing.T) {
	mp := NewMap[int]()
	mp.Put(x, 1)
	mp.Put(Add.Of(x, y), 2)
	mp.Put(y, 3)
	mp.Put(Add.Of(x, y), 4)
	assert.Equal(t, 3, mp.Len())
	got, ok := mp.Get(Add.Of(Sym("x"), Sym("y")))
	require.True(t, ok)
	assert.Equal(t, 4, got)

	mp.Delete(x)
	assert.False(t, mp.Has(x))
	assert.Empty(t, cmp.Diff([]string{"Add(x, y)", "y"}, names(mp.Keys())))

	cl := mp.Clone()
	cl.Delete(y)
	assert.True(t, mp.Has(y))
}

func TestHashSet_Dedup(t *testing.T) {
	s := NewHashSet(x, y, Sym("x"))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Add(y))
	assert.True(t, s.Add(z))
	assert.True(t, s.Contains(Sym("z")))
}

// ============================================================
// Printing and parsing
// ============================================================

func TestString_Canonical(t *testing.T) {
	expr := Where.Of(Add.Of(x, Int(-3)), Def.Of(x, Text(`say "hi"`)))
	assert.Equal(t, `Where(Add(x, -3), Def(x, "say \"hi\""))`, expr.String())
}

func TestParse_RoundTrip(t *testing.T) {
	for _, src := range []string{
		"x",
		"-42",
		`"text with \"quotes\""`,
		"Add(Mul(2, x), Pow(y, Div(1, 2)))",
		"Set()",
		"f(x)(y, z)",
		"Hypergeometric2F1(a, b, c, 1)",
	} {
		t.Run(src, func(t *testing.T) {
			parsed, err := Parse(src)
			require.NoError(t, err)
			assert.Equal(t, src, parsed.String())
		})
	}
}

func TestParse_Whitespace(t *testing.T) {
	got, err := Parse("  Add( x ,\n 1 ) ")
	require.NoError(t, err)
	assert.True(t, got.Equal(Add.Of(x, Int(1))))
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{"", "Add(x", "Add(x,)", "(x)", `"open`, "x y"} {
		_, err := Parse(src)
		assert.ErrorIs(t, err, ErrParse, "input %q", src)
	}
}

// ============================================================
// JSON
// ============================================================

func TestJSON_RoundTrip(t *testing.T) {
	expr := Add.Of(Mul.Of(Int(-2), x), Text("note"), Set.Of())
	s, err := ToJSON(expr)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	back, err := FromJSON(raw)
	require.NoError(t, err)
	assert.True(t, back.Equal(expr), "got %s", back)
}

func TestJSON_AcceptsTextForm(t *testing.T) {
	got, err := FromValue(map[string]interface{}{
		"type": "apply",
		"head": "Sin",
		"args": []interface{}{"Div(Pi, 6)"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sin(Div(Pi, 6))", got.String())
}

func TestJSON_Errors(t *testing.T) {
	_, err := FromJSON(map[string]interface{}{"type": "integer", "value": "1.5"})
	assert.Error(t, err)
	_, err = FromJSON(map[string]interface{}{"name": "x"})
	assert.Error(t, err)
	_, err = FromJSON(map[string]interface{}{"type": "apply"})
	assert.Error(t, err)
}
