package kb_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gogrim/brain"
	"github.com/njchilds90/gogrim/kb"
	. "github.com/njchilds90/gogrim/term"
)

func builtin(t *testing.T) *kb.Base {
	t.Helper()
	base, err := kb.Build(kb.Builtin())
	require.NoError(t, err)
	return base
}

func session(t *testing.T, vars []*Term, assumptions string) *brain.Session {
	var a *Term
	if assumptions != "" {
		a = MustParse(assumptions)
	}
	return brain.New(vars, a, brain.WithRuleBase(builtin(t)))
}

// ============================================================
// Entries
// ============================================================

func TestEntryValidate(t *testing.T) {
	z := Sym("z")
	ok := kb.Entry{ID: "e1", Variables: []*Term{z}, Formula: MustParse("Equal(Exp(Log(z)), z)")}
	require.NoError(t, ok.Validate())

	bad := []kb.Entry{
		{Formula: MustParse("Equal(1, 1)")},
		{ID: "e2"},
		{ID: "e3", Formula: MustParse("Equal(Sin(w), 0)")},
		{ID: "e4", Variables: []*Term{z, z}, Formula: MustParse("Equal(z, z)")},
		{ID: "e5", Variables: []*Term{Pi}, Formula: MustParse("Equal(Pi, Pi)")},
		{ID: "e6", Variables: []*Term{MustParse("f(z)")}, Formula: MustParse("Equal(z, z)")},
	}
	for _, e := range bad {
		assert.True(t, errors.Is(e.Validate(), kb.ErrBadEntry), e.ID)
	}
}

func TestEntryTerm(t *testing.T) {
	for _, e := range kb.Builtin() {
		back, err := kb.FromTerm(e.Term())
		require.NoError(t, err, e.ID)
		assert.True(t, back.Term().Equal(e.Term()), e.ID)
	}

	got := kb.Entry{ID: "c", Formula: MustParse("Greater(Pi, 3)")}.Term()
	assert.Equal(t, `Entry(ID("c"), Formula(Greater(Pi, 3)))`, got.String())

	_, err := kb.FromTerm(MustParse("Formula(1)"))
	assert.True(t, errors.Is(err, kb.ErrBadEntry))
	_, err = kb.FromTerm(MustParse(`Entry(ID("x"), References(1))`))
	assert.True(t, errors.Is(err, kb.ErrBadEntry))
}

// ============================================================
// Build
// ============================================================

func TestBuild(t *testing.T) {
	base := builtin(t)
	assert.Equal(t, len(kb.Builtin()), base.Len())

	e, ok := base.Entry("dc2d7e")
	require.True(t, ok)
	assert.Equal(t, []*Term{Sym("z")}, e.Variables)
	_, ok = base.Entry("missing")
	assert.False(t, ok)

	v, ok := base.Ground(MustParse("RiemannZeta(2)"))
	require.True(t, ok)
	assert.Equal(t, "Div(Pow(Pi, 2), 6)", v.String())
	v, ok = base.Ground(MustParse("Div(Add(1, Sqrt(5)), 2)"))
	require.True(t, ok)
	assert.True(t, v.Equal(GoldenRatio))
	_, ok = base.Ground(GoldenRatio)
	assert.False(t, ok)

	var ids []string
	for _, r := range base.RulesFor(Add) {
		ids = append(ids, r.ID)
	}
	assert.Empty(t, cmp.Diff([]string{"dc2d7e", "9ef1a4"}, ids))
	assert.Empty(t, base.RulesFor(Sym("Nothing")))
	assert.Empty(t, base.RulesFor(nil))

	var facts []string
	for _, f := range base.Facts() {
		facts = append(facts, f.String())
	}
	assert.Contains(t, facts, "Greater(Pi, 3)")

	var order []string
	for _, e := range base.Corpus() {
		order = append(order, e.ID)
	}
	assert.Equal(t, "a98234", order[0])
}

func TestBuildRejects(t *testing.T) {
	dup := kb.Corpus{
		{ID: "a", Formula: MustParse("Greater(Pi, 3)")},
		{ID: "a", Formula: MustParse("Less(Pi, 4)")},
	}
	_, err := kb.Build(dup)
	assert.True(t, errors.Is(err, kb.ErrBadEntry))

	headless := kb.Corpus{{ID: "b", Variables: []*Term{Sym("x")}, Formula: Sym("x")}}
	_, err = kb.Build(headless)
	assert.True(t, errors.Is(err, kb.ErrBadEntry))
}

// ============================================================
// Simplification with the knowledge base
// ============================================================

func TestGroundRewrites(t *testing.T) {
	s := session(t, nil, "")
	assert.True(t, s.Simplify(MustParse("Div(Add(1, Sqrt(5)), 2)")).Equal(GoldenRatio))
	assert.True(t, s.Simplify(MustParse("Exp(1)")).Equal(ConstE))
	assert.Equal(t,
		s.Simplify(MustParse("Div(Pow(Pi, 2), 6)")).String(),
		s.Simplify(MustParse("RiemannZeta(2)")).String())
	assert.Equal(t,
		s.Simplify(MustParse("Div(Pow(Pi, 2), 6)")).String(),
		s.Simplify(MustParse("Sum(Div(1, Pow(n, 2)), For(n, 1, Infinity))")).String())
	assert.Equal(t,
		s.Simplify(MustParse("Div(1, 6)")).String(),
		s.Simplify(MustParse("Div(RiemannZeta(2), Pow(Pi, 2))")).String())
	assert.True(t, s.Simplify(MustParse("Greater(Pi, 3)")).Equal(True))
	assert.True(t, s.Simplify(MustParse("Element(Pi, SetMinus(RR, AlgebraicNumbers))")).Equal(True))
}

func TestIdentityRules(t *testing.T) {
	z := Sym("z")
	s := session(t, []*Term{z}, "Element(z, CC)")
	assert.Equal(t, "1", s.Simplify(MustParse("Add(Pow(Sin(z), 2), Pow(Cos(z), 2))")).String())
	assert.Equal(t, "1", s.Simplify(MustParse("Sub(Pow(Cosh(z), 2), Pow(Sinh(z), 2))")).String())
	assert.Equal(t, "1", s.Simplify(MustParse("Add(Erf(z), Erfc(z))")).String())

	// Exp(Log(z)) needs z != 0.
	assert.Equal(t, "Exp(Log(z))", s.Simplify(MustParse("Exp(Log(z))")).String())
	s = session(t, []*Term{z}, "And(Element(z, CC), NotEqual(z, 0))")
	assert.Equal(t, "z", s.Simplify(MustParse("Exp(Log(z))")).String())

	x := Sym("x")
	s = session(t, []*Term{x}, "Element(x, RR)")
	assert.Equal(t, "True", s.Simplify(MustParse("Greater(Exp(x), 0)")).String())
	assert.Equal(t, "x", s.Simplify(MustParse("Log(Exp(x))")).String())
}

func TestNestedRules(t *testing.T) {
	s := session(t, nil, "")
	got := s.Simplify(MustParse("Add(Erf(Add(Pow(Sin(1), 2), Pow(Cos(1), 2))), Erfc(1))"))
	assert.Equal(t, "1", got.String())
}

func TestWithoutBase(t *testing.T) {
	z := Sym("z")
	s := brain.New([]*Term{z}, MustParse("Element(z, CC)"))
	src := MustParse("Add(Erf(z), Erfc(z))")
	assert.NotEqual(t, "1", s.Simplify(src).String())
}

// ============================================================
// YAML corpus
// ============================================================

const corpusYAML = `
entries:
  - id: f1
    formula: Equal(RiemannZeta(2), Div(Pow(Pi, 2), 6))
  - id: r1
    variables: [z]
    formula: Equal(Add(Erf(z), Erfc(z)), 1)
    assumptions: Element(z, CC)
`

func TestLoadYAML(t *testing.T) {
	corpus, err := kb.LoadYAML(strings.NewReader(corpusYAML))
	require.NoError(t, err)
	require.Len(t, corpus, 2)
	assert.True(t, corpus[0].IsConstant())
	assert.Equal(t, "Element(z, CC)", corpus[1].Assumptions.String())

	base, err := kb.Build(corpus)
	require.NoError(t, err)
	assert.Len(t, base.RulesFor(Add), 1)

	empty, err := kb.LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLoadYAMLRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown field":  "entries:\n  - id: a\n    formula: Equal(1, 1)\n    note: x\n",
		"missing id":     "entries:\n  - formula: Equal(1, 1)\n",
		"bad id":         "entries:\n  - id: a-b\n    formula: Equal(1, 1)\n",
		"bad formula":    "entries:\n  - id: a\n    formula: Equal(1,\n",
		"undeclared var": "entries:\n  - id: a\n    formula: Equal(Sin(w), 0)\n",
		"bad variable":   "entries:\n  - id: a\n    variables: [\"f(\"]\n    formula: Equal(1, 1)\n",
	} {
		_, err := kb.LoadYAML(strings.NewReader(doc))
		assert.True(t, errors.Is(err, kb.ErrBadEntry), name)
	}
}
