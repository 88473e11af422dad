package kb

import (
	"strings"

	"github.com/njchilds90/gogrim/term"
)

type source struct {
	id, variables, formula, assumptions string
}

var builtinSources = []source{
	// Constants.
	{id: "a98234", formula: "Equal(RiemannZeta(2), Div(Pow(Pi, 2), 6))"},
	{id: "72ccda", formula: "Equal(RiemannZeta(4), Div(Pow(Pi, 4), 90))"},
	{id: "3e6b9a", formula: "Equal(Sum(Div(1, Pow(n, 2)), For(n, 1, Infinity)), Div(Pow(Pi, 2), 6))"},
	{id: "ee2d4e", formula: "Equal(GoldenRatio, Div(Add(1, Sqrt(5)), 2))"},
	{id: "be6bbb", formula: "Equal(Gamma(Div(1, 2)), Sqrt(Pi))"},
	{id: "e0a6a2", formula: "Equal(Exp(1), ConstE)"},
	{id: "1dd4f9", formula: "Equal(DedekindEta(ConstI), Div(Gamma(Div(1, 4)), Mul(2, Pow(Pi, Div(3, 4)))))"},
	{id: "bff4bd", formula: "Element(Pi, SetMinus(RR, AlgebraicNumbers))"},
	{id: "68ed3b", formula: "Element(ConstE, SetMinus(RR, AlgebraicNumbers))"},
	{id: "a0a3d9", formula: "Greater(Pi, 3)"},
	{id: "e8a28a", formula: "Less(Pi, 4)"},

	// Identities.
	{id: "dc2d7e", variables: "z", formula: "Equal(Add(Pow(Sin(z), 2), Pow(Cos(z), 2)), 1)", assumptions: "Element(z, CC)"},
	{id: "6d2cdc", variables: "z", formula: "Equal(Sub(Pow(Cosh(z), 2), Pow(Sinh(z), 2)), 1)", assumptions: "Element(z, CC)"},
	{id: "e1f0b6", variables: "z", formula: "Equal(Sub(1, Pow(Sin(z), 2)), Pow(Cos(z), 2))", assumptions: "Element(z, CC)"},
	{id: "a10d2f", variables: "z", formula: "Equal(Div(Sin(z), Cos(z)), Tan(z))", assumptions: "And(Element(z, CC), NotEqual(Cos(z), 0))"},
	{id: "9ef1a4", variables: "z", formula: "Equal(Add(Erf(z), Erfc(z)), 1)", assumptions: "Element(z, CC)"},
	{id: "55b7f2", variables: "z", formula: "Equal(Exp(Log(z)), z)", assumptions: "And(Element(z, CC), NotEqual(z, 0))"},
	{id: "2a4b43", variables: "x", formula: "Equal(Log(Exp(x)), x)", assumptions: "Element(x, RR)"},
	{id: "b71b2a", variables: "z", formula: "Equal(Mul(Gamma(z), Gamma(Sub(1, z))), Div(Pi, Sin(Mul(Pi, z))))", assumptions: "Element(z, SetMinus(CC, ZZ))"},
	{id: "c1a24e", variables: "x", formula: "Greater(Exp(x), 0)", assumptions: "Element(x, RR)"},
}

// Builtin returns a small corpus of classical identities and constant
// values.
func Builtin() Corpus {
	out := make(Corpus, 0, len(builtinSources))
	for _, src := range builtinSources {
		out = append(out, src.entry())
	}
	return out
}

func (src source) entry() Entry {
	e := Entry{ID: src.id, Formula: term.MustParse(src.formula)}
	for _, v := range strings.Fields(src.variables) {
		e.Variables = append(e.Variables, term.Sym(v))
	}
	if src.assumptions != "" {
		e.Assumptions = term.MustParse(src.assumptions)
	}
	return e
}
