package brain

import (
	"math"

	"github.com/njchilds90/gogrim/term"
)

// atomCost is the complexity of the symbols the metric knows about. Any
// other symbol, and every text atom, costs unknownCost.
var atomCost = map[string]int{
	"True": 1, "False": 1,

	"Add": 10, "Sub": 10, "Neg": 10, "Pos": 10, "Mul": 10,

	"Div": 20, "Sqrt": 20, "GoldenRatio": 20, "ConstI": 20,

	"Pi": 100, "ConstE": 100, "Pow": 100, "Exp": 100, "Log": 100,
	"Sin": 100, "Cos": 100, "Tan": 100, "Sinh": 100, "Cosh": 100, "Tanh": 100,

	"Gamma": 1000, "Erf": 1000, "Erfc": 1000, "Erfi": 1000,
	"RiemannZeta": 1000, "ConstGamma": 1000, "ConstCatalan": 1000,
}

const (
	unknownCost = 1000000
	maxCost     = math.MaxInt / 4
)

// Complexity scores t for choosing among equal forms; lower is simpler.
// Integers cost 1 plus their bit length plus one if negative, and an
// application costs its head plus twice its arguments plus one.
func Complexity(t *term.Term) int { return complexity(t, nil) }

// Complexity scores t like the package function, with the session penalty
// map taking precedence for the terms it lists.
func (s *Session) Complexity(t *term.Term) int { return complexity(t, s.penalty) }

func complexity(t *term.Term, penalty *term.Map[int]) int {
	if penalty != nil {
		if c, ok := penalty.Get(t); ok {
			return c
		}
	}
	if t.IsInteger() {
		v := t.IntValue()
		c := 1 + v.BitLen()
		if v.Sign() < 0 {
			c++
		}
		return c
	}
	if t.IsAtom() {
		if t.IsSymbol() {
			if c, ok := atomCost[t.Name()]; ok {
				return c
			}
		}
		return unknownCost
	}
	c := complexity(t.Head(), penalty)
	var sum int
	for _, a := range t.Args() {
		sum = capped(sum + complexity(a, penalty))
	}
	return capped(c + 2*sum + 1)
}

func capped(c int) int {
	if c > maxCost {
		return maxCost
	}
	return c
}
