package brain

import (
	"go.uber.org/zap"

	"github.com/njchilds90/gogrim/term"
)

// DefaultMaxCandidates bounds the assignments SomeValues tries.
const DefaultMaxCandidates = 100000

// interleave merges lists round-robin until all are exhausted.
func interleave(lists ...[]*term.Term) []*term.Term {
	var out []*term.Term
	for i := 0; ; i++ {
		more := false
		for _, l := range lists {
			if i < len(l) {
				out = append(out, l[i])
				more = true
			}
		}
		if !more {
			return out
		}
	}
}

func ints(ns ...int64) []*term.Term {
	out := make([]*term.Term, len(ns))
	for i, n := range ns {
		out[i] = num(n)
	}
	return out
}

var (
	ci = term.ConstI

	someNonNumbers = []*term.Term{
		term.Undefined, term.True, term.False, term.Infinity, neg(term.Infinity),
		mul(term.Infinity, ci), mul(neg(ci), term.Infinity), term.UnsignedInfinity,
		term.Tuple.Of(), term.Tuple.Of(term.Tuple.Of()), term.Tuple.Of(num(0)), term.Tuple.Of(num(0), num(0)),
		term.Tuple.Of(num(0), num(1)), term.Tuple.Of(num(1), num(2), num(3)),
		term.Set.Of(), term.Set.Of(term.Set.Of()), term.Set.Of(num(0)), term.Set.Of(num(0), num(1)),
		term.Set.Of(num(-1), num(0), num(1)), term.ZZ, term.RR, term.QQ, term.CC,
		term.Matrix2x2.Of(num(1), num(0), num(0), num(1)),
	}

	somePrimes = ints(2, 3, 5, 7, 11, 13, 17, 19, 101, 1009, 10007)

	someIntegers = append(ints(0, 1, -1, 2, -2, 3, -3, 4, -4, 5, -5, 6, -6, 7, 8, 9,
		10, 11, 12, 24, 30, 32, 40, 41, 42, 60, 64, 100, 120, 127, 128, 255, 256, 257, 720,
		1000, 1729, 10000, 100000, 1000000, 1000000000, 1000000000000, 1000000000000000),
		pow(num(10), num(30)))

	someFractions = []*term.Term{
		frac(1, 2), neg(frac(1, 2)), frac(3, 2), neg(frac(3, 2)), frac(5, 2), frac(7, 2),
		frac(1, 3), frac(2, 3), frac(4, 3), frac(1, 4), frac(3, 4), frac(5, 4),
		frac(1, 5), frac(1, 6), frac(1, 24),
	}

	someAlgebraicIrrationals = []*term.Term{
		sqrt2, neg(sqrt2), div(sqrt2, num(2)), neg(div(sqrt2, num(2))),
		term.GoldenRatio, div(num(1), term.GoldenRatio), add(sqrt2, num(1)), sub(sqrt2, num(1)),
	}

	someTranscendentals = []*term.Term{
		term.Pi, mul(num(2), term.Pi), div(term.Pi, num(2)), div(mul(num(3), term.Pi), num(2)),
		neg(term.Pi), neg(div(term.Pi, num(2))), div(mul(num(2), term.Pi), num(3)), neg(div(mul(num(2), term.Pi), num(3))),
		div(term.Pi, num(4)), neg(div(term.Pi, num(4))), div(mul(num(3), term.Pi), num(4)), neg(div(mul(num(3), term.Pi), num(4))),
		div(term.Pi, num(6)), div(mul(num(5), term.Pi), num(6)),
		term.Log.Of(num(2)), term.Log.Of(num(3)), term.ConstE,
	}

	someComplexAlgebraics = []*term.Term{
		ci, neg(ci), mul(num(2), ci), neg(mul(num(2), ci)), div(ci, num(2)), neg(div(ci, num(2))),
		add(num(1), ci), sub(num(1), ci), add(num(-1), ci), sub(num(-1), ci),
		add(num(2), ci), sub(num(2), ci), add(num(-2), ci), sub(num(-2), ci),
		add(num(1), mul(num(2), ci)), sub(num(1), mul(num(2), ci)), add(num(-1), mul(num(2), ci)), sub(num(-1), mul(num(2), ci)),
		add(frac(1, 2), ci), sub(frac(1, 2), ci), add(frac(3, 2), ci),
		div(add(num(1), ci), num(2)), div(sub(num(1), ci), num(2)), div(add(num(-1), ci), num(2)), div(sub(num(-1), ci), num(2)),
		expPiI(1, 3), expPiI(2, 3), expPiI(1, 6), expPiI(5, 6),
		expPiI(1, 4), expPiI(-1, 4), expPiI(3, 4), expPiI(-3, 4),
	}

	someComplexTranscendentals = []*term.Term{
		mul(term.Pi, ci), mul(num(2), term.Pi, ci), neg(mul(term.Pi, ci)),
		add(frac(1, 2), mul(term.Pi, ci)), sub(frac(1, 2), mul(term.Pi, ci)), add(term.Pi, mul(term.ConstE, ci)),
	}

	someUpperHalfPlane = []*term.Term{
		ci, mul(num(2), ci), div(ci, num(2)),
		add(num(1), ci), add(num(1), mul(num(2), ci)), add(num(1), div(ci, num(2))),
		add(num(-1), ci), add(num(-1), mul(num(2), ci)), add(num(-1), div(ci, num(2))),
		add(num(2), ci), add(num(3), ci),
		add(frac(1, 2), ci), add(frac(1, 2), mul(num(2), ci)), add(frac(1, 2), div(ci, num(2))),
		add(frac(1, 3), ci), add(frac(1, 3), mul(num(2), ci)), add(frac(1, 3), div(ci, num(2))),
		add(sqrt2, mul(term.Pi, ci)), add(neg(sqrt2), div(ci, term.Pi)),
	}

	someRationals     = interleave(someIntegers, someFractions)
	someAlgebraics    = interleave(someIntegers, someFractions, someAlgebraicIrrationals, someComplexAlgebraics)
	someReals         = interleave(someIntegers, someFractions, someAlgebraicIrrationals, someTranscendentals)
	someExtendedReals = interleave(someIntegers, someFractions, someAlgebraicIrrationals, someTranscendentals,
		[]*term.Term{term.Infinity, neg(term.Infinity)})
	someComplexes = interleave(someIntegers, someFractions, someAlgebraicIrrationals, someComplexAlgebraics,
		someTranscendentals, someComplexTranscendentals)
	someEverything = interleave(someNonNumbers, someComplexes)
)

// expPiI is exp(p pi i/q).
func expPiI(p, q int64) *term.Term {
	return term.Exp.Of(div(mul(num(p), term.Pi, term.ConstI), num(q)))
}

// samplePool picks the candidate values for v from the first domain
// statement Element(v, S) among assumptions.
func samplePool(v *term.Term, assumptions []*term.Term) []*term.Term {
	for _, a := range assumptions {
		if !a.Is(term.Element, 2) || !a.Arg(0).Equal(v) {
			continue
		}
		switch S := a.Arg(1); {
		case S.Equal(term.PP):
			return somePrimes
		case S.Equal(term.ZZ):
			return someIntegers
		case S.Equal(term.QQ):
			return someRationals
		case S.Equal(term.RR):
			return someReals
		case S.Equal(term.CC):
			return someComplexes
		case S.Equal(term.HH):
			return someUpperHalfPlane
		case S.Equal(term.Alg):
			return someAlgebraics
		case oneOf(S, term.ZZLessEqual, term.ZZGreaterEqual, term.Range):
			return someIntegers
		case isInterval(S):
			return someExtendedReals
		}
	}
	return someEverything
}

// diagonal calls yield for every index tuple into lists of the given
// lengths, in order of increasing index sum, until yield returns false.
func diagonal(lengths []int, yield func([]int) bool) {
	if len(lengths) == 0 {
		return
	}
	total := 0
	for _, n := range lengths {
		if n == 0 {
			return
		}
		total += n - 1
	}
	idx := make([]int, len(lengths))
	var fill func(k, rest int) bool
	fill = func(k, rest int) bool {
		if k == len(lengths)-1 {
			if rest >= lengths[k] {
				return true
			}
			idx[k] = rest
			return yield(idx)
		}
		for j := 0; j <= rest && j < lengths[k]; j++ {
			idx[k] = j
			if !fill(k+1, rest-j) {
				return false
			}
		}
		return true
	}
	for sum := 0; sum <= total; sum++ {
		if !fill(0, sum) {
			return
		}
	}
}

// SomeValues generates up to n assignments of variables for which every
// assumption simplifies to True, trying at most maxCandidates
// assignments. It is meant for producing test parameters; failing to
// find values says nothing about whether values exist.
func (s *Session) SomeValues(variables []*term.Term, assumptions *term.Term, n, maxCandidates int) []*term.Map[*term.Term] {
	conds := assumptions.HeadArgsFlattened(term.And)
	pools := make([][]*term.Term, len(variables))
	lengths := make([]int, len(variables))
	for k, v := range variables {
		var mine []*term.Term
		for _, a := range conds {
			if a.Contains(v) {
				mine = append(mine, a)
			}
		}
		pools[k] = samplePool(v, mine)
		lengths[k] = len(pools[k])
	}

	var out []*term.Map[*term.Term]
	tried := 0
	diagonal(lengths, func(idx []int) bool {
		if tried >= maxCandidates || len(out) >= n {
			return false
		}
		tried++
		at := term.NewMap[*term.Term]()
		for k, v := range variables {
			at.Put(v, pools[k][idx[k]])
		}
		for _, a := range conds {
			if !s.Simplify(a.Replace(at, false)).Equal(term.True) {
				return true
			}
		}
		out = append(out, at)
		return true
	})
	s.log.Debug("sampled values", zap.Int("found", len(out)), zap.Int("tried", tried))
	return out
}
