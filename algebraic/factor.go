package algebraic

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/njchilds90/gogrim/interval"
)

// ============================================================
// Integer polynomials from numeric roots
// ============================================================

type intState int

const (
	intNone intState = iota
	intUnique
	intAmbiguous
)

// integerIn classifies the Gaussian integers inside z: none, exactly one
// real integer, or too many to tell.
func integerIn(z interval.Complex) (*big.Int, intState) {
	if !z.Im.ContainsZero() || !z.Re.ContainsInteger() {
		return nil, intNone
	}
	if _, ok := z.Im.UniqueInteger(); !ok {
		return nil, intAmbiguous
	}
	n, ok := z.Re.UniqueInteger()
	if !ok {
		return nil, intAmbiguous
	}
	return n, intUnique
}

// productCoeffs encloses the coefficients of prod (x - r), constant first.
func productCoeffs(ctx interval.Context, roots []interval.Complex) []interval.Complex {
	out := []interval.Complex{interval.ComplexInt64(1, 0)}
	for _, r := range roots {
		next := make([]interval.Complex, len(out)+1)
		next[len(out)] = out[len(out)-1]
		for k := len(out) - 1; k >= 1; k-- {
			next[k] = ctx.Sub(out[k-1], ctx.Mul(r, out[k]))
		}
		next[0] = ctx.Neg(ctx.Mul(r, out[0]))
		out = next
	}
	return out
}

// roundProduct rounds the product of (x - r) to a monic integer
// polynomial.
func roundProduct(ctx interval.Context, roots []interval.Complex) (ZPoly, intState) {
	coeffs := productCoeffs(ctx, roots)
	out := make(ZPoly, len(coeffs))
	for i, c := range coeffs {
		n, st := integerIn(c)
		if st != intUnique {
			return nil, st
		}
		out[i] = n
	}
	return out, intUnique
}

// integerPoly evaluates the monic integer polynomial whose roots build
// returns, raising the precision until every coefficient is determined.
func integerPoly(build func(prec uint) ([]interval.Complex, error), b Budget) (ZPoly, error) {
	for prec := uint(128); prec <= b.maxPrec(); prec *= 2 {
		roots, err := build(prec)
		if err != nil {
			return nil, err
		}
		if len(roots) > b.maxResultant() {
			return nil, errors.Wrapf(ErrBudgetExceeded, "intermediate degree %d", len(roots))
		}
		p, st := roundProduct(interval.NewContext(prec), roots)
		switch st {
		case intUnique:
			return p, nil
		case intNone:
			return nil, errors.New("algebraic: conjugate set is not closed")
		}
	}
	return nil, errors.Wrap(ErrBudgetExceeded, "coefficients not determined")
}

// ============================================================
// Factor search
// ============================================================

// minimalFactor returns the minimal polynomial of the value v such that
// scale*v is a root of r. target encloses v at a requested precision.
func minimalFactor(r ZPoly, scale *big.Int, target func(prec uint) (interval.Complex, bool), b Budget) (ZPoly, error) {
	sf := r.SquarefreePart()
	if sf.Degree() < 1 {
		return nil, errors.New("algebraic: constant polynomial has no roots")
	}
	if sf.Degree() > b.maxResultant() {
		return nil, errors.Wrapf(ErrBudgetExceeded, "intermediate degree %d", sf.Degree())
	}
	c := sf.Lead()
	m := sf.Monic()
	total := new(big.Int).Mul(c, scale)
	cball := interval.Real(interval.FromInt(total))

	prec := uint(128)
	for prec < uint(2*m.Bits()+64) {
		prec *= 2
	}
	for ; prec <= b.maxPrec(); prec *= 2 {
		roots, ok := isolate(m, prec)
		if !ok {
			continue
		}
		t, ok := target(prec)
		if !ok {
			continue
		}
		ctx := interval.NewContext(prec)
		idx, ok := uniqueOverlap(roots, ctx.Mul(t, cball))
		if !ok {
			continue
		}
		f, st, err := searchFactor(m, roots, idx, ctx)
		if err != nil {
			return nil, err
		}
		if st != intUnique {
			continue
		}
		p := f.ScaleVar(total).Primitive()
		if err := b.admits(p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, errors.Wrap(ErrBudgetExceeded, "factor not certified")
}

// uniqueOverlap finds the only enclosure meeting t.
func uniqueOverlap(roots []interval.Complex, t interval.Complex) (int, bool) {
	idx := -1
	for k, r := range roots {
		if r.Overlaps(t) {
			if idx >= 0 {
				return -1, false
			}
			idx = k
		}
	}
	return idx, idx >= 0
}

// searchFactor finds the monic integer factor of m of least degree that
// vanishes at roots[idx]. Candidate root sets are closed under complex
// conjugation and are tried by increasing size.
func searchFactor(m ZPoly, roots []interval.Complex, idx int, ctx interval.Context) (ZPoly, intState, error) {
	n := len(roots)
	if n == 1 {
		return m, intUnique, nil
	}

	// group conjugate pairs
	unitOf := make([]int, n)
	for i := range unitOf {
		unitOf[i] = -1
	}
	var units [][]int
	for i, r := range roots {
		if unitOf[i] >= 0 {
			continue
		}
		if r.IsReal() {
			unitOf[i] = len(units)
			units = append(units, []int{i})
			continue
		}
		partner, ok := uniqueOverlap(roots, ctx.Conj(r))
		if !ok || partner == i || unitOf[partner] >= 0 {
			return nil, intAmbiguous, nil
		}
		unitOf[i], unitOf[partner] = len(units), len(units)
		units = append(units, []int{i, partner})
	}
	home := unitOf[idx]
	var others []int
	for u := range units {
		if u != home {
			others = append(others, u)
		}
	}

	visited := 0
	for size := len(units[home]); size < n; size++ {
		ambiguous := false
		var found ZPoly
		chosen := append([]int(nil), units[home]...)
		var walk func(from, need int) bool
		walk = func(from, need int) bool {
			if need == 0 {
				visited++
				f, st := tryFactor(m, roots, chosen, idx, ctx)
				switch st {
				case intUnique:
					found = f
					return true
				case intAmbiguous:
					ambiguous = true
				}
				return visited >= maxSubsets
			}
			for k := from; k < len(others); k++ {
				u := units[others[k]]
				if len(u) > need {
					continue
				}
				chosen = append(chosen, u...)
				stop := walk(k+1, need-len(u))
				chosen = chosen[:len(chosen)-len(u)]
				if stop {
					return true
				}
			}
			return false
		}
		walk(0, size-len(units[home]))
		if found != nil {
			return found, intUnique, nil
		}
		if ambiguous {
			return nil, intAmbiguous, nil
		}
		if visited >= maxSubsets {
			return nil, intNone, errors.Wrap(ErrBudgetExceeded, "factor search exhausted")
		}
	}
	// no proper factor: m is irreducible
	return m, intUnique, nil
}

// tryFactor checks whether the chosen roots form an integer factor of m
// that vanishes at roots[idx].
func tryFactor(m ZPoly, roots []interval.Complex, chosen []int, idx int, ctx interval.Context) (ZPoly, intState) {
	sum := interval.ComplexInt64(0, 0)
	sel := make([]interval.Complex, len(chosen))
	for i, k := range chosen {
		sel[i] = roots[k]
		sum = ctx.Add(sum, roots[k])
	}
	if _, st := integerIn(sum); st != intUnique {
		return nil, st
	}
	f, st := roundProduct(ctx, sel)
	if st != intUnique {
		return nil, st
	}
	g, ok := m.DivExact(f)
	if !ok {
		return nil, intNone
	}
	// m = f g and g(root) != 0 proves f(root) = 0
	if g.EvalBall(ctx, roots[idx]).ContainsZero() {
		return nil, intAmbiguous
	}
	return f, intUnique
}
