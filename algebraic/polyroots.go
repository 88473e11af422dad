package algebraic

import (
	"math/big"
	"sort"

	"github.com/pkg/errors"

	"github.com/njchilds90/gogrim/interval"
)

// Root is a polynomial root with its multiplicity.
type Root struct {
	Value        *Number
	Multiplicity int
}

// RootOfUnity returns exp(2 pi i k / n).
func (b Budget) RootOfUnity(k, n int64) (*Number, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrUnsupported, "root of unity of order %d", n)
	}
	return b.ExpTwoPiI(big.NewRat(k, n))
}

// PolynomialRoots returns the complex roots of p with multiplicities. Real
// roots come first in ascending order, then non-real roots by real part,
// then by absolute imaginary part, with the upper half plane first.
func (b Budget) PolynomialRoots(p QPoly) ([]Root, error) {
	if p.IsZero() {
		return nil, errors.Wrap(ErrUnsupported, "roots of the zero polynomial")
	}
	var out []Root
	for k, f := range p.SquarefreeFactors() {
		if f == nil {
			continue
		}
		vals, err := b.squarefreeRoots(f.Primitive())
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			out = append(out, Root{Value: v, Multiplicity: k + 1})
		}
	}
	if err := b.sortRoots(out); err != nil {
		return nil, err
	}
	return out, nil
}

// MatrixEigenvalues returns the eigenvalues of a square rational matrix
// with algebraic multiplicities.
func (b Budget) MatrixEigenvalues(m *Matrix) ([]Root, error) {
	cp, err := m.Charpoly()
	if err != nil {
		return nil, err
	}
	return b.PolynomialRoots(cp)
}

func (b Budget) squarefreeRoots(p ZPoly) ([]*Number, error) {
	if err := b.admits(p); err != nil {
		return nil, err
	}
	if p.Degree() == 1 {
		return []*Number{NewRat(new(big.Rat).SetFrac(new(big.Int).Neg(p[0]), p[1]))}, nil
	}
	encs, prec, err := rootsOf(p, basePrec, b)
	if err != nil {
		return nil, err
	}
	out := make([]*Number, 0, len(encs))
	for _, z0 := range encs {
		target := rootTarget(p, z0, prec)
		poly, err := minimalFactor(p, big.NewInt(1), target, b)
		if err != nil {
			return nil, err
		}
		x, err := locate(poly, target, b)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// rootTarget follows the root of p isolated by z0 at prec0 to any higher
// precision.
func rootTarget(p ZPoly, z0 interval.Complex, prec0 uint) func(uint) (interval.Complex, bool) {
	return func(prec uint) (interval.Complex, bool) {
		if prec <= prec0 {
			return z0, true
		}
		roots, ok := isolate(p, prec)
		if !ok {
			return z0, false
		}
		k, ok := uniqueOverlap(roots, z0)
		if !ok {
			return z0, false
		}
		z := roots[k]
		if z0.IsReal() {
			z = interval.Real(z.Re)
		}
		return z, true
	}
}

func (b Budget) sortRoots(rs []Root) error {
	var failed error
	sort.SliceStable(rs, func(i, j int) bool {
		if failed != nil {
			return false
		}
		c, err := b.cmpRoots(rs[i].Value, rs[j].Value)
		if err != nil {
			failed = err
			return false
		}
		return c < 0
	})
	return failed
}

func (b Budget) cmpRoots(x, y *Number) (int, error) {
	xr, yr := x.IsReal(), y.IsReal()
	switch {
	case xr && yr:
		return b.Cmp(x, y)
	case xr:
		return -1, nil
	case yr:
		return 1, nil
	}
	if same, err := b.Equal(x, y); err != nil || same {
		return 0, err
	}
	if conj, err := b.Equal(x.Conj(), y); err != nil {
		return 0, err
	} else if conj {
		if x.enc.Im.Positive() {
			return -1, nil
		}
		return 1, nil
	}
	xre, err := b.Re(x)
	if err != nil {
		return 0, err
	}
	yre, err := b.Re(y)
	if err != nil {
		return 0, err
	}
	if c, err := b.Cmp(xre, yre); err != nil || c != 0 {
		return c, err
	}
	xim, err := b.Im(x)
	if err != nil {
		return 0, err
	}
	yim, err := b.Im(y)
	if err != nil {
		return 0, err
	}
	xa, ya := xim, yim
	if xa.Sign() < 0 {
		xa = xa.Neg()
	}
	if ya.Sign() < 0 {
		ya = ya.Neg()
	}
	if c, err := b.Cmp(xa, ya); err != nil || c != 0 {
		return c, err
	}
	return -xim.Sign(), nil
}
