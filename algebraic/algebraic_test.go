package algebraic_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gogrim/algebraic"
)

var b = algebraic.DefaultBudget

func q(n, d int64) *big.Rat { return big.NewRat(n, d) }

func num(n int64) *algebraic.Number { return algebraic.NewInt64(n) }

func sqrt(t *testing.T, n int64) *algebraic.Number {
	t.Helper()
	x, err := b.Sqrt(num(n))
	require.NoError(t, err)
	return x
}

func assertRat(t *testing.T, want *big.Rat, x *algebraic.Number) {
	t.Helper()
	require.True(t, x.IsRational(), "expected rational, got %s", x)
	assert.Equal(t, want.RatString(), x.Rat().RatString())
}

func assertMinpoly(t *testing.T, x *algebraic.Number, coeffs ...int64) {
	t.Helper()
	want := algebraic.NewZPoly(coeffs...)
	assert.True(t, want.Equal(x.Minpoly()), "minpoly %s, want %s", x.Minpoly(), want)
}

// ============================================================
// Field arithmetic
// ============================================================

func TestSqrtSquared(t *testing.T) {
	r2 := sqrt(t, 2)
	assert.False(t, r2.IsRational())
	assert.True(t, r2.IsReal())
	assert.Equal(t, 1, r2.Sign())
	assertMinpoly(t, r2, -2, 0, 1)

	p, err := b.Mul(r2, r2)
	require.NoError(t, err)
	assertRat(t, q(2, 1), p)
}

func TestSumOfSquareRoots(t *testing.T) {
	s, err := b.Add(sqrt(t, 2), sqrt(t, 3))
	require.NoError(t, err)
	assertMinpoly(t, s, 1, 0, -10, 0, 1)
	assert.InDelta(t, math.Sqrt2+math.Sqrt(3), real(s.Complex128()), 1e-12)

	d, err := b.Sub(s, sqrt(t, 3))
	require.NoError(t, err)
	eq, err := b.Equal(d, sqrt(t, 2))
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestImaginaryUnit(t *testing.T) {
	i := algebraic.I()
	assert.False(t, i.IsReal())
	sq, err := b.Mul(i, i)
	require.NoError(t, err)
	assertRat(t, q(-1, 1), sq)

	r, err := b.Sqrt(num(-1))
	require.NoError(t, err)
	eq, err := b.Equal(r, i)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestInverseAndDivision(t *testing.T) {
	inv, err := b.Inv(sqrt(t, 2))
	require.NoError(t, err)
	assertMinpoly(t, inv, -1, 0, 2)

	_, err = b.Inv(num(0))
	assert.True(t, errors.Is(err, algebraic.ErrDivisionByZero))

	half, err := b.Div(num(1), num(2))
	require.NoError(t, err)
	assertRat(t, q(1, 2), half)
}

func TestGoldenRatio(t *testing.T) {
	s, err := b.Add(num(1), sqrt(t, 5))
	require.NoError(t, err)
	s, err = b.Div(s, num(2))
	require.NoError(t, err)
	eq, err := b.Equal(s, algebraic.GoldenRatio())
	require.NoError(t, err)
	assert.True(t, eq)

	a, bb, c, ok := s.AsQuadratic()
	require.True(t, ok)
	assert.Equal(t, "1/2", a.RatString())
	assert.Equal(t, "1/2", bb.RatString())
	assert.Equal(t, int64(5), c.Int64())
}

func TestAsQuadratic_Conjugate(t *testing.T) {
	s, err := b.Sub(num(3), sqrt(t, 8))
	require.NoError(t, err)
	a, bb, c, ok := s.AsQuadratic()
	require.True(t, ok)
	assert.Equal(t, "3", a.RatString())
	assert.Equal(t, "-2", bb.RatString())
	assert.Equal(t, int64(2), c.Int64())

	_, _, _, ok = algebraic.GoldenRatio().AsQuadratic()
	assert.True(t, ok)
}

// ============================================================
// Powers, parts and comparison
// ============================================================

func TestRootsAndPowers(t *testing.T) {
	r, err := b.Root(num(8), 3)
	require.NoError(t, err)
	assertRat(t, q(2, 1), r)

	c, err := b.Root(num(2), 3)
	require.NoError(t, err)
	assertMinpoly(t, c, -2, 0, 0, 1)
	assert.True(t, c.IsReal())

	p, err := b.Pow(num(4), algebraic.NewRat(q(3, 2)))
	require.NoError(t, err)
	assertRat(t, q(8, 1), p)

	p, err = b.PowInt(sqrt(t, 2), 5)
	require.NoError(t, err)
	assertMinpoly(t, p, -32, 0, 1)

	_, err = b.Pow(num(0), num(-1))
	assert.True(t, errors.Is(err, algebraic.ErrDivisionByZero))
}

func TestParts(t *testing.T) {
	four, err := b.Mul(num(4), algebraic.I())
	require.NoError(t, err)
	z, err := b.Add(num(3), four)
	require.NoError(t, err)

	abs, err := b.Abs(z)
	require.NoError(t, err)
	assertRat(t, q(5, 1), abs)

	re, err := b.Re(z)
	require.NoError(t, err)
	assertRat(t, q(3, 1), re)

	im, err := b.Im(z)
	require.NoError(t, err)
	assertRat(t, q(4, 1), im)

	sgn, err := b.Sgn(num(-7))
	require.NoError(t, err)
	assertRat(t, q(-1, 1), sgn)
}

func TestCmp(t *testing.T) {
	c, err := b.Cmp(sqrt(t, 2), num(1))
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = b.Cmp(sqrt(t, 2), sqrt(t, 3))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	_, err = b.Cmp(algebraic.I(), num(0))
	assert.True(t, errors.Is(err, algebraic.ErrUnsupported))
}

// ============================================================
// Roots of unity and trigonometric values
// ============================================================

func TestRootsOfUnity(t *testing.T) {
	w, err := b.ExpTwoPiI(q(1, 3))
	require.NoError(t, err)
	assertMinpoly(t, w, 1, 1, 1)
	assert.False(t, w.IsReal())
	assert.Greater(t, imag(w.Complex128()), 0.0)

	re, err := b.Re(w)
	require.NoError(t, err)
	assertRat(t, q(-1, 2), re)

	im, err := b.Im(w)
	require.NoError(t, err)
	assertMinpoly(t, im, -3, 0, 4)

	m, err := b.ExpPiI(q(1, 1))
	require.NoError(t, err)
	assertRat(t, q(-1, 1), m)

	u, err := b.RootOfUnity(3, 4)
	require.NoError(t, err)
	eq, err := b.Equal(u, algebraic.I().Neg())
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestTrigonometricValues(t *testing.T) {
	c, err := b.CosPi(q(1, 3))
	require.NoError(t, err)
	assertRat(t, q(1, 2), c)

	s, err := b.SinPi(q(1, 6))
	require.NoError(t, err)
	assertRat(t, q(1, 2), s)

	c, err = b.CosPi(q(1, 4))
	require.NoError(t, err)
	assertMinpoly(t, c, -1, 0, 2)
	assert.Equal(t, 1, c.Sign())

	c, err = b.CosPi(q(3, 4))
	require.NoError(t, err)
	assert.Equal(t, -1, c.Sign())

	tn, err := b.TanPi(q(1, 4))
	require.NoError(t, err)
	assertRat(t, q(1, 1), tn)

	tn, err = b.TanPi(q(1, 3))
	require.NoError(t, err)
	assertMinpoly(t, tn, -3, 0, 1)

	_, err = b.TanPi(q(1, 2))
	assert.True(t, errors.Is(err, algebraic.ErrDivisionByZero))
}

// ============================================================
// Polynomials and matrices
// ============================================================

func TestPolynomialRoots(t *testing.T) {
	roots, err := b.PolynomialRoots(algebraic.NewQPoly(q(1, 1), q(0, 1), q(1, 1)))
	require.NoError(t, err)
	require.Len(t, roots, 2)
	eq, err := b.Equal(roots[0].Value, algebraic.I())
	require.NoError(t, err)
	assert.True(t, eq)
	eq, err = b.Equal(roots[1].Value, algebraic.I().Neg())
	require.NoError(t, err)
	assert.True(t, eq)

	// (x - 1)^2 (x + 2) = x^3 - 3x + 2
	roots, err = b.PolynomialRoots(algebraic.NewQPoly(q(2, 1), q(-3, 1), q(0, 1), q(1, 1)))
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assertRat(t, q(-2, 1), roots[0].Value)
	assert.Equal(t, 1, roots[0].Multiplicity)
	assertRat(t, q(1, 1), roots[1].Value)
	assert.Equal(t, 2, roots[1].Multiplicity)

	// x^2 - 2 gives -sqrt 2, sqrt 2
	roots, err = b.PolynomialRoots(algebraic.NewQPoly(q(-2, 1), q(0, 1), q(1, 1)))
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, -1, roots[0].Value.Sign())
	assert.Equal(t, 1, roots[1].Value.Sign())
}

func TestMatrix(t *testing.T) {
	m, err := algebraic.NewMatrix([][]*big.Rat{{q(1, 1), q(2, 1)}, {q(3, 1), q(4, 1)}})
	require.NoError(t, err)
	d, err := m.Det()
	require.NoError(t, err)
	assert.Equal(t, "-2", d.RatString())

	inv, err := m.Inverse()
	require.NoError(t, err)
	id, err := m.Mul(inv)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := int64(0)
			if i == j {
				want = 1
			}
			assert.Equal(t, big.NewRat(want, 1).RatString(), id.At(i, j).RatString())
		}
	}

	h, err := algebraic.Hilbert(3).Det()
	require.NoError(t, err)
	assert.Equal(t, "1/2160", h.RatString())

	_, err = algebraic.NewMatrix([][]*big.Rat{{q(1, 1)}, {q(1, 1), q(2, 1)}})
	assert.True(t, errors.Is(err, algebraic.ErrUnsupported))
}

func TestCharpolyAndEigenvalues(t *testing.T) {
	m, err := algebraic.NewMatrix([][]*big.Rat{{q(2, 1), q(0, 1)}, {q(0, 1), q(3, 1)}})
	require.NoError(t, err)
	cp, err := m.Charpoly()
	require.NoError(t, err)
	assert.Equal(t, "1", cp.Lead().RatString())
	assert.Equal(t, 0, cp.Eval(q(2, 1)).Sign())
	assert.Equal(t, 0, cp.Eval(q(3, 1)).Sign())

	swap, err := algebraic.NewMatrix([][]*big.Rat{{q(0, 1), q(1, 1)}, {q(1, 1), q(0, 1)}})
	require.NoError(t, err)
	eig, err := b.MatrixEigenvalues(swap)
	require.NoError(t, err)
	require.Len(t, eig, 2)
	assertRat(t, q(-1, 1), eig[0].Value)
	assertRat(t, q(1, 1), eig[1].Value)
}

func TestCyclotomic(t *testing.T) {
	assert.True(t, algebraic.NewZPoly(1, 0, -1, 0, 1).Equal(algebraic.Cyclotomic(12)))
	assert.Equal(t, 12, algebraic.Cyclotomic(12).IsCyclotomic())
	assert.Equal(t, 2, algebraic.NewZPoly(1, 1).IsCyclotomic())
	assert.Equal(t, 0, algebraic.NewZPoly(-2, 0, 1).IsCyclotomic())

	p, k := algebraic.NewZPoly(1, 0, 0, 1, 0, 0, 1).Deflation()
	assert.Equal(t, 3, k)
	assert.True(t, algebraic.NewZPoly(1, 1, 1).Equal(p))
}

func TestSquarefreeFactors(t *testing.T) {
	// (x - 1)^2 (x + 2)
	fs := algebraic.NewQPoly(q(2, 1), q(-3, 1), q(0, 1), q(1, 1)).SquarefreeFactors()
	require.Len(t, fs, 2)
	assert.Equal(t, 1, fs[0].Degree())
	assert.Equal(t, 0, fs[0].Eval(q(-2, 1)).Sign())
	assert.Equal(t, 0, fs[1].Eval(q(1, 1)).Sign())
}

// ============================================================
// Modular reduction
// ============================================================

func TestReduceSL2Z(t *testing.T) {
	tau, err := b.Add(num(1), algebraic.I())
	require.NoError(t, err)
	red, g, err := b.ReduceSL2Z(tau)
	require.NoError(t, err)
	eq, err := b.Equal(red, algebraic.I())
	require.NoError(t, err)
	assert.True(t, eq)
	ints, ok := g.Ints()
	require.True(t, ok)
	assert.Equal(t, [4]int64{1, 1, 0, 1}, ints)

	half, err := b.Mul(algebraic.I(), algebraic.NewRat(q(1, 2)))
	require.NoError(t, err)
	red, g, err = b.ReduceSL2Z(half)
	require.NoError(t, err)
	two, err := b.Mul(algebraic.I(), num(2))
	require.NoError(t, err)
	eq, err = b.Equal(red, two)
	require.NoError(t, err)
	assert.True(t, eq)
	ints, _ = g.Ints()
	assert.Equal(t, [4]int64{0, -1, 1, 0}, ints)

	_, _, err = b.ReduceSL2Z(sqrt(t, 2))
	assert.True(t, errors.Is(err, algebraic.ErrUnsupported))
}

// ============================================================
// Budget
// ============================================================

func TestBudgetExceeded(t *testing.T) {
	tight := algebraic.Budget{Degree: 2, Bits: 64}
	r2, err := tight.Sqrt(num(2))
	require.NoError(t, err)
	r3, err := tight.Sqrt(num(3))
	require.NoError(t, err)
	_, err = tight.Add(r2, r3)
	assert.True(t, errors.Is(err, algebraic.ErrBudgetExceeded))

	wide := tight.Widen()
	assert.GreaterOrEqual(t, wide.Degree, tight.Degree)
	assert.Equal(t, 256, wide.Bits)
}
