package interval_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gogrim/interval"
	"github.com/njchilds90/gogrim/term"
)

var ctx = interval.NewContext(128)

func eval(t *testing.T, src string) interval.Complex {
	t.Helper()
	z, ok := ctx.Evaluate(term.MustParse(src))
	require.True(t, ok, "evaluate %s", src)
	return z
}

func assertNear(t *testing.T, want float64, b interval.Ball) {
	t.Helper()
	assert.InDelta(t, want, b.Float64(), 1e-12*math.Max(1, math.Abs(want)), "ball %s", b)
}

// ============================================================
// Balls
// ============================================================

func TestBall_ExactIntegers(t *testing.T) {
	b := interval.FromInt64(7)
	assert.True(t, b.IsExact())
	n, ok := b.UniqueInteger()
	require.True(t, ok)
	assert.Equal(t, int64(7), n.Int64())
	assert.True(t, b.Positive())
	assert.False(t, b.ContainsZero())
}

func TestBall_RationalEnclosure(t *testing.T) {
	third := ctx.FromRat(big.NewRat(1, 3))
	assert.False(t, third.IsExact())
	assert.True(t, third.Contains(new(big.Float).SetPrec(200).Quo(big.NewFloat(1), big.NewFloat(3))))
	assert.False(t, third.ContainsInteger())

	half := ctx.FromRat(big.NewRat(1, 2))
	assert.True(t, half.IsExact())
}

// ============================================================
// Constants and functions
// ============================================================

func TestConstants(t *testing.T) {
	assertNear(t, math.Pi, ctx.Pi())
	assertNear(t, math.E, ctx.E())
	assertNear(t, math.Phi, ctx.GoldenRatio())
	assertNear(t, 0.5772156649015329, ctx.EulerGamma())
	assertNear(t, 0.915965594177219, ctx.Catalan())
}

func TestPiIsTight(t *testing.T) {
	p := ctx.Pi()
	assert.True(t, p.Rad().Cmp(big.NewFloat(1e-30)) < 0)
	want, _, err := big.ParseFloat("3.14159265358979323846264338327950288419716939937510582097494459", 10, 256, big.ToNearestEven)
	require.NoError(t, err)
	assert.True(t, p.Contains(want))
}

func TestEvaluate_Elementary(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"Sub(Pi, 3)", math.Pi - 3},
		{"Exp(1)", math.E},
		{"Log(10)", math.Log(10)},
		{"Sin(1)", math.Sin(1)},
		{"Cos(Div(Pi, 3))", 0.5},
		{"Atan(1)", math.Pi / 4},
		{"Sqrt(2)", math.Sqrt2},
		{"Pow(2, Div(1, 3))", math.Cbrt(2)},
		{"Tanh(Div(1, 2))", math.Tanh(0.5)},
		{"Gamma(Div(1, 2))", math.Sqrt(math.Pi)},
		{"Gamma(5)", 24},
		{"Gamma(Div(-1, 2))", -2 * math.Sqrt(math.Pi)},
		{"Erf(1)", math.Erf(1)},
		{"Erfc(Div(1, 2))", math.Erfc(0.5)},
		{"Factorial(Div(1, 2))", math.Sqrt(math.Pi) / 2},
		{"Add(Pow(Sin(1), 2), Pow(Cos(1), 2))", 1},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			z := eval(t, tc.src)
			assert.True(t, z.IsReal())
			assertNear(t, tc.want, z.Re)
		})
	}
}

func TestEvaluate_Complex(t *testing.T) {
	z := eval(t, "Sqrt(-4)")
	assert.True(t, z.Re.IsZero())
	assertNear(t, 2, z.Im)

	z = eval(t, "Exp(Mul(Pi, ConstI))")
	assertNear(t, -1, z.Re)
	assert.True(t, z.Im.ContainsZero())

	z = eval(t, "Log(-1)")
	assert.True(t, z.Re.ContainsZero())
	assertNear(t, math.Pi, z.Im)

	z = eval(t, "Pow(ConstI, 2)")
	assert.True(t, z.Im.IsZero())
	assertNear(t, -1, z.Re)
}

func TestEvaluate_RealProducts(t *testing.T) {
	z := eval(t, "Mul(0, Pi)")
	assert.True(t, z.IsReal())
	assert.True(t, z.Re.IsZero())
}

func TestEvaluate_Decimal(t *testing.T) {
	z := eval(t, `Decimal("0.125")`)
	assert.True(t, z.Re.IsExact())
	assertNear(t, 0.125, z.Re)
}

func TestEvaluate_Failures(t *testing.T) {
	for _, src := range []string{
		"x",
		"Div(1, 0)",
		"Log(0)",
		"Gamma(-2)",
		"RiemannZeta(3)",
		"Sub(1)",
		"Floor(ConstI)",
	} {
		_, ok := ctx.Evaluate(term.MustParse(src))
		assert.False(t, ok, "evaluate %s", src)
	}
}

func TestFloorCeil(t *testing.T) {
	z := eval(t, "Floor(Mul(10, Pi))")
	n, ok := z.Re.UniqueInteger()
	require.True(t, ok)
	assert.Equal(t, int64(31), n.Int64())
	assert.True(t, z.Re.IsExact())

	z = eval(t, "Ceil(Neg(Div(7, 2)))")
	n, ok = z.Re.UniqueInteger()
	require.True(t, ok)
	assert.Equal(t, int64(-3), n.Int64())
}

func TestRealEnclosure(t *testing.T) {
	_, ok := ctx.RealEnclosure(term.MustParse("Add(1, ConstI)"))
	assert.False(t, ok)
	b, ok := ctx.RealEnclosure(term.MustParse("Sub(Pi, 4)"))
	require.True(t, ok)
	assert.True(t, b.Negative())
}

func TestOverlaps(t *testing.T) {
	a := eval(t, "Sqrt(2)")
	b := eval(t, "Div(Sqrt(8), 2)")
	assert.True(t, a.Overlaps(b))
	c := eval(t, "Div(141421, 100000)")
	assert.False(t, a.Overlaps(c))
}
