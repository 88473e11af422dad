package numtheory

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBernoulli(t *testing.T) {
	want := map[int]string{
		0: "1", 1: "-1/2", 2: "1/6", 3: "0", 4: "-1/30", 6: "1/42",
		8: "-1/30", 10: "5/66", 12: "-691/2730", 14: "7/6",
	}
	for n, s := range want {
		q, ok := new(big.Rat).SetString(s)
		require.True(t, ok)
		assert.Equal(t, 0, Bernoulli(n).Cmp(q), "B_%d = %s", n, Bernoulli(n).RatString())
	}
}

func TestBernoulliPolynomial(t *testing.T) {
	// B_2(x) = x^2 - x + 1/6
	p := BernoulliPolynomial(2)
	require.Len(t, p, 3)
	assert.Equal(t, "1/6", p[0].RatString())
	assert.Equal(t, "-1", p[1].RatString())
	assert.Equal(t, "1", p[2].RatString())
}

func TestKronecker(t *testing.T) {
	cases := []struct {
		a, b int64
		want int
	}{
		{1, 1, 1},
		{2, 3, -1},
		{5, 8, -1},
		{-1, 4, 1},
		{3, 4, 1},
		{2, 4, 0},
		{1, 0, 1},
		{2, 0, 0},
		{-3, 7, 1},
		{4, 5, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Kronecker(big.NewInt(tc.a), big.NewInt(tc.b)), "(%d/%d)", tc.a, tc.b)
	}
}

func TestIntegers(t *testing.T) {
	assert.Equal(t, int64(4), Totient(12))
	assert.Equal(t, int64(6), Totient(7))
	assert.Equal(t, [][2]int64{{2, 2}, {3, 1}, {5, 1}}, Factor(60))
	assert.Equal(t, "720", Factorial(6).String())
	assert.Equal(t, "10", Binomial(5, 2).String())
	assert.Equal(t, "25/12", Harmonic(4).RatString())
	assert.Equal(t, int64(2), Mod(-3, 5))
	assert.Equal(t, "-2", RatFloor(big.NewRat(-3, 2)).String())

	s, f := SquarefreeDecompose(big.NewInt(-72), 100)
	assert.Equal(t, "-2", s.String())
	assert.Equal(t, "6", f.String())

	r, ok := Isqrt(big.NewInt(49))
	assert.True(t, ok)
	assert.Equal(t, "7", r.String())
	_, ok = Isqrt(big.NewInt(50))
	assert.False(t, ok)
}
