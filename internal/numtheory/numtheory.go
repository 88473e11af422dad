// Package numtheory holds the exact integer and rational helpers shared by
// the numeric, algebraic and simplification layers.
package numtheory

import (
	"math/big"
	"sync"
)

var one = big.NewInt(1)

// ============================================================
// Bernoulli numbers
// ============================================================

var bernoulli struct {
	sync.Mutex
	table []*big.Rat
}

// Bernoulli returns B_n with the convention B_1 = -1/2.
func Bernoulli(n int) *big.Rat {
	if n < 0 {
		panic("numtheory: negative Bernoulli index")
	}
	if n == 1 {
		return big.NewRat(-1, 2)
	}
	if n > 1 && n%2 == 1 {
		return new(big.Rat)
	}
	bernoulli.Lock()
	defer bernoulli.Unlock()
	for len(bernoulli.table) <= n {
		bernoulli.table = append(bernoulli.table, nextBernoulli(bernoulli.table))
	}
	return new(big.Rat).Set(bernoulli.table[n])
}

// nextBernoulli extends the table with the recurrence
// sum_{k<m+1} C(m+1, k) B_k = 0.
func nextBernoulli(table []*big.Rat) *big.Rat {
	m := len(table)
	if m == 0 {
		return big.NewRat(1, 1)
	}
	if m == 1 {
		return big.NewRat(-1, 2)
	}
	if m%2 == 1 {
		return new(big.Rat)
	}
	sum := new(big.Rat)
	binom := big.NewInt(1)
	for k := 0; k < m; k++ {
		sum.Add(sum, new(big.Rat).Mul(new(big.Rat).SetInt(binom), table[k]))
		binom.Mul(binom, big.NewInt(int64(m+1-k)))
		binom.Quo(binom, big.NewInt(int64(k+1)))
	}
	return sum.Neg(sum.Quo(sum, new(big.Rat).SetInt64(int64(m+1))))
}

// BernoulliPolynomial returns the coefficients of B_n(x), constant first.
func BernoulliPolynomial(n int) []*big.Rat {
	out := make([]*big.Rat, n+1)
	binom := big.NewInt(1)
	for k := 0; k <= n; k++ {
		// B_n(x) = sum_k C(n, k) B_k x^(n-k)
		out[n-k] = new(big.Rat).Mul(new(big.Rat).SetInt(binom), Bernoulli(k))
		binom.Mul(binom, big.NewInt(int64(n-k)))
		binom.Quo(binom, big.NewInt(int64(k+1)))
	}
	return out
}

// ============================================================
// Integers
// ============================================================

func Factorial(n int64) *big.Int {
	return new(big.Int).MulRange(1, n)
}

// Binomial returns C(n, k) for non-negative n and k.
func Binomial(n, k int64) *big.Int { return new(big.Int).Binomial(n, k) }

// Harmonic returns 1 + 1/2 + ... + 1/n.
func Harmonic(n int64) *big.Rat {
	h := new(big.Rat)
	for k := int64(1); k <= n; k++ {
		h.Add(h, big.NewRat(1, k))
	}
	return h
}

// Isqrt returns floor(sqrt(n)) and whether n is a perfect square. n must be
// non-negative.
func Isqrt(n *big.Int) (*big.Int, bool) {
	r := new(big.Int).Sqrt(n)
	return r, new(big.Int).Mul(r, r).Cmp(n) == 0
}

// SquarefreeDecompose writes n = s * f^2 with s squarefree, by trial
// division up to the given bound. The returned s may keep square factors
// above the bound.
func SquarefreeDecompose(n *big.Int, bound int64) (s, f *big.Int) {
	s = new(big.Int).Abs(n)
	f = big.NewInt(1)
	if s.Sign() == 0 {
		return s, f
	}
	for p := int64(2); p <= bound; p++ {
		pp := big.NewInt(p * p)
		if pp.Cmp(s) > 0 {
			break
		}
		for new(big.Int).Mod(s, pp).Sign() == 0 {
			s.Quo(s, pp)
			f.Mul(f, big.NewInt(p))
		}
	}
	if r, ok := Isqrt(s); ok {
		f.Mul(f, r)
		s.SetInt64(1)
	}
	if n.Sign() < 0 {
		s.Neg(s)
	}
	return s, f
}

// IsPrime is a probabilistic test, exact below 2^64.
func IsPrime(n *big.Int) bool { return n.Sign() > 0 && n.ProbablyPrime(20) }

func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Totient returns Euler's phi(n).
func Totient(n int64) int64 {
	result := n
	m := n
	for p := int64(2); p*p <= m; p++ {
		if m%p == 0 {
			for m%p == 0 {
				m /= p
			}
			result -= result / p
		}
	}
	if m > 1 {
		result -= result / m
	}
	return result
}

// Factor returns the prime factorisation of n > 0 as ordered (p, e) pairs.
func Factor(n int64) [][2]int64 {
	var out [][2]int64
	for p := int64(2); p*p <= n; p++ {
		e := int64(0)
		for n%p == 0 {
			n /= p
			e++
		}
		if e > 0 {
			out = append(out, [2]int64{p, e})
		}
	}
	if n > 1 {
		out = append(out, [2]int64{n, 1})
	}
	return out
}

// Kronecker returns the Kronecker symbol (a/b).
func Kronecker(a, b *big.Int) int {
	if b.Sign() < 0 {
		return Kronecker(a, new(big.Int).Neg(b))
	}
	if b.Cmp(one) == 0 {
		return 1
	}
	if b.Sign() == 0 {
		if new(big.Int).Abs(a).Cmp(one) == 0 {
			return 1
		}
		return 0
	}
	// strip factors of two
	bb := new(big.Int).Set(b)
	result := 1
	for bb.Bit(0) == 0 {
		bb.Rsh(bb, 1)
		if a.Bit(0) == 0 {
			return 0
		}
		am8 := new(big.Int).Mod(a, big.NewInt(8)).Int64()
		if am8 == 3 || am8 == 5 {
			result = -result
		}
	}
	if bb.Cmp(one) == 0 {
		return result
	}
	return result * big.Jacobi(new(big.Int).Mod(a, bb), bb)
}

// Mod returns a mod m in [0, m).
func Mod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// RatFloor returns floor(q).
func RatFloor(q *big.Rat) *big.Int {
	n := new(big.Int)
	r := new(big.Int)
	n.DivMod(q.Num(), q.Denom(), r)
	return n
}

// IsSmallPrime reports whether n is one of the primes below 20.
func IsSmallPrime(n int64) bool {
	switch n {
	case 2, 3, 5, 7, 11, 13, 17, 19:
		return true
	}
	return false
}
