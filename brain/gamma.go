package brain

import (
	"math/big"

	"github.com/njchilds90/gogrim/term"
)

// Closed forms of Gamma(p/q) for 0 < p/q < 1 and q dividing 60 or 24, in
// terms of Gamma(1/3), Gamma(1/4), Gamma(1/5), Gamma(2/5), Gamma(1/8),
// Gamma(1/15), Gamma(1/20), Gamma(1/24), Gamma(1/60) and Gamma(7/60).
// See Vidunas, "Expressions for values of the gamma function",
// arXiv:math/0403510.

// gammaForm is pi^Pi * 2^Two * 3^Three * 5^Five * radical * prod Gamma(a/b)^e.
type gammaForm struct {
	pi, two, three, five [2]int64
	radical              *term.Term
	gammas               []gammaPower
}

type gammaPower struct{ p, q, e int64 }

func g(p, q, e int64) gammaPower { return gammaPower{p, q, e} }

var gammaTable map[[2]int64]gammaForm

func init() {
	s := sqrt
	s2, s3, s5, s10, s15 := s(num(2)), s(num(3)), s(num(5)), s(num(10)), s(num(15))
	a := add(num(5), s5)
	b := sub(num(5), s5)
	c := s(add(num(5), mul(num(2), s5)))
	d := s(sub(num(5), mul(num(2), s5)))
	sa, sb := s(a), s(b)
	one := num(1)
	z := [2]int64{0, 1}
	f := func(pi, two, three, five [2]int64, r *term.Term, gs ...gammaPower) gammaForm {
		return gammaForm{pi, two, three, five, r, gs}
	}
	e := func(p, q int64) [2]int64 { return [2]int64{p, q} }

	gammaTable = map[[2]int64]gammaForm{
		{1, 2}: f(e(1, 2), z, z, z, one),
		{2, 3}: f(e(1, 1), e(1, 1), e(-1, 2), z, one, g(1, 3, -1)),
		{3, 4}: f(e(1, 1), e(1, 2), z, z, one, g(1, 4, -1)),
		{3, 5}: f(e(1, 1), e(1, 2), z, e(-1, 2), sb, g(2, 5, -1)),
		{4, 5}: f(e(1, 1), e(1, 2), z, e(-1, 2), sa, g(1, 5, -1)),
		{1, 6}: f(e(-1, 2), e(-1, 3), e(1, 2), z, one, g(1, 3, 2)),
		{5, 6}: f(e(3, 2), e(4, 3), e(-1, 2), z, one, g(1, 3, -2)),
		{3, 8}: f(e(1, 2), z, z, z, s(sub(s2, one)), g(1, 4, -1), g(1, 8, 1)),
		{5, 8}: f(e(1, 2), e(3, 4), z, z, one, g(1, 4, 1), g(1, 8, -1)),
		{7, 8}: f(e(1, 1), e(3, 4), z, z, s(add(s2, one)), g(1, 8, -1)),

		{1, 10}: f(e(-1, 2), e(-7, 10), z, z, sa, g(1, 5, 1), g(2, 5, 1)),
		{3, 10}: f(e(1, 2), e(-3, 5), z, e(-1, 2), b, g(1, 5, 1), g(2, 5, -1)),
		{7, 10}: f(e(1, 2), e(3, 5), z, z, one, g(1, 5, -1), g(2, 5, 1)),
		{9, 10}: f(e(3, 2), e(7, 10), z, e(-1, 2), sa, g(1, 5, -1), g(2, 5, -1)),

		{1, 12}:  f(e(-1, 2), e(-1, 4), e(3, 8), z, s(add(s3, one)), g(1, 3, 1), g(1, 4, 1)),
		{5, 12}:  f(e(1, 2), e(1, 4), e(-1, 8), z, s(sub(s3, one)), g(1, 4, 1), g(1, 3, -1)),
		{7, 12}:  f(e(1, 2), e(1, 4), e(1, 8), z, s(sub(s3, one)), g(1, 3, 1), g(1, 4, -1)),
		{11, 12}: f(e(3, 2), e(3, 4), e(-3, 8), z, s(add(s3, one)), g(1, 3, -1), g(1, 4, -1)),

		{2, 15}:  f(z, e(-1, 1), e(-7, 20), e(-1, 3), mul(sb, s(sub(s15, d))), g(1, 3, -1), g(2, 5, 1), g(1, 15, 1)),
		{4, 15}:  f(z, e(-3, 2), e(-3, 10), e(-1, 2), mul(sa, s(sub(s15, c)), s(sub(s15, d))), g(1, 5, -1), g(2, 5, 1), g(1, 15, 1)),
		{7, 15}:  f(z, e(-1, 1), e(9, 20), e(-1, 6), mul(sb, s(add(s15, d))), g(1, 3, 1), g(1, 5, 1), g(1, 15, -1)),
		{8, 15}:  f(e(1, 1), e(1, 2), e(-9, 20), e(-1, 3), s(sub(s15, c)), g(1, 3, -1), g(1, 5, -1), g(1, 15, 1)),
		{11, 15}: f(e(1, 1), e(1, 1), e(3, 10), z, one, g(1, 5, 1), g(2, 5, -1), g(1, 15, -1)),
		{13, 15}: f(e(1, 1), e(1, 2), e(7, 20), e(-1, 6), s(add(s15, c)), g(1, 3, 1), g(2, 5, -1), g(1, 15, -1)),
		{14, 15}: f(e(1, 1), e(-1, 2), z, e(-1, 2), mul(sa, s(add(s15, c)), s(add(s15, d))), g(1, 15, -1)),

		{3, 20}:  f(e(1, 2), e(-21, 20), z, e(-7, 8), mul(b, s(sub(s10, sb))), g(2, 5, -1), g(1, 20, 1)),
		{7, 20}:  f(e(1, 2), e(-3, 20), z, e(-3, 8), s(sub(s10, sa)), g(1, 5, -1), g(1, 20, 1)),
		{9, 20}:  f(e(1, 1), e(-1, 5), z, e(-1, 2), mul(s(sub(s10, sa)), s(sub(s10, sb))), g(1, 5, -1), g(2, 5, -1), g(1, 20, 1)),
		{11, 20}: f(z, e(1, 5), z, z, sa, g(1, 5, 1), g(2, 5, 1), g(1, 20, -1)),
		{13, 20}: f(e(1, 2), e(3, 20), z, e(-1, 8), mul(sb, s(add(s10, sb))), g(1, 5, 1), g(1, 20, -1)),
		{17, 20}: f(e(1, 2), e(1, 20), z, e(-1, 8), mul(sa, s(add(s10, sa))), g(2, 5, 1), g(1, 20, -1)),
		{19, 20}: f(e(1, 1), z, z, e(-1, 2), mul(sa, s(add(s10, sa)), s(add(s10, sb))), g(1, 20, -1)),

		{5, 24}:  f(e(1, 2), e(-1, 6), e(-1, 2), z, mul(s(sub(s2, one)), s(sub(s3, one))), g(1, 3, -1), g(1, 24, 1)),
		{7, 24}:  f(e(1, 2), e(-1, 4), e(-3, 8), z, mul(s(sub(s3, one)), s(sub(s3, s2))), g(1, 4, -1), g(1, 24, 1)),
		{11, 24}: f(e(1, 1), e(1, 12), e(-3, 8), z, mul(s(sub(s2, one)), s(sub(s3, s2))), g(1, 3, -1), g(1, 4, -1), g(1, 24, 1)),
		{13, 24}: f(z, e(2, 3), e(3, 8), z, s(add(s3, one)), g(1, 3, 1), g(1, 4, 1), g(1, 24, -1)),
		{17, 24}: f(e(1, 2), e(1, 1), e(3, 8), z, s(add(s2, one)), g(1, 4, 1), g(1, 24, -1)),
		{19, 24}: f(e(1, 2), e(11, 12), e(1, 2), z, s(add(s3, s2)), g(1, 3, 1), g(1, 24, -1)),
		{23, 24}: f(e(1, 1), e(3, 4), z, z, mul(s(add(s2, one)), s(add(s3, one)), s(add(s3, s2))), g(1, 24, -1)),

		{1, 30}:  f(e(-1, 2), e(-16, 15), e(9, 20), e(-1, 6), mul(sa, s(add(s15, c))), g(1, 3, 1), g(1, 5, 1)),
		{7, 30}:  f(e(-1, 2), e(-22, 15), e(3, 20), e(-1, 6), mul(sb, s(add(s15, d))), g(1, 3, 1), g(2, 5, 1)),
		{11, 30}: f(e(1, 2), e(-11, 15), e(-1, 20), e(-1, 3), mul(sa, s(sub(s15, c))), g(1, 3, -1), g(1, 5, 1)),
		{13, 30}: f(e(1, 2), e(-41, 30), e(7, 20), e(-2, 3), mul(b, s(sub(s15, d))), g(1, 3, 1), g(2, 5, -1)),
		{17, 30}: f(e(1, 2), e(-2, 15), e(-7, 20), e(-1, 3), mul(sb, s(sub(s15, d))), g(1, 3, -1), g(2, 5, 1)),
		{19, 30}: f(e(1, 2), e(-23, 30), e(1, 20), e(-2, 3), mul(a, s(sub(s15, c))), g(1, 3, 1), g(1, 5, -1)),
		{23, 30}: f(e(3, 2), e(-1, 30), e(-3, 20), e(-5, 6), mul(b, s(add(s15, d))), g(1, 3, -1), g(2, 5, -1)),
		{29, 30}: f(e(3, 2), e(-13, 30), e(-9, 20), e(-5, 6), mul(a, s(add(s15, c))), g(1, 3, -1), g(1, 5, -1)),

		{11, 60}: f(e(1, 2), e(-5, 4), e(-1, 2), e(-17, 24), mul(sa, s(sub(s15, c)), s(sub(s10, sa))), g(1, 3, -1), g(1, 60, 1)),
		{13, 60}: f(e(1, 2), e(-13, 10), e(-3, 20), e(-3, 8), mul(sb, s(add(s3, one)), s(sub(s5, s3)), s(sub(s15, d))), g(2, 5, -1), g(7, 60, 1)),
		{17, 60}: f(e(1, 2), e(-3, 4), e(-1, 2), e(-11, 24), mul(sb, s(sub(s15, d)), s(sub(s10, sb))), g(1, 3, -1), g(7, 60, 1)),
		{19, 60}: f(e(1, 2), e(-7, 5), e(-9, 20), e(-5, 8), mul(sa, s(sub(s3, one)), s(sub(s5, s3)), s(sub(s15, c))), g(1, 5, -1), g(1, 60, 1)),
		{23, 60}: f(e(1, 1), e(-11, 20), e(-3, 20), e(-7, 12), mul(sb, s(add(s3, one)), s(sub(s5, s3)), s(sub(s10, sb))), g(1, 3, -1), g(2, 5, -1), g(7, 60, 1)),
		{29, 60}: f(e(1, 1), e(-23, 20), e(-9, 20), e(-7, 12), mul(sa, s(sub(s3, one)), s(sub(s5, s3)), s(sub(s10, sa))), g(1, 3, -1), g(1, 5, -1), g(1, 60, 1)),
		{31, 60}: f(z, e(-1, 10), e(9, 20), e(-1, 6), mul(sa, s(add(s15, c))), g(1, 3, 1), g(1, 5, 1), g(1, 60, -1)),
		{37, 60}: f(z, e(-7, 10), e(3, 20), e(-1, 6), mul(sb, s(add(s15, d))), g(1, 3, 1), g(2, 5, 1), g(7, 60, -1)),
		{41, 60}: f(e(1, 2), e(3, 20), e(9, 20), e(-1, 8), mul(sa, s(add(s10, sa))), g(1, 5, 1), g(1, 60, -1)),
		{43, 60}: f(e(1, 2), e(-1, 2), e(1, 2), e(-7, 24), mul(sb, s(sub(s3, one)), s(add(s5, s3))), g(1, 3, 1), g(7, 60, -1)),
		{47, 60}: f(e(1, 2), e(1, 20), e(3, 20), e(-3, 8), mul(sb, s(add(s10, sb))), g(2, 5, 1), g(7, 60, -1)),
		{49, 60}: f(e(1, 2), z, e(1, 2), e(-1, 24), mul(sa, s(add(s3, one)), s(add(s5, s3))), g(1, 3, 1), g(1, 60, -1)),
		{53, 60}: f(e(1, 1), e(-5, 4), z, e(-3, 4), mul(b, s(sub(s3, one)), s(add(s5, s3)), s(add(s15, d)), s(add(s10, sb))), g(7, 60, -1)),
		{59, 60}: f(e(1, 1), e(-5, 4), z, e(-3, 4), mul(a, s(add(s3, one)), s(add(s5, s3)), s(add(s15, c)), s(add(s10, sa))), g(1, 60, -1)),
	}
}

// maxGammaShift bounds the recurrence used to move a rational argument
// into (0, 1).
const maxGammaShift = 100

func gammaOf(p, q int64) *term.Term { return term.Gamma.Of(frac(p, q)) }

// gammaRat rewrites Gamma(x) for rational non-integer x through the
// recurrence Gamma(x + 1) = x Gamma(x) and the closed forms above.
func (s *Session) gammaRat(x *big.Rat) *term.Term {
	fl := new(big.Int).Div(x.Num(), x.Denom())
	if !fl.IsInt64() || fl.Int64() > maxGammaShift || fl.Int64() < -maxGammaShift {
		return term.Gamma.Of(ratTerm(x))
	}
	n := fl.Int64()
	if n != 0 {
		c := new(big.Rat).Sub(x, new(big.Rat).SetInt64(n))
		r := big.NewRat(1, 1)
		if n > 0 {
			for k := int64(0); k < n; k++ {
				r.Mul(r, new(big.Rat).Add(c, big.NewRat(k, 1)))
			}
		} else {
			for k := int64(0); k < -n; k++ {
				r.Quo(r, new(big.Rat).Add(c, big.NewRat(n+k, 1)))
			}
		}
		return s.Simplify(mul(ratTerm(r), s.gammaRat(c)))
	}
	if !x.Num().IsInt64() || !x.Denom().IsInt64() {
		return term.Gamma.Of(ratTerm(x))
	}
	p, q := x.Num().Int64(), x.Denom().Int64()
	form, ok := gammaTable[[2]int64{p, q}]
	if !ok {
		return gammaOf(p, q)
	}
	factors := []*term.Term{
		pow(term.Pi, frac(form.pi[0], form.pi[1])),
		pow(num(2), frac(form.two[0], form.two[1])),
		pow(num(3), frac(form.three[0], form.three[1])),
		pow(num(5), frac(form.five[0], form.five[1])),
		form.radical,
	}
	for _, gp := range form.gammas {
		factors = append(factors, pow(gammaOf(gp.p, gp.q), num(gp.e)))
	}
	return s.Simplify(mul(factors...))
}
