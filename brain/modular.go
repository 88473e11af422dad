package brain

import (
	"fmt"
	"math/big"

	"github.com/njchilds90/gogrim/algebraic"
	"github.com/njchilds90/gogrim/internal/numtheory"
	"github.com/njchilds90/gogrim/term"
)

// maxCharacterModulus bounds the modulus of Dirichlet characters that are
// evaluated by discrete logarithms.
const maxCharacterModulus = 100000

// ============================================================
// Modular forms
// ============================================================

// reducedQuadratic moves tau into the fundamental domain and returns the
// key "a b c" of the reduced point a + b sqrt(c), the point itself and the
// transformation.
func (s *Session) reducedQuadratic(tau *term.Term) (string, *algebraic.Number, algebraic.SL2Z, bool) {
	v, err := s.EvaluateAlgebraic(tau)
	if err != nil {
		return "", nil, algebraic.SL2Z{}, false
	}
	v, g, err := s.budget.ReduceSL2Z(v)
	if err != nil || v.Degree() != 2 {
		return "", nil, algebraic.SL2Z{}, false
	}
	a, b, c, ok := v.AsQuadratic()
	if !ok {
		return "", nil, algebraic.SL2Z{}, false
	}
	return fmt.Sprintf("%s %s %s", a.RatString(), b.RatString(), c), v, g, true
}

func cube(x *term.Term) *term.Term { return pow(x, num(3)) }

func rootOf(a, p, q int64) *term.Term { return pow(num(a), frac(p, q)) }

var (
	sqrt2 = sqrt(num(2))
	sqrt3 = sqrt(num(3))

	modularJTable = map[string]*term.Term{
		"-1/2 1/2 -3":   num(0),
		"0 1 -1":        num(1728),
		"0 2 -1":        num(287496),
		"0 3 -1":        mul(num(64), pow(add(num(2), sqrt3), num(2)), cube(add(num(21), mul(num(20), sqrt3)))),
		"0 4 -1":        mul(num(27), cube(add(num(724), mul(num(513), sqrt2)))),
		"0 1 -2":        num(8000),
		"0 2 -2":        mul(num(1000), cube(add(num(19), mul(num(13), sqrt2)))),
		"0 2 -3":        mul(num(13500), cube(add(num(30), mul(num(17), sqrt3)))),
		"-1/2 1 -1":     mul(num(27), cube(sub(num(724), mul(num(513), sqrt2)))),
		"0 1 -6":        mul(num(432), cube(add(num(14), mul(num(9), sqrt2))), sub(num(2), sqrt2)),
		"-1/2 1/2 -7":   num(-3375),
		"-1/2 1/2 -11":  num(-32768),
		"-1/2 1/2 -19":  num(-884736),
		"-1/2 1/2 -43":  num(-884736000),
		"-1/2 1/2 -67":  num(-147197952000),
		"-1/2 1/2 -163": num(-262537412640768000),
	}

	modularLambdaTable = map[string]*term.Term{
		"0 1 -1":      frac(1, 2),
		"-1/2 1/2 -3": neg(expTwoPiI(1, 3)),
		"0 2 -1":      sub(num(17), mul(num(12), sqrt2)),
		"0 1 -2":      pow(sub(sqrt2, num(1)), num(2)),
		"0 1 -3":      div(pow(sub(sqrt3, num(1)), num(2)), num(8)),
		"0 1 -5":      sub(frac(1, 2), sqrt(sub(sqrt(num(5)), num(2)))),
		"0 1 -6":      mul(pow(sub(num(2), sqrt3), num(2)), pow(sub(sqrt3, sqrt2), num(2))),
		"0 1 -7":      div(pow(sub(num(3), sqrt(num(7))), num(2)), num(32)),
		"0 2 -2":      pow(sub(add(num(1), sqrt2), sqrt(add(mul(num(2), sqrt2), num(2)))), num(4)),
		"0 3 -1":      div(mul(pow(sub(sqrt2, rootOf(3, 1, 4)), num(2)), pow(sub(sqrt3, num(1)), num(2))), num(4)),
		"0 1 -10":     mul(pow(sub(sqrt(num(10)), num(3)), num(2)), pow(sub(sqrt2, num(1)), num(4))),
		"0 2 -3":      mul(pow(sub(sqrt3, sqrt2), num(4)), pow(sub(sqrt2, num(1)), num(4))),
		"0 1/2 -6":    sub(num(1), mul(pow(sub(num(2), sqrt3), num(2)), pow(add(sqrt2, sqrt3), num(2)))),
		"0 1/2 -10":   sub(num(1), mul(pow(add(num(1), sqrt2), num(4)), pow(sub(sqrt(num(10)), num(3)), num(2)))),
	}

	// etaI is eta(i) = Gamma(1/4) / (2 pi^(3/4)).
	etaI = div(term.Gamma.Of(frac(1, 4)), mul(num(2), pow(term.Pi, frac(3, 4))))

	dedekindEtaTable = map[string]*term.Term{
		"0 1 -1": etaI,
		"0 2 -1": div(etaI, rootOf(2, 3, 8)),
		"0 3 -1": div(etaI, mul(rootOf(3, 3, 8), pow(add(num(2), sqrt3), frac(1, 12)))),
		"0 4 -1": div(etaI, mul(rootOf(2, 13, 16), pow(add(num(1), sqrt2), frac(1, 4)))),
		"0 5 -1": div(etaI, sqrt(mul(num(5), term.GoldenRatio))),
		"0 6 -1": mul(div(num(1), rootOf(6, 3, 8)),
			pow(sub(div(sub(num(5), sqrt3), num(2)), div(rootOf(3, 3, 4), sqrt2)), frac(1, 6)), etaI),
		"0 7 -1": mul(div(num(1), sqrt(num(7))),
			pow(add(frac(-7, 2), sqrt(num(7)), mul(frac(1, 2), sqrt(add(num(-7), mul(num(4), sqrt(num(7))))))), frac(1, 4)), etaI),
		"0 8 -1": mul(div(num(1), rootOf(2, 41, 32)),
			div(sqrt(sub(rootOf(2, 1, 4), num(1))), pow(add(num(1), sqrt2), frac(1, 8))), etaI),
		"0 16 -1": mul(div(num(1), rootOf(2, 113, 64)),
			div(pow(sub(rootOf(2, 1, 4), num(1)), frac(1, 4)), pow(add(num(1), sqrt2), frac(1, 16))),
			sqrt(add(neg(rootOf(2, 5, 8)), sqrt(add(num(1), sqrt2)))), etaI),
		"0 1 -3": div(mul(div(rootOf(3, 1, 8), rootOf(2, 4, 3)), pow(term.Gamma.Of(frac(1, 3)), frac(3, 2))), term.Pi),
		"-1/2 1/2 -3": div(mul(term.Exp.Of(div(mul(neg(term.Pi), term.ConstI), num(24))), rootOf(3, 1, 8),
			pow(term.Gamma.Of(frac(1, 3)), frac(3, 2))), mul(num(2), term.Pi)),
	}
)

func (s *Session) simpleModularJ(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) == 1 {
		if key, _, _, ok := s.reducedQuadratic(args[0]); ok {
			if v, ok := modularJTable[key]; ok {
				return v
			}
		}
	}
	return term.ModularJ.Of(args...)
}

func (s *Session) simpleModularLambda(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) == 1 {
		if key, _, g, ok := s.reducedQuadratic(args[0]); ok {
			if v, ok := modularLambdaTable[key]; ok {
				// lambda is invariant under Gamma(2); the six cosets of
				// SL2(Z) / Gamma(2) permute its values.
				parity := [4]uint{g.A.Bit(0), g.B.Bit(0), g.C.Bit(0), g.D.Bit(0)}
				switch parity {
				case [4]uint{0, 1, 1, 0}:
					v = sub(num(1), v)
				case [4]uint{1, 0, 1, 1}:
					v = div(num(1), v)
				case [4]uint{0, 1, 1, 1}:
					v = div(num(1), sub(num(1), v))
				case [4]uint{1, 1, 1, 0}:
					v = sub(num(1), div(num(1), v))
				case [4]uint{1, 1, 0, 1}:
					v = div(v, sub(v, num(1)))
				}
				return s.Simplify(v)
			}
		}
	}
	return term.ModularLambda.Of(args...)
}

func (s *Session) simpleDedekindEta(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) != 1 {
		return term.DedekindEta.Of(args...)
	}
	key, v, g, ok := s.reducedQuadratic(args[0])
	if !ok {
		return term.DedekindEta.Of(args...)
	}
	val, ok := dedekindEtaTable[key]
	if !ok {
		a, b, c, _ := v.AsQuadratic()
		if a.Cmp(big.NewRat(-1, 2)) != 0 {
			return term.DedekindEta.Of(args...)
		}
		// eta(t - 1/2) = exp(-pi i/24) eta(2t)^3 / (eta(t) eta(4t))
		t := mul(ratTerm(b), sqrt(term.BigInt(c)))
		val = s.Simplify(div(
			mul(term.Exp.Of(div(mul(neg(term.Pi), term.ConstI), num(24))), cube(term.DedekindEta.Of(mul(num(2), t)))),
			mul(term.DedekindEta.Of(t), term.DedekindEta.Of(mul(num(4), t)))))
	}
	tau, ok := s.AlgebraicToTerm(v)
	if !ok {
		return term.DedekindEta.Of(args...)
	}
	// eta(g tau) = epsilon(g) sqrt(c tau + d) eta(tau)
	eps := term.DedekindEtaEpsilon.Of(term.BigInt(g.A), term.BigInt(g.B), term.BigInt(g.C), term.BigInt(g.D))
	return s.Simplify(mul(eps, sqrt(add(mul(term.BigInt(g.C), tau), term.BigInt(g.D))), val))
}

// etaEpsilonExponent returns r with epsilon(a, b, c, d) = exp(2 pi i r/24)
// for a matrix of determinant one.
func etaEpsilonExponent(a, b, c, d int64) (int64, bool) {
	if a*d-b*c != 1 {
		return 0, false
	}
	if c < 0 || c == 0 && d < 0 {
		a, b, c, d = -a, -b, -c, -d
	}
	if c == 0 {
		return numtheory.Mod(b, 24), true
	}
	aa, bb, cc, dd := numtheory.Mod(a, 24), numtheory.Mod(b, 24), numtheory.Mod(c, 24), numtheory.Mod(d, 24)
	var u int
	if cc%2 == 1 {
		u = numtheory.Kronecker(big.NewInt(a), big.NewInt(c))
		aa = aa*bb + 2*aa*cc - 3*cc + cc*dd*(1-aa*aa)
	} else {
		u = numtheory.Kronecker(big.NewInt(c), big.NewInt(a))
		aa = aa*bb - aa*cc + 3*aa - 3 + cc*dd*(1-aa*aa)
	}
	if u == -1 {
		aa += 12
	}
	return numtheory.Mod(aa, 24), true
}

func (s *Session) simpleDedekindEtaEpsilon(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) == 4 {
		var m [4]int64
		ok := true
		for i, x := range args {
			m[i], ok = x.Int64()
			if !ok {
				break
			}
		}
		if ok {
			r, ok := etaEpsilonExponent(m[0], m[1], m[2], m[3])
			if !ok {
				return term.Undefined
			}
			return expTwoPiI(r, 24)
		}
	}
	return term.DedekindEtaEpsilon.Of(args...)
}

// ============================================================
// Complete elliptic integrals
// ============================================================

func (s *Session) simpleEllipticK(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) != 1 {
		return term.EllipticK.Of(args...)
	}
	z := args[0]
	g2 := pow(term.Gamma.Of(frac(1, 4)), num(2))
	switch {
	case z.IsInt(0):
		return div(term.Pi, num(2))
	case z.IsInt(1):
		return term.Infinity
	case z.IsInt(-1):
		return div(g2, mul(num(4), sqrt(mul(num(2), term.Pi))))
	case z.IsInt(2):
		return mul(div(g2, mul(num(4), sqrt(mul(num(2), term.Pi)))), sub(num(1), term.ConstI))
	case s.Equal(z, frac(1, 2)) == True:
		return div(g2, mul(num(4), sqrt(term.Pi)))
	case s.Equal(z, sub(num(17), mul(num(12), sqrt2))) == True:
		return div(mul(add(num(2), sqrt2), g2), mul(num(16), sqrt(term.Pi)))
	case s.Equal(z, div(sub(num(4), mul(num(3), sqrt2)), num(8))) == True:
		return div(g2, mul(num(4), rootOf(2, 1, 4), sqrt(term.Pi)))
	}
	return term.EllipticK.Of(args...)
}

func (s *Session) simpleEllipticE(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	if len(args) != 1 {
		return term.EllipticE.Of(args...)
	}
	z := args[0]
	g2 := pow(term.Gamma.Of(frac(1, 4)), num(2))
	lemniscate := add(div(g2, mul(num(8), sqrt(term.Pi))), div(pow(term.Pi, frac(3, 2)), g2))
	switch {
	case z.IsInt(0):
		return div(term.Pi, num(2))
	case z.IsInt(1):
		return num(1)
	case z.IsInt(-1):
		return mul(sqrt2, lemniscate)
	case z.IsInt(2):
		return mul(div(mul(sqrt2, pow(term.Pi, frac(3, 2))), g2), add(num(1), term.ConstI))
	case s.Equal(z, frac(1, 2)) == True:
		return lemniscate
	}
	return term.EllipticE.Of(args...)
}

// ============================================================
// Dirichlet characters
// ============================================================

// conreyGenerator returns the least primitive root modulo p^2, which
// generates (Z/p^e Z)^* for every e.
func conreyGenerator(p int64) int64 {
	p2 := p * p
	phi := p * (p - 1)
	factors := numtheory.Factor(phi)
	for g := int64(2); g < p2; g++ {
		if numtheory.GCD(g, p) != 1 {
			continue
		}
		primitive := true
		for _, f := range factors {
			if new(big.Int).Exp(big.NewInt(g), big.NewInt(phi/f[0]), big.NewInt(p2)).Int64() == 1 {
				primitive = false
				break
			}
		}
		if primitive {
			return g
		}
	}
	return 0
}

// discreteLog returns the exponent k < order with g^k = x mod m.
func discreteLog(g, x, m, order int64) (int64, bool) {
	x = numtheory.Mod(x, m)
	acc := int64(1) % m
	for k := int64(0); k < order; k++ {
		if acc == x {
			return k, true
		}
		acc = acc * g % m
	}
	return 0, false
}

// twoAdicLog writes x = +-5^k mod 2^e and returns the sign bit and k.
func twoAdicLog(x, e int64) (int64, int64) {
	m := int64(1) << e
	x = numtheory.Mod(x, m)
	sign := int64(0)
	if x%4 == 3 {
		sign = 1
		x = numtheory.Mod(-x, m)
	}
	k, _ := discreteLog(5, x, m, m/4)
	return sign, k
}

// conreyPhase returns r with chi_q(p, n) = exp(2 pi i r) in the Conrey
// labelling, or ok false when n is not a unit mod q.
func conreyPhase(q, p, n int64) (*big.Rat, bool) {
	r := new(big.Rat)
	if numtheory.GCD(n, q) != 1 {
		return nil, false
	}
	for _, f := range numtheory.Factor(q) {
		pr, e := f[0], f[1]
		m := int64(1)
		for i := int64(0); i < e; i++ {
			m *= pr
		}
		if pr == 2 {
			if e == 1 {
				continue
			}
			sp, kp := twoAdicLog(p, e)
			sn, kn := twoAdicLog(n, e)
			r.Add(r, big.NewRat(sp*sn, 2))
			if e > 2 {
				r.Add(r, big.NewRat(kp*kn, m/4))
			}
			continue
		}
		phi := m / pr * (pr - 1)
		g := conreyGenerator(pr)
		kp, _ := discreteLog(g, p, m, phi)
		kn, _ := discreteLog(g, n, m, phi)
		r.Add(r, big.NewRat(kp*kn%phi, phi))
	}
	return r, true
}

func (s *Session) simpleDirichletCharacter(args []*term.Term) *term.Term {
	args = s.simplifyAll(args)
	keep := term.DirichletCharacter.Of(args...)
	if len(args) != 3 {
		return keep
	}
	q, qok := args[0].Int64()
	p, pok := args[1].Int64()
	n, nok := args[2].Int64()
	if !qok || !pok || !nok || q < 1 || q > maxCharacterModulus || numtheory.GCD(p, q) != 1 {
		return keep
	}
	r, ok := conreyPhase(q, numtheory.Mod(p, q), numtheory.Mod(n, q))
	if !ok {
		return num(0)
	}
	if !r.Num().IsInt64() || !r.Denom().IsInt64() {
		return keep
	}
	return expTwoPiI(r.Num().Int64(), r.Denom().Int64())
}
