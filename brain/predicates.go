package brain

import (
	"go.uber.org/zap"

	"github.com/njchilds90/gogrim/term"
)

// Predicates answer True, False or Unknown. Each one consults, in order,
// the literal shape of the term, the fact set, structural rules on the
// head, and finally a numeric enclosure.

var positiveConstants = term.NewHashSet(term.Pi, term.ConstE, term.ConstGamma, term.ConstCatalan, term.GoldenRatio)

func isComplexConstant(x *term.Term) bool {
	return positiveConstants.Contains(x) || x.Equal(term.ConstI)
}

func (s *Session) has(f *term.Term) bool { return s.facts.Contains(f) }

func (s *Session) all(args []*term.Term, pred func(*term.Term) Truth) bool {
	for _, a := range args {
		if pred(a) != True {
			return false
		}
	}
	return true
}

func oneOf(x *term.Term, heads ...*term.Term) bool {
	for _, h := range heads {
		if x.HasHead(h) {
			return true
		}
	}
	return false
}

// ============================================================
// Zero and infinity
// ============================================================

func (s *Session) IsZero(x *term.Term) Truth {
	if x.IsInteger() {
		return truthOf(x.Sign() == 0)
	}
	zero := term.Int(0)
	switch {
	case s.has(term.Equal.Of(x, zero)):
		return True
	case s.has(term.NotEqual.Of(x, zero)), s.has(term.Greater.Of(x, zero)), s.has(term.Less.Of(x, zero)):
		return False
	}
	if s.IsInteger(x) == False || s.IsPositive(x) == True {
		return False
	}
	if z, ok := s.complexEnclosure(x); ok && z.NonZero() {
		return False
	}
	if s.IsInfinity(x) == True {
		return False
	}
	return Unknown
}

func (s *Session) IsNotZero(x *term.Term) Truth { return s.IsZero(x).Not() }

// IsInfinity reports whether x is UnsignedInfinity or c Infinity for a
// nonzero complex c.
func (s *Session) IsInfinity(x *term.Term) Truth {
	switch {
	case x.Equal(term.Infinity), x.Equal(term.UnsignedInfinity):
		return True
	case x.Equal(term.Undefined), s.has(term.Element.Of(x, term.CC)):
		return False
	}
	if (x.Is(term.Pos, 1) || x.Is(term.Neg, 1)) && s.IsInfinity(x.Arg(0)) == True {
		return True
	}
	if x.HasHead(term.Mul) {
		args := x.Args()
		some := false
		for _, a := range args {
			if s.IsInfinity(a) == True {
				some = true
				break
			}
		}
		if some && s.all(args, func(a *term.Term) Truth {
			if s.IsInfinity(a) == True || s.IsComplex(a) == True && s.IsNotZero(a) == True {
				return True
			}
			return Unknown
		}) {
			return True
		}
	}
	if _, ok := s.complexEnclosure(x); ok {
		return False
	}
	return Unknown
}

// ============================================================
// Signs
// ============================================================

func (s *Session) IsNonNegative(x *term.Term) Truth {
	if x.IsInteger() {
		return truthOf(x.Sign() >= 0)
	}
	zero := term.Int(0)
	switch {
	case positiveConstants.Contains(x):
		return True
	case s.has(term.GreaterEqual.Of(x, zero)), s.has(term.Greater.Of(x, zero)):
		return True
	case s.has(term.Less.Of(x, zero)):
		return False
	}
	if s.IsReal(x) == True {
		if oneOf(x, term.Pos, term.Add, term.Mul, term.Exp, term.Sqrt) && s.all(x.Args(), s.IsNonNegative) {
			return True
		}
		if x.Is(term.Div, 2) && s.IsNonNegative(x.Arg(0)) == True && s.IsPositive(x.Arg(1)) == True {
			return True
		}
		if x.Is(term.Pow, 2) && s.IsPositive(x.Arg(0)) == True {
			return True
		}
	}
	if z, ok := s.complexEnclosure(x); ok {
		if z.Im.IsZero() && z.Re.NonNegative() {
			return True
		}
		if !z.Im.ContainsZero() || z.Re.Negative() {
			return False
		}
	}
	return Unknown
}

func (s *Session) IsPositive(x *term.Term) Truth {
	if x.IsInteger() {
		return truthOf(x.Sign() > 0)
	}
	zero := term.Int(0)
	switch {
	case positiveConstants.Contains(x), s.has(term.Greater.Of(x, zero)):
		return True
	case s.has(term.LessEqual.Of(x, zero)), s.has(term.Less.Of(x, zero)):
		return False
	}
	if s.IsReal(x) == True {
		if (x.Is(term.Exp, 1) || x.Is(term.Cosh, 1)) && s.IsReal(x.Arg(0)) == True {
			return True
		}
		if oneOf(x, term.Pos, term.Add, term.Mul, term.Sqrt) && s.all(x.Args(), s.IsPositive) {
			return True
		}
		if x.Is(term.Div, 2) && s.IsPositive(x.Arg(0)) == True && s.IsPositive(x.Arg(1)) == True {
			return True
		}
		if x.Is(term.Pow, 2) && s.IsPositive(x.Arg(0)) == True {
			return True
		}
	}
	if z, ok := s.complexEnclosure(x); ok {
		if z.Im.IsZero() && z.Re.Positive() {
			return True
		}
		if !z.Im.ContainsZero() || z.Re.NonPositive() {
			return False
		}
	}
	return Unknown
}

func (s *Session) IsNegative(x *term.Term) Truth {
	if x.IsInteger() {
		return truthOf(x.Sign() < 0)
	}
	zero := term.Int(0)
	switch {
	case positiveConstants.Contains(x):
		return False
	case s.has(term.Less.Of(x, zero)):
		return True
	case s.has(term.GreaterEqual.Of(x, zero)), s.has(term.Greater.Of(x, zero)):
		return False
	}
	if z, ok := s.complexEnclosure(x); ok {
		if z.Im.IsZero() && z.Re.Negative() {
			return True
		}
		if !z.Im.ContainsZero() || z.Re.NonNegative() {
			return False
		}
	}
	return Unknown
}

func (s *Session) IsNonPositive(x *term.Term) Truth {
	if x.IsInteger() {
		return truthOf(x.Sign() <= 0)
	}
	zero := term.Int(0)
	switch {
	case positiveConstants.Contains(x):
		return False
	case s.has(term.LessEqual.Of(x, zero)), s.has(term.Less.Of(x, zero)):
		return True
	case s.has(term.Greater.Of(x, zero)):
		return False
	}
	if z, ok := s.complexEnclosure(x); ok {
		if z.Im.IsZero() && z.Re.NonPositive() {
			return True
		}
		if !z.Im.ContainsZero() || z.Re.Positive() {
			return False
		}
	}
	return Unknown
}

// ============================================================
// Number domains
// ============================================================

func (s *Session) IsInteger(x *term.Term) Truth {
	switch {
	case x.IsInteger(), s.has(term.Element.Of(x, term.ZZ)):
		return True
	case s.has(term.NotElement.Of(x, term.ZZ)):
		return False
	}
	if oneOf(x, term.Pos, term.Neg, term.Add, term.Sub, term.Mul) && s.all(x.Args(), s.IsInteger) {
		return True
	}
	if x.Is(term.Pow, 2) {
		base, exp := x.Arg(0), x.Arg(1)
		if s.IsInteger(base) == True && s.IsInteger(exp) == True && s.IsNonNegative(exp) == True {
			return True
		}
	}
	if x.Is(term.Factorial, 1) && s.IsInteger(x.Arg(0)) == True && s.IsNonNegative(x.Arg(0)) == True {
		return True
	}
	if isComplexConstant(x) {
		return False
	}
	if z, ok := s.complexEnclosure(x); ok && !(z.Re.ContainsInteger() && z.Im.ContainsZero()) {
		return False
	}
	if s.IsInfinity(x) == True || x.Equal(term.Undefined) {
		return False
	}
	return Unknown
}

var smallSquares = []int64{0, 1, 4, 9, 16, 25, 36, 49, 64, 81, 100}

func (s *Session) IsRational(x *term.Term) Truth {
	switch {
	case s.IsInteger(x) == True, s.has(term.Element.Of(x, term.QQ)):
		return True
	case s.has(term.NotElement.Of(x, term.QQ)), x.Equal(term.Pi), x.Equal(term.ConstE):
		return False
	}
	if oneOf(x, term.Pos, term.Neg, term.Add, term.Sub, term.Mul) && s.all(x.Args(), s.IsRational) {
		return True
	}
	if x.Is(term.Div, 2) {
		p, q := x.Arg(0), x.Arg(1)
		if s.IsRational(p) == True && s.IsRational(q) == True && s.IsNotZero(q) == True {
			return True
		}
	}
	if x.Is(term.Pow, 2) {
		base, exp := x.Arg(0), x.Arg(1)
		if s.IsRational(base) == True && s.IsInteger(exp) == True &&
			(s.IsNotZero(base) == True || s.IsNonNegative(exp) == True) {
			return True
		}
	}
	if x.Is(term.Sqrt, 1) {
		if v, ok := x.Arg(0).Int64(); ok {
			if v < 0 {
				return False
			}
			if v <= 100 {
				for _, sq := range smallSquares {
					if v == sq {
						return True
					}
				}
				return False
			}
		}
	}
	if s.IsInfinity(x) == True || x.Equal(term.Undefined) {
		return False
	}
	return Unknown
}

func (s *Session) IsAlgebraic(x *term.Term) Truth {
	switch {
	case s.IsInteger(x) == True, s.has(term.Element.Of(x, term.Alg)):
		return True
	case s.has(term.NotElement.Of(x, term.Alg)), x.Equal(term.Pi), x.Equal(term.ConstE):
		return False
	case x.Equal(term.ConstI), x.Equal(term.GoldenRatio):
		return True
	}
	if oneOf(x, term.Pos, term.Neg, term.Add, term.Sub, term.Mul) && s.all(x.Args(), s.IsAlgebraic) {
		return True
	}
	if x.Is(term.Div, 2) {
		p, q := x.Arg(0), x.Arg(1)
		if s.IsAlgebraic(p) == True && s.IsAlgebraic(q) == True && s.IsNotZero(q) == True {
			return True
		}
	}
	if x.Is(term.Pow, 2) {
		base, exp := x.Arg(0), x.Arg(1)
		if s.IsAlgebraic(base) == True {
			if s.IsRational(exp) == True && (s.IsNotZero(base) == True || s.IsNonNegative(exp) == True) {
				return True
			}
			// Gelfond-Schneider
			if s.IsAlgebraic(exp) == True && s.IsRational(exp) == False &&
				s.IsNotZero(base) == True && s.Equal(base, term.Int(1)) == False {
				return False
			}
		}
		if s.IsComplex(base) == True && s.IsAlgebraic(base) == False &&
			s.IsRational(exp) == True && s.IsNotZero(exp) == True {
			return False
		}
	}
	if x.Is(term.Sqrt, 1) {
		return s.IsAlgebraic(x.Arg(0))
	}
	if x.Is(term.Exp, 1) {
		v := x.Arg(0)
		if s.IsAlgebraic(v) == True && s.IsNotZero(v) == True {
			return False
		}
		if s.IsRational(s.Simplify(term.Div.Of(v, term.Mul.Of(term.Pi, term.ConstI)))) == True {
			return True
		}
	}
	if oneOf(x, term.Sin, term.Cos, term.Tan, term.Cot, term.Csc, term.Sec) && x.NumArgs() == 1 {
		v := x.Arg(0)
		if s.IsAlgebraic(v) == True && s.IsNotZero(v) == True {
			return False
		}
	}
	if x.Is(term.Log, 1) {
		v := x.Arg(0)
		if s.IsAlgebraic(v) == True && s.Equal(v, term.Int(1)) == False {
			return False
		}
	}
	if s.IsInfinity(x) == True || x.Equal(term.Undefined) {
		return False
	}
	return Unknown
}

func (s *Session) IsReal(x *term.Term) Truth {
	switch {
	case s.IsRational(x) == True, s.has(term.Element.Of(x, term.RR)):
		return True
	case s.has(term.NotElement.Of(x, term.RR)):
		return False
	case x.Equal(term.Pi), x.Equal(term.ConstGamma), x.Equal(term.ConstE), x.Equal(term.ConstCatalan):
		return True
	case x.Equal(term.ConstI):
		return False
	}
	if oneOf(x, term.Pos, term.Neg, term.Add, term.Sub, term.Mul, term.Exp, term.Sin, term.Cos) && s.all(x.Args(), s.IsReal) {
		return True
	}
	if x.Is(term.Div, 2) {
		p, q := x.Arg(0), x.Arg(1)
		if s.IsReal(p) == True && s.IsReal(q) == True && s.IsNotZero(q) == True {
			return True
		}
	}
	if x.Is(term.Sqrt, 1) && s.IsReal(x.Arg(0)) == True && s.IsNonNegative(x.Arg(0)) == True {
		return True
	}
	if x.Is(term.Log, 1) && s.IsReal(x.Arg(0)) == True && s.IsPositive(x.Arg(0)) == True {
		return True
	}
	if x.Is(term.Pow, 2) {
		base, exp := x.Arg(0), x.Arg(1)
		if s.IsReal(base) == True && s.IsReal(exp) == True {
			if s.IsPositive(base) == True && s.IsPositive(exp) == True {
				return True
			}
			if s.IsNotZero(base) == True && s.IsInteger(exp) == True {
				return True
			}
			if s.IsInteger(exp) == True && s.IsNonNegative(exp) == True {
				return True
			}
		}
	}
	if z, ok := s.complexEnclosure(x); ok {
		if z.Im.IsZero() {
			return True
		}
		if !z.Im.ContainsZero() {
			return False
		}
	}
	if s.IsInfinity(x) == True || x.Equal(term.Undefined) {
		return False
	}
	return Unknown
}

func (s *Session) IsComplex(x *term.Term) Truth {
	switch {
	case s.IsReal(x) == True, x.Equal(term.ConstI), s.has(term.Element.Of(x, term.CC)):
		return True
	case s.has(term.NotElement.Of(x, term.CC)):
		return False
	}
	if oneOf(x, term.Pos, term.Neg, term.Add, term.Sub, term.Mul, term.Sqrt, term.Exp, term.Sin, term.Cos) && s.all(x.Args(), s.IsComplex) {
		return True
	}
	if x.Is(term.Div, 2) {
		p, q := x.Arg(0), x.Arg(1)
		if s.IsComplex(p) == True && s.IsComplex(q) == True && s.IsNotZero(q) == True {
			return True
		}
	}
	if x.Is(term.Pow, 2) {
		base, exp := x.Arg(0), x.Arg(1)
		if s.IsComplex(base) == True && s.IsComplex(exp) == True &&
			(s.IsNotZero(base) == True || s.IsReal(exp) == True && s.IsPositive(exp) == True) {
			return True
		}
	}
	if x.Is(term.Log, 1) && s.IsComplex(x.Arg(0)) == True && s.IsNotZero(x.Arg(0)) == True {
		return True
	}
	if s.IsInfinity(x) == True || x.Equal(term.Undefined) {
		return False
	}
	return Unknown
}

// IsExtendedReal reports membership in RR together with +/-Infinity.
func (s *Session) IsExtendedReal(x *term.Term) Truth {
	if x.Equal(term.Infinity) || x.Equal(term.Neg.Of(term.Infinity)) {
		return True
	}
	v := s.IsReal(x)
	if v == True {
		return True
	}
	if v == False && s.IsComplex(x) == True {
		return False
	}
	return Unknown
}

// ============================================================
// Equality
// ============================================================

// Equal reports whether a and b denote the same mathematical object.
func (s *Session) Equal(a, b *term.Term) Truth {
	if a.Equal(b) {
		return True
	}
	if a.IsInteger() && b.IsInteger() {
		return False
	}
	switch {
	case s.has(term.Equal.Of(a, b)), s.has(term.Equal.Of(b, a)):
		return True
	case s.has(term.NotEqual.Of(a, b)), s.has(term.NotEqual.Of(b, a)):
		return False
	}

	if za, ok := s.complexEnclosure(a); ok {
		if zb, ok := s.complexEnclosure(b); ok {
			if !za.Overlaps(zb) {
				return False
			}
			if d, ok := s.complexEnclosure(term.Sub.Of(a, b)); ok && d.NonZero() {
				return False
			}
		}
	}

	wide := s.budget.Widen()
	if xa, err := s.evaluateAlgebraic(a, wide); err == nil {
		if xb, err := s.evaluateAlgebraic(b, wide); err == nil {
			same, err := wide.Equal(xa, xb)
			if err == nil {
				return truthOf(same)
			}
			s.log.Debug("exact comparison failed", zap.Stringer("a", a), zap.Stringer("b", b), zap.Error(err))
		}
	}

	if differ(s.IsRational(a), s.IsRational(b)) {
		return False
	}
	if s.IsRational(a) == True && s.IsRational(b) == True && differ(s.IsInteger(a), s.IsInteger(b)) {
		return False
	}
	ca, cb := s.IsComplex(a), s.IsComplex(b)
	if differ(ca, cb) {
		return False
	}
	if ca == True && cb == True && differ(s.IsReal(a), s.IsReal(b)) {
		return False
	}
	if differ(s.IsInfinity(a), s.IsInfinity(b)) {
		return False
	}
	return Unknown
}

// differ reports two known and different answers.
func differ(a, b Truth) bool { return a != Unknown && b != Unknown && a != b }

// ============================================================
// Order
// ============================================================

func (s *Session) decide(rel *term.Term) Truth {
	v := s.Simplify(rel)
	switch {
	case v.Equal(term.True):
		return True
	case v.Equal(term.False):
		return False
	}
	return Unknown
}

func (s *Session) Less(a, b *term.Term) Truth { return s.decide(term.Less.Of(a, b)) }

func (s *Session) LessEqual(a, b *term.Term) Truth { return s.decide(term.LessEqual.Of(a, b)) }

func (s *Session) Greater(a, b *term.Term) Truth { return s.decide(term.Greater.Of(a, b)) }

func (s *Session) GreaterEqual(a, b *term.Term) Truth {
	return s.decide(term.GreaterEqual.Of(a, b))
}

// ============================================================
// Set membership
// ============================================================

var smallPrimes = []int64{2, 3, 5, 7, 11, 13, 17, 19}

// Element reports whether x belongs to the set S.
func (s *Session) Element(x, S *term.Term) Truth {
	switch {
	case s.has(term.Element.Of(x, S)):
		return True
	case s.has(term.NotElement.Of(x, S)):
		return False
	case S.Equal(term.CC):
		return s.IsComplex(x)
	case S.Equal(term.RR):
		return s.IsReal(x)
	case S.Equal(term.QQ):
		return s.IsRational(x)
	case S.Equal(term.ZZ):
		return s.IsInteger(x)
	case S.Equal(term.HH):
		if v := s.IsComplex(x); v != True {
			return v
		}
		return s.IsPositive(term.Im.Of(x))
	case S.Equal(term.PP):
		if v := s.IsInteger(x); v != True {
			return v
		}
		if n, ok := x.Int64(); ok && n <= 20 {
			for _, p := range smallPrimes {
				if n == p {
					return True
				}
			}
			return False
		}
		return Unknown
	case S.Equal(term.Alg):
		return s.IsAlgebraic(x)
	case S.Is(term.ZZGreaterEqual, 1):
		if v := s.IsInteger(x); v != True {
			return v
		}
		return s.LessEqual(S.Arg(0), x)
	case S.Is(term.ZZLessEqual, 1):
		if v := s.IsInteger(x); v != True {
			return v
		}
		return s.LessEqual(x, S.Arg(0))
	case S.Is(term.Range, 2):
		if v := s.IsInteger(x); v != True {
			return v
		}
		if v := s.LessEqual(S.Arg(0), x); v != True {
			return v
		}
		return s.LessEqual(x, S.Arg(1))
	case S.NumArgs() == 2 && isInterval(S):
		return s.elementInterval(x, S)
	case S.HasHead(term.Set):
		found, all := false, true
		for _, y := range S.Args() {
			switch s.Equal(x, y) {
			case True:
				found = true
			case Unknown:
				all = false
			}
		}
		return anyAll(found, all)
	case S.HasHead(term.Union):
		if S.NumArgs() == 0 {
			return False
		}
		found, all := false, true
		for _, T := range S.Args() {
			switch s.Element(x, T) {
			case True:
				found = true
			case Unknown:
				all = false
			}
		}
		return anyAll(found, all)
	case S.HasHead(term.Intersection) && S.NumArgs() > 0:
		every, some := true, false
		for _, T := range S.Args() {
			switch s.Element(x, T) {
			case False:
				some = true
				every = false
			case Unknown:
				every = false
			}
		}
		if every {
			return True
		}
		if some {
			return False
		}
		return Unknown
	case S.Is(term.SetMinus, 2):
		v1 := s.Element(x, S.Arg(0))
		if v1 == False {
			return False
		}
		v2 := s.Element(x, S.Arg(1))
		if v1 == True && v2 == False {
			return True
		}
		if v1 == True && v2 == True {
			return False
		}
	}
	return Unknown
}

// anyAll combines membership checks: one True wins, all False loses.
func anyAll(found, allFalse bool) Truth {
	if found {
		return True
	}
	if allFalse {
		return False
	}
	return Unknown
}

func (s *Session) elementInterval(x, S *term.Term) Truth {
	a, b := S.Arg(0), S.Arg(1)
	if s.IsExtendedReal(a) != True || s.IsExtendedReal(b) != True {
		return Unknown
	}
	if v := s.IsExtendedReal(x); v != True {
		return v
	}
	closed := S.HasHead(term.ClosedInterval)
	if !closed && a.Equal(b) {
		return False
	}
	var v Truth
	if closed || S.HasHead(term.ClosedOpenInterval) {
		v = s.LessEqual(a, x)
	} else {
		v = s.Less(a, x)
	}
	if v != True {
		return v
	}
	if closed || S.HasHead(term.OpenClosedInterval) {
		return s.LessEqual(x, b)
	}
	return s.Less(x, b)
}
