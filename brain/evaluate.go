package brain

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/njchilds90/gogrim/algebraic"
	"github.com/njchilds90/gogrim/interval"
	"github.com/njchilds90/gogrim/term"
)

// ============================================================
// Term builders
// ============================================================

func num(n int64) *term.Term { return term.Int(n) }

func add(xs ...*term.Term) *term.Term { return term.Add.Of(xs...) }

func sub(a, b *term.Term) *term.Term { return term.Sub.Of(a, b) }

func mul(xs ...*term.Term) *term.Term { return term.Mul.Of(xs...) }

func div(a, b *term.Term) *term.Term { return term.Div.Of(a, b) }

func pow(a, b *term.Term) *term.Term { return term.Pow.Of(a, b) }

func neg(a *term.Term) *term.Term { return term.Neg.Of(a) }

func sqrt(a *term.Term) *term.Term { return term.Sqrt.Of(a) }

func frac(p, q int64) *term.Term { return div(num(p), num(q)) }

// ratTerm writes q as an integer, Div(p, q) or Neg(Div(-p, q)).
func ratTerm(q *big.Rat) *term.Term {
	if q.IsInt() {
		return term.BigInt(q.Num())
	}
	if q.Sign() < 0 {
		return neg(div(term.BigInt(new(big.Int).Neg(q.Num())), term.BigInt(q.Denom())))
	}
	return div(term.BigInt(q.Num()), term.BigInt(q.Denom()))
}

func unsupported(t *term.Term) error {
	return errors.Wrapf(ErrUnsupportedShape, "%s", t)
}

// ============================================================
// Rational evaluation
// ============================================================

const maxRationalExponent = 1 << 16

// evaluateRational reads t as an exact rational number.
func (s *Session) evaluateRational(t *term.Term) (*big.Rat, error) {
	if t.IsInteger() {
		return new(big.Rat).SetInt(t.IntValue()), nil
	}
	switch {
	case t.Is(term.Neg, 1):
		x, err := s.evaluateRational(t.Arg(0))
		if err != nil {
			return nil, err
		}
		return x.Neg(x), nil
	case t.Is(term.Sub, 2):
		x, y, err := s.rationalPair(t)
		if err != nil {
			return nil, err
		}
		return x.Sub(x, y), nil
	case t.HasHead(term.Add), t.HasHead(term.Mul):
		isAdd := t.HasHead(term.Add)
		acc := big.NewRat(0, 1)
		if !isAdd {
			acc.SetInt64(1)
		}
		for _, a := range t.Args() {
			x, err := s.evaluateRational(a)
			if err != nil {
				return nil, err
			}
			if isAdd {
				acc.Add(acc, x)
			} else {
				acc.Mul(acc, x)
			}
		}
		return acc, nil
	case t.Is(term.Div, 2):
		x, y, err := s.rationalPair(t)
		if err != nil {
			return nil, err
		}
		if y.Sign() == 0 {
			return nil, errors.Wrapf(ErrUnsupportedShape, "division by zero in %s", t)
		}
		return x.Quo(x, y), nil
	case t.Is(term.Pow, 2):
		e := s.Simplify(t.Arg(1))
		n, ok := e.Int64()
		if !ok {
			break
		}
		x, err := s.evaluateRational(t.Arg(0))
		if err != nil {
			return nil, err
		}
		return ratPow(x, n)
	case t.Is(term.Decimal, 1) && t.Arg(0).IsText():
		if q, ok := interval.ParseDecimal(t.Arg(0).TextValue()); ok {
			return q, nil
		}
	}
	return nil, unsupported(t)
}

func (s *Session) rationalPair(t *term.Term) (*big.Rat, *big.Rat, error) {
	x, err := s.evaluateRational(t.Arg(0))
	if err != nil {
		return nil, nil, err
	}
	y, err := s.evaluateRational(t.Arg(1))
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func ratPow(x *big.Rat, n int64) (*big.Rat, error) {
	if n > maxRationalExponent || n < -maxRationalExponent {
		return nil, errors.Wrapf(ErrUnsupportedShape, "exponent %d", n)
	}
	if n < 0 {
		if x.Sign() == 0 {
			return nil, errors.Wrap(ErrUnsupportedShape, "zero to a negative power")
		}
		x = new(big.Rat).Inv(x)
		n = -n
	}
	e := big.NewInt(n)
	p := new(big.Int).Exp(x.Num(), e, nil)
	q := new(big.Int).Exp(x.Denom(), e, nil)
	return new(big.Rat).SetFrac(p, q), nil
}

// ============================================================
// Polynomial evaluation
// ============================================================

// evaluatePoly reads t as a polynomial in v with rational coefficients.
func (s *Session) evaluatePoly(t, v *term.Term) (algebraic.QPoly, error) {
	switch {
	case t.Equal(v):
		return algebraic.X(), nil
	case t.IsInteger():
		return algebraic.ConstQ(new(big.Rat).SetInt(t.IntValue())), nil
	case t.Is(term.Neg, 1):
		p, err := s.evaluatePoly(t.Arg(0), v)
		if err != nil {
			return nil, err
		}
		return p.Neg(), nil
	case t.Is(term.Sub, 2):
		p, err := s.evaluatePoly(t.Arg(0), v)
		if err != nil {
			return nil, err
		}
		q, err := s.evaluatePoly(t.Arg(1), v)
		if err != nil {
			return nil, err
		}
		return p.Sub(q), nil
	case t.HasHead(term.Add), t.HasHead(term.Mul):
		isAdd := t.HasHead(term.Add)
		acc := algebraic.ConstQ(big.NewRat(0, 1))
		if !isAdd {
			acc = algebraic.ConstQ(big.NewRat(1, 1))
		}
		for _, a := range t.Args() {
			p, err := s.evaluatePoly(a, v)
			if err != nil {
				return nil, err
			}
			if isAdd {
				acc = acc.Add(p)
			} else {
				acc = acc.Mul(p)
			}
		}
		return acc, nil
	case t.Is(term.Div, 2):
		p, err := s.evaluatePoly(t.Arg(0), v)
		if err != nil {
			return nil, err
		}
		q, err := s.evaluateRational(t.Arg(1))
		if err != nil {
			return nil, err
		}
		if q.Sign() == 0 {
			return nil, errors.Wrapf(ErrUnsupportedShape, "division by zero in %s", t)
		}
		return p.Scale(new(big.Rat).Inv(q)), nil
	case t.Is(term.Pow, 2):
		p, err := s.evaluatePoly(t.Arg(0), v)
		if err != nil {
			return nil, err
		}
		e, err := s.evaluateRational(t.Arg(1))
		if err != nil {
			return nil, err
		}
		if !e.IsInt() || e.Sign() < 0 || !e.Num().IsInt64() || e.Num().Int64() > maxRationalExponent {
			return nil, unsupported(t)
		}
		return p.Pow(int(e.Num().Int64())), nil
	}
	c, err := s.evaluateRational(t)
	if err != nil {
		return nil, err
	}
	return algebraic.ConstQ(c), nil
}

// ============================================================
// Matrix evaluation
// ============================================================

const maxMatrixSize = 256

// evaluateMatrix reads t as a matrix with rational entries.
func (s *Session) evaluateMatrix(t *term.Term) (*algebraic.Matrix, error) {
	switch {
	case t.Is(term.Matrix2x1, 2):
		return s.matrixRows(t, [][]*term.Term{{t.Arg(0)}, {t.Arg(1)}})
	case t.Is(term.Matrix2x2, 4):
		return s.matrixRows(t, [][]*term.Term{{t.Arg(0), t.Arg(1)}, {t.Arg(2), t.Arg(3)}})
	case t.Is(term.Matrix, 1) && (t.Arg(0).HasHead(term.List) || t.Arg(0).HasHead(term.Tuple)):
		var rows [][]*term.Term
		for _, row := range t.Arg(0).Args() {
			if !row.HasHead(term.List) && !row.HasHead(term.Tuple) {
				return nil, unsupported(t)
			}
			rows = append(rows, row.Args())
		}
		return s.matrixRows(t, rows)
	case t.Is(term.Matrix, 3) && t.Arg(1).Is(term.For, 3) && t.Arg(2).Is(term.For, 3):
		return s.matrixFor(t)
	case t.Is(term.Neg, 1):
		m, err := s.evaluateMatrix(t.Arg(0))
		if err != nil {
			return nil, err
		}
		return m.Neg(), nil
	case t.Is(term.Sub, 2):
		a, err := s.evaluateMatrix(t.Arg(0))
		if err != nil {
			return nil, err
		}
		b, err := s.evaluateMatrix(t.Arg(1))
		if err != nil {
			return nil, err
		}
		return a.Sub(b)
	case (t.HasHead(term.Add) || t.HasHead(term.Mul)) && t.NumArgs() > 0:
		acc, err := s.evaluateMatrix(t.Arg(0))
		if err != nil {
			return nil, err
		}
		for _, a := range t.Args()[1:] {
			m, err := s.evaluateMatrix(a)
			if err != nil {
				return nil, err
			}
			if t.HasHead(term.Add) {
				acc, err = acc.Add(m)
			} else {
				acc, err = acc.Mul(m)
			}
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	case t.Is(term.Pow, 2):
		e, ok := s.Simplify(t.Arg(1)).Int64()
		if !ok {
			break
		}
		m, err := s.evaluateMatrix(t.Arg(0))
		if err != nil {
			return nil, err
		}
		return m.Pow(e)
	case t.Is(term.HilbertMatrix, 1):
		n, ok := s.Simplify(t.Arg(0)).Int64()
		if ok && n >= 0 && n <= maxMatrixSize {
			return algebraic.Hilbert(int(n)), nil
		}
	}
	return nil, unsupported(t)
}

func (s *Session) matrixRows(t *term.Term, rows [][]*term.Term) (*algebraic.Matrix, error) {
	out := make([][]*big.Rat, len(rows))
	for i, row := range rows {
		out[i] = make([]*big.Rat, len(row))
		for j, e := range row {
			q, err := s.evaluateRational(e)
			if err != nil {
				return nil, err
			}
			out[i][j] = q
		}
	}
	m, err := algebraic.NewMatrix(out)
	if err != nil {
		return nil, errors.Wrapf(err, "matrix %s", t)
	}
	return m, nil
}

// matrixFor expands Matrix(elem, For(i, a, b), For(j, c, d)).
func (s *Session) matrixFor(t *term.Term) (*algebraic.Matrix, error) {
	elem, fi, fj := t.Arg(0), t.Arg(1), t.Arg(2)
	var bounds [4]int64
	for k, b := range []*term.Term{fi.Arg(1), fi.Arg(2), fj.Arg(1), fj.Arg(2)} {
		v, ok := s.Simplify(b).Int64()
		if !ok {
			return nil, unsupported(t)
		}
		bounds[k] = v
	}
	rn, rok := span(bounds[0], bounds[1], maxMatrixSize+1)
	cn, cok := span(bounds[2], bounds[3], maxMatrixSize+1)
	if !rok || !cok {
		return nil, unsupported(t)
	}
	var rows [][]*term.Term
	for ii := int64(0); ii < rn; ii++ {
		var row []*term.Term
		for jj := int64(0); jj < cn; jj++ {
			at := term.Rules(fi.Arg(0), num(bounds[0]+ii), fj.Arg(0), num(bounds[2]+jj))
			row = append(row, elem.Replace(at, false))
		}
		rows = append(rows, row)
	}
	return s.matrixRows(t, rows)
}

// ============================================================
// Algebraic evaluation
// ============================================================

// EvaluateAlgebraic reads t as an exact algebraic number.
func (s *Session) EvaluateAlgebraic(t *term.Term) (*algebraic.Number, error) {
	return s.evaluateAlgebraic(t, s.budget)
}

func (s *Session) evaluateAlgebraic(t *term.Term, b algebraic.Budget) (*algebraic.Number, error) {
	if t.IsAtom() {
		switch {
		case t.IsInteger():
			return algebraic.NewInt(t.IntValue()), nil
		case t.Equal(term.ConstI):
			return algebraic.I(), nil
		case t.Equal(term.GoldenRatio):
			return algebraic.GoldenRatio(), nil
		}
		return nil, unsupported(t)
	}
	eval := func(u *term.Term) (*algebraic.Number, error) { return s.evaluateAlgebraic(u, b) }
	pair := func() (*algebraic.Number, *algebraic.Number, error) {
		x, err := eval(t.Arg(0))
		if err != nil {
			return nil, nil, err
		}
		y, err := eval(t.Arg(1))
		return x, y, err
	}
	unary := func(f func(*algebraic.Number) (*algebraic.Number, error)) (*algebraic.Number, error) {
		x, err := eval(t.Arg(0))
		if err != nil {
			return nil, err
		}
		return f(x)
	}

	switch {
	case t.Is(term.Pos, 1):
		return eval(t.Arg(0))
	case t.Is(term.Neg, 1):
		return unary(func(x *algebraic.Number) (*algebraic.Number, error) { return x.Neg(), nil })
	case t.Is(term.Sub, 2):
		x, y, err := pair()
		if err != nil {
			return nil, err
		}
		return b.Sub(x, y)
	case t.HasHead(term.Add), t.HasHead(term.Mul):
		isAdd := t.HasHead(term.Add)
		acc := algebraic.NewInt64(0)
		if !isAdd {
			acc = algebraic.NewInt64(1)
		}
		for _, a := range t.Args() {
			x, err := eval(a)
			if err != nil {
				return nil, err
			}
			if isAdd {
				acc, err = b.Add(acc, x)
			} else {
				acc, err = b.Mul(acc, x)
			}
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	case t.Is(term.Div, 2):
		x, y, err := pair()
		if err != nil {
			return nil, err
		}
		return b.Div(x, y)
	case t.Is(term.Sqrt, 1):
		return unary(b.Sqrt)
	case t.Is(term.Pow, 2):
		x, y, err := pair()
		if err != nil {
			return nil, err
		}
		return b.Pow(x, y)
	case t.Is(term.Sign, 1):
		return unary(b.Sgn)
	case t.Is(term.Re, 1):
		return unary(b.Re)
	case t.Is(term.Im, 1):
		return unary(b.Im)
	case t.Is(term.Abs, 1):
		return unary(b.Abs)
	case t.NumArgs() == 1 && oneOf(t, term.Exp, term.Cos, term.Sin, term.Tan, term.Cot, term.Sec, term.Csc):
		return s.evaluatePiMultiple(t, b)
	}
	return nil, unsupported(t)
}

// evaluatePiMultiple handles Exp(pi i q) and trigonometric functions of
// pi q for rational q.
func (s *Session) evaluatePiMultiple(t *term.Term, b algebraic.Budget) (*algebraic.Number, error) {
	v, err := s.evaluateAlgebraic(s.Simplify(div(t.Arg(0), term.Pi)), b)
	if err != nil {
		return nil, err
	}
	if t.HasHead(term.Exp) {
		re, err := b.Re(v)
		if err != nil {
			return nil, err
		}
		if !re.IsZero() {
			return nil, unsupported(t)
		}
		if v, err = b.Im(v); err != nil {
			return nil, err
		}
	}
	q := v.Rat()
	if q == nil {
		return nil, unsupported(t)
	}
	switch t.Head().Name() {
	case "Exp":
		return b.ExpPiI(q)
	case "Cos":
		return b.CosPi(q)
	case "Sin":
		return b.SinPi(q)
	case "Tan":
		return b.TanPi(q)
	case "Cot":
		return b.CotPi(q)
	case "Sec":
		return b.SecPi(q)
	}
	return b.CscPi(q)
}
