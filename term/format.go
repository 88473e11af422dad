package term

import (
	"math/big"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ============================================================
// Printing
// ============================================================

// String renders t in the canonical form Head(a, b). Text atoms are quoted
// with embedded quotes escaped.
func (t *Term) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Term) write(sb *strings.Builder) {
	switch t.kind {
	case KindSymbol:
		sb.WriteString(t.str)
	case KindInteger:
		sb.WriteString(t.num.String())
	case KindText:
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(t.str, `"`, `\"`))
		sb.WriteByte('"')
	case KindApply:
		t.head.write(sb)
		sb.WriteByte('(')
		for i, a := range t.args {
			if i > 0 {
				sb.WriteString(", ")
			}
			a.write(sb)
		}
		sb.WriteByte(')')
	}
}

// ============================================================
// Parsing
// ============================================================

// ErrParse is returned, wrapped with a position, for malformed input.
var ErrParse = errors.New("term: parse error")

// Parse reads one term in canonical form. Integers may carry a leading
// minus sign; applications may be chained, as in f(x)(y).
func Parse(src string) (*Term, error) {
	p := &parser{src: src}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.fail("unexpected %q after term", p.src[p.pos])
	}
	return t, nil
}

// MustParse is Parse for literals known to be well formed.
func MustParse(src string) *Term {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
}

func (p *parser) fail(format string, args ...interface{}) error {
	return errors.Wrapf(ErrParse, "offset %d: "+format, append([]interface{}{p.pos}, args...)...)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || (c >= '0' && c <= '9') }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *parser) term() (*Term, error) {
	t, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '(' {
			return t, nil
		}
		p.pos++
		args, err := p.argList()
		if err != nil {
			return nil, err
		}
		t = applyOwned(t, args)
	}
}

func (p *parser) argList() ([]*Term, error) {
	args := []*Term{}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ')' {
		p.pos++
		return args, nil
	}
	for {
		a, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.fail("unterminated argument list")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return args, nil
		default:
			return nil, p.fail("expected ',' or ')', found %q", p.src[p.pos])
		}
	}
}

func (p *parser) atom() (*Term, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.fail("unexpected end of input")
	}
	c := p.src[p.pos]
	switch {
	case c == '"':
		return p.text()
	case isDigit(c) || (c == '-' && p.pos+1 < len(p.src) && isDigit(p.src[p.pos+1])):
		start := p.pos
		p.pos++
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		n, ok := new(big.Int).SetString(p.src[start:p.pos], 10)
		if !ok {
			return nil, p.fail("bad integer %q", p.src[start:p.pos])
		}
		return BigInt(n), nil
	case isIdentStart(c):
		start := p.pos
		for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
			p.pos++
		}
		return Sym(p.src[start:p.pos]), nil
	}
	return nil, p.fail("unexpected %q", c)
}

func (p *parser) text() (*Term, error) {
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '"':
			sb.WriteByte('"')
			p.pos += 2
		case c == '"':
			p.pos++
			return Text(sb.String()), nil
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return nil, p.fail("unterminated text")
}
