// Package term provides the immutable expression tree shared by every part
// of gogrim.
//
// A Term is either an atom (symbol, integer or text) or an application of a
// head term to an ordered list of argument terms. Terms are never mutated
// after construction, so they can be shared freely between goroutines and
// used as keys in Map and Set.
package term

import (
	"encoding/binary"
	"math/big"

	"github.com/cespare/xxhash/v2"
)

// ============================================================
// Term
// ============================================================

// Kind tags the four shapes a Term can take.
type Kind uint8

const (
	KindSymbol Kind = iota + 1
	KindInteger
	KindText
	KindApply
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindApply:
		return "apply"
	}
	return "invalid"
}

type Term struct {
	kind Kind
	str  string   // symbol name or text content
	num  *big.Int // integer value, never mutated
	head *Term
	args []*Term
	hash uint64
}

// Sym returns the symbol atom with the given name.
func Sym(name string) *Term {
	if name == "" {
		panic("term: empty symbol name")
	}
	t := &Term{kind: KindSymbol, str: name}
	t.hash = atomHash(KindSymbol, []byte(name))
	return t
}

var smallInts = func() (out [513]*Term) {
	for i := range out {
		out[i] = newInt(big.NewInt(int64(i - 256)))
	}
	return out
}()

// Int returns the integer atom n.
func Int(n int64) *Term {
	if n >= -256 && n <= 256 {
		return smallInts[n+256]
	}
	return newInt(big.NewInt(n))
}

// BigInt returns the integer atom with value n. The argument is copied.
func BigInt(n *big.Int) *Term {
	if n.IsInt64() {
		return Int(n.Int64())
	}
	return newInt(new(big.Int).Set(n))
}

func newInt(n *big.Int) *Term {
	t := &Term{kind: KindInteger, num: n}
	sign := byte(0)
	if n.Sign() < 0 {
		sign = 1
	}
	t.hash = atomHash(KindInteger, append([]byte{sign}, n.Bytes()...))
	return t
}

// Text returns the text atom with the given content.
func Text(s string) *Term {
	t := &Term{kind: KindText, str: s}
	t.hash = atomHash(KindText, []byte(s))
	return t
}

// Apply builds the application head(args...). A nil head is a contract
// violation.
func Apply(head *Term, args ...*Term) *Term {
	if head == nil {
		panic("term: application without head")
	}
	for _, a := range args {
		if a == nil {
			panic("term: nil argument")
		}
	}
	cp := make([]*Term, len(args))
	copy(cp, args)
	return applyOwned(head, cp)
}

// applyOwned is Apply for a freshly allocated argument slice.
func applyOwned(head *Term, args []*Term) *Term {
	t := &Term{kind: KindApply, head: head, args: args}
	d := xxhash.New()
	var buf [9]byte
	buf[0] = byte(KindApply)
	binary.LittleEndian.PutUint64(buf[1:], head.hash)
	_, _ = d.Write(buf[:])
	for _, a := range args {
		binary.LittleEndian.PutUint64(buf[1:], a.hash)
		_, _ = d.Write(buf[1:])
	}
	t.hash = d.Sum64()
	return t
}

// Of applies t as a head: Add.Of(x, y) is Add(x, y).
func (t *Term) Of(args ...*Term) *Term { return Apply(t, args...) }

func atomHash(k Kind, payload []byte) uint64 {
	d := xxhash.New()
	_, _ = d.Write([]byte{byte(k)})
	_, _ = d.Write(payload)
	return d.Sum64()
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the node kind of t.
func (t *Term) Kind() Kind { return t.kind }

// Hash returns the structural hash of t; equal terms hash equally.
func (t *Term) Hash() uint64 { return t.hash }

// IsAtom reports whether t is a symbol, integer or text.
func (t *Term) IsAtom() bool { return t.kind != KindApply }

// IsSymbol reports whether t is a symbol.
func (t *Term) IsSymbol() bool { return t.kind == KindSymbol }

// IsInteger reports whether t is an integer literal.
func (t *Term) IsInteger() bool { return t.kind == KindInteger }

// IsText reports whether t is a text literal.
func (t *Term) IsText() bool { return t.kind == KindText }

// IsApply reports whether t is an application.
func (t *Term) IsApply() bool { return t.kind == KindApply }

// Name returns the symbol name, or "" for non-symbols.
func (t *Term) Name() string {
	if t.kind != KindSymbol {
		return ""
	}
	return t.str
}

// TextValue returns the content of a text atom.
func (t *Term) TextValue() string {
	if t.kind != KindText {
		return ""
	}
	return t.str
}

// IntValue returns a copy of the integer value, or nil for non-integers.
func (t *Term) IntValue() *big.Int {
	if t.kind != KindInteger {
		return nil
	}
	return new(big.Int).Set(t.num)
}

// Int64 reports the integer value if it fits in an int64.
func (t *Term) Int64() (int64, bool) {
	if t.kind != KindInteger || !t.num.IsInt64() {
		return 0, false
	}
	return t.num.Int64(), true
}

// Sign returns the sign of an integer atom, 0 otherwise.
func (t *Term) Sign() int {
	if t.kind != KindInteger {
		return 0
	}
	return t.num.Sign()
}

// Head returns the head of an application, nil for atoms.
func (t *Term) Head() *Term { return t.head }

// Args returns the arguments of an application, nil for atoms. The slice
// must not be modified.
func (t *Term) Args() []*Term {
	if t.kind != KindApply {
		return nil
	}
	return t.args
}

func (t *Term) NumArgs() int { return len(t.args) }

func (t *Term) Arg(i int) *Term { return t.args[i] }

// HasHead reports whether t is an application whose head equals h.
func (t *Term) HasHead(h *Term) bool {
	return t.kind == KindApply && t.head.Equal(h)
}

// Is reports whether t is an application of h with exactly n arguments.
func (t *Term) Is(h *Term, n int) bool {
	return t.HasHead(h) && len(t.args) == n
}

// IsInt reports whether t is the integer atom n.
func (t *Term) IsInt(n int64) bool {
	v, ok := t.Int64()
	return ok && v == n
}

// ============================================================
// Structural equality
// ============================================================

func (t *Term) Equal(o *Term) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.hash != o.hash || t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindSymbol, KindText:
		return t.str == o.str
	case KindInteger:
		return t.num.Cmp(o.num) == 0
	}
	if len(t.args) != len(o.args) || !t.head.Equal(o.head) {
		return false
	}
	for i, a := range t.args {
		if !a.Equal(o.args[i]) {
			return false
		}
	}
	return true
}

// WithArgs rebuilds an application with the same head and new arguments.
func (t *Term) WithArgs(args []*Term) *Term {
	return Apply(t.head, args...)
}
