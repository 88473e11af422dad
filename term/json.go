package term

import (
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
)

// ============================================================
// JSON Serialization
// ============================================================
//
//   {"type": "symbol",  "name": "x"}
//   {"type": "integer", "value": "-12"}
//   {"type": "text",    "value": "hello"}
//   {"type": "apply",   "head": {...}, "args": [{...}, ...]}
//
// The text form produced by String is accepted anywhere an object is, so
// clients may send "Add(x, 1)" instead of the nested object.

// JSONValue returns the object form of t.
func (t *Term) JSONValue() map[string]interface{} {
	switch t.kind {
	case KindSymbol:
		return map[string]interface{}{"type": "symbol", "name": t.str}
	case KindInteger:
		return map[string]interface{}{"type": "integer", "value": t.num.String()}
	case KindText:
		return map[string]interface{}{"type": "text", "value": t.str}
	}
	args := make([]interface{}, len(t.args))
	for i, a := range t.args {
		args[i] = a.JSONValue()
	}
	return map[string]interface{}{"type": "apply", "head": t.head.JSONValue(), "args": args}
}

// ToJSON encodes t as a JSON document.
func ToJSON(t *Term) (string, error) {
	b, err := json.Marshal(t.JSONValue())
	return string(b), err
}

// FromValue decodes either the object form or a string in canonical text
// form.
func FromValue(v interface{}) (*Term, error) {
	switch x := v.(type) {
	case string:
		return Parse(x)
	case map[string]interface{}:
		return FromJSON(x)
	case float64:
		if x != float64(int64(x)) {
			return nil, errors.Errorf("non-integer number %v", x)
		}
		return Int(int64(x)), nil
	}
	return nil, errors.Errorf("term must be an object or a string, got %T", v)
}

// FromJSON decodes a term from its JSON object form.
func FromJSON(data map[string]interface{}) (*Term, error) {
	if data == nil {
		return nil, errors.New("term must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, errors.New("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, errors.New("field 'type' must be a non-empty string")
	}

	subString := func(field string, allowEmpty bool) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", errors.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || (s == "" && !allowEmpty) {
			return "", errors.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "symbol":
		name, err := subString("name", false)
		if err != nil {
			return nil, err
		}
		return Sym(name), nil
	case "integer":
		val, err := subString("value", false)
		if err != nil {
			return nil, err
		}
		n, ok := new(big.Int).SetString(val, 10)
		if !ok {
			return nil, errors.Errorf("integer: invalid value %q", val)
		}
		return BigInt(n), nil
	case "text":
		val, err := subString("value", true)
		if err != nil {
			return nil, err
		}
		return Text(val), nil
	case "apply":
		h, ok := data["head"]
		if !ok {
			return nil, errors.Errorf("apply: missing %q", "head")
		}
		head, err := FromValue(h)
		if err != nil {
			return nil, errors.Wrap(err, "apply: head")
		}
		raw, ok := data["args"].([]interface{})
		if !ok && data["args"] != nil {
			return nil, errors.Errorf("apply: %q must be an array", "args")
		}
		args := make([]*Term, len(raw))
		for i, r := range raw {
			a, err := FromValue(r)
			if err != nil {
				return nil, errors.Wrapf(err, "apply: args[%d]", i)
			}
			args[i] = a
		}
		return applyOwned(head, args), nil
	}
	return nil, errors.Errorf("unknown term type %q", typ)
}
