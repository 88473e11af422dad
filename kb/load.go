package kb

import (
	"bytes"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/gogrim/term"
)

var validate = validator.New()

type yamlCorpus struct {
	Entries []yamlEntry `yaml:"entries" validate:"dive"`
}

type yamlEntry struct {
	ID          string   `yaml:"id" validate:"required,alphanum"`
	Variables   []string `yaml:"variables" validate:"dive,required"`
	Formula     string   `yaml:"formula" validate:"required"`
	Assumptions string   `yaml:"assumptions"`
}

// LoadYAML reads a corpus document of the form
//
//	entries:
//	  - id: dc2d7e
//	    variables: [z]
//	    formula: Equal(Add(Pow(Sin(z), 2), Pow(Cos(z), 2)), 1)
//	    assumptions: Element(z, CC)
//
// with formulas and assumptions in canonical text syntax. Unknown fields
// are rejected.
func LoadYAML(r io.Reader) (Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "kb: read corpus")
	}
	var doc yamlCorpus
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrapf(ErrBadEntry, "decode corpus: %v", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, errors.Wrapf(ErrBadEntry, "%v", err)
	}
	out := make(Corpus, 0, len(doc.Entries))
	for _, y := range doc.Entries {
		e, err := y.entry()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// LoadFile reads a YAML corpus from path.
func LoadFile(path string) (Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "kb: open %s", path)
	}
	defer f.Close()
	return LoadYAML(f)
}

func (y yamlEntry) entry() (Entry, error) {
	e := Entry{ID: y.ID}
	var err error
	if e.Formula, err = term.Parse(y.Formula); err != nil {
		return e, errors.Wrapf(ErrBadEntry, "%s: formula: %v", y.ID, err)
	}
	if y.Assumptions != "" {
		if e.Assumptions, err = term.Parse(y.Assumptions); err != nil {
			return e, errors.Wrapf(ErrBadEntry, "%s: assumptions: %v", y.ID, err)
		}
	}
	for _, name := range y.Variables {
		v, err := term.Parse(name)
		if err != nil {
			return e, errors.Wrapf(ErrBadEntry, "%s: variable: %v", y.ID, err)
		}
		e.Variables = append(e.Variables, v)
	}
	return e, e.Validate()
}
