// Package config reads the settings shared by the grim command and the
// tool server.
package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/gogrim/algebraic"
	"github.com/njchilds90/gogrim/interval"
)

// ErrInvalid is returned, wrapped with details, for unreadable or out of
// range settings.
var ErrInvalid = errors.New("config: invalid")

// Config holds every tunable. The zero value is not usable; start from
// Default.
type Config struct {
	// Precision is the working precision in bits of numeric enclosures.
	Precision uint             `yaml:"precision" validate:"min=32,max=65536"`
	Budget    algebraic.Budget `yaml:"budget"`
	Sampler   Sampler          `yaml:"sampler"`
	Server    Server           `yaml:"server"`
	// Corpus is a YAML corpus loaded on top of the built-in one.
	Corpus   string `yaml:"corpus"`
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Sampler bounds the search for test values.
type Sampler struct {
	Samples       int `yaml:"samples" validate:"min=1,max=10000"`
	MaxCandidates int `yaml:"max_candidates" validate:"min=1"`
	// Workers caps the sessions checked in parallel; 0 means one per CPU.
	Workers int `yaml:"workers" validate:"min=0,max=1024"`
}

type Server struct {
	Addr           string        `yaml:"addr" validate:"required,hostname_port"`
	ReadTimeout    time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `yaml:"write_timeout" validate:"gt=0"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
}

var validate = validator.New()

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Precision: interval.DefaultPrec,
		Budget:    algebraic.DefaultBudget,
		Sampler: Sampler{
			Samples:       10,
			MaxCandidates: 100000,
		},
		Server: Server{
			Addr:           ":8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 20 * time.Second,
		},
		LogLevel: "info",
	}
}

// Validate checks every field against its range.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrapf(ErrInvalid, "%v", err)
	}
	return nil
}

// Read overlays the YAML document in r on the defaults and validates the
// result. Unknown keys are rejected.
func Read(r io.Reader) (Config, error) {
	c := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return c, errors.Wrap(err, "config: read")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return c, errors.Wrapf(ErrInvalid, "decode: %v", err)
	}
	return c, c.Validate()
}

// Load reads the file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Default(), errors.Wrapf(err, "config: open %s", path)
	}
	defer f.Close()
	c, err := Read(f)
	return c, errors.Wrap(err, path)
}
