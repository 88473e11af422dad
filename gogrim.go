// Package gogrim answers questions about mathematical formulas.
//
// Design goals:
//   - Exact answers or Unknown, never a wrong True or False
//   - Formulas are plain immutable terms in a small canonical syntax
//   - Knowledge comes from a corpus of proven identities
//   - JSON and MCP-ready tool APIs for agents and services
package gogrim

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/gogrim/brain"
	"github.com/njchilds90/gogrim/config"
	"github.com/njchilds90/gogrim/kb"
	"github.com/njchilds90/gogrim/term"
)

// ============================================================
// Engine
// ============================================================

// Engine couples a compiled knowledge base with the session settings. It
// is safe for concurrent use; every question runs in its own session.
type Engine struct {
	cfg  config.Config
	base *kb.Base
	log  *zap.Logger
}

// New builds an engine over the built-in corpus plus the corpus file named
// in cfg, if any.
func New(cfg config.Config, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	corpus := kb.Builtin()
	if cfg.Corpus != "" {
		extra, err := kb.LoadFile(cfg.Corpus)
		if err != nil {
			return nil, err
		}
		corpus = append(corpus, extra...)
	}
	base, err := kb.Build(corpus, kb.WithLogger(log))
	if err != nil {
		return nil, err
	}
	log.Info("engine ready", zap.Int("entries", base.Len()), zap.String("corpus", cfg.Corpus))
	return &Engine{cfg: cfg, base: base, log: log}, nil
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the engine with default settings and the built-in
// corpus.
func Default() *Engine {
	defaultOnce.Do(func() {
		e, err := New(config.Default(), nil)
		if err != nil {
			panic("gogrim: built-in corpus: " + err.Error())
		}
		defaultEngine = e
	})
	return defaultEngine
}

func (e *Engine) Config() config.Config { return e.cfg }

func (e *Engine) Base() *kb.Base { return e.base }

// Session opens a session over variables under assumptions (nil for none)
// with the engine's knowledge base and settings.
func (e *Engine) Session(variables []*term.Term, assumptions *term.Term) *brain.Session {
	return brain.New(variables, assumptions,
		brain.WithLogger(e.log),
		brain.WithBudget(e.cfg.Budget),
		brain.WithPrecision(e.cfg.Precision),
		brain.WithRuleBase(e.base))
}

// Simplify rewrites expr under assumptions about variables.
func (e *Engine) Simplify(expr *term.Term, variables []*term.Term, assumptions *term.Term) *term.Term {
	return e.Session(variables, assumptions).Simplify(expr)
}

// Simplify uses the default engine.
func Simplify(expr *term.Term, variables []*term.Term, assumptions *term.Term) *term.Term {
	return Default().Simplify(expr, variables, assumptions)
}

// ============================================================
// Checking formulas on sample values
// ============================================================

// Report tallies how a formula simplified on each sampled assignment.
type Report struct {
	Samples         int                 `json:"samples"`
	True            int                 `json:"true"`
	False           int                 `json:"false"`
	Unknown         int                 `json:"unknown"`
	Counterexamples []map[string]string `json:"counterexamples,omitempty"`
}

// Verdict is False when any sample disproved the formula, True when every
// sample proved it, and Unknown otherwise.
func (r Report) Verdict() brain.Truth {
	switch {
	case r.False > 0:
		return brain.False
	case r.Samples > 0 && r.True == r.Samples:
		return brain.True
	}
	return brain.Unknown
}

// Check substitutes up to n sampled assignments of variables satisfying
// assumptions into formula and simplifies each instance in a fresh
// session. A formula that is True on every sample is not thereby proven.
func (e *Engine) Check(ctx context.Context, formula *term.Term, variables []*term.Term, assumptions *term.Term, n int) (Report, error) {
	if n <= 0 {
		n = e.cfg.Sampler.Samples
	}
	if assumptions == nil {
		assumptions = term.True
	}
	samples := e.Session(variables, assumptions).SomeValues(variables, assumptions, n, e.cfg.Sampler.MaxCandidates)

	verdicts := make([]brain.Truth, len(samples))
	g, ctx := errgroup.WithContext(ctx)
	workers := e.cfg.Sampler.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for i, at := range samples {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Wrap(err, "check")
			}
			got := e.Session(nil, nil).Simplify(formula.Replace(at, false))
			switch {
			case got.Equal(term.True):
				verdicts[i] = brain.True
			case got.Equal(term.False):
				verdicts[i] = brain.False
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	r := Report{Samples: len(samples)}
	for i, v := range verdicts {
		switch v {
		case brain.True:
			r.True++
		case brain.False:
			r.False++
			r.Counterexamples = append(r.Counterexamples, assignment(samples[i]))
		default:
			r.Unknown++
		}
	}
	e.log.Debug("checked formula",
		zap.Stringer("formula", formula),
		zap.Int("samples", r.Samples),
		zap.Int("false", r.False),
		zap.Stringer("verdict", r.Verdict()))
	return r, nil
}

// Check uses the default engine.
func Check(ctx context.Context, formula *term.Term, variables []*term.Term, assumptions *term.Term, n int) (Report, error) {
	return Default().Check(ctx, formula, variables, assumptions, n)
}

func assignment(at *term.Map[*term.Term]) map[string]string {
	out := make(map[string]string, at.Len())
	at.Each(func(k, v *term.Term) bool {
		out[k.String()] = v.String()
		return true
	})
	return out
}
