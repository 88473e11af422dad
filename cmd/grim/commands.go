package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gogrim/internal/server"
	"github.com/njchilds90/gogrim/kb"
	"github.com/njchilds90/gogrim/term"
)

// question holds the flags shared by simplify and check.
type question struct {
	vars        []string
	assumptions string
}

func (q *question) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&q.vars, "var", nil, "free variables of the formula (repeatable)")
	cmd.Flags().StringVarP(&q.assumptions, "assume", "a", "", "assumptions on the variables, e.g. Element(x, RR)")
}

func (q *question) parse() ([]*term.Term, *term.Term, error) {
	vars := make([]*term.Term, len(q.vars))
	for i, name := range q.vars {
		v, err := term.Parse(name)
		if err != nil {
			return nil, nil, err
		}
		if !v.IsSymbol() {
			return nil, nil, fmt.Errorf("variable %s is not a symbol", v)
		}
		vars[i] = v
	}
	if q.assumptions == "" {
		return vars, nil, nil
	}
	a, err := term.Parse(q.assumptions)
	return vars, a, err
}

func (a *app) simplifyCmd() *cobra.Command {
	var q question
	cmd := &cobra.Command{
		Use:   "simplify [expr]",
		Short: "Simplify an expression",
		Long: `Simplifies an expression under assumptions about its variables.

Example:
  grim simplify 'Div(Add(1, Sqrt(5)), 2)'
  grim simplify --var x -a 'Element(x, ZZ)' 'Element(x, RR)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := term.Parse(args[0])
			if err != nil {
				return err
			}
			vars, assumptions, err := q.parse()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.engine.Simplify(expr, vars, assumptions))
			return nil
		},
	}
	q.bind(cmd)
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	var (
		q       question
		samples int
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "check [formula]",
		Short: "Test a formula on sampled values",
		Long: `Substitutes sampled values satisfying the assumptions into the formula and
simplifies each instance. Prints True if every sample holds, False with the
counterexamples if any fails, Unknown otherwise.

Example:
  grim check --var x -a 'Element(x, RR)' 'Equal(Add(Pow(Sin(x), 2), Pow(Cos(x), 2)), 1)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formula, err := term.Parse(args[0])
			if err != nil {
				return err
			}
			vars, assumptions, err := q.parse()
			if err != nil {
				return err
			}
			r, err := a.engine.Check(cmd.Context(), formula, vars, assumptions, samples)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			fmt.Fprintf(out, "%s (%d samples: %d true, %d false, %d unknown)\n",
				r.Verdict(), r.Samples, r.True, r.False, r.Unknown)
			for _, c := range r.Counterexamples {
				fmt.Fprintf(out, "  counterexample: %v\n", c)
			}
			return nil
		},
	}
	q.bind(cmd)
	cmd.Flags().IntVarP(&samples, "samples", "n", 0, "number of samples (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func (a *app) corpusCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "List the knowledge-base entries",
		Long: `Lists every entry of the knowledge base. With --file, validates a YAML
corpus instead and lists its entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.engine.Base().Corpus()
			if file != "" {
				c, err := kb.LoadFile(file)
				if err != nil {
					return err
				}
				if _, err := kb.Build(c); err != nil {
					return err
				}
				entries = c
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s\t%s", e.ID, e.Formula)
				if e.Assumptions != nil {
					fmt.Fprintf(out, "\tif %s", e.Assumptions)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML corpus to validate")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool-calling API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Server
			if addr != "" {
				sc.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(a.engine, sc, a.logger).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
