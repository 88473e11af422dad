// Command grim simplifies and checks formulas from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/njchilds90/gogrim"
	"github.com/njchilds90/gogrim/config"
)

// app holds the state shared by the subcommands of one invocation.
type app struct {
	// Global flags
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
	engine *gogrim.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "grim",
		Short: "grim - exact simplification and checking of mathematical formulas",
		Long: `grim answers questions about formulas written in canonical form,
such as Add(Pow(Sin(x), 2), Pow(Cos(x), 2)). Answers are exact or Unknown.

Knowledge comes from a built-in corpus of identities, optionally extended by a
YAML corpus named in the configuration file.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.AddCommand(a.simplifyCmd(), a.checkCmd(), a.corpusCmd(), a.serveCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.cfg, err = config.Load(a.configPath); err != nil {
		return err
	}
	zc := zap.NewProductionConfig()
	if err := zc.Level.UnmarshalText([]byte(a.cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if a.logger, err = zc.Build(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.engine, err = gogrim.New(a.cfg, a.logger)
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
