package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"svw.info/cheryl/internal/config"
	"svw.info/cheryl/internal/generator"
	"svw.info/cheryl/internal/infrastructure/storage"
	"svw.info/cheryl/internal/solver"
	"svw.info/cheryl/internal/trace"
	"svw.info/cheryl/internal/usecase"
	"svw.info/cheryl/internal/validator"
)

// app carries what the subcommands share: flags, config and logger.
type app struct {
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
	// closers run after the command, in reverse order.
	closers []func() error
}

func newRoot(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "cheryl",
		Short: "Solve and generate knowledge-induction puzzles",
		Long: `cheryl works puzzles in the style of "Cheryl's birthday".

A puzzle is a set of candidate tuples. Each player is privately told one
position of the true tuple, and the players then make public statements
about who knows the answer. Every statement removes the candidates under
which it could not have been made truthfully.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "cheryl.yaml", "Path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		a.solveCmd(),
		a.countCmd(),
		a.validateCmd(),
		a.showCmd(),
		a.generateCmd(),
		a.saveCmd(),
		a.listCmd(),
		a.serveCmd(),
		a.mcpCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.cfgPath, err)
	}
	a.cfg = cfg

	if a.logger != nil {
		return nil
	}
	lvl, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// teardown runs whether or not the command failed.
func (a *app) teardown() {
	log := a.logger
	if log == nil {
		log = zap.NewNop()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
	_ = log.Sync()
}

// service wires the use cases. Storage is opened only when asked for.
func (a *app) service(withStorage bool) (*usecase.Service, error) {
	s := solver.NewPuzzleSolver()
	gen := generator.NewUniqueGenerator(s, a.logger.Named("generator"))
	gen.Tries = a.cfg.Generator.Tries
	gen.Workers = a.cfg.Generator.Workers
	gen.MaxSampleTries = a.cfg.Generator.MaxSampleTries

	uc := usecase.NewService(s, gen, validator.New(), trace.NewSteps(a.logger.Named("trace")), nil)
	if withStorage {
		st, closeFn, err := storage.Open(a.cfg.Storage)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeFn)
		uc.Storage = st
		a.logger.Debug("storage opened",
			zap.String("backend", a.cfg.Storage.Backend),
			zap.String("path", a.cfg.Storage.Path))
	}
	return uc, nil
}

// run executes the command line in args and releases what it opened.
func run(a *app, args []string, out, errOut io.Writer) error {
	defer a.teardown()
	root := newRoot(a)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}

func main() {
	if err := run(&app{}, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
