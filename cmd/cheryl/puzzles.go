package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/puzzlefile"
	"svw.info/cheryl/internal/render"
	"svw.info/cheryl/internal/solver"
)

func (a *app) solveCmd() *cobra.Command {
	var showTrace bool
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Print the unique solution of a puzzle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := puzzlefile.Load(args[0])
			if err != nil {
				return err
			}
			uc, err := a.service(false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if showTrace {
				steps, err := uc.Trace(cmd.Context(), p)
				fmt.Fprint(out, render.Steps(steps))
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
			sol, st, err := uc.Solve(cmd.Context(), p)
			a.logger.Debug("solve finished",
				zap.String("file", args[0]),
				zap.Int("evaluations", st.Evaluations),
				zap.Duration("dur", st.Duration))
			var multi *solver.MultipleSolutionsError
			if errors.As(err, &multi) {
				return fmt.Errorf("%s: no unique solution, %d candidates remain", args[0], multi.Count)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintln(out, sol)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showTrace, "trace", "t", false, "Print what each statement keeps and removes")
	return cmd
}

func (a *app) countCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count FILE",
		Short: "Print how many candidates survive a puzzle's statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := puzzlefile.Load(args[0])
			if err != nil {
				return err
			}
			uc, err := a.service(false)
			if err != nil {
				return err
			}
			n, _, err := uc.Count(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a puzzle definition without solving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := puzzlefile.Load(args[0])
			if err != nil {
				return err
			}
			uc, err := a.service(false)
			if err != nil {
				return err
			}
			ok, problems, err := uc.Validate(cmd.Context(), p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, pr := range problems {
				fmt.Fprintln(out, pr)
			}
			if !ok {
				return fmt.Errorf("%s: %d problem(s)", args[0], len(problems))
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	var styled bool
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print a puzzle's candidates as seen by each player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := puzzlefile.Load(args[0])
			if err != nil {
				return err
			}
			g, _, err := solver.Prepare(p)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if styled {
				fmt.Fprintln(cmd.OutOrStdout(), render.Styled(g.Players(), g.Candidates()))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Game(g))
			return nil
		},
	}
	cmd.Flags().BoolVar(&styled, "styled", false, "Draw a boxed, coloured table")
	return cmd
}

func (a *app) generateCmd() *cobra.Command {
	var (
		seed    int64
		tries   int
		workers int
		save    bool
	)
	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Search for a candidate set the statements in FILE solve uniquely",
		Long: `Reads a generator request (domains, candidate count, statements) and
samples candidate sets until one has exactly one solution. The puzzle is
printed as YAML; with --save it is also stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := puzzlefile.LoadRequest(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = domain.Seed(seed)
			}
			if tries > 0 {
				req.Tries = tries
			}
			if workers > 0 {
				a.cfg.Generator.Workers = workers
			}
			uc, err := a.service(save)
			if err != nil {
				return err
			}
			a.logger.Info("generating", zap.String("file", args[0]), zap.Int("tries", req.Tries))
			p, st, err := uc.Generate(cmd.Context(), *req)
			if err != nil {
				return err
			}
			a.logger.Info("generated",
				zap.Int64("seed", p.Seed),
				zap.Int("candidates", len(p.Candidates)),
				zap.Int("evaluations", st.Evaluations),
				zap.Duration("dur", st.Duration))
			if save {
				if err := uc.Save(cmd.Context(), p); err != nil {
					return err
				}
			}
			data, err := yaml.Marshal(p)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: current time)")
	cmd.Flags().IntVar(&tries, "tries", 0, "Candidate sets to try (default: request or config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent attempts (default: config)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the generated puzzle")
	return cmd
}

func (a *app) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save FILE",
		Short: "Store a puzzle and print its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := puzzlefile.Load(args[0])
			if err != nil {
				return err
			}
			uc, err := a.service(true)
			if err != nil {
				return err
			}
			if err := uc.Save(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored puzzles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := a.service(true)
			if err != nil {
				return err
			}
			metas, err := uc.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range metas {
				fmt.Fprintf(out, "%s\t%s\t%d candidates\t%s\n",
					m.ID, m.Name, m.Candidates, time.Unix(0, m.CreatedAt).UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
}
