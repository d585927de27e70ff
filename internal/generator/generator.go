package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/ports"
)

const (
	DefaultTries          = 100
	DefaultMaxSampleTries = 100
)

// ErrNoGameFound is returned when no sampled candidate set gives the
// statements exactly one solution.
var ErrNoGameFound = errors.New("no game found")

// NoGameFoundError records how many solutions each failed attempt had.
type NoGameFoundError struct {
	Tries  int
	Counts map[int]int // solution count -> attempts
}

func (e *NoGameFoundError) Error() string {
	keys := make([]int, 0, len(e.Counts))
	for k := range e.Counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d:%d", k, e.Counts[k])
	}
	return fmt.Sprintf("%v after %d tries (solutions:attempts %s)", ErrNoGameFound, e.Tries, strings.Join(parts, " "))
}

func (e *NoGameFoundError) Unwrap() error { return ErrNoGameFound }

// UniqueGenerator searches for candidate sets under which a list of
// statements has exactly one solution, using a Solver to count solutions.
type UniqueGenerator struct {
	Solver         ports.Solver
	Tries          int // default attempts when a request sets none
	Workers        int // concurrent attempts; <= 0 means NumCPU
	MaxSampleTries int
	Logger         *zap.Logger
}

// NewUniqueGenerator wires a generator that uses the given solver for uniqueness checks.
func NewUniqueGenerator(s ports.Solver, logger *zap.Logger) *UniqueGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UniqueGenerator{
		Solver:         s,
		Tries:          DefaultTries,
		Workers:        runtime.NumCPU(),
		MaxSampleTries: DefaultMaxSampleTries,
		Logger:         logger,
	}
}

// Generate samples req.Tries candidate sets from a source seeded with
// req.Seed (the clock when nil) and returns the first, in sampling order,
// that the statements solve uniquely. Attempts run concurrently on separate
// puzzles; with a seed set the result depends only on the request.
func (g *UniqueGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	tries := req.Tries
	if tries <= 0 {
		tries = g.Tries
	}
	if tries <= 0 {
		tries = DefaultTries
	}
	maxSample := g.MaxSampleTries
	if maxSample <= 0 {
		maxSample = DefaultMaxSampleTries
	}
	workers := g.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := g.Logger
	if log == nil {
		log = zap.NewNop()
	}

	players := req.Players
	if len(players) == 0 {
		players = make([]string, len(req.Domains))
		for i := range players {
			players[i] = strconv.Itoa(i)
		}
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))
	puzzles := make([]*domain.Puzzle, tries)
	for i := range puzzles {
		cands, err := SampleCandidates(rng, req.Domains, req.Candidates, maxSample)
		if err != nil {
			return nil, ports.Stats{Duration: time.Since(start)}, fmt.Errorf("sampling attempt %d: %w", i+1, err)
		}
		puzzles[i] = &domain.Puzzle{
			Name:       req.Name,
			Seed:       seed,
			Players:    slices.Clone(players),
			Candidates: cands,
			Statements: req.Statements,
		}
	}

	var (
		evals atomic.Int64
		best  atomic.Int64
	)
	best.Store(int64(tries))
	counts := make([]int, tries)
	for i := range counts {
		counts[i] = -1
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, p := range puzzles {
		if int64(i) > best.Load() {
			break
		}
		eg.Go(func() error {
			if int64(i) > best.Load() {
				return nil
			}
			n, st, err := g.Solver.Count(egCtx, p)
			evals.Add(int64(st.Evaluations))
			if err != nil {
				return fmt.Errorf("attempt %d: %w", i+1, err)
			}
			counts[i] = n
			log.Debug("generator attempt", zap.Int("try", i+1), zap.Int("solutions", n))
			if n == 1 {
				for {
					cur := best.Load()
					if int64(i) >= cur || best.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}
			return nil
		})
	}
	err := eg.Wait()
	st := ports.Stats{Evaluations: int(evals.Load()), Duration: time.Since(start)}
	if err != nil {
		return nil, st, err
	}

	if i := int(best.Load()); i < tries {
		p := puzzles[i]
		p.CreatedAt = time.Now().UnixNano()
		log.Info("generated puzzle",
			zap.Int("try", i+1),
			zap.Int("candidates", len(p.Candidates)),
			zap.Int64("seed", seed),
			zap.Duration("dur", st.Duration),
		)
		return p, st, nil
	}

	hist := make(map[int]int)
	for _, n := range counts {
		if n >= 0 {
			hist[n]++
		}
	}
	return nil, st, &NoGameFoundError{Tries: tries, Counts: hist}
}
