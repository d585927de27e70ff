package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/ports"
)

type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Tracer    ports.Tracer
	Storage   ports.Storage

	now func() time.Time
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, tr ports.Tracer, st ports.Storage) *Service {
	return &Service{Solver: s, Generator: g, Validator: v, Tracer: tr, Storage: st, now: time.Now}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, p *domain.Puzzle) (domain.Candidate, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, p)
}

func (u *Service) Count(ctx context.Context, p *domain.Puzzle) (int, ports.Stats, error) {
	if u.Solver == nil {
		return 0, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Count(ctx, p)
}

func (u *Service) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, req)
}

func (u *Service) Validate(ctx context.Context, p *domain.Puzzle) (bool, []domain.Problem, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, p)
}

func (u *Service) Trace(ctx context.Context, p *domain.Puzzle) ([]domain.Step, error) {
	if u.Tracer == nil {
		return nil, errNotConfigured
	}
	return u.Tracer.Trace(ctx, p)
}

// Persistence

// Save stores p, giving it an ID and creation time first if it has none.
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	if p == nil {
		return errors.New("nil puzzle")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == 0 {
		now := time.Now
		if u.now != nil {
			now = u.now
		}
		p.CreatedAt = now().UnixNano()
	}
	return u.Storage.Save(ctx, p)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
