// Package storage persists puzzles on disk, either as JSON files or in SQLite.
package storage

import (
	"cmp"
	"fmt"
	"slices"

	"svw.info/cheryl/internal/config"
	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/ports"
)

var (
	_ ports.Storage = (*FS)(nil)
	_ ports.Storage = (*SQLite)(nil)
)

// Open returns the backend cfg selects. The caller closes the returned
// closer when done; it is a no-op for the file backend.
func Open(cfg config.StorageConfig) (ports.Storage, func() error, error) {
	switch cfg.Backend {
	case "", config.BackendFS:
		return NewFS(cfg.Path), func() error { return nil }, nil
	case config.BackendSQLite:
		db, err := NewSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}

func sortMeta(ms []domain.PuzzleMeta) {
	slices.SortFunc(ms, func(a, b domain.PuzzleMeta) int {
		if c := cmp.Compare(a.CreatedAt, b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
