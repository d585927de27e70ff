package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"svw.info/cheryl/internal/domain"
)

// FS keeps one JSON file per puzzle in a directory.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

var errBadID = errors.New("invalid puzzle ID")

func (s *FS) pathFor(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%w: %q", errBadID, id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	target, err := s.pathFor(p.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	path, err := s.pathFor(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out domain.Puzzle
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return &out, nil
}

// List returns every readable puzzle file, oldest first. Files that do
// not decode are skipped.
func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []domain.PuzzleMeta
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var p domain.Puzzle
		if err := json.Unmarshal(data, &p); err != nil || p.ID == "" {
			continue
		}
		out = append(out, p.Meta())
	}
	sortMeta(out)
	return out, nil
}
