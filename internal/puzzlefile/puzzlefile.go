// Package puzzlefile reads puzzle definitions and generator requests from
// YAML or JSON files.
package puzzlefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"svw.info/cheryl/internal/domain"
)

// Load reads a puzzle from path, choosing the format by extension.
func Load(path string) (*domain.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read puzzle: %w", err)
	}
	p, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a puzzle. ext is a file extension such as ".yaml" or
// ".json"; anything else is read as YAML, which also accepts JSON.
func Parse(data []byte, ext string) (*domain.Puzzle, error) {
	var p domain.Puzzle
	if err := decode(data, ext, &p); err != nil {
		return nil, err
	}
	if len(p.Candidates) == 0 {
		return nil, fmt.Errorf("puzzle has no candidates")
	}
	return &p, nil
}

// LoadRequest reads a generator request from path.
func LoadRequest(path string) (*domain.GenerateRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	req, err := ParseRequest(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

func ParseRequest(data []byte, ext string) (*domain.GenerateRequest, error) {
	var req domain.GenerateRequest
	if err := decode(data, ext, &req); err != nil {
		return nil, err
	}
	if len(req.Domains) == 0 {
		return nil, fmt.Errorf("request has no domains")
	}
	return &req, nil
}

func decode(data []byte, ext string, out any) error {
	if strings.EqualFold(ext, ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}
