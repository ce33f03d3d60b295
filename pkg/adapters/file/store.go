package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
)

// Store implements ports.ModelStore over a directory.
// Each model lives in its own file named after the model; the extension picks the codec.
type Store struct {
	BasePath  string
	Tolerance float64
}

// NewStore creates a Store rooted at basePath.
// If basePath is empty, it defaults to "models".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = "models"
	}
	return &Store{BasePath: basePath, Tolerance: domain.LoadTolerance}
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.HasPrefix(name, tempPrefix) {
		return "", fmt.Errorf("invalid model name %q", name)
	}
	return filepath.Join(s.BasePath, name), nil
}

// Save writes the model atomically.
func (s *Store) Save(ctx context.Context, name string, model *domain.Model) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return SaveModel(path, model)
}

// Load reads and validates the named model.
func (s *Store) Load(ctx context.Context, name string) (*domain.Model, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	m, err := LoadModelWithTolerance(path, s.Tolerance)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%q: %w", name, domain.ErrModelNotFound)
		}
		return nil, err
	}
	return m, nil
}

// Delete removes the model file.
func (s *Store) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete model file: %w", err)
	}
	return nil
}

// List returns the model file names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return listModelFiles(s.BasePath)
}

func listModelFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, tempPrefix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
