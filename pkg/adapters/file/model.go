package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/markov/pkg/domain"
)

// LoadModel reads and validates the model at path. The model is named after the
// file's base name, which is what classification results report.
func LoadModel(path string) (*domain.Model, error) {
	return LoadModelWithTolerance(path, domain.LoadTolerance)
}

// LoadModelWithTolerance is LoadModel with an explicit stochasticity tolerance.
func LoadModelWithTolerance(path string, tol float64) (*domain.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	m, err := DecodeModel(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Name = filepath.Base(path)
	if err := m.Validate(tol); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveModel writes m to path atomically, in the format implied by the extension.
func SaveModel(path string, m *domain.Model) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeModel(w, FormatOf(path), m)
	})
}
