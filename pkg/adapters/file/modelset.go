package file

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
)

// LoadModelSet loads an ordered set of models from either a list file or a directory.
//
// A list file holds one model path per line; relative paths are resolved against the
// list file's directory and blank lines are skipped. A directory contributes every
// model file in it, in lexical order. Order matters: classification ties go to the
// earliest model.
func LoadModelSet(path string, tol float64) ([]*domain.Model, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model set: %w", err)
	}

	var paths []string
	if info.IsDir() {
		names, err := listModelFiles(path)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			paths = append(paths, filepath.Join(path, name))
		}
	} else {
		if paths, err = readModelList(path); err != nil {
			return nil, err
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: no models listed: %w", path, domain.ErrModelNotFound)
	}

	models := make([]*domain.Model, 0, len(paths))
	for _, p := range paths {
		m, err := LoadModelWithTolerance(p, tol)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

func readModelList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model list: %w", err)
	}
	defer f.Close()

	base := filepath.Dir(path)
	var paths []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model list: %w", err)
	}
	return paths, nil
}
