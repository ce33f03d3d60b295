package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/ports"
)

// RunModelsList prints the stored model names, one per line.
func RunModelsList(ctx context.Context, w io.Writer, store ports.ModelStore) error {
	names, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

// RunModelsPush loads model files and saves them under their base names.
func RunModelsPush(ctx context.Context, w io.Writer, store ports.ModelStore, tol float64, paths []string) error {
	for _, path := range paths {
		m, err := file.LoadModelWithTolerance(path, tol)
		if err != nil {
			return err
		}
		name := filepath.Base(path)
		if err := store.Save(ctx, name, m); err != nil {
			return fmt.Errorf("push %s: %w", name, err)
		}
		fmt.Fprintf(w, "pushed %s\n", name)
	}
	return nil
}

// RunModelsRemove deletes the named models.
func RunModelsRemove(ctx context.Context, w io.Writer, store ports.ModelStore, names []string) error {
	for _, name := range names {
		if err := store.Delete(ctx, name); err != nil {
			return fmt.Errorf("remove %s: %w", name, err)
		}
		fmt.Fprintf(w, "removed %s\n", name)
	}
	return nil
}
