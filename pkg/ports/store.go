package ports

import (
	"context"

	"github.com/aretw0/markov/pkg/domain"
)

// ModelStore persists trained models by name.
type ModelStore interface {
	// Save stores model under name, replacing any previous model of that name.
	Save(ctx context.Context, name string, model *domain.Model) error

	// Load retrieves the model stored under name.
	// Returns domain.ErrModelNotFound if no such model exists.
	Load(ctx context.Context, name string) (*domain.Model, error)

	// Delete removes the named model. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in lexical order.
	List(ctx context.Context) ([]string, error)
}
