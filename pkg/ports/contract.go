package ports

import (
	"context"
	"testing"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractModel(name string) *domain.Model {
	return &domain.Model{
		Name:        name,
		States:      2,
		Symbols:     3,
		Initial:     []float64{0.6, 0.4},
		Transition:  [][]float64{{0.7, 0.3}, {0.4, 0.6}},
		Observation: [][]float64{{0.5, 0.1}, {0.25, 0.3}, {0.25, 0.6}},
	}
}

// RunModelStoreContract runs a suite of tests to verify that a ModelStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunModelStoreContract(t *testing.T, store ModelStore) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		model := contractModel("model_01")
		require.NoError(t, store.Save(ctx, "model_01", model))

		loaded, err := store.Load(ctx, "model_01")
		require.NoError(t, err)
		assert.Equal(t, model, loaded)
		assert.NotSame(t, model, loaded)

		// Mutating the loaded copy must not leak back into the store.
		loaded.Initial[0] = 0
		again, err := store.Load(ctx, "model_01")
		require.NoError(t, err)
		assert.InDelta(t, 0.6, again.Initial[0], 0)
	})

	t.Run("Overwrite", func(t *testing.T) {
		first := contractModel("model_02")
		require.NoError(t, store.Save(ctx, "model_02", first))

		second := contractModel("model_02")
		second.Initial = []float64{0.1, 0.9}
		require.NoError(t, store.Save(ctx, "model_02", second))

		loaded, err := store.Load(ctx, "model_02")
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, 0.9}, loaded.Initial)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("List is sorted", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "model_00", contractModel("model_00")))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"model_00", "model_01", "model_02"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "model_00"))
		require.NoError(t, store.Delete(ctx, "model_00"), "deleting twice is not an error")

		_, err := store.Load(ctx, "model_00")
		assert.ErrorIs(t, err, domain.ErrModelNotFound)

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, "model_00")
	})

	t.Run("Cleanup", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "model_01"))
		require.NoError(t, store.Delete(ctx, "model_02"))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
