package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/markov/pkg/adapters/sqlite"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ModelStore = (*sqlite.Store)(nil)

func openStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	ports.RunModelStoreContract(t, openStore(t, filepath.Join(t.TempDir(), "models.db")))
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.db")
	ctx := context.Background()

	m := domain.NewModel("", 1, 2)
	m.Initial[0], m.Transition[0][0] = 1, 1
	m.Observation[0][0], m.Observation[1][0] = 0.25, 0.75

	first, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "model_01.txt", m))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	loaded, err := second.Load(ctx, "model_01.txt")
	require.NoError(t, err)
	assert.Equal(t, "model_01.txt", loaded.Name)
	assert.Equal(t, 0.75, loaded.Observation[1][0])
	require.NoError(t, loaded.Validate(domain.DefaultTolerance))
}

func TestSQLiteStore_Open(t *testing.T) {
	_, err := sqlite.Open("  ")
	assert.Error(t, err)

	store := openStore(t, filepath.Join(t.TempDir(), "models.db"))
	assert.Error(t, store.Save(context.Background(), "", domain.NewModel("", 1, 1)))

	var nilStore *sqlite.Store
	assert.NoError(t, nilStore.Close())
}
