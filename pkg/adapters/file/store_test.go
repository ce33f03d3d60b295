package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ModelStore = (*file.Store)(nil)

func TestStore_Contract(t *testing.T) {
	ports.RunModelStoreContract(t, file.NewStore(t.TempDir()))
}

func TestStore_FormatFollowsName(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "model_01.yaml", toy()))
	data, err := os.ReadFile(filepath.Join(dir, "model_01.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "transition:")
	assert.Contains(t, string(data), "- - 0.7")

	loaded, err := store.Load(ctx, "model_01.yaml")
	require.NoError(t, err)
	assert.Equal(t, "model_01.yaml", loaded.Name)
	assert.Equal(t, toy().Transition, loaded.Transition)
}

func TestStore_IgnoresTempAndHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-model_01.txt-123"), []byte("partial"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".keep"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))

	names, err := file.NewStore(dir).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_RejectsPathNames(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "..", "../escape", "sub/model", "tmp-x"} {
		assert.Error(t, store.Save(ctx, name, toy()), name)
	}
}

func TestStore_MissingDirectoryListsNothing(t *testing.T) {
	names, err := file.NewStore(filepath.Join(t.TempDir(), "absent")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_LoadRejectsInvalidModel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad"), []byte("initial: 2\n0.5 0.6\ntransition: 2\n1 0\n0 1\nobservation: 1\n1 1\n"), 0644))

	_, err := file.NewStore(dir).Load(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrMalformedModel)
	assert.NotErrorIs(t, err, domain.ErrModelNotFound)
}
