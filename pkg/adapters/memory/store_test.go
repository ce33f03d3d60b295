package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/markov/pkg/adapters/memory"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ModelStore = (*memory.Store)(nil)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunModelStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Seeded(t *testing.T) {
	m := domain.NewModel("model_01.txt", 1, 1)
	m.Initial[0], m.Transition[0][0], m.Observation[0][0] = 1, 1, 1

	store := memory.NewStore(m)
	m.Initial[0] = 0

	loaded, err := store.Load(context.Background(), "model_01.txt")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, loaded.Initial[0], 0, "seed is copied")
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("model_%02d", i)
			assert.NoError(t, store.Save(ctx, name, domain.NewModel(name, 1, 1)))
			_, err := store.Load(ctx, name)
			assert.NoError(t, err)
			_, err = store.List(ctx)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 16)
}
