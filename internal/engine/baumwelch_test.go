package engine_test

import (
	"context"
	"testing"

	"github.com/aretw0/markov/internal/engine"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaumWelch_MonotonicLogLikelihood(t *testing.T) {
	corpus := sample(toyModel(), 60, 20, 42)
	bw := engine.NewBaumWelch()
	ctx := context.Background()

	model := skewedModel()
	prev := engine.LogLikelihood(model, corpus)

	for it := 0; it < 15; it++ {
		next, llf, err := bw.Iterate(ctx, model, corpus)
		require.NoError(t, err)

		// The reported value belongs to the model that entered the iteration.
		assert.InDelta(t, prev, llf, 1e-6)

		cur := engine.LogLikelihood(next, corpus)
		assert.GreaterOrEqual(t, cur, prev-1e-9, "iteration %d decreased log-likelihood", it+1)

		require.NoError(t, next.Validate(domain.DefaultTolerance), "iteration %d produced an invalid model", it+1)
		model, prev = next, cur
	}
}

func TestBaumWelch_DoesNotMutateInput(t *testing.T) {
	corpus := sample(toyModel(), 10, 10, 1)
	model := skewedModel()
	before := model.Clone()

	_, err := engine.NewBaumWelch().Train(context.Background(), model, corpus, 3)
	require.NoError(t, err)
	assert.Equal(t, before, model)
}

func TestBaumWelch_ZeroIterations(t *testing.T) {
	corpus := sample(toyModel(), 5, 10, 1)
	model := skewedModel()

	out, err := engine.NewBaumWelch().Train(context.Background(), model, corpus, 0)
	require.NoError(t, err)
	assert.Equal(t, model, out)
	assert.NotSame(t, model, out)
}

func TestBaumWelch_DeterministicAcrossWorkers(t *testing.T) {
	corpus := sample(toyModel(), 200, 30, 9)
	ctx := context.Background()

	sequential, err := engine.NewBaumWelch(engine.WithWorkers(1)).Train(ctx, skewedModel(), corpus, 5)
	require.NoError(t, err)

	again, err := engine.NewBaumWelch(engine.WithWorkers(1)).Train(ctx, skewedModel(), corpus, 5)
	require.NoError(t, err)
	assert.Equal(t, sequential, again)

	parallel, err := engine.NewBaumWelch(engine.WithWorkers(8)).Train(ctx, skewedModel(), corpus, 5)
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
}

func TestBaumWelch_UnreachableStateIsDegenerate(t *testing.T) {
	model := &domain.Model{
		Name:    "unreachable",
		States:  2,
		Symbols: 2,
		Initial: []float64{1, 0},
		Transition: [][]float64{
			{1, 0},
			{0.5, 0.5},
		},
		Observation: [][]float64{
			{0.5, 0.5},
			{0.5, 0.5},
		},
	}
	corpus := sample(toyModel(), 4, 6, 2)

	_, err := engine.NewBaumWelch().Train(context.Background(), model, corpus, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArithmeticDegeneracy)
	assert.Contains(t, err.Error(), "iteration 1")

	var degeneracy *domain.DegeneracyError
	require.ErrorAs(t, err, &degeneracy)
	assert.Equal(t, "transition", degeneracy.Quantity)
	assert.Equal(t, []int{1, 0}, degeneracy.Indices)
}

func TestBaumWelch_RejectsSymbolsOutsideModel(t *testing.T) {
	corpus := domain.NewCorpus(3)
	require.NoError(t, corpus.Append(domain.Sequence{0, 1, 2}))

	_, err := engine.NewBaumWelch().Train(context.Background(), toyModel(), corpus, 1)
	assert.ErrorIs(t, err, domain.ErrMalformedCorpus)
}

func TestBaumWelch_Hooks(t *testing.T) {
	corpus := sample(toyModel(), 10, 10, 5)
	var started, ended []int

	bw := engine.NewBaumWelch(engine.WithTrainingHooks(domain.TrainingHooks{
		OnIterationStart: func(ctx context.Context, e *domain.IterationEvent) {
			started = append(started, e.Iteration)
		},
		OnIterationEnd: func(ctx context.Context, e *domain.IterationEvent) {
			ended = append(ended, e.Iteration)
			assert.Equal(t, 3, e.Iterations)
			assert.Equal(t, 10, e.Sequences)
			assert.Less(t, e.LogLikelihood, 0.0)
		},
	}))

	_, err := bw.Train(context.Background(), skewedModel(), corpus, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, started)
	assert.Equal(t, []int{1, 2, 3}, ended)
}

func TestBaumWelch_Canceled(t *testing.T) {
	corpus := sample(toyModel(), 50, 10, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		_, err := engine.NewBaumWelch(engine.WithWorkers(workers)).Train(ctx, skewedModel(), corpus, 2)
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
	}
}
