package engine_test

import (
	"context"
	"testing"

	"github.com/aretw0/markov/internal/engine"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViterbi_HandChecked(t *testing.T) {
	// delta[.][0] = [0.3, 0.04]
	// delta[0][1] = max(0.3*0.7, 0.04*0.4) * 0.5 = 0.105
	// delta[1][1] = max(0.3*0.3, 0.04*0.6) * 0.9 = 0.081
	assert.InDelta(t, 0.105, engine.Viterbi(toyModel(), domain.Sequence{0, 1}), tol)
}

func TestViterbi_NeverExceedsForwardLikelihood(t *testing.T) {
	models := []*domain.Model{toyModel(), skewedModel()}
	corpus := sample(toyModel(), 50, 15, 11)

	for _, m := range models {
		for n, seq := range corpus.Sequences {
			v := engine.Viterbi(m, seq)
			p := engine.Likelihood(engine.Forward(m, seq))
			assert.LessOrEqual(t, v, p*(1+1e-12), "model %s, sequence %d", m.Name, n)
			assert.Greater(t, v, 0.0)
		}
	}
}

func TestViterbi_SingleSymbol(t *testing.T) {
	// max(0.6*0.5, 0.4*0.1)
	assert.InDelta(t, 0.3, engine.Viterbi(toyModel(), domain.Sequence{0}), tol)
}

func TestDecode(t *testing.T) {
	path, p := engine.Decode(toyModel(), domain.Sequence{0, 1})
	assert.Equal(t, []int{0, 0}, path)
	assert.InDelta(t, 0.105, p, tol)

	path, p = engine.Decode(toyModel(), nil)
	assert.Nil(t, path)
	assert.Zero(t, p)
}

func TestDecode_AgreesWithViterbi(t *testing.T) {
	m := skewedModel()
	for n, seq := range sample(toyModel(), 20, 10, 3).Sequences {
		path, p := engine.Decode(m, seq)
		require.Len(t, path, len(seq))
		assert.InDelta(t, engine.Viterbi(m, seq), p, 1e-15, "sequence %d", n)

		// the returned path must reproduce its own probability
		q := m.Initial[path[0]] * m.Observation[seq[0]][path[0]]
		for k := 1; k < len(seq); k++ {
			q *= m.Transition[path[k-1]][path[k]] * m.Observation[seq[k]][path[k]]
		}
		assert.InDelta(t, p, q, 1e-15, "sequence %d", n)
	}
}

func TestSelect(t *testing.T) {
	seq := domain.Sequence{1, 1, 1, 1}

	prefersA := toyModel()
	prefersA.Name = "model_01.txt"
	prefersA.Observation = [][]float64{{0.9, 0.9}, {0.1, 0.1}}

	prefersB := toyModel()
	prefersB.Name = "model_02.txt"
	prefersB.Observation = [][]float64{{0.1, 0.1}, {0.9, 0.9}}

	neutral := toyModel()
	neutral.Name = "model_03.txt"

	t.Run("Highest wins", func(t *testing.T) {
		got := engine.Select([]*domain.Model{prefersA, prefersB, neutral}, seq)
		assert.Equal(t, 1, got.Index)
		assert.Equal(t, "model_02.txt", got.Model)
		assert.InDelta(t, engine.Viterbi(prefersB, seq), got.Probability, 0)
	})

	t.Run("First wins ties", func(t *testing.T) {
		twin := prefersB.Clone()
		twin.Name = "twin"
		got := engine.Select([]*domain.Model{prefersA, prefersB, twin}, seq)
		assert.Equal(t, "model_02.txt", got.Model)
	})

	t.Run("Empty", func(t *testing.T) {
		got := engine.Select(nil, seq)
		assert.Equal(t, -1, got.Index)
	})
}

func TestClassifier_Classify(t *testing.T) {
	a := toyModel()
	a.Name = "model_01.txt"
	a.Observation = [][]float64{{0.9, 0.8}, {0.1, 0.2}}
	b := toyModel()
	b.Name = "model_02.txt"
	b.Observation = [][]float64{{0.2, 0.1}, {0.8, 0.9}}

	corpus := domain.NewCorpus(3)
	require.NoError(t, corpus.Append(domain.Sequence{0, 0, 0}))
	require.NoError(t, corpus.Append(domain.Sequence{1, 1, 1}))
	require.NoError(t, corpus.Append(domain.Sequence{1, 1, 0}))

	var events []int
	for _, workers := range []int{1, 3} {
		events = events[:0]
		c := engine.NewClassifier(
			engine.WithWorkers(workers),
			engine.WithClassificationHooks(domain.ClassificationHooks{
				OnSelect: func(ctx context.Context, e *domain.ClassificationEvent) {
					events = append(events, e.Sequence)
				},
			}),
		)

		results, err := c.Classify(context.Background(), []*domain.Model{a, b}, corpus)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "model_01.txt", results[0].Model)
		assert.Equal(t, "model_02.txt", results[1].Model)
		assert.Equal(t, "model_02.txt", results[2].Model)
		assert.Equal(t, []int{0, 1, 2}, events, "hooks fire in corpus order")
	}
}

func TestClassifier_Errors(t *testing.T) {
	corpus := domain.NewCorpus(2)
	require.NoError(t, corpus.Append(domain.Sequence{0, 3}))
	c := engine.NewClassifier()

	_, err := c.Classify(context.Background(), nil, corpus)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)

	_, err = c.Classify(context.Background(), []*domain.Model{toyModel()}, corpus)
	assert.ErrorIs(t, err, domain.ErrMalformedCorpus)
}
