package engine_test

import (
	"math/rand"

	"github.com/aretw0/markov/pkg/domain"
)

// toyModel is the 2-state, 2-symbol model used throughout the engine tests.
func toyModel() *domain.Model {
	return &domain.Model{
		Name:    "toy",
		States:  2,
		Symbols: 2,
		Initial: []float64{0.6, 0.4},
		Transition: [][]float64{
			{0.7, 0.3},
			{0.4, 0.6},
		},
		Observation: [][]float64{
			{0.5, 0.1},
			{0.5, 0.9},
		},
	}
}

// sample draws count sequences of length T from m with a fixed seed.
func sample(m *domain.Model, count, T int, seed int64) *domain.Corpus {
	rng := rand.New(rand.NewSource(seed))
	draw := func(p func(i int) float64, n int) int {
		u := rng.Float64()
		acc := 0.0
		for i := 0; i < n; i++ {
			acc += p(i)
			if u < acc {
				return i
			}
		}
		return n - 1
	}

	corpus := domain.NewCorpus(T)
	for c := 0; c < count; c++ {
		seq := make(domain.Sequence, T)
		state := draw(func(i int) float64 { return m.Initial[i] }, m.States)
		for t := 0; t < T; t++ {
			s := state
			seq[t] = draw(func(k int) float64 { return m.Observation[k][s] }, m.Symbols)
			state = draw(func(j int) float64 { return m.Transition[s][j] }, m.States)
		}
		if err := corpus.Append(seq); err != nil {
			panic(err)
		}
	}
	return corpus
}

// skewedModel is a deliberately poor starting point for re-estimation.
func skewedModel() *domain.Model {
	return &domain.Model{
		Name:    "start",
		States:  2,
		Symbols: 2,
		Initial: []float64{0.5, 0.5},
		Transition: [][]float64{
			{0.5, 0.5},
			{0.3, 0.7},
		},
		Observation: [][]float64{
			{0.6, 0.45},
			{0.4, 0.55},
		},
	}
}
