package engine

import (
	"context"
	"fmt"

	"github.com/aretw0/markov/pkg/domain"
)

// Viterbi returns the probability of the single most likely state path for seq.
func Viterbi(m *domain.Model, seq domain.Sequence) float64 {
	n := m.States
	if len(seq) == 0 {
		return 0
	}

	prev := make([]float64, n)
	cur := make([]float64, n)

	o := seq[0]
	for i := 0; i < n; i++ {
		prev[i] = m.Initial[i] * m.Observation[o][i]
	}

	for t := 1; t < len(seq); t++ {
		o := seq[t]
		for j := 0; j < n; j++ {
			best := 0.0
			for i := 0; i < n; i++ {
				if v := prev[i] * m.Transition[i][j]; v > best {
					best = v
				}
			}
			cur[j] = best * m.Observation[o][j]
		}
		prev, cur = cur, prev
	}

	best := 0.0
	for _, v := range prev {
		if v > best {
			best = v
		}
	}
	return best
}

// Decode returns the most likely state path for seq together with its
// probability, which equals Viterbi(m, seq). Ties resolve to the lower state.
func Decode(m *domain.Model, seq domain.Sequence) ([]int, float64) {
	n, T := m.States, len(seq)
	if T == 0 {
		return nil, 0
	}

	delta := newMatrix(T, n)
	back := make([][]int, T)
	for t := range back {
		back[t] = make([]int, n)
	}

	o := seq[0]
	for i := 0; i < n; i++ {
		delta[0][i] = m.Initial[i] * m.Observation[o][i]
	}
	for t := 1; t < T; t++ {
		o := seq[t]
		for j := 0; j < n; j++ {
			best, arg := 0.0, 0
			for i := 0; i < n; i++ {
				if v := delta[t-1][i] * m.Transition[i][j]; v > best {
					best, arg = v, i
				}
			}
			delta[t][j] = best * m.Observation[o][j]
			back[t][j] = arg
		}
	}

	path := make([]int, T)
	best := 0.0
	for i, v := range delta[T-1] {
		if v > best {
			best, path[T-1] = v, i
		}
	}
	for t := T - 1; t > 0; t-- {
		path[t-1] = back[t][path[t]]
	}
	return path, best
}

// Select scores seq against every model in order and returns the model with the
// strictly highest Viterbi probability, so the earliest model wins ties.
// Index is -1 when models is empty.
func Select(models []*domain.Model, seq domain.Sequence) domain.Selection {
	best := domain.Selection{Index: -1, Probability: -1}
	for idx, m := range models {
		if p := Viterbi(m, seq); p > best.Probability {
			best = domain.Selection{Index: idx, Model: m.Name, Probability: p}
		}
	}
	return best
}

// Classifier selects the best model for every sequence of a corpus.
type Classifier struct {
	cfg config
}

// NewClassifier creates a classifier.
func NewClassifier(opts ...Option) *Classifier {
	return &Classifier{cfg: newConfig(opts)}
}

// Classify returns one Selection per sequence, in corpus order.
func (c *Classifier) Classify(ctx context.Context, models []*domain.Model, corpus *domain.Corpus) ([]domain.Selection, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("no candidate models: %w", domain.ErrModelNotFound)
	}
	for _, m := range models {
		if err := corpus.Validate(m.Symbols); err != nil {
			return nil, fmt.Errorf("model %q: %w", m.Name, err)
		}
	}

	results := make([]domain.Selection, corpus.Len())
	err := forEach(ctx, c.cfg.workers, corpus.Len(), func(n int) error {
		results[n] = Select(models, corpus.Sequences[n])
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cfg.logger.Debug("classified corpus", "sequences", corpus.Len(), "models", len(models))
	if hook := c.cfg.classificationHooks.OnSelect; hook != nil {
		for n := range results {
			hook(ctx, &domain.ClassificationEvent{Sequence: n, Selection: results[n]})
		}
	}
	return results, nil
}
