package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/markov/pkg/domain"
)

// BaumWelch re-estimates a model from a corpus with batch forward-backward EM.
type BaumWelch struct {
	cfg config
}

// NewBaumWelch creates a trainer.
func NewBaumWelch(opts ...Option) *BaumWelch {
	return &BaumWelch{cfg: newConfig(opts)}
}

// Iterate runs one EM iteration over the whole corpus and returns the re-estimated
// model together with the corpus log-likelihood under the input model.
// The input model is not modified.
//
// Each sequence's contribution is computed independently and the contributions are
// summed in corpus order, so the result does not depend on the worker count.
func (bw *BaumWelch) Iterate(ctx context.Context, model *domain.Model, corpus *domain.Corpus) (*domain.Model, float64, error) {
	contribs := make([]*Accumulator, corpus.Len())

	err := forEach(ctx, bw.cfg.workers, corpus.Len(), func(n int) error {
		seq := corpus.Sequences[n]
		p, err := Posteriors(model, seq)
		if err != nil {
			return fmt.Errorf("sequence %d: %w", n+1, err)
		}
		acc := NewAccumulator(model.States, model.Symbols)
		acc.Add(p, seq)
		contribs[n] = acc
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	batch := NewAccumulator(model.States, model.Symbols)
	for _, c := range contribs {
		batch.Merge(c)
	}

	next, err := batch.Estimate(model.Name)
	if err != nil {
		return nil, 0, err
	}
	return next, batch.LogLikelihood(), nil
}

// Train runs a fixed number of iterations starting from model and returns the
// final model. There is no convergence check. The input model is not modified.
func (bw *BaumWelch) Train(ctx context.Context, model *domain.Model, corpus *domain.Corpus, iterations int) (*domain.Model, error) {
	if err := corpus.Validate(model.Symbols); err != nil {
		return nil, err
	}

	logger := bw.cfg.logger
	hooks := bw.cfg.trainingHooks
	current := model.Clone()

	for it := 1; it <= iterations; it++ {
		event := &domain.IterationEvent{
			Iteration:  it,
			Iterations: iterations,
			Sequences:  corpus.Len(),
		}
		if hooks.OnIterationStart != nil {
			hooks.OnIterationStart(ctx, event)
		}

		start := time.Now()
		next, llf, err := bw.Iterate(ctx, current, corpus)
		if err != nil {
			logger.Error("baum-welch iteration failed", "iteration", it, "err", err)
			return nil, fmt.Errorf("iteration %d: %w", it, err)
		}
		event.LogLikelihood = llf
		event.Duration = time.Since(start)

		logger.Debug("baum-welch iteration",
			"iteration", it,
			"of", iterations,
			"log_likelihood", llf,
			"duration", event.Duration,
		)
		if hooks.OnIterationEnd != nil {
			hooks.OnIterationEnd(ctx, event)
		}
		current = next
	}

	return current, nil
}
