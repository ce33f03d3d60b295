package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/markov/pkg/domain"
	"golang.org/x/sync/errgroup"
)

type config struct {
	workers             int
	logger              *slog.Logger
	trainingHooks       domain.TrainingHooks
	classificationHooks domain.ClassificationHooks
}

// Option configures a BaumWelch trainer or a Classifier.
type Option func(*config)

// WithWorkers bounds how many sequences are processed concurrently.
// Values below 2 process the corpus sequentially.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTrainingHooks registers iteration callbacks.
func WithTrainingHooks(hooks domain.TrainingHooks) Option {
	return func(c *config) {
		c.trainingHooks = hooks
	}
}

// WithClassificationHooks registers selection callbacks.
func WithClassificationHooks(hooks domain.ClassificationHooks) Option {
	return func(c *config) {
		c.classificationHooks = hooks
	}
}

func newConfig(opts []Option) config {
	c := config{workers: 1}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// forEach calls fn for 0..n-1 using up to workers goroutines. fn must only write
// to state owned by its index.
func forEach(ctx context.Context, workers, n int, fn func(i int) error) error {
	if workers < 2 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return fn(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
