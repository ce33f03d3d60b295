package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/markov/pkg/domain"
)

// ChainTrainingHooks calls every non-nil callback of hooks in order.
func ChainTrainingHooks(hooks ...domain.TrainingHooks) domain.TrainingHooks {
	return domain.TrainingHooks{
		OnIterationStart: func(ctx context.Context, e *domain.IterationEvent) {
			for _, h := range hooks {
				if h.OnIterationStart != nil {
					h.OnIterationStart(ctx, e)
				}
			}
		},
		OnIterationEnd: func(ctx context.Context, e *domain.IterationEvent) {
			for _, h := range hooks {
				if h.OnIterationEnd != nil {
					h.OnIterationEnd(ctx, e)
				}
			}
		},
	}
}

// ChainClassificationHooks calls every non-nil callback of hooks in order.
func ChainClassificationHooks(hooks ...domain.ClassificationHooks) domain.ClassificationHooks {
	return domain.ClassificationHooks{
		OnSelect: func(ctx context.Context, e *domain.ClassificationEvent) {
			for _, h := range hooks {
				if h.OnSelect != nil {
					h.OnSelect(ctx, e)
				}
			}
		},
	}
}

// LogTrainingHooks reports every finished iteration at info level.
func LogTrainingHooks(logger *slog.Logger) domain.TrainingHooks {
	return domain.TrainingHooks{
		OnIterationEnd: func(ctx context.Context, e *domain.IterationEvent) {
			logger.InfoContext(ctx, "iteration",
				"n", e.Iteration,
				"of", e.Iterations,
				"log_likelihood", e.LogLikelihood,
				"duration", e.Duration,
			)
		},
	}
}
