package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/adapters/redis"
	"github.com/aretw0/markov/pkg/adapters/sqlite"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/observability"
	"github.com/aretw0/markov/pkg/ports"
)

// OpenStore builds the persistent model store selected by cfg. The returned close
// function is never nil.
func OpenStore(cfg config.Config) (ports.ModelStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Kind {
	case "file":
		s := file.NewStore(cfg.Store.Dir)
		s.Tolerance = cfg.Tolerance
		return s, noop, nil
	case "redis":
		r := cfg.Store.Redis
		s := redis.New(r.Addr, r.Password, r.DB, redis.WithPrefix(r.Prefix), redis.WithTTL(r.TTL))
		return s, s.Close, nil
	case "sqlite":
		s, err := sqlite.Open(cfg.Store.SQLite.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}
}

// NewEngine creates an engine with standard CLI conventions: configured workers
// and tolerance, iteration logging, and metrics when given.
func NewEngine(cfg config.Config, logger *slog.Logger, store ports.ModelStore, metrics *observability.Metrics) *markov.Engine {
	training := []domain.TrainingHooks{observability.LogTrainingHooks(logger)}
	var classification []domain.ClassificationHooks
	if metrics != nil {
		training = append(training, metrics.TrainingHooks())
		classification = append(classification, metrics.ClassificationHooks())
	}

	opts := []markov.Option{
		markov.WithLogger(logger),
		markov.WithWorkers(cfg.Workers),
		markov.WithTolerance(cfg.Tolerance),
		markov.WithTrainingHooks(observability.ChainTrainingHooks(training...)),
		markov.WithClassificationHooks(observability.ChainClassificationHooks(classification...)),
	}
	if store != nil {
		opts = append(opts, markov.WithStore(store))
	}
	return markov.New(opts...)
}
