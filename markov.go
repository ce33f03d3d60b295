package markov

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/aretw0/markov/internal/engine"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
)

// Engine is the high-level entry point for the markov library.
// It wraps the Baum-Welch trainer and the Viterbi classifier and, when a store is
// configured, resolves models by name.
type Engine struct {
	trainer             *engine.BaumWelch
	classifier          *engine.Classifier
	store               ports.ModelStore
	workers             int
	tolerance           float64
	trainingHooks       domain.TrainingHooks
	classificationHooks domain.ClassificationHooks
	logger              *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets the model store used by Models and LoadModels.
func WithStore(store ports.ModelStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithWorkers bounds how many sequences are processed concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithTolerance sets the slack used when validating input models.
func WithTolerance(tol float64) Option {
	return func(e *Engine) {
		e.tolerance = tol
	}
}

// WithTrainingHooks registers iteration callbacks.
func WithTrainingHooks(hooks domain.TrainingHooks) Option {
	return func(e *Engine) {
		e.trainingHooks = hooks
	}
}

// WithClassificationHooks registers selection callbacks.
func WithClassificationHooks(hooks domain.ClassificationHooks) Option {
	return func(e *Engine) {
		e.classificationHooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		workers:   1,
		tolerance: domain.LoadTolerance,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e.trainer = engine.NewBaumWelch(
		engine.WithWorkers(e.workers),
		engine.WithLogger(e.logger),
		engine.WithTrainingHooks(e.trainingHooks),
	)
	e.classifier = engine.NewClassifier(
		engine.WithWorkers(e.workers),
		engine.WithLogger(e.logger),
		engine.WithClassificationHooks(e.classificationHooks),
	)
	return e
}

// Train re-estimates model from corpus for a fixed number of iterations.
// The input model is validated first and is never modified.
func (e *Engine) Train(ctx context.Context, model *domain.Model, corpus *domain.Corpus, iterations int) (*domain.Model, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("iterations must be non-negative, got %d: %w", iterations, domain.ErrInvocation)
	}
	if err := model.Validate(e.tolerance); err != nil {
		return nil, err
	}

	e.logger.Info("training started",
		"model", model.Name,
		"states", model.States,
		"symbols", model.Symbols,
		"sequences", corpus.Len(),
		"length", corpus.Length,
		"iterations", iterations,
	)
	trained, err := e.trainer.Train(ctx, model, corpus, iterations)
	if err != nil {
		return nil, err
	}
	e.logger.Info("training finished", "model", trained.Name)
	return trained, nil
}

// Classify selects the best of models for every sequence of corpus.
// Model order matters: the earliest model wins ties.
func (e *Engine) Classify(ctx context.Context, models []*domain.Model, corpus *domain.Corpus) ([]domain.Selection, error) {
	for _, m := range models {
		if err := m.Validate(e.tolerance); err != nil {
			return nil, err
		}
	}
	return e.classifier.Classify(ctx, models, corpus)
}

// Score reports how well one model explains one sequence.
type Score struct {
	Model         string  `json:"model"`
	Viterbi       float64 `json:"viterbi"`
	Path          []int   `json:"path"`
	Likelihood    float64 `json:"likelihood"`
	LogLikelihood float64 `json:"log_likelihood"`
}

// Possible reports whether the model can emit the sequence at all. When it cannot,
// LogLikelihood is -Inf, which JSON cannot represent.
func (s Score) Possible() bool {
	return s.Likelihood > 0
}

// Score computes the Viterbi probability, its state path and the forward
// likelihood of seq under model. The model is validated first.
func (e *Engine) Score(model *domain.Model, seq domain.Sequence) (Score, error) {
	if err := model.Validate(e.tolerance); err != nil {
		return Score{}, err
	}
	corpus := domain.NewCorpus(len(seq))
	if err := corpus.Append(seq); err != nil {
		return Score{}, err
	}
	if err := corpus.Validate(model.Symbols); err != nil {
		return Score{}, err
	}
	p := engine.Likelihood(engine.Forward(model, seq))
	path, v := engine.Decode(model, seq)
	return Score{
		Model:         model.Name,
		Viterbi:       v,
		Path:          path,
		Likelihood:    p,
		LogLikelihood: math.Log(p),
	}, nil
}

// Models lists the names available in the configured store.
func (e *Engine) Models(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return nil, fmt.Errorf("no model store configured")
	}
	return e.store.List(ctx)
}

// LoadModels loads the named models from the configured store, in the given order.
// With no names, every stored model is loaded in List order.
func (e *Engine) LoadModels(ctx context.Context, names ...string) ([]*domain.Model, error) {
	if e.store == nil {
		return nil, fmt.Errorf("no model store configured")
	}
	if len(names) == 0 {
		var err error
		if names, err = e.store.List(ctx); err != nil {
			return nil, err
		}
	}
	models := make([]*domain.Model, 0, len(names))
	for _, name := range names {
		m, err := e.store.Load(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", name, err)
		}
		models = append(models, m)
	}
	return models, nil
}
