package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/domain"
)

// TestOptions are the positional arguments of `markov test`.
type TestOptions struct {
	ModelsPath  string
	CorpusPath  string
	ResultsPath string
}

// ParseTestArgs expects <models> <corpus> <results>.
func ParseTestArgs(args []string) (TestOptions, error) {
	if len(args) != 3 {
		return TestOptions{}, fmt.Errorf("test takes 3 arguments, got %d: %w", len(args), domain.ErrInvocation)
	}
	return TestOptions{ModelsPath: args[0], CorpusPath: args[1], ResultsPath: args[2]}, nil
}

// RunTest classifies every sequence of the corpus against the model set and
// writes the results file.
func RunTest(ctx context.Context, cfg config.Config, logger *slog.Logger, opts TestOptions) ([]domain.Selection, error) {
	models, err := file.LoadModelSet(opts.ModelsPath, cfg.Tolerance)
	if err != nil {
		return nil, err
	}
	alphabet := domain.Alphabet{First: cfg.AlphabetStart(), Size: models[0].Symbols}
	corpus, err := file.LoadCorpus(opts.CorpusPath, alphabet, cfg.SequenceLength)
	if err != nil {
		return nil, err
	}

	logger.Info("classifying", "models", len(models), "sequences", corpus.Len())
	eng := NewEngine(cfg, logger, nil, nil)
	results, err := eng.Classify(ctx, models, corpus)
	if err != nil {
		return nil, err
	}
	if err := file.SaveResults(opts.ResultsPath, results); err != nil {
		return nil, err
	}
	logger.Info("results written", "path", opts.ResultsPath)
	return results, nil
}
