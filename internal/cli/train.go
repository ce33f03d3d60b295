package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/domain"
)

// TrainOptions are the positional arguments of `markov train`.
type TrainOptions struct {
	Iterations  int
	InitialPath string
	CorpusPath  string
	OutputPath  string
}

// ParseTrainArgs expects <iterations> <initial-model> <corpus> <output-model>.
func ParseTrainArgs(args []string) (TrainOptions, error) {
	if len(args) != 4 {
		return TrainOptions{}, fmt.Errorf("train takes 4 arguments, got %d: %w", len(args), domain.ErrInvocation)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return TrainOptions{}, fmt.Errorf("iterations must be a non-negative integer, got %q", args[0])
	}
	return TrainOptions{
		Iterations:  n,
		InitialPath: args[1],
		CorpusPath:  args[2],
		OutputPath:  args[3],
	}, nil
}

// RunTrain loads the initial model and corpus, runs Baum-Welch and writes the result.
func RunTrain(ctx context.Context, cfg config.Config, logger *slog.Logger, opts TrainOptions) (*domain.Model, error) {
	initial, err := file.LoadModelWithTolerance(opts.InitialPath, cfg.Tolerance)
	if err != nil {
		return nil, err
	}
	alphabet := domain.Alphabet{First: cfg.AlphabetStart(), Size: initial.Symbols}
	corpus, err := file.LoadCorpus(opts.CorpusPath, alphabet, cfg.SequenceLength)
	if err != nil {
		return nil, err
	}

	eng := NewEngine(cfg, logger, nil, nil)
	trained, err := eng.Train(ctx, initial, corpus, opts.Iterations)
	if err != nil {
		return nil, err
	}
	if err := file.SaveModel(opts.OutputPath, trained); err != nil {
		return nil, err
	}
	logger.Info("model written", "path", opts.OutputPath)
	return trained, nil
}
