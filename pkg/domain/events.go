package domain

import (
	"context"
	"time"
)

// Selection is the outcome of classifying one sequence against a set of models.
type Selection struct {
	// Index is the position of the chosen model in the candidate list.
	Index int `json:"index"`
	// Model is the chosen model's name.
	Model string `json:"model"`
	// Probability is the Viterbi probability of the sequence under the chosen model.
	Probability float64 `json:"probability"`
}

// IterationEvent describes one Baum-Welch iteration.
type IterationEvent struct {
	Iteration  int // 1-based
	Iterations int // total requested
	Sequences  int
	// LogLikelihood is the corpus log-likelihood under the model that entered the iteration.
	LogLikelihood float64
	Duration      time.Duration
}

// ClassificationEvent describes the selection made for one sequence.
type ClassificationEvent struct {
	Sequence  int // 0-based position in the corpus
	Selection Selection
}

// TrainingHooks defines callbacks for training observability.
type TrainingHooks struct {
	OnIterationStart func(context.Context, *IterationEvent)
	OnIterationEnd   func(context.Context, *IterationEvent)
}

// ClassificationHooks defines callbacks for classification observability.
type ClassificationHooks struct {
	OnSelect func(context.Context, *ClassificationEvent)
}
