package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedCorpus is returned when a sequence has the wrong length or contains
// a symbol outside the alphabet.
var ErrMalformedCorpus = errors.New("malformed corpus")

// ErrMalformedModel is returned when model dimensions disagree or a distribution
// is not a proper probability distribution.
var ErrMalformedModel = errors.New("malformed model")

// ErrArithmeticDegeneracy is returned when a normalization step divides by zero
// or produces a non-finite value.
var ErrArithmeticDegeneracy = errors.New("arithmetic degeneracy")

// ErrInvocation is returned when a command is invoked with the wrong arguments.
var ErrInvocation = errors.New("invalid invocation")

// ErrModelNotFound is returned when a model name cannot be found in the store.
var ErrModelNotFound = errors.New("model not found")

// ModelError describes a single problem found in a model.
type ModelError struct {
	Model  string // Model name, may be empty
	Field  string // "initial", "transition[2]", "observation column 1", ...
	Reason string
}

func (e *ModelError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("model %q: %s: %s", e.Model, e.Field, e.Reason)
}

func (e *ModelError) Unwrap() error { return ErrMalformedModel }

// CorpusError describes a rejected corpus line.
type CorpusError struct {
	Line   int // 1-based, 0 when unknown
	Reason string
}

func (e *CorpusError) Error() string {
	if e.Line == 0 {
		return "corpus: " + e.Reason
	}
	return fmt.Sprintf("corpus line %d: %s", e.Line, e.Reason)
}

func (e *CorpusError) Unwrap() error { return ErrMalformedCorpus }

// DegeneracyError reports which quantity could not be normalized.
type DegeneracyError struct {
	Quantity string // "gamma", "epsilon", "transition", ...
	Indices  []int
	Value    float64 // the offending denominator
}

func (e *DegeneracyError) Error() string {
	var idx []string
	for _, i := range e.Indices {
		idx = append(idx, fmt.Sprint(i))
	}
	return fmt.Sprintf("%s[%s]: denominator %g", e.Quantity, strings.Join(idx, "]["), e.Value)
}

func (e *DegeneracyError) Unwrap() error { return ErrArithmeticDegeneracy }

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
