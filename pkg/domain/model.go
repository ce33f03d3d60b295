package domain

import (
	"fmt"
	"math"
)

// DefaultTolerance is the slack allowed when checking that a distribution sums to one.
const DefaultTolerance = 1e-6

// LoadTolerance is the slack for models read back from files, whose values are rounded
// to a handful of significant digits.
const LoadTolerance = 1e-4

// Model is a discrete Hidden Markov Model.
type Model struct {
	// Name identifies the model in classification output (usually its file name).
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// States is the number of hidden states (N).
	States int `json:"states" yaml:"states"`

	// Symbols is the number of observable symbols (M).
	Symbols int `json:"symbols" yaml:"symbols"`

	// Initial is the initial-state distribution, length N.
	Initial []float64 `json:"initial" yaml:"initial"`

	// Transition[i][j] is the probability of moving from state i to state j.
	Transition [][]float64 `json:"transition" yaml:"transition"`

	// Observation[k][j] is the probability of emitting symbol k in state j.
	// Each column sums to one.
	Observation [][]float64 `json:"observation" yaml:"observation"`
}

// NewModel returns a zero-filled model with the given dimensions.
func NewModel(name string, states, symbols int) *Model {
	m := &Model{
		Name:        name,
		States:      states,
		Symbols:     symbols,
		Initial:     make([]float64, states),
		Transition:  make([][]float64, states),
		Observation: make([][]float64, symbols),
	}
	for i := range m.Transition {
		m.Transition[i] = make([]float64, states)
	}
	for k := range m.Observation {
		m.Observation[k] = make([]float64, states)
	}
	return m
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	c := &Model{
		Name:        m.Name,
		States:      m.States,
		Symbols:     m.Symbols,
		Initial:     append([]float64(nil), m.Initial...),
		Transition:  make([][]float64, len(m.Transition)),
		Observation: make([][]float64, len(m.Observation)),
	}
	for i, row := range m.Transition {
		c.Transition[i] = append([]float64(nil), row...)
	}
	for k, row := range m.Observation {
		c.Observation[k] = append([]float64(nil), row...)
	}
	return c
}

// Alphabet returns the default alphabet sized for this model's symbols.
func (m *Model) Alphabet() Alphabet {
	return NewAlphabet(m.Symbols)
}

// Validate checks dimensions and that every distribution is non-negative and sums
// to one within tol. All failures wrap ErrMalformedModel.
func (m *Model) Validate(tol float64) error {
	if err := m.validateShape(); err != nil {
		return err
	}

	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &ModelError{Model: m.Name, Field: field, Reason: fmt.Sprintf(format, args...)})
	}
	check := func(field string, values []float64) {
		sum := 0.0
		for _, v := range values {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				fail(field, "contains a negative or non-finite probability")
				return
			}
			sum += v
		}
		if math.Abs(sum-1) > tol {
			fail(field, "sums to %g, want 1", sum)
		}
	}

	check("initial", m.Initial)
	for i, row := range m.Transition {
		check(fmt.Sprintf("transition row %d", i), row)
	}
	column := make([]float64, m.Symbols)
	for j := 0; j < m.States; j++ {
		for k := range column {
			column[k] = m.Observation[k][j]
		}
		check(fmt.Sprintf("observation column %d", j), column)
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &AggregateError{Errors: errs}
	}
}

func (m *Model) validateShape() error {
	fail := func(field, format string, args ...any) error {
		return &ModelError{Model: m.Name, Field: field, Reason: fmt.Sprintf(format, args...)}
	}
	if m.States <= 0 {
		return fail("states", "must be positive, got %d", m.States)
	}
	if m.Symbols <= 0 {
		return fail("symbols", "must be positive, got %d", m.Symbols)
	}
	if len(m.Initial) != m.States {
		return fail("initial", "has %d entries, want %d", len(m.Initial), m.States)
	}
	if len(m.Transition) != m.States {
		return fail("transition", "has %d rows, want %d", len(m.Transition), m.States)
	}
	for i, row := range m.Transition {
		if len(row) != m.States {
			return fail(fmt.Sprintf("transition row %d", i), "has %d entries, want %d", len(row), m.States)
		}
	}
	if len(m.Observation) != m.Symbols {
		return fail("observation", "has %d rows, want %d", len(m.Observation), m.Symbols)
	}
	for k, row := range m.Observation {
		if len(row) != m.States {
			return fail(fmt.Sprintf("observation row %d", k), "has %d entries, want %d", len(row), m.States)
		}
	}
	return nil
}
