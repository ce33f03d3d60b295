package domain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validModel() *domain.Model {
	return &domain.Model{
		Name:        "m",
		States:      2,
		Symbols:     3,
		Initial:     []float64{0.6, 0.4},
		Transition:  [][]float64{{0.7, 0.3}, {0.4, 0.6}},
		Observation: [][]float64{{0.5, 0.1}, {0.3, 0.2}, {0.2, 0.7}},
	}
}

func TestNewModel(t *testing.T) {
	m := domain.NewModel("zero", 3, 4)
	assert.Len(t, m.Initial, 3)
	assert.Len(t, m.Transition, 3)
	assert.Len(t, m.Observation, 4)
	for _, row := range m.Observation {
		assert.Len(t, row, 3)
	}
	// A zero model has the right shape but is not stochastic.
	assert.ErrorIs(t, m.Validate(domain.DefaultTolerance), domain.ErrMalformedModel)
}

func TestModel_Clone(t *testing.T) {
	m := validModel()
	c := m.Clone()
	require.Equal(t, m, c)

	c.Initial[0] = 0
	c.Transition[0][0] = 0
	c.Observation[2][1] = 0
	assert.Equal(t, 0.6, m.Initial[0])
	assert.Equal(t, 0.7, m.Transition[0][0])
	assert.Equal(t, 0.7, m.Observation[2][1])
}

func TestModel_Validate(t *testing.T) {
	require.NoError(t, validModel().Validate(domain.DefaultTolerance))

	tests := []struct {
		name   string
		mutate func(m *domain.Model)
		field  string
	}{
		{"Zero States", func(m *domain.Model) { m.States = 0 }, "states"},
		{"Short Initial", func(m *domain.Model) { m.Initial = m.Initial[:1] }, "initial"},
		{"Ragged Transition", func(m *domain.Model) { m.Transition[1] = []float64{1} }, "transition row 1"},
		{"Missing Observation Row", func(m *domain.Model) { m.Observation = m.Observation[:2] }, "observation"},
		{"Initial Sum", func(m *domain.Model) { m.Initial[1] = 0.5 }, "initial"},
		{"Negative", func(m *domain.Model) { m.Transition[0] = []float64{1.3, -0.3} }, "transition row 0"},
		{"NaN", func(m *domain.Model) { m.Initial[0] = math.NaN() }, "initial"},
		{"Observation Column", func(m *domain.Model) { m.Observation[0][1] = 0.2 }, "observation column 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validModel()
			tt.mutate(m)

			err := m.Validate(domain.DefaultTolerance)
			require.ErrorIs(t, err, domain.ErrMalformedModel)

			var me *domain.ModelError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.field, me.Field)
			assert.Equal(t, "m", me.Model)
		})
	}
}

func TestModel_Validate_Tolerance(t *testing.T) {
	m := validModel()
	m.Initial = []float64{0.60005, 0.4}

	assert.Error(t, m.Validate(domain.DefaultTolerance))
	assert.NoError(t, m.Validate(domain.LoadTolerance))
}

func TestModel_Validate_Aggregates(t *testing.T) {
	m := validModel()
	m.Initial[0] = 0.9
	m.Transition[1][1] = 0.9

	err := m.Validate(domain.DefaultTolerance)
	require.Error(t, err)
	errs := domain.ValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Contains(t, err.Error(), "2 validation errors")
	for _, e := range errs {
		assert.ErrorIs(t, e, domain.ErrMalformedModel)
	}
}

func TestDegeneracyError(t *testing.T) {
	err := &domain.DegeneracyError{Quantity: "transition", Indices: []int{1, 0}, Value: 0}
	assert.Equal(t, "transition[1][0]: denominator 0", err.Error())
	assert.ErrorIs(t, err, domain.ErrArithmeticDegeneracy)
	assert.Nil(t, domain.ValidationErrors(err))
}
