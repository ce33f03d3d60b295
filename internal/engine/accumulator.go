package engine

import (
	"math"

	"github.com/aretw0/markov/pkg/domain"
	"gonum.org/v1/gonum/floats"
)

// Accumulator holds the numerator and denominator sums of one Baum-Welch iteration.
// The transition and observation denominators depend only on the source state,
// so they are kept as one value per state.
type Accumulator struct {
	states  int
	symbols int

	initial  []float64   // sum of gamma[i][0]
	transNum [][]float64 // [i][j] sum over t < T-1 of epsilon[t][i][j]
	transDen []float64   // [i] sum over t < T-1 of gamma[i][t]
	obsNum   [][]float64 // [k][i] sum over t with o_t == k of gamma[i][t]
	obsDen   []float64   // [i] sum over all t of gamma[i][t]

	sequences     int
	logLikelihood float64
}

// NewAccumulator returns a zeroed accumulator for the given dimensions.
func NewAccumulator(states, symbols int) *Accumulator {
	return &Accumulator{
		states:   states,
		symbols:  symbols,
		initial:  make([]float64, states),
		transNum: newMatrix(states, states),
		transDen: make([]float64, states),
		obsNum:   newMatrix(symbols, states),
		obsDen:   make([]float64, states),
	}
}

// Reset zeroes every sum.
func (a *Accumulator) Reset() {
	zero(a.initial)
	zero(a.transDen)
	zero(a.obsDen)
	for _, row := range a.transNum {
		zero(row)
	}
	for _, row := range a.obsNum {
		zero(row)
	}
	a.sequences = 0
	a.logLikelihood = 0
}

// Add folds the posteriors of one sequence into the sums.
func (a *Accumulator) Add(p *Posterior, seq domain.Sequence) {
	T := len(seq)
	for i := 0; i < a.states; i++ {
		g := p.Gamma[i]
		a.initial[i] += g[0]

		head := floats.Sum(g[:T-1])
		a.transDen[i] += head
		a.obsDen[i] += head + g[T-1]

		for t, o := range seq {
			a.obsNum[o][i] += g[t]
		}
	}
	for _, e := range p.Epsilon {
		for i, row := range e {
			floats.Add(a.transNum[i], row)
		}
	}
	a.sequences++
	a.logLikelihood += math.Log(p.Likelihood)
}

// Merge adds the sums of b into a.
func (a *Accumulator) Merge(b *Accumulator) {
	floats.Add(a.initial, b.initial)
	floats.Add(a.transDen, b.transDen)
	floats.Add(a.obsDen, b.obsDen)
	for i := range a.transNum {
		floats.Add(a.transNum[i], b.transNum[i])
	}
	for k := range a.obsNum {
		floats.Add(a.obsNum[k], b.obsNum[k])
	}
	a.sequences += b.sequences
	a.logLikelihood += b.logLikelihood
}

// Sequences returns how many sequences have been accumulated.
func (a *Accumulator) Sequences() int { return a.sequences }

// LogLikelihood returns the summed log-likelihood of the accumulated sequences
// under the model that produced their posteriors.
func (a *Accumulator) LogLikelihood() float64 { return a.logLikelihood }

// Estimate divides the sums into a new model. A zero denominator, such as a state
// that is never occupied, is reported as a DegeneracyError.
func (a *Accumulator) Estimate(name string) (*domain.Model, error) {
	m := domain.NewModel(name, a.states, a.symbols)
	var err error

	for i := 0; i < a.states; i++ {
		if m.Initial[i], err = divide(a.initial[i], float64(a.sequences), "initial", i); err != nil {
			return nil, err
		}
		for j := 0; j < a.states; j++ {
			if m.Transition[i][j], err = divide(a.transNum[i][j], a.transDen[i], "transition", i, j); err != nil {
				return nil, err
			}
		}
	}
	for k := 0; k < a.symbols; k++ {
		for i := 0; i < a.states; i++ {
			if m.Observation[k][i], err = divide(a.obsNum[k][i], a.obsDen[i], "observation", k, i); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}
