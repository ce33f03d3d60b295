package engine

import (
	"math"

	"github.com/aretw0/markov/pkg/domain"
)

// Forward computes the forward table: alpha[i][t] is the probability of the first
// t+1 observations with the model in state i at time t.
func Forward(m *domain.Model, seq domain.Sequence) [][]float64 {
	n, T := m.States, len(seq)
	alpha := newMatrix(n, T)
	if T == 0 {
		return alpha
	}

	o := seq[0]
	for i := 0; i < n; i++ {
		alpha[i][0] = m.Initial[i] * m.Observation[o][i]
	}

	for t := 1; t < T; t++ {
		o := seq[t]
		for j := 0; j < n; j++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += alpha[i][t-1] * m.Transition[i][j]
			}
			alpha[j][t] = sum * m.Observation[o][j]
		}
	}
	return alpha
}

// Backward computes the backward table: beta[i][t] is the probability of the
// observations after t given state i at time t.
func Backward(m *domain.Model, seq domain.Sequence) [][]float64 {
	n, T := m.States, len(seq)
	beta := newMatrix(n, T)
	if T == 0 {
		return beta
	}

	for i := 0; i < n; i++ {
		beta[i][T-1] = 1
	}

	for t := T - 2; t >= 0; t-- {
		o := seq[t+1]
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				sum += m.Observation[o][j] * m.Transition[i][j] * beta[j][t+1]
			}
			beta[i][t] = sum
		}
	}
	return beta
}

// Likelihood returns P(O|model) from a forward table.
func Likelihood(alpha [][]float64) float64 {
	sum := 0.0
	for _, row := range alpha {
		if len(row) > 0 {
			sum += row[len(row)-1]
		}
	}
	return sum
}

// LogLikelihood returns the summed log-likelihood of every sequence in the corpus.
// A sequence the model cannot produce yields -Inf.
func LogLikelihood(m *domain.Model, corpus *domain.Corpus) float64 {
	total := 0.0
	for _, seq := range corpus.Sequences {
		total += math.Log(Likelihood(Forward(m, seq)))
	}
	return total
}

// Posterior holds the state-occupancy and transition posteriors of one sequence.
type Posterior struct {
	// Gamma[i][t] = P(state i at t | sequence), N x T.
	Gamma [][]float64
	// Epsilon[t][i][j] = P(state i at t, state j at t+1 | sequence), (T-1) x N x N.
	Epsilon [][][]float64
	// Likelihood is P(sequence | model).
	Likelihood float64
}

// Posteriors runs the forward and backward passes for seq and derives gamma and epsilon.
// A zero normalizer at any timestep is reported as a DegeneracyError.
func Posteriors(m *domain.Model, seq domain.Sequence) (*Posterior, error) {
	n, T := m.States, len(seq)
	alpha := Forward(m, seq)
	beta := Backward(m, seq)

	gamma := newMatrix(n, T)
	col := make([]float64, n)
	for t := 0; t < T; t++ {
		for i := 0; i < n; i++ {
			col[i] = alpha[i][t] * beta[i][t]
		}
		if _, err := normalize(col, "gamma", t); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			gamma[i][t] = col[i]
		}
	}

	var epsilon [][][]float64
	if T > 1 {
		epsilon = make([][][]float64, T-1)
	}
	for t := 0; t < T-1; t++ {
		o := seq[t+1]
		e := newMatrix(n, n)
		// One normalizer per timestep, shared by every (i, j).
		d := 0.0
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				e[i][j] = alpha[i][t] * m.Transition[i][j] * m.Observation[o][j] * beta[j][t+1]
				d += e[i][j]
			}
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, err := divide(e[i][j], d, "epsilon", t)
				if err != nil {
					return nil, err
				}
				e[i][j] = v
			}
		}
		epsilon[t] = e
	}

	return &Posterior{
		Gamma:      gamma,
		Epsilon:    epsilon,
		Likelihood: Likelihood(alpha),
	}, nil
}
