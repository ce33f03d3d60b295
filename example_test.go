package markov_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/adapters/memory"
	"github.com/aretw0/markov/pkg/domain"
)

func exampleModel(name string, observation [][]float64) *domain.Model {
	return &domain.Model{
		Name:        name,
		States:      2,
		Symbols:     2,
		Initial:     []float64{0.6, 0.4},
		Transition:  [][]float64{{0.7, 0.3}, {0.4, 0.6}},
		Observation: observation,
	}
}

// ExampleEngine_Score scores one sequence against one model.
func ExampleEngine_Score() {
	m := exampleModel("model_01.txt", [][]float64{{0.5, 0.1}, {0.5, 0.9}})
	seq, _ := m.Alphabet().Encode("AB")

	score, err := markov.New().Score(m, seq)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("viterbi=%.4f likelihood=%.4f\n", score.Viterbi, score.Likelihood)
	// Output: viterbi=0.1050 likelihood=0.2156
}

// ExampleEngine_Classify picks the best stored model for each sequence.
func ExampleEngine_Classify() {
	store := memory.NewStore(
		exampleModel("model_01.txt", [][]float64{{0.5, 0.1}, {0.5, 0.9}}),
		exampleModel("model_02.txt", [][]float64{{0.9, 0.8}, {0.1, 0.2}}),
	)
	eng := markov.New(markov.WithStore(store))
	ctx := context.Background()

	models, err := eng.LoadModels(ctx)
	if err != nil {
		log.Fatal(err)
	}

	corpus := domain.NewCorpus(0)
	for _, line := range []string{"AAAA", "BBBB"} {
		seq, _ := models[0].Alphabet().Encode(line)
		_ = corpus.Append(seq)
	}

	results, err := eng.Classify(ctx, models, corpus)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range results {
		fmt.Println(r.Model)
	}
	// Output:
	// model_02.txt
	// model_01.txt
}
