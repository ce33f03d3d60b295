/*
Package markov trains and applies discrete Hidden Markov Models over short
fixed-length symbol sequences.

It provides two pipelines sharing one data model:

  - Training: Baum-Welch (forward-backward EM) re-estimation of one model from a
    corpus, for a fixed number of iterations.
  - Classification: Viterbi scoring of every test sequence against an ordered set
    of models, selecting the model with the highest probability.

Models and corpora are read and written by the adapters under pkg/adapters; the
markov command wraps both pipelines for the command line, HTTP and MCP.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/markov"
		"github.com/aretw0/markov/pkg/adapters/file"
	)

	func main() {
		ctx := context.Background()

		initial, err := file.LoadModel("model_init.txt")
		if err != nil {
			log.Fatal(err)
		}
		corpus, err := file.LoadCorpus("seq_model_01.txt", initial.Alphabet(), 0)
		if err != nil {
			log.Fatal(err)
		}

		eng := markov.New(markov.WithWorkers(4))
		trained, err := eng.Train(ctx, initial, corpus, 100)
		if err != nil {
			log.Fatal(err)
		}

		if err := file.SaveModel("model_01.txt", trained); err != nil {
			log.Fatal(err)
		}
	}
*/
package markov
