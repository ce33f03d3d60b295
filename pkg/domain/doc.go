/*
Package domain contains the core data model of the markov engine.

It defines the discrete Hidden Markov Model, the symbol alphabet, sequences and
corpora, the classification result and the events emitted while training and
classifying. This package is kept pure and free of I/O; loading and persisting
models and corpora is the job of the adapters.

# Key Entities

  - Model: a discrete HMM (initial distribution, transition matrix, symbol x state observation matrix).
  - Alphabet: the contiguous rune range mapped onto symbols 0..M-1.
  - Sequence / Corpus: fixed-length symbol sequences, loaded once per run.
  - Selection: the model chosen for one sequence and its Viterbi probability.
  - TrainingHooks / ClassificationHooks: optional observability callbacks.
*/
package domain
