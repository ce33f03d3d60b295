package cli

import (
	"io"

	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/internal/engine"
	"github.com/aretw0/markov/internal/presentation/graph"
	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/domain"
)

// GraphOptions selects what RunGraph draws.
type GraphOptions struct {
	ModelPath string
	// Sequence, when set, is decoded and its Viterbi path highlighted.
	Sequence string
	MinProb  float64
}

// RunGraph writes the Mermaid state diagram of a model.
func RunGraph(w io.Writer, cfg config.Config, opts GraphOptions) error {
	m, err := file.LoadModelWithTolerance(opts.ModelPath, cfg.Tolerance)
	if err != nil {
		return err
	}
	alphabet := domain.Alphabet{First: cfg.AlphabetStart(), Size: m.Symbols}

	var overlay *graph.Overlay
	if opts.Sequence != "" {
		seq, err := alphabet.Encode(opts.Sequence)
		if err != nil {
			return err
		}
		path, _ := engine.Decode(m, seq)
		overlay = &graph.Overlay{Path: path}
	}

	_, err = io.WriteString(w, graph.GenerateMermaid(m, alphabet, opts.MinProb, overlay))
	return err
}
