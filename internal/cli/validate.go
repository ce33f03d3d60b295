package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/domain"
)

// RunValidate checks every model file and, when corpusPath is set, the corpus against
// the first model's alphabet. All failures are reported together.
func RunValidate(w io.Writer, cfg config.Config, paths []string, corpusPath string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no models given: %w", domain.ErrInvocation)
	}

	var (
		errs  []error
		first *domain.Model
	)
	for _, path := range paths {
		m, err := file.LoadModelWithTolerance(path, cfg.Tolerance)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if first == nil {
			first = m
		}
		fmt.Fprintf(w, "ok  %s (%d states, %d symbols)\n", path, m.States, m.Symbols)
	}

	if corpusPath != "" && first != nil {
		alphabet := domain.Alphabet{First: cfg.AlphabetStart(), Size: first.Symbols}
		corpus, err := file.LoadCorpus(corpusPath, alphabet, cfg.SequenceLength)
		if err != nil {
			errs = append(errs, err)
		} else {
			fmt.Fprintf(w, "ok  %s (%d sequences of length %d)\n", corpusPath, corpus.Len(), corpus.Length)
		}
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &domain.AggregateError{Errors: errs}
	}
}
