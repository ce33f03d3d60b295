package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/internal/presentation/tui"
	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/domain"
)

// RunInspect prints the model at path as Markdown, rendered with glamour when styled.
func RunInspect(w io.Writer, cfg config.Config, path string, styled bool) error {
	m, err := file.LoadModelWithTolerance(path, cfg.Tolerance)
	if err != nil {
		return err
	}
	md := tui.ModelMarkdown(m, domain.Alphabet{First: cfg.AlphabetStart(), Size: m.Symbols})

	if styled {
		out, err := tui.NewRenderer()(md)
		if err != nil {
			return fmt.Errorf("failed to render: %w", err)
		}
		md = out
	}
	_, err = io.WriteString(w, md)
	return err
}
