package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
)

func formatProb(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// ModelMarkdown describes m as Markdown tables. Observation rows are labelled
// with the alphabet's runes.
func ModelMarkdown(m *domain.Model, alphabet domain.Alphabet) string {
	var b strings.Builder

	title := m.Name
	if title == "" {
		title = "model"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%d states, %d symbols (`%c`..`%c`)\n\n", m.States, m.Symbols, alphabet.Rune(0), alphabet.Rune(m.Symbols-1))

	header := func(first string) {
		b.WriteString("| " + first + " |")
		for j := 0; j < m.States; j++ {
			fmt.Fprintf(&b, " s%d |", j)
		}
		b.WriteString("\n|---|")
		b.WriteString(strings.Repeat("---|", m.States))
		b.WriteString("\n")
	}
	row := func(label string, values []float64) {
		b.WriteString("| " + label + " |")
		for _, v := range values {
			b.WriteString(" " + formatProb(v) + " |")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Initial\n\n")
	header("")
	row("π", m.Initial)

	b.WriteString("\n## Transition\n\n")
	header("from \\ to")
	for i, r := range m.Transition {
		row(fmt.Sprintf("s%d", i), r)
	}

	b.WriteString("\n## Observation\n\n")
	header("symbol")
	for k, r := range m.Observation {
		row("`"+string(alphabet.Rune(k))+"`", r)
	}
	return b.String()
}
