package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
)

// Overlay marks a decoded state path on the diagram.
type Overlay struct {
	Path []int
}

// GenerateMermaid produces a Mermaid flowchart of m's hidden states.
// The start node is a circle with edges weighted by the initial distribution;
// every state is a rectangle labelled with its emission peak.
// Self loops are dotted. Edges at or below minProb are left out. Path states of the overlay, if any,
// are styled as visited and the final one as current.
func GenerateMermaid(m *domain.Model, alphabet domain.Alphabet, minProb float64, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	if m.Name != "" {
		fmt.Fprintf(&sb, "    %%%% %s\n", m.Name)
	}

	sb.WriteString("    start((\"start\"))\n")
	for i := 0; i < m.States; i++ {
		k := peak(m, i)
		fmt.Fprintf(&sb, "    %s[\"s%d <br/> %c: %s\"]\n", stateID(i), i, alphabet.Rune(k), label(m.Observation[k][i]))
	}

	for i, p := range m.Initial {
		if p > minProb {
			fmt.Fprintf(&sb, "    start -- \"%s\" --> %s\n", label(p), stateID(i))
		}
	}
	for i, row := range m.Transition {
		for j, p := range row {
			if p <= minProb {
				continue
			}
			if i == j {
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", stateID(i), label(p), stateID(j))
				continue
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", stateID(i), label(p), stateID(j))
		}
	}

	if overlay != nil && len(overlay.Path) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills in both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		last := overlay.Path[len(overlay.Path)-1]
		seen := make(map[int]bool)
		for _, s := range overlay.Path {
			if seen[s] || s == last || s < 0 || s >= m.States {
				continue
			}
			seen[s] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", stateID(s))
		}
		if last >= 0 && last < m.States {
			fmt.Fprintf(&sb, "    class %s current;\n", stateID(last))
		}
	}

	return sb.String()
}

func stateID(i int) string {
	return "s" + strconv.Itoa(i)
}

func label(p float64) string {
	return strconv.FormatFloat(p, 'g', 3, 64)
}

// peak is the symbol state i emits most often; ties go to the lower symbol.
func peak(m *domain.Model, i int) int {
	best := 0
	for k := 1; k < m.Symbols; k++ {
		if m.Observation[k][i] > m.Observation[best][i] {
			best = k
		}
	}
	return best
}
