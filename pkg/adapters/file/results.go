package file

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
)

// WriteResults writes one "<model> <probability>" line per selection, with the
// probability in %12.5e.
func WriteResults(w io.Writer, selections []domain.Selection) error {
	bw := bufio.NewWriter(w)
	for _, s := range selections {
		if _, err := fmt.Fprintf(bw, "%s %12.5e\n", s.Model, s.Probability); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	return bw.Flush()
}

// SaveResults writes the results file at path atomically.
func SaveResults(path string, selections []domain.Selection) error {
	return writeAtomic(path, func(w io.Writer) error {
		return WriteResults(w, selections)
	})
}

// LoadLabels opens path and reads it with ReadLabels.
func LoadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLabels(f)
}

// ReadLabels returns the first field of every non-blank line. It reads both results
// files and answer files.
func ReadLabels(r io.Reader) ([]string, error) {
	var labels []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		labels = append(labels, fields[0])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	return labels, nil
}

// Accuracy is the fraction of predicted labels equal to the answer at the same position.
func Accuracy(predicted, answers []string) (float64, error) {
	if len(predicted) != len(answers) {
		return 0, fmt.Errorf("%d results but %d answers", len(predicted), len(answers))
	}
	if len(answers) == 0 {
		return 0, fmt.Errorf("no answers to compare")
	}
	hits := 0
	for i := range answers {
		if predicted[i] == answers[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(answers)), nil
}
