package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/markov/pkg/adapters/file"
)

// RunEvaluate compares a results file against an answer file and prints the accuracy.
// When accuracyPath is set the value is also written there.
func RunEvaluate(w io.Writer, resultsPath, answersPath, accuracyPath string) (float64, error) {
	predicted, err := file.LoadLabels(resultsPath)
	if err != nil {
		return 0, err
	}
	answers, err := file.LoadLabels(answersPath)
	if err != nil {
		return 0, err
	}
	acc, err := file.Accuracy(predicted, answers)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(w, "accuracy: %.6f (%d sequences)\n", acc, len(answers))
	if accuracyPath != "" {
		if err := os.WriteFile(accuracyPath, []byte(fmt.Sprintf("%.6f\n", acc)), 0644); err != nil {
			return 0, fmt.Errorf("failed to write accuracy: %w", err)
		}
	}
	return acc, nil
}
