package file_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	err := file.WriteResults(&buf, []domain.Selection{
		{Index: 1, Model: "model_02.txt", Probability: 0.105},
		{Index: 0, Model: "model_01.txt", Probability: 1.2345678e-34},
	})
	require.NoError(t, err)
	assert.Equal(t, "model_02.txt  1.05000e-01\nmodel_01.txt  1.23457e-34\n", buf.String())
}

func TestReadLabels(t *testing.T) {
	labels, err := file.ReadLabels(strings.NewReader("model_02.txt  1.05000e-01\n\nmodel_01.txt\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"model_02.txt", "model_01.txt"}, labels)
}

func TestAccuracy(t *testing.T) {
	acc, err := file.Accuracy(
		[]string{"model_01.txt", "model_02.txt", "model_02.txt", "model_05.txt"},
		[]string{"model_01.txt", "model_02.txt", "model_03.txt", "model_05.txt"},
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-12)

	_, err = file.Accuracy([]string{"a"}, []string{"a", "b"})
	assert.Error(t, err)

	_, err = file.Accuracy(nil, nil)
	assert.Error(t, err)
}
