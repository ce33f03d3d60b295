package observability_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_TrainingHooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.TrainingHooks()
	ctx := context.Background()

	hooks.OnIterationEnd(ctx, &domain.IterationEvent{Iteration: 1, LogLikelihood: -120.5, Duration: 3 * time.Millisecond})
	hooks.OnIterationEnd(ctx, &domain.IterationEvent{Iteration: 2, LogLikelihood: -110.25, Duration: 2 * time.Millisecond})

	count, err := testutil.GatherAndCount(m.Registry(), "markov_iteration_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	body := scrape(t, m)
	assert.Contains(t, body, "markov_training_iterations_total 2")
	assert.Contains(t, body, "markov_corpus_log_likelihood -110.25")
	assert.Contains(t, body, "markov_iteration_duration_seconds_count 2")
}

func TestMetrics_ClassificationHooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.ClassificationHooks()
	ctx := context.Background()

	for _, model := range []string{"model_01.txt", "model_02.txt", "model_01.txt"} {
		hooks.OnSelect(ctx, &domain.ClassificationEvent{Selection: domain.Selection{Model: model}})
	}

	body := scrape(t, m)
	assert.Contains(t, body, `markov_classifications_total{model="model_01.txt"} 2`)
	assert.Contains(t, body, `markov_classifications_total{model="model_02.txt"} 1`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := observability.NewMetrics()
	b := observability.NewMetrics()
	a.TrainingHooks().OnIterationEnd(context.Background(), &domain.IterationEvent{})

	assert.Contains(t, scrape(t, a), "markov_training_iterations_total 1")
	assert.Contains(t, scrape(t, b), "markov_training_iterations_total 0")
}

func TestChainHooks(t *testing.T) {
	var calls []string
	record := func(name string) domain.TrainingHooks {
		return domain.TrainingHooks{
			OnIterationEnd: func(ctx context.Context, e *domain.IterationEvent) {
				calls = append(calls, name)
			},
		}
	}

	chained := observability.ChainTrainingHooks(record("first"), domain.TrainingHooks{}, record("second"))
	chained.OnIterationStart(context.Background(), &domain.IterationEvent{})
	chained.OnIterationEnd(context.Background(), &domain.IterationEvent{})
	assert.Equal(t, []string{"first", "second"}, calls)

	selected := 0
	classification := observability.ChainClassificationHooks(
		domain.ClassificationHooks{OnSelect: func(ctx context.Context, e *domain.ClassificationEvent) { selected++ }},
		domain.ClassificationHooks{},
	)
	classification.OnSelect(context.Background(), &domain.ClassificationEvent{})
	assert.Equal(t, 1, selected)
}

func TestLogTrainingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	observability.LogTrainingHooks(logger).OnIterationEnd(context.Background(), &domain.IterationEvent{
		Iteration: 3, Iterations: 10, LogLikelihood: -42,
	})
	assert.Contains(t, buf.String(), "msg=iteration n=3 of=10 log_likelihood=-42")
}

func scrape(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}
