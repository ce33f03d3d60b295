/*
Package observability turns training and classification events into Prometheus
metrics and structured log lines.

Everything is driven by the domain hooks, so the engine itself stays free of any
metrics dependency:

	metrics := observability.NewMetrics()
	eng := markov.New(markov.WithTrainingHooks(observability.ChainTrainingHooks(
		metrics.TrainingHooks(),
		observability.LogTrainingHooks(logger),
	)))
*/
package observability
