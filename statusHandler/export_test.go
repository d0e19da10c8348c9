package statusHandler

import "github.com/prometheus/client_golang/prometheus"

func (handler *prometheusMetricsHandler) OperationsCounter(operation string, result string) prometheus.Counter {
	return handler.operations.WithLabelValues(operation, result)
}

func (handler *prometheusMetricsHandler) RetriesCounter(operation string) prometheus.Counter {
	return handler.retries.WithLabelValues(operation)
}
