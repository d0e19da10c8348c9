package statusHandler

import (
	"errors"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/prometheus/client_golang/prometheus"
)

var log = logger.GetOrCreate("statusHandler")

const (
	metricsNamespace = "mx_executor"
	operationLabel   = "operation"
	resultLabel      = "result"
)

type prometheusMetricsHandler struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	retries    *prometheus.CounterVec
}

// NewPrometheusMetricsHandler creates a metrics handler registering its collectors on the
// provided registerer. Collectors already registered by another handler are reused.
func NewPrometheusMetricsHandler(registerer prometheus.Registerer) (*prometheusMetricsHandler, error) {
	if registerer == nil {
		return nil, ErrNilRegisterer
	}

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "operations_total",
		Help:      "Number of executor operations, by operation and result",
	}, []string{operationLabel, resultLabel})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "operation_duration_seconds",
		Help:      "Duration of the executor operations, retries and polling included",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{operationLabel})
	retries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "retries_total",
		Help:      "Number of retried gateway requests, by operation",
	}, []string{operationLabel})

	var err error
	handler := &prometheusMetricsHandler{}
	handler.operations, err = registerCollector(registerer, operations)
	if err != nil {
		return nil, err
	}
	handler.durations, err = registerCollector(registerer, durations)
	if err != nil {
		return nil, err
	}
	handler.retries, err = registerCollector(registerer, retries)
	if err != nil {
		return nil, err
	}

	return handler, nil
}

func registerCollector[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		existing, ok := alreadyRegistered.ExistingCollector.(C)
		if ok {
			log.Debug("reusing already registered prometheus collector")
			return existing, nil
		}
	}

	return collector, err
}

// RecordOperation counts a finished operation and observes its duration
func (handler *prometheusMetricsHandler) RecordOperation(operation string, result string, duration time.Duration) {
	handler.operations.WithLabelValues(operation, result).Inc()
	handler.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRetry counts a retried request of the provided operation
func (handler *prometheusMetricsHandler) RecordRetry(operation string) {
	handler.retries.WithLabelValues(operation).Inc()
}

// IsInterfaceNil returns true if there is no value under the interface
func (handler *prometheusMetricsHandler) IsInterfaceNil() bool {
	return handler == nil
}
