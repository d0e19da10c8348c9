package disabled

import "time"

type disabledMetricsHandler struct {
}

// NewDisabledMetricsHandler returns a metrics handler that does nothing
func NewDisabledMetricsHandler() *disabledMetricsHandler {
	return &disabledMetricsHandler{}
}

// RecordOperation does nothing
func (handler *disabledMetricsHandler) RecordOperation(_ string, _ string, _ time.Duration) {
}

// RecordRetry does nothing
func (handler *disabledMetricsHandler) RecordRetry(_ string) {
}

// IsInterfaceNil returns true if there is no value under the interface
func (handler *disabledMetricsHandler) IsInterfaceNil() bool {
	return handler == nil
}
