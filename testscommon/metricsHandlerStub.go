package testscommon

import "time"

// MetricsHandlerStub -
type MetricsHandlerStub struct {
	RecordOperationCalled func(operation string, result string, duration time.Duration)
	RecordRetryCalled     func(operation string)
}

// RecordOperation -
func (stub *MetricsHandlerStub) RecordOperation(operation string, result string, duration time.Duration) {
	if stub.RecordOperationCalled != nil {
		stub.RecordOperationCalled(operation, result, duration)
	}
}

// RecordRetry -
func (stub *MetricsHandlerStub) RecordRetry(operation string) {
	if stub.RecordRetryCalled != nil {
		stub.RecordRetryCalled(operation)
	}
}

// IsInterfaceNil -
func (stub *MetricsHandlerStub) IsInterfaceNil() bool {
	return stub == nil
}
