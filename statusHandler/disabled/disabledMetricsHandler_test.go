package disabled

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisabledMetricsHandler_MethodsShouldNotPanic(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r != nil {
			assert.Fail(t, "should not have panicked")
		}
	}()

	handler := NewDisabledMetricsHandler()
	assert.False(t, handler.IsInterfaceNil())

	handler.RecordOperation("query", "success", time.Second)
	handler.RecordRetry("query")
}
