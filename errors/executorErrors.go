package errors

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkErrorKind classifies a NetworkQueryError
type NetworkErrorKind string

const (
	// KindUnreachable is used when the gateway could not be reached or the connection broke
	KindUnreachable NetworkErrorKind = "unreachable"
	// KindHTTPStatus is used when the gateway answered with a non-2xx status
	KindHTTPStatus NetworkErrorKind = "http status"
	// KindMalformedPayload is used when the gateway answer could not be interpreted
	KindMalformedPayload NetworkErrorKind = "malformed payload"
	// KindErrorInResponse is used when the gateway or the VM reported an error inside a well-formed answer
	KindErrorInResponse NetworkErrorKind = "error in response"
	// KindTimeout is used when the bounded number of attempts was exhausted
	KindTimeout NetworkErrorKind = "timeout"
	// KindAmbiguousSend is used when a send failed after the transaction may have reached the network
	KindAmbiguousSend NetworkErrorKind = "ambiguous send"
	// KindTransactionFailed is used when the chain reported a terminal failure status
	KindTransactionFailed NetworkErrorKind = "transaction failed"
)

// MockErrorKind classifies a MockDeployError
type MockErrorKind string

const (
	// KindNoMoreExpectedCalls is used when the mock script was exhausted
	KindNoMoreExpectedCalls MockErrorKind = "no more expected calls"
	// KindUnexpectedCall is used when the incoming call does not match the next expected one
	KindUnexpectedCall MockErrorKind = "unexpected call"
	// KindUnconsumedCalls is used when a verification finds expected calls left in the script
	KindUnconsumedCalls MockErrorKind = "unconsumed calls"
)

const maxRawBytesInMessage = 256

// DataError signals a mismatch between the requested type and the bytes actually returned
type DataError struct {
	Request string
	RawData [][]byte
	Err     error
}

// NewDataError creates a new DataError, copying the raw data
func NewDataError(request string, rawData [][]byte, err error) *DataError {
	return &DataError{
		Request: request,
		RawData: copyParts(rawData),
		Err:     err,
	}
}

// Error returns the error message, including the hex encoded raw data
func (e *DataError) Error() string {
	return fmt.Sprintf("%s: %v, request: %s, raw data: [%s]", ErrDataDecoding, e.Err, e.Request, hexParts(e.RawData))
}

// Unwrap returns the sentinel and the wrapped error
func (e *DataError) Unwrap() []error {
	return nonNil(ErrDataDecoding, e.Err)
}

// NetworkQueryError signals a failure while talking to the blockchain gateway or a
// terminal failure reported by the chain
type NetworkQueryError struct {
	Kind        NetworkErrorKind
	Operation   string
	Endpoint    string
	StatusCode  int
	Message     string
	TxHash      string
	RawResponse []byte
	Err         error
}

// Error returns the error message
func (e *NetworkQueryError) Error() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%s: %s", ErrNetworkQuery, e.Kind))
	if len(e.Operation) > 0 {
		sb.WriteString(", operation: " + e.Operation)
	}
	if len(e.Endpoint) > 0 {
		sb.WriteString(", endpoint: " + e.Endpoint)
	}
	if e.StatusCode != 0 {
		sb.WriteString(fmt.Sprintf(", status code: %d", e.StatusCode))
	}
	if len(e.TxHash) > 0 {
		sb.WriteString(", tx hash: " + e.TxHash)
	}
	if len(e.Message) > 0 {
		sb.WriteString(", message: " + e.Message)
	}
	if e.Err != nil {
		sb.WriteString(", error: " + e.Err.Error())
	}
	if len(e.RawResponse) > 0 {
		sb.WriteString(", raw response: " + truncate(string(e.RawResponse)))
	}

	return sb.String()
}

// Unwrap returns the sentinels matching the kind and the wrapped error
func (e *NetworkQueryError) Unwrap() []error {
	return nonNil(ErrNetworkQuery, e.kindSentinel(), e.Err)
}

// IsTransient returns true if the failure is worth a bounded retry on idempotent operations
func (e *NetworkQueryError) IsTransient() bool {
	switch e.Kind {
	case KindUnreachable, KindTimeout:
		return true
	case KindHTTPStatus:
		return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
	default:
		return false
	}
}

func (e *NetworkQueryError) kindSentinel() error {
	switch e.Kind {
	case KindTimeout:
		return ErrTimeout
	case KindTransactionFailed:
		return ErrTransactionFailed
	case KindAmbiguousSend:
		return ErrAmbiguousSend
	default:
		return nil
	}
}

// MockDeployError signals a misuse of a scripted mock executor
type MockDeployError struct {
	Kind      MockErrorKind
	CallIndex int
	Expected  string
	Actual    string
}

// Error returns the error message, holding both the expected and the actual call shapes
func (e *MockDeployError) Error() string {
	msg := fmt.Sprintf("%s: %s, call index: %d", ErrMockDeploy, e.Kind, e.CallIndex)
	if len(e.Expected) > 0 {
		msg += "\nexpected: " + e.Expected
	}
	if len(e.Actual) > 0 {
		msg += "\nactual: " + e.Actual
	}

	return msg
}

// Unwrap returns the sentinels matching the kind
func (e *MockDeployError) Unwrap() []error {
	switch e.Kind {
	case KindNoMoreExpectedCalls:
		return []error{ErrMockDeploy, ErrNoMoreExpectedCalls}
	case KindUnexpectedCall:
		return []error{ErrMockDeploy, ErrUnexpectedCall}
	case KindUnconsumedCalls:
		return []error{ErrMockDeploy, ErrUnconsumedCalls}
	default:
		return []error{ErrMockDeploy}
	}
}

// IsDataError returns true if the provided error is, or wraps, a DataError
func IsDataError(err error) bool {
	var dataErr *DataError
	return errors.As(err, &dataErr)
}

// IsNetworkQueryError returns true if the provided error is, or wraps, a NetworkQueryError
func IsNetworkQueryError(err error) bool {
	var netErr *NetworkQueryError
	return errors.As(err, &netErr)
}

// IsMockDeployError returns true if the provided error is, or wraps, a MockDeployError
func IsMockDeployError(err error) bool {
	var mockErr *MockDeployError
	return errors.As(err, &mockErr)
}

// IsExecutorError returns true if the provided error belongs to the executor taxonomy
func IsExecutorError(err error) bool {
	return IsDataError(err) || IsNetworkQueryError(err) || IsMockDeployError(err)
}

// IsTransient returns true if the provided error is a transient NetworkQueryError
func IsTransient(err error) bool {
	var netErr *NetworkQueryError
	if !errors.As(err, &netErr) {
		return false
	}

	return netErr.IsTransient()
}

func nonNil(errs ...error) []error {
	result := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			result = append(result, err)
		}
	}

	return result
}

func copyParts(parts [][]byte) [][]byte {
	if parts == nil {
		return nil
	}

	result := make([][]byte, 0, len(parts))
	for _, part := range parts {
		result = append(result, append([]byte(nil), part...))
	}

	return result
}

func hexParts(parts [][]byte) string {
	encoded := make([]string, 0, len(parts))
	for _, part := range parts {
		encoded = append(encoded, truncate(hex.EncodeToString(part)))
	}

	return strings.Join(encoded, ", ")
}

func truncate(str string) string {
	if len(str) <= maxRawBytesInMessage {
		return str
	}

	return str[:maxRawBytesInMessage] + "..."
}
