package mocking

import (
	"context"
	"reflect"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-executor-go/data"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("mocking")

var shapeDumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// RequestMatcher decides if an incoming request satisfies an expected call. It receives the
// request as handed to the executor (*data.QueryRequest, *data.TransactionRequest or *data.DeployRequest).
type RequestMatcher func(request interface{}) bool

// ExpectedCall is one entry of the mock script. Shape is compared with the incoming request
// unless a Matcher is provided. Exactly the canned value of the call type is returned, or Err.
type ExpectedCall struct {
	Type    CallType
	Shape   *CallShape
	Matcher RequestMatcher

	QueryResult        *data.QueryResult
	TransactionOutcome *data.TransactionOutcome
	DeployOutcome      *data.DeployOutcome
	Err                error
}

// MockExecutor replays an ordered script of expected calls. Every incoming call consumes the
// next entry; an empty script or a mismatching call is a MockDeployError.
type MockExecutor struct {
	mut       sync.Mutex
	script    []*ExpectedCall
	callIndex int
}

// NewMockExecutor creates a mock executor with an empty script
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		script: make([]*ExpectedCall, 0),
	}
}

// AddExpectedCall appends an entry to the script
func (mock *MockExecutor) AddExpectedCall(call ExpectedCall) error {
	switch call.Type {
	case CallTypeQuery, CallTypeTransaction, CallTypeDeploy:
	default:
		return ErrInvalidCallType
	}
	if call.Shape == nil && call.Matcher == nil {
		return ErrNilRequestMatcherTarget
	}

	mock.mut.Lock()
	mock.script = append(mock.script, &call)
	mock.mut.Unlock()

	return nil
}

// ExpectQuery appends a query returning the provided result
func (mock *MockExecutor) ExpectQuery(request *data.QueryRequest, result *data.QueryResult) error {
	return mock.AddExpectedCall(ExpectedCall{
		Type:        CallTypeQuery,
		Shape:       QueryShape(request),
		QueryResult: result.Clone(),
	})
}

// ExpectTransaction appends a transaction returning the provided outcome
func (mock *MockExecutor) ExpectTransaction(request *data.TransactionRequest, outcome *data.TransactionOutcome) error {
	return mock.AddExpectedCall(ExpectedCall{
		Type:               CallTypeTransaction,
		Shape:              TransactionShape(request),
		TransactionOutcome: outcome.Clone(),
	})
}

// ExpectDeploy appends a deploy returning the provided outcome
func (mock *MockExecutor) ExpectDeploy(request *data.DeployRequest, outcome *data.DeployOutcome) error {
	return mock.AddExpectedCall(ExpectedCall{
		Type:          CallTypeDeploy,
		Shape:         DeployShape(request),
		DeployOutcome: outcome.Clone(),
	})
}

// ExpectError appends a call of the provided type and shape failing with err
func (mock *MockExecutor) ExpectError(shape *CallShape, err error) error {
	if shape == nil {
		return ErrNilRequestMatcherTarget
	}

	return mock.AddExpectedCall(ExpectedCall{
		Type:  shape.Type,
		Shape: shape,
		Err:   err,
	})
}

// ExecuteQuery consumes the next expected call, which must be a matching query
func (mock *MockExecutor) ExecuteQuery(ctx context.Context, request *data.QueryRequest) (*data.QueryResult, error) {
	expected, err := mock.dequeue(ctx, QueryShape(request), request)
	if err != nil {
		return nil, err
	}
	if expected.Err != nil {
		return nil, expected.Err
	}
	if expected.QueryResult == nil {
		return &data.QueryResult{
			ReturnData: make([][]byte, 0),
			ReturnCode: data.VMReturnCodeOk,
		}, nil
	}

	return expected.QueryResult.Clone(), nil
}

// ExecuteTransaction consumes the next expected call, which must be a matching transaction.
// Like the network executor, it refuses a request that was already executed, without
// consuming an expected call.
func (mock *MockExecutor) ExecuteTransaction(ctx context.Context, request *data.TransactionRequest) (*data.TransactionOutcome, error) {
	if request != nil && request.MarkExecuted() {
		return nil, executorErrors.ErrRequestAlreadyExecuted
	}

	expected, err := mock.dequeue(ctx, TransactionShape(request), request)
	if err != nil {
		return nil, err
	}
	if expected.Err != nil {
		return expected.TransactionOutcome.Clone(), expected.Err
	}
	if expected.TransactionOutcome == nil {
		return successfulOutcome(), nil
	}

	return expected.TransactionOutcome.Clone(), nil
}

// Deploy consumes the next expected call, which must be a matching deploy. A request that
// was already deployed is refused without consuming an expected call.
func (mock *MockExecutor) Deploy(ctx context.Context, request *data.DeployRequest) (*data.DeployOutcome, error) {
	if request != nil && request.MarkExecuted() {
		return nil, executorErrors.ErrRequestAlreadyExecuted
	}

	expected, err := mock.dequeue(ctx, DeployShape(request), request)
	if err != nil {
		return nil, err
	}
	if expected.Err != nil {
		return expected.DeployOutcome.Clone(), expected.Err
	}
	if expected.DeployOutcome == nil {
		return &data.DeployOutcome{Outcome: successfulOutcome()}, nil
	}

	return expected.DeployOutcome.Clone(), nil
}

func (mock *MockExecutor) dequeue(ctx context.Context, actual *CallShape, request interface{}) (*ExpectedCall, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	mock.mut.Lock()
	defer mock.mut.Unlock()

	callIndex := mock.callIndex
	if len(mock.script) == 0 {
		log.Debug("mock executor received a call with an empty script", "call index", callIndex, "type", actual.Type)
		return nil, &executorErrors.MockDeployError{
			Kind:      executorErrors.KindNoMoreExpectedCalls,
			CallIndex: callIndex,
			Actual:    shapeDumper.Sdump(actual),
		}
	}

	expected := mock.script[0]
	mock.script = mock.script[1:]
	mock.callIndex++

	if !matches(expected, actual, request) {
		log.Debug("mock executor received an unexpected call", "call index", callIndex, "expected", expected.Type, "actual", actual.Type)
		return nil, &executorErrors.MockDeployError{
			Kind:      executorErrors.KindUnexpectedCall,
			CallIndex: callIndex,
			Expected:  describeExpected(expected),
			Actual:    shapeDumper.Sdump(actual),
		}
	}

	return expected, nil
}

func matches(expected *ExpectedCall, actual *CallShape, request interface{}) bool {
	if expected.Type != actual.Type {
		return false
	}
	if expected.Matcher != nil {
		return expected.Matcher(request)
	}

	return reflect.DeepEqual(expected.Shape, actual)
}

func describeExpected(expected *ExpectedCall) string {
	if expected.Shape != nil {
		return shapeDumper.Sdump(expected.Shape)
	}

	return string(expected.Type) + " matched by a custom request matcher"
}

// RemainingCalls returns the number of expected calls not yet consumed
func (mock *MockExecutor) RemainingCalls() int {
	mock.mut.Lock()
	defer mock.mut.Unlock()

	return len(mock.script)
}

// Verify returns an error if the script was not fully consumed
func (mock *MockExecutor) Verify() error {
	mock.mut.Lock()
	defer mock.mut.Unlock()

	if len(mock.script) == 0 {
		return nil
	}

	return &executorErrors.MockDeployError{
		Kind:      executorErrors.KindUnconsumedCalls,
		CallIndex: mock.callIndex,
		Expected:  describeExpected(mock.script[0]),
	}
}

// IsInterfaceNil returns true if there is no value under the interface
func (mock *MockExecutor) IsInterfaceNil() bool {
	return mock == nil
}

func successfulOutcome() *data.TransactionOutcome {
	return &data.TransactionOutcome{
		Status:     transaction.TxStatusSuccess,
		ReturnData: make([][]byte, 0),
	}
}
