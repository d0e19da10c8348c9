package testscommon

import (
	"context"

	"github.com/multiversx/mx-chain-executor-go/data"
)

// QueryExecutorStub -
type QueryExecutorStub struct {
	ExecuteQueryCalled func(ctx context.Context, request *data.QueryRequest) (*data.QueryResult, error)
}

// ExecuteQuery -
func (stub *QueryExecutorStub) ExecuteQuery(ctx context.Context, request *data.QueryRequest) (*data.QueryResult, error) {
	if stub.ExecuteQueryCalled != nil {
		return stub.ExecuteQueryCalled(ctx, request)
	}

	return &data.QueryResult{ReturnCode: data.VMReturnCodeOk}, nil
}

// IsInterfaceNil -
func (stub *QueryExecutorStub) IsInterfaceNil() bool {
	return stub == nil
}

// TransactionExecutorStub -
type TransactionExecutorStub struct {
	ExecuteTransactionCalled func(ctx context.Context, request *data.TransactionRequest) (*data.TransactionOutcome, error)
}

// ExecuteTransaction -
func (stub *TransactionExecutorStub) ExecuteTransaction(ctx context.Context, request *data.TransactionRequest) (*data.TransactionOutcome, error) {
	if stub.ExecuteTransactionCalled != nil {
		return stub.ExecuteTransactionCalled(ctx, request)
	}

	return &data.TransactionOutcome{}, nil
}

// IsInterfaceNil -
func (stub *TransactionExecutorStub) IsInterfaceNil() bool {
	return stub == nil
}

// DeployExecutorStub -
type DeployExecutorStub struct {
	DeployCalled func(ctx context.Context, request *data.DeployRequest) (*data.DeployOutcome, error)
}

// Deploy -
func (stub *DeployExecutorStub) Deploy(ctx context.Context, request *data.DeployRequest) (*data.DeployOutcome, error) {
	if stub.DeployCalled != nil {
		return stub.DeployCalled(ctx, request)
	}

	return &data.DeployOutcome{}, nil
}

// IsInterfaceNil -
func (stub *DeployExecutorStub) IsInterfaceNil() bool {
	return stub == nil
}
