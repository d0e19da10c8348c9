package executor

import (
	"context"

	"github.com/multiversx/mx-chain-executor-go/data"
)

// QueryExecutor runs read-only smart contract queries. Queries have no side effect: they
// can be retried freely and abandoned by cancelling the context.
type QueryExecutor interface {
	ExecuteQuery(ctx context.Context, request *data.QueryRequest) (*data.QueryResult, error)
	IsInterfaceNil() bool
}

// TransactionExecutor submits state-mutating smart contract calls.
// Cancelling the context after the transaction was accepted by the network does not undo
// it: the caller should poll for the outcome instead of assuming nothing happened.
type TransactionExecutor interface {
	ExecuteTransaction(ctx context.Context, request *data.TransactionRequest) (*data.TransactionOutcome, error)
	IsInterfaceNil() bool
}

// DeployExecutor submits contract deployments. The same cancellation caveat as for
// TransactionExecutor applies.
type DeployExecutor interface {
	Deploy(ctx context.Context, request *data.DeployRequest) (*data.DeployOutcome, error)
	IsInterfaceNil() bool
}

// Executor groups all the capabilities a full backend provides
type Executor interface {
	QueryExecutor
	TransactionExecutor
	DeployExecutor
}

// Decoder turns raw returned data segments into a caller native value
type Decoder[T any] interface {
	Decode(returnData [][]byte) (T, error)
}

// DecoderFunc adapts a plain function to the Decoder interface
type DecoderFunc[T any] func(returnData [][]byte) (T, error)

// Decode calls the underlying function
func (f DecoderFunc[T]) Decode(returnData [][]byte) (T, error) {
	return f(returnData)
}
