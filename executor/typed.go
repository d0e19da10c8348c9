package executor

import (
	"context"

	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-executor-go/data"
	"github.com/multiversx/mx-chain-executor-go/errors"
)

// Query runs the query on the provided executor and decodes the returned data into T.
// Decode failures are reported as DataError holding the raw bytes.
func Query[T any](ctx context.Context, executor QueryExecutor, request *data.QueryRequest, decoder Decoder[T]) (T, error) {
	var empty T
	if check.IfNil(executor) {
		return empty, errors.ErrNilExecutor
	}
	if request == nil {
		return empty, errors.ErrNilRequest
	}
	if decoder == nil {
		return empty, errors.ErrNilDecoder
	}

	result, err := executor.ExecuteQuery(ctx, request)
	if err != nil {
		return empty, err
	}
	if result == nil {
		return empty, errors.ErrNilOutcome
	}

	return decode(request.Describe(), result.ReturnData, decoder)
}

// Execute submits the transaction on the provided executor and decodes the returned data into T.
// The raw outcome is returned along the decoded value, also when decoding fails.
func Execute[T any](
	ctx context.Context,
	executor TransactionExecutor,
	request *data.TransactionRequest,
	decoder Decoder[T],
) (T, *data.TransactionOutcome, error) {
	var empty T
	if check.IfNil(executor) {
		return empty, nil, errors.ErrNilExecutor
	}
	if request == nil {
		return empty, nil, errors.ErrNilRequest
	}
	if decoder == nil {
		return empty, nil, errors.ErrNilDecoder
	}

	outcome, err := executor.ExecuteTransaction(ctx, request)
	if err != nil {
		return empty, outcome, err
	}
	if outcome == nil {
		return empty, nil, errors.ErrNilOutcome
	}

	value, err := decode(request.Describe(), outcome.ReturnData, decoder)

	return value, outcome, err
}

// Deploy submits the deployment on the provided executor, returning the new contract address
// and the constructor returned data decoded into T
func Deploy[T any](
	ctx context.Context,
	executor DeployExecutor,
	request *data.DeployRequest,
	decoder Decoder[T],
) ([]byte, T, error) {
	var empty T
	if check.IfNil(executor) {
		return nil, empty, errors.ErrNilExecutor
	}
	if request == nil {
		return nil, empty, errors.ErrNilRequest
	}
	if decoder == nil {
		return nil, empty, errors.ErrNilDecoder
	}

	deployOutcome, err := executor.Deploy(ctx, request)
	if err != nil {
		return nil, empty, err
	}
	if deployOutcome == nil {
		return nil, empty, errors.ErrNilOutcome
	}

	var returnData [][]byte
	if deployOutcome.Outcome != nil {
		returnData = deployOutcome.Outcome.ReturnData
	}

	value, err := decode(request.Describe(), returnData, decoder)
	if err != nil {
		return deployOutcome.Address, empty, err
	}

	return deployOutcome.Address, value, nil
}

// DecodeOutcome decodes the data returned by an already processed transaction into T
func DecodeOutcome[T any](outcome *data.TransactionOutcome, decoder Decoder[T]) (T, error) {
	var empty T
	if outcome == nil {
		return empty, errors.ErrNilOutcome
	}
	if decoder == nil {
		return empty, errors.ErrNilDecoder
	}

	return decode("outcome of "+outcome.Hash, outcome.ReturnData, decoder)
}

func decode[T any](description string, returnData [][]byte, decoder Decoder[T]) (T, error) {
	value, err := decoder.Decode(returnData)
	if err != nil {
		var empty T
		if errors.IsDataError(err) {
			return empty, err
		}

		return empty, errors.NewDataError(description, returnData, err)
	}

	return value, nil
}
