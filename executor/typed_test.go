package executor_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/multiversx/mx-chain-executor-go/data"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
	"github.com/multiversx/mx-chain-executor-go/executor"
	"github.com/multiversx/mx-chain-executor-go/testscommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotADigit = errors.New("not a digit")

var digitDecoder = executor.DecoderFunc[int](func(returnData [][]byte) (int, error) {
	if len(returnData) != 1 {
		return 0, errNotADigit
	}
	return strconv.Atoi(string(returnData[0]))
})

func createQueryRequest() *data.QueryRequest {
	return data.NewQueryRequest(testscommon.AddressFromByte(0x0c), "getSum")
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("nil executor should error", func(t *testing.T) {
		t.Parallel()

		_, err := executor.Query[int](context.Background(), nil, createQueryRequest(), digitDecoder)
		require.Equal(t, executorErrors.ErrNilExecutor, err)
	})
	t.Run("nil request should error", func(t *testing.T) {
		t.Parallel()

		_, err := executor.Query[int](context.Background(), &testscommon.QueryExecutorStub{}, nil, digitDecoder)
		require.Equal(t, executorErrors.ErrNilRequest, err)
	})
	t.Run("nil decoder should error", func(t *testing.T) {
		t.Parallel()

		_, err := executor.Query[int](context.Background(), &testscommon.QueryExecutorStub{}, createQueryRequest(), nil)
		require.Equal(t, executorErrors.ErrNilDecoder, err)
	})
	t.Run("executor error should be returned", func(t *testing.T) {
		t.Parallel()

		expectedErr := &executorErrors.NetworkQueryError{Kind: executorErrors.KindUnreachable}
		stub := &testscommon.QueryExecutorStub{
			ExecuteQueryCalled: func(ctx context.Context, request *data.QueryRequest) (*data.QueryResult, error) {
				return nil, expectedErr
			},
		}
		_, err := executor.Query[int](context.Background(), stub, createQueryRequest(), digitDecoder)
		require.Equal(t, expectedErr, err)
	})
	t.Run("nil result should error", func(t *testing.T) {
		t.Parallel()

		stub := &testscommon.QueryExecutorStub{
			ExecuteQueryCalled: func(ctx context.Context, request *data.QueryRequest) (*data.QueryResult, error) {
				return nil, nil
			},
		}
		_, err := executor.Query[int](context.Background(), stub, createQueryRequest(), digitDecoder)
		require.Equal(t, executorErrors.ErrNilOutcome, err)
	})
	t.Run("undecodable bytes should be a data error holding the raw bytes", func(t *testing.T) {
		t.Parallel()

		stub := &testscommon.QueryExecutorStub{
			ExecuteQueryCalled: func(ctx context.Context, request *data.QueryRequest) (*data.QueryResult, error) {
				return &data.QueryResult{ReturnData: [][]byte{{0xde, 0xad}}}, nil
			},
		}
		_, err := executor.Query[int](context.Background(), stub, createQueryRequest(), digitDecoder)
		require.True(t, executorErrors.IsDataError(err))

		var dataErr *executorErrors.DataError
		require.True(t, errors.As(err, &dataErr))
		require.Equal(t, [][]byte{{0xde, 0xad}}, dataErr.RawData)
		assert.Contains(t, err.Error(), "dead")
		assert.Contains(t, err.Error(), "getSum")
	})
	t.Run("should decode", func(t *testing.T) {
		t.Parallel()

		stub := &testscommon.QueryExecutorStub{
			ExecuteQueryCalled: func(ctx context.Context, request *data.QueryRequest) (*data.QueryResult, error) {
				return &data.QueryResult{ReturnData: [][]byte{[]byte("42")}}, nil
			},
		}
		value, err := executor.Query[int](context.Background(), stub, createQueryRequest(), digitDecoder)
		require.Nil(t, err)
		require.Equal(t, 42, value)
	})
}

func TestExecute(t *testing.T) {
	t.Parallel()

	request := func() *data.TransactionRequest {
		return data.NewTransactionRequest(testscommon.AddressFromByte(0x0c), "add", 1000, nil, nil)
	}

	t.Run("nil arguments should error", func(t *testing.T) {
		t.Parallel()

		_, _, err := executor.Execute[int](context.Background(), nil, request(), digitDecoder)
		require.Equal(t, executorErrors.ErrNilExecutor, err)

		_, _, err = executor.Execute[int](context.Background(), &testscommon.TransactionExecutorStub{}, nil, digitDecoder)
		require.Equal(t, executorErrors.ErrNilRequest, err)

		_, _, err = executor.Execute[int](context.Background(), &testscommon.TransactionExecutorStub{}, request(), nil)
		require.Equal(t, executorErrors.ErrNilDecoder, err)
	})
	t.Run("failed outcome is returned with the error", func(t *testing.T) {
		t.Parallel()

		failed := &data.TransactionOutcome{Hash: "aa"}
		expectedErr := &executorErrors.NetworkQueryError{Kind: executorErrors.KindTransactionFailed}
		stub := &testscommon.TransactionExecutorStub{
			ExecuteTransactionCalled: func(ctx context.Context, request *data.TransactionRequest) (*data.TransactionOutcome, error) {
				return failed, expectedErr
			},
		}
		_, outcome, err := executor.Execute[int](context.Background(), stub, request(), digitDecoder)
		require.Equal(t, expectedErr, err)
		require.Equal(t, failed, outcome)
	})
	t.Run("decode failure keeps the outcome", func(t *testing.T) {
		t.Parallel()

		expected := &data.TransactionOutcome{Hash: "aa", ReturnData: [][]byte{[]byte("x")}}
		stub := &testscommon.TransactionExecutorStub{
			ExecuteTransactionCalled: func(ctx context.Context, request *data.TransactionRequest) (*data.TransactionOutcome, error) {
				return expected, nil
			},
		}
		_, outcome, err := executor.Execute[int](context.Background(), stub, request(), digitDecoder)
		require.True(t, executorErrors.IsDataError(err))
		require.Equal(t, expected, outcome)
	})
	t.Run("should decode", func(t *testing.T) {
		t.Parallel()

		stub := &testscommon.TransactionExecutorStub{
			ExecuteTransactionCalled: func(ctx context.Context, request *data.TransactionRequest) (*data.TransactionOutcome, error) {
				return &data.TransactionOutcome{ReturnData: [][]byte{[]byte("7")}}, nil
			},
		}
		value, outcome, err := executor.Execute[int](context.Background(), stub, request(), digitDecoder)
		require.Nil(t, err)
		require.Equal(t, 7, value)
		require.NotNil(t, outcome)
	})
}

func TestDeploy(t *testing.T) {
	t.Parallel()

	request := func() *data.DeployRequest {
		return data.NewDeployRequest([]byte("code"), data.CodeMetadata{}, 1000, nil)
	}
	contract := testscommon.AddressFromByte(0x0d)

	t.Run("nil arguments should error", func(t *testing.T) {
		t.Parallel()

		_, _, err := executor.Deploy[int](context.Background(), nil, request(), digitDecoder)
		require.Equal(t, executorErrors.ErrNilExecutor, err)

		_, _, err = executor.Deploy[int](context.Background(), &testscommon.DeployExecutorStub{}, nil, digitDecoder)
		require.Equal(t, executorErrors.ErrNilRequest, err)

		_, _, err = executor.Deploy[int](context.Background(), &testscommon.DeployExecutorStub{}, request(), nil)
		require.Equal(t, executorErrors.ErrNilDecoder, err)
	})
	t.Run("should return address and decoded value", func(t *testing.T) {
		t.Parallel()

		stub := &testscommon.DeployExecutorStub{
			DeployCalled: func(ctx context.Context, request *data.DeployRequest) (*data.DeployOutcome, error) {
				return &data.DeployOutcome{
					Address: contract,
					Outcome: &data.TransactionOutcome{ReturnData: [][]byte{[]byte("3")}},
				}, nil
			},
		}
		address, value, err := executor.Deploy[int](context.Background(), stub, request(), digitDecoder)
		require.Nil(t, err)
		require.Equal(t, contract, address)
		require.Equal(t, 3, value)
	})
	t.Run("decode failure keeps the address", func(t *testing.T) {
		t.Parallel()

		stub := &testscommon.DeployExecutorStub{
			DeployCalled: func(ctx context.Context, request *data.DeployRequest) (*data.DeployOutcome, error) {
				return &data.DeployOutcome{Address: contract}, nil
			},
		}
		address, _, err := executor.Deploy[int](context.Background(), stub, request(), digitDecoder)
		require.True(t, executorErrors.IsDataError(err))
		require.Equal(t, contract, address)
	})
}

func TestDecodeOutcome(t *testing.T) {
	t.Parallel()

	_, err := executor.DecodeOutcome[int](nil, digitDecoder)
	require.Equal(t, executorErrors.ErrNilOutcome, err)

	_, err = executor.DecodeOutcome[int](&data.TransactionOutcome{}, nil)
	require.Equal(t, executorErrors.ErrNilDecoder, err)

	value, err := executor.DecodeOutcome[int](&data.TransactionOutcome{ReturnData: [][]byte{[]byte("9")}}, digitDecoder)
	require.Nil(t, err)
	require.Equal(t, 9, value)

	_, err = executor.DecodeOutcome[int](&data.TransactionOutcome{Hash: "ff01"}, digitDecoder)
	require.True(t, errors.Is(err, errNotADigit))
	assert.Contains(t, err.Error(), "ff01")
}
