package dummy

import (
	"context"
	"sync"
	"testing"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-executor-go/abiCodec"
	"github.com/multiversx/mx-chain-executor-go/data"
	"github.com/multiversx/mx-chain-executor-go/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createQueryRequest() *data.QueryRequest {
	return data.NewQueryRequest(make([]byte, data.AddressLen), "getSum")
}

func TestDummyExecutors_ImplementCapabilities(t *testing.T) {
	t.Parallel()

	var queryExecutor executor.QueryExecutor = NewDummyExecutor(nil)
	var txExecutor executor.TransactionExecutor = NewDummyTransactionExecutor(nil)
	var deployExecutor executor.DeployExecutor = NewDummyDeployExecutor(nil, nil)
	var fullExecutor executor.Executor = NewFullDummyExecutor()

	assert.False(t, queryExecutor.IsInterfaceNil())
	assert.False(t, txExecutor.IsInterfaceNil())
	assert.False(t, deployExecutor.IsInterfaceNil())
	assert.False(t, fullExecutor.IsInterfaceNil())

	var nilDummy *DummyExecutor
	assert.True(t, nilDummy.IsInterfaceNil())
}

func TestDummyExecutor_ExecuteQuery(t *testing.T) {
	t.Parallel()

	t.Run("default result", func(t *testing.T) {
		t.Parallel()

		dummy := NewDummyExecutor(nil)
		result, err := dummy.ExecuteQuery(context.Background(), nil)
		require.Nil(t, err)
		assert.Equal(t, data.VMReturnCodeOk, result.ReturnCode)
		assert.Empty(t, result.ReturnData)
	})
	t.Run("configured result is returned on every call", func(t *testing.T) {
		t.Parallel()

		configured := &data.QueryResult{ReturnData: [][]byte{{42}}, ReturnCode: data.VMReturnCodeOk}
		dummy := NewDummyExecutor(configured)
		configured.ReturnData[0][0] = 1

		for i := 0; i < 10; i++ {
			sum, err := executor.Query(context.Background(), dummy, createQueryRequest(), abiCodec.BigUintDecoder())
			require.Nil(t, err)
			assert.Equal(t, int64(42), sum.Int64())
		}
	})
	t.Run("returned results are independent copies", func(t *testing.T) {
		t.Parallel()

		dummy := NewDummyExecutor(&data.QueryResult{ReturnData: [][]byte{{42}}})
		first, _ := dummy.ExecuteQuery(context.Background(), createQueryRequest())
		first.ReturnData[0][0] = 0

		second, _ := dummy.ExecuteQuery(context.Background(), createQueryRequest())
		assert.Equal(t, [][]byte{{42}}, second.ReturnData)
	})
}

func TestDummyTransactionExecutor_ExecuteTransaction(t *testing.T) {
	t.Parallel()

	dummy := NewDummyTransactionExecutor(&data.TransactionOutcome{
		Hash:       "dummy",
		Status:     transaction.TxStatusSuccess,
		ReturnData: [][]byte{{7}},
	})

	numCalls := 20
	wg := sync.WaitGroup{}
	wg.Add(numCalls)
	for i := 0; i < numCalls; i++ {
		go func() {
			defer wg.Done()

			outcome, err := dummy.ExecuteTransaction(context.Background(), nil)
			assert.Nil(t, err)
			assert.Equal(t, "dummy", outcome.Hash)
			assert.Equal(t, [][]byte{{7}}, outcome.ReturnData)
		}()
	}
	wg.Wait()
}

func TestDummyDeployExecutor_Deploy(t *testing.T) {
	t.Parallel()

	t.Run("default address", func(t *testing.T) {
		t.Parallel()

		dummy := NewDummyDeployExecutor(nil, nil)
		request := data.NewDeployRequest([]byte("wasm"), data.CodeMetadata{}, 1000, nil)
		address, _, err := executor.Deploy(context.Background(), dummy, request, abiCodec.UnitDecoder())
		require.Nil(t, err)
		assert.Equal(t, DefaultContractAddress, address)
		assert.Equal(t, data.AddressLen, len(address))
	})
	t.Run("configured address and outcome", func(t *testing.T) {
		t.Parallel()

		configured := append(make([]byte, data.AddressLen-1), 0x09)
		dummy := NewDummyDeployExecutor(configured, &data.TransactionOutcome{ReturnData: [][]byte{{3}}})

		outcome, err := dummy.Deploy(context.Background(), nil)
		require.Nil(t, err)
		assert.Equal(t, configured, outcome.Address)
		assert.Equal(t, [][]byte{{3}}, outcome.Outcome.ReturnData)

		outcome.Address[0] = 0xff
		again, _ := dummy.Deploy(context.Background(), nil)
		assert.Equal(t, configured, again.Address)
	})
}

func TestDummyTransactionExecutor_RepeatedRequest(t *testing.T) {
	t.Parallel()

	dummy := NewDummyTransactionExecutor(&data.TransactionOutcome{
		Status: transaction.TxStatusSuccess,
		Logs: &transaction.ApiLogs{
			Events: []*transaction.Events{{Identifier: "writeLog", Topics: [][]byte{[]byte("topic")}}},
		},
	})
	request := data.NewTransactionRequest(make([]byte, data.AddressLen), "add", 1000, nil, nil)

	first, err := dummy.ExecuteTransaction(context.Background(), request)
	require.Nil(t, err)
	first.Logs.Events[0].Identifier = "mutated"
	first.Logs.Events[0].Topics[0][0] = 'x'

	second, err := dummy.ExecuteTransaction(context.Background(), request)
	require.Nil(t, err)
	assert.Equal(t, "writeLog", second.Logs.Events[0].Identifier)
	assert.Equal(t, []byte("topic"), second.Logs.Events[0].Topics[0])
	assert.False(t, request.MarkExecuted())
}
