package mocking

import (
	"context"
	"testing"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-executor-go/abiCodec"
	"github.com/multiversx/mx-chain-executor-go/data"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
	"github.com/multiversx/mx-chain-executor-go/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStandardMockExecutor(t *testing.T) {
	t.Parallel()

	t.Run("invalid deployer should error", func(t *testing.T) {
		t.Parallel()

		mock, err := NewStandardMockExecutor(StandardMockArgs{DeployerAddress: []byte("short")})
		assert.Nil(t, mock)
		assert.ErrorIs(t, err, ErrInvalidDeployerAddress)
	})
	t.Run("nil deployer should work", func(t *testing.T) {
		t.Parallel()

		mock, err := NewStandardMockExecutor(StandardMockArgs{})
		assert.Nil(t, err)
		assert.False(t, mock.IsInterfaceNil())
	})
}

func TestNewMockContractAddress(t *testing.T) {
	t.Parallel()

	deployer := createAddress(0xaa)
	address := NewMockContractAddress(deployer, 0x0102)

	require.Equal(t, data.AddressLen, len(address))
	assert.Equal(t, make([]byte, 8), address[:8])
	assert.Equal(t, []byte{0x05, 0x00}, address[8:10])
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0x01, 0x02}, address[10:18])
	assert.Equal(t, deployer[18:], address[18:])
}

func TestStandardMockExecutor_ExpectDeployReturning(t *testing.T) {
	t.Parallel()

	mock, _ := NewStandardMockExecutor(StandardMockArgs{
		DeployerAddress: createAddress(0xaa),
		FirstNonce:      3,
	})

	createRequest := func() *data.DeployRequest {
		return data.NewDeployRequest([]byte("wasm"), data.CodeMetadata{Readable: true}, 1000, nil)
	}
	first, err := mock.ExpectDeployReturning(createRequest())
	require.Nil(t, err)
	second, err := mock.ExpectDeployReturning(createRequest(), []byte{0x2a})
	require.Nil(t, err)

	assert.Equal(t, NewMockContractAddress(createAddress(0xaa), 3), first)
	assert.Equal(t, NewMockContractAddress(createAddress(0xaa), 4), second)

	request := createRequest()
	address, _, err := executor.Deploy(context.Background(), mock, request, abiCodec.UnitDecoder())
	require.Nil(t, err)
	assert.Equal(t, first, address)

	_, _, err = executor.Deploy(context.Background(), mock, request, abiCodec.BigUintDecoder())
	assert.ErrorIs(t, err, executorErrors.ErrRequestAlreadyExecuted)
	assert.Equal(t, 1, mock.RemainingCalls())

	address, value, err := executor.Deploy(context.Background(), mock, createRequest(), abiCodec.BigUintDecoder())
	require.Nil(t, err)
	assert.Equal(t, second, address)
	assert.Equal(t, int64(42), value.Int64())

	_, err = mock.Deploy(context.Background(), createRequest())
	assert.ErrorIs(t, err, executorErrors.ErrNoMoreExpectedCalls)
}

func TestStandardMockExecutor_QueryAndTransaction(t *testing.T) {
	t.Parallel()

	mock, _ := NewStandardMockExecutor(StandardMockArgs{})
	query := data.NewQueryRequest(createAddress(0x0c), "getSum")
	call := data.NewTransactionRequest(createAddress(0x0c), "add", 5000000, nil, nil, []byte{0x05})

	require.Nil(t, mock.ExpectQueryReturning(query, []byte{0x2a}))
	require.Nil(t, mock.ExpectTransactionReturning(call))
	require.Nil(t, mock.ExpectQueryReturning(query, []byte{0x2f}))

	sum, err := executor.Query(context.Background(), mock, query, abiCodec.BigUintDecoder())
	require.Nil(t, err)
	assert.Equal(t, int64(42), sum.Int64())

	_, outcome, err := executor.Execute(context.Background(), mock, call, abiCodec.UnitDecoder())
	require.Nil(t, err)
	assert.Equal(t, transaction.TxStatusSuccess, outcome.Status)
	assert.Equal(t, "mock-tx-1", outcome.Hash)

	sum, err = executor.Query(context.Background(), mock, query, abiCodec.BigUintDecoder())
	require.Nil(t, err)
	assert.Equal(t, int64(47), sum.Int64())
	assert.Nil(t, mock.Verify())
}
