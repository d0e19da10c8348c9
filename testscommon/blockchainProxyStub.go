package testscommon

import (
	"context"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	"github.com/multiversx/mx-chain-executor-go/data"
)

// BlockchainProxyStub -
type BlockchainProxyStub struct {
	ExecuteVMQueryCalled                func(ctx context.Context, request *data.VmValueRequest) (*vm.VMOutputApi, error)
	SendTransactionCalled               func(ctx context.Context, tx *data.SignedTransaction) (string, error)
	GetTransactionStatusCalled          func(ctx context.Context, hash string) (transaction.TxStatus, error)
	GetTransactionInfoWithResultsCalled func(ctx context.Context, hash string) (*transaction.ApiTransactionResult, error)
	GetAccountNonceCalled               func(ctx context.Context, address string) (uint64, error)
	GetNetworkConfigCalled              func(ctx context.Context) (*data.NetworkConfig, error)
}

// ExecuteVMQuery -
func (stub *BlockchainProxyStub) ExecuteVMQuery(ctx context.Context, request *data.VmValueRequest) (*vm.VMOutputApi, error) {
	if stub.ExecuteVMQueryCalled != nil {
		return stub.ExecuteVMQueryCalled(ctx, request)
	}

	return &vm.VMOutputApi{ReturnCode: data.VMReturnCodeOk}, nil
}

// SendTransaction -
func (stub *BlockchainProxyStub) SendTransaction(ctx context.Context, tx *data.SignedTransaction) (string, error) {
	if stub.SendTransactionCalled != nil {
		return stub.SendTransactionCalled(ctx, tx)
	}

	return "", nil
}

// GetTransactionStatus -
func (stub *BlockchainProxyStub) GetTransactionStatus(ctx context.Context, hash string) (transaction.TxStatus, error) {
	if stub.GetTransactionStatusCalled != nil {
		return stub.GetTransactionStatusCalled(ctx, hash)
	}

	return transaction.TxStatusSuccess, nil
}

// GetTransactionInfoWithResults -
func (stub *BlockchainProxyStub) GetTransactionInfoWithResults(ctx context.Context, hash string) (*transaction.ApiTransactionResult, error) {
	if stub.GetTransactionInfoWithResultsCalled != nil {
		return stub.GetTransactionInfoWithResultsCalled(ctx, hash)
	}

	return &transaction.ApiTransactionResult{Hash: hash, Status: transaction.TxStatusSuccess}, nil
}

// GetAccountNonce -
func (stub *BlockchainProxyStub) GetAccountNonce(ctx context.Context, address string) (uint64, error) {
	if stub.GetAccountNonceCalled != nil {
		return stub.GetAccountNonceCalled(ctx, address)
	}

	return 0, nil
}

// GetNetworkConfig -
func (stub *BlockchainProxyStub) GetNetworkConfig(ctx context.Context) (*data.NetworkConfig, error) {
	if stub.GetNetworkConfigCalled != nil {
		return stub.GetNetworkConfigCalled(ctx)
	}

	return &data.NetworkConfig{}, nil
}

// IsInterfaceNil -
func (stub *BlockchainProxyStub) IsInterfaceNil() bool {
	return stub == nil
}
