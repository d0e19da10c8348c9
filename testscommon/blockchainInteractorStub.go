package testscommon

import (
	"context"

	"github.com/multiversx/mx-chain-executor-go/data"
)

// BlockchainInteractorStub -
type BlockchainInteractorStub struct {
	AddressCalled      func() []byte
	SignAndSendCalled  func(ctx context.Context, tx *data.SendableTransaction) (string, error)
	AwaitOutcomeCalled func(ctx context.Context, hash string) (*data.TransactionOutcome, error)
}

// Address -
func (stub *BlockchainInteractorStub) Address() []byte {
	if stub.AddressCalled != nil {
		return stub.AddressCalled()
	}

	return make([]byte, data.AddressLen)
}

// SignAndSend -
func (stub *BlockchainInteractorStub) SignAndSend(ctx context.Context, tx *data.SendableTransaction) (string, error) {
	if stub.SignAndSendCalled != nil {
		return stub.SignAndSendCalled(ctx, tx)
	}

	return "", nil
}

// AwaitOutcome -
func (stub *BlockchainInteractorStub) AwaitOutcome(ctx context.Context, hash string) (*data.TransactionOutcome, error) {
	if stub.AwaitOutcomeCalled != nil {
		return stub.AwaitOutcomeCalled(ctx, hash)
	}

	return nil, nil
}

// IsInterfaceNil -
func (stub *BlockchainInteractorStub) IsInterfaceNil() bool {
	return stub == nil
}
