package factory

import (
	"context"

	"github.com/multiversx/mx-chain-executor-go/network"
)

// Interactor is the blockchain interactor created by the factory
type Interactor interface {
	network.BlockchainInteractor
	ResyncNonce(ctx context.Context) error
}
