package network

import (
	"github.com/multiversx/mx-chain-executor-go/errors"
)

// NetworkExecutor provides queries, calls and deployments against a live network
type NetworkExecutor struct {
	*QueryNetworkExecutor
	*BaseTransactionNetworkExecutor
}

// NewNetworkExecutor groups a query executor and a transaction executor
func NewNetworkExecutor(queryExecutor *QueryNetworkExecutor, txExecutor *BaseTransactionNetworkExecutor) (*NetworkExecutor, error) {
	if queryExecutor == nil || txExecutor == nil {
		return nil, errors.ErrNilExecutor
	}

	return &NetworkExecutor{
		QueryNetworkExecutor:           queryExecutor,
		BaseTransactionNetworkExecutor: txExecutor,
	}, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (executor *NetworkExecutor) IsInterfaceNil() bool {
	return executor == nil
}
