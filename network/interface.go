package network

import (
	"context"
	"time"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	"github.com/multiversx/mx-chain-executor-go/data"
)

// BlockchainProxy submits raw requests to a blockchain gateway. Every call is stateless and
// can be retried on transient errors.
type BlockchainProxy interface {
	ExecuteVMQuery(ctx context.Context, request *data.VmValueRequest) (*vm.VMOutputApi, error)
	SendTransaction(ctx context.Context, tx *data.SignedTransaction) (string, error)
	GetTransactionStatus(ctx context.Context, hash string) (transaction.TxStatus, error)
	GetTransactionInfoWithResults(ctx context.Context, hash string) (*transaction.ApiTransactionResult, error)
	GetAccountNonce(ctx context.Context, address string) (uint64, error)
	GetNetworkConfig(ctx context.Context) (*data.NetworkConfig, error)
	IsInterfaceNil() bool
}

// BlockchainInteractor signs and sends transactions on behalf of one sender.
// SignAndSend must not be retried once the network may have accepted the transaction.
// AwaitOutcome is a single status check: it returns an outcome with a non final status while the
// transaction is still being processed.
type BlockchainInteractor interface {
	Address() []byte
	SignAndSend(ctx context.Context, tx *data.SendableTransaction) (string, error)
	AwaitOutcome(ctx context.Context, hash string) (*data.TransactionOutcome, error)
	IsInterfaceNil() bool
}

// MetricsHandler records the executors activity
type MetricsHandler interface {
	RecordOperation(operation string, result string, duration time.Duration)
	RecordRetry(operation string)
	IsInterfaceNil() bool
}
