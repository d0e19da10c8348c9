package network

import (
	"github.com/multiversx/mx-chain-executor-go/executor"
	"github.com/multiversx/mx-sdk-abi-incubator/golang/abi"
)

var (
	_ executor.QueryExecutor       = (*QueryNetworkExecutor)(nil)
	_ executor.TransactionExecutor = (*BaseTransactionNetworkExecutor)(nil)
	_ executor.DeployExecutor      = (*BaseTransactionNetworkExecutor)(nil)
	_ executor.Executor            = (*NetworkExecutor)(nil)
)

func abiU64(value uint64) []any {
	return []any{abi.U64Value{Value: value}}
}
