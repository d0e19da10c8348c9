package dummy

import (
	"context"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-executor-go/data"
)

// DefaultContractAddress is the address returned by a DummyDeployExecutor created without one
var DefaultContractAddress = append(make([]byte, data.AddressLen-1), 0x01)

// DummyExecutor answers every query with the configured result
type DummyExecutor struct {
	result *data.QueryResult
}

// NewDummyExecutor creates a dummy query executor. A nil result means an empty successful answer.
func NewDummyExecutor(result *data.QueryResult) *DummyExecutor {
	if result == nil {
		result = &data.QueryResult{ReturnCode: data.VMReturnCodeOk}
	}

	return &DummyExecutor{
		result: result.Clone(),
	}
}

// ExecuteQuery returns a copy of the configured result
func (dummy *DummyExecutor) ExecuteQuery(_ context.Context, _ *data.QueryRequest) (*data.QueryResult, error) {
	return dummy.result.Clone(), nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (dummy *DummyExecutor) IsInterfaceNil() bool {
	return dummy == nil
}

// DummyTransactionExecutor answers every transaction with the configured outcome. Requests are
// left untouched, so the same request may be handed to it any number of times.
type DummyTransactionExecutor struct {
	outcome *data.TransactionOutcome
}

// NewDummyTransactionExecutor creates a dummy transaction executor. A nil outcome means an empty successful one.
func NewDummyTransactionExecutor(outcome *data.TransactionOutcome) *DummyTransactionExecutor {
	if outcome == nil {
		outcome = defaultOutcome()
	}

	return &DummyTransactionExecutor{
		outcome: outcome.Clone(),
	}
}

// ExecuteTransaction returns a copy of the configured outcome
func (dummy *DummyTransactionExecutor) ExecuteTransaction(_ context.Context, _ *data.TransactionRequest) (*data.TransactionOutcome, error) {
	return dummy.outcome.Clone(), nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (dummy *DummyTransactionExecutor) IsInterfaceNil() bool {
	return dummy == nil
}

// DummyDeployExecutor answers every deploy with the configured address and outcome. Like the
// transaction dummy, it never marks a request as executed.
type DummyDeployExecutor struct {
	deployOutcome *data.DeployOutcome
}

// NewDummyDeployExecutor creates a dummy deploy executor. Empty arguments are replaced by
// DefaultContractAddress and an empty successful outcome.
func NewDummyDeployExecutor(address []byte, outcome *data.TransactionOutcome) *DummyDeployExecutor {
	if len(address) == 0 {
		address = DefaultContractAddress
	}
	if outcome == nil {
		outcome = defaultOutcome()
	}

	deployOutcome := &data.DeployOutcome{
		Address: address,
		Outcome: outcome,
	}

	return &DummyDeployExecutor{
		deployOutcome: deployOutcome.Clone(),
	}
}

// Deploy returns a copy of the configured deploy outcome
func (dummy *DummyDeployExecutor) Deploy(_ context.Context, _ *data.DeployRequest) (*data.DeployOutcome, error) {
	return dummy.deployOutcome.Clone(), nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (dummy *DummyDeployExecutor) IsInterfaceNil() bool {
	return dummy == nil
}

func defaultOutcome() *data.TransactionOutcome {
	return &data.TransactionOutcome{
		Status:     transaction.TxStatusSuccess,
		ReturnData: make([][]byte, 0),
	}
}
