package data

import (
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/marshal"
)

// VMReturnCodeOk is the return code of a successful VM execution
const VMReturnCodeOk = "ok"

// QueryResult is the raw answer of a smart contract query
type QueryResult struct {
	ReturnData    [][]byte
	ReturnCode    string
	ReturnMessage string
}

// Clone returns a deep copy of the query result
func (result *QueryResult) Clone() *QueryResult {
	if result == nil {
		return nil
	}

	return &QueryResult{
		ReturnData:    copyArguments(result.ReturnData),
		ReturnCode:    result.ReturnCode,
		ReturnMessage: result.ReturnMessage,
	}
}

// TransactionOutcome is the raw result of a processed transaction. It belongs to the caller
// once returned: executors keep no reference to it.
type TransactionOutcome struct {
	Hash          string
	Status        transaction.TxStatus
	ReturnData    [][]byte
	ReturnMessage string
	Logs          *transaction.ApiLogs
	Raw           *transaction.ApiTransactionResult
}

// IsFinal returns true if the outcome status will not change anymore
func (outcome *TransactionOutcome) IsFinal() bool {
	return IsFinalStatus(outcome.Status)
}

// IsSuccessful returns true if the transaction was executed successfully
func (outcome *TransactionOutcome) IsSuccessful() bool {
	return outcome.Status == transaction.TxStatusSuccess
}

// Clone returns a deep copy of the outcome. Logs and the raw API result are copied through
// their gateway JSON form, so fields the gateway never serializes are not carried over.
func (outcome *TransactionOutcome) Clone() *TransactionOutcome {
	if outcome == nil {
		return nil
	}

	return &TransactionOutcome{
		Hash:          outcome.Hash,
		Status:        outcome.Status,
		ReturnData:    copyArguments(outcome.ReturnData),
		ReturnMessage: outcome.ReturnMessage,
		Logs:          cloneThroughJSON(outcome.Logs),
		Raw:           cloneThroughJSON(outcome.Raw),
	}
}

var cloneMarshaller = &marshal.JsonMarshalizer{}

func cloneThroughJSON[T any](value *T) *T {
	if value == nil {
		return nil
	}

	buff, err := cloneMarshaller.Marshal(value)
	if err != nil {
		return nil
	}

	cloned := new(T)
	err = cloneMarshaller.Unmarshal(cloned, buff)
	if err != nil {
		return nil
	}

	return cloned
}

// DeployOutcome holds the address of a freshly deployed contract and the deploy transaction outcome
type DeployOutcome struct {
	Address []byte
	Outcome *TransactionOutcome
}

// Clone returns a copy of the deploy outcome
func (outcome *DeployOutcome) Clone() *DeployOutcome {
	if outcome == nil {
		return nil
	}

	return &DeployOutcome{
		Address: copyBytes(outcome.Address),
		Outcome: outcome.Outcome.Clone(),
	}
}

// IsFinalStatus returns true if the provided transaction status is terminal
func IsFinalStatus(status transaction.TxStatus) bool {
	switch status {
	case transaction.TxStatusSuccess, transaction.TxStatusFail, transaction.TxStatusInvalid:
		return true
	default:
		return false
	}
}
