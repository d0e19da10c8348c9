package mocking

import (
	"encoding/hex"
	"math/big"

	"github.com/multiversx/mx-chain-core-go/hashing/blake2b"
	"github.com/multiversx/mx-chain-executor-go/data"
)

const codeFingerprintLen = 8

var codeHasher = blake2b.NewBlake2b()

// CallType tells which capability an expected call belongs to
type CallType string

const (
	// CallTypeQuery is used for ExecuteQuery calls
	CallTypeQuery CallType = "query"
	// CallTypeTransaction is used for ExecuteTransaction calls
	CallTypeTransaction CallType = "transaction"
	// CallTypeDeploy is used for Deploy calls
	CallTypeDeploy CallType = "deploy"
)

// CallShape is the comparable rendering of a request. Byte fields are hex encoded and values
// are decimal strings, so that nil and zero values compare equal.
type CallShape struct {
	Type      CallType
	Address   string
	Function  string
	Arguments []string
	Caller    string
	GasLimit  uint64
	Value     string
	Transfers []string
	CodeSize  int
	CodeHash  string
	Metadata  data.CodeMetadata
}

// QueryShape returns the shape of a query request
func QueryShape(request *data.QueryRequest) *CallShape {
	if request == nil {
		return &CallShape{Type: CallTypeQuery}
	}

	return &CallShape{
		Type:      CallTypeQuery,
		Address:   hex.EncodeToString(request.Address),
		Function:  request.Function,
		Arguments: hexArguments(request.Arguments),
		Caller:    hex.EncodeToString(request.Caller),
		Value:     valueString(request.Value),
	}
}

// TransactionShape returns the shape of a transaction request
func TransactionShape(request *data.TransactionRequest) *CallShape {
	if request == nil {
		return &CallShape{Type: CallTypeTransaction}
	}

	transfers := make([]string, 0, len(request.Transfers))
	for _, transfer := range request.Transfers {
		if transfer == nil {
			transfers = append(transfers, "<nil>")
			continue
		}
		transfers = append(transfers, transfer.Identifier+"-"+big.NewInt(0).SetUint64(transfer.Nonce).String()+":"+valueString(transfer.Amount))
	}

	return &CallShape{
		Type:      CallTypeTransaction,
		Address:   hex.EncodeToString(request.Receiver),
		Function:  request.Function,
		Arguments: hexArguments(request.Arguments),
		GasLimit:  request.GasLimit,
		Value:     valueString(request.Value),
		Transfers: transfers,
	}
}

// DeployShape returns the shape of a deploy request. The code is represented by its size and
// a blake2b fingerprint so diagnostics stay readable.
func DeployShape(request *data.DeployRequest) *CallShape {
	if request == nil {
		return &CallShape{Type: CallTypeDeploy}
	}

	return &CallShape{
		Type:      CallTypeDeploy,
		Arguments: hexArguments(request.Arguments),
		GasLimit:  request.GasLimit,
		Value:     valueString(request.Value),
		CodeSize:  len(request.Code),
		CodeHash:  codeFingerprint(request.Code),
		Metadata:  request.Metadata,
	}
}

func hexArguments(arguments [][]byte) []string {
	result := make([]string, 0, len(arguments))
	for _, arg := range arguments {
		result = append(result, hex.EncodeToString(arg))
	}

	return result
}

func valueString(value *big.Int) string {
	if value == nil {
		return "0"
	}

	return value.String()
}

func codeFingerprint(code []byte) string {
	if len(code) == 0 {
		return ""
	}

	return hex.EncodeToString(codeHasher.Compute(string(code))[:codeFingerprintLen])
}
