package data

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/multiversx/mx-chain-core-go/core/atomic"
	"github.com/multiversx/mx-chain-executor-go/errors"
)

// AddressLen is the length in bytes of a MultiversX address
const AddressLen = 32

// TokenTransfer holds one ESDT, SFT or NFT transfer attached to a transaction
type TokenTransfer struct {
	Identifier string
	Nonce      uint64
	Amount     *big.Int
}

// IsFungible returns true if the transfer moves a fungible token
func (transfer *TokenTransfer) IsFungible() bool {
	return transfer.Nonce == 0
}

func (transfer *TokenTransfer) checkValidity() error {
	if len(transfer.Identifier) == 0 {
		return fmt.Errorf("%w: empty token identifier", errors.ErrInvalidTokenTransfer)
	}
	if transfer.Amount == nil || transfer.Amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive for %s", errors.ErrInvalidTokenTransfer, transfer.Identifier)
	}

	return nil
}

// CodeMetadata holds the flags a contract is deployed with
type CodeMetadata struct {
	Upgradeable bool
	Readable    bool
	Payable     bool
	PayableBySC bool
}

// QueryRequest is a read-only call of a smart contract view.
// It must not be mutated after being handed to an executor.
type QueryRequest struct {
	Address   []byte
	Function  string
	Arguments [][]byte
	Caller    []byte
	Value     *big.Int
}

// NewQueryRequest creates a query request, copying the provided inputs
func NewQueryRequest(address []byte, function string, arguments ...[]byte) *QueryRequest {
	return &QueryRequest{
		Address:   copyBytes(address),
		Function:  function,
		Arguments: copyArguments(arguments),
	}
}

// CheckValidity returns an error if the request can not be sent
func (request *QueryRequest) CheckValidity() error {
	if len(request.Address) != AddressLen {
		return fmt.Errorf("%w: contract address length %d", errors.ErrInvalidAddress, len(request.Address))
	}
	if len(request.Function) == 0 {
		return errors.ErrEmptyFunctionName
	}
	if len(request.Caller) != 0 && len(request.Caller) != AddressLen {
		return fmt.Errorf("%w: caller address length %d", errors.ErrInvalidAddress, len(request.Caller))
	}
	if request.Value != nil && request.Value.Sign() < 0 {
		return errors.ErrInvalidValue
	}

	return nil
}

// Describe returns a short human readable description used in error messages
func (request *QueryRequest) Describe() string {
	return fmt.Sprintf("query %s %s(%s)", hex.EncodeToString(request.Address), request.Function, joinArguments(request.Arguments))
}

// TransactionRequest is a state-mutating smart contract call, signed by the interactor's credential.
// It is single-use: an executor refuses to submit the same request twice.
type TransactionRequest struct {
	Receiver  []byte
	Function  string
	Arguments [][]byte
	GasLimit  uint64
	Value     *big.Int
	Transfers []*TokenTransfer

	executed atomic.Flag
}

// NewTransactionRequest creates a transaction request, copying the provided inputs
func NewTransactionRequest(
	receiver []byte,
	function string,
	gasLimit uint64,
	value *big.Int,
	transfers []*TokenTransfer,
	arguments ...[]byte,
) *TransactionRequest {
	return &TransactionRequest{
		Receiver:  copyBytes(receiver),
		Function:  function,
		Arguments: copyArguments(arguments),
		GasLimit:  gasLimit,
		Value:     copyBigInt(value),
		Transfers: copyTransfers(transfers),
	}
}

// CheckValidity returns an error if the request can not be sent
func (request *TransactionRequest) CheckValidity() error {
	if len(request.Receiver) != AddressLen {
		return fmt.Errorf("%w: receiver address length %d", errors.ErrInvalidAddress, len(request.Receiver))
	}
	if request.GasLimit == 0 {
		return errors.ErrZeroGasLimit
	}
	if request.Value != nil && request.Value.Sign() < 0 {
		return errors.ErrInvalidValue
	}
	if len(request.Function) == 0 && len(request.Arguments) > 0 {
		return errors.ErrEmptyFunctionName
	}
	for _, transfer := range request.Transfers {
		if transfer == nil {
			return fmt.Errorf("%w: nil transfer", errors.ErrInvalidTokenTransfer)
		}
		err := transfer.checkValidity()
		if err != nil {
			return err
		}
	}

	return nil
}

// MarkExecuted flags the request as handed to the network and returns true if it already was
func (request *TransactionRequest) MarkExecuted() bool {
	return request.executed.SetReturningPrevious()
}

// Describe returns a short human readable description used in error messages
func (request *TransactionRequest) Describe() string {
	return fmt.Sprintf("call %s %s(%s) gas: %d, value: %s, transfers: %s",
		hex.EncodeToString(request.Receiver),
		request.Function,
		joinArguments(request.Arguments),
		request.GasLimit,
		bigIntString(request.Value),
		describeTransfers(request.Transfers),
	)
}

// DeployRequest is a contract creation, signed by the interactor's credential.
// It is single-use: an executor refuses to submit the same request twice.
type DeployRequest struct {
	Code      []byte
	Metadata  CodeMetadata
	Arguments [][]byte
	GasLimit  uint64
	Value     *big.Int

	executed atomic.Flag
}

// NewDeployRequest creates a deploy request, copying the provided inputs
func NewDeployRequest(code []byte, metadata CodeMetadata, gasLimit uint64, value *big.Int, arguments ...[]byte) *DeployRequest {
	return &DeployRequest{
		Code:      copyBytes(code),
		Metadata:  metadata,
		Arguments: copyArguments(arguments),
		GasLimit:  gasLimit,
		Value:     copyBigInt(value),
	}
}

// CheckValidity returns an error if the request can not be sent
func (request *DeployRequest) CheckValidity() error {
	if len(request.Code) == 0 {
		return errors.ErrEmptyCode
	}
	if request.GasLimit == 0 {
		return errors.ErrZeroGasLimit
	}
	if request.Value != nil && request.Value.Sign() < 0 {
		return errors.ErrInvalidValue
	}

	return nil
}

// MarkExecuted flags the request as handed to the network and returns true if it already was
func (request *DeployRequest) MarkExecuted() bool {
	return request.executed.SetReturningPrevious()
}

// Describe returns a short human readable description used in error messages
func (request *DeployRequest) Describe() string {
	return fmt.Sprintf("deploy code of %d bytes (%s) gas: %d, value: %s, metadata: %+v",
		len(request.Code),
		joinArguments(request.Arguments),
		request.GasLimit,
		bigIntString(request.Value),
		request.Metadata,
	)
}

func joinArguments(arguments [][]byte) string {
	encoded := make([]string, 0, len(arguments))
	for _, arg := range arguments {
		encoded = append(encoded, hex.EncodeToString(arg))
	}

	return strings.Join(encoded, ", ")
}

func describeTransfers(transfers []*TokenTransfer) string {
	described := make([]string, 0, len(transfers))
	for _, transfer := range transfers {
		if transfer == nil {
			continue
		}
		described = append(described, fmt.Sprintf("%s-%d:%s", transfer.Identifier, transfer.Nonce, bigIntString(transfer.Amount)))
	}

	return "[" + strings.Join(described, ", ") + "]"
}

func bigIntString(value *big.Int) string {
	if value == nil {
		return "0"
	}

	return value.String()
}

func copyBytes(buff []byte) []byte {
	if buff == nil {
		return nil
	}

	return append([]byte(nil), buff...)
}

func copyArguments(arguments [][]byte) [][]byte {
	result := make([][]byte, 0, len(arguments))
	for _, arg := range arguments {
		result = append(result, append([]byte{}, arg...))
	}

	return result
}

func copyBigInt(value *big.Int) *big.Int {
	if value == nil {
		return big.NewInt(0)
	}

	return big.NewInt(0).Set(value)
}

func copyTransfers(transfers []*TokenTransfer) []*TokenTransfer {
	result := make([]*TokenTransfer, 0, len(transfers))
	for _, transfer := range transfers {
		if transfer == nil {
			result = append(result, nil)
			continue
		}

		result = append(result, &TokenTransfer{
			Identifier: transfer.Identifier,
			Nonce:      transfer.Nonce,
			Amount:     copyBigInt(transfer.Amount),
		})
	}

	return result
}
