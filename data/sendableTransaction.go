package data

import (
	"encoding/hex"
	"math/big"

	"github.com/multiversx/mx-chain-core-go/core"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
	"github.com/multiversx/mx-chain-vm-common-go/txDataBuilder"
)

// WasmVMType is the VM type used for contract deployments
var WasmVMType = []byte{5, 0}

// SendableTransaction holds the fields of a transaction the caller controls. Nonce, sender,
// chain parameters and signature are added by the interactor.
type SendableTransaction struct {
	Receiver []byte
	Value    *big.Int
	Data     []byte
	GasLimit uint64
}

// SendableTransactionConvertible is implemented by requests that can be turned into a SendableTransaction
type SendableTransactionConvertible interface {
	ToSendableTransaction(sender []byte) (*SendableTransaction, error)
}

// ToSendableTransaction converts the call into a transaction. Token transfers are expressed
// through the ESDTTransfer or MultiESDTNFTTransfer built-in functions.
func (request *TransactionRequest) ToSendableTransaction(sender []byte) (*SendableTransaction, error) {
	err := request.CheckValidity()
	if err != nil {
		return nil, err
	}

	switch {
	case len(request.Transfers) == 0:
		return &SendableTransaction{
			Receiver: copyBytes(request.Receiver),
			Value:    copyBigInt(request.Value),
			Data:     request.plainCallData(),
			GasLimit: request.GasLimit,
		}, nil
	case len(request.Transfers) == 1 && request.Transfers[0].IsFungible():
		return &SendableTransaction{
			Receiver: copyBytes(request.Receiver),
			Value:    copyBigInt(request.Value),
			Data:     request.esdtTransferData(),
			GasLimit: request.GasLimit,
		}, nil
	default:
		if len(sender) != AddressLen {
			return nil, ErrInvalidSender
		}

		return &SendableTransaction{
			Receiver: copyBytes(sender),
			Value:    copyBigInt(request.Value),
			Data:     request.multiTransferData(),
			GasLimit: request.GasLimit,
		}, nil
	}
}

func (request *TransactionRequest) plainCallData() []byte {
	if len(request.Function) == 0 {
		return nil
	}

	builder := txDataBuilder.NewBuilder()
	builder.Func(request.Function)
	appendArguments(builder, request.Arguments)

	return builder.ToBytes()
}

func (request *TransactionRequest) esdtTransferData() []byte {
	transfer := request.Transfers[0]

	builder := txDataBuilder.NewBuilder()
	builder.Func(core.BuiltInFunctionESDTTransfer).
		Str(transfer.Identifier).
		BigInt(transfer.Amount)
	appendFunctionCall(builder, request.Function, request.Arguments)

	return builder.ToBytes()
}

func (request *TransactionRequest) multiTransferData() []byte {
	builder := txDataBuilder.NewBuilder()
	builder.Func(core.BuiltInFunctionMultiESDTNFTTransfer).
		Bytes(request.Receiver).
		Int(len(request.Transfers))
	for _, transfer := range request.Transfers {
		builder.Str(transfer.Identifier).
			BigInt(big.NewInt(0).SetUint64(transfer.Nonce)).
			BigInt(transfer.Amount)
	}
	appendFunctionCall(builder, request.Function, request.Arguments)

	return builder.ToBytes()
}

// dataBuilder is the chaining surface of the vm-common call data builder
type dataBuilder[B any] interface {
	Str(data string) B
	Bytes(data []byte) B
}

func appendFunctionCall[B dataBuilder[B]](builder B, function string, arguments [][]byte) {
	if len(function) == 0 {
		return
	}

	builder.Str(function)
	appendArguments(builder, arguments)
}

// ToSendableTransaction converts the deploy into a transaction sent to the system deploy address
func (request *DeployRequest) ToSendableTransaction(_ []byte) (*SendableTransaction, error) {
	err := request.CheckValidity()
	if err != nil {
		return nil, err
	}

	builder := txDataBuilder.NewBuilder()
	builder.Func(hex.EncodeToString(request.Code)).
		Bytes(WasmVMType).
		Bytes(request.Metadata.ToBytes())
	appendArguments(builder, request.Arguments)

	return &SendableTransaction{
		Receiver: make([]byte, AddressLen),
		Value:    copyBigInt(request.Value),
		Data:     builder.ToBytes(),
		GasLimit: request.GasLimit,
	}, nil
}

// ToBytes returns the protocol representation of the code metadata
func (metadata CodeMetadata) ToBytes() []byte {
	vmMetadata := vmcommon.CodeMetadata{
		Upgradeable: metadata.Upgradeable,
		Readable:    metadata.Readable,
		Payable:     metadata.Payable,
		PayableBySC: metadata.PayableBySC,
	}

	return vmMetadata.ToBytes()
}

func appendArguments[B dataBuilder[B]](builder B, arguments [][]byte) {
	for _, arg := range arguments {
		builder.Bytes(arg)
	}
}
