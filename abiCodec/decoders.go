package abiCodec

import (
	"fmt"
	"math/big"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-executor-go/data"
	"github.com/multiversx/mx-chain-executor-go/executor"
	"github.com/multiversx/mx-sdk-abi-incubator/golang/abi"
)

// OutputsFactory creates fresh ABI output values for one decode call, together with the
// function extracting the caller value once they were filled
type OutputsFactory[T any] func() (outputs []any, extract func() (T, error))

type abiDecoder[T any] struct {
	serializer AbiSerializer
	newOutputs OutputsFactory[T]
}

// NewAbiDecoder creates a decoder filling the values produced by the factory through the ABI serializer
func NewAbiDecoder[T any](serializer AbiSerializer, newOutputs OutputsFactory[T]) (executor.Decoder[T], error) {
	if serializer == nil {
		return nil, ErrNilSerializer
	}
	if newOutputs == nil {
		return nil, ErrNilOutputsFactory
	}

	return &abiDecoder[T]{
		serializer: serializer,
		newOutputs: newOutputs,
	}, nil
}

// Decode deserializes the returned data segments
func (decoder *abiDecoder[T]) Decode(returnData [][]byte) (T, error) {
	var empty T

	outputs, extract := decoder.newOutputs()
	if len(returnData) < len(outputs) {
		return empty, fmt.Errorf("%w: expected %d, got %d", ErrNotEnoughReturnData, len(outputs), len(returnData))
	}

	err := decoder.serializer.Deserialize(JoinParts(returnData), outputs)
	if err != nil {
		return empty, err
	}

	return extract()
}

// U8Decoder decodes a single u8
func U8Decoder(serializer AbiSerializer) (executor.Decoder[uint8], error) {
	return NewAbiDecoder(serializer, func() ([]any, func() (uint8, error)) {
		value := &abi.U8Value{}
		return []any{value}, func() (uint8, error) { return value.Value, nil }
	})
}

// U16Decoder decodes a single u16
func U16Decoder(serializer AbiSerializer) (executor.Decoder[uint16], error) {
	return NewAbiDecoder(serializer, func() ([]any, func() (uint16, error)) {
		value := &abi.U16Value{}
		return []any{value}, func() (uint16, error) { return value.Value, nil }
	})
}

// U64Decoder decodes a single u64
func U64Decoder(serializer AbiSerializer) (executor.Decoder[uint64], error) {
	return NewAbiDecoder(serializer, func() ([]any, func() (uint64, error)) {
		value := &abi.U64Value{}
		return []any{value}, func() (uint64, error) { return value.Value, nil }
	})
}

// StringDecoder decodes a single string
func StringDecoder(serializer AbiSerializer) (executor.Decoder[string], error) {
	return NewAbiDecoder(serializer, func() ([]any, func() (string, error)) {
		value := &abi.StringValue{}
		return []any{value}, func() (string, error) { return value.Value, nil }
	})
}

// BytesDecoder decodes a single managed buffer
func BytesDecoder(serializer AbiSerializer) (executor.Decoder[[]byte], error) {
	return NewAbiDecoder(serializer, func() ([]any, func() ([]byte, error)) {
		value := &abi.BytesValue{}
		return []any{value}, func() ([]byte, error) { return value.Value, nil }
	})
}

// BigUintDecoder decodes a single top-level encoded BigUint
func BigUintDecoder() executor.Decoder[*big.Int] {
	return executor.DecoderFunc[*big.Int](func(returnData [][]byte) (*big.Int, error) {
		if len(returnData) == 0 {
			return nil, fmt.Errorf("%w: expected 1, got 0", ErrNotEnoughReturnData)
		}

		return big.NewInt(0).SetBytes(returnData[0]), nil
	})
}

// AddressDecoder decodes a single address into its bech32 representation
func AddressDecoder(converter core.PubkeyConverter) (executor.Decoder[string], error) {
	if check.IfNil(converter) {
		return nil, ErrNilPubkeyConverter
	}

	return executor.DecoderFunc[string](func(returnData [][]byte) (string, error) {
		if len(returnData) == 0 {
			return "", fmt.Errorf("%w: expected 1, got 0", ErrNotEnoughReturnData)
		}
		if len(returnData[0]) != data.AddressLen {
			return "", fmt.Errorf("%w: address length %d", ErrInvalidAddressLength, len(returnData[0]))
		}

		return converter.Encode(returnData[0])
	}), nil
}

// RawDecoder returns a copy of the returned data segments
func RawDecoder() executor.Decoder[[][]byte] {
	return executor.DecoderFunc[[][]byte](func(returnData [][]byte) ([][]byte, error) {
		result := make([][]byte, 0, len(returnData))
		for _, part := range returnData {
			result = append(result, append([]byte{}, part...))
		}

		return result, nil
	})
}

// UnitDecoder ignores the returned data, for endpoints without results
func UnitDecoder() executor.Decoder[struct{}] {
	return executor.DecoderFunc[struct{}](func(_ [][]byte) (struct{}, error) {
		return struct{}{}, nil
	})
}
