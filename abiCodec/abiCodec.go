package abiCodec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/multiversx/mx-sdk-abi-incubator/golang/abi"
)

const partsSeparator = "@"

// NewDefaultSerializer returns the MultiversX ABI serializer with the default codec
func NewDefaultSerializer() AbiSerializer {
	return abi.NewSerializer(abi.NewDefaultCodec())
}

// EncodeArguments serializes the provided ABI values into the argument segments of a request
func EncodeArguments(serializer AbiSerializer, values ...any) ([][]byte, error) {
	if serializer == nil {
		return nil, ErrNilSerializer
	}
	if len(values) == 0 {
		return make([][]byte, 0), nil
	}

	encoded, err := serializer.Serialize(values)
	if err != nil {
		return nil, err
	}

	return splitParts(encoded)
}

// JoinParts renders raw data segments the way the ABI serializer expects them
func JoinParts(parts [][]byte) string {
	encoded := make([]string, 0, len(parts))
	for _, part := range parts {
		encoded = append(encoded, hex.EncodeToString(part))
	}

	return strings.Join(encoded, partsSeparator)
}

func splitParts(encoded string) ([][]byte, error) {
	hexParts := strings.Split(encoded, partsSeparator)
	parts := make([][]byte, 0, len(hexParts))
	for index, hexPart := range hexParts {
		part, err := hex.DecodeString(hexPart)
		if err != nil {
			return nil, fmt.Errorf("%w at index %d: %v", ErrInvalidEncodedPart, index, err)
		}

		parts = append(parts, part)
	}

	return parts, nil
}
