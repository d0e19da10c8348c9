package testscommon

import (
	"bytes"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/pubkeyConverter"
)

// AddressLen holds the size of an account address
const AddressLen = 32

// NewPubkeyConverter returns the bech32 "erd" converter used by the tests
func NewPubkeyConverter() core.PubkeyConverter {
	converter, _ := pubkeyConverter.NewBech32PubkeyConverter(AddressLen, "erd")
	return converter
}

// AddressFromByte returns an address made of the repeated byte
func AddressFromByte(b byte) []byte {
	return bytes.Repeat([]byte{b}, AddressLen)
}

// Bech32FromByte returns the bech32 encoding of AddressFromByte
func Bech32FromByte(b byte) string {
	encoded, _ := NewPubkeyConverter().Encode(AddressFromByte(b))
	return encoded
}
