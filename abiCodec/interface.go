package abiCodec

// AbiSerializer converts between ABI values and the "@" separated hex encoding used in
// smart contract call data and returned data
type AbiSerializer interface {
	Serialize(inputValues []any) (string, error)
	Deserialize(data string, outputValues []any) error
}
