package abiCodec

import "errors"

// ErrNilSerializer signals that a nil ABI serializer has been provided
var ErrNilSerializer = errors.New("nil abi serializer")

// ErrNilOutputsFactory signals that a nil outputs factory has been provided
var ErrNilOutputsFactory = errors.New("nil outputs factory")

// ErrNilPubkeyConverter signals that a nil pubkey converter has been provided
var ErrNilPubkeyConverter = errors.New("nil pubkey converter")

// ErrNotEnoughReturnData signals that fewer data segments were returned than the decoder expects
var ErrNotEnoughReturnData = errors.New("not enough return data")

// ErrInvalidAddressLength signals that a returned address does not have the expected length
var ErrInvalidAddressLength = errors.New("invalid address length")

// ErrInvalidEncodedPart signals that the serializer produced a part that is not valid hex
var ErrInvalidEncodedPart = errors.New("invalid encoded part")
