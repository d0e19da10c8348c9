package wallet

import "errors"

// ErrInvalidSeedLength signals that the provided private key seed does not have a supported length
var ErrInvalidSeedLength = errors.New("invalid seed length")

// ErrEmptyPemFile signals that an empty pem file path has been provided
var ErrEmptyPemFile = errors.New("empty pem file path")
