package interactor

import "errors"

// ErrNilMarshaller signals that a nil marshaller has been provided
var ErrNilMarshaller = errors.New("nil marshaller")

// ErrNilTransaction signals that a nil transaction has been provided
var ErrNilTransaction = errors.New("nil transaction")

// ErrInvalidCacheSize signals that an invalid finalized outcomes cache size has been provided
var ErrInvalidCacheSize = errors.New("invalid finalized outcomes cache size")

// ErrEmptyHash signals that an empty transaction hash has been provided
var ErrEmptyHash = errors.New("empty transaction hash")
