package gateway

import "errors"

// ErrEmptyURL signals that an empty gateway URL has been provided
var ErrEmptyURL = errors.New("empty gateway URL")

// ErrInvalidURL signals that the provided gateway URL is not an http(s) URL
var ErrInvalidURL = errors.New("invalid gateway URL")

// ErrNilVmValueRequest signals that a nil query request has been provided
var ErrNilVmValueRequest = errors.New("nil vm value request")

// ErrNilTransaction signals that a nil transaction has been provided
var ErrNilTransaction = errors.New("nil transaction")
