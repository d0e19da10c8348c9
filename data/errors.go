package data

import "errors"

// ErrInvalidSender signals that an invalid sender address has been provided
var ErrInvalidSender = errors.New("invalid sender address")
