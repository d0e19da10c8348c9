package network

import "errors"

// ErrMissingDeployEvent signals that a successful deploy outcome does not hold the SCDeploy event
var ErrMissingDeployEvent = errors.New("missing SCDeploy event")

// ErrInvalidOutcomeData signals that an outcome holds return data that could not be parsed
var ErrInvalidOutcomeData = errors.New("invalid outcome data")

// ErrNilTransactionResult signals that a nil transaction result has been provided
var ErrNilTransactionResult = errors.New("nil transaction result")
