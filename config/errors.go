package config

import "errors"

var errEmptyGatewayURL = errors.New("empty gateway URL")

var errInvalidFinalizedCacheSize = errors.New("invalid finalized outcomes cache size")

var errZeroMaxAttempts = errors.New("zero max attempts")

var errUnknownRetryStrategy = errors.New("unknown retry strategy")
