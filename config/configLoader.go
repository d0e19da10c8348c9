package config

import (
	"fmt"

	"github.com/multiversx/mx-chain-core-go/core"
)

const (
	retryStrategyFixed       = "fixed"
	retryStrategyExponential = "exponential"
)

// LoadExecutorConfig returns the ExecutorConfig read from the provided TOML file
func LoadExecutorConfig(filepath string) (*ExecutorConfig, error) {
	cfg := &ExecutorConfig{}
	err := core.LoadTomlFile(cfg, filepath)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// SanityCheckExecutorConfig returns an error if the configuration can not be used to build an executor
func SanityCheckExecutorConfig(cfg *ExecutorConfig) error {
	if len(cfg.Gateway.URL) == 0 {
		return errEmptyGatewayURL
	}
	if cfg.Transactions.FinalizedCacheSize <= 0 {
		return fmt.Errorf("%w: %d", errInvalidFinalizedCacheSize, cfg.Transactions.FinalizedCacheSize)
	}

	err := checkRetryConfig(cfg.QueryRetry)
	if err != nil {
		return fmt.Errorf("%w in QueryRetry", err)
	}
	err = checkRetryConfig(cfg.Polling)
	if err != nil {
		return fmt.Errorf("%w in Polling", err)
	}

	return nil
}

func checkRetryConfig(cfg RetryConfig) error {
	if cfg.MaxAttempts == 0 {
		return errZeroMaxAttempts
	}

	switch cfg.Strategy {
	case retryStrategyFixed, retryStrategyExponential:
		return nil
	default:
		return fmt.Errorf("%w %q", errUnknownRetryStrategy, cfg.Strategy)
	}
}
