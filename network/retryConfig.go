package network

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
)

const (
	// StrategyFixed waits the same delay between attempts
	StrategyFixed = "fixed"
	// StrategyExponential multiplies the delay after each attempt, up to the maximum delay
	StrategyExponential = "exponential"
)

// RetryConfig bounds the attempts of a retried operation. MaxAttempts counts the first attempt too.
type RetryConfig struct {
	MaxAttempts  uint32
	Strategy     string
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultQueryRetryConfig returns the retry configuration used for queries: 3 attempts, 300ms apart
func DefaultQueryRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		Strategy:     StrategyFixed,
		InitialDelay: 300 * time.Millisecond,
		MaxDelay:     300 * time.Millisecond,
		Multiplier:   1,
	}
}

// DefaultPollingConfig returns the configuration used while awaiting transaction outcomes:
// 60 attempts, starting at 500ms, growing 1.5x up to 6s
func DefaultPollingConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  60,
		Strategy:     StrategyExponential,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     6 * time.Second,
		Multiplier:   1.5,
	}
}

// CheckValidity returns an error if the configuration is not bounded or is inconsistent
func (config RetryConfig) CheckValidity() error {
	if config.MaxAttempts == 0 {
		return fmt.Errorf("%w: zero max attempts", executorErrors.ErrInvalidRetryConfig)
	}
	if config.InitialDelay < 0 {
		return fmt.Errorf("%w: negative initial delay", executorErrors.ErrInvalidRetryConfig)
	}

	switch config.Strategy {
	case StrategyFixed:
		return nil
	case StrategyExponential:
		if config.Multiplier < 1 {
			return fmt.Errorf("%w: multiplier %v lower than 1", executorErrors.ErrInvalidRetryConfig, config.Multiplier)
		}
		if config.MaxDelay < config.InitialDelay {
			return fmt.Errorf("%w: max delay lower than initial delay", executorErrors.ErrInvalidRetryConfig)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown strategy %q", executorErrors.ErrInvalidRetryConfig, config.Strategy)
	}
}

func (config RetryConfig) newBackOff() backoff.BackOff {
	var policy backoff.BackOff
	switch config.Strategy {
	case StrategyExponential:
		exponential := backoff.NewExponentialBackOff()
		exponential.InitialInterval = config.InitialDelay
		exponential.Multiplier = config.Multiplier
		exponential.MaxInterval = config.MaxDelay
		exponential.RandomizationFactor = 0
		exponential.MaxElapsedTime = 0
		exponential.Reset()
		policy = exponential
	default:
		policy = backoff.NewConstantBackOff(config.InitialDelay)
	}

	return backoff.WithMaxRetries(policy, uint64(config.MaxAttempts-1))
}
