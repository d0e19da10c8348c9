package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testString = `
[Gateway]
    URL = "https://devnet-gateway.multiversx.com"
    RequestTimeoutInMilliseconds = 10000

[Wallet]
    PemFile = "./wallet.pem"
    PemIndex = 0

[Transactions]
    ChainID = "D"
    GasPrice = 1000000000
    Version = 2
    FinalizedCacheSize = 1000

[QueryRetry]
    MaxAttempts = 3
    Strategy = "fixed"
    InitialDelayInMilliseconds = 300

[Polling]
    MaxAttempts = 60
    Strategy = "exponential"
    InitialDelayInMilliseconds = 500
    MaxDelayInMilliseconds = 6000
    Multiplier = 1.5

[Metrics]
    Enabled = true

[Logs]
    LogLevel = "*:INFO,network:DEBUG"
`

func createExpectedConfig() ExecutorConfig {
	return ExecutorConfig{
		Gateway: GatewayConfig{
			URL:                          "https://devnet-gateway.multiversx.com",
			RequestTimeoutInMilliseconds: 10000,
		},
		Wallet: WalletConfig{
			PemFile:  "./wallet.pem",
			PemIndex: 0,
		},
		Transactions: TransactionsConfig{
			ChainID:            "D",
			GasPrice:           1000000000,
			Version:            2,
			FinalizedCacheSize: 1000,
		},
		QueryRetry: RetryConfig{
			MaxAttempts:                3,
			Strategy:                   "fixed",
			InitialDelayInMilliseconds: 300,
		},
		Polling: RetryConfig{
			MaxAttempts:                60,
			Strategy:                   "exponential",
			InitialDelayInMilliseconds: 500,
			MaxDelayInMilliseconds:     6000,
			Multiplier:                 1.5,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Logs: LogsConfig{
			LogLevel: "*:INFO,network:DEBUG",
		},
	}
}

func TestTomlParser(t *testing.T) {
	t.Parallel()

	cfg := ExecutorConfig{}
	err := toml.Unmarshal([]byte(testString), &cfg)
	require.Nil(t, err)
	assert.Equal(t, createExpectedConfig(), cfg)
}

func TestLoadExecutorConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file should error", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadExecutorConfig(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Nil(t, cfg)
		assert.NotNil(t, err)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		err := os.WriteFile(path, []byte(testString), 0644)
		require.Nil(t, err)

		cfg, err := LoadExecutorConfig(path)
		require.Nil(t, err)
		assert.Equal(t, createExpectedConfig(), *cfg)
		assert.Nil(t, SanityCheckExecutorConfig(cfg))
	})
}

func TestSanityCheckExecutorConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty gateway URL should error", func(t *testing.T) {
		t.Parallel()

		cfg := createExpectedConfig()
		cfg.Gateway.URL = ""
		assert.Equal(t, errEmptyGatewayURL, SanityCheckExecutorConfig(&cfg))
	})
	t.Run("invalid cache size should error", func(t *testing.T) {
		t.Parallel()

		cfg := createExpectedConfig()
		cfg.Transactions.FinalizedCacheSize = 0
		assert.ErrorIs(t, SanityCheckExecutorConfig(&cfg), errInvalidFinalizedCacheSize)
	})
	t.Run("zero query attempts should error", func(t *testing.T) {
		t.Parallel()

		cfg := createExpectedConfig()
		cfg.QueryRetry.MaxAttempts = 0
		err := SanityCheckExecutorConfig(&cfg)
		assert.ErrorIs(t, err, errZeroMaxAttempts)
		assert.Contains(t, err.Error(), "QueryRetry")
	})
	t.Run("unknown polling strategy should error", func(t *testing.T) {
		t.Parallel()

		cfg := createExpectedConfig()
		cfg.Polling.Strategy = "linear"
		err := SanityCheckExecutorConfig(&cfg)
		assert.ErrorIs(t, err, errUnknownRetryStrategy)
		assert.Contains(t, err.Error(), "Polling")
	})
}
