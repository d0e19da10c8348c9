package config

// ExecutorConfig holds the configuration of a network backed executor
type ExecutorConfig struct {
	Gateway      GatewayConfig
	Wallet       WalletConfig
	Transactions TransactionsConfig
	QueryRetry   RetryConfig
	Polling      RetryConfig
	Metrics      MetricsConfig
	Logs         LogsConfig
}

// GatewayConfig holds the gateway connection settings
type GatewayConfig struct {
	URL                          string
	RequestTimeoutInMilliseconds uint64
}

// WalletConfig tells where the signing key is loaded from
type WalletConfig struct {
	PemFile  string
	PemIndex int
}

// TransactionsConfig holds the chain parameters used when building transactions. Zero values
// are fetched from the network configuration.
type TransactionsConfig struct {
	ChainID            string
	GasPrice           uint64
	Version            uint32
	FinalizedCacheSize int
}

// RetryConfig bounds a retried or polled operation
type RetryConfig struct {
	MaxAttempts                uint32
	Strategy                   string
	InitialDelayInMilliseconds uint64
	MaxDelayInMilliseconds     uint64
	Multiplier                 float64
}

// MetricsConfig enables the prometheus metrics
type MetricsConfig struct {
	Enabled bool
}

// LogsConfig holds the logger settings
type LogsConfig struct {
	LogLevel string
}
