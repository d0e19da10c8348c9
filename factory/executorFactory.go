package factory

import (
	"fmt"
	"net/http"
	"time"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/core/pubkeyConverter"
	"github.com/multiversx/mx-chain-core-go/marshal"
	"github.com/multiversx/mx-chain-executor-go/config"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
	"github.com/multiversx/mx-chain-executor-go/network"
	"github.com/multiversx/mx-chain-executor-go/network/gateway"
	"github.com/multiversx/mx-chain-executor-go/network/interactor"
	"github.com/multiversx/mx-chain-executor-go/statusHandler"
	"github.com/multiversx/mx-chain-executor-go/statusHandler/disabled"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/prometheus/client_golang/prometheus"
)

var log = logger.GetOrCreate("factory")

const (
	addressLen  = 32
	addressHRP  = "erd"
	millisecond = time.Millisecond
)

// ExecutorFactoryArgs holds the arguments needed for creating a network executor. The wallet
// is only required by Create.
type ExecutorFactoryArgs struct {
	Config     *config.ExecutorConfig
	Wallet     interactor.Wallet
	HTTPClient *http.Client
	Registerer prometheus.Registerer
}

// ExecutorComponents holds the wired network executor and the components it was built from
type ExecutorComponents struct {
	Executor        *network.NetworkExecutor
	Proxy           network.BlockchainProxy
	Interactor      Interactor
	MetricsHandler  network.MetricsHandler
	PubkeyConverter core.PubkeyConverter
}

// QueryComponents holds a read-only executor that needs no wallet
type QueryComponents struct {
	Executor        *network.QueryNetworkExecutor
	Proxy           network.BlockchainProxy
	MetricsHandler  network.MetricsHandler
	PubkeyConverter core.PubkeyConverter
}

// ExecutorFactory is responsible for wiring a gateway backed executor
type ExecutorFactory struct {
	config     config.ExecutorConfig
	wallet     interactor.Wallet
	httpClient *http.Client
	registerer prometheus.Registerer
}

// NewExecutorFactory checks the configuration and creates the factory
func NewExecutorFactory(args ExecutorFactoryArgs) (*ExecutorFactory, error) {
	if args.Config == nil {
		return nil, ErrNilConfig
	}

	err := config.SanityCheckExecutorConfig(args.Config)
	if err != nil {
		return nil, err
	}

	return &ExecutorFactory{
		config:     *args.Config,
		wallet:     args.Wallet,
		httpClient: args.HTTPClient,
		registerer: args.Registerer,
	}, nil
}

// Create creates the executor components. It errors if the factory was built without a wallet.
func (factory *ExecutorFactory) Create() (*ExecutorComponents, error) {
	if check.IfNil(factory.wallet) {
		return nil, executorErrors.ErrNilWallet
	}

	queryComponents, err := factory.CreateQueryComponents()
	if err != nil {
		return nil, err
	}
	converter := queryComponents.PubkeyConverter
	proxy := queryComponents.Proxy
	metricsHandler := queryComponents.MetricsHandler

	walletInteractor, err := interactor.NewWalletInteractor(interactor.ArgsWalletInteractor{
		Proxy:              proxy,
		Wallet:             factory.wallet,
		PubkeyConverter:    converter,
		Marshaller:         &marshal.JsonMarshalizer{},
		ChainID:            factory.config.Transactions.ChainID,
		GasPrice:           factory.config.Transactions.GasPrice,
		Version:            factory.config.Transactions.Version,
		FinalizedCacheSize: factory.config.Transactions.FinalizedCacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInteractorCreation, err.Error())
	}

	txExecutor, err := network.NewBaseTransactionNetworkExecutor(network.ArgsBaseTransactionNetworkExecutor{
		Interactor:      walletInteractor,
		PubkeyConverter: converter,
		PollingConfig:   toRetryConfig(factory.config.Polling),
		MetricsHandler:  metricsHandler,
	})
	if err != nil {
		return nil, err
	}

	networkExecutor, err := network.NewNetworkExecutor(queryComponents.Executor, txExecutor)
	if err != nil {
		return nil, err
	}

	log.Debug("network executor created",
		"gateway", factory.config.Gateway.URL,
		"sender", converter.SilentEncode(factory.wallet.Address(), log),
		"metrics", factory.config.Metrics.Enabled,
	)

	return &ExecutorComponents{
		Executor:        networkExecutor,
		Proxy:           proxy,
		Interactor:      walletInteractor,
		MetricsHandler:  metricsHandler,
		PubkeyConverter: converter,
	}, nil
}

// CreateQueryComponents creates the gateway proxy and a query executor on top of it
func (factory *ExecutorFactory) CreateQueryComponents() (*QueryComponents, error) {
	converter, err := pubkeyConverter.NewBech32PubkeyConverter(addressLen, addressHRP)
	if err != nil {
		return nil, err
	}

	metricsHandler, err := factory.createMetricsHandler()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMetricsHandlerCreation, err.Error())
	}

	proxy, err := gateway.NewGatewayProxy(gateway.ArgsGatewayProxy{
		URL:            factory.config.Gateway.URL,
		Client:         factory.httpClient,
		RequestTimeout: time.Duration(factory.config.Gateway.RequestTimeoutInMilliseconds) * millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGatewayProxyCreation, err.Error())
	}

	queryExecutor, err := network.NewQueryNetworkExecutor(network.ArgsQueryNetworkExecutor{
		Proxy:           proxy,
		PubkeyConverter: converter,
		RetryConfig:     toRetryConfig(factory.config.QueryRetry),
		MetricsHandler:  metricsHandler,
	})
	if err != nil {
		return nil, err
	}

	return &QueryComponents{
		Executor:        queryExecutor,
		Proxy:           proxy,
		MetricsHandler:  metricsHandler,
		PubkeyConverter: converter,
	}, nil
}

func (factory *ExecutorFactory) createMetricsHandler() (network.MetricsHandler, error) {
	if !factory.config.Metrics.Enabled {
		return disabled.NewDisabledMetricsHandler(), nil
	}

	registerer := factory.registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return statusHandler.NewPrometheusMetricsHandler(registerer)
}

func toRetryConfig(cfg config.RetryConfig) network.RetryConfig {
	maxDelay := cfg.MaxDelayInMilliseconds
	if maxDelay == 0 {
		maxDelay = cfg.InitialDelayInMilliseconds
	}
	multiplier := cfg.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}

	return network.RetryConfig{
		MaxAttempts:  cfg.MaxAttempts,
		Strategy:     cfg.Strategy,
		InitialDelay: time.Duration(cfg.InitialDelayInMilliseconds) * millisecond,
		MaxDelay:     time.Duration(maxDelay) * millisecond,
		Multiplier:   multiplier,
	}
}
