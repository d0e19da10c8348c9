package network

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-executor-go/data"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("network")

// ArgsQueryNetworkExecutor is the DTO used to create a QueryNetworkExecutor
type ArgsQueryNetworkExecutor struct {
	Proxy           BlockchainProxy
	PubkeyConverter core.PubkeyConverter
	RetryConfig     RetryConfig
	MetricsHandler  MetricsHandler
}

// QueryNetworkExecutor runs smart contract queries through a gateway proxy
type QueryNetworkExecutor struct {
	proxy           BlockchainProxy
	pubkeyConverter core.PubkeyConverter
	retryHandler    *retryHandler
	metricsHandler  MetricsHandler
}

// ProxyQueryExecutor is the query executor backed by a blockchain proxy
type ProxyQueryExecutor = QueryNetworkExecutor

// NewQueryNetworkExecutor creates a new query executor
func NewQueryNetworkExecutor(args ArgsQueryNetworkExecutor) (*QueryNetworkExecutor, error) {
	if check.IfNil(args.Proxy) {
		return nil, executorErrors.ErrNilProxy
	}
	if check.IfNil(args.PubkeyConverter) {
		return nil, executorErrors.ErrNilPubkeyConverter
	}
	if check.IfNil(args.MetricsHandler) {
		return nil, executorErrors.ErrNilMetricsHandler
	}

	retrier, err := newRetryHandler(args.RetryConfig, func() {
		args.MetricsHandler.RecordRetry(operationQuery)
	})
	if err != nil {
		return nil, err
	}

	return &QueryNetworkExecutor{
		proxy:           args.Proxy,
		pubkeyConverter: args.PubkeyConverter,
		retryHandler:    retrier,
		metricsHandler:  args.MetricsHandler,
	}, nil
}

// ExecuteQuery runs the query, retrying transient gateway failures within the configured bound
func (executor *QueryNetworkExecutor) ExecuteQuery(ctx context.Context, request *data.QueryRequest) (*data.QueryResult, error) {
	start := time.Now()
	result, err := executor.executeQuery(ctx, request)
	executor.metricsHandler.RecordOperation(operationQuery, resultOf(err), time.Since(start))

	return result, err
}

func (executor *QueryNetworkExecutor) executeQuery(ctx context.Context, request *data.QueryRequest) (*data.QueryResult, error) {
	if request == nil {
		return nil, executorErrors.ErrNilRequest
	}
	err := request.CheckValidity()
	if err != nil {
		return nil, err
	}

	vmRequest, err := executor.createVmValueRequest(request)
	if err != nil {
		return nil, err
	}

	var result *data.QueryResult
	attempts, exhausted, err := executor.retryHandler.run(ctx, func(ctx context.Context) (bool, error) {
		vmOutput, errQuery := executor.proxy.ExecuteVMQuery(ctx, vmRequest)
		if errQuery != nil {
			return executorErrors.IsTransient(errQuery), errQuery
		}
		if vmOutput == nil {
			return false, &executorErrors.NetworkQueryError{
				Kind:      executorErrors.KindMalformedPayload,
				Operation: operationQuery,
				Message:   "empty vm output",
			}
		}
		if vmOutput.ReturnCode != data.VMReturnCodeOk {
			return false, &executorErrors.NetworkQueryError{
				Kind:      executorErrors.KindErrorInResponse,
				Operation: operationQuery,
				Message:   fmt.Sprintf("%s returned %s: %s", request.Function, vmOutput.ReturnCode, vmOutput.ReturnMessage),
			}
		}

		result = (&data.QueryResult{
			ReturnData:    vmOutput.ReturnData,
			ReturnCode:    vmOutput.ReturnCode,
			ReturnMessage: vmOutput.ReturnMessage,
		}).Clone()

		return false, nil
	})
	if exhausted {
		log.Debug("query attempts exhausted", "request", request.Describe(), "attempts", attempts, "error", err)
	}
	if err != nil {
		return nil, err
	}

	log.Trace("query executed", "function", request.Function, "attempts", attempts, "num return data", len(result.ReturnData))

	return result, nil
}

func (executor *QueryNetworkExecutor) createVmValueRequest(request *data.QueryRequest) (*data.VmValueRequest, error) {
	address, err := executor.pubkeyConverter.Encode(request.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", executorErrors.ErrInvalidAddress, err)
	}

	vmRequest := &data.VmValueRequest{
		Address:  address,
		FuncName: request.Function,
		Args:     make([]string, 0, len(request.Arguments)),
	}
	for _, arg := range request.Arguments {
		vmRequest.Args = append(vmRequest.Args, hex.EncodeToString(arg))
	}
	if len(request.Caller) > 0 {
		vmRequest.CallerAddr, err = executor.pubkeyConverter.Encode(request.Caller)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", executorErrors.ErrInvalidAddress, err)
		}
	}
	if request.Value != nil && request.Value.Sign() > 0 {
		vmRequest.CallValue = request.Value.String()
	}

	return vmRequest, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (executor *QueryNetworkExecutor) IsInterfaceNil() bool {
	return executor == nil
}
