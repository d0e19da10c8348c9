package network

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-executor-go/data"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
)

// ArgsBaseTransactionNetworkExecutor is the DTO used to create a BaseTransactionNetworkExecutor
type ArgsBaseTransactionNetworkExecutor struct {
	Interactor      BlockchainInteractor
	PubkeyConverter core.PubkeyConverter
	PollingConfig   RetryConfig
	MetricsHandler  MetricsHandler
}

// BaseTransactionNetworkExecutor submits calls and deployments through a blockchain interactor
// and polls their outcomes until a final status is observed.
// The send step is never retried. Cancelling the context after the send does not undo the
// transaction: WaitForOutcome can be used later with the hash carried by the returned error.
type BaseTransactionNetworkExecutor struct {
	interactor      BlockchainInteractor
	pubkeyConverter core.PubkeyConverter
	pollingHandler  *retryHandler
	metricsHandler  MetricsHandler
}

// NewBaseTransactionNetworkExecutor creates a new transaction executor
func NewBaseTransactionNetworkExecutor(args ArgsBaseTransactionNetworkExecutor) (*BaseTransactionNetworkExecutor, error) {
	if check.IfNil(args.Interactor) {
		return nil, executorErrors.ErrNilInteractor
	}
	if check.IfNil(args.PubkeyConverter) {
		return nil, executorErrors.ErrNilPubkeyConverter
	}
	if check.IfNil(args.MetricsHandler) {
		return nil, executorErrors.ErrNilMetricsHandler
	}

	pollingHandler, err := newRetryHandler(args.PollingConfig, func() {
		args.MetricsHandler.RecordRetry(operationPoll)
	})
	if err != nil {
		return nil, err
	}

	return &BaseTransactionNetworkExecutor{
		interactor:      args.Interactor,
		pubkeyConverter: args.PubkeyConverter,
		pollingHandler:  pollingHandler,
		metricsHandler:  args.MetricsHandler,
	}, nil
}

// ExecuteTransaction signs, sends and awaits the provided call. A request can be executed only once.
// On a chain reported failure the outcome is returned together with the error.
func (executor *BaseTransactionNetworkExecutor) ExecuteTransaction(ctx context.Context, request *data.TransactionRequest) (*data.TransactionOutcome, error) {
	start := time.Now()
	outcome, err := executor.executeTransaction(ctx, request)
	executor.metricsHandler.RecordOperation(operationTransaction, resultOf(err), time.Since(start))

	return outcome, err
}

func (executor *BaseTransactionNetworkExecutor) executeTransaction(ctx context.Context, request *data.TransactionRequest) (*data.TransactionOutcome, error) {
	if request == nil {
		return nil, executorErrors.ErrNilRequest
	}
	err := request.CheckValidity()
	if err != nil {
		return nil, err
	}
	if request.MarkExecuted() {
		return nil, executorErrors.ErrRequestAlreadyExecuted
	}

	return executor.submit(ctx, operationTransaction, request.Describe(), request)
}

// Deploy signs, sends and awaits the provided deployment, returning the new contract address.
// A request can be deployed only once.
func (executor *BaseTransactionNetworkExecutor) Deploy(ctx context.Context, request *data.DeployRequest) (*data.DeployOutcome, error) {
	start := time.Now()
	outcome, err := executor.deploy(ctx, request)
	executor.metricsHandler.RecordOperation(operationDeploy, resultOf(err), time.Since(start))

	return outcome, err
}

func (executor *BaseTransactionNetworkExecutor) deploy(ctx context.Context, request *data.DeployRequest) (*data.DeployOutcome, error) {
	if request == nil {
		return nil, executorErrors.ErrNilRequest
	}
	err := request.CheckValidity()
	if err != nil {
		return nil, err
	}
	if request.MarkExecuted() {
		return nil, executorErrors.ErrRequestAlreadyExecuted
	}

	outcome, err := executor.submit(ctx, operationDeploy, request.Describe(), request)
	if err != nil {
		if outcome == nil {
			return nil, err
		}
		return &data.DeployOutcome{Outcome: outcome}, err
	}

	address, err := ExtractDeployedAddress(executor.pubkeyConverter, outcome)
	if err != nil {
		return &data.DeployOutcome{Outcome: outcome}, &executorErrors.NetworkQueryError{
			Kind:      executorErrors.KindMalformedPayload,
			Operation: operationDeploy,
			TxHash:    outcome.Hash,
			Err:       err,
		}
	}

	log.Debug("contract deployed", "tx hash", outcome.Hash, "address", executor.pubkeyConverter.SilentEncode(address, log))

	return &data.DeployOutcome{
		Address: address,
		Outcome: outcome,
	}, nil
}

func (executor *BaseTransactionNetworkExecutor) submit(
	ctx context.Context,
	operation string,
	description string,
	convertible data.SendableTransactionConvertible,
) (*data.TransactionOutcome, error) {
	tx, err := convertible.ToSendableTransaction(executor.interactor.Address())
	if err != nil {
		return nil, err
	}

	hash, err := executor.interactor.SignAndSend(ctx, tx)
	if err != nil {
		return nil, classifySendError(operation, description, err)
	}

	log.Debug("transaction sent", "operation", operation, "tx hash", hash, "request", description)

	outcome, err := executor.WaitForOutcome(ctx, hash)
	if err != nil {
		return outcome, err
	}
	if !outcome.IsSuccessful() {
		return outcome, &executorErrors.NetworkQueryError{
			Kind:      executorErrors.KindTransactionFailed,
			Operation: operation,
			TxHash:    hash,
			Message:   fmt.Sprintf("status %s: %s", outcome.Status, outcome.ReturnMessage),
		}
	}

	return outcome, nil
}

// WaitForOutcome polls the outcome of an already sent transaction until it reaches a final
// status or the polling budget runs out
func (executor *BaseTransactionNetworkExecutor) WaitForOutcome(ctx context.Context, hash string) (*data.TransactionOutcome, error) {
	var outcome *data.TransactionOutcome
	attempts, exhausted, err := executor.pollingHandler.run(ctx, func(ctx context.Context) (bool, error) {
		polled, errAwait := executor.interactor.AwaitOutcome(ctx, hash)
		if errAwait != nil {
			return executorErrors.IsTransient(errAwait), errAwait
		}
		if polled == nil {
			return false, &executorErrors.NetworkQueryError{
				Kind:      executorErrors.KindMalformedPayload,
				Operation: operationPoll,
				TxHash:    hash,
				Message:   "empty outcome",
			}
		}
		if !polled.IsFinal() {
			return true, nil
		}

		outcome = polled
		return false, nil
	})
	if exhausted {
		return nil, &executorErrors.NetworkQueryError{
			Kind:      executorErrors.KindTimeout,
			Operation: operationPoll,
			TxHash:    hash,
			Message:   fmt.Sprintf("no final status after %d attempts", attempts),
			Err:       err,
		}
	}
	if ctx.Err() != nil && err == ctx.Err() {
		return nil, fmt.Errorf("%w while awaiting transaction %s, the transaction may still be executed", err, hash)
	}
	if err != nil {
		return nil, err
	}

	log.Trace("transaction outcome", "tx hash", hash, "status", outcome.Status, "attempts", attempts)

	return outcome, nil
}

// classifySendError reports transient transport failures of the send step as ambiguous: the
// transaction may have reached the network and must not be sent again blindly. A context
// cancelled or timed out while sending is ambiguous as well.
func classifySendError(operation string, description string, err error) error {
	isContextError := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	if !isContextError && !executorErrors.IsTransient(err) {
		return err
	}

	return &executorErrors.NetworkQueryError{
		Kind:      executorErrors.KindAmbiguousSend,
		Operation: operation,
		Message:   description,
		Err:       err,
	}
}

// IsInterfaceNil returns true if there is no value under the interface
func (executor *BaseTransactionNetworkExecutor) IsInterfaceNil() bool {
	return executor == nil
}
