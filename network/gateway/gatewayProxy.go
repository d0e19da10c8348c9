package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	"github.com/multiversx/mx-chain-executor-go/data"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/pkg/errors"
)

var log = logger.GetOrCreate("network/gateway")

const (
	operationQuery         = "vm query"
	operationSend          = "send transaction"
	operationStatus        = "transaction status"
	operationTransaction   = "transaction"
	operationAccountNonce  = "account nonce"
	operationNetworkConfig = "network config"
)

// ArgsGatewayProxy is the DTO used to create a gateway proxy
type ArgsGatewayProxy struct {
	URL            string
	Client         *http.Client
	RequestTimeout time.Duration
}

type gatewayProxy struct {
	baseURL        string
	client         *http.Client
	requestTimeout time.Duration
}

// NewGatewayProxy creates a client of the MultiversX gateway REST API
func NewGatewayProxy(args ArgsGatewayProxy) (*gatewayProxy, error) {
	if len(args.URL) == 0 {
		return nil, ErrEmptyURL
	}
	parsed, err := url.Parse(args.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}

	client := args.Client
	if client == nil {
		client = &http.Client{}
	}

	return &gatewayProxy{
		baseURL:        strings.TrimSuffix(args.URL, "/"),
		client:         client,
		requestTimeout: args.RequestTimeout,
	}, nil
}

// ExecuteVMQuery runs a smart contract query
func (proxy *gatewayProxy) ExecuteVMQuery(ctx context.Context, request *data.VmValueRequest) (*vm.VMOutputApi, error) {
	if request == nil {
		return nil, ErrNilVmValueRequest
	}

	response := &vmValuesResponseData{}
	err := proxy.doRequest(ctx, operationQuery, http.MethodPost, vmValuesQueryPath, request, response)
	if err != nil {
		return nil, err
	}
	if response.Data == nil {
		return nil, proxy.malformed(operationQuery, vmValuesQueryPath, "missing vm output", nil)
	}

	return response.Data, nil
}

// SendTransaction sends a signed transaction and returns its hash
func (proxy *gatewayProxy) SendTransaction(ctx context.Context, tx *data.SignedTransaction) (string, error) {
	if tx == nil {
		return "", ErrNilTransaction
	}

	response := &sendTransactionResponseData{}
	err := proxy.doRequest(ctx, operationSend, http.MethodPost, sendTransactionPath, tx, response)
	if err != nil {
		return "", err
	}
	if len(response.TxHash) == 0 {
		return "", proxy.malformed(operationSend, sendTransactionPath, "missing transaction hash", nil)
	}

	log.Trace("transaction sent", "nonce", tx.Nonce, "hash", response.TxHash)

	return response.TxHash, nil
}

// GetTransactionStatus returns the processing status of a transaction
func (proxy *gatewayProxy) GetTransactionStatus(ctx context.Context, hash string) (transaction.TxStatus, error) {
	path := fmt.Sprintf(transactionStatusFormat, url.PathEscape(hash))
	response := &transactionStatusResponseData{}
	err := proxy.doRequest(ctx, operationStatus, http.MethodGet, path, nil, response)
	if err != nil {
		return "", err
	}
	if len(response.Status) == 0 {
		return "", proxy.malformed(operationStatus, path, "missing status", nil)
	}

	return response.Status, nil
}

// GetTransactionInfoWithResults returns a transaction together with its smart contract results and logs
func (proxy *gatewayProxy) GetTransactionInfoWithResults(ctx context.Context, hash string) (*transaction.ApiTransactionResult, error) {
	path := fmt.Sprintf(transactionPathFormat, url.PathEscape(hash)) + withResultsQuery
	response := &transactionResponseData{}
	err := proxy.doRequest(ctx, operationTransaction, http.MethodGet, path, nil, response)
	if err != nil {
		return nil, err
	}
	if response.Transaction == nil {
		return nil, proxy.malformed(operationTransaction, path, "missing transaction", nil)
	}

	return response.Transaction, nil
}

// GetAccountNonce returns the current nonce of the bech32 address
func (proxy *gatewayProxy) GetAccountNonce(ctx context.Context, address string) (uint64, error) {
	path := fmt.Sprintf(accountNonceFormat, url.PathEscape(address))
	response := &accountNonceResponseData{}
	err := proxy.doRequest(ctx, operationAccountNonce, http.MethodGet, path, nil, response)
	if err != nil {
		return 0, err
	}

	return response.Nonce, nil
}

// GetNetworkConfig returns the network parameters
func (proxy *gatewayProxy) GetNetworkConfig(ctx context.Context) (*data.NetworkConfig, error) {
	response := &networkConfigResponseData{}
	err := proxy.doRequest(ctx, operationNetworkConfig, http.MethodGet, networkConfigPath, nil, response)
	if err != nil {
		return nil, err
	}
	if response.Config == nil {
		return nil, proxy.malformed(operationNetworkConfig, networkConfigPath, "missing config", nil)
	}

	networkConfig := &data.NetworkConfig{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           networkConfig,
	})
	if err != nil {
		return nil, err
	}
	err = decoder.Decode(response.Config)
	if err != nil {
		return nil, proxy.malformed(operationNetworkConfig, networkConfigPath, "invalid config", err)
	}

	return networkConfig, nil
}

func (proxy *gatewayProxy) doRequest(ctx context.Context, operation string, method string, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		buff, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshalling "+operation+" request")
		}
		bodyReader = bytes.NewReader(buff)
	}

	requestCtx := ctx
	if proxy.requestTimeout > 0 {
		var cancel context.CancelFunc
		requestCtx, cancel = context.WithTimeout(ctx, proxy.requestTimeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(requestCtx, method, proxy.baseURL+path, bodyReader)
	if err != nil {
		return errors.Wrap(err, "creating "+operation+" request")
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := proxy.client.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), operation)
		}

		return &executorErrors.NetworkQueryError{
			Kind:      executorErrors.KindUnreachable,
			Operation: operation,
			Endpoint:  path,
			Err:       errors.Wrap(err, method+" "+path),
		}
	}
	defer func() {
		_ = response.Body.Close()
	}()

	rawResponse, err := io.ReadAll(response.Body)
	if err != nil {
		return &executorErrors.NetworkQueryError{
			Kind:       executorErrors.KindUnreachable,
			Operation:  operation,
			Endpoint:   path,
			StatusCode: response.StatusCode,
			Err:        errors.Wrap(err, "reading response body"),
		}
	}

	envelope := &genericResponse{}
	errUnmarshal := json.Unmarshal(rawResponse, envelope)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		netErr := &executorErrors.NetworkQueryError{
			Kind:        executorErrors.KindHTTPStatus,
			Operation:   operation,
			Endpoint:    path,
			StatusCode:  response.StatusCode,
			RawResponse: rawResponse,
		}
		if errUnmarshal == nil {
			netErr.Message = envelope.Error
		}

		log.Debug("gateway request failed", "operation", operation, "status", response.StatusCode, "message", netErr.Message)
		return netErr
	}
	if errUnmarshal != nil {
		return proxy.malformedWithRaw(operation, path, rawResponse, errUnmarshal)
	}
	if len(envelope.Error) > 0 {
		return &executorErrors.NetworkQueryError{
			Kind:        executorErrors.KindErrorInResponse,
			Operation:   operation,
			Endpoint:    path,
			StatusCode:  response.StatusCode,
			Message:     envelope.Error,
			RawResponse: rawResponse,
		}
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return proxy.malformedWithRaw(operation, path, rawResponse, errors.New("missing data"))
	}
	err = json.Unmarshal(envelope.Data, result)
	if err != nil {
		return proxy.malformedWithRaw(operation, path, rawResponse, err)
	}

	return nil
}

func (proxy *gatewayProxy) malformed(operation string, path string, message string, err error) error {
	return &executorErrors.NetworkQueryError{
		Kind:      executorErrors.KindMalformedPayload,
		Operation: operation,
		Endpoint:  path,
		Message:   message,
		Err:       err,
	}
}

func (proxy *gatewayProxy) malformedWithRaw(operation string, path string, rawResponse []byte, err error) error {
	return &executorErrors.NetworkQueryError{
		Kind:        executorErrors.KindMalformedPayload,
		Operation:   operation,
		Endpoint:    path,
		RawResponse: rawResponse,
		Err:         errors.Wrap(err, "decoding response"),
	}
}

// IsInterfaceNil returns true if there is no value under the interface
func (proxy *gatewayProxy) IsInterfaceNil() bool {
	return proxy == nil
}
