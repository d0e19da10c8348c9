package gateway

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-executor-go/data"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
	"github.com/multiversx/mx-chain-executor-go/testscommon"
	"github.com/multiversx/mx-chain-executor-go/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProxy(t *testing.T, url string) *gatewayProxy {
	proxy, err := NewGatewayProxy(ArgsGatewayProxy{
		URL:            url,
		RequestTimeout: time.Second * 5,
	})
	require.Nil(t, err)

	return proxy
}

func createRawServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
}

func requireNetworkError(t *testing.T, err error, kind executorErrors.NetworkErrorKind) *executorErrors.NetworkQueryError {
	netErr := &executorErrors.NetworkQueryError{}
	require.True(t, errors.As(err, &netErr), "expected a network query error, got %v", err)
	require.Equal(t, kind, netErr.Kind)

	return netErr
}

type messageSigner interface {
	Sign(message []byte) ([]byte, error)
}

func signTransaction(t *testing.T, signer messageSigner, tx *data.SignedTransaction) {
	message, err := json.Marshal(tx)
	require.Nil(t, err)
	signature, err := signer.Sign(message)
	require.Nil(t, err)
	tx.Signature = hex.EncodeToString(signature)
}

func TestNewGatewayProxy(t *testing.T) {
	t.Parallel()

	t.Run("empty URL should error", func(t *testing.T) {
		t.Parallel()

		proxy, err := NewGatewayProxy(ArgsGatewayProxy{})
		assert.Nil(t, proxy)
		assert.Equal(t, ErrEmptyURL, err)
	})
	t.Run("unsupported scheme should error", func(t *testing.T) {
		t.Parallel()

		proxy, err := NewGatewayProxy(ArgsGatewayProxy{URL: "ftp://gateway"})
		assert.Nil(t, proxy)
		assert.ErrorIs(t, err, ErrInvalidURL)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		proxy, err := NewGatewayProxy(ArgsGatewayProxy{URL: "https://devnet-gateway.multiversx.com/"})
		assert.Nil(t, err)
		assert.False(t, proxy.IsInterfaceNil())
		assert.Equal(t, "https://devnet-gateway.multiversx.com", proxy.baseURL)
		assert.NotNil(t, proxy.client)
	})
}

func TestGatewayProxy_ExecuteVMQuery(t *testing.T) {
	t.Parallel()

	t.Run("nil request should error", func(t *testing.T) {
		t.Parallel()

		proxy := createProxy(t, "http://localhost")
		output, err := proxy.ExecuteVMQuery(context.Background(), nil)
		assert.Nil(t, output)
		assert.Equal(t, ErrNilVmValueRequest, err)
	})
	t.Run("should return the vm output", func(t *testing.T) {
		t.Parallel()

		simulator := testscommon.NewGatewaySimulator()
		defer simulator.Close()

		simulator.RegisterEndpoint("getSum", func(call *testscommon.SimulatedCall) ([][]byte, error) {
			assert.Equal(t, testscommon.AddressFromByte(0x0c), call.Contract)
			assert.Equal(t, [][]byte{{0x01}, {0x02}}, call.Arguments)
			return [][]byte{{0x2a}}, nil
		})

		proxy := createProxy(t, simulator.URL())
		output, err := proxy.ExecuteVMQuery(context.Background(), &data.VmValueRequest{
			Address:  testscommon.Bech32FromByte(0x0c),
			FuncName: "getSum",
			Args:     []string{"01", "02"},
		})
		require.Nil(t, err)
		assert.Equal(t, data.VMReturnCodeOk, output.ReturnCode)
		assert.Equal(t, [][]byte{{0x2a}}, output.ReturnData)
	})
	t.Run("unknown function is reported in the vm output", func(t *testing.T) {
		t.Parallel()

		simulator := testscommon.NewGatewaySimulator()
		defer simulator.Close()

		proxy := createProxy(t, simulator.URL())
		output, err := proxy.ExecuteVMQuery(context.Background(), &data.VmValueRequest{
			Address:  testscommon.Bech32FromByte(0x0c),
			FuncName: "missing",
		})
		require.Nil(t, err)
		assert.NotEqual(t, data.VMReturnCodeOk, output.ReturnCode)
		assert.Contains(t, output.ReturnMessage, "missing")
	})
}

func TestGatewayProxy_RequestFailures(t *testing.T) {
	t.Parallel()

	t.Run("server error should return a transient http status error", func(t *testing.T) {
		t.Parallel()

		simulator := testscommon.NewGatewaySimulator()
		defer simulator.Close()
		simulator.FailNextRequests(1, http.StatusServiceUnavailable)

		proxy := createProxy(t, simulator.URL())
		_, err := proxy.GetNetworkConfig(context.Background())
		netErr := requireNetworkError(t, err, executorErrors.KindHTTPStatus)
		assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
		assert.Equal(t, "simulated failure", netErr.Message)
		assert.Equal(t, networkConfigPath, netErr.Endpoint)
		assert.True(t, netErr.IsTransient())

		networkConfig, err := proxy.GetNetworkConfig(context.Background())
		require.Nil(t, err)
		assert.Equal(t, testscommon.SimulatedChainID, networkConfig.ChainID)
	})
	t.Run("bad request should return a permanent http status error", func(t *testing.T) {
		t.Parallel()

		server := createRawServer(http.StatusBadRequest, `{"data":null,"error":"bad address","code":"bad_request"}`)
		defer server.Close()

		proxy := createProxy(t, server.URL)
		_, err := proxy.GetAccountNonce(context.Background(), "erd1")
		netErr := requireNetworkError(t, err, executorErrors.KindHTTPStatus)
		assert.Equal(t, "bad address", netErr.Message)
		assert.False(t, netErr.IsTransient())
	})
	t.Run("unreachable gateway should error", func(t *testing.T) {
		t.Parallel()

		server := createRawServer(http.StatusOK, "")
		url := server.URL
		server.Close()

		proxy := createProxy(t, url)
		_, err := proxy.GetTransactionStatus(context.Background(), "hash")
		netErr := requireNetworkError(t, err, executorErrors.KindUnreachable)
		assert.True(t, netErr.IsTransient())
	})
	t.Run("invalid json should return a malformed payload error", func(t *testing.T) {
		t.Parallel()

		server := createRawServer(http.StatusOK, "not a json")
		defer server.Close()

		proxy := createProxy(t, server.URL)
		_, err := proxy.GetTransactionStatus(context.Background(), "hash")
		netErr := requireNetworkError(t, err, executorErrors.KindMalformedPayload)
		assert.Equal(t, []byte("not a json"), netErr.RawResponse)
	})
	t.Run("missing data should return a malformed payload error", func(t *testing.T) {
		t.Parallel()

		server := createRawServer(http.StatusOK, `{"data":null,"error":"","code":"successful"}`)
		defer server.Close()

		proxy := createProxy(t, server.URL)
		_, err := proxy.GetTransactionInfoWithResults(context.Background(), "hash")
		requireNetworkError(t, err, executorErrors.KindMalformedPayload)
	})
	t.Run("error in a well formed answer should error", func(t *testing.T) {
		t.Parallel()

		server := createRawServer(http.StatusOK, `{"data":{},"error":"transaction not found","code":"internal_issue"}`)
		defer server.Close()

		proxy := createProxy(t, server.URL)
		_, err := proxy.GetTransactionStatus(context.Background(), "hash")
		netErr := requireNetworkError(t, err, executorErrors.KindErrorInResponse)
		assert.Equal(t, "transaction not found", netErr.Message)
		assert.False(t, netErr.IsTransient())
	})
	t.Run("cancelled context should return the context error", func(t *testing.T) {
		t.Parallel()

		simulator := testscommon.NewGatewaySimulator()
		defer simulator.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		proxy := createProxy(t, simulator.URL())
		_, err := proxy.GetNetworkConfig(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, executorErrors.IsNetworkQueryError(err))
	})
}

func TestGatewayProxy_GetNetworkConfig(t *testing.T) {
	t.Parallel()

	simulator := testscommon.NewGatewaySimulator()
	defer simulator.Close()

	proxy := createProxy(t, simulator.URL())
	networkConfig, err := proxy.GetNetworkConfig(context.Background())
	require.Nil(t, err)
	assert.Equal(t, testscommon.SimulatedChainID, networkConfig.ChainID)
	assert.Equal(t, uint64(testscommon.SimulatedMinGasPrice), networkConfig.MinGasPrice)
	assert.Equal(t, uint32(1), networkConfig.MinTransactionVersion)
	assert.Equal(t, uint32(3), networkConfig.NumShards)
	assert.Equal(t, int64(6000), networkConfig.RoundDuration)
}

func TestGatewayProxy_SendAndFetchTransaction(t *testing.T) {
	t.Parallel()

	signer, err := wallet.GenerateWallet()
	require.Nil(t, err)
	sender, err := testscommon.NewPubkeyConverter().Encode(signer.Address())
	require.Nil(t, err)

	simulator := testscommon.NewGatewaySimulator()
	defer simulator.Close()
	simulator.SetAccountNonce(sender, 7)
	simulator.SetPendingPolls(1)
	simulator.RegisterEndpoint("add", func(call *testscommon.SimulatedCall) ([][]byte, error) {
		assert.Equal(t, signer.Address(), call.Caller)
		assert.Equal(t, [][]byte{{0x05}}, call.Arguments)
		return [][]byte{{0x2a}}, nil
	})

	proxy := createProxy(t, simulator.URL())
	ctx := context.Background()

	nonce, err := proxy.GetAccountNonce(ctx, sender)
	require.Nil(t, err)
	assert.Equal(t, uint64(7), nonce)

	tx := &data.SignedTransaction{
		Nonce:    nonce,
		Value:    "0",
		Receiver: testscommon.Bech32FromByte(0x0c),
		Sender:   sender,
		GasPrice: testscommon.SimulatedMinGasPrice,
		GasLimit: 5000000,
		Data:     []byte("add@05"),
		ChainID:  testscommon.SimulatedChainID,
		Version:  1,
	}
	signTransaction(t, signer, tx)

	hash, err := proxy.SendTransaction(ctx, tx)
	require.Nil(t, err)
	assert.NotEmpty(t, hash)

	status, err := proxy.GetTransactionStatus(ctx, hash)
	require.Nil(t, err)
	assert.Equal(t, transaction.TxStatusPending, status)
	status, err = proxy.GetTransactionStatus(ctx, hash)
	require.Nil(t, err)
	assert.Equal(t, transaction.TxStatusSuccess, status)

	result, err := proxy.GetTransactionInfoWithResults(ctx, hash)
	require.Nil(t, err)
	assert.Equal(t, hash, result.Hash)
	require.Equal(t, 1, len(result.SmartContractResults))
	assert.Equal(t, "@6f6b@2a", result.SmartContractResults[0].Data)
	assert.Equal(t, testscommon.Bech32FromByte(0x0c), result.SmartContractResults[0].SndAddr)
	assert.Equal(t, sender, result.SmartContractResults[0].RcvAddr)

	nonce, err = proxy.GetAccountNonce(ctx, sender)
	require.Nil(t, err)
	assert.Equal(t, uint64(8), nonce)

	t.Run("resending the same nonce should error", func(t *testing.T) {
		_, err = proxy.SendTransaction(ctx, tx)
		netErr := requireNetworkError(t, err, executorErrors.KindHTTPStatus)
		assert.Equal(t, http.StatusBadRequest, netErr.StatusCode)
		assert.Contains(t, netErr.Message, "nonce")
	})
	t.Run("invalid signature should error", func(t *testing.T) {
		forged := *tx
		forged.Nonce = 8
		_, err = proxy.SendTransaction(ctx, &forged)
		netErr := requireNetworkError(t, err, executorErrors.KindHTTPStatus)
		assert.Contains(t, netErr.Message, "signature")
	})
}
