package testscommon

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	"github.com/multiversx/mx-chain-core-go/hashing"
	"github.com/multiversx/mx-chain-core-go/hashing/blake2b"
	"github.com/multiversx/mx-chain-core-go/marshal"
	"github.com/multiversx/mx-chain-executor-go/data"
	"github.com/multiversx/mx-chain-executor-go/wallet"
	logger "github.com/multiversx/mx-chain-logger-go"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
	"github.com/multiversx/mx-chain-vm-common-go/parsers"
)

const (
	returnCodeSuccess       = "successful"
	returnCodeRequestError  = "bad_request"
	returnCodeInternalError = "internal_issue"

	// SimulatedChainID is the chain ID advertised by the gateway simulator
	SimulatedChainID = "simulator"
	// SimulatedMinGasPrice is the minimum gas price advertised by the gateway simulator
	SimulatedMinGasPrice = 1000000000

	functionNotFoundCode = "function not found"
	userErrorCode        = "user error"
	deployInitFunction   = "init"
	scDeployIdentifier   = "SCDeploy"
)

var log = logger.GetOrCreate("testscommon")

var errFunctionNotFound = errors.New("invalid function (not found)")

// SimulatedCall is a contract call or query received by the gateway simulator
type SimulatedCall struct {
	Caller    []byte
	Contract  []byte
	Value     *big.Int
	Function  string
	Arguments [][]byte
	Transfers []*data.TokenTransfer
}

// ContractEndpoint handles a simulated contract call and returns its result segments
type ContractEndpoint func(call *SimulatedCall) ([][]byte, error)

type simulatedTransaction struct {
	tx             *data.SignedTransaction
	sender         []byte
	result         *transaction.ApiTransactionResult
	remainingPolls int
}

type gatewayResponse struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
	Code  string      `json:"code"`
}

// GatewaySimulator is an in-process HTTP server answering the gateway routes the executors use.
// Contract endpoints are registered by function name and serve both queries and calls.
type GatewaySimulator struct {
	server    *httptest.Server
	converter core.PubkeyConverter
	hasher    hashing.Hasher

	mutExecution sync.Mutex

	mut              sync.Mutex
	endpoints        map[string]ContractEndpoint
	accountNonces    map[string]uint64
	pool             map[string]map[uint64]string
	transactions     map[string]*simulatedTransaction
	sent             []*data.SignedTransaction
	pendingPolls     int
	failures         int
	failureStatus    int
	rejections       int
	rejectionMessage string
	numRequests      int
}

// NewGatewaySimulator starts a gateway simulator. Close must be called when done.
func NewGatewaySimulator() *GatewaySimulator {
	gin.SetMode(gin.TestMode)

	simulator := &GatewaySimulator{
		converter:     NewPubkeyConverter(),
		hasher:        blake2b.NewBlake2b(),
		endpoints:     make(map[string]ContractEndpoint),
		accountNonces: make(map[string]uint64),
		pool:          make(map[string]map[uint64]string),
		transactions:  make(map[string]*simulatedTransaction),
	}

	ws := gin.New()
	ws.Use(cors.Default())
	ws.Use(simulator.failureMiddleware)
	ws.POST("/vm-values/query", simulator.query)
	ws.POST("/transaction/send", simulator.sendTransaction)
	ws.GET("/transaction/:hash", simulator.getTransaction)
	ws.GET("/transaction/:hash/status", simulator.getTransactionStatus)
	ws.GET("/address/:address/nonce", simulator.getAccountNonce)
	ws.GET("/network/config", simulator.getNetworkConfig)

	simulator.server = httptest.NewServer(ws)

	return simulator
}

// URL returns the base URL of the simulator
func (simulator *GatewaySimulator) URL() string {
	return simulator.server.URL
}

// Close stops the simulator
func (simulator *GatewaySimulator) Close() {
	simulator.server.Close()
}

// RegisterEndpoint sets the handler of the provided contract function
func (simulator *GatewaySimulator) RegisterEndpoint(function string, endpoint ContractEndpoint) {
	simulator.mut.Lock()
	simulator.endpoints[function] = endpoint
	simulator.mut.Unlock()
}

// SetAccountNonce sets the nonce of the bech32 encoded account
func (simulator *GatewaySimulator) SetAccountNonce(address string, nonce uint64) {
	simulator.mut.Lock()
	simulator.accountNonces[address] = nonce
	simulator.mut.Unlock()
}

// RejectNextTransactions answers the next sends with HTTP 400 and the provided message, before
// any nonce check, the way the gateway rejects a transaction failing its validation
func (simulator *GatewaySimulator) RejectNextTransactions(numTransactions int, message string) {
	simulator.mut.Lock()
	simulator.rejections = numTransactions
	simulator.rejectionMessage = message
	simulator.mut.Unlock()
}

// SetPendingPolls sets how many status polls report a new transaction as pending
func (simulator *GatewaySimulator) SetPendingPolls(numPolls int) {
	simulator.mut.Lock()
	simulator.pendingPolls = numPolls
	simulator.mut.Unlock()
}

// FailNextRequests answers the next requests with the provided HTTP status
func (simulator *GatewaySimulator) FailNextRequests(numRequests int, statusCode int) {
	simulator.mut.Lock()
	simulator.failures = numRequests
	simulator.failureStatus = statusCode
	simulator.mut.Unlock()
}

// SentTransactions returns the accepted transactions, in arrival order, executed or still pooled
func (simulator *GatewaySimulator) SentTransactions() []*data.SignedTransaction {
	simulator.mut.Lock()
	defer simulator.mut.Unlock()

	return append(make([]*data.SignedTransaction, 0, len(simulator.sent)), simulator.sent...)
}

// NumRequests returns the number of received requests, failed ones included
func (simulator *GatewaySimulator) NumRequests() int {
	simulator.mut.Lock()
	defer simulator.mut.Unlock()

	return simulator.numRequests
}

func (simulator *GatewaySimulator) failureMiddleware(c *gin.Context) {
	simulator.mut.Lock()
	simulator.numRequests++
	shouldFail := simulator.failures > 0
	statusCode := simulator.failureStatus
	if shouldFail {
		simulator.failures--
	}
	simulator.mut.Unlock()

	if shouldFail {
		respondError(c, statusCode, returnCodeInternalError, "simulated failure")
		c.Abort()
		return
	}

	c.Next()
}

func (simulator *GatewaySimulator) query(c *gin.Context) {
	request := &data.VmValueRequest{}
	err := c.ShouldBindJSON(request)
	if err != nil {
		respondError(c, http.StatusBadRequest, returnCodeRequestError, err.Error())
		return
	}

	call, err := simulator.queryToCall(request)
	if err != nil {
		respondError(c, http.StatusBadRequest, returnCodeRequestError, err.Error())
		return
	}

	output := &vm.VMOutputApi{ReturnCode: data.VMReturnCodeOk}
	returnData, err := simulator.callEndpoint(call)
	switch {
	case errors.Is(err, errFunctionNotFound):
		output.ReturnCode = functionNotFoundCode
		output.ReturnMessage = err.Error()
	case err != nil:
		output.ReturnCode = userErrorCode
		output.ReturnMessage = err.Error()
	default:
		output.ReturnData = returnData
	}

	respondData(c, gin.H{"data": output})
}

func (simulator *GatewaySimulator) queryToCall(request *data.VmValueRequest) (*SimulatedCall, error) {
	contract, err := simulator.converter.Decode(request.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid contract address: %w", err)
	}

	call := &SimulatedCall{
		Contract:  contract,
		Value:     big.NewInt(0),
		Function:  request.FuncName,
		Arguments: make([][]byte, 0, len(request.Args)),
	}
	if len(request.CallerAddr) > 0 {
		call.Caller, err = simulator.converter.Decode(request.CallerAddr)
		if err != nil {
			return nil, fmt.Errorf("invalid caller address: %w", err)
		}
	}
	if len(request.CallValue) > 0 {
		value, ok := big.NewInt(0).SetString(request.CallValue, 10)
		if !ok {
			return nil, fmt.Errorf("invalid value %s", request.CallValue)
		}
		call.Value = value
	}
	for _, hexArg := range request.Args {
		arg, errDecode := hex.DecodeString(hexArg)
		if errDecode != nil {
			return nil, fmt.Errorf("invalid argument: %w", errDecode)
		}
		call.Arguments = append(call.Arguments, arg)
	}

	return call, nil
}

func (simulator *GatewaySimulator) callEndpoint(call *SimulatedCall) ([][]byte, error) {
	simulator.mut.Lock()
	endpoint, found := simulator.endpoints[call.Function]
	simulator.mut.Unlock()
	if !found {
		return nil, fmt.Errorf("%w: %s", errFunctionNotFound, call.Function)
	}

	return endpoint(call)
}

func (simulator *GatewaySimulator) sendTransaction(c *gin.Context) {
	tx := &data.SignedTransaction{}
	err := c.ShouldBindJSON(tx)
	if err != nil {
		respondError(c, http.StatusBadRequest, returnCodeRequestError, err.Error())
		return
	}

	sender, err := simulator.checkSignature(tx)
	if err != nil {
		respondError(c, http.StatusBadRequest, returnCodeRequestError, err.Error())
		return
	}

	signedBytes, _ := json.Marshal(tx)
	hash := hex.EncodeToString(simulator.hasher.Compute(string(signedBytes)))

	simulator.mut.Lock()
	err = simulator.addToPool(hash, sender, tx)
	simulator.mut.Unlock()
	if err != nil {
		respondError(c, http.StatusBadRequest, returnCodeRequestError, err.Error())
		return
	}

	simulator.executeReady(tx.Sender)

	respondData(c, gin.H{"txHash": hash})
}

// addToPool accepts transactions with future nonces; they stay pending until the gap is filled
func (simulator *GatewaySimulator) addToPool(hash string, sender []byte, tx *data.SignedTransaction) error {
	if simulator.rejections > 0 {
		simulator.rejections--
		return errors.New(simulator.rejectionMessage)
	}
	if tx.Nonce < simulator.accountNonces[tx.Sender] {
		return fmt.Errorf("transaction nonce %d too low", tx.Nonce)
	}

	senderPool, found := simulator.pool[tx.Sender]
	if !found {
		senderPool = make(map[uint64]string)
		simulator.pool[tx.Sender] = senderPool
	}
	_, isDuplicate := senderPool[tx.Nonce]
	if isDuplicate {
		return fmt.Errorf("transaction nonce %d already in pool", tx.Nonce)
	}

	senderPool[tx.Nonce] = hash
	simulator.sent = append(simulator.sent, tx)
	simulator.transactions[hash] = &simulatedTransaction{
		tx:             tx,
		sender:         sender,
		remainingPolls: simulator.pendingPolls,
	}

	return nil
}

// executeReady executes, in nonce order, the pooled transactions of the sender whose nonce
// matches the account nonce
func (simulator *GatewaySimulator) executeReady(senderAddress string) {
	simulator.mutExecution.Lock()
	defer simulator.mutExecution.Unlock()

	for {
		simulator.mut.Lock()
		accountNonce := simulator.accountNonces[senderAddress]
		hash, found := simulator.pool[senderAddress][accountNonce]
		var simulated *simulatedTransaction
		if found {
			delete(simulator.pool[senderAddress], accountNonce)
			simulator.accountNonces[senderAddress] = accountNonce + 1
			simulated = simulator.transactions[hash]
		}
		simulator.mut.Unlock()

		if !found {
			return
		}

		result := simulator.execute(hash, simulated.sender, simulated.tx)
		simulator.mut.Lock()
		simulated.result = result
		simulator.mut.Unlock()
	}
}

func (simulator *GatewaySimulator) checkSignature(tx *data.SignedTransaction) ([]byte, error) {
	sender, err := simulator.converter.Decode(tx.Sender)
	if err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	signature, err := hex.DecodeString(tx.Signature)
	if err != nil || len(signature) == 0 {
		return nil, errors.New("invalid signature encoding")
	}

	unsigned := *tx
	unsigned.Signature = ""
	message, err := json.Marshal(&unsigned)
	if err != nil {
		return nil, err
	}

	err = wallet.VerifySignature(sender, message, signature)
	if err != nil {
		return nil, fmt.Errorf("invalid signature: %w", err)
	}

	return sender, nil
}

func (simulator *GatewaySimulator) execute(hash string, sender []byte, tx *data.SignedTransaction) *transaction.ApiTransactionResult {
	result := &transaction.ApiTransactionResult{
		Hash:     hash,
		Nonce:    tx.Nonce,
		Sender:   tx.Sender,
		Receiver: tx.Receiver,
		Value:    tx.Value,
		GasLimit: tx.GasLimit,
		GasPrice: tx.GasPrice,
		Data:     tx.Data,
		Status:   transaction.TxStatusSuccess,
	}

	receiver, err := simulator.converter.Decode(tx.Receiver)
	if err != nil {
		return simulator.failed(result, sender, err)
	}
	value, ok := big.NewInt(0).SetString(tx.Value, 10)
	if !ok {
		return simulator.failed(result, sender, fmt.Errorf("invalid value %s", tx.Value))
	}

	if bytes.Equal(receiver, make([]byte, len(receiver))) {
		return simulator.executeDeploy(result, sender, value, tx)
	}

	call, err := simulator.transactionToCall(sender, receiver, value, tx.Data)
	if err != nil {
		return simulator.failed(result, sender, err)
	}

	returnData, err := simulator.callEndpoint(call)
	if err != nil {
		return simulator.failed(result, sender, err)
	}

	result.SmartContractResults = []*transaction.ApiSmartContractResult{
		{
			Hash:           simulator.scrHash(hash),
			SndAddr:        simulator.converter.SilentEncode(call.Contract, log),
			RcvAddr:        tx.Sender,
			Data:           okResultData(returnData),
			OriginalTxHash: hash,
		},
	}

	return result
}

func (simulator *GatewaySimulator) executeDeploy(
	result *transaction.ApiTransactionResult,
	sender []byte,
	value *big.Int,
	tx *data.SignedTransaction,
) *transaction.ApiTransactionResult {
	deployArgs, err := parsers.NewDeployArgsParser().ParseData(string(tx.Data))
	if err != nil {
		return simulator.failed(result, sender, err)
	}

	contract := simulator.newContractAddress(sender, tx.Nonce)

	simulator.mut.Lock()
	_, hasInit := simulator.endpoints[deployInitFunction]
	simulator.mut.Unlock()

	returnData := make([][]byte, 0)
	if hasInit {
		returnData, err = simulator.callEndpoint(&SimulatedCall{
			Caller:    sender,
			Contract:  contract,
			Value:     value,
			Function:  deployInitFunction,
			Arguments: deployArgs.Arguments,
		})
		if err != nil {
			return simulator.failed(result, sender, err)
		}
	}

	contractBech32 := simulator.converter.SilentEncode(contract, log)
	result.Logs = &transaction.ApiLogs{
		Address: contractBech32,
		Events: []*transaction.Events{
			{
				Address:    contractBech32,
				Identifier: scDeployIdentifier,
				Topics:     [][]byte{contract, sender},
			},
		},
	}
	result.SmartContractResults = []*transaction.ApiSmartContractResult{
		{
			Hash:           simulator.scrHash(result.Hash),
			SndAddr:        contractBech32,
			RcvAddr:        result.Sender,
			Data:           okResultData(returnData),
			OriginalTxHash: result.Hash,
		},
	}

	return result
}

func (simulator *GatewaySimulator) transactionToCall(sender []byte, receiver []byte, value *big.Int, txData []byte) (*SimulatedCall, error) {
	call := &SimulatedCall{
		Caller:    sender,
		Contract:  receiver,
		Value:     value,
		Arguments: make([][]byte, 0),
		Transfers: make([]*data.TokenTransfer, 0),
	}
	if len(txData) == 0 {
		return call, nil
	}

	function, arguments, err := parsers.NewCallArgsParser().ParseData(string(txData))
	if err != nil {
		return nil, err
	}
	if function != core.BuiltInFunctionESDTTransfer && function != core.BuiltInFunctionMultiESDTNFTTransfer {
		call.Function = function
		call.Arguments = arguments
		return call, nil
	}

	transferParser, err := parsers.NewESDTTransferParser(&marshal.JsonMarshalizer{})
	if err != nil {
		return nil, err
	}
	parsed, err := transferParser.ParseESDTTransfers(sender, receiver, function, arguments)
	if err != nil {
		return nil, err
	}

	call.Contract = parsed.RcvAddr
	call.Function = parsed.CallFunction
	call.Arguments = parsed.CallArgs
	call.Transfers = toTokenTransfers(parsed.ESDTTransfers)

	return call, nil
}

func (simulator *GatewaySimulator) failed(result *transaction.ApiTransactionResult, sender []byte, err error) *transaction.ApiTransactionResult {
	result.Status = transaction.TxStatusFail
	result.Logs = &transaction.ApiLogs{
		Address: result.Sender,
		Events: []*transaction.Events{
			{
				Address:    result.Receiver,
				Identifier: core.SignalErrorOperation,
				Topics:     [][]byte{sender, []byte(err.Error())},
			},
		},
	}

	return result
}

func (simulator *GatewaySimulator) newContractAddress(sender []byte, nonce uint64) []byte {
	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)

	contract := make([]byte, AddressLen)
	copy(contract, simulator.hasher.Compute(string(sender)+string(nonceBytes)))
	// contract addresses start with 8 zero bytes
	copy(contract, make([]byte, 8))

	return contract
}

func (simulator *GatewaySimulator) scrHash(txHash string) string {
	return hex.EncodeToString(simulator.hasher.Compute("scr" + txHash))
}

func (simulator *GatewaySimulator) getTransaction(c *gin.Context) {
	simulated, found := simulator.getSimulated(c.Param("hash"))
	if !found {
		respondError(c, http.StatusNotFound, returnCodeRequestError, "transaction not found")
		return
	}

	result := *simulated.result
	if c.Query("withResults") != "true" {
		result.SmartContractResults = nil
		result.Logs = nil
	}

	respondData(c, gin.H{"transaction": &result})
}

func (simulator *GatewaySimulator) getTransactionStatus(c *gin.Context) {
	hash := c.Param("hash")

	simulator.mut.Lock()
	simulated, found := simulator.transactions[hash]
	var status transaction.TxStatus
	if found {
		status = transaction.TxStatusPending
		if simulated.remainingPolls > 0 {
			simulated.remainingPolls--
		} else if simulated.result != nil {
			status = simulated.result.Status
		}
	}
	simulator.mut.Unlock()

	if !found {
		respondError(c, http.StatusNotFound, returnCodeRequestError, "transaction not found")
		return
	}

	respondData(c, gin.H{"status": status})
}

func (simulator *GatewaySimulator) getSimulated(hash string) (*simulatedTransaction, bool) {
	simulator.mut.Lock()
	defer simulator.mut.Unlock()

	simulated, found := simulator.transactions[hash]
	if !found || simulated.result == nil {
		return nil, false
	}

	return simulated, true
}

func (simulator *GatewaySimulator) getAccountNonce(c *gin.Context) {
	address := c.Param("address")
	_, err := simulator.converter.Decode(address)
	if err != nil {
		respondError(c, http.StatusBadRequest, returnCodeRequestError, "invalid address: "+err.Error())
		return
	}

	simulator.mut.Lock()
	nonce := simulator.accountNonces[address]
	simulator.mut.Unlock()

	respondData(c, gin.H{"nonce": nonce})
}

func (simulator *GatewaySimulator) getNetworkConfig(c *gin.Context) {
	respondData(c, gin.H{
		"config": gin.H{
			"erd_chain_id":                SimulatedChainID,
			"erd_min_gas_price":           SimulatedMinGasPrice,
			"erd_min_gas_limit":           50000,
			"erd_min_transaction_version": 1,
			"erd_gas_per_data_byte":       1500,
			"erd_num_shards_without_meta": 3,
			"erd_round_duration":          6000,
		},
	})
}

func okResultData(returnData [][]byte) string {
	builder := strings.Builder{}
	builder.WriteString("@" + hex.EncodeToString([]byte(data.VMReturnCodeOk)))
	for _, part := range returnData {
		builder.WriteString("@" + hex.EncodeToString(part))
	}

	return builder.String()
}

func toTokenTransfers(transfers []*vmcommon.ESDTTransfer) []*data.TokenTransfer {
	result := make([]*data.TokenTransfer, 0, len(transfers))
	for _, transfer := range transfers {
		result = append(result, &data.TokenTransfer{
			Identifier: string(transfer.ESDTTokenName),
			Nonce:      transfer.ESDTTokenNonce,
			Amount:     transfer.ESDTValue,
		})
	}

	return result
}

func respondData(c *gin.Context, responseData interface{}) {
	c.JSON(http.StatusOK, gatewayResponse{
		Data: responseData,
		Code: returnCodeSuccess,
	})
}

func respondError(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gatewayResponse{
		Error: message,
		Code:  code,
	})
}
