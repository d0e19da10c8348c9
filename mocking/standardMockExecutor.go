package mocking

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-executor-go/data"
)

const (
	numZeroPrefixBytes = 8
	nonceBytesLen      = 8
	deployerTailLen    = data.AddressLen - numZeroPrefixBytes - 2 - nonceBytesLen
)

// StandardMockArgs is the DTO used to create a standard mock executor
type StandardMockArgs struct {
	DeployerAddress []byte
	FirstNonce      uint64
}

// StandardMockExecutor is a MockExecutor with helpers building the canned results, and
// deterministic contract addresses for the expected deploys
type StandardMockExecutor struct {
	*MockExecutor

	deployerAddress []byte
	mutNonce        sync.Mutex
	nonce           uint64
	numTransactions uint64
}

// NewStandardMockExecutor creates a standard mock executor. A nil deployer address is replaced by the zero address.
func NewStandardMockExecutor(args StandardMockArgs) (*StandardMockExecutor, error) {
	deployer := args.DeployerAddress
	if deployer == nil {
		deployer = make([]byte, data.AddressLen)
	}
	if len(deployer) != data.AddressLen {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidDeployerAddress, len(deployer))
	}

	return &StandardMockExecutor{
		MockExecutor:    NewMockExecutor(),
		deployerAddress: append([]byte(nil), deployer...),
		nonce:           args.FirstNonce,
	}, nil
}

// ExpectQueryReturning appends a query returning the provided data segments
func (mock *StandardMockExecutor) ExpectQueryReturning(request *data.QueryRequest, returnData ...[]byte) error {
	return mock.ExpectQuery(request, &data.QueryResult{
		ReturnData: returnData,
		ReturnCode: data.VMReturnCodeOk,
	})
}

// ExpectTransactionReturning appends a successful transaction returning the provided data segments
func (mock *StandardMockExecutor) ExpectTransactionReturning(request *data.TransactionRequest, returnData ...[]byte) error {
	return mock.ExpectTransaction(request, mock.newOutcome(returnData))
}

// ExpectDeployReturning appends a successful deploy at the next mock contract address and returns that address
func (mock *StandardMockExecutor) ExpectDeployReturning(request *data.DeployRequest, returnData ...[]byte) ([]byte, error) {
	address := mock.NextContractAddress()
	err := mock.ExpectDeployAt(request, address, returnData...)
	if err != nil {
		return nil, err
	}

	return address, nil
}

// ExpectDeployAt appends a successful deploy at the provided address
func (mock *StandardMockExecutor) ExpectDeployAt(request *data.DeployRequest, address []byte, returnData ...[]byte) error {
	return mock.ExpectDeploy(request, &data.DeployOutcome{
		Address: address,
		Outcome: mock.newOutcome(returnData),
	})
}

// NextContractAddress builds a contract address from the deployer and consumes its next nonce
func (mock *StandardMockExecutor) NextContractAddress() []byte {
	mock.mutNonce.Lock()
	nonce := mock.nonce
	mock.nonce++
	mock.mutNonce.Unlock()

	return NewMockContractAddress(mock.deployerAddress, nonce)
}

func (mock *StandardMockExecutor) newOutcome(returnData [][]byte) *data.TransactionOutcome {
	mock.mutNonce.Lock()
	mock.numTransactions++
	index := mock.numTransactions
	mock.mutNonce.Unlock()

	return &data.TransactionOutcome{
		Hash:       fmt.Sprintf("mock-tx-%d", index),
		Status:     transaction.TxStatusSuccess,
		ReturnData: returnData,
	}
}

// NewMockContractAddress returns the mock address of the contract deployed by the deployer
// at the provided nonce: 8 zero bytes, the wasm VM type, the nonce and the deployer tail
func NewMockContractAddress(deployer []byte, nonce uint64) []byte {
	address := make([]byte, 0, data.AddressLen)
	address = append(address, make([]byte, numZeroPrefixBytes)...)
	address = append(address, data.WasmVMType...)
	address = binary.BigEndian.AppendUint64(address, nonce)

	tail := make([]byte, deployerTailLen)
	if len(deployer) >= deployerTailLen {
		copy(tail, deployer[len(deployer)-deployerTailLen:])
	}

	return append(address, tail...)
}
