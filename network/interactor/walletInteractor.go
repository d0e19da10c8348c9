package interactor

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/marshal"
	"github.com/multiversx/mx-chain-executor-go/data"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
	"github.com/multiversx/mx-chain-executor-go/network"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-storage-go/lrucache"
	"github.com/multiversx/mx-chain-storage-go/types"
)

var log = logger.GetOrCreate("network/interactor")

// ArgsWalletInteractor is the DTO used to create a wallet interactor. Zero chain parameters
// are fetched once from the network configuration.
type ArgsWalletInteractor struct {
	Proxy              network.BlockchainProxy
	Wallet             Wallet
	PubkeyConverter    core.PubkeyConverter
	Marshaller         marshal.Marshalizer
	ChainID            string
	GasPrice           uint64
	Version            uint32
	FinalizedCacheSize int
}

type chainParameters struct {
	chainID  string
	gasPrice uint64
	version  uint32
}

type walletInteractor struct {
	proxy           network.BlockchainProxy
	wallet          Wallet
	pubkeyConverter core.PubkeyConverter
	marshaller      marshal.Marshalizer
	nonceHandler    *nonceHandler
	finalized       types.Cacher
	address         []byte
	bech32Address   string

	mutParameters sync.Mutex
	parameters    chainParameters
}

// NewWalletInteractor creates an interactor signing with the provided wallet and talking to the network through the proxy
func NewWalletInteractor(args ArgsWalletInteractor) (*walletInteractor, error) {
	err := checkArgs(args)
	if err != nil {
		return nil, err
	}

	finalized, err := lrucache.NewCache(args.FinalizedCacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCacheSize, err)
	}

	address := args.Wallet.Address()
	bech32Address, err := args.PubkeyConverter.Encode(address)
	if err != nil {
		return nil, fmt.Errorf("%w for the wallet: %v", executorErrors.ErrInvalidAddress, err)
	}

	return &walletInteractor{
		proxy:           args.Proxy,
		wallet:          args.Wallet,
		pubkeyConverter: args.PubkeyConverter,
		marshaller:      args.Marshaller,
		nonceHandler:    newNonceHandler(args.Proxy, bech32Address),
		finalized:       finalized,
		address:         address,
		bech32Address:   bech32Address,
		parameters: chainParameters{
			chainID:  args.ChainID,
			gasPrice: args.GasPrice,
			version:  args.Version,
		},
	}, nil
}

func checkArgs(args ArgsWalletInteractor) error {
	if check.IfNil(args.Proxy) {
		return executorErrors.ErrNilProxy
	}
	if check.IfNil(args.Wallet) {
		return executorErrors.ErrNilWallet
	}
	if check.IfNil(args.PubkeyConverter) {
		return executorErrors.ErrNilPubkeyConverter
	}
	if check.IfNil(args.Marshaller) {
		return ErrNilMarshaller
	}
	if args.FinalizedCacheSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheSize, args.FinalizedCacheSize)
	}

	return nil
}

// Address returns the sender address
func (interactor *walletInteractor) Address() []byte {
	return append([]byte(nil), interactor.address...)
}

// SignAndSend assigns the next nonce to the transaction, signs and sends it. The nonce is given
// back only when the gateway definitively rejected the transaction; after an ambiguous or
// transient failure it stays consumed.
func (interactor *walletInteractor) SignAndSend(ctx context.Context, tx *data.SendableTransaction) (string, error) {
	if tx == nil {
		return "", ErrNilTransaction
	}

	parameters, err := interactor.getChainParameters(ctx)
	if err != nil {
		return "", err
	}

	receiver, err := interactor.pubkeyConverter.Encode(tx.Receiver)
	if err != nil {
		return "", fmt.Errorf("%w: %v", executorErrors.ErrInvalidAddress, err)
	}

	nonce, err := interactor.nonceHandler.acquireNonce(ctx)
	if err != nil {
		return "", err
	}

	signedTx := &data.SignedTransaction{
		Nonce:    nonce,
		Value:    valueString(tx),
		Receiver: receiver,
		Sender:   interactor.bech32Address,
		GasPrice: parameters.gasPrice,
		GasLimit: tx.GasLimit,
		Data:     tx.Data,
		ChainID:  parameters.chainID,
		Version:  parameters.version,
	}
	err = interactor.sign(signedTx)
	if err != nil {
		interactor.nonceHandler.releaseNonce(nonce)
		return "", err
	}

	hash, err := interactor.proxy.SendTransaction(ctx, signedTx)
	if err != nil {
		rejected := isDefinitiveRejection(err)
		if rejected {
			interactor.nonceHandler.releaseNonce(nonce)
		}

		log.Debug("send transaction failed", "nonce", nonce, "receiver", receiver, "nonce released", rejected, "error", err)
		return "", err
	}

	log.Debug("transaction sent", "hash", hash, "nonce", nonce, "receiver", receiver, "gas limit", tx.GasLimit)

	return hash, nil
}

// isDefinitiveRejection returns true if the gateway answered the send with a non-transient error
// status or a well-formed error response, so the transaction never entered the network
func isDefinitiveRejection(err error) bool {
	var netErr *executorErrors.NetworkQueryError
	if !errors.As(err, &netErr) {
		return false
	}

	switch netErr.Kind {
	case executorErrors.KindErrorInResponse:
		return true
	case executorErrors.KindHTTPStatus:
		return netErr.StatusCode >= http.StatusBadRequest && !netErr.IsTransient()
	default:
		return false
	}
}

func (interactor *walletInteractor) sign(signedTx *data.SignedTransaction) error {
	signedTx.Signature = ""
	message, err := interactor.marshaller.Marshal(signedTx)
	if err != nil {
		return err
	}

	signature, err := interactor.wallet.Sign(message)
	if err != nil {
		return err
	}
	signedTx.Signature = hex.EncodeToString(signature)

	return nil
}

func (interactor *walletInteractor) getChainParameters(ctx context.Context) (chainParameters, error) {
	interactor.mutParameters.Lock()
	defer interactor.mutParameters.Unlock()

	parameters := interactor.parameters
	if len(parameters.chainID) > 0 && parameters.gasPrice > 0 && parameters.version > 0 {
		return parameters, nil
	}

	networkConfig, err := interactor.proxy.GetNetworkConfig(ctx)
	if err != nil {
		return chainParameters{}, err
	}
	if len(parameters.chainID) == 0 {
		parameters.chainID = networkConfig.ChainID
	}
	if parameters.gasPrice == 0 {
		parameters.gasPrice = networkConfig.MinGasPrice
	}
	if parameters.version == 0 {
		parameters.version = networkConfig.MinTransactionVersion
	}

	interactor.parameters = parameters
	log.Debug("chain parameters fetched", "chain ID", parameters.chainID, "gas price", parameters.gasPrice, "version", parameters.version)

	return parameters, nil
}

// AwaitOutcome checks the transaction once. A non final status is returned as is; a final
// one comes with the smart contract results and logs, and is cached.
func (interactor *walletInteractor) AwaitOutcome(ctx context.Context, hash string) (*data.TransactionOutcome, error) {
	if len(hash) == 0 {
		return nil, ErrEmptyHash
	}

	cached, ok := interactor.finalized.Get([]byte(hash))
	if ok {
		outcome, isOutcome := cached.(*data.TransactionOutcome)
		if isOutcome {
			return outcome.Clone(), nil
		}
	}

	status, err := interactor.proxy.GetTransactionStatus(ctx, hash)
	if err != nil {
		return nil, err
	}
	if !data.IsFinalStatus(status) {
		return &data.TransactionOutcome{
			Hash:   hash,
			Status: status,
		}, nil
	}

	result, err := interactor.proxy.GetTransactionInfoWithResults(ctx, hash)
	if err != nil {
		return nil, err
	}
	if len(result.Status) == 0 {
		result.Status = status
	}

	outcome, err := network.NewOutcomeFromTransactionResult(hash, result)
	if err != nil {
		return nil, &executorErrors.NetworkQueryError{
			Kind:      executorErrors.KindMalformedPayload,
			Operation: "await outcome",
			TxHash:    hash,
			Err:       err,
		}
	}
	if outcome.IsFinal() {
		_ = interactor.finalized.Put([]byte(hash), outcome, 0)
	}

	return outcome.Clone(), nil
}

// ResyncNonce replaces the local nonce with the one known by the network
func (interactor *walletInteractor) ResyncNonce(ctx context.Context) error {
	return interactor.nonceHandler.resync(ctx)
}

// IsInterfaceNil returns true if there is no value under the interface
func (interactor *walletInteractor) IsInterfaceNil() bool {
	return interactor == nil
}

func valueString(tx *data.SendableTransaction) string {
	if tx.Value == nil {
		return "0"
	}

	return tx.Value.String()
}
