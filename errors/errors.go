package errors

import "errors"

// ErrNilProxy signals that a nil blockchain proxy has been provided
var ErrNilProxy = errors.New("nil blockchain proxy")

// ErrNilInteractor signals that a nil blockchain interactor has been provided
var ErrNilInteractor = errors.New("nil blockchain interactor")

// ErrNilPubkeyConverter signals that a nil public key converter has been provided
var ErrNilPubkeyConverter = errors.New("nil pubkey converter")

// ErrNilMetricsHandler signals that a nil metrics handler has been provided
var ErrNilMetricsHandler = errors.New("nil metrics handler")

// ErrNilWallet signals that a nil wallet has been provided
var ErrNilWallet = errors.New("nil wallet")

// ErrNilDecoder signals that a nil decoder has been provided
var ErrNilDecoder = errors.New("nil decoder")

// ErrNilExecutor signals that a nil executor has been provided
var ErrNilExecutor = errors.New("nil executor")

// ErrNilRequest signals that a nil request has been provided
var ErrNilRequest = errors.New("nil request")

// ErrNilOutcome signals that a nil outcome has been provided
var ErrNilOutcome = errors.New("nil outcome")

// ErrEmptyFunctionName signals that an empty function name has been provided
var ErrEmptyFunctionName = errors.New("empty function name")

// ErrInvalidAddress signals that an invalid address has been provided
var ErrInvalidAddress = errors.New("invalid address")

// ErrEmptyCode signals that an empty contract code has been provided for a deploy
var ErrEmptyCode = errors.New("empty contract code")

// ErrZeroGasLimit signals that a zero gas limit has been provided
var ErrZeroGasLimit = errors.New("zero gas limit")

// ErrInvalidValue signals that a negative or otherwise invalid value has been provided
var ErrInvalidValue = errors.New("invalid value")

// ErrInvalidTokenTransfer signals that an invalid token transfer has been provided
var ErrInvalidTokenTransfer = errors.New("invalid token transfer")

// ErrRequestAlreadyExecuted signals that a single-use request was handed to an executor twice
var ErrRequestAlreadyExecuted = errors.New("request already executed")

// ErrInvalidRetryConfig signals that an invalid retry configuration has been provided
var ErrInvalidRetryConfig = errors.New("invalid retry config")

// ErrDataDecoding is the sentinel wrapped by every DataError
var ErrDataDecoding = errors.New("data decoding error")

// ErrNetworkQuery is the sentinel wrapped by every NetworkQueryError
var ErrNetworkQuery = errors.New("network query error")

// ErrTimeout signals that the bounded number of attempts has been exhausted
var ErrTimeout = errors.New("timeout")

// ErrTransactionFailed signals that the chain reported a terminal failure for a transaction
var ErrTransactionFailed = errors.New("transaction failed")

// ErrAmbiguousSend signals that a transaction send failed after the request may have reached the network
var ErrAmbiguousSend = errors.New("ambiguous transaction send")

// ErrMockDeploy is the sentinel wrapped by every MockDeployError
var ErrMockDeploy = errors.New("mock executor error")

// ErrNoMoreExpectedCalls signals that the mock script was exhausted
var ErrNoMoreExpectedCalls = errors.New("no more expected calls")

// ErrUnexpectedCall signals that a call did not match the next expected call of the mock script
var ErrUnexpectedCall = errors.New("unexpected call")

// ErrUnconsumedCalls signals that the mock script still holds expected calls
var ErrUnconsumedCalls = errors.New("unconsumed expected calls")
