package network

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-executor-go/data"
	executorErrors "github.com/multiversx/mx-chain-executor-go/errors"
)

const (
	dataSeparator      = "@"
	scDeployIdentifier = "SCDeploy"
)

var okReturnCodeMarker = dataSeparator + hex.EncodeToString([]byte(data.VMReturnCodeOk))

// NewOutcomeFromTransactionResult builds the raw outcome of a processed transaction from the
// gateway result. Returned data is read from the smart contract result carrying the ok
// return code, or from the writeLog event when no such result exists.
func NewOutcomeFromTransactionResult(hash string, result *transaction.ApiTransactionResult) (*data.TransactionOutcome, error) {
	if result == nil {
		return nil, ErrNilTransactionResult
	}
	if len(result.Hash) > 0 {
		hash = result.Hash
	}

	returnData, err := extractReturnData(result)
	if err != nil {
		return nil, fmt.Errorf("%w for transaction %s: %v", ErrInvalidOutcomeData, hash, err)
	}

	return &data.TransactionOutcome{
		Hash:          hash,
		Status:        result.Status,
		ReturnData:    returnData,
		ReturnMessage: extractReturnMessage(result),
		Logs:          result.Logs,
		Raw:           result,
	}, nil
}

func extractReturnData(result *transaction.ApiTransactionResult) ([][]byte, error) {
	for _, scr := range result.SmartContractResults {
		if scr == nil || !strings.HasPrefix(scr.Data, okReturnCodeMarker) {
			continue
		}

		return parseResultData(scr.Data)
	}

	event := findEvent(result.Logs, core.WriteLogIdentifier)
	if event != nil && strings.HasPrefix(string(event.Data), okReturnCodeMarker) {
		return parseResultData(string(event.Data))
	}

	return make([][]byte, 0), nil
}

// parseResultData parses "@6f6b@aa@bb" into the segments following the return code
func parseResultData(resultData string) ([][]byte, error) {
	parts := strings.Split(strings.TrimPrefix(resultData, okReturnCodeMarker), dataSeparator)
	returnData := make([][]byte, 0, len(parts))
	for index, part := range parts {
		if index == 0 {
			// the segment before the first separator is always empty
			continue
		}

		decoded, err := hex.DecodeString(part)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", index-1, err)
		}
		returnData = append(returnData, decoded)
	}

	return returnData, nil
}

func extractReturnMessage(result *transaction.ApiTransactionResult) string {
	event := findEvent(result.Logs, core.SignalErrorOperation)
	if event != nil {
		if len(event.Topics) > 1 && len(event.Topics[1]) > 0 {
			return string(event.Topics[1])
		}
		if len(event.Data) > 0 {
			return string(event.Data)
		}
	}

	for _, scr := range result.SmartContractResults {
		if scr != nil && len(scr.ReturnMessage) > 0 {
			return scr.ReturnMessage
		}
	}

	return ""
}

func findEvent(logs *transaction.ApiLogs, identifier string) *transaction.Events {
	if logs == nil {
		return nil
	}

	for _, event := range logs.Events {
		if event != nil && event.Identifier == identifier {
			return event
		}
	}

	return nil
}

// ExtractDeployedAddress returns the address of the contract created by a deploy transaction
func ExtractDeployedAddress(converter core.PubkeyConverter, outcome *data.TransactionOutcome) ([]byte, error) {
	if check.IfNil(converter) {
		return nil, executorErrors.ErrNilPubkeyConverter
	}
	if outcome == nil {
		return nil, executorErrors.ErrNilOutcome
	}

	event := findEvent(outcome.Logs, scDeployIdentifier)
	if event == nil {
		return nil, ErrMissingDeployEvent
	}

	address, err := converter.Decode(event.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", executorErrors.ErrInvalidAddress, err)
	}

	return address, nil
}
