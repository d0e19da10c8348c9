package gateway

import (
	"encoding/json"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
)

const (
	vmValuesQueryPath       = "/vm-values/query"
	sendTransactionPath     = "/transaction/send"
	transactionPathFormat   = "/transaction/%s"
	transactionStatusFormat = "/transaction/%s/status"
	accountNonceFormat      = "/address/%s/nonce"
	networkConfigPath       = "/network/config"
	withResultsQuery        = "?withResults=true"
)

// genericResponse is the envelope of every gateway answer
type genericResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

type vmValuesResponseData struct {
	Data *vm.VMOutputApi `json:"data"`
}

type sendTransactionResponseData struct {
	TxHash string `json:"txHash"`
}

type transactionStatusResponseData struct {
	Status transaction.TxStatus `json:"status"`
}

type transactionResponseData struct {
	Transaction *transaction.ApiTransactionResult `json:"transaction"`
}

type accountNonceResponseData struct {
	Nonce uint64 `json:"nonce"`
}

type networkConfigResponseData struct {
	Config map[string]interface{} `json:"config"`
}
