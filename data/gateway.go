package data

// VmValueRequest is the body of a gateway smart contract query
type VmValueRequest struct {
	Address    string   `json:"scAddress"`
	FuncName   string   `json:"funcName"`
	CallerAddr string   `json:"caller,omitempty"`
	CallValue  string   `json:"value,omitempty"`
	Args       []string `json:"args"`
}

// NetworkConfig holds the network parameters needed to build transactions
type NetworkConfig struct {
	ChainID               string `json:"erd_chain_id" mapstructure:"erd_chain_id"`
	MinGasPrice           uint64 `json:"erd_min_gas_price" mapstructure:"erd_min_gas_price"`
	MinGasLimit           uint64 `json:"erd_min_gas_limit" mapstructure:"erd_min_gas_limit"`
	MinTransactionVersion uint32 `json:"erd_min_transaction_version" mapstructure:"erd_min_transaction_version"`
	GasPerDataByte        uint64 `json:"erd_gas_per_data_byte" mapstructure:"erd_gas_per_data_byte"`
	NumShards             uint32 `json:"erd_num_shards_without_meta" mapstructure:"erd_num_shards_without_meta"`
	RoundDuration         int64  `json:"erd_round_duration" mapstructure:"erd_round_duration"`
}

// SignedTransaction is the body of a gateway transaction send request
type SignedTransaction struct {
	Nonce     uint64 `json:"nonce"`
	Value     string `json:"value"`
	Receiver  string `json:"receiver"`
	Sender    string `json:"sender"`
	GasPrice  uint64 `json:"gasPrice"`
	GasLimit  uint64 `json:"gasLimit"`
	Data      []byte `json:"data,omitempty"`
	Signature string `json:"signature,omitempty"`
	ChainID   string `json:"chainID"`
	Version   uint32 `json:"version"`
	Options   uint32 `json:"options,omitempty"`
}
