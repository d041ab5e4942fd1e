package solana

import (
	"encoding/json"
	"fmt"
)

// transactionResult mirrors the getTransaction response for the "json" and
// "jsonParsed" encodings, legacy and v0 transactions alike.
type transactionResult struct {
	Slot        uint64              `json:"slot"`
	BlockTime   *int64              `json:"blockTime"`
	Version     json.RawMessage     `json:"version,omitempty"`
	Meta        *transactionMeta    `json:"meta"`
	Transaction transactionEnvelope `json:"transaction"`
}

type transactionMeta struct {
	Err             json.RawMessage  `json:"err"`
	Fee             uint64           `json:"fee"`
	PreBalances     []uint64         `json:"preBalances"`
	PostBalances    []uint64         `json:"postBalances"`
	LoadedAddresses *loadedAddresses `json:"loadedAddresses,omitempty"`
}

type loadedAddresses struct {
	Writable []string `json:"writable"`
	Readonly []string `json:"readonly"`
}

type transactionEnvelope struct {
	Signatures []string           `json:"signatures"`
	Message    transactionMessage `json:"message"`
}

type transactionMessage struct {
	AccountKeys []accountKey `json:"accountKeys"`
}

// accountKey is a plain base58 string in "json" encoding and an object with
// a pubkey field in "jsonParsed" encoding.
type accountKey string

func (k *accountKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = accountKey(s)
		return nil
	}

	var parsed struct {
		Pubkey string `json:"pubkey"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("unsupported account key %s: %w", string(data), err)
	}
	*k = accountKey(parsed.Pubkey)
	return nil
}

// failed reports whether the transaction errored on chain.
func (m *transactionMeta) failed() bool {
	return len(m.Err) > 0 && string(m.Err) != "null"
}

// accounts returns static keys followed by lookup-table writable then readonly keys,
// which is the order balances are reported in.
func (r *transactionResult) accounts() []string {
	keys := make([]string, 0, len(r.Transaction.Message.AccountKeys))
	for _, k := range r.Transaction.Message.AccountKeys {
		keys = append(keys, string(k))
	}
	if r.Meta != nil && r.Meta.LoadedAddresses != nil {
		keys = append(keys, r.Meta.LoadedAddresses.Writable...)
		keys = append(keys, r.Meta.LoadedAddresses.Readonly...)
	}
	return keys
}
