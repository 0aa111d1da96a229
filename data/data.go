package data

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Block is one unit of the ledger stream
type Block struct {
	Height       uint64         `json:"height"`
	Timestamp    int64          `json:"timestamp"`
	Transactions []*Transaction `json:"transactions"`
}

// Transaction holds the outputs of a ledger transaction
type Transaction struct {
	Hash    string    `json:"hash"`
	Outputs []*Output `json:"outputs"`
}

// Output is a transfer of Value (smallest currency unit) to zero or more addresses
type Output struct {
	Value     uint64   `json:"value"`
	Addresses []string `json:"addresses"`
}

// TotalValue returns the sum of all output values of the transaction
func (tx *Transaction) TotalValue() uint64 {
	total := uint64(0)
	for _, out := range tx.Outputs {
		total += out.Value
	}

	return total
}

// WalletID is the canonical identity of a ledger address
type WalletID [sha256.Size]byte

// NewWalletID derives the wallet identity from an address string
func NewWalletID(address string) WalletID {
	return sha256.Sum256([]byte(address))
}

// String returns the hex encoding of the wallet identity
func (id WalletID) String() string {
	return hex.EncodeToString(id[:])
}

// BinCount is one row of a logarithmic histogram
type BinCount struct {
	Edge  float64
	Count uint64
}

// MarshalJSON encodes the row as a [edge, count] pair
func (bc BinCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{bc.Edge, bc.Count})
}

// BucketValue is one row of a time series
type BucketValue struct {
	Start int64
	Value uint64
}

// MarshalJSON encodes the row as a [start, value] pair
func (bv BucketValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{bv.Start, bv.Value})
}

// MinersSample is one sample of the distinct miners count
type MinersSample struct {
	Timestamp  int64
	BlocksSeen uint64
	Distinct   uint64
}

// MarshalJSON encodes the row as a [timestamp, blocksSeen, distinct] triple
func (ms MinersSample) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{ms.Timestamp, ms.BlocksSeen, ms.Distinct})
}

// ScrollBlocksResponse is a page of a scroll request over the blocks index
type ScrollBlocksResponse struct {
	ScrollID string `json:"_scroll_id"`
	Hits     struct {
		Hits []struct {
			ID    string          `json:"_id"`
			Block json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

