package blocks

import (
	"fmt"

	"github.com/ledgerstats/statistics-go/data"
	"github.com/tidwall/gjson"
)

// DecodeBlock builds a block from its JSON document. Numbers may also be encoded as strings,
// which is how large values survive an indexer that stores them as keywords
func DecodeBlock(document []byte) (*data.Block, error) {
	if !gjson.ValidBytes(document) {
		return nil, fmt.Errorf("%w: invalid json", ErrInvalidBlockDocument)
	}

	doc := gjson.ParseBytes(document)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: not an object", ErrInvalidBlockDocument)
	}

	height := doc.Get("height")
	timestamp := doc.Get("timestamp")
	if !height.Exists() || !timestamp.Exists() {
		return nil, fmt.Errorf("%w: missing height or timestamp", ErrInvalidBlockDocument)
	}

	block := &data.Block{
		Height:       height.Uint(),
		Timestamp:    timestamp.Int(),
		Transactions: make([]*data.Transaction, 0),
	}
	doc.Get("transactions").ForEach(func(_, txResult gjson.Result) bool {
		block.Transactions = append(block.Transactions, decodeTransaction(txResult))
		return true
	})

	return block, nil
}

func decodeTransaction(txResult gjson.Result) *data.Transaction {
	tx := &data.Transaction{
		Hash:    txResult.Get("hash").String(),
		Outputs: make([]*data.Output, 0),
	}
	txResult.Get("outputs").ForEach(func(_, outResult gjson.Result) bool {
		out := &data.Output{
			Value:     outResult.Get("value").Uint(),
			Addresses: make([]string, 0),
		}
		outResult.Get("addresses").ForEach(func(_, addr gjson.Result) bool {
			out.Addresses = append(out.Addresses, addr.String())
			return true
		})

		tx.Outputs = append(tx.Outputs, out)
		return true
	})

	return tx
}
