package process

import (
	"bytes"

	"github.com/ledgerstats/statistics-go/data"
)

// ElasticHandler defines what an elastic client should be able to do
type ElasticHandler interface {
	DoScrollRequestAllDocuments(query *bytes.Buffer, index string, handlerFunc func(responseBytes []byte) error) error
	DoCountRequest(query *bytes.Buffer, index string) (uint64, error)
}

// BlockSource supplies the ledger blocks in ascending height order. Every call to
// IterateBlocks replays the blocks in [start, end) from the beginning
type BlockSource interface {
	Count() (uint64, error)
	IterateBlocks(start, end uint64, handler func(block *data.Block) error) error
}

// RatesHandler maps a block timestamp to the exchange rate of its UTC calendar date
type RatesHandler interface {
	Lookup(timestamp int64) (float64, bool)
}

// BlockProcessor folds blocks into a statistic, one block at a time
type BlockProcessor interface {
	ProcessBlock(block *data.Block) error
	Result() interface{}
}
