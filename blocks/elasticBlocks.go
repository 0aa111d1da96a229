package blocks

import (
	"encoding/json"
	"fmt"

	"github.com/ledgerstats/statistics-go/data"
	"github.com/ledgerstats/statistics-go/process"
)

type elasticBlocks struct {
	elasticHandler process.ElasticHandler
	index          string
}

// NewElasticBlocks creates a block source over the block documents of an elastic index
func NewElasticBlocks(elasticHandler process.ElasticHandler, index string) (*elasticBlocks, error) {
	if elasticHandler == nil {
		return nil, ErrNilElasticHandler
	}
	if index == "" {
		return nil, ErrEmptyIndex
	}

	return &elasticBlocks{
		elasticHandler: elasticHandler,
		index:          index,
	}, nil
}

// Count returns the number of block documents of the index
func (eb *elasticBlocks) Count() (uint64, error) {
	query, err := getAllBlocks()
	if err != nil {
		return 0, err
	}

	return eb.elasticHandler.DoCountRequest(query, eb.index)
}

// IterateBlocks calls handler for every block with the height in [start, end), in ascending height order
func (eb *elasticBlocks) IterateBlocks(start, end uint64, handler func(block *data.Block) error) error {
	if start >= end {
		return nil
	}

	query, err := getBlocksByHeight(start, end)
	if err != nil {
		return err
	}

	checker := &orderChecker{}
	return eb.elasticHandler.DoScrollRequestAllDocuments(query, eb.index, func(responseBytes []byte) error {
		response := &data.ScrollBlocksResponse{}
		errUnmarshal := json.Unmarshal(responseBytes, response)
		if errUnmarshal != nil {
			return errUnmarshal
		}

		for _, hit := range response.Hits.Hits {
			block, errDecode := DecodeBlock(hit.Block)
			if errDecode != nil {
				return fmt.Errorf("document %s: %w", hit.ID, errDecode)
			}

			errOrder := checker.check(block)
			if errOrder != nil {
				return errOrder
			}

			errHandler := handler(block)
			if errHandler != nil {
				return errHandler
			}
		}

		return nil
	})
}

// orderChecker rejects a block whose height is lower than the height of the previous one
type orderChecker struct {
	started    bool
	lastHeight uint64
}

func (oc *orderChecker) check(block *data.Block) error {
	if oc.started && block.Height < oc.lastHeight {
		return fmt.Errorf("%w: height %d after %d", ErrOutOfOrderBlock, block.Height, oc.lastHeight)
	}

	oc.started = true
	oc.lastHeight = block.Height

	return nil
}
