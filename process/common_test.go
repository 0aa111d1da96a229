package process

import (
	"fmt"

	"github.com/ledgerstats/statistics-go/data"
)

type sliceBlockSource struct {
	blocks   []*data.Block
	countErr error
}

func (sbs *sliceBlockSource) Count() (uint64, error) {
	return uint64(len(sbs.blocks)), sbs.countErr
}

func (sbs *sliceBlockSource) IterateBlocks(start, end uint64, handler func(block *data.Block) error) error {
	for idx := start; idx < end && idx < uint64(len(sbs.blocks)); idx++ {
		err := handler(sbs.blocks[idx])
		if err != nil {
			return err
		}
	}

	return nil
}

// dailyRates maps a day index (timestamp / 86400) to a rate
type dailyRates map[int64]float64

func (dr dailyRates) Lookup(timestamp int64) (float64, bool) {
	rate, ok := dr[timestamp/86400]
	return rate, ok
}

func newTx(values ...uint64) *data.Transaction {
	tx := &data.Transaction{}
	for idx, value := range values {
		tx.Outputs = append(tx.Outputs, &data.Output{
			Value:     value,
			Addresses: []string{fmt.Sprintf("addr-%d", idx)},
		})
	}

	return tx
}

func newPayment(value uint64, addresses ...string) *data.Transaction {
	return &data.Transaction{
		Outputs: []*data.Output{
			{Value: value, Addresses: addresses},
		},
	}
}

func newBlock(height uint64, timestamp int64, txs ...*data.Transaction) *data.Block {
	return &data.Block{
		Height:       height,
		Timestamp:    timestamp,
		Transactions: txs,
	}
}

func processAll(processor BlockProcessor, blocks ...*data.Block) error {
	for _, block := range blocks {
		err := processor.ProcessBlock(block)
		if err != nil {
			return err
		}
	}

	return nil
}
