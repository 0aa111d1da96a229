package process

import (
	"github.com/ledgerstats/statistics-go/data"
)

type walletsProcessor struct {
	rates       RatesHandler
	threshold   float64
	bucketWidth int64

	balances map[data.WalletID]uint64

	// accumulating is false until the first block with an exchange rate
	accumulating  bool
	currentBucket int64
	lastRate      float64

	counts map[int64]uint64
}

// NewWalletsProcessor accumulates the value received by every wallet and, at every time bucket
// boundary, counts the wallets whose balance is worth more than threshold in currency
func NewWalletsProcessor(rates RatesHandler, threshold float64, bucketWidth int64) (*walletsProcessor, error) {
	if rates == nil {
		return nil, ErrNilRatesHandler
	}
	err := checkThreshold(threshold)
	if err != nil {
		return nil, err
	}
	err = checkBucketWidth(bucketWidth)
	if err != nil {
		return nil, err
	}

	return &walletsProcessor{
		rates:       rates,
		threshold:   threshold,
		bucketWidth: bucketWidth,
		balances:    make(map[data.WalletID]uint64),
		counts:      make(map[int64]uint64),
	}, nil
}

// ProcessBlock flushes the open bucket when the block starts a new one, then adds the block
// outputs to the wallet balances. Blocks without an exchange rate are skipped
func (wp *walletsProcessor) ProcessBlock(block *data.Block) error {
	rate, ok := wp.rates.Lookup(block.Timestamp)
	if !ok {
		return nil
	}

	bucket := timeBucket(block.Timestamp, wp.bucketWidth)
	switch {
	case !wp.accumulating:
		wp.accumulating = true
		wp.currentBucket = bucket
	case bucket != wp.currentBucket:
		wp.counts[bucketStart(bucket, wp.bucketWidth)] = wp.countAbove(rate)
		wp.currentBucket = bucket
	}
	wp.lastRate = rate

	for _, tx := range block.Transactions {
		for _, out := range tx.Outputs {
			for _, addr := range out.Addresses {
				wp.balances[data.NewWalletID(addr)] += out.Value
			}
		}
	}

	return nil
}

func (wp *walletsProcessor) countAbove(rate float64) uint64 {
	minBalance := wp.threshold / rate

	count := uint64(0)
	for _, balance := range wp.balances {
		if float64(balance) > minBalance {
			count++
		}
	}

	return count
}

// Result returns the counts ordered by bucket start. The bucket still open after the last
// block is closed with the rate of the last block that had one
func (wp *walletsProcessor) Result() interface{} {
	counts := make(map[int64]uint64, len(wp.counts)+1)
	for key, count := range wp.counts {
		counts[key] = count
	}
	if wp.accumulating {
		counts[bucketStart(wp.currentBucket+1, wp.bucketWidth)] = wp.countAbove(wp.lastRate)
	}

	rows := make([]data.BucketValue, 0, len(counts))
	for _, key := range sortedKeys(counts) {
		rows = append(rows, data.BucketValue{
			Start: key,
			Value: counts[key],
		})
	}

	return rows
}
