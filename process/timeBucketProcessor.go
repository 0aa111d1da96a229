package process

import (
	"github.com/ledgerstats/statistics-go/data"
)

// txAmountFunc returns what a transaction adds to its time bucket, if anything
type txAmountFunc func(tx *data.Transaction, rate float64) (uint64, bool)

type timeBucketProcessor struct {
	bucketWidth int64
	rates       RatesHandler
	amount      txAmountFunc
	buckets     map[int64]uint64
}

// NewVolumeProcessor sums the total output value of the transactions per time bucket
func NewVolumeProcessor(bucketWidth int64) (*timeBucketProcessor, error) {
	err := checkBucketWidth(bucketWidth)
	if err != nil {
		return nil, err
	}

	return &timeBucketProcessor{
		bucketWidth: bucketWidth,
		amount: func(tx *data.Transaction, _ float64) (uint64, bool) {
			return tx.TotalValue(), true
		},
		buckets: make(map[int64]uint64),
	}, nil
}

// NewLargeTransactionsProcessor counts per time bucket the transactions whose currency value
// is above threshold. Blocks without an exchange rate are skipped
func NewLargeTransactionsProcessor(rates RatesHandler, threshold float64, bucketWidth int64) (*timeBucketProcessor, error) {
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

	return &timeBucketProcessor{
		bucketWidth: bucketWidth,
		rates:       rates,
		amount: func(tx *data.Transaction, rate float64) (uint64, bool) {
			if float64(tx.TotalValue())*rate > threshold {
				return 1, true
			}
			return 0, false
		},
		buckets: make(map[int64]uint64),
	}, nil
}

// ProcessBlock adds the transactions of the block to the bucket of its timestamp
func (tbp *timeBucketProcessor) ProcessBlock(block *data.Block) error {
	rate := 1.0
	if tbp.rates != nil {
		var ok bool
		rate, ok = tbp.rates.Lookup(block.Timestamp)
		if !ok {
			return nil
		}
	}

	bucket := timeBucket(block.Timestamp, tbp.bucketWidth)
	for _, tx := range block.Transactions {
		amount, ok := tbp.amount(tx, rate)
		if !ok {
			continue
		}

		tbp.buckets[bucket] += amount
	}

	return nil
}

// Result returns the time series rows ordered by bucket start
func (tbp *timeBucketProcessor) Result() interface{} {
	return bucketRows(tbp.buckets, tbp.bucketWidth)
}

func bucketRows(buckets map[int64]uint64, bucketWidth int64) []data.BucketValue {
	rows := make([]data.BucketValue, 0, len(buckets))
	for _, bucket := range sortedKeys(buckets) {
		rows = append(rows, data.BucketValue{
			Start: bucketStart(bucket, bucketWidth),
			Value: buckets[bucket],
		})
	}

	return rows
}
