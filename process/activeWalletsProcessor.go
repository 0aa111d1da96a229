package process

import (
	"github.com/axiomhq/hyperloglog"
	"github.com/ledgerstats/statistics-go/data"
)

type activeWalletsProcessor struct {
	bucketWidth int64
	sketches    map[int64]*hyperloglog.Sketch
}

// NewActiveWalletsProcessor estimates per time bucket the number of distinct wallets that received an output
func NewActiveWalletsProcessor(bucketWidth int64) (*activeWalletsProcessor, error) {
	err := checkBucketWidth(bucketWidth)
	if err != nil {
		return nil, err
	}

	return &activeWalletsProcessor{
		bucketWidth: bucketWidth,
		sketches:    make(map[int64]*hyperloglog.Sketch),
	}, nil
}

// ProcessBlock inserts every receiving wallet of the block in the sketch of its bucket
func (awp *activeWalletsProcessor) ProcessBlock(block *data.Block) error {
	bucket := timeBucket(block.Timestamp, awp.bucketWidth)
	for _, tx := range block.Transactions {
		for _, out := range tx.Outputs {
			for _, addr := range out.Addresses {
				awp.sketchForBucket(bucket).Insert(walletKey(addr))
			}
		}
	}

	return nil
}

func (awp *activeWalletsProcessor) sketchForBucket(bucket int64) *hyperloglog.Sketch {
	sketch, ok := awp.sketches[bucket]
	if !ok {
		sketch = hyperloglog.New14()
		awp.sketches[bucket] = sketch
	}

	return sketch
}

func walletKey(addr string) []byte {
	id := data.NewWalletID(addr)
	return id[:]
}

// Result returns the estimates ordered by bucket start
func (awp *activeWalletsProcessor) Result() interface{} {
	estimates := make(map[int64]uint64, len(awp.sketches))
	for bucket, sketch := range awp.sketches {
		estimates[bucket] = sketch.Estimate()
	}

	return bucketRows(estimates, awp.bucketWidth)
}
