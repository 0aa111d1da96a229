package process

import (
	"fmt"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ledgerstats/statistics-go/data"
)

const defaultProgressEvery = 10000

var log = logger.GetOrCreate("process")

type blocksDriver struct {
	blockSource   BlockSource
	progressEvery uint64
}

// NewBlocksDriver creates a driver that feeds all the blocks of blockSource to a block processor,
// logging the progress every progressEvery blocks
func NewBlocksDriver(blockSource BlockSource, progressEvery uint64) (*blocksDriver, error) {
	if blockSource == nil {
		return nil, ErrNilBlockSource
	}
	if progressEvery == 0 {
		progressEvery = defaultProgressEvery
	}

	return &blocksDriver{
		blockSource:   blockSource,
		progressEvery: progressEvery,
	}, nil
}

// Run makes one forward pass over all the blocks and returns the processor result. Nothing is
// returned when a block fails to be processed
func (bd *blocksDriver) Run(name string, processor BlockProcessor) (interface{}, error) {
	if processor == nil {
		return nil, ErrNilBlockProcessor
	}

	numBlocks, err := bd.blockSource.Count()
	if err != nil {
		return nil, fmt.Errorf("%s: cannot count blocks: %w", name, err)
	}

	start := time.Now()
	processed := uint64(0)
	err = bd.blockSource.IterateBlocks(0, numBlocks, func(block *data.Block) error {
		errProcess := processor.ProcessBlock(block)
		if errProcess != nil {
			return errProcess
		}

		processed++
		if processed%bd.progressEvery == 0 {
			logProgress(name, processed, numBlocks)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	logProgress(name, processed, numBlocks)
	log.Info("completed", "statistic", name, "blocks", processed, "duration", time.Since(start))

	return processor.Result(), nil
}

func logProgress(name string, processed uint64, total uint64) {
	percent := 100.0
	if total > 0 {
		percent = float64(processed) * 100 / float64(total)
	}

	log.Info("progress",
		"statistic", name,
		"blocks", processed,
		"total", total,
		"percent", fmt.Sprintf("%.2f", percent),
	)
}
