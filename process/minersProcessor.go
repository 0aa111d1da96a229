package process

import (
	"fmt"

	"github.com/ledgerstats/statistics-go/data"
)

// minersWindow is a FIFO of the most recent miner wallets, bounded to its capacity
type minersWindow struct {
	wallets []data.WalletID
	start   int
	size    int
}

func newMinersWindow(capacity int) *minersWindow {
	return &minersWindow{
		wallets: make([]data.WalletID, capacity),
	}
}

// push appends the wallet and evicts the oldest one when the window is full
func (mw *minersWindow) push(wallet data.WalletID) {
	capacity := len(mw.wallets)
	if mw.size < capacity {
		mw.wallets[(mw.start+mw.size)%capacity] = wallet
		mw.size++
		return
	}

	mw.wallets[mw.start] = wallet
	mw.start = (mw.start + 1) % capacity
}

func (mw *minersWindow) distinct() int {
	set := make(map[data.WalletID]struct{}, mw.size)
	for idx := 0; idx < mw.size; idx++ {
		set[mw.wallets[(mw.start+idx)%len(mw.wallets)]] = struct{}{}
	}

	return len(set)
}

type minersProcessor struct {
	windowSize int
	stride     uint64
	window     *minersWindow
	blocksSeen uint64
	samples    []data.MinersSample
}

// NewMinersProcessor tracks the wallets that received the largest reward output of the last
// windowSize blocks and samples their distinct count every stride blocks
func NewMinersProcessor(windowSize int, stride uint64) (*minersProcessor, error) {
	if windowSize <= 0 {
		return nil, ErrInvalidWindowSize
	}
	if stride == 0 {
		return nil, ErrInvalidStride
	}

	return &minersProcessor{
		windowSize: windowSize,
		stride:     stride,
		window:     newMinersWindow(windowSize),
		samples:    make([]data.MinersSample, 0),
	}, nil
}

// ProcessBlock samples the window, if due, and pushes the miner wallets of the block
func (mp *minersProcessor) ProcessBlock(block *data.Block) error {
	idx := mp.blocksSeen
	if idx >= uint64(mp.windowSize) && idx%mp.stride == 0 {
		mp.samples = append(mp.samples, data.MinersSample{
			Timestamp:  block.Timestamp,
			BlocksSeen: idx,
			Distinct:   uint64(mp.window.distinct()),
		})
	}

	rewardOutput, err := getRewardOutput(block)
	if err != nil {
		return err
	}
	for _, addr := range rewardOutput.Addresses {
		mp.window.push(data.NewWalletID(addr))
	}

	mp.blocksSeen++

	return nil
}

// getRewardOutput returns the output with the largest value of the first transaction of the block
func getRewardOutput(block *data.Block) (*data.Output, error) {
	if len(block.Transactions) == 0 || block.Transactions[0] == nil {
		return nil, fmt.Errorf("%w: block %d has no reward transaction", ErrMalformedBlock, block.Height)
	}

	var rewardOutput *data.Output
	for _, out := range block.Transactions[0].Outputs {
		if out == nil {
			continue
		}
		if rewardOutput == nil || out.Value >= rewardOutput.Value {
			rewardOutput = out
		}
	}
	if rewardOutput == nil {
		return nil, fmt.Errorf("%w: reward transaction of block %d has no outputs", ErrMalformedBlock, block.Height)
	}

	return rewardOutput, nil
}

// Result returns the samples in scan order
func (mp *minersProcessor) Result() interface{} {
	samples := make([]data.MinersSample, len(mp.samples))
	copy(samples, mp.samples)

	return samples
}
