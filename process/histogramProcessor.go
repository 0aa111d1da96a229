package process

import (
	"math"

	"github.com/ledgerstats/statistics-go/data"
)

type histogramProcessor struct {
	binWidth float64
	rates    RatesHandler
	bins     map[int64]uint64
}

// NewHistogramProcessor bins the total output value of every transaction on a log10 scale
func NewHistogramProcessor(binWidth float64) (*histogramProcessor, error) {
	if !(binWidth > 0) || math.IsInf(binWidth, 1) {
		return nil, ErrInvalidBinWidth
	}

	return &histogramProcessor{
		binWidth: binWidth,
		bins:     make(map[int64]uint64),
	}, nil
}

// NewConvertedHistogramProcessor bins the currency value of every transaction on a log10 scale.
// Transactions of blocks without an exchange rate are not counted
func NewConvertedHistogramProcessor(rates RatesHandler, binWidth float64) (*histogramProcessor, error) {
	if rates == nil {
		return nil, ErrNilRatesHandler
	}

	hp, err := NewHistogramProcessor(binWidth)
	if err != nil {
		return nil, err
	}
	hp.rates = rates

	return hp, nil
}

// ProcessBlock counts every transaction of the block in its bin
func (hp *histogramProcessor) ProcessBlock(block *data.Block) error {
	rate := 1.0
	if hp.rates != nil {
		var ok bool
		rate, ok = hp.rates.Lookup(block.Timestamp)
		if !ok {
			return nil
		}
	}

	for _, tx := range block.Transactions {
		bin, ok := logBin(float64(tx.TotalValue())*rate, hp.binWidth)
		if !ok {
			continue
		}

		hp.bins[bin]++
	}

	return nil
}

// Result returns the histogram rows ordered by bin
func (hp *histogramProcessor) Result() interface{} {
	rows := make([]data.BinCount, 0, len(hp.bins))
	for _, bin := range sortedKeys(hp.bins) {
		rows = append(rows, data.BinCount{
			Edge:  logBinEdge(bin, hp.binWidth),
			Count: hp.bins[bin],
		})
	}

	return rows
}
