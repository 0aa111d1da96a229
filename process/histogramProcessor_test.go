package process

import (
	"math/rand"
	"testing"

	"github.com/ledgerstats/statistics-go/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistogramProcessor_InvalidBinWidth(t *testing.T) {
	t.Parallel()

	for _, width := range []float64{0, -1} {
		hp, err := NewHistogramProcessor(width)
		assert.Nil(t, hp)
		assert.ErrorIs(t, err, ErrInvalidBinWidth)
	}

	hp, err := NewConvertedHistogramProcessor(nil, 0.1)
	assert.Nil(t, hp)
	assert.ErrorIs(t, err, ErrNilRatesHandler)
}

func TestHistogramProcessor_OneTransactionPerDecade(t *testing.T) {
	t.Parallel()

	hp, err := NewHistogramProcessor(1.0)
	require.Nil(t, err)

	err = processAll(hp,
		newBlock(0, 10, newTx(5), newTx(20, 30)),
		newBlock(1, 20, newTx(500), newTx(4000, 1000)),
	)
	require.Nil(t, err)

	rows := hp.Result().([]data.BinCount)
	require.Len(t, rows, 4)
	expectedEdges := []float64{1, 10, 100, 1000}
	for idx, row := range rows {
		assert.InDelta(t, expectedEdges[idx], row.Edge, 1e-9)
		assert.Equal(t, uint64(1), row.Count)
	}
}

func TestHistogramProcessor_ZeroValueTransactionsAreExcluded(t *testing.T) {
	t.Parallel()

	hp, _ := NewHistogramProcessor(1.0)
	err := processAll(hp,
		newBlock(0, 10, newTx(0), newTx(), newTx(0, 0), newTx(7)),
	)
	require.Nil(t, err)

	rows := hp.Result().([]data.BinCount)
	require.Len(t, rows, 1)
	assert.Equal(t, 1.0, rows[0].Edge)
	assert.Equal(t, uint64(1), rows[0].Count)
}

func TestHistogramProcessor_CountsSumToPositiveTransactions(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(42))
	for _, width := range []float64{0.001, 0.1, 0.5, 1, 3} {
		hp, err := NewHistogramProcessor(width)
		require.Nil(t, err)

		positive := uint64(0)
		for height := uint64(0); height < 50; height++ {
			txs := make([]*data.Transaction, 0)
			for i := 0; i < 20; i++ {
				value := uint64(0)
				if rnd.Intn(5) > 0 {
					value = uint64(rnd.Int63n(1 << 50))
				}
				if value > 0 {
					positive++
				}
				txs = append(txs, newTx(value))
			}
			require.Nil(t, hp.ProcessBlock(newBlock(height, int64(height), txs...)))
		}

		sum := uint64(0)
		rows := hp.Result().([]data.BinCount)
		for idx, row := range rows {
			sum += row.Count
			if idx > 0 {
				assert.Less(t, rows[idx-1].Edge, row.Edge)
			}
		}
		assert.Equal(t, positive, sum, "bin width %v", width)
	}
}

func TestHistogramProcessor_ConvertedSkipsBlocksWithoutRate(t *testing.T) {
	t.Parallel()

	rates := dailyRates{0: 2, 2: 0.5}
	hp, err := NewConvertedHistogramProcessor(rates, 1.0)
	require.Nil(t, err)

	err = processAll(hp,
		newBlock(0, 100, newTx(6)),
		newBlock(1, 86400+100, newTx(6), newTx(5000)),
		newBlock(2, 2*86400+100, newTx(5000)),
	)
	require.Nil(t, err)

	rows := hp.Result().([]data.BinCount)
	require.Len(t, rows, 2)
	assert.InDelta(t, 10.0, rows[0].Edge, 1e-9)
	assert.Equal(t, uint64(1), rows[0].Count)
	assert.InDelta(t, 1000.0, rows[1].Edge, 1e-9)
	assert.Equal(t, uint64(1), rows[1].Count)
}

func TestHistogramProcessor_ResultIsDeterministic(t *testing.T) {
	t.Parallel()

	blocks := []*data.Block{
		newBlock(0, 1, newTx(3), newTx(70), newTx(900), newTx(12345)),
		newBlock(1, 2, newTx(3), newTx(4), newTx(123456789)),
	}

	first, _ := NewHistogramProcessor(0.1)
	second, _ := NewHistogramProcessor(0.1)
	require.Nil(t, processAll(first, blocks...))
	require.Nil(t, processAll(second, blocks...))

	assert.Equal(t, first.Result(), second.Result())
}
