package process

import (
	"errors"
	"testing"

	"github.com/ledgerstats/statistics-go/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockProcessorStub struct {
	ProcessBlockCalled func(block *data.Block) error
	ResultCalled       func() interface{}
}

func (bps *blockProcessorStub) ProcessBlock(block *data.Block) error {
	if bps.ProcessBlockCalled != nil {
		return bps.ProcessBlockCalled(block)
	}
	return nil
}

func (bps *blockProcessorStub) Result() interface{} {
	if bps.ResultCalled != nil {
		return bps.ResultCalled()
	}
	return nil
}

func TestNewBlocksDriver_NilBlockSource(t *testing.T) {
	t.Parallel()

	bd, err := NewBlocksDriver(nil, 10)
	assert.Nil(t, bd)
	assert.Equal(t, ErrNilBlockSource, err)
}

func TestBlocksDriver_RunFeedsEveryBlockInOrder(t *testing.T) {
	t.Parallel()

	source := &sliceBlockSource{
		blocks: []*data.Block{newBlock(0, 1), newBlock(1, 2), newBlock(2, 3)},
	}
	bd, err := NewBlocksDriver(source, 2)
	require.Nil(t, err)

	heights := make([]uint64, 0)
	processor := &blockProcessorStub{
		ProcessBlockCalled: func(block *data.Block) error {
			heights = append(heights, block.Height)
			return nil
		},
		ResultCalled: func() interface{} {
			return "done"
		},
	}

	result, err := bd.Run("test", processor)
	require.Nil(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, []uint64{0, 1, 2}, heights)
}

func TestBlocksDriver_RunStopsAtFirstError(t *testing.T) {
	t.Parallel()

	source := &sliceBlockSource{
		blocks: []*data.Block{newBlock(0, 1, newPayment(5, "A")), newBlock(1, 2, &data.Transaction{}), newBlock(2, 3)},
	}
	bd, _ := NewBlocksDriver(source, 0)

	mp, _ := NewMinersProcessor(1, 1)
	result, err := bd.Run("miners", mp)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrMalformedBlock)
	assert.Contains(t, err.Error(), "miners")
}

func TestBlocksDriver_RunCountError(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("count failed")
	bd, _ := NewBlocksDriver(&sliceBlockSource{countErr: expectedErr}, 0)

	result, err := bd.Run("test", &blockProcessorStub{})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, expectedErr)

	result, err = bd.Run("test", nil)
	assert.Nil(t, result)
	assert.Equal(t, ErrNilBlockProcessor, err)
}

func TestBlocksDriver_RunTwiceGivesTheSameResult(t *testing.T) {
	t.Parallel()

	source := &sliceBlockSource{
		blocks: []*data.Block{
			newBlock(0, 100, newPayment(10, "A")),
			newBlock(1, 200, newPayment(20, "B")),
			newBlock(2, 205, newPayment(5, "A")),
		},
	}
	bd, _ := NewBlocksDriver(source, 0)

	first, _ := NewVolumeProcessor(100)
	second, _ := NewVolumeProcessor(100)
	firstResult, err := bd.Run("volume", first)
	require.Nil(t, err)
	secondResult, err := bd.Run("volume", second)
	require.Nil(t, err)

	assert.Equal(t, firstResult, secondResult)
	assert.Equal(t, []data.BucketValue{{Start: 100, Value: 10}, {Start: 200, Value: 25}}, firstResult)
}
