package blocks

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ledgerstats/statistics-go/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type elasticHandlerStub struct {
	DoScrollRequestAllDocumentsCalled func(query *bytes.Buffer, index string, handlerFunc func(responseBytes []byte) error) error
	DoCountRequestCalled              func(query *bytes.Buffer, index string) (uint64, error)
}

func (ehs *elasticHandlerStub) DoScrollRequestAllDocuments(query *bytes.Buffer, index string, handlerFunc func(responseBytes []byte) error) error {
	if ehs.DoScrollRequestAllDocumentsCalled != nil {
		return ehs.DoScrollRequestAllDocumentsCalled(query, index, handlerFunc)
	}
	return nil
}

func (ehs *elasticHandlerStub) DoCountRequest(query *bytes.Buffer, index string) (uint64, error) {
	if ehs.DoCountRequestCalled != nil {
		return ehs.DoCountRequestCalled(query, index)
	}
	return 0, nil
}

const (
	firstPage = `{"_scroll_id":"s1","hits":{"hits":[
		{"_id":"0","_source":{"height":0,"timestamp":100,"transactions":[{"outputs":[{"value":10,"addresses":["A"]}]}]}},
		{"_id":"1","_source":{"height":1,"timestamp":200,"transactions":[]}}
	]}}`
	secondPage = `{"_scroll_id":"s1","hits":{"hits":[
		{"_id":"2","_source":{"height":2,"timestamp":205}}
	]}}`
)

func TestNewElasticBlocks(t *testing.T) {
	t.Parallel()

	eb, err := NewElasticBlocks(nil, "blocks")
	assert.Nil(t, eb)
	assert.Equal(t, ErrNilElasticHandler, err)

	eb, err = NewElasticBlocks(&elasticHandlerStub{}, "")
	assert.Nil(t, eb)
	assert.Equal(t, ErrEmptyIndex, err)
}

func TestElasticBlocks_Count(t *testing.T) {
	t.Parallel()

	eb, _ := NewElasticBlocks(&elasticHandlerStub{
		DoCountRequestCalled: func(query *bytes.Buffer, index string) (uint64, error) {
			assert.Equal(t, "blocks", index)
			assert.True(t, gjson.Get(query.String(), "query.match_all").Exists())
			return 42, nil
		},
	}, "blocks")

	count, err := eb.Count()
	require.Nil(t, err)
	assert.Equal(t, uint64(42), count)
}

func TestElasticBlocks_IterateBlocks(t *testing.T) {
	t.Parallel()

	eb, _ := NewElasticBlocks(&elasticHandlerStub{
		DoScrollRequestAllDocumentsCalled: func(query *bytes.Buffer, index string, handlerFunc func(responseBytes []byte) error) error {
			body := query.String()
			assert.Equal(t, uint64(0), gjson.Get(body, "query.range.height.gte").Uint())
			assert.Equal(t, uint64(3), gjson.Get(body, "query.range.height.lt").Uint())
			assert.Equal(t, "asc", gjson.Get(body, "sort.0.height.order").String())

			err := handlerFunc([]byte(firstPage))
			if err != nil {
				return err
			}
			return handlerFunc([]byte(secondPage))
		},
	}, "blocks")

	blocks := make([]*data.Block, 0)
	err := eb.IterateBlocks(0, 3, func(block *data.Block) error {
		blocks = append(blocks, block)
		return nil
	})
	require.Nil(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, int64(205), blocks[2].Timestamp)
	assert.Equal(t, uint64(10), blocks[0].Transactions[0].TotalValue())
}

func TestElasticBlocks_IterateBlocksErrors(t *testing.T) {
	t.Parallel()

	eb, _ := NewElasticBlocks(&elasticHandlerStub{
		DoScrollRequestAllDocumentsCalled: func(query *bytes.Buffer, index string, handlerFunc func(responseBytes []byte) error) error {
			return handlerFunc([]byte(`{"hits":{"hits":[{"_id":"x","_source":{"timestamp":1}}]}}`))
		},
	}, "blocks")

	err := eb.IterateBlocks(0, 1, func(block *data.Block) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidBlockDocument)
	assert.Contains(t, err.Error(), "document x")

	expectedErr := errors.New("scroll failed")
	eb, _ = NewElasticBlocks(&elasticHandlerStub{
		DoScrollRequestAllDocumentsCalled: func(query *bytes.Buffer, index string, handlerFunc func(responseBytes []byte) error) error {
			return expectedErr
		},
	}, "blocks")
	err = eb.IterateBlocks(0, 1, func(block *data.Block) error {
		return nil
	})
	assert.Equal(t, expectedErr, err)

	called := false
	eb, _ = NewElasticBlocks(&elasticHandlerStub{
		DoScrollRequestAllDocumentsCalled: func(query *bytes.Buffer, index string, handlerFunc func(responseBytes []byte) error) error {
			called = true
			return nil
		},
	}, "blocks")
	assert.Nil(t, eb.IterateBlocks(5, 5, nil))
	assert.False(t, called)
}
