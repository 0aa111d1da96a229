package elasticClient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/tidwall/gjson"
)

const defaultScrollSize = 500

var log = logger.GetOrCreate("elasticClient")

type elasticClient struct {
	client     *elasticsearch.Client
	scrollSize int
}

// NewElasticClient creates a client that reads documents in pages of scrollSize
func NewElasticClient(cfg elasticsearch.Config, scrollSize int) (*elasticClient, error) {
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot create database reader %w", err)
	}
	if scrollSize <= 0 {
		scrollSize = defaultScrollSize
	}

	return &elasticClient{
		client:     client,
		scrollSize: scrollSize,
	}, nil
}

// DoScrollRequestAllDocuments calls handlerFunc for every page of the documents matched by query
func (ec *elasticClient) DoScrollRequestAllDocuments(
	query *bytes.Buffer,
	index string,
	handlerFunc func(responseBytes []byte) error,
) error {
	// use a random interval in order to avoid AWS GET request cashing
	randomNum := rand.Intn(50000)
	res, err := ec.client.Search(
		ec.client.Search.WithSize(ec.scrollSize),
		ec.client.Search.WithScroll(10*time.Minute+time.Duration(randomNum)*time.Millisecond),
		ec.client.Search.WithContext(context.Background()),
		ec.client.Search.WithIndex(index),
		ec.client.Search.WithBody(query),
	)
	if err != nil {
		return err
	}

	bodyBytes, err := getBytesFromResponse(res)
	if err != nil {
		return err
	}

	scrollID := gjson.GetBytes(bodyBytes, "_scroll_id").String()
	if gjson.GetBytes(bodyBytes, "hits.hits.#").Int() < 1 {
		ec.clearScrollLogged(scrollID)
		return nil
	}

	err = handlerFunc(bodyBytes)
	if err != nil {
		ec.clearScrollLogged(scrollID)
		return err
	}

	return ec.iterateScroll(scrollID, handlerFunc)
}

func (ec *elasticClient) iterateScroll(
	scrollID string,
	handlerFunc func(responseBytes []byte) error,
) error {
	if scrollID == "" {
		return nil
	}
	defer ec.clearScrollLogged(scrollID)

	for {
		scrollBodyBytes, errScroll := ec.getScrollResponse(scrollID)
		if errScroll != nil {
			return errScroll
		}

		numberOfHits := gjson.GetBytes(scrollBodyBytes, "hits.hits.#")
		if numberOfHits.Int() < 1 {
			return nil
		}
		err := handlerFunc(scrollBodyBytes)
		if err != nil {
			return err
		}
	}
}

func (ec *elasticClient) getScrollResponse(scrollID string) ([]byte, error) {
	randomNum := rand.Intn(10000)
	res, err := ec.client.Scroll(
		ec.client.Scroll.WithScrollID(scrollID),
		ec.client.Scroll.WithScroll(2*time.Minute+time.Duration(randomNum)*time.Millisecond),
	)
	if err != nil {
		return nil, err
	}

	return getBytesFromResponse(res)
}

// DoCountRequest returns the number of documents of the index matched by query
func (ec *elasticClient) DoCountRequest(query *bytes.Buffer, index string) (uint64, error) {
	res, err := ec.client.Count(
		ec.client.Count.WithIndex(index),
		ec.client.Count.WithBody(query),
	)
	if err != nil {
		return 0, err
	}

	bodyBytes, err := getBytesFromResponse(res)
	if err != nil {
		return 0, err
	}

	count := gjson.GetBytes(bodyBytes, "count")
	if !count.Exists() {
		return 0, fmt.Errorf("count response without count field: %s", string(bodyBytes))
	}

	return count.Uint(), nil
}

func getBytesFromResponse(res *esapi.Response) ([]byte, error) {
	defer closeBody(res)
	if res.IsError() {
		return nil, fmt.Errorf("error response: %s", res)
	}

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return bodyBytes, nil
}

func (ec *elasticClient) clearScrollLogged(scrollID string) {
	if scrollID == "" {
		return
	}

	err := ec.clearScroll(scrollID)
	if err != nil {
		log.Warn("cannot clear scroll", "error", err.Error())
	}
}

func (ec *elasticClient) clearScroll(scrollID string) error {
	resp, err := ec.client.ClearScroll(
		ec.client.ClearScroll.WithScrollID(scrollID),
	)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.IsError() && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error response: %s", resp)
	}

	return nil
}

func closeBody(res *esapi.Response) {
	if res != nil && res.Body != nil {
		_ = res.Body.Close()
	}
}
