package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type object = map[string]interface{}

func encodeQuery(query object) (*bytes.Buffer, error) {
	var buff bytes.Buffer
	if err := json.NewEncoder(&buff).Encode(query); err != nil {
		return nil, fmt.Errorf("error encoding query: %s", err.Error())
	}

	return &buff, nil
}

func getAllBlocks() (*bytes.Buffer, error) {
	obj := object{
		"query": object{
			"match_all": object{},
		},
	}

	return encodeQuery(obj)
}

func getBlocksByHeight(start, end uint64) (*bytes.Buffer, error) {
	obj := object{
		"query": object{
			"range": object{
				"height": object{
					"gte": start,
					"lt":  end,
				},
			},
		},
		"sort": []interface{}{
			object{
				"height": object{
					"order": "asc",
				},
			},
		},
	}

	return encodeQuery(obj)
}
