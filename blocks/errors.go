package blocks

import "errors"

// ErrInvalidBlockDocument signals a block document that cannot be decoded
var ErrInvalidBlockDocument = errors.New("invalid block document")

// ErrNilElasticHandler signals that a nil elastic handler has been provided
var ErrNilElasticHandler = errors.New("nil elastic handler")

// ErrEmptyIndex signals that an empty index name has been provided
var ErrEmptyIndex = errors.New("empty index name")

// ErrOutOfOrderBlock signals a block source that does not return blocks in ascending height order
var ErrOutOfOrderBlock = errors.New("block out of order")
