package process

import "errors"

// ErrMalformedBlock signals a block that does not have the shape the statistics rely on
var ErrMalformedBlock = errors.New("malformed block")

// ErrInvalidBinWidth signals a histogram bin width that is not a positive number
var ErrInvalidBinWidth = errors.New("invalid bin width")

// ErrInvalidBucketWidth signals a time bucket width that is not positive
var ErrInvalidBucketWidth = errors.New("invalid bucket width")

// ErrInvalidWindowSize signals a sliding window size that is not positive
var ErrInvalidWindowSize = errors.New("invalid window size")

// ErrInvalidStride signals a sampling stride that is not positive
var ErrInvalidStride = errors.New("invalid stride")

// ErrInvalidThreshold signals a currency threshold that is negative or not a number
var ErrInvalidThreshold = errors.New("invalid threshold")

// ErrNilRatesHandler signals that a nil rates handler has been provided
var ErrNilRatesHandler = errors.New("nil rates handler")

// ErrNilBlockSource signals that a nil block source has been provided
var ErrNilBlockSource = errors.New("nil block source")

// ErrNilBlockProcessor signals that a nil block processor has been provided
var ErrNilBlockProcessor = errors.New("nil block processor")
