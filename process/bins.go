package process

import (
	"math"
	"sort"
)

// logBin returns floor(log10(value) / binWidth). Values that are not strictly positive have no bin
func logBin(value float64, binWidth float64) (int64, bool) {
	if !(value > 0) || math.IsInf(value, 1) {
		return 0, false
	}

	return int64(math.Floor(math.Log10(value) / binWidth)), true
}

func logBinEdge(bin int64, binWidth float64) float64 {
	return math.Pow(10, float64(bin)*binWidth)
}

// timeBucket returns floor(timestamp / bucketWidth) for a positive bucketWidth
func timeBucket(timestamp int64, bucketWidth int64) int64 {
	bucket := timestamp / bucketWidth
	if timestamp%bucketWidth != 0 && timestamp < 0 {
		bucket--
	}

	return bucket
}

func bucketStart(bucket int64, bucketWidth int64) int64 {
	return bucket * bucketWidth
}

func sortedKeys(m map[int64]uint64) []int64 {
	keys := make([]int64, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})

	return keys
}

func checkBucketWidth(bucketWidth int64) error {
	if bucketWidth <= 0 {
		return ErrInvalidBucketWidth
	}

	return nil
}

func checkThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		return ErrInvalidThreshold
	}

	return nil
}
