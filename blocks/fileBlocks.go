package blocks

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/ledgerstats/statistics-go/data"
)

const maxLineSize = 256 * 1024 * 1024

type fileBlocks struct {
	pathToFile string
}

// NewFileBlocks creates a block source over a file holding one block document per line
func NewFileBlocks(pathToFile string) (*fileBlocks, error) {
	info, err := os.Stat(pathToFile)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", pathToFile)
	}

	return &fileBlocks{
		pathToFile: pathToFile,
	}, nil
}

// Count returns the number of non empty lines of the file
func (fb *fileBlocks) Count() (uint64, error) {
	count := uint64(0)
	err := fb.scanLines(func(_ []byte) (bool, error) {
		count++
		return true, nil
	})

	return count, err
}

// IterateBlocks calls handler for the blocks on the lines in [start, end), counting only non empty lines
func (fb *fileBlocks) IterateBlocks(start, end uint64, handler func(block *data.Block) error) error {
	if start >= end {
		return nil
	}

	idx := uint64(0)
	checker := &orderChecker{}
	return fb.scanLines(func(line []byte) (bool, error) {
		current := idx
		idx++
		if current < start {
			return true, nil
		}
		if current >= end {
			return false, nil
		}

		block, err := DecodeBlock(line)
		if err != nil {
			return false, fmt.Errorf("line %d: %w", current, err)
		}
		err = checker.check(block)
		if err != nil {
			return false, err
		}

		return true, handler(block)
	})
}

func (fb *fileBlocks) scanLines(lineHandler func(line []byte) (bool, error)) error {
	file, err := os.Open(fb.pathToFile)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		shouldContinue, errHandler := lineHandler(line)
		if errHandler != nil {
			return errHandler
		}
		if !shouldContinue {
			return nil
		}
	}

	return scanner.Err()
}
