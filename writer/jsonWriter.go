package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const resultExtension = ".json"

// ErrEmptyName signals that a result without a name was provided
var ErrEmptyName = errors.New("empty result name")

type jsonWriter struct {
	pathToFolder string
}

// NewJSONWriter creates a writer that stores every result as <pathToFolder>/<name>.json
func NewJSONWriter(pathToFolder string) (*jsonWriter, error) {
	err := os.MkdirAll(pathToFolder, 0755)
	if err != nil {
		return nil, fmt.Errorf("cannot create results folder %w", err)
	}

	return &jsonWriter{
		pathToFolder: pathToFolder,
	}, nil
}

// Exists returns true if the result was already written
func (jw *jsonWriter) Exists(name string) bool {
	_, err := os.Stat(jw.resultPath(name))
	return err == nil
}

// Write marshals value to the result file of name. The file appears only once it is complete
func (jw *jsonWriter) Write(name string, value interface{}) error {
	if name == "" {
		return ErrEmptyName
	}

	bytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cannot marshal %s: %w", name, err)
	}

	tmpFile, err := os.CreateTemp(jw.pathToFolder, name+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	_, err = tmpFile.Write(bytes)
	if err != nil {
		_ = tmpFile.Close()
		return err
	}
	err = tmpFile.Close()
	if err != nil {
		return err
	}
	err = os.Chmod(tmpName, 0644)
	if err != nil {
		return err
	}

	return os.Rename(tmpName, jw.resultPath(name))
}

func (jw *jsonWriter) resultPath(name string) string {
	return filepath.Join(jw.pathToFolder, name+resultExtension)
}
