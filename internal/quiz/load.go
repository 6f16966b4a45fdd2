package quiz

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a JSON quiz from r and validates it.
func Decode(r io.Reader) (*Quiz, error) {
	var q Quiz
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	if err := Validate(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// LoadFile reads a quiz from a JSON file on disk.
func LoadFile(path string) (*Quiz, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quiz file: %w", err)
	}
	defer f.Close()

	q, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return q, nil
}
