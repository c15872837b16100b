package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Sequence is a persisted monotonic counter kept in a side file as a single
// decimal integer. It tracks how many user records have ever been created so
// numbering continues across process restarts. It is informational
// bookkeeping only; uniqueness is always checked against the store itself.
type Sequence struct {
	path string
}

// NewSequence creates a counter backed by the given side file.
func NewSequence(path string) *Sequence {
	return &Sequence{path: path}
}

// Load returns the persisted value. An absent or unparsable side file loads
// as zero; Load never fails.
func (s *Sequence) Load() uint64 {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Save overwrites the side file with n.
func (s *Sequence) Save(n uint64) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("sequence: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(strconv.FormatUint(n, 10)), 0600); err != nil {
		return fmt.Errorf("sequence: %w", err)
	}
	return nil
}

// Increment loads, adds one, and saves, returning the new value.
func (s *Sequence) Increment() (uint64, error) {
	n := s.Load() + 1
	if err := s.Save(n); err != nil {
		return 0, err
	}
	return n, nil
}
