// Package jsonl persists clip data as JSON Lines files.
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmazur/clipview"
)

// Compile-time interface verification.
var _ clipview.ClipStore = (*Store)(nil)

// Store persists and retrieves clip library snapshots as JSONL.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads clips from a JSONL file. Returns an empty slice if the file
// doesn't exist.
func (s *Store) Load(path string) ([]clipview.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var clips []clipview.Clip
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var c clipview.Clip
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		clips = append(clips, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return clips, nil
}

// Save writes clips to a JSONL file, creating parent directories if needed.
func (s *Store) Save(path string, clips []clipview.Clip) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, c := range clips {
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			return err
		}
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}

	return nil
}
