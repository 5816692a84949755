package jsonl

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pmazur/clipview"
)

// Compile-time interface verification.
var _ clipview.ExportSaver = (*Saver)(nil)

// Saver appends export results to JSONL files.
type Saver struct{}

// NewSaver creates a new Saver.
func NewSaver() *Saver {
	return &Saver{}
}

// Save appends an export result to a JSONL file, creating parent
// directories if needed.
func (s *Saver) Save(path string, export clipview.Export) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(export)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return err
	}
	if _, err := f.WriteString("\n"); err != nil {
		return err
	}

	return nil
}
