// Package filesystem reads and writes export envelopes as JSON files.
package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/sketch/internal/ports/primary"
)

// WriteExport writes the envelope to path as indented JSON. The write
// goes through a temp file and rename so a crash never leaves a
// truncated export behind.
func WriteExport(path string, doc *primary.ExportDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sketch-export-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}

// ReadExport reads and decodes an export envelope. Envelopes from newer
// releases are rejected rather than half-understood.
func ReadExport(path string) (*primary.ExportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}
	var doc primary.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode export file: %w", err)
	}
	if doc.Version > primary.ExportVersion {
		return nil, fmt.Errorf("export version %d is newer than this build supports (%d)", doc.Version, primary.ExportVersion)
	}
	return &doc, nil
}
