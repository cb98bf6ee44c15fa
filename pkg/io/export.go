package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/slidesmith/slidesmith/pkg/deck"
)

// WriteDeck encodes a document as indented JSON and writes it to w.
// The output can be re-imported with [ReadDeck] for round-trip processing.
func WriteDeck(doc *deck.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportDeck writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteDeck] for file-based output.
func ExportDeck(doc *deck.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDeck(doc, f)
}

// ExportArtifacts writes rendered artifacts to dir, one file per format,
// named base.<format>. It returns the written paths keyed by format.
func ExportArtifacts(dir, base string, artifacts map[string][]byte) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	paths := make(map[string]string, len(artifacts))
	for format, data := range artifacts {
		path := filepath.Join(dir, base+"."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths[format] = path
	}
	return paths, nil
}
