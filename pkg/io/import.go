package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/slidesmith/slidesmith/pkg/deck"
)

// ReadDeck decodes a JSON deck from r. It returns both the raw bytes and
// the decoded document: the raw bytes are needed for schema validation and
// cache keys, the document for normalization.
//
// ReadDeck fails only on malformed JSON. Missing fields and out-of-range
// values pass through so the normalizer can repair them with warnings.
func ReadDeck(r io.Reader) ([]byte, *deck.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read: %w", err)
	}
	doc, err := DecodeDeck(raw)
	if err != nil {
		return nil, nil, err
	}
	return raw, doc, nil
}

// DecodeDeck decodes raw JSON bytes into a document.
func DecodeDeck(raw []byte) (*deck.Document, error) {
	var doc deck.Document
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

// ImportDeck reads a JSON deck file at path.
//
// ImportDeck opens the file, decodes it using [ReadDeck], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportDeck(path string) ([]byte, *deck.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDeck(f)
}
