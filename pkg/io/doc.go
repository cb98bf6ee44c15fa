// Package io provides JSON import and export for deck documents.
//
// # Import
//
// Use [ImportDeck] to read a deck from a file path, or [ReadDeck] to read
// from any io.Reader:
//
//	raw, doc, err := io.ImportDeck("deck.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both return the raw bytes alongside the decoded document. The raw bytes
// feed schema validation and cache keying, which must see the input exactly
// as written; the decoded document feeds normalization.
//
// Import only rejects malformed JSON. Structural problems such as missing
// placements or unknown component kinds are the schema validator's and
// normalizer's concern, so that they can be reported as warnings and
// repaired instead of failing the whole deck.
//
// # Export
//
// Use [ExportDeck] to write a document to a file, or [WriteDeck] to write to
// any io.Writer. A normalized deck exported and re-imported round-trips
// identically, which is what makes layout caching sound. Rendered artifacts
// are written with [ExportArtifacts], one file per format.
package io
