// Package pkg provides the core libraries for Slidesmith deck processing.
//
// # Overview
//
// Slidesmith takes structured slide deck documents, repairs and normalizes
// their grid placements, resolves layout overlaps, and emits the result as
// renderable artifacts. The pkg directory is organized into five areas:
//
//  1. [deck] - Data model (documents, slides, components, placements)
//  2. [schema], [normalize], [align] - Validation and layout repair
//  3. [layout], [render] - Coordinate mapping and component emission
//  4. [pipeline], [cache] - Orchestration and content-addressed caching
//  5. [io], [fetch], [fonts] - File I/O, image fetching, font lookup
//
// # Architecture
//
// The typical data flow through Slidesmith:
//
//	Deck JSON document
//	         ↓
//	    [schema] package (validate against the deck schema)
//	         ↓
//	    [normalize] package (fill defaults, repair placements)
//	         ↓
//	    [align] package (resolve grid overlaps)
//	         ↓
//	    [render] package (map to EMU coordinates, emit components)
//	         ↓
//	    JSON/SVG/PNG output
//
// # Quick Start
//
// Run the full pipeline on a raw deck document:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/slidesmith/slidesmith/pkg/cache"
//	    "github.com/slidesmith/slidesmith/pkg/pipeline"
//	)
//
//	raw, _ := os.ReadFile("deck.json")
//	store, _ := cache.NewFileCache("/tmp/slidesmith-cache")
//	runner, _ := pipeline.NewRunner(store, nil, nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), raw, pipeline.Options{
//	    Strategy: "compact",
//	    Formats:  []string{"svg", "png"},
//	})
//	for i, svg := range result.Artifacts["svg"] {
//	    _ = os.WriteFile(fmt.Sprintf("slide_%02d.svg", i+1), svg, 0o644)
//	}
//
// Or drive the stages directly:
//
//	doc, _ := io.ImportDeck("deck.json")
//	normalized, warnings, _ := normalize.Document(doc)
//	aligned, _ := align.AlignDocument(normalized, align.StrategyCompact)
//
// # Main Packages
//
// [deck] - The document model: Document, Tokens, Slide, Component, and the
// grid/box placement types. Components carry a closed Kind enum (text,
// richtext, image, table, chart, shape, line, group).
//
// [schema] - JSON Schema validation of raw deck documents. Missing required
// top-level sections are fatal; everything else becomes an advisory that the
// normalizer repairs.
//
// [normalize] - Deck repair: token defaults, column clamping, row height
// estimation, flow-cursor placement for components without a y position, and
// bounded overlap push-down. Returns a repaired copy plus typed warnings.
//
// [align] - Grid overlap resolution with three strategies (preserve_order,
// compact, balanced) and per-slide validation reports.
//
// [layout] - Coordinate mapping from grid cells to EMU rectangles, with px,
// pt, in, and cm conversions.
//
// [render] - The component emitter: walks aligned slides and drives a Writer
// (text boxes, pictures, tables, charts, shapes, connectors). In-repo sinks
// under [render/sink] produce JSON, SVG, and PNG artifacts.
//
// [pipeline] - The validate → normalize → align → render orchestration with
// per-stage caching, used by the CLI and by embedding applications.
//
// [cache] - Content-addressed caching (file, Redis, or none) with SHA-256
// keys derived from deck, layout, and artifact inputs.
//
// [io] - Deck import/export and artifact file helpers.
//
// [fetch] - Image source resolution (local paths and HTTP URLs) with retry
// and caching.
//
// [fonts] - System font lookup for raster rendering.
//
// [errors] - Structured error codes shared across the module.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/align/...        # Specific package
//	go test -run Example           # Examples only
//
// [deck]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/deck
// [schema]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/schema
// [normalize]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/normalize
// [align]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/align
// [layout]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/layout
// [render]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/cache
// [io]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/io
// [fetch]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/fetch
// [fonts]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/fonts
// [errors]: https://pkg.go.dev/github.com/slidesmith/slidesmith/pkg/errors
package pkg
