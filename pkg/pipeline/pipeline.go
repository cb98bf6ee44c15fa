// Package pipeline provides the core deck processing pipeline.
//
// This package implements the complete validate → normalize → align → render
// pipeline that can be used by the CLI and by embedding applications. By
// centralizing this logic, every entry point gets the same repair semantics
// and caching behavior.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Validate: Check the raw JSON against the deck schema
//  2. Normalize: Fill defaults and repair invalid placements
//  3. Align: Resolve grid overlaps with the chosen strategy
//  4. Render: Emit output artifacts (JSON, SVG, PNG)
//
// Normalization, alignment, and rendering results are cached independently,
// keyed by content hashes, so editing a deck only recomputes the stages its
// change actually affects.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Strategy: "compact",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, raw, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svgSlides := result.Artifacts["svg"]
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slidesmith/slidesmith/pkg/align"
	"github.com/slidesmith/slidesmith/pkg/cache"
	"github.com/slidesmith/slidesmith/pkg/deck"
	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/normalize"
	"github.com/slidesmith/slidesmith/pkg/render"
	"github.com/slidesmith/slidesmith/pkg/render/sink"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// DefaultPNGScale is the raster scale used when none is given.
const DefaultPNGScale = 2.0

// Options contains all configuration for the deck pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Align options
	Strategy string `json:"strategy,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`     // PNG raster scale
	FontPath string   `json:"font_path,omitempty"` // TrueType font for PNG text

	// Refresh bypasses the cache and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`

	strategy align.Strategy
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the normalized and aligned deck.
	Document *deck.Document

	// DeckHash is the content hash of the raw input.
	DeckHash string

	// Advisories are non-fatal schema violations in the raw input.
	Advisories []string

	// Warnings are the normalizer's repair records.
	Warnings []normalize.Warning

	// Reports holds one overlap report per slide, from the aligned layout.
	Reports []align.Report

	// Artifacts contains rendered outputs keyed by format. JSON produces a
	// single document; SVG and PNG produce one artifact per slide.
	Artifacts map[string][][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Slides        int
	Components    int
	Skipped       int
	WarningCount  int
	NormalizeTime time.Duration
	AlignTime     time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	NormalizeHit bool // Whether the normalized deck came from cache
	AlignHit     bool // Whether the aligned layout came from cache
	RenderHit    bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: json, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	st, err := align.ParseStrategy(o.Strategy)
	if err != nil {
		return err
	}
	o.strategy = st
	o.Strategy = string(st)

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// AlignStrategy returns the parsed alignment strategy.
// ValidateAndSetDefaults must have been called.
func (o *Options) AlignStrategy() align.Strategy {
	return o.strategy
}

// LayoutKeyOpts returns cache key options for the alignment stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Strategy: o.Strategy}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
		opts.FontPath = o.FontPath
	}
	return opts
}

// sinkFor builds the writer for one output format and returns a finisher
// that collects the artifacts after rendering. fetcher resolves image
// sources for the raster sink; the vector sinks reference sources in place.
func sinkFor(ctx context.Context, format string, o Options, fetcher sink.Fetcher) (render.Writer, func() ([][]byte, error), error) {
	switch format {
	case FormatJSON:
		w := newJSONSink()
		return w, w.finish, nil
	case FormatSVG:
		w := newSVGSink()
		return w, w.finish, nil
	case FormatPNG:
		w := newPNGSink(ctx, o.Scale, o.FontPath, fetcher)
		return w, w.finish, nil
	}
	return nil, nil, ValidateFormat(format)
}
