package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slidesmith/slidesmith/pkg/align"
	"github.com/slidesmith/slidesmith/pkg/cache"
	"github.com/slidesmith/slidesmith/pkg/deck"
	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/fetch"
	"github.com/slidesmith/slidesmith/pkg/io"
	"github.com/slidesmith/slidesmith/pkg/normalize"
	"github.com/slidesmith/slidesmith/pkg/observability"
	"github.com/slidesmith/slidesmith/pkg/render"
	"github.com/slidesmith/slidesmith/pkg/schema"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, validator, and logger; it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	validator *schema.Validator
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) (*Runner, error) {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	validator, err := schema.New()
	if err != nil {
		return nil, err
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		validator: validator,
	}, nil
}

// Execute runs the complete validate → normalize → align → render pipeline
// with caching. raw is the deck JSON exactly as read from disk or request.
func (r *Runner) Execute(ctx context.Context, raw []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		DeckHash:  cache.Hash(raw),
		Artifacts: make(map[string][][]byte),
	}

	// Stage 1: Validate
	advisories, err := r.validator.Validate(raw)
	result.Advisories = advisories
	if err != nil {
		return nil, err
	}
	for _, a := range advisories {
		r.Logger.Warn("schema advisory", "detail", a)
	}

	// Stage 2: Normalize
	normalizeStart := time.Now()
	observability.Pipeline().OnNormalizeStart(ctx, result.DeckHash)
	normalized, warnings, normHit, err := r.NormalizeWithCacheInfo(ctx, raw, result.DeckHash, opts)
	observability.Pipeline().OnNormalizeComplete(ctx, result.DeckHash, len(warnings), time.Since(normalizeStart), err)
	if err != nil {
		return nil, err
	}
	result.Warnings = warnings
	result.Stats.NormalizeTime = time.Since(normalizeStart)
	result.Stats.Slides = len(normalized.Slides)
	result.Stats.WarningCount = len(warnings)
	result.CacheInfo.NormalizeHit = normHit

	r.Logger.Info("normalized deck",
		"slides", len(normalized.Slides),
		"warnings", len(warnings),
		"duration", result.Stats.NormalizeTime)

	// Stage 3: Align
	alignStart := time.Now()
	observability.Pipeline().OnAlignStart(ctx, opts.Strategy, len(normalized.Slides))
	aligned, alignHit, err := r.AlignWithCacheInfo(ctx, normalized, opts)
	observability.Pipeline().OnAlignComplete(ctx, opts.Strategy, time.Since(alignStart), err)
	if err != nil {
		return nil, err
	}
	result.Document = aligned
	result.Stats.AlignTime = time.Since(alignStart)
	result.CacheInfo.AlignHit = alignHit
	result.Reports = r.reports(aligned)

	r.Logger.Info("aligned layout",
		"strategy", opts.Strategy,
		"duration", result.Stats.AlignTime)

	// Stage 4: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, stats, renderHit, err := r.RenderWithCacheInfo(ctx, aligned, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	if stats != nil {
		result.Stats.Components = stats.Components
		result.Stats.Skipped = stats.Skipped
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// normalizedEntry is the cached form of the normalize stage.
type normalizedEntry struct {
	Document *deck.Document      `json:"document"`
	Warnings []normalize.Warning `json:"warnings,omitempty"`
}

// NormalizeWithCacheInfo repairs the deck with caching and returns cache
// hit info. deckHash must be the hash of raw.
func (r *Runner) NormalizeWithCacheInfo(ctx context.Context, raw []byte, deckHash string, opts Options) (*deck.Document, []normalize.Warning, bool, error) {
	cacheKey := r.Keyer.DeckKey(deckHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var entry normalizedEntry
			if err := json.Unmarshal(data, &entry); err == nil && entry.Document != nil {
				observability.Cache().OnCacheHit(ctx, "deck")
				return entry.Document, entry.Warnings, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "deck")
	}

	doc, err := io.DecodeDeck(raw)
	if err != nil {
		return nil, nil, false, errors.Wrap(err, errors.ErrCodeInvalidDeck, "decoding deck")
	}
	normalized, warnings, err := normalize.Document(doc)
	if err != nil {
		return nil, nil, false, err
	}
	warnings = append(normalize.DeckScaffolding(raw), warnings...)

	if data, err := json.Marshal(normalizedEntry{Document: normalized, Warnings: warnings}); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDeck)
		observability.Cache().OnCacheSet(ctx, "deck", len(data))
	}
	return normalized, warnings, false, nil
}

// AlignWithCacheInfo aligns the normalized deck with caching and returns
// cache hit info.
func (r *Runner) AlignWithCacheInfo(ctx context.Context, normalized *deck.Document, opts Options) (*deck.Document, bool, error) {
	docData, err := json.Marshal(normalized)
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeInternal, "serializing normalized deck")
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(docData), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached deck.Document
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &cached, true, nil
			}
			// Deserialization failure falls through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	aligned, err := align.AlignDocument(normalized, opts.AlignStrategy())
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(aligned); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return aligned, false, nil
}

// RenderWithCacheInfo renders all requested formats with caching and
// returns cache hit info. The emitter stats are nil when every format was
// served from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, aligned *deck.Document, opts Options) (map[string][][]byte, *render.Stats, bool, error) {
	layoutData, err := json.Marshal(aligned)
	if err != nil {
		return nil, nil, false, errors.Wrap(err, errors.ErrCodeInternal, "serializing layout")
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][][]byte)
	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				allCached = false
				break
			}
			var slides [][]byte
			if err := json.Unmarshal(data, &slides); err != nil {
				allCached = false
				break
			}
			artifacts[format] = slides
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, nil, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	emitter := render.New(render.WithLogger(opts.Logger))
	fetcher := fetch.New(fetch.WithCache(r.Cache), fetch.WithLogger(opts.Logger))
	var stats *render.Stats
	rendered := make(map[string][][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		writer, finish, err := sinkFor(ctx, format, opts, fetcher)
		if err != nil {
			return nil, nil, false, err
		}
		s, err := emitter.Render(aligned, writer)
		if err != nil {
			return nil, nil, false, err
		}
		if stats == nil {
			stats = s
		}
		slides, err := finish()
		if err != nil {
			return nil, nil, false, err
		}
		rendered[format] = slides
	}

	for format, slides := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, err := json.Marshal(slides); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, stats, false, nil
}

// reports computes one overlap report per slide of the aligned deck.
func (r *Runner) reports(doc *deck.Document) []align.Report {
	aligner := align.New(doc.Tokens)
	reports := make([]align.Report, len(doc.Slides))
	for i, slide := range doc.Slides {
		reports[i] = aligner.Validate(slide.Components)
	}
	return reports
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
