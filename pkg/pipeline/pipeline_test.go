package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/slidesmith/slidesmith/pkg/cache"
	"github.com/slidesmith/slidesmith/pkg/errors"
)

const sampleDeck = `{
  "deck": {"title": "Pipeline Test"},
  "tokens": {
    "color": {"text": "#111827", "muted": "#6B7280", "bg": "#FFFFFF"},
    "font": {"body_family": "Calibri", "title_family": "Calibri", "body_size": 18, "h2_size": 28, "title_size": 44, "min_body_size": 14},
    "spacing": {"margin": 48, "gutter": 12},
    "grid": {"columns": 12, "unit": "px"}
  },
  "slides": [
    {
      "title": "Overview",
      "components": [
        {"type": "text", "text_type": "body", "value": "First block", "grid": {"col": 1, "span": 12, "y": 120, "row_h": 72}},
        {"type": "text", "text_type": "body", "value": "Second block", "grid": {"col": 1, "span": 6, "y": 220, "row_h": 72}}
      ]
    }
  ]
}`

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	r, err := NewRunner(c, nil, discardLogger())
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	return r
}

func TestOptions_Defaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if o.Strategy != "preserve_order" {
		t.Errorf("Strategy = %q, want preserve_order", o.Strategy)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", o.Formats)
	}
	if o.Scale != DefaultPNGScale {
		t.Errorf("Scale = %g, want %g", o.Scale, DefaultPNGScale)
	}
}

func TestOptions_InvalidStrategy(t *testing.T) {
	o := Options{Strategy: "waterfall"}
	err := o.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidStrategy) {
		t.Errorf("error = %v, want INVALID_STRATEGY", err)
	}
}

func TestOptions_InvalidFormat(t *testing.T) {
	o := Options{Formats: []string{"pptx"}}
	err := o.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestExecute_EndToEnd(t *testing.T) {
	r := newTestRunner(t, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), []byte(sampleDeck), Options{
		Strategy: "preserve_order",
		Formats:  []string{FormatJSON, FormatSVG},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(result.DeckHash) != 64 {
		t.Errorf("DeckHash = %q, want 64 hex chars", result.DeckHash)
	}
	if result.Stats.Slides != 1 {
		t.Errorf("Slides = %d, want 1", result.Stats.Slides)
	}
	if result.Document == nil || len(result.Document.Slides) != 1 {
		t.Fatal("missing aligned document")
	}

	jsonSlides := result.Artifacts[FormatJSON]
	if len(jsonSlides) != 1 {
		t.Fatalf("json artifacts = %d, want 1", len(jsonSlides))
	}
	if !strings.Contains(string(jsonSlides[0]), "First block") {
		t.Error("json artifact missing component text")
	}

	svgSlides := result.Artifacts[FormatSVG]
	if len(svgSlides) != 1 {
		t.Fatalf("svg artifacts = %d, want one per slide", len(svgSlides))
	}
	if !strings.HasPrefix(string(svgSlides[0]), "<svg") {
		t.Error("svg artifact is not an svg document")
	}

	if len(result.Reports) != 1 {
		t.Fatalf("Reports = %d, want 1", len(result.Reports))
	}
	if !result.Reports[0].IsValid {
		t.Errorf("aligned slide still overlaps: %+v", result.Reports[0])
	}
}

func TestExecute_FatalSchemaError(t *testing.T) {
	r := newTestRunner(t, nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), []byte(`{"slides": []}`), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidDeck) {
		t.Errorf("error = %v, want INVALID_DECK", err)
	}
}

func TestExecute_MalformedJSON(t *testing.T) {
	r := newTestRunner(t, nil)
	defer r.Close()

	if _, err := r.Execute(context.Background(), []byte(`{`), Options{}); err == nil {
		t.Fatal("Execute() succeeded on malformed JSON")
	}
}

func TestExecute_SecondRunHitsCache(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(t, fileCache)
	defer r.Close()

	opts := Options{Formats: []string{FormatJSON}}
	first, err := r.Execute(context.Background(), []byte(sampleDeck), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.NormalizeHit || first.CacheInfo.AlignHit || first.CacheInfo.RenderHit {
		t.Errorf("first run reported cache hits: %+v", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), []byte(sampleDeck), opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	ci := second.CacheInfo
	if !ci.NormalizeHit || !ci.AlignHit || !ci.RenderHit {
		t.Errorf("second run missed cache: %+v", ci)
	}
	if string(second.Artifacts[FormatJSON][0]) != string(first.Artifacts[FormatJSON][0]) {
		t.Error("cached artifact differs from computed artifact")
	}
}

func TestExecute_RefreshBypassesCache(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(t, fileCache)
	defer r.Close()

	if _, err := r.Execute(context.Background(), []byte(sampleDeck), Options{}); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	result, err := r.Execute(context.Background(), []byte(sampleDeck), Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if result.CacheInfo.NormalizeHit || result.CacheInfo.AlignHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh run hit cache: %+v", result.CacheInfo)
	}
}

func TestExecute_DifferentStrategiesKeyedSeparately(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(t, fileCache)
	defer r.Close()

	if _, err := r.Execute(context.Background(), []byte(sampleDeck), Options{Strategy: "preserve_order"}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	result, err := r.Execute(context.Background(), []byte(sampleDeck), Options{Strategy: "compact"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.CacheInfo.AlignHit {
		t.Error("compact run hit the preserve_order layout cache")
	}
	// The normalize stage is strategy independent and should hit.
	if !result.CacheInfo.NormalizeHit {
		t.Error("normalize cache missed across strategies")
	}
}
