package pipeline

import (
	"context"

	"github.com/slidesmith/slidesmith/pkg/render/sink"
)

// Thin adapters giving every sink the same finisher shape.

type jsonSink struct{ *sink.JSON }

func newJSONSink() *jsonSink { return &jsonSink{sink.NewJSON()} }

func (s *jsonSink) finish() ([][]byte, error) {
	data, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	return [][]byte{data}, nil
}

type svgSink struct{ *sink.SVG }

func newSVGSink() *svgSink { return &svgSink{sink.NewSVG()} }

func (s *svgSink) finish() ([][]byte, error) { return s.Slides(), nil }

type pngSink struct{ *sink.PNG }

func newPNGSink(ctx context.Context, scale float64, fontPath string, fetcher sink.Fetcher) *pngSink {
	opts := []sink.PNGOption{sink.WithPNGScale(scale)}
	if fontPath != "" {
		opts = append(opts, sink.WithPNGFont(fontPath))
	}
	if fetcher != nil {
		opts = append(opts, sink.WithPNGFetcher(ctx, fetcher))
	}
	return &pngSink{sink.NewPNG(opts...)}
}

func (s *pngSink) finish() ([][]byte, error) { return s.Slides() }
