// Package sink provides output format writers for rendered decks.
//
// A sink implements [render.Writer] and turns the emitter's resolved calls
// into a final output format. This package provides writers for:
//
//   - JSON: the full paint stream as structured data
//   - SVG: one vector document per slide
//   - PNG: one raster image per slide, drawn with fogleman/gg
//
// All writers buffer their output; the finished artifacts are retrieved
// after rendering completes:
//
//	w := sink.NewJSON()
//	stats, err := emitter.Render(doc, w)
//	data, err := w.Bytes()
//
// The JSON sink is the primary data interchange format: it preserves the
// exact paint order and every resolved coordinate, so external tools can
// re-render a deck without repeating normalization and layout.
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Implement [render.Writer] with a buffering struct
//  2. Define option types for configuration
//  3. Expose a finisher (Bytes or Slides) returning the artifacts
//  4. Register the format in internal/cli/render.go for CLI support
//
// [render.Writer]: github.com/slidesmith/slidesmith/pkg/render.Writer
package sink
