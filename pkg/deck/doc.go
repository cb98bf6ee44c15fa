// Package deck defines the data model for a slide deck document.
//
// A [Document] is the top-level input: deck metadata, shared design tokens,
// and an ordered list of slides. Each [Slide] holds an ordered list of
// [Component] values, a tagged union over a closed set of kinds (text,
// richtext, image, table, chart, shape, line, group).
//
// Placement is expressed either on a logical column grid ([GridPlacement])
// or as an absolute box ([BoxPlacement]). Exactly one of the two should be
// present; the normalizer synthesizes a default grid placement when both
// are missing.
//
// The model is mutated in place by the normalizer and optionally the
// auto-aligner, then consumed read-only by the emitter. Use [Document.Clone]
// to obtain an independent copy before repair passes.
package deck
