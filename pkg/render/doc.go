// Package render walks a normalized deck and emits each component to a
// document writer.
//
// The [Emitter] is the pipeline's final stage. It resolves every component's
// placement through the coordinate mapper, fills style defaults from the
// deck tokens, and dispatches on the component kind to one of the [Writer]
// emission calls. Writers own the physical output format; ready-made writers
// for JSON, SVG, and PNG live in the sink subpackage.
//
// A single component failing to render is logged and skipped; the rest of
// the slide and document continue. Group components recurse over their
// children with a bounded depth, so a malformed self-referential group
// cannot hang the renderer.
package render
