// Package align resolves overlaps between grid-placed components on a slide.
//
// The aligner operates on the geometric projection of each component's grid
// placement (a [Rect]) and rewrites the component's column and vertical
// offset so that no two rectangles intersect within a minimum gap.
// Components carrying box placements pass through untouched.
//
// Three strategies are available:
//
//   - [StrategyPreserveOrder] keeps the top-down visual flow: rectangles are
//     placed in order of their original y, each in its original column when
//     free, otherwise in the first free column, otherwise pushed below the
//     overlapping stack. Image, chart, and table components are never moved
//     to a different column.
//   - [StrategyCompact] places tallest rectangles first and scans columns
//     left to right, minimizing total slide height at the cost of reordering
//     visual flow.
//   - [StrategyBalanced] tracks per-column heights and places each rectangle
//     on the column range with the lowest current skyline.
//
// Placement search is bounded: after a fixed iteration budget the last
// candidate position is accepted, trading perfect non-overlap for guaranteed
// termination under pathological input. [Aligner.Validate] recomputes overlap
// statistics independently of any placement pass.
package align
