package align

import (
	"sort"

	"github.com/slidesmith/slidesmith/pkg/deck"
	"github.com/slidesmith/slidesmith/pkg/errors"
)

// DefaultMinGap is the minimum clearance, in grid units, enforced between
// any two components during overlap tests.
const DefaultMinGap = 8

// Strategy selects an overlap-resolution policy.
type Strategy string

// Available strategies.
const (
	StrategyPreserveOrder Strategy = "preserve_order"
	StrategyCompact       Strategy = "compact"
	StrategyBalanced      Strategy = "balanced"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyPreserveOrder, StrategyCompact, StrategyBalanced:
		return true
	}
	return false
}

// ParseStrategy converts a string into a Strategy, rejecting unknown names.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(s)
	if !st.Valid() {
		return "", errors.New(errors.ErrCodeInvalidStrategy,
			"unknown alignment strategy %q (want preserve_order, compact, or balanced)", s)
	}
	return st, nil
}

// Aligner resolves overlaps between grid-placed components using the grid
// geometry from a deck's tokens. An Aligner is stateless between calls and
// safe for reuse across slides.
type Aligner struct {
	columns int
	margin  float64
	gutter  float64
	minGap  float64
}

// New builds an Aligner from design tokens.
func New(tokens deck.Tokens) *Aligner {
	return &Aligner{
		columns: tokens.Grid.Columns,
		margin:  tokens.Spacing.Margin,
		gutter:  tokens.Spacing.Gutter,
		minGap:  DefaultMinGap,
	}
}

// Align returns a copy of components with grid placements rewritten so that
// no two rectangles overlap within the minimum gap. Components without a
// grid placement, and components that opted out via ignore_overlaps, pass
// through untouched. The input slice is never mutated.
func (a *Aligner) Align(components []*deck.Component, strategy Strategy) ([]*deck.Component, error) {
	if !strategy.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidStrategy,
			"unknown alignment strategy %q", strategy)
	}
	if len(components) == 0 {
		return components, nil
	}

	out := make([]*deck.Component, len(components))
	for i, c := range components {
		out[i] = c.Clone()
	}

	rects, indices := extractRects(out, false)
	if len(rects) == 0 {
		return out, nil
	}

	switch strategy {
	case StrategyPreserveOrder:
		a.alignPreserveOrder(out, rects, indices)
	case StrategyCompact:
		a.alignCompact(out, rects, indices)
	case StrategyBalanced:
		a.alignBalanced(out, rects, indices)
	}
	return out, nil
}

// AlignSlide aligns a single slide's components, returning a new slide.
func (a *Aligner) AlignSlide(slide *deck.Slide, strategy Strategy) (*deck.Slide, error) {
	aligned, err := a.Align(slide.Components, strategy)
	if err != nil {
		return nil, err
	}
	out := slide.Clone()
	out.Components = aligned
	return out, nil
}

// AlignDocument aligns every slide of doc under the given strategy and
// returns a new document. The input document is never mutated.
func AlignDocument(doc *deck.Document, strategy Strategy) (*deck.Document, error) {
	aligner := New(doc.Tokens)
	out := doc.Clone()
	for i, slide := range out.Slides {
		aligned, err := aligner.AlignSlide(slide, strategy)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidPlacement,
				"aligning slide %d", i+1)
		}
		out.Slides[i] = aligned
	}
	return out, nil
}

// alignPreserveOrder places rectangles in order of their original y so the
// top-down visual flow survives. Ties keep input order.
func (a *Aligner) alignPreserveOrder(components []*deck.Component, rects []Rect, indices []int) {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return rects[order[i]].Y < rects[order[j]].Y
	})

	placed := make([]Rect, 0, len(rects))
	for _, ri := range order {
		rect := rects[ri]
		col, y := a.place(rect, placed)

		grid := components[indices[ri]].Grid
		grid.Col = col
		grid.SetY(y)

		rect.Col = col
		rect.Y = y
		placed = append(placed, rect)
	}
}

// alignCompact places tallest rectangles first, scanning columns left to
// right. Minimizes total height at the cost of reordering visual flow.
func (a *Aligner) alignCompact(components []*deck.Component, rects []Rect, indices []int) {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return rects[order[i]].RowH > rects[order[j]].RowH
	})

	placed := make([]Rect, 0, len(rects))
	for _, ri := range order {
		rect := rects[ri]
		col, y := a.findAvailable(rect, placed)

		grid := components[indices[ri]].Grid
		grid.Col = col
		grid.SetY(y)

		rect.Col = col
		rect.Y = y
		placed = append(placed, rect)
	}
}

// alignBalanced keeps a per-column skyline and places each rectangle, in
// input order, on the column range with the lowest current height.
func (a *Aligner) alignBalanced(components []*deck.Component, rects []Rect, indices []int) {
	heights := make([]float64, a.columns)

	for ri, rect := range rects {
		bestCol := 1
		minHeight := -1.0
		for col := 1; col <= a.columns-rect.Span+1; col++ {
			rangeMax := heights[col-1]
			for c := col; c < col+rect.Span; c++ {
				if heights[c-1] > rangeMax {
					rangeMax = heights[c-1]
				}
			}
			if minHeight < 0 || rangeMax < minHeight {
				minHeight = rangeMax
				bestCol = col
			}
		}
		if minHeight < 0 {
			minHeight = 0
		}

		y := minHeight + a.gutter
		grid := components[indices[ri]].Grid
		grid.Col = bestCol
		grid.SetY(y)

		for c := bestCol; c < bestCol+rect.Span; c++ {
			heights[c-1] = y + rect.RowH
		}
	}
}
