package align

import (
	"fmt"

	"github.com/slidesmith/slidesmith/pkg/deck"
)

// Rect is the geometric projection of a grid placement used during overlap
// analysis. Horizontal extent is expressed in whole columns, vertical extent
// in grid units. Rects are transient: they are derived from components at
// the start of a pass and never persisted.
type Rect struct {
	Col  int
	Span int
	Y    float64
	RowH float64
	ID   string
	Kind deck.Kind
}

// EndCol returns the last (inclusive) column the rect occupies.
func (r Rect) EndCol() int { return r.Col + r.Span - 1 }

// Bottom returns the rect's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.RowH }

// Overlaps reports whether r and other intersect: their column ranges share
// at least one column and their vertical ranges intersect within margin.
func (r Rect) Overlaps(other Rect, margin float64) bool {
	horizontal := !(r.EndCol() < other.Col || other.EndCol() < r.Col)
	vertical := !(r.Bottom()+margin < other.Y || other.Bottom()+margin < r.Y)
	return horizontal && vertical
}

// overlapsHorizontally reports whether the column ranges of r and other share
// at least one column, regardless of vertical position.
func (r Rect) overlapsHorizontally(other Rect) bool {
	return !(r.EndCol() < other.Col || other.EndCol() < r.Col)
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(col=%d, span=%d, y=%g, h=%g, kind=%s)", r.Col, r.Span, r.Y, r.RowH, r.Kind)
}

// extractRects derives a Rect for every component carrying a grid placement.
// The returned index slice maps each rect back to its component position.
// With includePinned false, components marked ignore_overlaps are left out;
// placement uses that form, validation sees every grid rect.
func extractRects(components []*deck.Component, includePinned bool) ([]Rect, []int) {
	rects := make([]Rect, 0, len(components))
	indices := make([]int, 0, len(components))
	for i, c := range components {
		if c.Grid == nil || (c.IgnoreOverlaps && !includePinned) {
			continue
		}
		id := c.ID
		if id == "" {
			id = fmt.Sprintf("comp_%d", i)
		}
		rects = append(rects, Rect{
			Col:  c.Grid.Col,
			Span: c.Grid.Span,
			Y:    c.Grid.YValue(),
			RowH: c.Grid.RowH,
			ID:   id,
			Kind: c.Kind,
		})
		indices = append(indices, i)
	}
	return rects, indices
}
