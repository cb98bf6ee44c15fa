package deck

// GridPlacement positions a component on the logical column grid.
// Columns are 1-based; a component occupies columns [Col, Col+Span-1].
// Y and RowH are vertical offsets in the grid unit (Tokens.Grid.Unit).
//
// Y is a pointer so the normalizer can distinguish "missing" (assign the
// flow cursor) from an explicit zero.
type GridPlacement struct {
	Col  int      `json:"col"`
	Span int      `json:"span"`
	Y    *float64 `json:"y,omitempty"`
	RowH float64  `json:"row_h"`

	// OffsetCm shifts the mapped left edge by a literal distance in
	// centimeters, independent of the grid unit.
	OffsetCm float64 `json:"offset_cm,omitempty"`

	// Literal overrides, honored only when the owning component sets
	// IgnoreOverlaps. Each non-nil field replaces the corresponding
	// computed value during coordinate mapping.
	X *float64 `json:"x,omitempty"`
	W *float64 `json:"w,omitempty"`
	H *float64 `json:"h,omitempty"`
}

// YValue returns the vertical offset, or 0 when unset.
func (g *GridPlacement) YValue() float64 {
	if g.Y == nil {
		return 0
	}
	return *g.Y
}

// SetY assigns the vertical offset.
func (g *GridPlacement) SetY(y float64) {
	g.Y = &y
}

// EndCol returns the last (inclusive) column the placement occupies.
func (g *GridPlacement) EndCol() int {
	return g.Col + g.Span - 1
}

func (g GridPlacement) clone() *GridPlacement {
	out := g
	if g.Y != nil {
		y := *g.Y
		out.Y = &y
	}
	for _, p := range []struct {
		src *float64
		dst **float64
	}{{g.X, &out.X}, {g.W, &out.W}, {g.H, &out.H}} {
		if p.src != nil {
			v := *p.src
			*p.dst = &v
		}
	}
	return &out
}

// BoxPlacement positions a component with absolute coordinates in the given
// unit. Fields are pointers so the normalizer can detect and fill missing
// values; after normalization all four are non-nil.
type BoxPlacement struct {
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	W    *float64 `json:"w,omitempty"`
	H    *float64 `json:"h,omitempty"`
	Unit string   `json:"unit,omitempty"` // "px" (default) or "in"
}

// Values returns the box coordinates, treating missing fields as zero.
func (b *BoxPlacement) Values() (x, y, w, h float64) {
	deref := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	return deref(b.X), deref(b.Y), deref(b.W), deref(b.H)
}

func (b BoxPlacement) clone() *BoxPlacement {
	out := b
	for _, p := range []struct {
		src *float64
		dst **float64
	}{{b.X, &out.X}, {b.Y, &out.Y}, {b.W, &out.W}, {b.H, &out.H}} {
		if p.src != nil {
			v := *p.src
			*p.dst = &v
		}
	}
	return &out
}

// Float returns a pointer to v. Convenience for building placements.
func Float(v float64) *float64 { return &v }
