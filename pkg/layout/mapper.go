package layout

import (
	"github.com/slidesmith/slidesmith/pkg/deck"
)

// Mapper converts grid and box placements into page-space rectangles for a
// fixed canvas and token set. A Mapper is immutable and safe for concurrent
// use.
type Mapper struct {
	canvas  Canvas
	columns int
	unit    string
	margin  EMU
	gutter  EMU
}

// NewMapper builds a Mapper from design tokens and a target canvas.
func NewMapper(tokens deck.Tokens, canvas Canvas) *Mapper {
	unit := tokens.Grid.Unit
	if unit == "" {
		unit = "px"
	}
	return &Mapper{
		canvas:  canvas,
		columns: tokens.Grid.Columns,
		unit:    unit,
		margin:  mustEMU(tokens.Spacing.Margin, unit),
		gutter:  mustEMU(tokens.Spacing.Gutter, unit),
	}
}

// Canvas returns the mapper's target canvas.
func (m *Mapper) Canvas() Canvas { return m.canvas }

// Margin returns the outer margin in EMU.
func (m *Mapper) Margin() EMU { return m.margin }

// Gutter returns the inter-column gutter in EMU.
func (m *Mapper) Gutter() EMU { return m.gutter }

// ColumnWidth returns the width of a single grid column. The canvas interior
// (width minus both margins) is split into columns separated by gutters;
// integer division keeps every derived coordinate exact.
func (m *Mapper) ColumnWidth() EMU {
	inner := m.canvas.Width - 2*m.margin
	return (inner - m.gutter*EMU(m.columns-1)) / EMU(m.columns)
}

// FromGrid maps a grid placement to a page-space rectangle. When
// ignoreOverlaps is set, any literal x/y/w/h on the placement replaces the
// corresponding computed value.
func (m *Mapper) FromGrid(g *deck.GridPlacement, ignoreOverlaps bool) Rect {
	colWidth := m.ColumnWidth()

	colIndex := g.Col - 1
	if colIndex < 0 {
		colIndex = 0
	}

	top := m.margin
	if g.Y != nil {
		top = mustEMU(*g.Y, m.unit)
	}

	r := Rect{
		Left:   m.margin + (colWidth+m.gutter)*EMU(colIndex),
		Top:    top,
		Width:  colWidth*EMU(g.Span) + m.gutter*EMU(g.Span-1),
		Height: mustEMU(g.RowH, m.unit),
	}
	if g.OffsetCm != 0 {
		r.Left += FromCentimeters(g.OffsetCm)
	}

	if ignoreOverlaps {
		if g.X != nil {
			r.Left = mustEMU(*g.X, m.unit)
		}
		if g.W != nil {
			r.Width = mustEMU(*g.W, m.unit)
		}
		if g.H != nil {
			r.Height = mustEMU(*g.H, m.unit)
		}
	}
	return r
}

// FromBox maps a box placement to a page-space rectangle using the box's own
// unit, defaulting to pixels.
func (m *Mapper) FromBox(b *deck.BoxPlacement) Rect {
	x, y, w, h := b.Values()
	return Rect{
		Left:   mustEMU(x, b.Unit),
		Top:    mustEMU(y, b.Unit),
		Width:  mustEMU(w, b.Unit),
		Height: mustEMU(h, b.Unit),
	}
}

// Resolve maps a component's placement, preferring grid over box. Textual
// components additionally have their width clamped to the canvas edge.
func (m *Mapper) Resolve(c *deck.Component) Rect {
	var r Rect
	switch {
	case c.Grid != nil:
		r = m.FromGrid(c.Grid, c.IgnoreOverlaps)
	case c.Box != nil:
		r = m.FromBox(c.Box)
	}
	if c.Kind.Textual() {
		r = m.ClampWidth(r)
	}
	return r
}

// ClampWidth shrinks the rectangle's width so its right edge never passes
// the canvas's right edge.
func (m *Mapper) ClampWidth(r Rect) Rect {
	if maxWidth := m.canvas.Width - r.Left; r.Width > maxWidth {
		r.Width = maxWidth
	}
	return r
}
