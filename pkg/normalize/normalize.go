package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/slidesmith/slidesmith/pkg/deck"
	"github.com/slidesmith/slidesmith/pkg/errors"
)

// Placement repair tunables.
const (
	// overlapCanvasWidth approximates the slide width (logical px) for
	// overlap checks. Exact page geometry is the coordinate mapper's job;
	// here only relative positions matter.
	overlapCanvasWidth = 1280

	// pushEpsilon is added on top of the gutter when bumping an overlapping
	// component downward, so the cleared gap exceeds the gutter.
	pushEpsilon = 8

	// maxPushIterations bounds the push-down loop. When the budget runs out
	// the last computed position is accepted, possibly still overlapping.
	maxPushIterations = 100

	// tableRowPaginateThreshold is the row count above which a table is
	// flagged to paginate.
	tableRowPaginateThreshold = 15
)

// Document validates and repairs a deck document. It returns a repaired
// deep copy plus the ordered list of repair warnings. The only fatal
// conditions are a nil document and a missing slide list; every other
// problem is repaired in place and warned about.
func Document(doc *deck.Document) (*deck.Document, []Warning, error) {
	if doc == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidDeck, "document is nil")
	}
	if doc.Slides == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidDeck, "document has no slides list")
	}

	out := doc.Clone()
	var warnings []Warning

	normalizeTokens(&out.Tokens, &warnings)

	n := &normalizer{
		tokens:  out.Tokens,
		columns: out.Tokens.Grid.Columns,
		margin:  out.Tokens.Spacing.Margin,
		gutter:  out.Tokens.Spacing.Gutter,
	}
	if n.gutter < MinGutter {
		n.gutter = MinGutter
	}

	for si, slide := range out.Slides {
		n.normalizeSlide(slide, si, &warnings)
	}
	return out, warnings, nil
}

// normalizer carries the token-derived geometry shared by all slides of one
// document.
type normalizer struct {
	tokens  deck.Tokens
	columns int
	margin  float64
	gutter  float64
}

// bbox is an approximate page-space bounding box used only for overlap
// checks during repair.
type bbox struct {
	left, top, right, bottom float64
}

// overlaps uses strict inequalities: touching edges do not overlap.
func (a bbox) overlaps(b bbox) bool {
	return !(a.right <= b.left || a.left >= b.right || a.bottom <= b.top || a.top >= b.bottom)
}

func (n *normalizer) normalizeSlide(slide *deck.Slide, si int, warnings *[]Warning) {
	whereSlide := fmt.Sprintf("slide[%d]", si)
	if slide.Components == nil {
		warnf(warnings, whereSlide, "no components array found; skipping slide")
		return
	}

	cursor := n.margin
	var placedBoxes []bbox
	var placedComps []*deck.Component

	for ci, comp := range slide.Components {
		where := fmt.Sprintf("%s.components[%d]", whereSlide, ci)

		assignID(comp)
		n.stripScaffolding(comp, where, warnings)
		n.repairKind(comp, where, warnings)

		switch {
		case comp.Grid == nil && comp.Box == nil:
			comp.Grid = &deck.GridPlacement{
				Col:  1,
				Span: n.columns,
				RowH: MinRowHBody,
			}
			comp.Grid.SetY(cursor)
			warnf(warnings, where, "missing grid/box; attached full-width default grid block")
			fallthrough
		case comp.Grid != nil:
			cursor = n.repairGrid(comp, cursor, &placedBoxes, &placedComps, where, warnings)
		default:
			n.repairBox(comp, &placedBoxes, &placedComps, where, warnings)
		}

		n.repairContent(comp, where, warnings)
	}
}

// assignID gives the component and its descendants stable identifiers when
// the input left them out.
func assignID(comp *deck.Component) {
	if comp.ID == "" {
		comp.ID = uuid.NewString()
	}
	for _, child := range comp.Children {
		assignID(child)
	}
}

// footerLeftovers are deck-level extraction leftovers the typed model does
// not carry, in every spelling extractors have produced.
var footerLeftovers = []string{"footer_left", "footer_right", "footerleft", "footerright"}

// DeckScaffolding reports deck-level scaffolding properties present in the
// raw JSON. Decoding into the typed model drops them silently, so callers
// holding the raw bytes prepend these warnings to keep the removal visible.
func DeckScaffolding(raw []byte) []Warning {
	var top struct {
		Deck map[string]json.RawMessage `json:"deck"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil
	}
	var warnings []Warning
	for _, prop := range footerLeftovers {
		if _, ok := top.Deck[prop]; ok {
			warnf(&warnings, "deck", "removed unnecessary property %q", prop)
		}
	}
	return warnings
}

// stripScaffolding removes extraction leftovers that mean nothing to the
// renderer.
func (n *normalizer) stripScaffolding(comp *deck.Component, where string, warnings *[]Warning) {
	if comp.ZIndex != nil {
		comp.ZIndex = nil
		warnf(warnings, where, "removed 'z_index' property")
	}
	if comp.ImageMetadata != nil {
		comp.ImageMetadata = nil
		warnf(warnings, where, "removed 'image_metadata' property")
	}
}

// repairKind coerces unknown component kinds to an empty text block so the
// emitter's exhaustive dispatch never sees an out-of-range value.
func (n *normalizer) repairKind(comp *deck.Component, where string, warnings *[]Warning) {
	if comp.Kind.Valid() {
		return
	}
	warnf(warnings, where, "unknown component type %q; coerced to text", comp.Kind)
	comp.Kind = deck.KindText
	if comp.TextType == "" {
		comp.TextType = deck.RoleBody
	}
}

// repairGrid clamps the placement onto the grid, fills missing heights and
// vertical offsets, resolves overlaps against already-placed components, and
// returns the advanced flow cursor.
func (n *normalizer) repairGrid(comp *deck.Component, cursor float64, placedBoxes *[]bbox, placedComps *[]*deck.Component, where string, warnings *[]Warning) float64 {
	g := comp.Grid

	n.clampColSpan(g, where, warnings)
	n.ensureRowH(comp, where, warnings)
	if g.Y == nil {
		g.SetY(cursor)
	}

	box := n.bboxFromGrid(g)
	if !comp.IgnoreOverlaps {
		bumped := false
		for i := 0; i < maxPushIterations; i++ {
			if !n.blockedBy(box, *placedBoxes, *placedComps) {
				break
			}
			g.SetY(g.YValue() + n.gutter + pushEpsilon)
			box = n.bboxFromGrid(g)
			bumped = true
		}
		if bumped {
			warnf(warnings, where, "adjusted 'y' downward to prevent overlap")
		}
	}

	if next := g.YValue() + g.RowH + n.gutter; next > cursor {
		cursor = next
	}
	*placedBoxes = append(*placedBoxes, box)
	*placedComps = append(*placedComps, comp)
	return cursor
}

// blockedBy reports whether box overlaps any placed component that is not
// exempt. A previously placed shape that carries text is exempt: it sits
// behind later content in paint order, so new components may cover it.
func (n *normalizer) blockedBy(box bbox, placedBoxes []bbox, placedComps []*deck.Component) bool {
	for i, other := range placedBoxes {
		if !box.overlaps(other) {
			continue
		}
		prev := placedComps[i]
		if prev.Kind == deck.KindShape && prev.HasText() {
			continue
		}
		return true
	}
	return false
}

// clampColSpan forces col into [1, columns] and shrinks span so the
// placement stays on the grid.
func (n *normalizer) clampColSpan(g *deck.GridPlacement, where string, warnings *[]Warning) {
	col := g.Col
	if col < 1 {
		col = 1
	}
	span := g.Span
	if span < 1 {
		span = 1
	}
	if col > n.columns {
		warnf(warnings, where, "col %d > columns %d; clamped to %d", col, n.columns, n.columns)
		col = n.columns
	}
	if col+span-1 > n.columns {
		newSpan := n.columns - col + 1
		warnf(warnings, where, "span %d overflows grid; clamped to %d", span, newSpan)
		span = newSpan
	}
	g.Col, g.Span = col, span
}

// ensureRowH estimates a missing row height from the component's text role
// and font size, and bumps heights below the role minimum. Components that
// opted out of overlap handling keep whatever they declared.
func (n *normalizer) ensureRowH(comp *deck.Component, where string, warnings *[]Warning) {
	if comp.IgnoreOverlaps {
		return
	}
	g := comp.Grid
	role := comp.Role()
	if g.RowH <= 0 {
		fontSize := n.tokens.Font.BodySize
		if comp.Style != nil && comp.Style.FontSize > 0 {
			fontSize = comp.Style.FontSize
		}
		g.RowH = estimateBlockHeight(role, fontSize)
		warnf(warnings, where, "row_h missing; set to %gpx for %s", g.RowH, role)
		return
	}
	if min := minRowH(role); g.RowH < min {
		warnf(warnings, where, "row_h %gpx < min %gpx for %s; bumped", g.RowH, min, role)
		g.RowH = min
	}
}

// bboxFromGrid projects a grid placement onto the approximate overlap canvas.
func (n *normalizer) bboxFromGrid(g *deck.GridPlacement) bbox {
	innerW := float64(overlapCanvasWidth) - 2*n.margin
	colW := (innerW - n.gutter*float64(n.columns-1)) / float64(n.columns)

	left := n.margin + float64(g.Col-1)*(colW+n.gutter)
	width := colW*float64(g.Span) + n.gutter*float64(g.Span-1)
	top := g.YValue()
	return bbox{left: left, top: top, right: left + width, bottom: top + g.RowH}
}

// repairBox fills missing box coordinates with safe fallbacks and coerces
// non-positive sizes to a visible minimum.
func (n *normalizer) repairBox(comp *deck.Component, placedBoxes *[]bbox, placedComps *[]*deck.Component, where string, warnings *[]Warning) {
	b := comp.Box
	if b.X == nil {
		warnf(warnings, where, "box.x missing; set to 0 fallback")
		b.X = deck.Float(0)
	}
	if b.Y == nil {
		warnf(warnings, where, "box.y missing; set to 0 fallback")
		b.Y = deck.Float(0)
	}
	if b.W == nil {
		warnf(warnings, where, "box.w missing; set to 10 fallback")
		b.W = deck.Float(10)
	}
	if b.H == nil {
		warnf(warnings, where, "box.h missing; set to 10 fallback")
		b.H = deck.Float(10)
	}
	if *b.W <= 0 || *b.H <= 0 {
		warnf(warnings, where, "box has non-positive size; set to 10x10")
		b.W, b.H = deck.Float(10), deck.Float(10)
	}

	x, y, w, h := b.Values()
	*placedBoxes = append(*placedBoxes, bbox{left: x, top: y, right: x + w, bottom: y + h})
	*placedComps = append(*placedComps, comp)
}
