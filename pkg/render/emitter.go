package render

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/slidesmith/slidesmith/pkg/deck"
	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/layout"
)

// maxGroupDepth bounds group recursion. Input declaring deeper nesting is
// treated as malformed and the subtree is skipped.
const maxGroupDepth = 8

// Synthesized slide-title geometry, in grid units.
const (
	titleRowH    = 48
	titleAdvance = 60
)

// Option configures an Emitter.
type Option func(*Emitter)

// WithLogger attaches a logger for per-component failures.
func WithLogger(l *log.Logger) Option {
	return func(e *Emitter) { e.log = l }
}

// Emitter renders normalized decks onto a Writer.
type Emitter struct {
	log *log.Logger
}

// New builds an Emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{log: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats summarizes one render pass.
type Stats struct {
	Slides     int `json:"slides"`
	Components int `json:"components"`
	Skipped    int `json:"skipped"`
}

// Render emits every slide of doc to w. The document must already be
// normalized; Render does not repair placements, it only resolves them. A
// component whose emission fails is logged and skipped; Render fails only
// when the writer rejects a structural call such as opening a slide.
func (e *Emitter) Render(doc *deck.Document, w Writer) (*Stats, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDeck, "document is nil")
	}

	canvas := layout.CanvasFor(doc.Meta.SlideSize)
	mapper := layout.NewMapper(doc.Tokens, canvas)
	stats := &Stats{}

	for si, slide := range doc.Slides {
		number := si + 1
		if err := w.AddSlide(SlideInfo{Number: number, Title: slide.Title, Notes: slide.Notes, Canvas: canvas}); err != nil {
			return stats, errors.Wrap(err, errors.ErrCodeRenderFailed, "opening slide %d", number)
		}
		stats.Slides++

		e.emitBackground(slide, doc.Tokens, w, number)
		e.emitWatermark(doc.Meta, canvas, w, number)

		s := &slideEmitter{
			emitter: e,
			tokens:  doc.Tokens,
			mapper:  mapper,
			canvas:  canvas,
			number:  number,
			cursor:  doc.Tokens.Spacing.Margin,
			stats:   stats,
		}
		s.emitTitle(slide)
		for ci, comp := range slide.Components {
			s.emitComponent(w, comp, ci, 0)
		}
		s.flushPending(w)
		e.emitFurniture(doc, mapper, w, number)
	}
	return stats, nil
}

func (e *Emitter) emitBackground(slide *deck.Slide, tokens deck.Tokens, w Writer, number int) {
	bg := slide.Background
	if bg == nil {
		return
	}
	payload := Background{
		Type:    bg.Type,
		Color:   tokens.ResolveColor(bg.Color),
		Opacity: bg.Opacity,
		Src:     bg.Src,
	}
	if err := w.SetBackground(payload); err != nil {
		e.log.Warn("background failed", "slide", number, "err", err)
	}
}

// emitWatermark draws the deck watermark as a rotated centered text box
// behind the slide content.
func (e *Emitter) emitWatermark(meta deck.Meta, canvas layout.Canvas, w Writer, number int) {
	wm := meta.Watermark
	if wm == nil || wm.Text == "" {
		return
	}
	angle := wm.Angle
	if angle == 0 {
		angle = -30
	}
	size := wm.Size
	if size == 0 {
		size = 120
	}
	tb := TextBox{
		Frame: layout.Rect{
			Left:   0,
			Top:    layout.EMU(float64(canvas.Height) * 0.35),
			Width:  canvas.Width,
			Height: canvas.Height,
		},
		Runs:     []TextRun{{Text: wm.Text, FontSize: size, Bold: true, Color: "#808080"}},
		Align:    "center",
		Rotation: angle,
		Alt:      "Watermark",
	}
	if err := w.AddTextBox(tb); err != nil {
		e.log.Warn("watermark failed", "slide", number, "err", err)
	}
}

// emitFurniture draws the deck-level header and the page number. Both sit
// in the margin band outside the content area.
func (e *Emitter) emitFurniture(doc *deck.Document, mapper *layout.Mapper, w Writer, number int) {
	tokens := doc.Tokens
	canvas := mapper.Canvas()
	margin := mapper.Margin()
	fontSize := tokens.Font.MinBodySize
	if fontSize < 10 {
		fontSize = 10
	}
	muted := tokens.Color["muted"]

	if doc.Meta.Header != "" {
		tb := TextBox{
			Frame: layout.Rect{
				Left:   margin,
				Top:    margin / 2,
				Width:  canvas.Width - 2*margin,
				Height: layout.FromPoints(14),
			},
			Runs:  []TextRun{{Text: doc.Meta.Header, FontFamily: tokens.Font.BodyFamily, FontSize: fontSize, Color: muted}},
			Align: "left",
			Alt:   "Header",
		}
		if err := w.AddTextBox(tb); err != nil {
			e.log.Warn("header failed", "slide", number, "err", err)
		}
	}

	if doc.Meta.ShowSlideNumbers() {
		footerTop := canvas.Height - margin + layout.FromPoints(2) - layout.FromPixels(10)
		tb := TextBox{
			Frame: layout.Rect{
				Left:   canvas.Width / 2,
				Top:    footerTop,
				Width:  canvas.Width/2 - margin,
				Height: layout.FromPoints(16),
			},
			Runs:  []TextRun{{Text: fmt.Sprintf("%d", number), FontFamily: tokens.Font.BodyFamily, FontSize: fontSize, Color: muted}},
			Align: "right",
			Alt:   "Page number",
		}
		if err := w.AddTextBox(tb); err != nil {
			e.log.Warn("page number failed", "slide", number, "err", err)
		}
	}
}

// slideEmitter threads the per-slide flow state: the running vertical cursor
// for components without an explicit y, and whether a title was synthesized.
type slideEmitter struct {
	emitter *Emitter
	tokens  deck.Tokens
	mapper  *layout.Mapper
	canvas  layout.Canvas
	number  int
	cursor  float64
	pending *TextBox // synthesized title, emitted with the first writer call
	stats   *Stats
}

// emitTitle synthesizes a heading from the slide title unless the slide
// already leads with its own title or heading component.
func (s *slideEmitter) emitTitle(slide *deck.Slide) {
	if slide.Title == "" || s.hasExplicitTitle(slide) {
		return
	}
	titleComp := &deck.Component{
		Kind:     deck.KindText,
		TextType: deck.RoleHeading,
		Value:    slide.Title,
		Grid:     &deck.GridPlacement{Col: 1, Span: s.tokens.Grid.Columns, RowH: titleRowH},
	}
	titleComp.Grid.SetY(s.cursor)
	tb := s.textBoxFor(titleComp)
	s.pending = &tb
	s.cursor += titleAdvance
}

// hasExplicitTitle reports whether the slide already carries a title-like
// component near the top margin.
func (s *slideEmitter) hasExplicitTitle(slide *deck.Slide) bool {
	for _, c := range slide.Components {
		titleLike := (c.Kind == deck.KindText && (c.TextType == deck.RoleTitle || c.TextType == deck.RoleHeading)) ||
			c.Kind == deck.KindRichText
		if !titleLike || c.Grid == nil {
			continue
		}
		y := s.cursor
		if c.Grid.Y != nil {
			y = *c.Grid.Y
		}
		if y <= s.cursor+10 {
			return true
		}
	}
	return false
}

// flushPending emits the synthesized slide title, if any.
func (s *slideEmitter) flushPending(w Writer) {
	if s.pending == nil {
		return
	}
	tb := *s.pending
	s.pending = nil
	if err := w.AddTextBox(tb); err != nil {
		s.emitter.log.Warn("slide title failed", "slide", s.number, "err", err)
	}
}

func (s *slideEmitter) emitComponent(w Writer, comp *deck.Component, index, depth int) {
	s.flushPending(w)

	// Components that reach the emitter without an explicit y flow below the
	// previous block. The document is not mutated; the placement is copied.
	if comp.Grid != nil && comp.Grid.Y == nil {
		flowed := comp.Clone()
		flowed.Grid.SetY(s.cursor)
		comp = flowed
	}

	s.stats.Components++
	if err := s.dispatch(w, comp, depth); err != nil {
		s.stats.Skipped++
		s.emitter.log.Warn("component skipped",
			"slide", s.number, "component", index, "kind", comp.Kind, "err", err)
	}

	if comp.Grid != nil {
		if next := comp.Grid.YValue() + comp.Grid.RowH + s.tokens.Spacing.Gutter; next > s.cursor {
			s.cursor = next
		}
	}
}

// dispatch is the exhaustive kind switch. The normalizer guarantees only
// valid kinds arrive here; anything else is a programming error surfaced as
// an unsupported-kind failure rather than a silent no-op.
func (s *slideEmitter) dispatch(w Writer, comp *deck.Component, depth int) error {
	switch comp.Kind {
	case deck.KindText:
		return w.AddTextBox(s.textBoxFor(comp))
	case deck.KindRichText:
		return w.AddTextBox(s.richTextBoxFor(comp))
	case deck.KindImage:
		return s.emitImage(w, comp)
	case deck.KindTable:
		return s.emitTable(w, comp)
	case deck.KindChart:
		return s.emitChart(w, comp)
	case deck.KindShape:
		return s.emitShape(w, comp)
	case deck.KindLine:
		return s.emitLine(w, comp)
	case deck.KindGroup:
		return s.emitGroup(w, comp, depth)
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported component kind %q", comp.Kind)
}

// emitGroup renders children depth-first in the parent's coordinate space.
func (s *slideEmitter) emitGroup(w Writer, comp *deck.Component, depth int) error {
	if depth >= maxGroupDepth {
		return errors.New(errors.ErrCodeInvalidDeck,
			"group nesting exceeds depth %d; skipping subtree", maxGroupDepth)
	}
	for i, child := range comp.Children {
		if child.Grid == nil && child.Box == nil {
			s.stats.Skipped++
			s.emitter.log.Warn("group child without placement skipped",
				"slide", s.number, "child", i)
			continue
		}
		s.stats.Components++
		if err := s.dispatch(w, child, depth+1); err != nil {
			s.stats.Skipped++
			s.emitter.log.Warn("group child skipped",
				"slide", s.number, "child", i, "kind", child.Kind, "err", err)
		}
	}
	return nil
}
