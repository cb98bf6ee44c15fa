package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/slidesmith/slidesmith/pkg/deck"
	"github.com/slidesmith/slidesmith/pkg/layout"
)

// fakeWriter records every emission call and can fail selected calls.
type fakeWriter struct {
	slides      []SlideInfo
	backgrounds []Background
	textBoxes   []TextBox
	pictures    []Picture
	tables      []Table
	charts      []Chart
	shapes      []Shape
	connectors  []Connector

	failPictures bool
}

func (f *fakeWriter) AddSlide(info SlideInfo) error     { f.slides = append(f.slides, info); return nil }
func (f *fakeWriter) SetBackground(bg Background) error { f.backgrounds = append(f.backgrounds, bg); return nil }
func (f *fakeWriter) AddTextBox(tb TextBox) error       { f.textBoxes = append(f.textBoxes, tb); return nil }
func (f *fakeWriter) AddTable(t Table) error            { f.tables = append(f.tables, t); return nil }
func (f *fakeWriter) AddChart(c Chart) error            { f.charts = append(f.charts, c); return nil }
func (f *fakeWriter) AddShape(s Shape) error            { f.shapes = append(f.shapes, s); return nil }
func (f *fakeWriter) AddConnector(c Connector) error    { f.connectors = append(f.connectors, c); return nil }

func (f *fakeWriter) AddPicture(p Picture) error {
	if f.failPictures {
		return fmt.Errorf("unreachable source %q", p.Src)
	}
	f.pictures = append(f.pictures, p)
	return nil
}

func renderTokens() deck.Tokens {
	return deck.Tokens{
		Color: map[string]string{
			"text": "#111827", "muted": "#6B7280", "bg": "#FFFFFF",
			"brand": "#D04A02",
		},
		Font:    deck.Font{BodyFamily: "Calibri", TitleFamily: "Calibri", BodySize: 18, HeadingSize: 28, TitleSize: 44, MinBodySize: 14},
		Spacing: deck.Spacing{Margin: 48, Gutter: 12},
		Grid:    deck.Grid{Columns: 12, Unit: "px"},
	}
}

func renderDoc(slides ...*deck.Slide) *deck.Document {
	return &deck.Document{
		Meta:   deck.Meta{Title: "Test Deck"},
		Tokens: renderTokens(),
		Slides: slides,
	}
}

func gridAt(col, span int, y, rowH float64) *deck.GridPlacement {
	g := &deck.GridPlacement{Col: col, Span: span, RowH: rowH}
	g.SetY(y)
	return g
}

func TestRender_TextComponent(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{
		{Kind: deck.KindText, TextType: deck.RoleHeading, Value: "Results", Grid: gridAt(1, 12, 48, 90)},
	}})

	stats, err := New().Render(doc, w)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Slides != 1 || stats.Components != 1 || stats.Skipped != 0 {
		t.Errorf("stats = %+v", stats)
	}

	// One content text box plus the page number.
	if len(w.textBoxes) != 2 {
		t.Fatalf("textBoxes = %d, want 2", len(w.textBoxes))
	}
	tb := w.textBoxes[0]
	run := tb.Runs[0]
	if run.Text != "Results" {
		t.Errorf("text = %q", run.Text)
	}
	if run.FontSize != 28 || !run.Bold {
		t.Errorf("heading styling = size %g bold %v, want 28 bold", run.FontSize, run.Bold)
	}
	if run.Color != "#111827" {
		t.Errorf("color = %q, want #111827", run.Color)
	}
	if tb.Frame.Left != layout.FromPixels(48) {
		t.Errorf("frame left = %d, want %d", tb.Frame.Left, layout.FromPixels(48))
	}
}

func TestRender_StyleOverridesAndTokenColors(t *testing.T) {
	w := &fakeWriter{}
	bold := false
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{
		{Kind: deck.KindText, TextType: deck.RoleTitle, Value: "x",
			Style: &deck.Style{Color: "brand", FontSize: 50, Bold: &bold, Align: "center"},
			Grid:  gridAt(1, 12, 48, 120)},
	}})

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	tb := w.textBoxes[0]
	run := tb.Runs[0]
	if run.Color != "#D04A02" {
		t.Errorf("color = %q, want token-resolved #D04A02", run.Color)
	}
	if run.FontSize != 50 || run.Bold {
		t.Errorf("overrides not applied: size %g bold %v", run.FontSize, run.Bold)
	}
	if tb.Align != "center" {
		t.Errorf("align = %q, want center", tb.Align)
	}
}

func TestRender_SynthesizesSlideTitle(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{
		Title: "Agenda",
		Components: []*deck.Component{
			{Kind: deck.KindText, Value: "item", Grid: gridAt(1, 12, 300, 72)},
		},
	})

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Synthesized title, content, page number.
	if len(w.textBoxes) != 3 {
		t.Fatalf("textBoxes = %d, want 3", len(w.textBoxes))
	}
	title := w.textBoxes[0]
	if title.Runs[0].Text != "Agenda" {
		t.Errorf("first box text = %q, want Agenda", title.Runs[0].Text)
	}
	if title.Runs[0].FontSize != 28 {
		t.Errorf("title size = %g, want heading size 28", title.Runs[0].FontSize)
	}
}

func TestRender_SkipsTitleWhenExplicit(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{
		Title: "Agenda",
		Components: []*deck.Component{
			{Kind: deck.KindText, TextType: deck.RoleHeading, Value: "Agenda, annotated", Grid: gridAt(1, 12, 48, 90)},
		},
	})

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Explicit heading at the top suppresses synthesis: content + page number.
	if len(w.textBoxes) != 2 {
		t.Fatalf("textBoxes = %d, want 2", len(w.textBoxes))
	}
	if got := w.textBoxes[0].Runs[0].Text; got != "Agenda, annotated" {
		t.Errorf("first box text = %q", got)
	}
}

func TestRender_TitleOnEmptySlide(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Title: "Closing", Components: []*deck.Component{}})

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(w.textBoxes) != 2 {
		t.Fatalf("textBoxes = %d, want title + page number", len(w.textBoxes))
	}
	if got := w.textBoxes[0].Runs[0].Text; got != "Closing" {
		t.Errorf("title text = %q", got)
	}
}

func TestRender_FlowCursorForMissingY(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{
		{Kind: deck.KindText, Value: "a", Grid: gridAt(1, 12, 48, 72)},
		{Kind: deck.KindText, Value: "b", Grid: &deck.GridPlacement{Col: 1, Span: 12, RowH: 72}},
	}})

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Second block flows below the first: y = 48 + 72 + 12 = 132.
	if got, want := w.textBoxes[1].Frame.Top, layout.FromPixels(132); got != want {
		t.Errorf("second top = %d, want %d", got, want)
	}
	// The input document is untouched.
	if doc.Slides[0].Components[1].Grid.Y != nil {
		t.Error("input component gained a y value")
	}
}

func TestRender_FailedComponentSkipped(t *testing.T) {
	w := &fakeWriter{failPictures: true}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{
		{Kind: deck.KindImage, Src: "http://example.invalid/x.png", Grid: gridAt(1, 6, 48, 200)},
		{Kind: deck.KindText, Value: "still here", Grid: gridAt(7, 6, 48, 72)},
	}})

	stats, err := New().Render(doc, w)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
	if len(w.textBoxes) == 0 || w.textBoxes[0].Runs[0].Text != "still here" {
		t.Error("surviving component not rendered")
	}
}

func TestRender_ImageWithoutSourceSkipped(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{
		{Kind: deck.KindImage, Grid: gridAt(1, 6, 48, 200)},
	}})

	stats, err := New().Render(doc, w)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
	if len(w.pictures) != 0 {
		t.Errorf("pictures = %d, want 0", len(w.pictures))
	}
}

func TestRender_TablePayload(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{
		{
			Kind: deck.KindTable,
			Grid: gridAt(1, 12, 48, 200),
			Content: &deck.Content{
				Columns: []string{"Region", "Revenue"},
				Rows:    [][]any{{"EMEA", 12.5}, {"APAC", nil}},
			},
			TableStyle: &deck.TableStyle{HeaderFill: "brand"},
		},
	}})

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(w.tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(w.tables))
	}
	tbl := w.tables[0]
	if tbl.Rows[0][1] != "12.5" {
		t.Errorf("cell = %q, want stringified 12.5", tbl.Rows[0][1])
	}
	if tbl.Rows[1][1] != "" {
		t.Errorf("nil cell = %q, want empty", tbl.Rows[1][1])
	}
	if tbl.HeaderFill != "#D04A02" {
		t.Errorf("HeaderFill = %q, want resolved #D04A02", tbl.HeaderFill)
	}
}

func TestRender_ChartDefaults(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{
		{
			Kind: deck.KindChart,
			Grid: gridAt(1, 12, 48, 300),
			Content: &deck.Content{
				Categories: []string{"Q1", "Q2"},
				Series:     []deck.Series{{Name: "Revenue", Values: []float64{1, 2}}},
			},
		},
	}})

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	c := w.charts[0]
	if c.Type != ChartColumn {
		t.Errorf("Type = %q, want %q", c.Type, ChartColumn)
	}
	if c.Legend != "right" {
		t.Errorf("Legend = %q, want right", c.Legend)
	}
	if !c.DataLabels {
		t.Error("DataLabels = false, want true")
	}
}

func TestChartTypeFor(t *testing.T) {
	tests := []struct{ in, want string }{
		{"bar", ChartBar},
		{"column", ChartColumn},
		{"pie", ChartPie},
		{"stacked_column", ChartColumnStacked},
		{"sparkline", ChartColumn},
		{"", ChartColumn},
	}
	for _, tt := range tests {
		if got := chartTypeFor(tt.in); got != tt.want {
			t.Errorf("chartTypeFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRender_ShapeSquareAndRotation(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{
		{Kind: deck.KindShape, ShapeType: "square", Grid: gridAt(1, 6, 48, 100),
			Style: &deck.Style{Fill: "brand"}},
		{Kind: deck.KindShape, ShapeType: "arrow", Grid: gridAt(7, 3, 48, 60),
			Style: &deck.Style{Direction: "down"}},
	}})

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	square := w.shapes[0]
	if square.Frame.Width != square.Frame.Height {
		t.Errorf("square frame = %dx%d, want equal sides", square.Frame.Width, square.Frame.Height)
	}
	if square.Fill != "#D04A02" {
		t.Errorf("fill = %q, want resolved #D04A02", square.Fill)
	}

	arrow := w.shapes[1]
	if arrow.Type != ShapeArrowR {
		t.Errorf("arrow type = %q, want %q", arrow.Type, ShapeArrowR)
	}
	if arrow.Rotation != 90 {
		t.Errorf("rotation = %g, want 90", arrow.Rotation)
	}
}

func TestRender_LineDefaults(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{
		{Kind: deck.KindLine, Grid: gridAt(1, 1, 48, 10),
			Start: &deck.Point{X: 100, Y: 200}, End: &deck.Point{X: 400, Y: 200}},
	}})

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	c := w.connectors[0]
	if c.X1 != layout.FromPixels(100) || c.X2 != layout.FromPixels(400) {
		t.Errorf("endpoints = (%d, %d)", c.X1, c.X2)
	}
	if c.Color != "#FFA500" || c.Width != 2 {
		t.Errorf("style = %q/%g, want defaults", c.Color, c.Width)
	}
}

func TestRender_GroupChildren(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{
		{
			Kind: deck.KindGroup,
			Grid: gridAt(1, 12, 48, 300),
			Children: []*deck.Component{
				{Kind: deck.KindShape, ShapeType: "circle", Grid: gridAt(1, 4, 60, 100)},
				{Kind: deck.KindText, Value: "label", Grid: gridAt(5, 4, 60, 72)},
			},
		},
	}})

	stats, err := New().Render(doc, w)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(w.shapes) != 1 || len(w.textBoxes) != 2 { // child text + page number
		t.Errorf("shapes = %d textBoxes = %d", len(w.shapes), len(w.textBoxes))
	}
	// Group plus two children.
	if stats.Components != 3 {
		t.Errorf("Components = %d, want 3", stats.Components)
	}
}

func TestRender_GroupDepthBounded(t *testing.T) {
	leaf := &deck.Component{Kind: deck.KindText, Value: "deep", Grid: gridAt(1, 6, 48, 72)}
	node := leaf
	for i := 0; i < 12; i++ {
		node = &deck.Component{
			Kind:     deck.KindGroup,
			Grid:     gridAt(1, 12, 48, 300),
			Children: []*deck.Component{node},
		}
	}
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{node}})

	stats, err := New().Render(doc, w)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Skipped == 0 {
		t.Error("Skipped = 0, want the over-deep subtree skipped")
	}
	for _, tb := range w.textBoxes {
		if strings.Contains(tb.Runs[0].Text, "deep") {
			t.Error("leaf below the depth bound was rendered")
		}
	}
}

func TestRender_BackgroundWatermarkFurniture(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{
		Background: &deck.Background{Type: "solid", Color: "bg"},
		Components: []*deck.Component{},
	})
	doc.Meta.Header = "Quarterly Review"
	doc.Meta.Watermark = &deck.Watermark{Text: "DRAFT"}

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(w.backgrounds) != 1 || w.backgrounds[0].Color != "#FFFFFF" {
		t.Errorf("backgrounds = %+v, want resolved solid white", w.backgrounds)
	}

	var texts []string
	for _, tb := range w.textBoxes {
		texts = append(texts, tb.Runs[0].Text)
	}
	joined := strings.Join(texts, "|")
	for _, want := range []string{"DRAFT", "Quarterly Review", "1"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %q", want, joined)
		}
	}

	// Watermark defaults: rotated, 120pt.
	wm := w.textBoxes[0]
	if wm.Rotation != -30 || wm.Runs[0].FontSize != 120 {
		t.Errorf("watermark = rotation %g size %g, want -30/120", wm.Rotation, wm.Runs[0].FontSize)
	}
}

func TestRender_SlideNumberingDisabled(t *testing.T) {
	off := false
	w := &fakeWriter{}
	doc := renderDoc(&deck.Slide{Components: []*deck.Component{}})
	doc.Meta.SlideNumbering = &off

	if _, err := New().Render(doc, w); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(w.textBoxes) != 0 {
		t.Errorf("textBoxes = %d, want 0 with numbering off", len(w.textBoxes))
	}
}

func TestRender_MultipleSlides(t *testing.T) {
	w := &fakeWriter{}
	doc := renderDoc(
		&deck.Slide{Components: []*deck.Component{}},
		&deck.Slide{Components: []*deck.Component{}},
		&deck.Slide{Components: []*deck.Component{}},
	)

	stats, err := New().Render(doc, w)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Slides != 3 || len(w.slides) != 3 {
		t.Errorf("slides = %d/%d, want 3", stats.Slides, len(w.slides))
	}
	if w.slides[2].Number != 3 {
		t.Errorf("slide number = %d, want 3", w.slides[2].Number)
	}
}
