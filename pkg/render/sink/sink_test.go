package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/slidesmith/slidesmith/pkg/layout"
	"github.com/slidesmith/slidesmith/pkg/render"
)

var testCanvas = layout.Canvas{
	Width:  layout.FromPixels(1280),
	Height: layout.FromPixels(720),
}

func openSlide(t *testing.T, w render.Writer) {
	t.Helper()
	if err := w.AddSlide(render.SlideInfo{Number: 1, Title: "First", Canvas: testCanvas}); err != nil {
		t.Fatalf("AddSlide() error = %v", err)
	}
}

func sampleTextBox() render.TextBox {
	return render.TextBox{
		Frame: layout.Rect{
			Left:   layout.FromPixels(48),
			Top:    layout.FromPixels(48),
			Width:  layout.FromPixels(600),
			Height: layout.FromPixels(72),
		},
		Runs:  []render.TextRun{{Text: "Hello & <world>", FontFamily: "Calibri", FontSize: 18, Color: "#111827"}},
		Align: "left",
	}
}

func TestJSON_PreservesPaintOrder(t *testing.T) {
	w := NewJSON()
	openSlide(t, w)
	if err := w.SetBackground(render.Background{Type: "solid", Color: "#FFFFFF"}); err != nil {
		t.Fatalf("SetBackground() error = %v", err)
	}
	if err := w.AddTextBox(sampleTextBox()); err != nil {
		t.Fatalf("AddTextBox() error = %v", err)
	}
	if err := w.AddShape(render.Shape{Type: render.ShapeOval, Fill: "#D04A02"}); err != nil {
		t.Fatalf("AddShape() error = %v", err)
	}

	data, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	var out struct {
		Slides []struct {
			Number   int     `json:"number"`
			WidthPx  float64 `json:"width_px"`
			Elements []struct {
				Kind string `json:"kind"`
			} `json:"elements"`
		} `json:"slides"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(out.Slides) != 1 {
		t.Fatalf("slides = %d, want 1", len(out.Slides))
	}
	s := out.Slides[0]
	if s.Number != 1 || s.WidthPx != 1280 {
		t.Errorf("slide header = %+v", s)
	}
	var kinds []string
	for _, el := range s.Elements {
		kinds = append(kinds, el.Kind)
	}
	want := []string{"background", "text_box", "shape"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
}

func TestJSON_ElementBeforeSlideFails(t *testing.T) {
	w := NewJSON()
	if err := w.AddTextBox(sampleTextBox()); err == nil {
		t.Fatal("AddTextBox() before AddSlide succeeded, want error")
	}
}

func TestJSON_EmptyDocument(t *testing.T) {
	data, err := NewJSON().Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out["slides"] == nil {
		t.Error("slides is null, want empty array")
	}
}

func TestJSON_Compact(t *testing.T) {
	w := NewJSON(WithJSONCompact())
	openSlide(t, w)
	data, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if bytes.Contains(data, []byte("\n")) {
		t.Error("compact output contains newlines")
	}
}

func TestSVG_DocumentPerSlide(t *testing.T) {
	w := NewSVG()
	openSlide(t, w)
	if err := w.AddTextBox(sampleTextBox()); err != nil {
		t.Fatalf("AddTextBox() error = %v", err)
	}
	if err := w.AddSlide(render.SlideInfo{Number: 2, Canvas: testCanvas}); err != nil {
		t.Fatalf("AddSlide() error = %v", err)
	}

	slides := w.Slides()
	if len(slides) != 2 {
		t.Fatalf("slides = %d, want 2", len(slides))
	}
	for i, doc := range slides {
		s := string(doc)
		if !strings.HasPrefix(s, "<svg") || !strings.HasSuffix(s, "</svg>\n") {
			t.Errorf("slide %d is not a closed svg document", i)
		}
	}
	first := string(slides[0])
	if !strings.Contains(first, "Hello &amp; &lt;world&gt;") {
		t.Errorf("text not escaped: %s", first)
	}
	if !strings.Contains(first, "<title>First</title>") {
		t.Error("missing slide title element")
	}
}

func TestSVG_ShapesAndConnector(t *testing.T) {
	w := NewSVG()
	openSlide(t, w)
	frame := layout.Rect{
		Left: layout.FromPixels(100), Top: layout.FromPixels(100),
		Width: layout.FromPixels(200), Height: layout.FromPixels(100),
	}
	if err := w.AddShape(render.Shape{Frame: frame, Type: render.ShapeOval, Fill: "#D04A02"}); err != nil {
		t.Fatalf("AddShape() error = %v", err)
	}
	if err := w.AddShape(render.Shape{Frame: frame, Type: render.ShapeArrowD}); err != nil {
		t.Fatalf("AddShape() error = %v", err)
	}
	if err := w.AddConnector(render.Connector{
		X1: layout.FromPixels(0), Y1: layout.FromPixels(0),
		X2: layout.FromPixels(100), Y2: layout.FromPixels(100),
		Color: "#FFA500", Width: 2,
	}); err != nil {
		t.Fatalf("AddConnector() error = %v", err)
	}

	s := string(w.Slides()[0])
	if !strings.Contains(s, "<ellipse") {
		t.Error("missing ellipse")
	}
	if !strings.Contains(s, `rotate(90.0`) {
		t.Error("down arrow not rotated")
	}
	if !strings.Contains(s, `stroke="#FFA500"`) {
		t.Error("connector stroke missing")
	}
}

func TestSVG_ChartBars(t *testing.T) {
	w := NewSVG()
	openSlide(t, w)
	err := w.AddChart(render.Chart{
		Frame: layout.Rect{
			Left: layout.FromPixels(48), Top: layout.FromPixels(48),
			Width: layout.FromPixels(600), Height: layout.FromPixels(300),
		},
		Type:       render.ChartColumn,
		Categories: []string{"Q1", "Q2"},
		Series:     []render.ChartSeries{{Name: "Revenue", Values: []float64{10, 20}}},
		DataLabels: true,
	})
	if err != nil {
		t.Fatalf("AddChart() error = %v", err)
	}
	s := string(w.Slides()[0])
	if strings.Count(s, "<rect") < 3 { // plot border plus two bars
		t.Errorf("expected plot border and bars, got: %s", s)
	}
	if !strings.Contains(s, ">Q1<") || !strings.Contains(s, ">20<") {
		t.Error("missing category or data label")
	}
}

func TestPNG_EncodesSlides(t *testing.T) {
	w := NewPNG()
	openSlide(t, w)
	if err := w.SetBackground(render.Background{Type: "solid", Color: "#FFFFFF"}); err != nil {
		t.Fatalf("SetBackground() error = %v", err)
	}
	if err := w.AddTextBox(sampleTextBox()); err != nil {
		t.Fatalf("AddTextBox() error = %v", err)
	}
	if err := w.AddConnector(render.Connector{
		X1: layout.FromPixels(0), Y1: layout.FromPixels(700),
		X2: layout.FromPixels(1280), Y2: layout.FromPixels(700),
		Color: "#FFA500", Width: 2,
	}); err != nil {
		t.Fatalf("AddConnector() error = %v", err)
	}

	slides, err := w.Slides()
	if err != nil {
		t.Fatalf("Slides() error = %v", err)
	}
	if len(slides) != 1 {
		t.Fatalf("slides = %d, want 1", len(slides))
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(slides[0]))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("dimensions = %dx%d, want 1280x720", cfg.Width, cfg.Height)
	}
}

func TestPNG_ScaleDoublesDimensions(t *testing.T) {
	w := NewPNG(WithPNGScale(2))
	openSlide(t, w)
	slides, err := w.Slides()
	if err != nil {
		t.Fatalf("Slides() error = %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(slides[0]))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if cfg.Width != 2560 || cfg.Height != 1440 {
		t.Errorf("dimensions = %dx%d, want 2560x1440", cfg.Width, cfg.Height)
	}
}

func TestPNG_RemoteImagePlaceholder(t *testing.T) {
	w := NewPNG()
	openSlide(t, w)
	err := w.AddPicture(render.Picture{
		Frame: layout.Rect{
			Left: layout.FromPixels(100), Top: layout.FromPixels(100),
			Width: layout.FromPixels(300), Height: layout.FromPixels(200),
		},
		Src:       "https://example.com/chart.png",
		ObjectFit: "contain",
		Alt:       "Quarterly chart",
	})
	if err != nil {
		t.Fatalf("AddPicture() error = %v", err)
	}
	if _, err := w.Slides(); err != nil {
		t.Fatalf("Slides() error = %v", err)
	}
}

// stubFetcher serves fixed bytes and records the sources it was asked for.
type stubFetcher struct {
	data []byte
	err  error
	srcs []string
}

func (f *stubFetcher) Fetch(_ context.Context, src string) ([]byte, error) {
	f.srcs = append(f.srcs, src)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

// solidPNG encodes a uniformly colored image.
func solidPNG(t *testing.T, c color.RGBA, size int) []byte {
	t.Helper()
	im := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			im.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, im); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestPNG_FetcherDrawsRemoteImage(t *testing.T) {
	red := color.RGBA{R: 0xFF, A: 0xFF}
	fetcher := &stubFetcher{data: solidPNG(t, red, 4)}

	w := NewPNG(WithPNGFetcher(context.Background(), fetcher))
	openSlide(t, w)
	err := w.AddPicture(render.Picture{
		Frame: layout.Rect{
			Left: layout.FromPixels(100), Top: layout.FromPixels(100),
			Width: layout.FromPixels(300), Height: layout.FromPixels(200),
		},
		Src:       "https://example.com/chart.png",
		ObjectFit: "contain",
	})
	if err != nil {
		t.Fatalf("AddPicture() error = %v", err)
	}

	if len(fetcher.srcs) != 1 || fetcher.srcs[0] != "https://example.com/chart.png" {
		t.Fatalf("fetched srcs = %v", fetcher.srcs)
	}

	slides, err := w.Slides()
	if err != nil {
		t.Fatalf("Slides() error = %v", err)
	}
	out, err := png.Decode(bytes.NewReader(slides[0]))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	// Contain-fit centers the square image in the frame; (250, 200) lands
	// inside it.
	r, g, b, _ := out.At(250, 200).RGBA()
	if r>>8 != 0xFF || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("pixel at image center = (%d, %d, %d), want red", r>>8, g>>8, b>>8)
	}
}

func TestPNG_FetcherFailureFallsBackToPlaceholder(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}

	w := NewPNG(WithPNGFetcher(context.Background(), fetcher))
	openSlide(t, w)
	err := w.AddPicture(render.Picture{
		Frame: layout.Rect{
			Left: layout.FromPixels(100), Top: layout.FromPixels(100),
			Width: layout.FromPixels(300), Height: layout.FromPixels(200),
		},
		Src: "https://example.com/missing.png",
		Alt: "Quarterly chart",
	})
	if err != nil {
		t.Fatalf("AddPicture() after failed fetch error = %v, want placeholder", err)
	}
	if _, err := w.Slides(); err != nil {
		t.Fatalf("Slides() error = %v", err)
	}
}

func TestPNG_ElementBeforeSlideFails(t *testing.T) {
	w := NewPNG()
	if err := w.AddShape(render.Shape{Type: render.ShapeRectangle}); err == nil {
		t.Fatal("AddShape() before AddSlide succeeded, want error")
	}
}
