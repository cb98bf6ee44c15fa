package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/layout"
	"github.com/slidesmith/slidesmith/pkg/render"
)

// SVGOption configures an SVG sink.
type SVGOption func(*SVG)

// WithSVGClass adds a class attribute to each slide's root element.
func WithSVGClass(class string) SVGOption { return func(w *SVG) { w.class = class } }

// SVG buffers the paint stream and produces one standalone SVG document per
// slide. Coordinates are converted from EMU to 96-dpi pixels.
type SVG struct {
	slides []*svgSlide
	class  string
}

type svgSlide struct {
	buf    bytes.Buffer
	canvas layout.Canvas
}

// NewSVG builds an SVG sink.
func NewSVG(opts ...SVGOption) *SVG {
	w := &SVG{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func svgEscape(s string) string { return svgEscaper.Replace(s) }

func px(e layout.EMU) float64 { return e.Pixels() }

// AddSlide opens a new SVG document.
func (w *SVG) AddSlide(info render.SlideInfo) error {
	s := &svgSlide{canvas: info.Canvas}
	width, height := px(info.Canvas.Width), px(info.Canvas.Height)
	class := ""
	if w.class != "" {
		class = fmt.Sprintf(` class=%q`, w.class)
	}
	fmt.Fprintf(&s.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f"%s>`+"\n",
		width, height, width, height, class)
	if info.Title != "" {
		fmt.Fprintf(&s.buf, "  <title>%s</title>\n", svgEscape(info.Title))
	}
	w.slides = append(w.slides, s)
	return nil
}

func (w *SVG) current() (*svgSlide, error) {
	if len(w.slides) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "no open slide")
	}
	return w.slides[len(w.slides)-1], nil
}

func (w *SVG) SetBackground(bg render.Background) error {
	s, err := w.current()
	if err != nil {
		return err
	}
	switch {
	case bg.Type == "image" && bg.Src != "":
		fmt.Fprintf(&s.buf, `  <image href=%q x="0" y="0" width="%.1f" height="%.1f" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			svgEscape(bg.Src), px(s.canvas.Width), px(s.canvas.Height))
	case bg.Color != "":
		opacity := ""
		if bg.Opacity > 0 && bg.Opacity < 1 {
			opacity = fmt.Sprintf(` fill-opacity="%.2f"`, bg.Opacity)
		}
		fmt.Fprintf(&s.buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill=%q%s/>`+"\n",
			px(s.canvas.Width), px(s.canvas.Height), bg.Color, opacity)
	}
	return nil
}

func (w *SVG) AddTextBox(tb render.TextBox) error {
	s, err := w.current()
	if err != nil {
		return err
	}
	left, top := px(tb.Frame.Left), px(tb.Frame.Top)
	width := px(tb.Frame.Width)

	if tb.Fill != "" {
		fmt.Fprintf(&s.buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill=%q/>`+"\n",
			left, top, width, px(tb.Frame.Height), tb.Fill)
	}

	anchor, anchorX := "start", left
	switch tb.Align {
	case "center":
		anchor, anchorX = "middle", left+width/2
	case "right":
		anchor, anchorX = "end", left+width
	}

	transform := ""
	if tb.Rotation != 0 {
		cx := left + width/2
		cy := top + px(tb.Frame.Height)/2
		transform = fmt.Sprintf(` transform="rotate(%.1f %.1f %.1f)"`, tb.Rotation, cx, cy)
	}

	fmt.Fprintf(&s.buf, `  <text x="%.1f" y="%.1f" text-anchor=%q%s>`+"\n", anchorX, top, anchor, transform)
	line := 0
	for i, run := range tb.Runs {
		if i == 0 || run.NewParagraph {
			line++
		}
		weight := ""
		if run.Bold {
			weight = ` font-weight="bold"`
		}
		deco := ""
		if run.Underline {
			deco = ` text-decoration="underline"`
		}
		dy := ""
		if i == 0 || run.NewParagraph {
			dy = fmt.Sprintf(` x="%.1f" dy="%.2fem"`, anchorX, 1.2)
		}
		fmt.Fprintf(&s.buf, `    <tspan font-family=%q font-size="%.1f" fill=%q%s%s%s>%s</tspan>`+"\n",
			run.FontFamily, run.FontSize, run.Color, weight, deco, dy, svgEscape(run.Text))
	}
	s.buf.WriteString("  </text>\n")
	return nil
}

func (w *SVG) AddPicture(p render.Picture) error {
	s, err := w.current()
	if err != nil {
		return err
	}
	aspect := "xMidYMid meet"
	switch p.ObjectFit {
	case "cover":
		aspect = "xMidYMid slice"
	case "stretch":
		aspect = "none"
	}
	fmt.Fprintf(&s.buf, `  <image href=%q x="%.1f" y="%.1f" width="%.1f" height="%.1f" preserveAspectRatio=%q/>`+"\n",
		svgEscape(p.Src), px(p.Frame.Left), px(p.Frame.Top), px(p.Frame.Width), px(p.Frame.Height), aspect)
	return nil
}

func (w *SVG) AddTable(t render.Table) error {
	s, err := w.current()
	if err != nil {
		return err
	}
	left, top := px(t.Frame.Left), px(t.Frame.Top)
	width := px(t.Frame.Width)
	cols := len(t.Columns)
	if cols == 0 {
		return nil
	}
	colW := width / float64(cols)
	rowH := 24.0
	border := t.BorderColor
	if border == "" {
		border = "#CCCCCC"
	}

	if t.HeaderFill != "" {
		fmt.Fprintf(&s.buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill=%q/>`+"\n",
			left, top, width, rowH, t.HeaderFill)
	}
	for j, col := range t.Columns {
		fmt.Fprintf(&s.buf, `  <text x="%.1f" y="%.1f" font-family=%q font-size="12" font-weight="bold" fill=%q>%s</text>`+"\n",
			left+float64(j)*colW+4, top+16, t.FontFamily, t.HeaderColor, svgEscape(col))
	}
	for i, row := range t.Rows {
		y := top + rowH*float64(i+1)
		if t.ZebraFill != "" && i%2 == 1 {
			fmt.Fprintf(&s.buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill=%q/>`+"\n",
				left, y, width, rowH, t.ZebraFill)
		}
		for j, cell := range row {
			if j >= cols {
				break
			}
			fmt.Fprintf(&s.buf, `  <text x="%.1f" y="%.1f" font-family=%q font-size="12">%s</text>`+"\n",
				left+float64(j)*colW+4, y+16, t.FontFamily, svgEscape(cell))
		}
	}
	totalH := rowH * float64(len(t.Rows)+1)
	for i := 0; i <= len(t.Rows)+1; i++ {
		y := top + rowH*float64(i)
		fmt.Fprintf(&s.buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke=%q/>`+"\n",
			left, y, left+width, y, border)
	}
	for j := 0; j <= cols; j++ {
		x := left + colW*float64(j)
		fmt.Fprintf(&s.buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke=%q/>`+"\n",
			x, top, x, top+totalH, border)
	}
	return nil
}

// defaultPalette colors chart series when the deck defines none.
var defaultPalette = []string{"#4472C4", "#ED7D31", "#A5A5A5", "#FFC000", "#5B9BD5", "#70AD47"}

// AddChart previews every chart as clustered columns. Full chart-type
// fidelity belongs to office-format writers; the SVG sink only needs a
// recognizable preview of the data.
func (w *SVG) AddChart(c render.Chart) error {
	s, err := w.current()
	if err != nil {
		return err
	}
	left, top := px(c.Frame.Left), px(c.Frame.Top)
	width, height := px(c.Frame.Width), px(c.Frame.Height)
	labelH := 16.0
	plotH := height - labelH

	maxVal := 0.0
	for _, series := range c.Series {
		for _, v := range series.Values {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	palette := c.Palette
	if len(palette) == 0 {
		palette = defaultPalette
	}

	nCat, nSer := len(c.Categories), len(c.Series)
	catW := width / float64(nCat)
	barW := catW * 0.8 / float64(nSer)

	fmt.Fprintf(&s.buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#CCCCCC"/>`+"\n",
		left, top, width, height)
	for ci, cat := range c.Categories {
		catLeft := left + catW*float64(ci) + catW*0.1
		for si, series := range c.Series {
			if ci >= len(series.Values) {
				continue
			}
			v := series.Values[ci]
			barH := plotH * v / maxVal
			fmt.Fprintf(&s.buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill=%q/>`+"\n",
				catLeft+barW*float64(si), top+plotH-barH, barW, barH, palette[si%len(palette)])
			if c.DataLabels {
				fmt.Fprintf(&s.buf, `  <text x="%.1f" y="%.1f" font-size="10" text-anchor="middle">%g</text>`+"\n",
					catLeft+barW*(float64(si)+0.5), top+plotH-barH-2, v)
			}
		}
		fmt.Fprintf(&s.buf, `  <text x="%.1f" y="%.1f" font-size="11" text-anchor="middle">%s</text>`+"\n",
			left+catW*(float64(ci)+0.5), top+height-3, svgEscape(cat))
	}
	return nil
}

func (w *SVG) AddShape(sh render.Shape) error {
	s, err := w.current()
	if err != nil {
		return err
	}
	left, top := px(sh.Frame.Left), px(sh.Frame.Top)
	width, height := px(sh.Frame.Width), px(sh.Frame.Height)
	cx, cy := left+width/2, top+height/2

	style := fmt.Sprintf(`fill=%q`, orNone(sh.Fill))
	if sh.BorderColor != "" {
		style += fmt.Sprintf(` stroke=%q stroke-width="%.1f"`, sh.BorderColor, sh.BorderWidth)
	}
	transform := ""
	if sh.Rotation != 0 {
		transform = fmt.Sprintf(` transform="rotate(%.1f %.1f %.1f)"`, sh.Rotation, cx, cy)
	}

	switch sh.Type {
	case render.ShapeOval:
		fmt.Fprintf(&s.buf, `  <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" %s%s/>`+"\n",
			cx, cy, width/2, height/2, style, transform)
	case render.ShapeTriangle:
		fmt.Fprintf(&s.buf, `  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" %s%s/>`+"\n",
			cx, top, left, top+height, left+width, top+height, style, transform)
	case render.ShapeArrowR, render.ShapeArrowL, render.ShapeArrowU, render.ShapeArrowD:
		rot := sh.Rotation
		switch sh.Type {
		case render.ShapeArrowL:
			rot += 180
		case render.ShapeArrowU:
			rot += 270
		case render.ShapeArrowD:
			rot += 90
		}
		transform = ""
		if rot != 0 {
			transform = fmt.Sprintf(` transform="rotate(%.1f %.1f %.1f)"`, rot, cx, cy)
		}
		// Right-pointing arrow; other directions rotate about the center.
		headW := width * 0.35
		shaftT := top + height*0.25
		shaftB := top + height*0.75
		fmt.Fprintf(&s.buf, `  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" %s%s/>`+"\n",
			left, shaftT,
			left+width-headW, shaftT,
			left+width-headW, top,
			left+width, cy,
			left+width-headW, top+height,
			left+width-headW, shaftB,
			left, shaftB,
			style, transform)
	default:
		fmt.Fprintf(&s.buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" %s%s/>`+"\n",
			left, top, width, height, style, transform)
	}
	return nil
}

func (w *SVG) AddConnector(c render.Connector) error {
	s, err := w.current()
	if err != nil {
		return err
	}
	// Stroke width converts from points to pixels at 96 dpi.
	fmt.Fprintf(&s.buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke=%q stroke-width="%.1f"/>`+"\n",
		px(c.X1), px(c.Y1), px(c.X2), px(c.Y2), c.Color, c.Width*96/72)
	return nil
}

func orNone(fill string) string {
	if fill == "" {
		return "none"
	}
	return fill
}

// Slides returns one finished SVG document per slide.
func (w *SVG) Slides() [][]byte {
	out := make([][]byte, len(w.slides))
	for i, s := range w.slides {
		doc := make([]byte, s.buf.Len(), s.buf.Len()+7)
		copy(doc, s.buf.Bytes())
		out[i] = append(doc, []byte("</svg>\n")...)
	}
	return out
}
