package sink

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/fogleman/gg"

	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/render"
)

// Fetcher resolves an image source, local path or URL, to its bytes.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// PNGOption configures a PNG sink.
type PNGOption func(*PNG)

// WithPNGScale sets the raster scale factor (default 1.0; use 2.0 for 2x).
func WithPNGScale(s float64) PNGOption {
	return func(w *PNG) {
		if s > 0 {
			w.scale = s
		}
	}
}

// WithPNGFont sets a TrueType font file used for all text. Without it the
// built-in bitmap face is used, which ignores font size and family.
func WithPNGFont(path string) PNGOption { return func(w *PNG) { w.fontPath = path } }

// WithPNGFetcher sets the resolver for image sources. ctx bounds every fetch
// issued during the render. Without a fetcher only local paths are drawn and
// remote images fall back to the placeholder.
func WithPNGFetcher(ctx context.Context, f Fetcher) PNGOption {
	return func(w *PNG) {
		w.fetchCtx = ctx
		w.fetcher = f
	}
}

// PNG rasterizes the paint stream with fogleman/gg, producing one PNG image
// per slide.
type PNG struct {
	scale    float64
	fontPath string
	fetcher  Fetcher
	fetchCtx context.Context
	slides   []*gg.Context
}

// NewPNG builds a PNG sink.
func NewPNG(opts ...PNGOption) *PNG {
	w := &PNG{scale: 1.0}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddSlide opens a new raster context filled white.
func (w *PNG) AddSlide(info render.SlideInfo) error {
	width := int(info.Canvas.Width.Pixels() * w.scale)
	height := int(info.Canvas.Height.Pixels() * w.scale)
	if width <= 0 || height <= 0 {
		return errors.New(errors.ErrCodeRenderFailed, "slide %d has a degenerate canvas %dx%d", info.Number, width, height)
	}
	dc := gg.NewContext(width, height)
	dc.Scale(w.scale, w.scale)
	dc.SetHexColor("#FFFFFF")
	dc.Clear()
	w.slides = append(w.slides, dc)
	return nil
}

func (w *PNG) current() (*gg.Context, error) {
	if len(w.slides) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "no open slide")
	}
	return w.slides[len(w.slides)-1], nil
}

// setFont loads the configured face at the given point size. Point sizes map
// to pixels at 96 dpi. Load failures keep the current face.
func (w *PNG) setFont(dc *gg.Context, size float64) {
	if w.fontPath == "" {
		return
	}
	_ = dc.LoadFontFace(w.fontPath, size*96/72)
}

func setColor(dc *gg.Context, hex, fallback string) {
	if hex == "" {
		hex = fallback
	}
	dc.SetHexColor(hex)
}

func (w *PNG) SetBackground(bg render.Background) error {
	dc, err := w.current()
	if err != nil {
		return err
	}
	if bg.Type == "image" && bg.Src != "" {
		im, err := w.loadImage(bg.Src)
		if err != nil {
			return err
		}
		return w.drawFitted(dc, im, 0, 0, float64(dc.Width())/w.scale, float64(dc.Height())/w.scale, "cover")
	}
	if bg.Color != "" {
		dc.SetHexColor(bg.Color)
		dc.Clear()
	}
	return nil
}

func (w *PNG) AddTextBox(tb render.TextBox) error {
	dc, err := w.current()
	if err != nil {
		return err
	}
	left, top := tb.Frame.Left.Pixels(), tb.Frame.Top.Pixels()
	width, height := tb.Frame.Width.Pixels(), tb.Frame.Height.Pixels()

	if tb.Fill != "" {
		dc.SetHexColor(tb.Fill)
		dc.DrawRectangle(left, top, width, height)
		dc.Fill()
	}

	align := gg.AlignLeft
	switch tb.Align {
	case "center":
		align = gg.AlignCenter
	case "right":
		align = gg.AlignRight
	}

	dc.Push()
	if tb.Rotation != 0 {
		dc.RotateAbout(gg.Radians(tb.Rotation), left+width/2, top+height/2)
	}

	// One wrapped block per paragraph; a paragraph's style follows its
	// first run.
	y := top
	start := 0
	for start < len(tb.Runs) {
		end := start + 1
		for end < len(tb.Runs) && !tb.Runs[end].NewParagraph {
			end++
		}
		lead := tb.Runs[start]
		var parts []string
		for _, r := range tb.Runs[start:end] {
			parts = append(parts, r.Text)
		}
		text := strings.Join(parts, "")

		w.setFont(dc, lead.FontSize)
		setColor(dc, lead.Color, "#111827")
		dc.DrawStringWrapped(text, left, y, 0, 0, width, 1.3, align)

		lineH := lead.FontSize * 96 / 72 * 1.3
		if lineH <= 0 {
			lineH = 16
		}
		y += lineH
		start = end
	}
	dc.Pop()
	return nil
}

func (w *PNG) AddPicture(p render.Picture) error {
	dc, err := w.current()
	if err != nil {
		return err
	}
	left, top := p.Frame.Left.Pixels(), p.Frame.Top.Pixels()
	width, height := p.Frame.Width.Pixels(), p.Frame.Height.Pixels()

	if im, err := w.loadImage(p.Src); err == nil {
		return w.drawFitted(dc, im, left, top, width, height, p.ObjectFit)
	}

	// Unresolvable images render as a labeled placeholder so the slide
	// still completes.
	dc.SetHexColor("#E5E7EB")
	dc.DrawRectangle(left, top, width, height)
	dc.Fill()
	dc.SetHexColor("#6B7280")
	dc.SetLineWidth(1)
	dc.DrawRectangle(left, top, width, height)
	dc.Stroke()
	label := p.Alt
	if label == "" {
		label = p.Src
	}
	w.setFont(dc, 12)
	dc.DrawStringWrapped(label, left+width/2, top+height/2, 0.5, 0.5, width-8, 1.2, gg.AlignCenter)
	return nil
}

// loadImage resolves src to a decoded image. With a fetcher configured the
// fetcher handles both local paths and URLs; without one only local paths
// are readable.
func (w *PNG) loadImage(src string) (image.Image, error) {
	if w.fetcher != nil {
		data, err := w.fetcher.Fetch(w.fetchCtx, src)
		if err != nil {
			return nil, err
		}
		im, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "decoding image %q", src)
		}
		return im, nil
	}
	if strings.Contains(src, "://") {
		return nil, errors.New(errors.ErrCodeNetwork, "no fetcher configured for remote image %q", src)
	}
	im, err := gg.LoadImage(src)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFileNotFound, "loading image %q", src)
	}
	return im, nil
}

func (w *PNG) drawFitted(dc *gg.Context, im image.Image, left, top, width, height float64, fit string) error {
	bounds := im.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	if iw == 0 || ih == 0 {
		return errors.New(errors.ErrCodeRenderFailed, "image is empty")
	}

	sx, sy := width/iw, height/ih
	switch fit {
	case "stretch":
	case "cover":
		s := sx
		if sy > s {
			s = sy
		}
		sx, sy = s, s
	default: // contain
		s := sx
		if sy < s {
			s = sy
		}
		sx, sy = s, s
	}

	dc.Push()
	dc.DrawRectangle(left, top, width, height)
	dc.Clip()
	dc.Translate(left+(width-iw*sx)/2, top+(height-ih*sy)/2)
	dc.Scale(sx, sy)
	dc.DrawImage(im, 0, 0)
	dc.Pop()
	dc.ResetClip()
	return nil
}

func (w *PNG) AddTable(t render.Table) error {
	dc, err := w.current()
	if err != nil {
		return err
	}
	left, top := t.Frame.Left.Pixels(), t.Frame.Top.Pixels()
	width := t.Frame.Width.Pixels()
	cols := len(t.Columns)
	if cols == 0 {
		return nil
	}
	colW := width / float64(cols)
	rowH := 24.0
	w.setFont(dc, 12)

	if t.HeaderFill != "" {
		dc.SetHexColor(t.HeaderFill)
		dc.DrawRectangle(left, top, width, rowH)
		dc.Fill()
	}
	setColor(dc, t.HeaderColor, "#111827")
	for j, col := range t.Columns {
		dc.DrawStringAnchored(col, left+float64(j)*colW+4, top+rowH/2, 0, 0.35)
	}
	for i, row := range t.Rows {
		y := top + rowH*float64(i+1)
		if t.ZebraFill != "" && i%2 == 1 {
			dc.SetHexColor(t.ZebraFill)
			dc.DrawRectangle(left, y, width, rowH)
			dc.Fill()
		}
		dc.SetHexColor("#111827")
		for j, cell := range row {
			if j >= cols {
				break
			}
			dc.DrawStringAnchored(cell, left+float64(j)*colW+4, y+rowH/2, 0, 0.35)
		}
	}

	setColor(dc, t.BorderColor, "#CCCCCC")
	dc.SetLineWidth(1)
	totalH := rowH * float64(len(t.Rows)+1)
	for i := 0; i <= len(t.Rows)+1; i++ {
		y := top + rowH*float64(i)
		dc.DrawLine(left, y, left+width, y)
	}
	for j := 0; j <= cols; j++ {
		x := left + colW*float64(j)
		dc.DrawLine(x, top, x, top+totalH)
	}
	dc.Stroke()
	return nil
}

// AddChart previews every chart as clustered columns, matching the SVG sink.
func (w *PNG) AddChart(c render.Chart) error {
	dc, err := w.current()
	if err != nil {
		return err
	}
	left, top := c.Frame.Left.Pixels(), c.Frame.Top.Pixels()
	width, height := c.Frame.Width.Pixels(), c.Frame.Height.Pixels()
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

	dc.SetHexColor("#CCCCCC")
	dc.SetLineWidth(1)
	dc.DrawRectangle(left, top, width, height)
	dc.Stroke()

	nCat, nSer := len(c.Categories), len(c.Series)
	catW := width / float64(nCat)
	barW := catW * 0.8 / float64(nSer)
	w.setFont(dc, 11)

	for ci, cat := range c.Categories {
		catLeft := left + catW*float64(ci) + catW*0.1
		for si, series := range c.Series {
			if ci >= len(series.Values) {
				continue
			}
			v := series.Values[ci]
			barH := plotH * v / maxVal
			dc.SetHexColor(palette[si%len(palette)])
			dc.DrawRectangle(catLeft+barW*float64(si), top+plotH-barH, barW, barH)
			dc.Fill()
		}
		dc.SetHexColor("#111827")
		dc.DrawStringAnchored(cat, left+catW*(float64(ci)+0.5), top+height-labelH/2, 0.5, 0.35)
	}
	return nil
}

func (w *PNG) AddShape(sh render.Shape) error {
	dc, err := w.current()
	if err != nil {
		return err
	}
	left, top := sh.Frame.Left.Pixels(), sh.Frame.Top.Pixels()
	width, height := sh.Frame.Width.Pixels(), sh.Frame.Height.Pixels()
	cx, cy := left+width/2, top+height/2

	rot := sh.Rotation
	switch sh.Type {
	case render.ShapeArrowL:
		rot += 180
	case render.ShapeArrowU:
		rot += 270
	case render.ShapeArrowD:
		rot += 90
	}

	dc.Push()
	if rot != 0 {
		dc.RotateAbout(gg.Radians(rot), cx, cy)
	}

	switch sh.Type {
	case render.ShapeOval:
		dc.DrawEllipse(cx, cy, width/2, height/2)
	case render.ShapeTriangle:
		dc.MoveTo(cx, top)
		dc.LineTo(left, top+height)
		dc.LineTo(left+width, top+height)
		dc.ClosePath()
	case render.ShapeArrowR, render.ShapeArrowL, render.ShapeArrowU, render.ShapeArrowD:
		// Right-pointing arrow; other directions rotate about the center.
		headW := width * 0.35
		dc.MoveTo(left, top+height*0.25)
		dc.LineTo(left+width-headW, top+height*0.25)
		dc.LineTo(left+width-headW, top)
		dc.LineTo(left+width, cy)
		dc.LineTo(left+width-headW, top+height)
		dc.LineTo(left+width-headW, top+height*0.75)
		dc.LineTo(left, top+height*0.75)
		dc.ClosePath()
	default:
		dc.DrawRectangle(left, top, width, height)
	}

	if sh.Fill != "" {
		dc.SetHexColor(sh.Fill)
		if sh.BorderColor != "" {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if sh.BorderColor != "" {
		dc.SetHexColor(sh.BorderColor)
		dc.SetLineWidth(sh.BorderWidth * 96 / 72)
		dc.Stroke()
	}
	dc.Pop()
	return nil
}

func (w *PNG) AddConnector(c render.Connector) error {
	dc, err := w.current()
	if err != nil {
		return err
	}
	setColor(dc, c.Color, "#111827")
	dc.SetLineWidth(c.Width * 96 / 72)
	dc.DrawLine(c.X1.Pixels(), c.Y1.Pixels(), c.X2.Pixels(), c.Y2.Pixels())
	dc.Stroke()
	return nil
}

// Slides encodes and returns one PNG per slide.
func (w *PNG) Slides() ([][]byte, error) {
	out := make([][]byte, len(w.slides))
	for i, dc := range w.slides {
		var buf bytes.Buffer
		if err := dc.EncodePNG(&buf); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "encoding slide %d", i+1)
		}
		out[i] = buf.Bytes()
	}
	return out, nil
}
