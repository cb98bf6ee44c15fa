package sink

import (
	"encoding/json"

	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/render"
)

// JSONOption configures a JSON sink.
type JSONOption func(*JSON)

// WithJSONCompact disables indentation in the output.
func WithJSONCompact() JSONOption { return func(w *JSON) { w.compact = true } }

// JSON buffers the paint stream and serializes it as one JSON document.
// Elements keep their paint order inside each slide, so a consumer can
// replay the stream without re-running layout.
type JSON struct {
	slides  []*jsonSlide
	compact bool
}

// NewJSON builds a JSON sink.
func NewJSON(opts ...JSONOption) *JSON {
	w := &JSON{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type jsonSlide struct {
	render.SlideInfo
	WidthPx  float64        `json:"width_px"`
	HeightPx float64        `json:"height_px"`
	Elements []*jsonElement `json:"elements"`
}

// jsonElement is a tagged union over the writer payloads. Exactly one
// payload field is set, matching Kind.
type jsonElement struct {
	Kind       string             `json:"kind"`
	Background *render.Background `json:"background,omitempty"`
	TextBox    *render.TextBox    `json:"text_box,omitempty"`
	Picture    *render.Picture    `json:"picture,omitempty"`
	Table      *render.Table      `json:"table,omitempty"`
	Chart      *render.Chart      `json:"chart,omitempty"`
	Shape      *render.Shape      `json:"shape,omitempty"`
	Connector  *render.Connector  `json:"connector,omitempty"`
}

type jsonOutput struct {
	Slides []*jsonSlide `json:"slides"`
}

// AddSlide opens a new slide.
func (w *JSON) AddSlide(info render.SlideInfo) error {
	w.slides = append(w.slides, &jsonSlide{
		SlideInfo: info,
		WidthPx:   info.Canvas.Width.Pixels(),
		HeightPx:  info.Canvas.Height.Pixels(),
		Elements:  []*jsonElement{},
	})
	return nil
}

func (w *JSON) current() (*jsonSlide, error) {
	if len(w.slides) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "no open slide")
	}
	return w.slides[len(w.slides)-1], nil
}

func (w *JSON) append(el *jsonElement) error {
	s, err := w.current()
	if err != nil {
		return err
	}
	s.Elements = append(s.Elements, el)
	return nil
}

func (w *JSON) SetBackground(bg render.Background) error {
	return w.append(&jsonElement{Kind: "background", Background: &bg})
}

func (w *JSON) AddTextBox(tb render.TextBox) error {
	return w.append(&jsonElement{Kind: "text_box", TextBox: &tb})
}

func (w *JSON) AddPicture(p render.Picture) error {
	return w.append(&jsonElement{Kind: "picture", Picture: &p})
}

func (w *JSON) AddTable(t render.Table) error {
	return w.append(&jsonElement{Kind: "table", Table: &t})
}

func (w *JSON) AddChart(c render.Chart) error {
	return w.append(&jsonElement{Kind: "chart", Chart: &c})
}

func (w *JSON) AddShape(s render.Shape) error {
	return w.append(&jsonElement{Kind: "shape", Shape: &s})
}

func (w *JSON) AddConnector(c render.Connector) error {
	return w.append(&jsonElement{Kind: "connector", Connector: &c})
}

// Bytes serializes everything written so far.
func (w *JSON) Bytes() ([]byte, error) {
	out := jsonOutput{Slides: w.slides}
	if out.Slides == nil {
		out.Slides = []*jsonSlide{}
	}
	if w.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
