package deck

// Document is the top-level deck document: metadata, design tokens, and an
// ordered list of slides. It mirrors the JSON wire format with exactly three
// required top-level fields.
type Document struct {
	Meta   Meta     `json:"deck"`
	Tokens Tokens   `json:"tokens"`
	Slides []*Slide `json:"slides"`
}

// Meta holds deck-level metadata.
type Meta struct {
	Title          string     `json:"title,omitempty"`
	SlideSize      string     `json:"slide_size,omitempty"` // "16x9" (default), "4x3", "A4-landscape"
	Header         string     `json:"header,omitempty"`
	Watermark      *Watermark `json:"watermark,omitempty"`
	SlideNumbering *bool      `json:"slide_numbering,omitempty"`
}

// ShowSlideNumbers reports whether slide numbers should be emitted.
// Defaults to true when unset.
func (m Meta) ShowSlideNumbers() bool {
	return m.SlideNumbering == nil || *m.SlideNumbering
}

// Watermark describes a diagonal text watermark drawn across each slide.
type Watermark struct {
	Text  string  `json:"text"`
	Angle float64 `json:"angle,omitempty"` // degrees, default -30
	Size  float64 `json:"size,omitempty"`  // font size in points, default 120
}

// Tokens is the shared design configuration: color palette, font roles,
// spacing, and grid geometry.
type Tokens struct {
	Color   map[string]string `json:"color,omitempty"`
	Font    Font              `json:"font"`
	Spacing Spacing           `json:"spacing"`
	Grid    Grid              `json:"grid"`
}

// ResolveColor maps a named color token to its hex value. Unknown names are
// returned unchanged so literal hex values pass through.
func (t Tokens) ResolveColor(name string) string {
	if hex, ok := t.Color[name]; ok {
		return hex
	}
	return name
}

// Font holds the font role configuration.
type Font struct {
	BodyFamily  string  `json:"body_family,omitempty"`
	TitleFamily string  `json:"title_family,omitempty"`
	BodySize    float64 `json:"body_size,omitempty"`
	HeadingSize float64 `json:"h2_size,omitempty"`
	TitleSize   float64 `json:"title_size,omitempty"`
	MinBodySize float64 `json:"min_body_size,omitempty"`
}

// Spacing holds the outer margin and inter-component gutter, in grid units.
type Spacing struct {
	Margin float64 `json:"margin"`
	Gutter float64 `json:"gutter"`
}

// Grid holds the logical column grid configuration.
type Grid struct {
	Columns int    `json:"columns"`
	Unit    string `json:"unit,omitempty"` // "px" (default) or "in"
}

// Slide is one page of the deck: optional title and background, an ordered
// component list, and optional speaker notes.
type Slide struct {
	Title      string       `json:"title,omitempty"`
	Background *Background  `json:"background,omitempty"`
	Components []*Component `json:"components"`
	Notes      string       `json:"notes,omitempty"`
}

// Background describes a slide background: a solid color (token name or hex)
// or a full-bleed image.
type Background struct {
	Type    string  `json:"type"` // "solid" or "image"
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Src     string  `json:"src,omitempty"`
}

// Clone returns a deep copy of the document. The copy shares no mutable
// state with the original, so repair passes can modify it freely.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Meta:   d.Meta,
		Tokens: d.Tokens,
	}
	if d.Meta.Watermark != nil {
		wm := *d.Meta.Watermark
		out.Meta.Watermark = &wm
	}
	if d.Meta.SlideNumbering != nil {
		sn := *d.Meta.SlideNumbering
		out.Meta.SlideNumbering = &sn
	}
	if d.Tokens.Color != nil {
		out.Tokens.Color = make(map[string]string, len(d.Tokens.Color))
		for k, v := range d.Tokens.Color {
			out.Tokens.Color[k] = v
		}
	}
	out.Slides = make([]*Slide, len(d.Slides))
	for i, s := range d.Slides {
		out.Slides[i] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the slide.
func (s *Slide) Clone() *Slide {
	if s == nil {
		return nil
	}
	out := &Slide{
		Title: s.Title,
		Notes: s.Notes,
	}
	if s.Background != nil {
		bg := *s.Background
		out.Background = &bg
	}
	out.Components = make([]*Component, len(s.Components))
	for i, c := range s.Components {
		out.Components[i] = c.Clone()
	}
	return out
}
