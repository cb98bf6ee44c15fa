package deck

// Kind identifies a component variant. The set of kinds is closed: the
// emitter switches exhaustively over these values and rejects anything else
// during normalization.
type Kind string

// Component kinds.
const (
	KindText     Kind = "text"
	KindRichText Kind = "richtext"
	KindImage    Kind = "image"
	KindTable    Kind = "table"
	KindChart    Kind = "chart"
	KindShape    Kind = "shape"
	KindLine     Kind = "line"
	KindGroup    Kind = "group"
)

// Valid reports whether k is one of the closed set of component kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindRichText, KindImage, KindTable, KindChart, KindShape, KindLine, KindGroup:
		return true
	}
	return false
}

// Textual reports whether k carries flowing text whose height can be
// estimated from its font size.
func (k Kind) Textual() bool {
	return k == KindText || k == KindRichText
}

// ColumnLocked reports whether the auto-aligner must never move components
// of this kind to a different column. Images, charts, and tables are often
// placed side by side intentionally, so only vertical pushes are allowed.
func (k Kind) ColumnLocked() bool {
	return k == KindImage || k == KindChart || k == KindTable
}

// Text role names used by the height heuristic and font mapping.
const (
	RoleTitle   = "title"
	RoleHeading = "h2"
	RoleBody    = "body"
	RoleCaption = "caption"
)

// Component is a tagged variant over the component kinds. It carries a
// placement descriptor plus kind-specific payload fields; fields irrelevant
// to the component's kind are left zero.
type Component struct {
	ID   string `json:"id,omitempty"`
	Kind Kind   `json:"type"`

	// Placement: exactly one of Grid or Box after normalization.
	Grid *GridPlacement `json:"grid,omitempty"`
	Box  *BoxPlacement  `json:"box,omitempty"`

	// IgnoreOverlaps bypasses overlap resolution for this component.
	IgnoreOverlaps bool `json:"ignore_overlaps,omitempty"`

	Style *Style `json:"style,omitempty"`
	Alt   string `json:"alt,omitempty"`

	// Text and richtext payloads.
	Value    string `json:"value,omitempty"`
	TextType string `json:"text_type,omitempty"`
	Runs     []Run  `json:"runs,omitempty"`

	// Image payload.
	Src       string `json:"src,omitempty"`
	ObjectFit string `json:"object_fit,omitempty"` // "contain" (default), "cover", "stretch"

	// Table and chart payloads.
	Content      *Content      `json:"content,omitempty"`
	TableStyle   *TableStyle   `json:"table_style,omitempty"`
	TableOptions *TableOptions `json:"table_options,omitempty"`
	ChartOptions *ChartOptions `json:"chart_options,omitempty"`
	ChartStyle   *ChartStyle   `json:"chart_style,omitempty"`
	Fit          string        `json:"fit,omitempty"` // "paginate" when a table exceeds the row threshold

	// Shape payload.
	ShapeType   string   `json:"shape_type,omitempty"`
	Degree      *float64 `json:"degree,omitempty"`
	SetTillEndH bool     `json:"set_till_end_h,omitempty"`
	SetTillEndV bool     `json:"set_till_end_v,omitempty"`

	// Line payload.
	Start *Point `json:"start,omitempty"`
	End   *Point `json:"end,omitempty"`

	// Group payload.
	Children []*Component `json:"children,omitempty"`

	// Extraction scaffolding not meaningful to the renderer; the normalizer
	// strips these and records a warning.
	ZIndex        *int           `json:"z_index,omitempty"`
	ImageMetadata map[string]any `json:"image_metadata,omitempty"`
}

// HasText reports whether a component carries any textual content. Used by
// the overlap exemption rule: later components may overlap an earlier shape
// that carries text, since such shapes sit behind content in paint order.
func (c *Component) HasText() bool {
	return c.Value != "" || c.TextType != "" || len(c.Runs) > 0
}

// Role returns the component's text role, defaulting to body.
func (c *Component) Role() string {
	if c.TextType == "" {
		return RoleBody
	}
	return c.TextType
}

// Run is one styled span inside a richtext component. NewStart begins a new
// paragraph before the run.
type Run struct {
	Text       string  `json:"text"`
	Bold       bool    `json:"bold,omitempty"`
	Underline  bool    `json:"under_line,omitempty"`
	Color      string  `json:"color,omitempty"`
	FontFamily string  `json:"font_family,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	NewStart   bool    `json:"new_start,omitempty"`
}

// Content holds tabular or chart data. Tables use Columns and Rows; charts
// use Categories and Series.
type Content struct {
	Columns    []string `json:"columns,omitempty"`
	Rows       [][]any  `json:"rows,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Series     []Series `json:"series,omitempty"`
}

// Series is one named chart data series.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Style holds per-component visual overrides.
type Style struct {
	Color       string  `json:"color,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	Align       string  `json:"align,omitempty"`  // left, center, right, justify
	VAlign      string  `json:"valign,omitempty"` // top, middle, bottom
	FontFamily  string  `json:"font_family,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
	Bold        *bool   `json:"bold,omitempty"`
	Width       float64 `json:"width,omitempty"` // line stroke width in points
	BorderColor string  `json:"border_color,omitempty"`
	BorderWidth float64 `json:"border_width,omitempty"`
	Direction   string  `json:"direction,omitempty"` // arrow direction
}

// TableStyle holds table color overrides; unset fields fall back to tokens.
type TableStyle struct {
	HeaderFill  string `json:"header_fill,omitempty"`
	HeaderColor string `json:"header_color,omitempty"`
	RowZebra    string `json:"row_zebra,omitempty"`
	BorderColor string `json:"border_color,omitempty"`
}

// TableOptions holds structural table options.
type TableOptions struct {
	ColumnWidths []float64 `json:"column_widths,omitempty"`
}

// ChartOptions holds chart rendering options.
type ChartOptions struct {
	ChartType  string `json:"chartType,omitempty"` // bar, column, line, area, pie, doughnut, stacked_column, stacked_area
	Legend     string `json:"legend,omitempty"`    // none, top, right, bottom, left
	DataLabels *bool  `json:"data_labels,omitempty"`
}

// ShowDataLabels reports whether series values should be labeled.
// Defaults to true when unset.
func (o *ChartOptions) ShowDataLabels() bool {
	return o == nil || o.DataLabels == nil || *o.DataLabels
}

// ChartStyle holds the series color palette.
type ChartStyle struct {
	Palette []string `json:"palette,omitempty"`
}

// Point is a 2D coordinate in the deck's grid unit.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clone returns a deep copy of the component, including children.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	out := *c
	if c.Grid != nil {
		g := *c.Grid
		out.Grid = g.clone()
	}
	if c.Box != nil {
		b := *c.Box
		out.Box = b.clone()
	}
	if c.Style != nil {
		st := *c.Style
		if c.Style.Bold != nil {
			b := *c.Style.Bold
			st.Bold = &b
		}
		out.Style = &st
	}
	if c.Runs != nil {
		out.Runs = make([]Run, len(c.Runs))
		copy(out.Runs, c.Runs)
	}
	if c.Content != nil {
		out.Content = c.Content.clone()
	}
	if c.TableStyle != nil {
		ts := *c.TableStyle
		out.TableStyle = &ts
	}
	if c.TableOptions != nil {
		to := TableOptions{ColumnWidths: append([]float64(nil), c.TableOptions.ColumnWidths...)}
		out.TableOptions = &to
	}
	if c.ChartOptions != nil {
		co := *c.ChartOptions
		if c.ChartOptions.DataLabels != nil {
			dl := *c.ChartOptions.DataLabels
			co.DataLabels = &dl
		}
		out.ChartOptions = &co
	}
	if c.ChartStyle != nil {
		cs := ChartStyle{Palette: append([]string(nil), c.ChartStyle.Palette...)}
		out.ChartStyle = &cs
	}
	if c.Degree != nil {
		d := *c.Degree
		out.Degree = &d
	}
	if c.Start != nil {
		p := *c.Start
		out.Start = &p
	}
	if c.End != nil {
		p := *c.End
		out.End = &p
	}
	if c.Children != nil {
		out.Children = make([]*Component, len(c.Children))
		for i, child := range c.Children {
			out.Children[i] = child.Clone()
		}
	}
	if c.ZIndex != nil {
		z := *c.ZIndex
		out.ZIndex = &z
	}
	if c.ImageMetadata != nil {
		out.ImageMetadata = make(map[string]any, len(c.ImageMetadata))
		for k, v := range c.ImageMetadata {
			out.ImageMetadata[k] = v
		}
	}
	return &out
}

func (ct *Content) clone() *Content {
	out := Content{
		Columns:    append([]string(nil), ct.Columns...),
		Categories: append([]string(nil), ct.Categories...),
	}
	if ct.Rows != nil {
		out.Rows = make([][]any, len(ct.Rows))
		for i, row := range ct.Rows {
			out.Rows[i] = append([]any(nil), row...)
		}
	}
	if ct.Series != nil {
		out.Series = make([]Series, len(ct.Series))
		for i, s := range ct.Series {
			out.Series[i] = Series{Name: s.Name, Values: append([]float64(nil), s.Values...)}
		}
	}
	return &out
}
