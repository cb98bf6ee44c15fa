package render

import (
	"github.com/slidesmith/slidesmith/pkg/layout"
)

// Writer is the document backend the emitter drives. Implementations turn
// resolved page-space rectangles plus kind-specific payloads into a physical
// document. Calls arrive in paint order: AddSlide opens a slide, then
// background, watermark, and components follow, then the next AddSlide.
type Writer interface {
	AddSlide(info SlideInfo) error
	SetBackground(bg Background) error
	AddTextBox(tb TextBox) error
	AddPicture(p Picture) error
	AddTable(t Table) error
	AddChart(c Chart) error
	AddShape(s Shape) error
	AddConnector(c Connector) error
}

// SlideInfo opens a new slide.
type SlideInfo struct {
	Number int          `json:"number"`
	Title  string       `json:"title,omitempty"`
	Notes  string       `json:"notes,omitempty"`
	Canvas layout.Canvas `json:"-"`
}

// Background fills the current slide behind all content.
type Background struct {
	Type    string  `json:"type"` // "solid" or "image"
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Src     string  `json:"src,omitempty"`
}

// TextRun is one styled span. Colors are resolved hex values; sizes are
// typographic points.
type TextRun struct {
	Text         string  `json:"text"`
	FontFamily   string  `json:"font_family,omitempty"`
	FontSize     float64 `json:"font_size,omitempty"`
	Bold         bool    `json:"bold,omitempty"`
	Underline    bool    `json:"underline,omitempty"`
	Color        string  `json:"color,omitempty"`
	NewParagraph bool    `json:"new_paragraph,omitempty"`
}

// TextBox places one or more text runs inside a frame.
type TextBox struct {
	Frame    layout.Rect `json:"frame"`
	Runs     []TextRun   `json:"runs"`
	Align    string      `json:"align,omitempty"`  // left, center, right, justify
	VAlign   string      `json:"valign,omitempty"` // top, middle, bottom
	Fill     string      `json:"fill,omitempty"`   // hex background, empty keeps it transparent
	Rotation float64     `json:"rotation,omitempty"`
	Alt      string      `json:"alt,omitempty"`
}

// Picture places an image. Src may be a local path or a URL; fetching bytes
// is the writer's concern.
type Picture struct {
	Frame     layout.Rect `json:"frame"`
	Src       string      `json:"src"`
	ObjectFit string      `json:"object_fit"` // contain, cover, stretch
	Alt       string      `json:"alt,omitempty"`
}

// Table places a header row plus body rows. Cell values are already
// stringified; style colors are resolved hex values or empty.
type Table struct {
	Frame        layout.Rect  `json:"frame"`
	Columns      []string     `json:"columns"`
	Rows         [][]string   `json:"rows"`
	ColumnWidths []layout.EMU `json:"column_widths,omitempty"`
	HeaderFill   string       `json:"header_fill,omitempty"`
	HeaderColor  string       `json:"header_color,omitempty"`
	ZebraFill    string       `json:"zebra_fill,omitempty"`
	BorderColor  string       `json:"border_color,omitempty"`
	FontFamily   string       `json:"font_family,omitempty"`
	Paginate     bool         `json:"paginate,omitempty"`
	Alt          string       `json:"alt,omitempty"`
}

// ChartSeries is one named data series.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Chart places a chart. Type is one of the ChartType constants.
type Chart struct {
	Frame      layout.Rect   `json:"frame"`
	Type       string        `json:"type"`
	Categories []string      `json:"categories"`
	Series     []ChartSeries `json:"series"`
	Legend     string        `json:"legend,omitempty"` // empty means no legend
	DataLabels bool          `json:"data_labels,omitempty"`
	Palette    []string      `json:"palette,omitempty"`
	Alt        string        `json:"alt,omitempty"`
}

// Shape places a geometric shape. Type is one of the ShapeType constants;
// Rotation is clockwise degrees.
type Shape struct {
	Frame       layout.Rect `json:"frame"`
	Type        string      `json:"type"`
	Fill        string      `json:"fill,omitempty"`
	BorderColor string      `json:"border_color,omitempty"`
	BorderWidth float64     `json:"border_width,omitempty"` // points
	Rotation    float64     `json:"rotation,omitempty"`
	Alt         string      `json:"alt,omitempty"`
}

// Connector places a straight line between two absolute points.
type Connector struct {
	X1    layout.EMU `json:"x1"`
	Y1    layout.EMU `json:"y1"`
	X2    layout.EMU `json:"x2"`
	Y2    layout.EMU `json:"y2"`
	Color string     `json:"color,omitempty"`
	Width float64    `json:"width,omitempty"` // points
}

// Chart types understood by writers.
const (
	ChartBar           = "bar_clustered"
	ChartColumn        = "column_clustered"
	ChartLine          = "line"
	ChartArea          = "area"
	ChartPie           = "pie"
	ChartDoughnut      = "doughnut"
	ChartColumnStacked = "column_stacked"
	ChartAreaStacked   = "area_stacked"
)

// chartTypeFor maps deck chart type names onto writer chart types. Unknown
// names fall back to clustered columns.
func chartTypeFor(name string) string {
	switch name {
	case "bar":
		return ChartBar
	case "column":
		return ChartColumn
	case "line":
		return ChartLine
	case "area":
		return ChartArea
	case "pie":
		return ChartPie
	case "doughnut":
		return ChartDoughnut
	case "stacked_column":
		return ChartColumnStacked
	case "stacked_area":
		return ChartAreaStacked
	}
	return ChartColumn
}

// Shape types understood by writers.
const (
	ShapeRectangle = "rectangle"
	ShapeOval      = "oval"
	ShapeTriangle  = "isosceles_triangle"
	ShapeArrowR    = "right_arrow"
	ShapeArrowL    = "left_arrow"
	ShapeArrowU    = "up_arrow"
	ShapeArrowD    = "down_arrow"
)

// shapeTypeFor maps deck shape names onto writer shape types. Unknown names
// fall back to a rectangle.
func shapeTypeFor(name string) string {
	switch name {
	case "circle":
		return ShapeOval
	case "rectangle", "square":
		return ShapeRectangle
	case "arrow", "right_arrow":
		return ShapeArrowR
	case "left_arrow":
		return ShapeArrowL
	case "up_arrow":
		return ShapeArrowU
	case "down_arrow":
		return ShapeArrowD
	case "triangle":
		return ShapeTriangle
	}
	return ShapeRectangle
}
