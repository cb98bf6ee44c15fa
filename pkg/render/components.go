package render

import (
	"fmt"

	"github.com/slidesmith/slidesmith/pkg/deck"
	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/layout"
)

// tokenColor returns a named palette color, or empty when the deck does not
// define it. Unlike ResolveColor it never passes the name through.
func (s *slideEmitter) tokenColor(name string) string {
	return s.tokens.Color[name]
}

// textColor returns the default text color.
func (s *slideEmitter) textColor() string {
	if c := s.tokenColor("text"); c != "" {
		return c
	}
	return "#111827"
}

// fontFamilyFor maps a text role to its token font family.
func (s *slideEmitter) fontFamilyFor(role string) string {
	switch role {
	case deck.RoleTitle, deck.RoleHeading:
		return s.tokens.Font.TitleFamily
	}
	return s.tokens.Font.BodyFamily
}

// fontSizeFor maps a text role to its token font size in points.
func (s *slideEmitter) fontSizeFor(role string) float64 {
	f := s.tokens.Font
	switch role {
	case deck.RoleTitle:
		return f.TitleSize
	case deck.RoleHeading:
		return f.HeadingSize
	case deck.RoleCaption:
		size := float64(int(f.BodySize * 0.8))
		if size < 10 {
			size = 10
		}
		return size
	}
	return f.BodySize
}

// boldFor reports whether a text role defaults to bold.
func boldFor(role string) bool {
	return role == deck.RoleTitle || role == deck.RoleHeading
}

// textBoxFor builds the writer payload for a plain text component: one run
// styled from the role defaults, with per-component style overrides on top.
func (s *slideEmitter) textBoxFor(comp *deck.Component) TextBox {
	role := comp.Role()
	run := TextRun{
		Text:       comp.Value,
		FontFamily: s.fontFamilyFor(role),
		FontSize:   s.fontSizeFor(role),
		Bold:       boldFor(role),
		Color:      s.textColor(),
	}
	tb := TextBox{
		Frame: s.mapper.Resolve(comp),
		Align: "left",
		Alt:   comp.Alt,
	}
	if st := comp.Style; st != nil {
		if st.FontFamily != "" {
			run.FontFamily = st.FontFamily
		}
		if st.FontSize > 0 {
			run.FontSize = st.FontSize
		}
		if st.Bold != nil {
			run.Bold = *st.Bold
		}
		if st.Color != "" {
			run.Color = s.tokens.ResolveColor(st.Color)
		}
		if st.Align != "" {
			tb.Align = st.Align
		}
		tb.VAlign = st.VAlign
		if st.Fill != "" {
			tb.Fill = s.tokens.ResolveColor(st.Fill)
		}
	}
	tb.Runs = []TextRun{run}
	return tb
}

// richTextBoxFor builds the writer payload for a richtext component: one
// writer run per deck run, falling back through run style, component style,
// then tokens.
func (s *slideEmitter) richTextBoxFor(comp *deck.Component) TextBox {
	tb := TextBox{
		Frame: s.mapper.Resolve(comp),
		Align: "left",
		Alt:   comp.Alt,
	}
	baseSize := s.tokens.Font.BodySize
	baseColor := ""
	if st := comp.Style; st != nil {
		if st.FontSize > 0 {
			baseSize = st.FontSize
		}
		baseColor = st.Color
		tb.VAlign = st.VAlign
		if st.Fill != "" {
			tb.Fill = s.tokens.ResolveColor(st.Fill)
		}
	}

	tb.Runs = make([]TextRun, 0, len(comp.Runs))
	for i, r := range comp.Runs {
		run := TextRun{
			Text:         r.Text,
			FontFamily:   s.tokens.Font.BodyFamily,
			FontSize:     baseSize,
			Bold:         r.Bold,
			Underline:    r.Underline,
			NewParagraph: i > 0 && r.NewStart,
		}
		if r.FontFamily != "" {
			run.FontFamily = r.FontFamily
		}
		if r.FontSize > 0 {
			run.FontSize = r.FontSize
		}
		color := r.Color
		if color == "" {
			color = baseColor
		}
		if color == "" {
			run.Color = s.textColor()
		} else {
			run.Color = s.tokens.ResolveColor(color)
		}
		tb.Runs = append(tb.Runs, run)
	}
	return tb
}

func (s *slideEmitter) emitImage(w Writer, comp *deck.Component) error {
	if comp.Src == "" {
		return errors.New(errors.ErrCodeNotFound, "image has no source")
	}
	frame := s.mapper.Resolve(comp)
	if comp.SetTillEndH {
		frame.Width = s.canvas.Width - frame.Left
	}
	if comp.SetTillEndV {
		frame.Height = s.canvas.Height - frame.Top
	}
	fit := comp.ObjectFit
	if fit == "" {
		fit = "contain"
	}
	return w.AddPicture(Picture{Frame: frame, Src: comp.Src, ObjectFit: fit, Alt: comp.Alt})
}

func (s *slideEmitter) emitTable(w Writer, comp *deck.Component) error {
	if comp.Content == nil || len(comp.Content.Columns) == 0 {
		return errors.New(errors.ErrCodeInvalidDeck, "table has no columns")
	}

	rows := make([][]string, len(comp.Content.Rows))
	for i, row := range comp.Content.Rows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			if cell == nil {
				continue
			}
			rows[i][j] = fmt.Sprint(cell)
		}
	}

	t := Table{
		Frame:       s.mapper.Resolve(comp),
		Columns:     comp.Content.Columns,
		Rows:        rows,
		HeaderFill:  s.tokenColor("headerFill"),
		HeaderColor: s.tokenColor("headerFill"),
		ZebraFill:   s.tokenColor("zebra"),
		BorderColor: s.tokenColor("border"),
		FontFamily:  s.tokens.Font.BodyFamily,
		Paginate:    comp.Fit == "paginate",
		Alt:         comp.Alt,
	}
	if ts := comp.TableStyle; ts != nil {
		if ts.HeaderFill != "" {
			t.HeaderFill = s.tokens.ResolveColor(ts.HeaderFill)
		}
		if ts.HeaderColor != "" {
			t.HeaderColor = s.tokens.ResolveColor(ts.HeaderColor)
		}
		if ts.RowZebra != "" {
			t.ZebraFill = s.tokens.ResolveColor(ts.RowZebra)
		}
		if ts.BorderColor != "" {
			t.BorderColor = s.tokens.ResolveColor(ts.BorderColor)
		}
	}
	if to := comp.TableOptions; to != nil && len(to.ColumnWidths) > 0 {
		t.ColumnWidths = make([]layout.EMU, len(to.ColumnWidths))
		for i, wv := range to.ColumnWidths {
			e, err := layout.ToEMU(wv, s.tokens.Grid.Unit)
			if err != nil {
				return err
			}
			t.ColumnWidths[i] = e
		}
	}
	return w.AddTable(t)
}

func (s *slideEmitter) emitChart(w Writer, comp *deck.Component) error {
	if comp.Content == nil || len(comp.Content.Categories) == 0 || len(comp.Content.Series) == 0 {
		return errors.New(errors.ErrCodeInvalidDeck, "chart has no categories or series")
	}

	series := make([]ChartSeries, len(comp.Content.Series))
	for i, sr := range comp.Content.Series {
		series[i] = ChartSeries{Name: sr.Name, Values: sr.Values}
	}

	chartType := ChartColumn
	legend := "right"
	dataLabels := true
	if opts := comp.ChartOptions; opts != nil {
		if opts.ChartType != "" {
			chartType = chartTypeFor(opts.ChartType)
		}
		if opts.Legend != "" {
			legend = opts.Legend
		}
		dataLabels = opts.ShowDataLabels()
	}
	if legend == "none" {
		legend = ""
	}

	var palette []string
	if comp.ChartStyle != nil {
		palette = comp.ChartStyle.Palette
	}

	return w.AddChart(Chart{
		Frame:      s.mapper.Resolve(comp),
		Type:       chartType,
		Categories: comp.Content.Categories,
		Series:     series,
		Legend:     legend,
		DataLabels: dataLabels,
		Palette:    palette,
		Alt:        comp.Alt,
	})
}

func (s *slideEmitter) emitShape(w Writer, comp *deck.Component) error {
	frame := s.mapper.Resolve(comp)

	// Squares use the smaller of the two computed dimensions.
	if comp.ShapeType == "square" {
		size := frame.Width
		if frame.Height < size {
			size = frame.Height
		}
		frame.Width, frame.Height = size, size
	}
	switch {
	case comp.SetTillEndH && comp.SetTillEndV:
		maxW := s.canvas.Width - frame.Left
		maxH := s.canvas.Height - frame.Top
		size := maxW
		if maxH < size {
			size = maxH
		}
		frame.Width, frame.Height = size, size
	case comp.SetTillEndH:
		frame.Width = s.canvas.Width - frame.Left
	case comp.SetTillEndV:
		frame.Height = s.canvas.Height - frame.Top
	}

	sh := Shape{
		Frame: frame,
		Type:  shapeTypeFor(comp.ShapeType),
		Alt:   comp.Alt,
	}
	if st := comp.Style; st != nil {
		if st.Fill != "" {
			sh.Fill = s.tokens.ResolveColor(st.Fill)
		}
		if st.BorderColor != "" && st.BorderWidth > 0 {
			sh.BorderColor = s.tokens.ResolveColor(st.BorderColor)
			sh.BorderWidth = st.BorderWidth
		}
		// Plain arrows rotate by direction; explicit degrees win below.
		if comp.ShapeType == "arrow" {
			switch st.Direction {
			case "up":
				sh.Rotation = 270
			case "down":
				sh.Rotation = 90
			case "left":
				sh.Rotation = 180
			}
		}
	}
	if comp.Degree != nil {
		sh.Rotation = *comp.Degree
	}
	return w.AddShape(sh)
}

func (s *slideEmitter) emitLine(w Writer, comp *deck.Component) error {
	if comp.Start == nil || comp.End == nil {
		return errors.New(errors.ErrCodeInvalidDeck, "line missing start or end point")
	}
	unit := s.tokens.Grid.Unit
	x1, err := layout.ToEMU(comp.Start.X, unit)
	if err != nil {
		return err
	}
	y1, err := layout.ToEMU(comp.Start.Y, unit)
	if err != nil {
		return err
	}
	x2, err := layout.ToEMU(comp.End.X, unit)
	if err != nil {
		return err
	}
	y2, err := layout.ToEMU(comp.End.Y, unit)
	if err != nil {
		return err
	}

	color := "#FFA500"
	width := 2.0
	if st := comp.Style; st != nil {
		if st.Color != "" {
			color = s.tokens.ResolveColor(st.Color)
		}
		if st.Width > 0 {
			width = st.Width
		}
	}
	return w.AddConnector(Connector{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: color, Width: width})
}
