package normalize

import (
	"github.com/slidesmith/slidesmith/pkg/deck"
	"github.com/slidesmith/slidesmith/pkg/errors"
)

// repairContent applies per-kind content sanity fixes.
func (n *normalizer) repairContent(comp *deck.Component, where string, warnings *[]Warning) {
	switch comp.Kind {
	case deck.KindText:
		n.repairText(comp, where, warnings)
	case deck.KindRichText:
		n.repairRichText(comp, where, warnings)
	case deck.KindTable:
		n.repairTable(comp, where, warnings)
	case deck.KindImage:
		if comp.Src == "" {
			warnf(warnings, where, "image missing 'src'")
		}
	case deck.KindChart:
		n.repairChart(comp, where, warnings)
	case deck.KindShape, deck.KindLine, deck.KindGroup:
		// No content repair; geometry problems surface at render time.
	}
}

func (n *normalizer) repairText(comp *deck.Component, where string, warnings *[]Warning) {
	if comp.Value == "" {
		warnf(warnings, where, "empty text value")
	}
	if comp.TextType == "" {
		comp.TextType = deck.RoleBody
	}
	if comp.Style != nil && comp.Style.Color != "" {
		color := comp.Style.Color
		if !errors.IsHexColor(color) {
			if _, ok := n.tokens.Color[color]; !ok {
				warnf(warnings, where, "style.color %q not hex and not a known token key", color)
			}
		}
	}
}

// repairRichText downgrades a runless richtext block to an empty text block
// rather than dropping it, so component counts stay stable.
func (n *normalizer) repairRichText(comp *deck.Component, where string, warnings *[]Warning) {
	if len(comp.Runs) > 0 {
		return
	}
	warnf(warnings, where, "richtext has no runs; converting to empty body text")
	comp.Kind = deck.KindText
	comp.TextType = deck.RoleBody
	comp.Value = ""
	comp.Runs = nil
}

func (n *normalizer) repairTable(comp *deck.Component, where string, warnings *[]Warning) {
	if comp.Content == nil {
		comp.Content = &deck.Content{}
	}
	if len(comp.Content.Columns) == 0 {
		warnf(warnings, where, "table has no columns; inserting placeholder col")
		comp.Content.Columns = []string{"Column 1"}
	}
	if len(comp.Content.Rows) > tableRowPaginateThreshold && comp.Fit != "paginate" {
		comp.Fit = "paginate"
		warnf(warnings, where, "large table; set fit='paginate'")
	}
}

func (n *normalizer) repairChart(comp *deck.Component, where string, warnings *[]Warning) {
	if comp.Content == nil || len(comp.Content.Categories) == 0 || len(comp.Content.Series) == 0 {
		warnf(warnings, where, "chart missing categories/series")
	}
}
