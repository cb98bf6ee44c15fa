package align

import "github.com/slidesmith/slidesmith/pkg/deck"

// Pair names two components whose rectangles intersect.
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Report summarizes the geometric state of a component set. It is computed
// independently of any placement pass, so callers can use it both to verify
// an alignment and to decide whether alignment is needed at all.
type Report struct {
	OverlapsDetected int     `json:"overlaps_detected"`
	OverlappingPairs []Pair  `json:"overlapping_pairs,omitempty"`
	TotalHeight      float64 `json:"total_height"`
	ColumnUsage      []int   `json:"column_usage"`
	ComponentCount   int     `json:"component_count"`
	IsValid          bool    `json:"is_valid"`
}

// Validate recomputes overlap statistics for the given components. Every
// grid-placed component participates, including those marked
// ignore_overlaps; only box-placed components are invisible to the report.
func (a *Aligner) Validate(components []*deck.Component) Report {
	rects, _ := extractRects(components, true)

	report := Report{
		ColumnUsage:    make([]int, a.columns),
		ComponentCount: len(rects),
	}
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j], a.minGap) {
				report.OverlappingPairs = append(report.OverlappingPairs, Pair{
					A: rects[i].ID,
					B: rects[j].ID,
				})
			}
		}
	}
	report.OverlapsDetected = len(report.OverlappingPairs)
	report.IsValid = report.OverlapsDetected == 0

	for _, r := range rects {
		if r.Bottom() > report.TotalHeight {
			report.TotalHeight = r.Bottom()
		}
		for col := r.Col; col <= r.EndCol(); col++ {
			if col >= 1 && col <= a.columns {
				report.ColumnUsage[col-1]++
			}
		}
	}
	return report
}
