package normalize

import "github.com/slidesmith/slidesmith/pkg/deck"

// Minimum recommended row heights (px) by text role.
const (
	MinRowHTitle   = 120
	MinRowHHeading = 90
	MinRowHBody    = 72
	MinRowHCaption = 40

	FallbackMinRowH = 60
)

// assumedLines is the line count assumed when estimating a text block's
// height from its font size.
const assumedLines = 2

// minRowH returns the minimum row height for a text role. Unknown roles get
// the generic fallback.
func minRowH(role string) float64 {
	switch role {
	case deck.RoleTitle:
		return MinRowHTitle
	case deck.RoleHeading:
		return MinRowHHeading
	case deck.RoleBody:
		return MinRowHBody
	case deck.RoleCaption:
		return MinRowHCaption
	}
	return FallbackMinRowH
}

// estimateBlockHeight estimates a text block's height in pixels: line height
// at 1.5x the font size times the assumed line count, floored at the role
// minimum. A zero font size yields the role minimum.
func estimateBlockHeight(role string, fontSize float64) float64 {
	min := minRowH(role)
	if fontSize <= 0 {
		return min
	}
	if est := fontSize * 1.5 * assumedLines; est > min {
		return float64(int(est))
	}
	return min
}
