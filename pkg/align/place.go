package align

// maxPlaceIterations bounds the placement search so it terminates even under
// pathological input. After the budget is exhausted the last candidate
// position is accepted, possibly still overlapping.
const maxPlaceIterations = 100

// wouldOverlap reports whether test intersects any already-placed rect
// within the minimum gap.
func (a *Aligner) wouldOverlap(test Rect, placed []Rect) bool {
	for _, existing := range placed {
		if test.Overlaps(existing, a.minGap) {
			return true
		}
	}
	return false
}

// maxOverlapBottom returns the lowest clear y below every placed rect that
// shares columns with test, which is the maximum bottom edge among those
// rects plus the gutter. When nothing overlaps horizontally it returns
// test.Y unchanged. The comparison uses the same gutter offset as the
// assignment, so the result does not depend on the order of placed.
func (a *Aligner) maxOverlapBottom(test Rect, placed []Rect) float64 {
	maxBottom := test.Y
	for _, existing := range placed {
		if !test.overlapsHorizontally(existing) {
			continue
		}
		if b := existing.Bottom() + a.gutter; b > maxBottom {
			maxBottom = b
		}
	}
	return maxBottom
}

// place finds a position for rect against the already-placed set: the
// original column at the current y first, then every other valid column at
// the same y, then y pushed below the horizontally-overlapping stack and the
// column search retried. Image, chart, and table components are locked to
// their original column and only ever pushed down.
func (a *Aligner) place(rect Rect, placed []Rect) (int, float64) {
	var candidates []int
	if rect.Kind.ColumnLocked() {
		candidates = []int{rect.Col}
	} else {
		candidates = make([]int, 0, a.columns)
		if rect.Col >= 1 && rect.Col <= a.columns-rect.Span+1 {
			candidates = append(candidates, rect.Col)
		}
		for col := 1; col <= a.columns-rect.Span+1; col++ {
			if col != rect.Col {
				candidates = append(candidates, col)
			}
		}
	}

	y := rect.Y
	for i := 0; i < maxPlaceIterations; i++ {
		for _, col := range candidates {
			test := rect
			test.Col = col
			test.Y = y
			if !a.wouldOverlap(test, placed) {
				return col, y
			}
		}

		preferred := rect.Col
		if preferred < 1 || preferred > a.columns-rect.Span+1 {
			preferred = 1
		}
		probe := rect
		probe.Col = preferred
		probe.Y = y
		next := a.maxOverlapBottom(probe, placed)
		if next <= y {
			next = y + a.gutter
		}
		y = next
	}
	return rect.Col, y
}

// findAvailable is the compact-strategy search: scan columns left to right
// at the rect's own y, then drop below the entire placed set and rescan.
// Falls back to the original position when everything is occupied.
func (a *Aligner) findAvailable(rect Rect, placed []Rect) (int, float64) {
	for col := 1; col <= a.columns-rect.Span+1; col++ {
		test := rect
		test.Col = col
		if !a.wouldOverlap(test, placed) {
			return col, rect.Y
		}
	}

	maxBottom := 0.0
	for _, existing := range placed {
		if existing.Bottom() > maxBottom {
			maxBottom = existing.Bottom()
		}
	}
	y := maxBottom + a.gutter

	test := rect
	test.Y = y
	if !a.wouldOverlap(test, placed) {
		return rect.Col, y
	}
	for col := 1; col <= a.columns-rect.Span+1; col++ {
		test.Col = col
		if !a.wouldOverlap(test, placed) {
			return col, y
		}
	}
	return rect.Col, rect.Y
}
