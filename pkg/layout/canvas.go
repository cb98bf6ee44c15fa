package layout

// Canvas is the physical slide surface.
type Canvas struct {
	Width  EMU
	Height EMU
}

// Known slide sizes.
const (
	SlideSize16x9        = "16x9"
	SlideSize4x3         = "4x3"
	SlideSizeA4Landscape = "A4-landscape"
)

// CanvasFor returns the canvas for a named slide size. Unknown names fall
// back to the 16x9 default.
func CanvasFor(size string) Canvas {
	switch size {
	case SlideSize4x3:
		return Canvas{Width: FromInches(10), Height: FromInches(7.5)}
	case SlideSizeA4Landscape:
		return Canvas{Width: FromInches(11.69), Height: FromInches(8.27)}
	default:
		return Canvas{Width: FromInches(13.333), Height: FromInches(7.5)}
	}
}
