package layout

import (
	"fmt"

	"github.com/slidesmith/slidesmith/pkg/errors"
)

// EMU is an English Metric Unit, the integer length unit used by office
// document formats. 914400 EMU make one inch.
type EMU int64

// Conversion factors into EMU.
const (
	EMUPerInch       EMU = 914400
	EMUPerPixel      EMU = 9525 // logical pixels at 96 dpi
	EMUPerPoint      EMU = 12700
	EMUPerCentimeter EMU = 360000
)

// FromPixels converts 96-dpi logical pixels to EMU.
func FromPixels(v float64) EMU { return EMU(v * float64(EMUPerPixel)) }

// FromInches converts inches to EMU.
func FromInches(v float64) EMU { return EMU(v * float64(EMUPerInch)) }

// FromPoints converts typographic points to EMU.
func FromPoints(v float64) EMU { return EMU(v * float64(EMUPerPoint)) }

// FromCentimeters converts centimeters to EMU.
func FromCentimeters(v float64) EMU { return EMU(v * float64(EMUPerCentimeter)) }

// Pixels converts e to 96-dpi logical pixels.
func (e EMU) Pixels() float64 { return float64(e) / float64(EMUPerPixel) }

// Inches converts e to inches.
func (e EMU) Inches() float64 { return float64(e) / float64(EMUPerInch) }

// Points converts e to typographic points.
func (e EMU) Points() float64 { return float64(e) / float64(EMUPerPoint) }

// ToEMU converts a value in the named grid unit ("px" or "in") to EMU.
func ToEMU(v float64, unit string) (EMU, error) {
	switch unit {
	case "px", "":
		return FromPixels(v), nil
	case "in":
		return FromInches(v), nil
	}
	return 0, errors.New(errors.ErrCodeInvalidUnit, "unknown grid unit %q (want px or in)", unit)
}

// mustEMU is ToEMU with unknown units falling back to pixels. Used where the
// unit has already been validated upstream.
func mustEMU(v float64, unit string) EMU {
	e, err := ToEMU(v, unit)
	if err != nil {
		return FromPixels(v)
	}
	return e
}

// Rect is an absolute page-space rectangle.
type Rect struct {
	Left   EMU `json:"left"`
	Top    EMU `json:"top"`
	Width  EMU `json:"width"`
	Height EMU `json:"height"`
}

// Right returns the rectangle's right edge.
func (r Rect) Right() EMU { return r.Left + r.Width }

// Bottom returns the rectangle's bottom edge.
func (r Rect) Bottom() EMU { return r.Top + r.Height }

func (r Rect) String() string {
	return fmt.Sprintf("Rect(left=%d, top=%d, width=%d, height=%d)", r.Left, r.Top, r.Width, r.Height)
}
