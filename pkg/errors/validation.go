package errors

import (
	"regexp"
	"strings"
)

// hexColorRegex matches six-digit hex colors like "#1A2B3C".
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateHexColor validates a "#RRGGBB" color string.
func ValidateHexColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q (expected #RRGGBB)", color)
	}
	return nil
}

// IsHexColor reports whether color is a valid "#RRGGBB" string.
func IsHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// ValidateUnit validates a measurement unit name.
// The supported units are "px" (logical pixels at 96 dpi) and "in" (inches).
func ValidateUnit(unit string) error {
	switch unit {
	case "px", "in":
		return nil
	default:
		return New(ErrCodeInvalidUnit, "invalid unit: %q (must be 'px' or 'in')", unit)
	}
}

// ValidateStrategy validates an alignment strategy name.
func ValidateStrategy(strategy string) error {
	switch strategy {
	case "preserve_order", "compact", "balanced":
		return nil
	default:
		return New(ErrCodeInvalidStrategy,
			"invalid strategy: %q (must be 'preserve_order', 'compact', or 'balanced')", strategy)
	}
}

// ValidateOutputPath validates an output file path for safety.
// It rejects empty paths and paths containing null bytes.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidFormat, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidFormat, "output path contains invalid characters")
	}
	return nil
}
