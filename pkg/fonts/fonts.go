// Package fonts locates TrueType font files for raster rendering.
//
// The PNG sink needs a TTF path to draw proportional text; without one it
// falls back to a fixed bitmap face. Resolve maps the deck's font family
// names to files in the standard system font directories, so decks render
// with their intended typeface wherever the font is installed.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// searchDirs are the standard font locations, checked in order.
var searchDirs = []string{
	"/usr/share/fonts",
	"/usr/local/share/fonts",
	"/Library/Fonts",
	"/System/Library/Fonts",
	"C:\\Windows\\Fonts",
}

// aliases maps common deck font families to the filenames they ship under.
// Families missing a licensed system file fall back to a metric-compatible
// free font.
var aliases = map[string][]string{
	"calibri":         {"calibri.ttf", "Carlito-Regular.ttf"},
	"calibri bold":    {"calibrib.ttf", "Carlito-Bold.ttf"},
	"arial":           {"arial.ttf", "Arial.ttf", "LiberationSans-Regular.ttf"},
	"helvetica":       {"Helvetica.ttf", "LiberationSans-Regular.ttf"},
	"times new roman": {"times.ttf", "LiberationSerif-Regular.ttf"},
	"courier new":     {"cour.ttf", "LiberationMono-Regular.ttf"},
	"dejavu sans":     {"DejaVuSans.ttf"},
}

// Resolve returns the path of a TTF file for the given font family, or
// empty when none is installed. The caller decides whether a missing font
// is an error; the PNG sink treats it as "use the bitmap fallback".
func Resolve(family string) string {
	if family == "" {
		return ""
	}
	key := strings.ToLower(strings.TrimSpace(family))
	candidates := aliases[key]
	candidates = append(candidates, family+".ttf", strings.ReplaceAll(family, " ", "")+".ttf")

	for _, dir := range searchDirs {
		if path := findIn(dir, candidates); path != "" {
			return path
		}
	}
	return ""
}

// findIn walks dir looking for any of the candidate filenames.
func findIn(dir string, candidates []string) string {
	var found string
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		name := d.Name()
		for _, c := range candidates {
			if strings.EqualFold(name, c) {
				found = path
				return filepath.SkipAll
			}
		}
		return nil
	})
	return found
}
