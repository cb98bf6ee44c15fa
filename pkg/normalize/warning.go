package normalize

import "fmt"

// Warning records one repair or advisory finding. Where is a path-like
// locator ("slide[2].components[0]"), Message describes what was fixed or
// found.
type Warning struct {
	Where   string `json:"where"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Where, w.Message)
}

// warnf appends a formatted warning to the list.
func warnf(warnings *[]Warning, where, format string, args ...any) {
	*warnings = append(*warnings, Warning{Where: where, Message: fmt.Sprintf(format, args...)})
}

// Strings renders a warning list as plain strings, for logging.
func Strings(warnings []Warning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}
