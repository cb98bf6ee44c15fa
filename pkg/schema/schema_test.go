package schema

import (
	"strings"
	"testing"
)

const validDeck = `{
	"deck": {"title": "Quarterly Review", "slide_size": "16x9"},
	"tokens": {
		"color": {"text": "#111827"},
		"font": {"body_size": 18},
		"spacing": {"margin": 48, "gutter": 12},
		"grid": {"columns": 12, "unit": "px"}
	},
	"slides": [
		{
			"title": "Agenda",
			"components": [
				{"type": "text", "text_type": "body", "value": "Hello",
				 "grid": {"col": 1, "span": 6, "y": 48, "row_h": 72}}
			]
		}
	]
}`

func TestValidate_ValidDeck(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	advisories, err := v.Validate([]byte(validDeck))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(advisories) != 0 {
		t.Errorf("advisories = %v, want none", advisories)
	}
}

func TestValidate_MissingTopLevelIsFatal(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []string{
		`{"tokens": {}, "slides": []}`,
		`{"deck": {}, "slides": []}`,
		`{"deck": {}, "tokens": {}}`,
		`{}`,
	}
	for _, in := range tests {
		if _, err := v.Validate([]byte(in)); err == nil {
			t.Errorf("Validate(%s) returned nil error, want fatal", in)
		}
	}
}

func TestValidate_AdvisoryViolations(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Bad slide size and a bogus component type are advisory: the top-level
	// structure is intact, so repair is the normalizer's job.
	in := `{
		"deck": {"slide_size": "21x9"},
		"tokens": {},
		"slides": [{"components": [{"type": "sparkline"}]}]
	}`
	advisories, err := v.Validate([]byte(in))
	if err != nil {
		t.Fatalf("Validate() error = %v, want advisory-only", err)
	}
	if len(advisories) == 0 {
		t.Fatal("advisories empty, want enum violations")
	}
	joined := strings.Join(advisories, " | ")
	if !strings.Contains(joined, "slide_size") && !strings.Contains(joined, "value must be one of") {
		t.Errorf("advisories = %v, want enum violation details", advisories)
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := v.Validate([]byte(`{"deck": `)); err == nil {
		t.Error("Validate() with malformed JSON returned nil error")
	}
}

func TestNewFromSource(t *testing.T) {
	src := `{"type": "object", "required": ["deck"]}`
	v, err := NewFromSource("custom.json", src)
	if err != nil {
		t.Fatalf("NewFromSource() error = %v", err)
	}
	if _, err := v.Validate([]byte(`{}`)); err == nil {
		t.Error("Validate() against custom schema returned nil error")
	}
	if _, err := v.Validate([]byte(`{"deck": {}}`)); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}
