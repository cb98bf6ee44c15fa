// Package schema performs structural validation of raw deck JSON against a
// Draft-07 JSON Schema. Violations split into two classes: a missing
// required top-level field is fatal, everything else is advisory and left to
// the normalizer to repair.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/slidesmith/slidesmith/pkg/errors"
)

//go:embed deck.schema.json
var deckSchemaJSON string

// Validator wraps a compiled deck schema.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the built-in deck schema.
func New() (*Validator, error) {
	return compile("deck.schema.json", deckSchemaJSON)
}

// NewFromSource compiles a caller-supplied Draft-07 schema, for deployments
// that maintain their own deck contract.
func NewFromSource(name, source string) (*Validator, error) {
	return compile(name, source)
}

func compile(name, source string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidSchema, "loading schema")
	}
	s, err := compiler.Compile(name)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidSchema, "compiling schema")
	}
	return &Validator{schema: s}, nil
}

// Validate checks raw deck JSON against the schema. Advisory violations are
// returned as strings; a missing required top-level field (deck, tokens, or
// slides) or malformed JSON returns a non-nil error.
func (v *Validator) Validate(data []byte) ([]string, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidDeck, "parsing deck JSON")
	}

	err := v.schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidSchema, "validating deck")
	}

	var advisories []string
	var fatal []string
	for _, leaf := range leaves(verr) {
		msg := fmt.Sprintf("[%s] %s", locator(leaf.InstanceLocation), leaf.Message)
		if leaf.InstanceLocation == "" && strings.Contains(leaf.Message, "missing properties") {
			fatal = append(fatal, msg)
		} else {
			advisories = append(advisories, msg)
		}
	}
	if len(fatal) > 0 {
		return advisories, errors.New(errors.ErrCodeInvalidDeck,
			"schema validation failed: "+strings.Join(fatal, " | "))
	}
	return advisories, nil
}

// leaves flattens the validation error tree to its most specific causes.
func leaves(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var out []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		out = append(out, leaves(cause)...)
	}
	return out
}

func locator(instanceLocation string) string {
	if instanceLocation == "" {
		return "<root>"
	}
	return strings.TrimPrefix(instanceLocation, "/")
}
