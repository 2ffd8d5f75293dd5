// Package schema compiles JSON Schemas and validates Go values against them.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Violation is one failed schema rule.
type Violation struct {
	// Location is a JSON pointer into the instance, e.g. "/presenter/variant".
	Location string
	Message  string
}

// Error lists every violation found in one instance.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, fmt.Sprintf("- %s: %s", v.Location, v.Message))
	}
	return "schema validation failed:\n" + strings.Join(lines, "\n")
}

// Validator checks values against one compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schemaData, registered under url.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, bytes.NewReader(schemaData)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", url, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", url, err)
	}
	return &Validator{schema: s}, nil
}

// Validate round-trips data through JSON and checks the result. Schema
// failures are returned as *Error.
func (v *Validator) Validate(data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode instance: %w", err)
	}
	var instance interface{}
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("decode instance: %w", err)
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	out := &Error{}
	walk(verr, func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out.Violations = append(out.Violations, Violation{Location: loc, Message: e.Message})
		}
	})
	return out
}

func walk(e *jsonschema.ValidationError, fn func(*jsonschema.ValidationError)) {
	fn(e)
	for _, c := range e.Causes {
		walk(c, fn)
	}
}
