package config

import (
	"sync"

	"github.com/grovetools/praise/schema"
)

var (
	compiledOnce sync.Once
	compiled     *schema.Validator
	compileErr   error
)

// SchemaValidator validates configuration against the generated JSON Schema.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator returns a validator for the praise.yml schema. The schema
// is generated and compiled once per process.
func NewSchemaValidator() (*SchemaValidator, error) {
	compiledOnce.Do(func() {
		var data []byte
		data, compileErr = GenerateSchema()
		if compileErr != nil {
			return
		}
		compiled, compileErr = schema.NewValidator("praise.json", data)
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return &SchemaValidator{validator: compiled}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}
