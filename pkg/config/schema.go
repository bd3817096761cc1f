package config

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
)

//go:embed schemadata/config_schema.json
var configSchemaJSON []byte

var configSchemaLoader = gojsonschema.NewBytesLoader(configSchemaJSON)

// validateStructure runs the embedded JSON Schema over the raw document,
// the structural pass ahead of the semantic checks in validateSemantics.
func validateStructure(doc RawDoc) *corerrors.ValidationResult {
	result := corerrors.NewValidationResult()

	docLoader := gojsonschema.NewGoLoader(map[string]interface{}(doc))
	schemaResult, err := gojsonschema.Validate(configSchemaLoader, docLoader)
	if err != nil {
		result.AddError(fmt.Errorf("schema validation could not run: %w", err))
		return result
	}
	if !schemaResult.Valid() {
		for _, e := range schemaResult.Errors() {
			result.AddError(fmt.Errorf("%s: %s", e.Field(), e.Description()))
		}
	}
	return result
}
