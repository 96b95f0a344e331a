package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

const durationPattern = `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`

// Schema generates the JSON Schema of the configuration file from Config
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:               "koanf",
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(time.Duration(0)) {
				return &jsonschema.Schema{
					Type:        "string",
					Pattern:     durationPattern,
					Description: "Go duration such as 500ms, 10s or 24h",
				}
			}
			return nil
		},
	}

	schema := r.Reflect(&Config{})
	// gojsonschema supports up to draft-07
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.Title = "skycast configuration"

	return json.MarshalIndent(schema, "", "  ")
}

// ValidateWithSchema validates raw config content against the generated schema.
// Every key is optional since defaults fill the gaps.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{Valid: true, Errors: []ValidationError{}}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	data, err := parser.Unmarshal(content)
	if err != nil {
		result.add("syntax", fmt.Sprintf("Invalid syntax: %v", err))
		return result, nil
	}

	schemaJSON, err := Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	validation, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	for _, verr := range validation.Errors() {
		result.add(verr.Field(), verr.Description())
	}

	return result, nil
}
