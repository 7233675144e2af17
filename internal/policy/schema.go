package policy

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// policySchema is the structural contract for the policy document.
// The reviewers mapping is required (it may be empty); teams and
// overrides are optional and default to empty.
const policySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["reviewers"],
  "additionalProperties": false,
  "properties": {
    "teams": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["members"],
        "additionalProperties": false,
        "properties": {
          "description": {"type": "string"},
          "members": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "reviewers": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "description": {"type": "string"},
          "users": {"type": "array", "items": {"type": "string"}},
          "teams": {"type": "array", "items": {"type": "string"}},
          "requiredApproverCount": {"type": "integer", "minimum": 0}
        }
      }
    },
    "overrides": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "description": {"type": "string"},
          "onlyModifiedByUsers": {"type": "array", "items": {"type": "string"}},
          "onlyModifiedFileRegExs": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

const schemaURL = "https://revgate.schemas.local/policy.schema.json"

// compiledSchema is built once at package init; the schema text is a
// compile-time constant, so a failure here is a programming error.
var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(policySchema)); err != nil {
		panic(err)
	}
	return c.MustCompile(schemaURL)
}

// validateStructure checks a decoded document against the embedded
// schema and converts a violation into a ConfigError.
func validateStructure(doc any) error {
	if err := compiledSchema.Validate(doc); err != nil {
		return &ConfigError{Detail: schemaErrorDetail(err)}
	}
	return nil
}

// schemaErrorDetail flattens a jsonschema validation error into a
// single operator-facing line.
func schemaErrorDetail(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	// Walk to the most specific cause; the leaf names the field.
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return loc + ": " + ve.Message
}
