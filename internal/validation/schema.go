// Package validation compiles configured metadata schemas and applies them to
// keyword metadata payloads. Schemas arrive from host configuration either as
// full JSON Schema documents or as a field-list shorthand.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// markerKeys identify a map as an actual JSON Schema document rather than the
// field-list shorthand.
var markerKeys = []string{"$schema", "type", "properties", "oneOf", "anyOf", "allOf"}

// jsonTypes is the set of primitive type names the shorthand may use.
var jsonTypes = map[string]struct{}{
	"string": {}, "number": {}, "integer": {}, "boolean": {},
	"object": {}, "array": {}, "null": {},
}

// ValidationIssue locates a single schema violation within the payload.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError aggregates every violation found in one payload.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	var b strings.Builder
	for i, issue := range e.Issues {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(issuePointer(issue.Location))
		if issue.Message != "" {
			b.WriteString(": ")
			b.WriteString(issue.Message)
		}
	}
	return b.String()
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// issuePointer renders an instance location as a JSON pointer rooted at "#".
func issuePointer(location string) string {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return "#"
	case strings.HasPrefix(location, "#"):
		return location
	default:
		return "#" + location
	}
}

// Issues extracts the individual violations behind a validation error. Errors
// from other sources collapse into a single location-less issue.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) && schemaErr != nil {
		return flattenIssues(schemaErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ValidateSchema checks that the configured schema compiles, so a broken
// schema fails module construction instead of every later write.
func ValidateSchema(schema map[string]any) error {
	normalized := NormalizeSchema(schema)
	if normalized == nil {
		return nil
	}
	if _, err := compile(normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return nil
}

// ValidatePayload validates keyword metadata against the schema. A nil or
// unrecognized schema skips validation entirely.
func ValidatePayload(schema map[string]any, payload map[string]any) error {
	normalized := NormalizeSchema(schema)
	if normalized == nil {
		return nil
	}
	compiled, err := compile(normalized)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := compiled.Validate(payload); err != nil {
		return &PayloadValidationError{Issues: Issues(err), Cause: err}
	}
	return nil
}

// NormalizeSchema resolves the two accepted schema shapes into a JSON Schema
// document. Real JSON Schema passes through as a deep copy; the shorthand
// `fields: [{name, type, required}]` expands into an object schema that
// rejects unknown keys unless additionalProperties overrides that. Anything
// else means "no schema configured" and returns nil.
func NormalizeSchema(schema map[string]any) map[string]any {
	if len(schema) == 0 {
		return nil
	}
	for _, marker := range markerKeys {
		if _, ok := schema[marker]; ok {
			return copyTree(schema).(map[string]any)
		}
	}
	fields, ok := schema["fields"]
	if !ok {
		return nil
	}
	return expandShorthand(fields, schema["additionalProperties"])
}

// expandShorthand builds an object schema from the field-list form.
func expandShorthand(fields any, additional any) map[string]any {
	properties := map[string]any{}
	var required []string

	for _, spec := range fieldSpecs(fields) {
		name, prop, mandatory := spec.resolve()
		if name == "" {
			continue
		}
		properties[name] = prop
		if mandatory {
			required = append(required, name)
		}
	}
	if len(properties) == 0 {
		return nil
	}

	out := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if allowed, ok := additional.(bool); ok {
		out["additionalProperties"] = allowed
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

// fieldSpec is one entry of the shorthand field list. A bare string names a
// free-form field.
type fieldSpec map[string]any

func fieldSpecs(fields any) []fieldSpec {
	var specs []fieldSpec
	switch typed := fields.(type) {
	case []any:
		for _, entry := range typed {
			switch item := entry.(type) {
			case map[string]any:
				specs = append(specs, fieldSpec(item))
			case string:
				specs = append(specs, fieldSpec{"name": item})
			}
		}
	case []map[string]any:
		for _, entry := range typed {
			specs = append(specs, fieldSpec(entry))
		}
	}
	return specs
}

// resolve produces the property name, its schema fragment, and whether the
// field is required. An embedded `schema` map wins over the `type` shorthand.
func (s fieldSpec) resolve() (string, map[string]any, bool) {
	name, _ := s["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, false
	}

	var prop map[string]any
	if embedded, ok := s["schema"].(map[string]any); ok {
		prop = copyTree(embedded).(map[string]any)
	} else if typeName, ok := s["type"].(string); ok {
		typeName = strings.ToLower(strings.TrimSpace(typeName))
		if _, known := jsonTypes[typeName]; known {
			prop = map[string]any{"type": typeName}
		}
	}
	if prop == nil {
		prop = map[string]any{}
	}

	mandatory, _ := s["required"].(bool)
	return name, prop, mandatory
}

// copyTree deep-copies the nested map/slice structure of a decoded schema so
// normalization never aliases caller-owned configuration.
func copyTree(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, nested := range typed {
			out[key] = copyTree(nested)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, nested := range typed {
			out[i] = copyTree(nested)
		}
		return out
	default:
		return value
	}
}

func compile(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("metadata.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("metadata.json")
}

// flattenIssues walks the cause tree and keeps only the leaves, which carry
// the actionable messages.
func flattenIssues(err *jsonschema.ValidationError) []ValidationIssue {
	issues := []ValidationIssue{}
	stack := []*jsonschema.ValidationError{err}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			continue
		}
		for i := len(node.Causes) - 1; i >= 0; i-- {
			stack = append(stack, node.Causes[i])
		}
	}
	return issues
}
