// Package contracts checks incoming property payloads against the JSON
// schema shipped with the binary.
package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const propertySchema = "schemas/property.json"

var property = mustCompile(propertySchema)

func mustCompile(name string) *jsonschema.Schema {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("contracts: read %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("contracts: add %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("contracts: compile %s: %v", name, err))
	}
	return schema
}

// SchemaError maps offending fields to messages.
type SchemaError struct {
	Fields map[string]string
}

func (e *SchemaError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return "payload does not match schema: " + strings.Join(keys, ", ")
}

// ValidateProperty checks a raw create/update body. It returns *SchemaError
// for schema violations and a plain error for malformed JSON.
func ValidateProperty(body []byte) error {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}

	err := property.Validate(v)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	fields := make(map[string]string)
	collect(verr, fields)
	return &SchemaError{Fields: fields}
}

var quoted = regexp.MustCompile(`['"]([^'"]+)['"]`)

func collect(e *jsonschema.ValidationError, into map[string]string) {
	if len(e.Causes) > 0 {
		for _, c := range e.Causes {
			collect(c, into)
		}
		return
	}

	if strings.HasSuffix(e.KeywordLocation, "/required") {
		prefix := fieldKey(e.InstanceLocation)
		for _, m := range quoted.FindAllStringSubmatch(e.Message, -1) {
			key := m[1]
			if prefix != "payload" {
				key = prefix + "." + key
			}
			into[key] = "is required"
		}
		return
	}

	key := fieldKey(e.InstanceLocation)
	if _, seen := into[key]; !seen {
		into[key] = e.Message
	}
}

func fieldKey(pointer string) string {
	p := strings.Trim(pointer, "/")
	if p == "" {
		return "payload"
	}
	return strings.ReplaceAll(p, "/", ".")
}
