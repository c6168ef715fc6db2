// Package validation checks goal documents against the embedded JSON schema.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/solarreach/goalscan/schemas"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// goalsSchema is the compiled JSON Schema for the goals document.
var goalsSchema *jsonschema.Schema

func init() {
	goalsSchema = mustCompileSchema(schemas.GoalsSchemaJSON, "goals.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateGoalsBytes validates a raw JSON goals document. It returns one
// message per violation, including duplicate goal ids; nil means valid.
func ValidateGoalsBytes(data []byte) []string {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}
	}
	if errs := validateAgainstSchema(goalsSchema, doc); len(errs) > 0 {
		return errs
	}
	return duplicateIDs(doc)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// duplicateIDs reports ids that appear more than once. The document has
// already passed the schema, so every element is an object with a string id.
func duplicateIDs(doc any) []string {
	items, ok := doc.([]any)
	if !ok {
		return nil
	}
	seen := make(map[string]int, len(items))
	var errs []string
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, _ := obj["id"].(string)
		if first, dup := seen[id]; dup {
			errs = append(errs, fmt.Sprintf("/%d/id: duplicate id %q (first defined at /%d)", i, id, first))
			continue
		}
		seen[id] = i
	}
	return errs
}
