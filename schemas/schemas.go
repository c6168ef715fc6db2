// Package schemas embeds the JSON schemas for goalscan documents.
package schemas

import _ "embed"

// GoalsSchemaJSON is the JSON schema for the goals document.
//
//go:embed goals.schema.json
var GoalsSchemaJSON string
