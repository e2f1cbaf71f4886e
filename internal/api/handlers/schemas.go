package handlers

import (
	"encoding/json"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/efs/todoapp/internal/service"
)

const userSchemaJSON = `{
	"type": "object",
	"required": ["username", "password"],
	"properties": {
		"username": {"type": "string", "minLength": 1},
		"password": {"type": "string", "minLength": 1}
	}
}`

const taskSchemaJSON = `{
	"type": "object",
	"required": ["description"],
	"properties": {
		"description": {"type": "string", "minLength": 1},
		"due": {"type": "string", "format": "date"}
	}
}`

var (
	userSchema = mustCompile("user.json", userSchemaJSON)
	taskSchema = mustCompile("task.json", taskSchemaJSON)
)

func mustCompile(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(name, strings.NewReader(schema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(name)
}

// validateBody checks a raw JSON body against a compiled schema. Both a
// syntax error and a schema violation are malformed-request outcomes.
func validateBody(schema *jsonschema.Schema, body []byte) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return service.NewError(service.KindMalformed, "parsing body: %v", err)
	}
	if err := schema.Validate(doc); err != nil {
		return service.NewError(service.KindMalformed, "invalid payload: %v", err)
	}
	return nil
}
