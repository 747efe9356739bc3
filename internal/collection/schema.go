package collection

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/input.schema.json
var schemaFS embed.FS

var inputSchema = mustCompileInputSchema()

func mustCompileInputSchema() *jsonschema.Schema {
	data, err := schemaFS.ReadFile("schemas/input.schema.json")
	if err != nil {
		panic(fmt.Sprintf("collection: embedded schema missing: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("input.schema.json", bytes.NewReader(data)); err != nil {
		panic(fmt.Sprintf("collection: failed to add schema resource: %v", err))
	}
	s, err := c.Compile("input.schema.json")
	if err != nil {
		panic(fmt.Sprintf("collection: failed to compile schema: %v", err))
	}
	return s
}

// ValidateInput checks raw input.json bytes against the collection input
// schema.
func ValidateInput(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if err := inputSchema.Validate(doc); err != nil {
		return err
	}
	return nil
}
