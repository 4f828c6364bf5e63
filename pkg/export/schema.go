package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	invopopjsonschema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/MacroPower/smarttask/pkg/tasks"
)

// SchemaID is the $id of the backup schema.
const SchemaID = "https://github.com/MacroPower/smarttask/schemas/tasks.json"

// Schema reflects the JSON schema of a backup file: an array of tasks.
func Schema() *invopopjsonschema.Schema {
	r := &invopopjsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	item := r.Reflect(&tasks.Task{})
	item.Version = ""
	item.ID = ""

	return &invopopjsonschema.Schema{
		Version:     invopopjsonschema.Version,
		ID:          SchemaID,
		Title:       "SmartTask backup",
		Description: "Tasks exported by smarttask, newest first.",
		Type:        "array",
		Items:       item,
	}
}

// SchemaJSON is the indented JSON encoding of [Schema].
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}

	return data, nil
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	data, err := SchemaJSON()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	err = compiler.AddResource(SchemaID, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	s, err := compiler.Compile(SchemaID)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return s, nil
})

// Validate checks decoded JSON against the backup schema.
func Validate(v any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	err = s.Validate(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	return nil
}
