package arena

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema строит JSON Schema файла боя для редакторов YAML.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(BattleFile))
	schema.Title = "Arena Battle File"
	schema.Description = "Map, action library and warriors of one tactical battle"
	return schema
}

// SchemaJSON - Schema в виде отформатированного JSON с переводом строки в конце.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
