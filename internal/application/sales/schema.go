package sales

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var (
	schemaOnce sync.Once
	schemaJSON []byte
	schemaErr  error
)

// ItemDescriptionSchema JSON Schema de la descripción tipada de las líneas (columna JSONB).
func ItemDescriptionSchema() ([]byte, error) {
	schemaOnce.Do(func() {
		reflector := jsonschema.Reflector{
			AllowAdditionalProperties: false,
			DoNotReference:            true,
		}
		s := reflector.Reflect(&entity.ItemDescription{})
		s.Title = "ItemDescription"
		schemaJSON, schemaErr = json.Marshal(s)
	})
	return schemaJSON, schemaErr
}
