package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/sales"
)

// ItemDescriptionSchema godoc
// @Summary      JSON Schema de la descripción de línea
// @Tags         schemas
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/schemas/item-description [get]
func ItemDescriptionSchema(c *fiber.Ctx) error {
	out, err := sales.ItemDescriptionSchema()
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/schema+json")
	return c.Send(out)
}
