package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/sales"
)

// ProductionHandler fila de produção y ordens de produção impresas.
type ProductionHandler struct {
	uc *sales.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *sales.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Queue godoc
// @Summary      Fila de produção
// @Description  Líneas de los pedidos en estado Em Produção.
// @Tags         production
// @Produce      json
// @Success      200  {array}  dto.ProductionItemResponse
// @Router       /api/production/queue [get]
func (h *ProductionHandler) Queue(c *fiber.Ctx) error {
	out, err := h.uc.Queue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sheets godoc
// @Summary      Imprimir ordens de produção
// @Description  Una página por cada línea seleccionada de la fila.
// @Tags         production
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.IDsRequest  true  "IDs de las líneas"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/pdf [post]
func (h *ProductionHandler) Sheets(c *fiber.Ctx) error {
	var in dto.IDsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RenderSheets(c.UserContext(), cleanIDs(in.IDs))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ordens-de-producao.pdf"`)
	return c.Send(out)
}
