package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/sales"
)

// DocumentHandler pedidos y orçamentos: emisión, edición, ciclo de vida e impresión.
type DocumentHandler struct {
	docs      *sales.DocumentUseCase
	lifecycle *sales.LifecycleUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(docs *sales.DocumentUseCase, lifecycle *sales.LifecycleUseCase) *DocumentHandler {
	return &DocumentHandler{docs: docs, lifecycle: lifecycle}
}

// PricePreview godoc
// @Summary      Calcular precio de una línea
// @Description  Desglose de costo base, impresión, precio unitario y subtotal. No persiste.
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LineItemRequest  true  "Línea"
// @Success      200   {object}  dto.LinePriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pricing/unit-price [post]
func (h *DocumentHandler) PricePreview(c *fiber.Ctx) error {
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.docs.PricePreview(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PreviewNumber godoc
// @Summary      Próximo número de documento
// @Description  Número sugerido para el tipo; no reserva la secuencia.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreviewNumberRequest  true  "Tipo y contador de la interfaz"
// @Success      200   {object}  dto.PreviewNumberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents/preview-number [post]
func (h *DocumentHandler) PreviewNumber(c *fiber.Ctx) error {
	var in dto.PreviewNumberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.docs.PreviewNumber(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Emitir pedido u orçamento
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DocumentRequest  true  "Documento con sus líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.DocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	draft, err := h.docs.BuildDraft(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.docs.Issue(c.UserContext(), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Produce      json
// @Param        type       query  string  false  "Pedido | Orçamento"
// @Param        status     query  string  false  "Estado"
// @Param        client_id  query  string  false  "ID del cliente"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {array}   dto.DocumentResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	out, err := h.docs.List(c.UserContext(), c.Query("type"), c.Query("status"), c.Query("client_id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento por ID
// @Tags         documents
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.docs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar documento
// @Description  Reemplaza cabecera y líneas. Tipo y número no cambian; con parcelas generadas devuelve 422.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del documento"
// @Param        body  body  dto.DocumentRequest  true  "Documento con sus líneas"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.DocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	draft, err := h.docs.BuildDraft(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.docs.Update(c.UserContext(), id, draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento
// @Description  Borra líneas y parcelas junto con el documento.
// @Tags         documents
// @Param        id   path  string  true  "ID del documento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.docs.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkDelete godoc
// @Summary      Eliminar varios documentos
// @Description  Cada documento se procesa por separado; el resultado informa éxito o error por ID.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IDsRequest  true  "IDs"
// @Success      200   {array}   dto.BulkResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents/bulk/delete [post]
func (h *DocumentHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.IDsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ids := cleanIDs(in.IDs)
	if len(ids) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids: informe ao menos um documento"})
	}
	return c.JSON(h.docs.BulkDelete(c.UserContext(), ids))
}

// ChangeStatus godoc
// @Summary      Cambiar estado
// @Description  Aprobar un orçamento genera el pedido; facturar un pedido genera las parcelas.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del documento"
// @Param        body  body  dto.StatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.StatusChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/status [patch]
func (h *DocumentHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.lifecycle.ChangeStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkChangeStatus godoc
// @Summary      Cambiar estado de varios documentos
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkStatusRequest  true  "IDs y nuevo estado"
// @Success      200   {array}   dto.BulkResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents/bulk/status [post]
func (h *DocumentHandler) BulkChangeStatus(c *fiber.Ctx) error {
	var in dto.BulkStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ids := cleanIDs(in.IDs)
	if len(ids) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids: informe ao menos um documento"})
	}
	return c.JSON(h.lifecycle.BulkChangeStatus(c.UserContext(), ids, in.Status))
}

// Convert godoc
// @Summary      Convertir orçamento en pedido
// @Tags         documents
// @Produce      json
// @Param        id   path  string  true  "ID del orçamento"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/convert [post]
func (h *DocumentHandler) Convert(c *fiber.Ctx) error {
	out, err := h.lifecycle.ConvertQuote(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetInvoiceNumber godoc
// @Summary      Registrar número de NF-e
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del pedido"
// @Param        body  body  dto.InvoiceNumberRequest  true  "Número de la nota"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/invoice-number [patch]
func (h *DocumentHandler) SetInvoiceNumber(c *fiber.Ctx) error {
	var in dto.InvoiceNumberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.docs.SetInvoiceNumber(c.UserContext(), c.Params("id"), in.InvoiceNumber)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Imprimir documento
// @Tags         documents
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	out, number, err := h.docs.RenderPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", number+".pdf"))
	return c.Send(out)
}

// Installments godoc
// @Summary      Parcelas del pedido
// @Tags         documents
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {array}   dto.InstallmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/installments [get]
func (h *DocumentHandler) Installments(c *fiber.Ctx) error {
	out, err := h.docs.Installments(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
