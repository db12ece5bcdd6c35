package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/receivables"
)

// ReceivableHandler contas a receber y pago de parcelas.
type ReceivableHandler struct {
	uc *receivables.UseCase
}

// NewReceivableHandler construye el handler.
func NewReceivableHandler(uc *receivables.UseCase) *ReceivableHandler {
	return &ReceivableHandler{uc: uc}
}

// List godoc
// @Summary      Listar contas a receber
// @Tags         receivables
// @Produce      json
// @Param        status    query  string  false  "Em Aberto | Vencido | Pago"
// @Param        due_from  query  string  false  "Vencimiento desde (AAAA-MM-DD)"
// @Param        due_to    query  string  false  "Vencimiento hasta (AAAA-MM-DD)"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {array}   dto.InstallmentResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/receivables [get]
func (h *ReceivableHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), receivables.ListQuery{
		Status:  c.Query("status"),
		DueFrom: c.Query("due_from"),
		DueTo:   c.Query("due_to"),
		Page:    pageFromQuery(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales de contas a receber
// @Tags         receivables
// @Produce      json
// @Success      200  {object}  dto.ReceivablesSummaryResponse
// @Router       /api/receivables/summary [get]
func (h *ReceivableHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Marcar parcela como paga
// @Description  Con la última parcela paga, un pedido Faturado pasa a Recebido.
// @Tags         receivables
// @Produce      json
// @Param        id   path  string  true  "ID de la parcela"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/installments/{id}/pay [post]
func (h *ReceivableHandler) Pay(c *fiber.Ctx) error {
	out, err := h.uc.MarkPaid(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reopen godoc
// @Summary      Reabrir parcela
// @Description  La parcela vuelve a Em Aberto; el estado del pedido no cambia.
// @Tags         receivables
// @Produce      json
// @Param        id   path  string  true  "ID de la parcela"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/installments/{id}/reopen [post]
func (h *ReceivableHandler) Reopen(c *fiber.Ctx) error {
	out, err := h.uc.Reopen(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
