package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// InstallmentResponse parcela con estado visible (Vencido se deriva al leer).
type InstallmentResponse struct {
	ID             string          `json:"id"`
	DocumentID     string          `json:"document_id"`
	DocumentNumber string          `json:"document_number,omitempty"`
	ClientName     string          `json:"client_name,omitempty"`
	Number         int             `json:"number"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        string          `json:"due_date"`
	Status         string          `json:"status"`
	PaidDate       string          `json:"paid_date,omitempty"`
}

// PaymentResponse resultado de marcar o reabrir una parcela.
type PaymentResponse struct {
	Installment      InstallmentResponse `json:"installment"`
	DocumentStatus   string              `json:"document_status"`
	DocumentAdvanced bool                `json:"document_advanced"`
}

// ReceivablesSummaryResponse totales de contas a receber.
type ReceivablesSummaryResponse struct {
	TotalOpen    decimal.Decimal `json:"total_open"`
	TotalOverdue decimal.Decimal `json:"total_overdue"`
}

// NewInstallmentResponse arma la respuesta con el estado ya derivado.
func NewInstallmentResponse(i *entity.Installment, status entity.InstallmentStatus) InstallmentResponse {
	out := InstallmentResponse{
		ID:         i.ID,
		DocumentID: i.DocumentID,
		Number:     i.Number,
		Amount:     i.Amount,
		DueDate:    i.DueDate.Format(time.DateOnly),
		Status:     string(status),
	}
	if i.PaidDate != nil {
		out.PaidDate = i.PaidDate.Format(time.DateOnly)
	}
	return out
}
