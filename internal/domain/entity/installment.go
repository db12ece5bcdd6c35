package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus estado de una parcela. Overdue nunca se persiste: se deriva al leer.
type InstallmentStatus string

const (
	InstallmentOpen    InstallmentStatus = "Em Aberto"
	InstallmentPaid    InstallmentStatus = "Pago"
	InstallmentOverdue InstallmentStatus = "Vencido"
)

// Installment parcela a cobrar de un pedido.
type Installment struct {
	ID         string
	DocumentID string
	Number     int
	Amount     decimal.Decimal
	DueDate    time.Time
	Status     InstallmentStatus
	PaidDate   *time.Time
	CreatedAt  time.Time
}
