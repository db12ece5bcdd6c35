package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ReceivableFilter filtro de contas a receber. Overdue filtra por vencimiento < Today sobre parcelas abiertas.
type ReceivableFilter struct {
	Status  entity.InstallmentStatus // vacío = todas
	Today   time.Time
	DueFrom *time.Time
	DueTo   *time.Time
	Limit   int
	Offset  int
}

// ReceivableRow parcela con datos del documento para el listado financiero.
type ReceivableRow struct {
	Installment    *entity.Installment
	DocumentNumber string
	DocumentStatus entity.DocumentStatus
	ClientName     string
}

// ReceivableTotals montos agregados de parcelas no pagadas.
type ReceivableTotals struct {
	Open    decimal.Decimal
	Overdue decimal.Decimal
}

// InstallmentRepository puerto de persistencia de parcelas.
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, installments []*entity.Installment) error
	GetByID(ctx context.Context, id string) (*entity.Installment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Installment, error)
	ListByDocument(ctx context.Context, documentID string) ([]*entity.Installment, error)
	UpdatePayment(ctx context.Context, id string, status entity.InstallmentStatus, paidDate *time.Time) error
	CountUnpaid(ctx context.Context, documentID string) (int, error)
	List(ctx context.Context, f ReceivableFilter) ([]ReceivableRow, error)
	Totals(ctx context.Context, today time.Time) (ReceivableTotals, error)
}
