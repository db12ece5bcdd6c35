// Package receivables contas a receber: generación de parcelas al facturar, pagos y conciliación
// del estado del pedido.
package receivables

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/sales"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/installment"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ sales.InstallmentGenerator = (*UseCase)(nil)

// Option configura el caso de uso.
type Option func(*UseCase)

// WithClock reemplaza el reloj usado para "hoy" (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// UseCase parcelas y contas a receber.
type UseCase struct {
	tx           sales.TxRunner
	docs         repository.DocumentRepository
	installments repository.InstallmentRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx sales.TxRunner,
	docs repository.DocumentRepository,
	installments repository.InstallmentRepository,
	log zerolog.Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{tx: tx, docs: docs, installments: installments, log: log, now: time.Now}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// GenerateInTx crea las parcelas del pedido con el repo de la transacción del caller.
// Si ya existen las devuelve sin crear otras. Un presupuesto, o un pedido sin prazo de pagamento
// válido, devuelve *domain.ConsistencyError: el caller debe abortar la transición.
func (uc *UseCase) GenerateInTx(ctx context.Context, insts repository.InstallmentRepository, order *entity.Document) ([]*entity.Installment, error) {
	if order.IsQuote() {
		return nil, &domain.ConsistencyError{DocumentID: order.ID, Reason: "orçamento não gera parcelas"}
	}
	existing, err := insts.ListByDocument(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	days, err := installment.ParsePaymentTerm(order.PaymentTerm)
	if err != nil {
		return nil, &domain.ConsistencyError{
			DocumentID: order.ID,
			Reason:     fmt.Sprintf("prazo de pagamento %q não permite gerar parcelas", order.PaymentTerm),
		}
	}
	list := installment.Split(order.Total, order.IssueDate, days)
	now := uc.now()
	for _, i := range list {
		i.ID = uuid.New().String()
		i.DocumentID = order.ID
		i.CreatedAt = now
	}
	if err := insts.CreateBatch(ctx, list); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("document_id", order.ID).
		Str("number", order.Number).
		Int("installments", len(list)).
		Str("total", order.Total.StringFixed(2)).
		Msg("parcelas geradas")
	return list, nil
}

// MarkPaid marca la parcela como paga con la fecha de hoy. Si era la última abierta de un pedido
// Faturado, el pedido pasa a Recebido en la misma transacción. Ningún otro estado se toca.
// Sobre una parcela ya paga no hace nada: ni fecha nueva ni avance del pedido.
func (uc *UseCase) MarkPaid(ctx context.Context, installmentID string) (*dto.PaymentResponse, error) {
	today := dateOnly(uc.now())
	var out *dto.PaymentResponse
	err := uc.tx.Run(ctx, func(docs repository.DocumentRepository, insts repository.InstallmentRepository) error {
		inst, err := lockInstallment(ctx, insts, installmentID)
		if err != nil {
			return err
		}
		doc, err := docs.GetForUpdate(ctx, inst.DocumentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}

		out = &dto.PaymentResponse{DocumentStatus: string(doc.Status)}
		if inst.Status == entity.InstallmentPaid {
			// Ya estaba paga: no hay pago nuevo que conciliar.
			out.Installment = uc.row(inst, doc.Number, today)
			return nil
		}
		inst.Status = entity.InstallmentPaid
		inst.PaidDate = &today
		if err := insts.UpdatePayment(ctx, inst.ID, inst.Status, inst.PaidDate); err != nil {
			return err
		}

		unpaid, err := insts.CountUnpaid(ctx, doc.ID)
		if err != nil {
			return err
		}
		if unpaid == 0 && doc.Status == entity.StatusInvoiced {
			if err := docs.UpdateStatus(ctx, doc.ID, entity.StatusReceived); err != nil {
				return err
			}
			out.DocumentStatus = string(entity.StatusReceived)
			out.DocumentAdvanced = true
			uc.log.Info().Str("document_id", doc.ID).Str("number", doc.Number).Msg("pedido quitado, status Recebido")
		}
		out.Installment = uc.row(inst, doc.Number, today)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reopen vuelve la parcela a Em Aberto y limpia la fecha de pago. El estado del pedido no cambia.
func (uc *UseCase) Reopen(ctx context.Context, installmentID string) (*dto.PaymentResponse, error) {
	today := dateOnly(uc.now())
	var out *dto.PaymentResponse
	err := uc.tx.Run(ctx, func(docs repository.DocumentRepository, insts repository.InstallmentRepository) error {
		inst, err := lockInstallment(ctx, insts, installmentID)
		if err != nil {
			return err
		}
		doc, err := docs.GetByID(ctx, inst.DocumentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if inst.Status == entity.InstallmentPaid {
			inst.Status = entity.InstallmentOpen
			inst.PaidDate = nil
			if err := insts.UpdatePayment(ctx, inst.ID, inst.Status, nil); err != nil {
				return err
			}
		}
		out = &dto.PaymentResponse{DocumentStatus: string(doc.Status), Installment: uc.row(inst, doc.Number, today)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Schedule parcelas de un pedido con el estado visible.
func (uc *UseCase) Schedule(ctx context.Context, orderID string) ([]dto.InstallmentResponse, error) {
	doc, err := uc.docs.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.installments.ListByDocument(ctx, orderID)
	if err != nil {
		return nil, err
	}
	today := dateOnly(uc.now())
	out := make([]dto.InstallmentResponse, 0, len(list))
	for _, i := range list {
		out = append(out, uc.row(i, doc.Number, today))
	}
	return out, nil
}

// ListQuery filtros de contas a receber. Status vacío = todas; fechas AAAA-MM-DD.
type ListQuery struct {
	Status  string
	DueFrom string
	DueTo   string
	Page    dto.PageRequest
}

// List contas a receber filtradas por estado visible (Em Aberto, Vencido, Pago) y vencimiento.
func (uc *UseCase) List(ctx context.Context, q ListQuery) ([]dto.InstallmentResponse, error) {
	q.Page.DefaultPage()
	today := dateOnly(uc.now())
	f := repository.ReceivableFilter{
		Status: entity.InstallmentStatus(strings.TrimSpace(q.Status)),
		Today:  today,
		Limit:  q.Page.Limit,
		Offset: q.Page.Offset,
	}
	switch f.Status {
	case "", entity.InstallmentOpen, entity.InstallmentOverdue, entity.InstallmentPaid:
	default:
		return nil, domain.NewValidationError("status", "use Em Aberto, Vencido ou Pago")
	}
	var err error
	if f.DueFrom, err = parseDate("due_from", q.DueFrom); err != nil {
		return nil, err
	}
	if f.DueTo, err = parseDate("due_to", q.DueTo); err != nil {
		return nil, err
	}

	rows, err := uc.installments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InstallmentResponse, 0, len(rows))
	for _, r := range rows {
		resp := uc.row(r.Installment, r.DocumentNumber, today)
		resp.ClientName = r.ClientName
		out = append(out, resp)
	}
	return out, nil
}

// Summary total a receber (parcelas no pagas) y cuánto de eso está vencido.
func (uc *UseCase) Summary(ctx context.Context) (*dto.ReceivablesSummaryResponse, error) {
	totals, err := uc.installments.Totals(ctx, dateOnly(uc.now()))
	if err != nil {
		return nil, err
	}
	return &dto.ReceivablesSummaryResponse{TotalOpen: totals.Open, TotalOverdue: totals.Overdue}, nil
}

func (uc *UseCase) row(i *entity.Installment, number string, today time.Time) dto.InstallmentResponse {
	r := dto.NewInstallmentResponse(i, installment.DisplayStatus(i, today))
	r.DocumentNumber = number
	return r
}

func lockInstallment(ctx context.Context, insts repository.InstallmentRepository, id string) (*entity.Installment, error) {
	inst, err := insts.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, domain.ErrNotFound
	}
	return inst, nil
}

func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, domain.NewValidationError(field, "use o formato AAAA-MM-DD")
	}
	return &t, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
