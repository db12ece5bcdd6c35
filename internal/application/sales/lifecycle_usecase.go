package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tiendc/go-deepcopy"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/installment"
	"github.com/jhoicas/Pedidos-api/internal/domain/lifecycle"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// LifecycleUseCase cambios de estado con sus efectos: parcelas al facturar y conversión al aprobar.
type LifecycleUseCase struct {
	tx           TxRunner
	clients      repository.ClientRepository
	installments InstallmentGenerator
	log          zerolog.Logger
	cfg          settings
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	tx TxRunner,
	clients repository.ClientRepository,
	installments InstallmentGenerator,
	log zerolog.Logger,
	opts ...Option,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		tx:           tx,
		clients:      clients,
		installments: installments,
		log:          log,
		cfg:          newSettings(opts),
	}
}

// ChangeStatus aplica el estado en una transacción. Facturar un pedido genera sus parcelas en la misma
// transacción y falla entera si el prazo de pagamento no permite generarlas. Aprobar un presupuesto
// lo convierte en pedido.
func (uc *LifecycleUseCase) ChangeStatus(ctx context.Context, id, status string) (*dto.StatusChangeResponse, error) {
	to := entity.DocumentStatus(strings.TrimSpace(status))
	var out *dto.StatusChangeResponse
	err := retryOnNumberConflict(func() error {
		return uc.tx.Run(ctx, func(docs repository.DocumentRepository, insts repository.InstallmentRepository) error {
			doc, err := lockDocument(ctx, docs, id)
			if err != nil {
				return err
			}
			if lifecycle.TriggersConversion(doc.Type, to) {
				order, err := uc.convertInTx(ctx, docs, doc)
				if err != nil {
					return err
				}
				out = &dto.StatusChangeResponse{ID: doc.ID, Number: doc.Number, Status: string(entity.StatusApproved)}
				out.Order = uc.orderResponse(ctx, order)
				return nil
			}
			if err := lifecycle.CanTransition(doc.Type, doc.Status, to); err != nil {
				return err
			}

			out = &dto.StatusChangeResponse{ID: doc.ID, Number: doc.Number, Status: string(to)}
			if lifecycle.TriggersInstallments(doc.Type, to) {
				list, err := uc.installments.GenerateInTx(ctx, insts, doc)
				if err != nil {
					return err
				}
				today := uc.cfg.now()
				for _, i := range list {
					out.Installments = append(out.Installments, dto.NewInstallmentResponse(i, installment.DisplayStatus(i, today)))
				}
			}
			return docs.UpdateStatus(ctx, doc.ID, to)
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("document_id", id).Str("status", out.Status).Msg("status alterado")
	return out, nil
}

// BulkChangeStatus aplica ChangeStatus a cada documento por separado. Un fallo no detiene el resto.
func (uc *LifecycleUseCase) BulkChangeStatus(ctx context.Context, ids []string, status string) []dto.BulkResult {
	out := make([]dto.BulkResult, 0, len(ids))
	for _, id := range ids {
		res, err := uc.ChangeStatus(ctx, id, status)
		if err != nil {
			out = append(out, bulkResult(id, "", err))
			continue
		}
		out = append(out, bulkResult(id, entity.DocumentStatus(res.Status), nil))
	}
	return out
}

// ConvertQuote crea el pedido a partir de un presupuesto abierto y marca el presupuesto como aprobado.
// Las dos escrituras se confirman juntas o ninguna.
func (uc *LifecycleUseCase) ConvertQuote(ctx context.Context, quoteID string) (*dto.DocumentResponse, error) {
	var order *entity.Document
	err := retryOnNumberConflict(func() error {
		return uc.tx.Run(ctx, func(docs repository.DocumentRepository, _ repository.InstallmentRepository) error {
			quote, err := lockDocument(ctx, docs, quoteID)
			if err != nil {
				return err
			}
			order, err = uc.convertInTx(ctx, docs, quote)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.orderResponse(ctx, order), nil
}

func (uc *LifecycleUseCase) convertInTx(ctx context.Context, docs repository.DocumentRepository, quote *entity.Document) (*entity.Document, error) {
	if !quote.IsQuote() {
		return nil, fmt.Errorf("%w: %s não é um orçamento", domain.ErrInvalidTransition, quote.Number)
	}
	if err := lifecycle.CanTransition(quote.Type, quote.Status, entity.StatusApproved); err != nil {
		return nil, err
	}
	items, err := docs.ListItems(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	seq, err := docs.NextSequence(ctx, entity.DocumentTypeOrder, OrderStart)
	if err != nil {
		return nil, err
	}

	now := uc.cfg.now()
	order := &entity.Document{
		ID:            uuid.New().String(),
		Number:        FormatNumber(entity.DocumentTypeOrder, seq),
		Sequence:      seq,
		Type:          entity.DocumentTypeOrder,
		ClientID:      quote.ClientID,
		IssueDate:     quote.IssueDate,
		ShippingCost:  quote.ShippingCost,
		Total:         quote.Total,
		Status:        entity.StatusOpen,
		PaymentMethod: quote.PaymentMethod,
		PaymentTerm:   quote.PaymentTerm,
		DeliveryDays:  quote.DeliveryDays,
		SourceQuoteID: quote.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var copies []*entity.LineItem
	if err := deepcopy.Copy(&copies, &items); err != nil {
		return nil, fmt.Errorf("copiar itens do orçamento: %w", err)
	}
	for _, it := range copies {
		it.ID = uuid.New().String()
		it.DocumentID = order.ID
	}
	order.Items = copies

	if err := docs.Create(ctx, order); err != nil {
		return nil, err
	}
	if err := docs.CreateItems(ctx, copies); err != nil {
		return nil, err
	}
	if err := docs.UpdateStatus(ctx, quote.ID, entity.StatusApproved); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("document_id", quote.ID).
		Str("number", quote.Number).
		Str("order_id", order.ID).
		Str("order_number", order.Number).
		Msg("orçamento convertido em pedido")
	return order, nil
}

func (uc *LifecycleUseCase) orderResponse(ctx context.Context, order *entity.Document) *dto.DocumentResponse {
	name := ""
	if c, err := uc.clients.GetByID(ctx, order.ClientID); err == nil && c != nil {
		name = c.TradeName
	}
	return toDocumentResponse(order, name, nil, uc.cfg.now())
}

func lockDocument(ctx context.Context, docs repository.DocumentRepository, id string) (*entity.Document, error) {
	doc, err := docs.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}
