// Package sales casos de uso de pedidos y presupuestos: emisión, edición, ciclo de vida y documentos impresos.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/installment"
	"github.com/jhoicas/Pedidos-api/internal/domain/lifecycle"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// Escalas con las que se guardan las líneas (NUMERIC(12,3) y NUMERIC(18,6)).
const (
	quantityScale = 3
	priceScale    = 6
)

// DocumentUseCase emisión y mantenimiento de pedidos y presupuestos.
type DocumentUseCase struct {
	tx           TxRunner
	docs         repository.DocumentRepository
	clients      repository.ClientRepository
	installments repository.InstallmentRepository
	builder      *ItemBuilder
	pdf          DocumentPDFGenerator
	log          zerolog.Logger
	cfg          settings
}

// NewDocumentUseCase construye el caso de uso. pdf puede ser nil si no se exponen impresos.
func NewDocumentUseCase(
	tx TxRunner,
	docs repository.DocumentRepository,
	clients repository.ClientRepository,
	installments repository.InstallmentRepository,
	builder *ItemBuilder,
	pdf DocumentPDFGenerator,
	log zerolog.Logger,
	opts ...Option,
) *DocumentUseCase {
	return &DocumentUseCase{
		tx:           tx,
		docs:         docs,
		clients:      clients,
		installments: installments,
		builder:      builder,
		pdf:          pdf,
		log:          log,
		cfg:          newSettings(opts),
	}
}

// BuildDraft arma el borrador a partir del request, precificando cada línea.
func (uc *DocumentUseCase) BuildDraft(ctx context.Context, in dto.DocumentRequest) (*Draft, error) {
	issue := dateOnly(uc.cfg.now())
	if s := strings.TrimSpace(in.IssueDate); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, domain.NewValidationError("issue_date", "use o formato AAAA-MM-DD")
		}
		issue = t
	}

	d := NewDraft(entity.DocumentType(strings.TrimSpace(in.Type)), strings.TrimSpace(in.ClientID), issue)
	d.ShippingCost = in.ShippingCost
	d.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	d.PaymentTerm = strings.TrimSpace(in.PaymentTerm)
	if in.DeliveryDays != nil {
		d.DeliveryDays = *in.DeliveryDays
	}
	for i, req := range in.Items {
		item, err := uc.builder.Build(ctx, req)
		if err != nil {
			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				return nil, domain.NewValidationError(fmt.Sprintf("items[%d].%s", i, vErr.Field), vErr.Reason)
			}
			return nil, err
		}
		d.AddItem(item)
	}
	return d, nil
}

// PricePreview desglose del precio de una línea, sin persistir.
func (uc *DocumentUseCase) PricePreview(ctx context.Context, in dto.LineItemRequest) (*dto.LinePriceResponse, error) {
	return uc.builder.Price(ctx, in)
}

// PreviewNumber número que recibiría el próximo documento del tipo.
func (uc *DocumentUseCase) PreviewNumber(ctx context.Context, in dto.PreviewNumberRequest) (*dto.PreviewNumberResponse, error) {
	number, seq, err := NextDocumentNumber(ctx, uc.docs, entity.DocumentType(strings.TrimSpace(in.Type)), in.Counter)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewNumberResponse{Number: number, Sequence: seq}, nil
}

// Issue valida el borrador y, en una transacción, reserva el número y guarda documento y líneas.
func (uc *DocumentUseCase) Issue(ctx context.Context, d *Draft) (*dto.DocumentResponse, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if err := validateTerm(d.PaymentTerm); err != nil {
		return nil, err
	}
	client, err := uc.requireClient(ctx, d.ClientID)
	if err != nil {
		return nil, err
	}

	var doc *entity.Document
	err = retryOnNumberConflict(func() error {
		return uc.tx.Run(ctx, func(docs repository.DocumentRepository, _ repository.InstallmentRepository) error {
			seq, err := docs.NextSequence(ctx, d.Type, StartSequence(d.Type))
			if err != nil {
				return err
			}
			now := uc.cfg.now()
			doc = &entity.Document{
				ID:            uuid.New().String(),
				Number:        FormatNumber(d.Type, seq),
				Sequence:      seq,
				Type:          d.Type,
				ClientID:      d.ClientID,
				IssueDate:     d.IssueDate,
				ShippingCost:  d.ShippingCost,
				Status:        entity.StatusOpen,
				PaymentMethod: d.PaymentMethod,
				PaymentTerm:   d.PaymentTerm,
				DeliveryDays:  d.DeliveryDays,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			doc.Items = prepareItems(doc.ID, d.Items)
			doc.Total = entity.RoundCurrency(ComputeTotal(doc.Items, doc.ShippingCost))

			if err := docs.Create(ctx, doc); err != nil {
				return err
			}
			return docs.CreateItems(ctx, doc.Items)
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("document_id", doc.ID).
		Str("number", doc.Number).
		Str("total", doc.Total.StringFixed(2)).
		Int("items", len(doc.Items)).
		Msg("documento emitido")
	return toDocumentResponse(doc, client.TradeName, nil, uc.cfg.now()), nil
}

// Update reemplaza cabecera y líneas del documento en una transacción y recalcula el total.
// Tipo y número no cambian. Un pedido con parcelas generadas no se edita.
func (uc *DocumentUseCase) Update(ctx context.Context, id string, d *Draft) (*dto.DocumentResponse, error) {
	if err := validateTerm(d.PaymentTerm); err != nil {
		return nil, err
	}
	var doc *entity.Document
	var client *entity.Client
	err := uc.tx.Run(ctx, func(docs repository.DocumentRepository, insts repository.InstallmentRepository) error {
		var err error
		doc, err = docs.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		d.Type = doc.Type
		if err := d.validate(); err != nil {
			return err
		}
		if client, err = uc.requireClient(ctx, d.ClientID); err != nil {
			return err
		}
		existing, err := insts.ListByDocument(ctx, id)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return &domain.ConsistencyError{DocumentID: id, Reason: "documento com parcelas geradas não pode ser editado"}
		}

		doc.ClientID = d.ClientID
		doc.IssueDate = d.IssueDate
		doc.ShippingCost = d.ShippingCost
		doc.PaymentMethod = d.PaymentMethod
		doc.PaymentTerm = d.PaymentTerm
		doc.DeliveryDays = d.DeliveryDays
		doc.UpdatedAt = uc.cfg.now()
		doc.Items = prepareItems(doc.ID, d.Items)
		doc.Total = entity.RoundCurrency(ComputeTotal(doc.Items, doc.ShippingCost))

		if err := docs.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := docs.CreateItems(ctx, doc.Items); err != nil {
			return err
		}
		return docs.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("document_id", doc.ID).Str("number", doc.Number).Msg("documento atualizado")
	return toDocumentResponse(doc, client.TradeName, nil, uc.cfg.now()), nil
}

// Get documento con líneas y parcelas.
func (uc *DocumentUseCase) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	snap, err := uc.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	snap.Document.Items = snap.Items
	name := ""
	if snap.Client != nil {
		name = snap.Client.TradeName
	}
	return toDocumentResponse(snap.Document, name, snap.Installments, uc.cfg.now()), nil
}

// Installments parcelas del documento con el estado visible.
func (uc *DocumentUseCase) Installments(ctx context.Context, id string) ([]dto.InstallmentResponse, error) {
	doc, err := uc.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.installments.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	today := uc.cfg.now()
	out := make([]dto.InstallmentResponse, 0, len(list))
	for _, i := range list {
		r := dto.NewInstallmentResponse(i, installment.DisplayStatus(i, today))
		r.DocumentNumber = doc.Number
		out = append(out, r)
	}
	return out, nil
}

// List cabeceras filtradas por tipo, estado y cliente.
func (uc *DocumentUseCase) List(ctx context.Context, docType, status, clientID string, page dto.PageRequest) ([]*dto.DocumentResponse, error) {
	page.DefaultPage()
	f := repository.DocumentFilter{
		Type:     entity.DocumentType(strings.TrimSpace(docType)),
		Status:   entity.DocumentStatus(strings.TrimSpace(status)),
		ClientID: strings.TrimSpace(clientID),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if f.Type != "" && !f.Type.Valid() {
		return nil, domain.NewValidationError("type", "tipo deve ser Pedido ou Orçamento")
	}
	if f.Status != "" && !lifecycle.IsValid(entity.DocumentTypeOrder, f.Status) && !lifecycle.IsValid(entity.DocumentTypeQuote, f.Status) {
		return nil, domain.NewValidationError("status", "status desconhecido: "+string(f.Status))
	}
	rows, err := uc.docs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	today := uc.cfg.now()
	out := make([]*dto.DocumentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDocumentResponse(r.Document, r.ClientName, nil, today))
	}
	return out, nil
}

// Delete elimina el documento; líneas y parcelas caen por cascada.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.docs.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("document_id", id).Msg("documento excluído")
	return nil
}

// BulkDelete elimina cada documento por separado; un fallo no detiene el resto.
func (uc *DocumentUseCase) BulkDelete(ctx context.Context, ids []string) []dto.BulkResult {
	out := make([]dto.BulkResult, 0, len(ids))
	for _, id := range ids {
		out = append(out, bulkResult(id, "", uc.Delete(ctx, id)))
	}
	return out
}

// SetInvoiceNumber registra el número de la NF-e de un pedido.
func (uc *DocumentUseCase) SetInvoiceNumber(ctx context.Context, id, invoiceNumber string) (*dto.DocumentResponse, error) {
	nf := strings.TrimSpace(invoiceNumber)
	if nf == "" {
		return nil, domain.NewValidationError("invoice_number", "número da nota fiscal é obrigatório")
	}
	doc, err := uc.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.IsQuote() {
		return nil, domain.NewValidationError("invoice_number", "orçamento não recebe nota fiscal")
	}
	if err := uc.docs.SetInvoiceNumber(ctx, id, nf); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Snapshot lee documento, líneas, cliente y parcelas para mostrar o imprimir.
func (uc *DocumentUseCase) Snapshot(ctx context.Context, id string) (*DocumentSnapshot, error) {
	doc, err := uc.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.docs.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	client, err := uc.clients.GetByID(ctx, doc.ClientID)
	if err != nil {
		return nil, err
	}
	insts, err := uc.installments.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DocumentSnapshot{Document: doc, Items: items, Client: client, Installments: insts}, nil
}

// RenderPDF imprime el documento. Devuelve también el número para nombrar el archivo.
func (uc *DocumentUseCase) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", errors.New("gerador de PDF não configurado")
	}
	snap, err := uc.Snapshot(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if err := snap.Consistent(); err != nil {
		uc.log.Error().Err(err).Str("document_id", id).Msg("documento inconsistente, PDF não gerado")
		return nil, "", err
	}
	out, err := uc.pdf.GenerateDocument(snap)
	if err != nil {
		return nil, "", fmt.Errorf("gerar PDF: %w", err)
	}
	return out, snap.Document.Number, nil
}

func (uc *DocumentUseCase) requireClient(ctx context.Context, id string) (*entity.Client, error) {
	client, err := uc.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.NewValidationError("client_id", "cliente não encontrado")
	}
	return client, nil
}

// validateTerm un prazo vacío se acepta al emitir (se exige al facturar); uno informado debe ser válido.
func validateTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	_, err := installment.ParsePaymentTerm(term)
	return err
}

// prepareItems copia las líneas del borrador con IDs nuevos y la escala con que se guardan.
func prepareItems(documentID string, items []*entity.LineItem) []*entity.LineItem {
	out := make([]*entity.LineItem, 0, len(items))
	for i, it := range items {
		qty := it.Quantity.Round(quantityScale)
		unit := it.UnitPrice.Round(priceScale)
		out = append(out, &entity.LineItem{
			ID:          uuid.New().String(),
			DocumentID:  documentID,
			Position:    i + 1,
			ProductID:   it.ProductID,
			ProductSKU:  it.ProductSKU,
			Description: it.Description,
			Quantity:    qty,
			UnitPrice:   unit,
			Subtotal:    qty.Mul(unit).Round(priceScale),
		})
	}
	return out
}

func bulkResult(id string, status entity.DocumentStatus, err error) dto.BulkResult {
	if err != nil {
		return dto.BulkResult{ID: id, Code: domain.ErrorCode(err), Message: err.Error()}
	}
	return dto.BulkResult{ID: id, OK: true, Status: string(status)}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
