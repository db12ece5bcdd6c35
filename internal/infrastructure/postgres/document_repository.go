package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `d.id, d.number, d.sequence, d.type, d.client_id, d.issue_date, d.shipping_cost, d.total,
	d.status, d.payment_method, d.payment_term, d.delivery_days, d.invoice_number, d.source_quote_id,
	d.created_at, d.updated_at`

const lineItemColumns = `li.id, li.document_id, li.position, li.product_id, li.product_sku, li.description,
	li.quantity, li.unit_price, li.subtotal`

// DocumentRepo pedidos, presupuestos y sus líneas (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create inserta la cabecera. Un número repetido devuelve *domain.ConflictError{Field: "number"}.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	if !validID(d.ClientID) {
		return domain.NewValidationError("client_id", "cliente não encontrado")
	}
	if !validRef(d.SourceQuoteID) {
		return domain.NewValidationError("source_quote_id", "orçamento não encontrado")
	}
	query := `
		INSERT INTO documents (id, number, sequence, type, client_id, issue_date, shipping_cost, total, status,
			payment_method, payment_term, delivery_days, invoice_number, source_quote_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Number, d.Sequence, string(d.Type), d.ClientID, d.IssueDate, d.ShippingCost, d.Total.Round(2),
		string(d.Status), d.PaymentMethod, d.PaymentTerm, d.DeliveryDays, nullIfEmpty(d.InvoiceNumber),
		nullIfEmpty(d.SourceQuoteID), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return conflictError(err, "number", d.Number)
		}
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("client_id", "cliente não encontrado")
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// Update sobrescribe la cabecera editable y el total.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	if !validID(d.ID) {
		return domain.ErrNotFound
	}
	if !validID(d.ClientID) {
		return domain.NewValidationError("client_id", "cliente não encontrado")
	}
	query := `
		UPDATE documents SET client_id = $2, issue_date = $3, shipping_cost = $4, total = $5,
			payment_method = $6, payment_term = $7, delivery_days = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.ClientID, d.IssueDate, d.ShippingCost, d.Total.Round(2),
		d.PaymentMethod, d.PaymentTerm, d.DeliveryDays, d.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("client_id", "cliente não encontrado")
		}
		return fmt.Errorf("update document: %w", err)
	}
	return expectOne(tag.RowsAffected())
}

// UpdateStatus escribe el estado tal cual; la validación de la transición es del caller.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id string, status entity.DocumentStatus) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE documents SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return expectOne(tag.RowsAffected())
}

// SetInvoiceNumber guarda el número de la NF-e.
func (r *DocumentRepo) SetInvoiceNumber(ctx context.Context, id, invoiceNumber string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE documents SET invoice_number = $2, updated_at = now() WHERE id = $1`, id, nullIfEmpty(invoiceNumber))
	if err != nil {
		return fmt.Errorf("set invoice number: %w", err)
	}
	return expectOne(tag.RowsAffected())
}

// GetByID devuelve la cabecera sin líneas; (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.getOne(ctx, `SELECT `+documentColumns+` FROM documents d WHERE d.id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la tx.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.getOne(ctx, `SELECT `+documentColumns+` FROM documents d WHERE d.id = $1 FOR UPDATE`, id)
}

// List cabeceras con el nombre del cliente, más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]repository.DocumentSummary, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("d.type = $%d", string(f.Type))
	}
	if f.Status != "" {
		add("d.status = $%d", string(f.Status))
	}
	if f.ClientID != "" {
		if !validID(f.ClientID) {
			return nil, nil
		}
		add("d.client_id = $%d", f.ClientID)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT %s, c.trade_name
		FROM documents d
		JOIN clients c ON c.id = d.client_id
		%s
		ORDER BY d.issue_date DESC, d.sequence DESC
		LIMIT $%d OFFSET $%d`, documentColumns, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var out []repository.DocumentSummary
	for rows.Next() {
		var name string
		d, err := scanDocument(rows, &name)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, repository.DocumentSummary{Document: d, ClientName: name})
	}
	return out, rows.Err()
}

// Delete elimina el documento; líneas y parcelas caen por cascada.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return expectOne(tag.RowsAffected())
}

// CreateItems inserta las líneas en un solo batch.
func (r *DocumentRepo) CreateItems(ctx context.Context, items []*entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	for _, it := range items {
		if !validRef(it.ProductID) {
			return domain.NewValidationError("product_id", "produto não encontrado: "+it.ProductID)
		}
	}
	query := `
		INSERT INTO line_items (id, document_id, position, product_id, product_sku, description, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query,
			it.ID, it.DocumentID, it.Position, nullIfEmpty(it.ProductID), it.ProductSKU, it.Description,
			it.Quantity, it.UnitPrice, it.Subtotal,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return conflictError(err, "position", items[0].DocumentID)
			}
			return fmt.Errorf("insert line item: %w", err)
		}
	}
	return nil
}

// DeleteItems borra todas las líneas del documento.
func (r *DocumentRepo) DeleteItems(ctx context.Context, documentID string) error {
	if !validID(documentID) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM line_items WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("delete line items: %w", err)
	}
	return nil
}

// ListItems líneas del documento en orden de posición.
func (r *DocumentRepo) ListItems(ctx context.Context, documentID string) ([]*entity.LineItem, error) {
	if !validID(documentID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+lineItemColumns+` FROM line_items li WHERE li.document_id = $1 ORDER BY li.position`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	var out []*entity.LineItem
	for rows.Next() {
		it, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListProductionItems líneas de pedidos en Em Produção, por fecha de emisión.
func (r *DocumentRepo) ListProductionItems(ctx context.Context) ([]repository.ProductionItem, error) {
	query := `
		SELECT ` + lineItemColumns + `, d.number, d.issue_date, d.delivery_days, c.trade_name
		FROM line_items li
		JOIN documents d ON d.id = li.document_id
		JOIN clients c ON c.id = d.client_id
		WHERE d.type = $1 AND d.status = $2
		ORDER BY d.issue_date, d.number, li.position`
	rows, err := r.q.Query(ctx, query, string(entity.DocumentTypeOrder), string(entity.StatusInProduction))
	if err != nil {
		return nil, fmt.Errorf("list production items: %w", err)
	}
	defer rows.Close()
	var out []repository.ProductionItem
	for rows.Next() {
		var p repository.ProductionItem
		it, err := scanLineItem(rows, &p.DocumentNumber, &p.IssueDate, &p.DeliveryDays, &p.ClientName)
		if err != nil {
			return nil, fmt.Errorf("scan production item: %w", err)
		}
		p.Item = it
		p.DocumentID = it.DocumentID
		out = append(out, p)
	}
	return out, rows.Err()
}

// LastSequence último número usado del tipo: el mayor entre lo emitido y lo reservado en el contador.
func (r *DocumentRepo) LastSequence(ctx context.Context, t entity.DocumentType) (int64, error) {
	query := `
		SELECT GREATEST(
			COALESCE((SELECT MAX(sequence) FROM documents WHERE type = $1), 0),
			COALESCE((SELECT last_value FROM document_counters WHERE type = $1), 0))`
	var last int64
	if err := r.q.QueryRow(ctx, query, string(t)).Scan(&last); err != nil {
		return 0, fmt.Errorf("last sequence: %w", err)
	}
	return last, nil
}

// NextSequence reserva el siguiente número en el contador. La fila del contador queda bloqueada
// hasta el fin de la tx, así dos emisiones concurrentes no obtienen el mismo número.
func (r *DocumentRepo) NextSequence(ctx context.Context, t entity.DocumentType, start int64) (int64, error) {
	query := `
		INSERT INTO document_counters AS dc (type, last_value)
		VALUES ($1, GREATEST($2::bigint, COALESCE((SELECT MAX(sequence) FROM documents WHERE type = $1), 0) + 1))
		ON CONFLICT (type) DO UPDATE SET last_value = GREATEST(
			dc.last_value + 1,
			COALESCE((SELECT MAX(sequence) FROM documents WHERE type = EXCLUDED.type), 0) + 1)
		RETURNING last_value`
	var next int64
	if err := r.q.QueryRow(ctx, query, string(t), start).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next, nil
}

func (r *DocumentRepo) getOne(ctx context.Context, query, id string) (*entity.Document, error) {
	if !validID(id) {
		return nil, nil
	}
	d, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// scanDocument lee las columnas de documentColumns y luego extra, en ese orden.
func scanDocument(row pgx.Row, extra ...any) (*entity.Document, error) {
	var (
		d                        entity.Document
		docType, status          string
		invoiceNumber, sourceRef *string
	)
	dest := []any{
		&d.ID, &d.Number, &d.Sequence, &docType, &d.ClientID, &d.IssueDate, &d.ShippingCost, &d.Total,
		&status, &d.PaymentMethod, &d.PaymentTerm, &d.DeliveryDays, &invoiceNumber, &sourceRef,
		&d.CreatedAt, &d.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	d.Type = entity.DocumentType(docType)
	d.Status = entity.DocumentStatus(status)
	d.InvoiceNumber = derefString(invoiceNumber)
	d.SourceQuoteID = derefString(sourceRef)
	d.IssueDate = asDate(d.IssueDate)
	return &d, nil
}

func scanLineItem(row pgx.Row, extra ...any) (*entity.LineItem, error) {
	var (
		it        entity.LineItem
		productID *string
	)
	dest := []any{
		&it.ID, &it.DocumentID, &it.Position, &productID, &it.ProductSKU, &it.Description,
		&it.Quantity, &it.UnitPrice, &it.Subtotal,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	it.ProductID = derefString(productID)
	for _, e := range extra {
		if t, ok := e.(*time.Time); ok {
			*t = asDate(*t)
		}
	}
	return &it, nil
}

// asDate normaliza columnas DATE a medianoche UTC, como las produce time.Parse(time.DateOnly, ...).
func asDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func expectOne(rows int64) error {
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
