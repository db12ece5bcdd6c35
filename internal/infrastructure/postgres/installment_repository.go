package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

const installmentColumns = `i.id, i.document_id, i.number, i.amount, i.due_date, i.status, i.paid_date, i.created_at`

// InstallmentRepo parcelas de pedidos (usable con pool o tx).
type InstallmentRepo struct {
	q Querier
}

// NewInstallmentRepository construye el adaptador.
func NewInstallmentRepository(q Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

// CreateBatch inserta todas las parcelas del pedido en un batch.
func (r *InstallmentRepo) CreateBatch(ctx context.Context, list []*entity.Installment) error {
	if len(list) == 0 {
		return nil
	}
	query := `
		INSERT INTO installments (id, document_id, number, amount, due_date, status, paid_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	batch := &pgx.Batch{}
	for _, i := range list {
		batch.Queue(query, i.ID, i.DocumentID, i.Number, i.Amount, i.DueDate, string(i.Status), i.PaidDate, i.CreatedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, i := range list {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return conflictError(err, "installment_number", strconv.Itoa(i.Number))
			}
			return fmt.Errorf("insert installment: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una parcela; (nil, nil) si no existe.
func (r *InstallmentRepo) GetByID(ctx context.Context, id string) (*entity.Installment, error) {
	return r.getOne(ctx, `SELECT `+installmentColumns+` FROM installments i WHERE i.id = $1`, id)
}

// GetForUpdate bloquea la parcela hasta el fin de la tx.
func (r *InstallmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Installment, error) {
	return r.getOne(ctx, `SELECT `+installmentColumns+` FROM installments i WHERE i.id = $1 FOR UPDATE`, id)
}

// ListByDocument parcelas del pedido por número.
func (r *InstallmentRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.Installment, error) {
	if !validID(documentID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+installmentColumns+` FROM installments i WHERE i.document_id = $1 ORDER BY i.number`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	var out []*entity.Installment
	for rows.Next() {
		i, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// UpdatePayment fija estado y fecha de pago (nil al reabrir).
func (r *InstallmentRepo) UpdatePayment(ctx context.Context, id string, status entity.InstallmentStatus, paidDate *time.Time) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE installments SET status = $2, paid_date = $3 WHERE id = $1`, id, string(status), paidDate)
	if err != nil {
		return fmt.Errorf("update installment payment: %w", err)
	}
	return expectOne(tag.RowsAffected())
}

// CountUnpaid parcelas del pedido todavía no pagas.
func (r *InstallmentRepo) CountUnpaid(ctx context.Context, documentID string) (int, error) {
	if !validID(documentID) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM installments WHERE document_id = $1 AND status <> $2`,
		documentID, string(entity.InstallmentPaid)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unpaid installments: %w", err)
	}
	return n, nil
}

// List contas a receber con número de documento y cliente, por vencimiento.
func (r *InstallmentRepo) List(ctx context.Context, f repository.ReceivableFilter) ([]repository.ReceivableRow, error) {
	query, args := receivablesQuery(f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	defer rows.Close()
	var out []repository.ReceivableRow
	for rows.Next() {
		var (
			row    repository.ReceivableRow
			status string
		)
		inst, err := scanInstallment(rows, &row.DocumentNumber, &status, &row.ClientName)
		if err != nil {
			return nil, fmt.Errorf("scan receivable: %w", err)
		}
		row.Installment = inst
		row.DocumentStatus = entity.DocumentStatus(status)
		out = append(out, row)
	}
	return out, rows.Err()
}

// receivablesQuery arma el SELECT con los filtros presentes. Vencido = no paga con vencimiento
// anterior a f.Today; Em Aberto = no paga y todavía no vencida.
func receivablesQuery(f repository.ReceivableFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	paid := string(entity.InstallmentPaid)
	switch f.Status {
	case entity.InstallmentPaid:
		conds = append(conds, "i.status = "+arg(paid))
	case entity.InstallmentOpen:
		conds = append(conds, "i.status <> "+arg(paid), "i.due_date >= "+arg(asDate(f.Today)))
	case entity.InstallmentOverdue:
		conds = append(conds, "i.status <> "+arg(paid), "i.due_date < "+arg(asDate(f.Today)))
	}
	if f.DueFrom != nil {
		conds = append(conds, "i.due_date >= "+arg(asDate(*f.DueFrom)))
	}
	if f.DueTo != nil {
		conds = append(conds, "i.due_date <= "+arg(asDate(*f.DueTo)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	limit, offset := arg(f.Limit), arg(f.Offset)
	query := `
		SELECT ` + installmentColumns + `, d.number, d.status, c.trade_name
		FROM installments i
		JOIN documents d ON d.id = i.document_id
		JOIN clients c ON c.id = d.client_id
		` + where + `
		ORDER BY i.due_date, d.number, i.number
		LIMIT ` + limit + ` OFFSET ` + offset
	return query, args
}

// Totals suma de parcelas no pagas y de las que ya vencieron.
func (r *InstallmentRepo) Totals(ctx context.Context, today time.Time) (repository.ReceivableTotals, error) {
	var t repository.ReceivableTotals
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0), COALESCE(SUM(amount) FILTER (WHERE due_date < $2), 0)
		FROM installments
		WHERE status <> $1`, string(entity.InstallmentPaid), asDate(today)).Scan(&t.Open, &t.Overdue)
	if err != nil {
		return t, fmt.Errorf("receivable totals: %w", err)
	}
	return t, nil
}

func (r *InstallmentRepo) getOne(ctx context.Context, query, id string) (*entity.Installment, error) {
	if !validID(id) {
		return nil, nil
	}
	i, err := scanInstallment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return i, nil
}

func scanInstallment(row pgx.Row, extra ...any) (*entity.Installment, error) {
	var (
		i      entity.Installment
		status string
	)
	dest := []any{&i.ID, &i.DocumentID, &i.Number, &i.Amount, &i.DueDate, &status, &i.PaidDate, &i.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	i.Status = entity.InstallmentStatus(status)
	i.DueDate = asDate(i.DueDate)
	if i.PaidDate != nil {
		paid := asDate(*i.PaidDate)
		i.PaidDate = &paid
	}
	return &i, nil
}
