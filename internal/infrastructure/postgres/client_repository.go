package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, trade_name, legal_name, state_registration, tax_id, street, complement,
	district, city, state, zip_code, created_at, updated_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TradeName, c.LegalName, c.StateRegistration, c.TaxID, c.Street, c.Complement,
		c.District, c.City, c.State, c.ZipCode, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return conflictError(err, "trade_name", c.TradeName)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// Update actualiza todos los campos editables.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	if !validID(c.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE clients SET trade_name = $2, legal_name = $3, state_registration = $4, tax_id = $5,
			street = $6, complement = $7, district = $8, city = $9, state = $10, zip_code = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.TradeName, c.LegalName, c.StateRegistration, c.TaxID, c.Street, c.Complement,
		c.District, c.City, c.State, c.ZipCode, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return conflictError(err, "trade_name", c.TradeName)
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

// GetByTradeName busca por nome fantasia sin distinguir mayúsculas.
func (r *ClientRepo) GetByTradeName(ctx context.Context, tradeName string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE lower(trade_name) = lower($1)`, tradeName)
}

// GetByTaxID busca por CNPJ/CPF (solo dígitos).
func (r *ClientRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Client, error) {
	if taxID == "" {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE tax_id = $1`, taxID)
}

// List clientes ordenados por nome fantasia. search filtra por nome, razão social o documento.
func (r *ClientRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE $1 = '' OR trade_name ILIKE '%' || $1 || '%' OR legal_name ILIKE '%' || $1 || '%' OR tax_id LIKE $1 || '%'
		ORDER BY lower(trade_name)
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina el cliente. Con documentos asociados devuelve domain.ErrConflict.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente possui pedidos ou orçamentos", domain.ErrConflict)
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) getOne(ctx context.Context, query string, arg any) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.TradeName, &c.LegalName, &c.StateRegistration, &c.TaxID, &c.Street, &c.Complement,
		&c.District, &c.City, &c.State, &c.ZipCode, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
