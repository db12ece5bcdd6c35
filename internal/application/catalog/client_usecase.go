// Package catalog casos de uso de los maestros: clientes y productos.
package catalog

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
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/taxid"
)

// ClientUseCase casos de uso para clientes.
type ClientUseCase struct {
	repo   repository.ClientRepository
	lookup CNPJLookup
	log    zerolog.Logger
}

// NewClientUseCase construye el caso de uso. lookup puede ser nil (sin consulta pública).
func NewClientUseCase(repo repository.ClientRepository, lookup CNPJLookup, log zerolog.Logger) *ClientUseCase {
	return &ClientUseCase{repo: repo, lookup: lookup, log: log}
}

// Create da de alta un cliente. Nome fantasia y CNPJ/CPF son únicos.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyClient(client, in); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, client); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update sobrescribe los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyClient(client, in); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, client); err != nil {
		return nil, err
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Get devuelve un cliente por ID.
func (uc *ClientUseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List lista clientes filtrando por nombre o documento.
func (uc *ClientUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Delete elimina el cliente. Falla con ErrConflict si tiene documentos.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Lookup consulta el CNPJ en la base pública y devuelve los datos para precargar el formulario.
// Es best effort: cualquier falla del proveedor se registra y se informa como ErrLookupUnavailable.
func (uc *ClientUseCase) Lookup(ctx context.Context, cnpj string) (*dto.ClientRequest, error) {
	digits := taxid.Digits(cnpj)
	if len(digits) != taxid.CNPJLength {
		return nil, domain.NewValidationError("cnpj", "CNPJ deve ter 14 dígitos")
	}
	if err := taxid.ValidateCNPJ(digits); err != nil {
		return nil, domain.NewValidationError("cnpj", "CNPJ inválido")
	}
	if uc.lookup == nil {
		return nil, ErrLookupUnavailable
	}
	prefill, err := uc.lookup.Lookup(ctx, digits)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		uc.log.Warn().Err(err).Str("cnpj", digits).Msg("consulta de CNPJ falhou")
		return nil, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}
	prefill.TaxID = digits
	return prefill, nil
}

func (uc *ClientUseCase) checkUnique(ctx context.Context, c *entity.Client) error {
	other, err := uc.repo.GetByTradeName(ctx, c.TradeName)
	if err != nil {
		return err
	}
	if other != nil && other.ID != c.ID {
		return &domain.ConflictError{Field: "trade_name", Value: c.TradeName}
	}
	if c.TaxID == "" {
		return nil
	}
	other, err = uc.repo.GetByTaxID(ctx, c.TaxID)
	if err != nil {
		return err
	}
	if other != nil && other.ID != c.ID {
		return &domain.ConflictError{Field: "tax_id", Value: c.TaxID}
	}
	return nil
}

func applyClient(c *entity.Client, in dto.ClientRequest) error {
	name := strings.TrimSpace(in.TradeName)
	if name == "" {
		return domain.NewValidationError("trade_name", "nome fantasia é obrigatório")
	}
	doc := taxid.Digits(in.TaxID)
	if doc != "" {
		if err := taxid.Validate(doc); err != nil {
			return domain.NewValidationError("tax_id", "CNPJ/CPF inválido")
		}
	}
	c.TradeName = name
	c.LegalName = strings.TrimSpace(in.LegalName)
	c.StateRegistration = strings.TrimSpace(in.StateRegistration)
	c.TaxID = doc
	c.Street = strings.TrimSpace(in.Street)
	c.Complement = strings.TrimSpace(in.Complement)
	c.District = strings.TrimSpace(in.District)
	c.City = strings.TrimSpace(in.City)
	c.State = strings.ToUpper(strings.TrimSpace(in.State))
	c.ZipCode = strings.TrimSpace(in.ZipCode)
	return nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:                c.ID,
		TradeName:         c.TradeName,
		LegalName:         c.LegalName,
		StateRegistration: c.StateRegistration,
		TaxID:             c.TaxID,
		TaxIDFormatted:    taxid.Format(c.TaxID),
		Street:            c.Street,
		Complement:        c.Complement,
		District:          c.District,
		City:              c.City,
		State:             c.State,
		ZipCode:           c.ZipCode,
	}
}
