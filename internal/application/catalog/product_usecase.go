package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/pricing"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ProductUseCase casos de uso de productos. SKU, medidas, peso y costo se derivan siempre de la entrada.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, log: log}
}

// Create deriva los valores calculados y persiste el producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	p := &entity.Product{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := applyProduct(p, in); err != nil {
		return nil, err
	}
	if err := uc.checkSKU(ctx, p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("sku", p.SKU).Msg("produto cadastrado")
	return toProductResponse(p), nil
}

// Update recalcula SKU y derivados. Las líneas ya emitidas conservan su descripción original.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyProduct(p, in); err != nil {
		return nil, err
	}
	if err := uc.checkSKU(ctx, p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Get devuelve un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List lista productos, opcionalmente filtrando por SKU.
func (uc *ProductUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Delete elimina el producto. Las líneas que lo referencian quedan sin product_id pero conservan el SKU.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Preview calcula los derivados sin persistir. Una entrada inválida no es error: se informa en la respuesta.
func (uc *ProductUseCase) Preview(in dto.ProductRequest) *dto.ProductPreviewResponse {
	d, err := pricing.DeriveProduct(rawProduct(in))
	if err != nil {
		return &dto.ProductPreviewResponse{Error: err.Error(), SKU: d.SKU, Measures: d.Measures}
	}
	return &dto.ProductPreviewResponse{
		Valid:    true,
		SKU:      d.SKU,
		Measures: d.Measures,
		Weight:   d.Weight,
		Cost:     d.Cost,
	}
}

func (uc *ProductUseCase) checkSKU(ctx context.Context, p *entity.Product) error {
	other, err := uc.repo.GetBySKU(ctx, p.SKU)
	if err != nil {
		return err
	}
	if other != nil && other.ID != p.ID {
		return &domain.ConflictError{Field: "sku", Value: p.SKU}
	}
	return nil
}

func rawProduct(in dto.ProductRequest) pricing.RawProduct {
	return pricing.RawProduct{
		Width:      in.Width.String(),
		Height:     in.Height.String(),
		Thickness:  in.Thickness.String(),
		PricePerKg: in.PricePerKg.String(),
		Pigment:    in.Pigment,
		Material:   in.Material,
		Model:      in.Model,
	}
}

func applyProduct(p *entity.Product, in dto.ProductRequest) error {
	d, err := pricing.DeriveProduct(rawProduct(in))
	if err != nil {
		return err
	}
	p.SKU = d.SKU
	p.Width = d.Width
	p.Height = d.Height
	p.Thickness = d.Thickness
	p.Pigment = strings.TrimSpace(in.Pigment)
	p.Material = strings.TrimSpace(in.Material)
	p.Model = strings.TrimSpace(in.Model)
	p.Measures = d.Measures
	p.Weight = d.Weight
	p.PricePerKg = d.PricePerKg
	p.Cost = d.Cost
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Width:      p.Width,
		Height:     p.Height,
		Thickness:  p.Thickness,
		Pigment:    p.Pigment,
		Material:   p.Material,
		Model:      p.Model,
		Measures:   p.Measures,
		Weight:     p.Weight,
		PricePerKg: p.PricePerKg,
		Cost:       p.Cost,
	}
}
