package repository

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// GetBy* devuelven (nil, nil) cuando no existe.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	Update(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByTradeName(ctx context.Context, tradeName string) (*entity.Client, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Client, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Client, error)
	Delete(ctx context.Context, id string) error
}
