package catalog

import (
	"context"
	"errors"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
)

// ErrLookupUnavailable la consulta pública de CNPJ falló o no está configurada. El formulario sigue
// funcionando con carga manual.
var ErrLookupUnavailable = errors.New("consulta de CNPJ indisponível")

// CNPJLookup consulta datos públicos de un CNPJ para precargar el alta de cliente.
// Devuelve domain.ErrNotFound si el CNPJ no existe en la base pública.
type CNPJLookup interface {
	Lookup(ctx context.Context, cnpj string) (*dto.ClientRequest, error)
}
