package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// Primer número de cada serie.
const (
	OrderStart int64 = 1001
	QuoteStart int64 = 2001
)

// maxNumberAttempts intentos de emisión ante colisión de número.
const maxNumberAttempts = 3

// StartSequence primer número de la serie del tipo.
func StartSequence(t entity.DocumentType) int64 {
	if t == entity.DocumentTypeQuote {
		return QuoteStart
	}
	return OrderStart
}

// FormatNumber PED-1001 / ORC-2001.
func FormatNumber(t entity.DocumentType, seq int64) string {
	return fmt.Sprintf("%s-%d", t.Prefix(), seq)
}

// NextDocumentNumber número sugerido para un documento nuevo: max(último persistido + 1, counter).
// counter es el valor que la interfaz ya mostró; nunca baja del persistido. No reserva nada:
// el número definitivo se asigna al emitir.
func NextDocumentNumber(ctx context.Context, docs repository.DocumentRepository, t entity.DocumentType, counter int64) (string, int64, error) {
	if !t.Valid() {
		return "", 0, domain.NewValidationError("type", "tipo deve ser Pedido ou Orçamento")
	}
	last, err := docs.LastSequence(ctx, t)
	if err != nil {
		return "", 0, err
	}
	next := last + 1
	if last == 0 {
		next = StartSequence(t)
	}
	if counter > next {
		next = counter
	}
	return FormatNumber(t, next), next, nil
}

// isNumberConflict colisión de número entre dos emisiones concurrentes.
func isNumberConflict(err error) bool {
	var cErr *domain.ConflictError
	return errors.As(err, &cErr) && cErr.Field == "number"
}

// retryOnNumberConflict repite fn (cada intento es una transacción nueva) mientras falle por número duplicado.
func retryOnNumberConflict(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		if err = fn(); !isNumberConflict(err) {
			return err
		}
	}
	return err
}
