package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrConsistency       = errors.New("estado inconsistente")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)

// ValidationError entrada rechazada antes de cualquier escritura.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atajo para construir un *ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError identidad duplicada detectada en la capa de persistencia (nombre o CNPJ/CPF del cliente, SKU).
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("ya existe un registro con %s %q", e.Field, e.Value)
}

func (e *ConflictError) Unwrap() error { return ErrDuplicate }

// ConsistencyError la operación dejaría el documento en un estado incoherente
// (ej. pedido facturado sin parcelas).
type ConsistencyError struct {
	DocumentID string
	Reason     string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("documento %s: %s", e.DocumentID, e.Reason)
}

func (e *ConsistencyError) Unwrap() error { return ErrConsistency }

// Códigos estables expuestos en las respuestas de error.
const (
	CodeValidation        = "VALIDATION"
	CodeDuplicate         = "DUPLICATE"
	CodeConsistency       = "CONSISTENCY"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)

// ErrorCode clasifica err en uno de los códigos anteriores.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrDuplicate):
		return CodeDuplicate
	case errors.Is(err, ErrConsistency):
		return CodeConsistency
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	default:
		return CodeInternal
	}
}
