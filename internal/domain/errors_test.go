package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/internal/domain"
)

func TestErrorCode_ClasificaErroresEnvueltos(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validacion", domain.NewValidationError("sku", "obrigatório"), domain.CodeValidation},
		{"duplicado", &domain.ConflictError{Field: "sku", Value: "X"}, domain.CodeDuplicate},
		{"consistencia", &domain.ConsistencyError{DocumentID: "d1", Reason: "sem parcelas"}, domain.CodeConsistency},
		{"transicion envuelta", fmt.Errorf("%w: Cancelado", domain.ErrInvalidTransition), domain.CodeInvalidTransition},
		{"no encontrado envuelto", fmt.Errorf("get: %w", domain.ErrNotFound), domain.CodeNotFound},
		{"conflicto", domain.ErrConflict, domain.CodeConflict},
		{"otro", errors.New("timeout"), domain.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.ErrorCode(tc.err))
		})
	}
}

func TestValidationError_MensajeConYSinCampo(t *testing.T) {
	assert.Equal(t, "sku: obrigatório", domain.NewValidationError("sku", "obrigatório").Error())
	assert.Equal(t, "sem itens", domain.NewValidationError("", "sem itens").Error())
	assert.ErrorIs(t, domain.NewValidationError("x", "y"), domain.ErrInvalidInput)
}
