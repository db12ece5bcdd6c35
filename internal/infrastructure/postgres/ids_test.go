package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// noDB Querier sin implementación: cualquier consulta entra en pánico y rompe el test.
type noDB struct{ Querier }

const (
	okID  = "7f9c2b1e-4a3d-4c5b-9e8f-0a1b2c3d4e5f"
	badID = "abc"
)

// ──────────────────────────────────────────────────────────────────────────────
// IDs que no son UUID
// ──────────────────────────────────────────────────────────────────────────────

func TestValidID(t *testing.T) {
	assert.True(t, validID(okID))
	assert.True(t, validID("7F9C2B1E-4A3D-4C5B-9E8F-0A1B2C3D4E5F"))
	for _, id := range []string{"", badID, "cli-1", "7f9c2b1e-4a3d-4c5b-9e8f-0a1b2c3d4e5", "' OR 1=1 --"} {
		assert.False(t, validID(id), "%q", id)
	}
	assert.True(t, validRef(""))
	assert.False(t, validRef(badID))
}

func TestIsInvalidText(t *testing.T) {
	err := fmt.Errorf("get document: %w", &pgconn.PgError{Code: "22P02"})
	assert.True(t, isInvalidText(err))
	assert.False(t, isInvalidText(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isInvalidText(nil))
}

func TestLecturas_IDMalformadoEsNoEncontradoSinConsultar(t *testing.T) {
	ctx := context.Background()
	clients := NewClientRepository(noDB{})
	products := NewProductRepository(noDB{})
	docs := NewDocumentRepository(noDB{})
	insts := NewInstallmentRepository(noDB{})

	c, err := clients.GetByID(ctx, badID)
	require.NoError(t, err)
	assert.Nil(t, c)

	p, err := products.GetByID(ctx, badID)
	require.NoError(t, err)
	assert.Nil(t, p)

	d, err := docs.GetByID(ctx, badID)
	require.NoError(t, err)
	assert.Nil(t, d)
	d, err = docs.GetForUpdate(ctx, badID)
	require.NoError(t, err)
	assert.Nil(t, d)

	items, err := docs.ListItems(ctx, badID)
	require.NoError(t, err)
	assert.Empty(t, items)
	require.NoError(t, docs.DeleteItems(ctx, badID))

	list, err := docs.List(ctx, repository.DocumentFilter{ClientID: badID, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, list)

	i, err := insts.GetByID(ctx, badID)
	require.NoError(t, err)
	assert.Nil(t, i)
	i, err = insts.GetForUpdate(ctx, badID)
	require.NoError(t, err)
	assert.Nil(t, i)

	schedule, err := insts.ListByDocument(ctx, badID)
	require.NoError(t, err)
	assert.Empty(t, schedule)
	n, err := insts.CountUnpaid(ctx, badID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEscrituras_IDMalformadoDevuelveErrNotFound(t *testing.T) {
	ctx := context.Background()
	clients := NewClientRepository(noDB{})
	products := NewProductRepository(noDB{})
	docs := NewDocumentRepository(noDB{})
	insts := NewInstallmentRepository(noDB{})

	assert.ErrorIs(t, clients.Update(ctx, &entity.Client{ID: badID}), domain.ErrNotFound)
	assert.ErrorIs(t, clients.Delete(ctx, badID), domain.ErrNotFound)
	assert.ErrorIs(t, products.Update(ctx, &entity.Product{ID: badID}), domain.ErrNotFound)
	assert.ErrorIs(t, products.Delete(ctx, badID), domain.ErrNotFound)

	assert.ErrorIs(t, docs.Update(ctx, &entity.Document{ID: badID, ClientID: okID}), domain.ErrNotFound)
	assert.ErrorIs(t, docs.UpdateStatus(ctx, badID, entity.StatusInvoiced), domain.ErrNotFound)
	assert.ErrorIs(t, docs.SetInvoiceNumber(ctx, badID, "000123"), domain.ErrNotFound)
	assert.ErrorIs(t, docs.Delete(ctx, badID), domain.ErrNotFound)
	assert.ErrorIs(t, insts.UpdatePayment(ctx, badID, entity.InstallmentPaid, nil), domain.ErrNotFound)
}

func TestReferencias_IDMalformadoEsErrorDeValidacion(t *testing.T) {
	ctx := context.Background()
	docs := NewDocumentRepository(noDB{})

	err := docs.Create(ctx, &entity.Document{ID: okID, ClientID: badID})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "client_id", vErr.Field)

	err = docs.Create(ctx, &entity.Document{ID: okID, ClientID: okID, SourceQuoteID: badID})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "source_quote_id", vErr.Field)

	err = docs.Update(ctx, &entity.Document{ID: okID, ClientID: "x"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "client_id", vErr.Field)

	err = docs.CreateItems(ctx, []*entity.LineItem{
		{ID: okID, DocumentID: okID, Position: 1, ProductID: okID},
		{ID: okID, DocumentID: okID, Position: 2, ProductID: "x"},
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "product_id", vErr.Field)
	assert.Equal(t, domain.CodeValidation, domain.ErrorCode(err))
}
