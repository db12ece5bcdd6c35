package sales

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repos de documentos y parcelas.
// Si fn devuelve error no queda nada escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		documents repository.DocumentRepository,
		installments repository.InstallmentRepository,
	) error) error
}

// InstallmentGenerator genera las parcelas de un pedido usando el repo de la transacción del caller.
// Es idempotente: si el pedido ya tiene parcelas las devuelve sin crear otras.
type InstallmentGenerator interface {
	GenerateInTx(ctx context.Context, installments repository.InstallmentRepository, order *entity.Document) ([]*entity.Installment, error)
}

// DocumentPDFGenerator renderiza un pedido o presupuesto.
type DocumentPDFGenerator interface {
	GenerateDocument(snap *DocumentSnapshot) ([]byte, error)
}

// ProductionPDFGenerator renderiza las ordens de produção, una hoja por línea.
type ProductionPDFGenerator interface {
	GenerateProductionSheets(items []repository.ProductionItem) ([]byte, error)
}
