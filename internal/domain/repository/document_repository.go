package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// DocumentFilter criterios de listado de pedidos y presupuestos.
type DocumentFilter struct {
	Type     entity.DocumentType
	Status   entity.DocumentStatus
	ClientID string
	Limit    int
	Offset   int
}

// DocumentSummary fila de listado (cabecera + nombre del cliente).
type DocumentSummary struct {
	Document   *entity.Document
	ClientName string
}

// ProductionItem línea de un pedido en producción, con lo necesario para la ordem de produção.
type ProductionItem struct {
	Item           *entity.LineItem
	DocumentID     string
	DocumentNumber string
	IssueDate      time.Time
	DeliveryDays   int
	ClientName     string
}

// DocumentRepository puerto de persistencia de documentos y sus líneas.
// Usable con pool o tx; las operaciones de varios pasos se agrupan con un TxRunner.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	// Update sobrescribe la cabecera editable y el total. Tipo y número no cambian.
	Update(ctx context.Context, doc *entity.Document) error
	UpdateStatus(ctx context.Context, id string, status entity.DocumentStatus) error
	SetInvoiceNumber(ctx context.Context, id, invoiceNumber string) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	List(ctx context.Context, f DocumentFilter) ([]DocumentSummary, error)
	// Delete elimina el documento; líneas y parcelas caen por cascada.
	Delete(ctx context.Context, id string) error

	CreateItems(ctx context.Context, items []*entity.LineItem) error
	DeleteItems(ctx context.Context, documentID string) error
	ListItems(ctx context.Context, documentID string) ([]*entity.LineItem, error)
	ListProductionItems(ctx context.Context) ([]ProductionItem, error)

	// LastSequence último número emitido para el tipo (0 si no hay).
	LastSequence(ctx context.Context, t entity.DocumentType) (int64, error)
	// NextSequence reserva el siguiente número en el contador autoritativo; start si es el primero.
	NextSequence(ctx context.Context, t entity.DocumentType, start int64) (int64, error)
}
