package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ProductionUseCase fila de produção: líneas de pedidos en estado Em Produção.
type ProductionUseCase struct {
	docs repository.DocumentRepository
	pdf  ProductionPDFGenerator
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(docs repository.DocumentRepository, pdf ProductionPDFGenerator) *ProductionUseCase {
	return &ProductionUseCase{docs: docs, pdf: pdf}
}

// Queue líneas en producción ordenadas por fecha de emisión.
func (uc *ProductionUseCase) Queue(ctx context.Context) ([]dto.ProductionItemResponse, error) {
	items, err := uc.docs.ListProductionItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toProductionItemResponse(it))
	}
	return out, nil
}

// RenderSheets imprime una ordem de produção por cada línea seleccionada de la fila.
func (uc *ProductionUseCase) RenderSheets(ctx context.Context, itemIDs []string) ([]byte, error) {
	if len(itemIDs) == 0 {
		return nil, domain.NewValidationError("ids", "selecione ao menos um item")
	}
	if uc.pdf == nil {
		return nil, fmt.Errorf("gerador de PDF não configurado")
	}
	queue, err := uc.docs.ListProductionItems(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var selected []repository.ProductionItem
	for _, it := range queue {
		if wanted[it.Item.ID] {
			selected = append(selected, it)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: nenhum dos itens está em produção", domain.ErrNotFound)
	}
	return uc.pdf.GenerateProductionSheets(selected)
}
