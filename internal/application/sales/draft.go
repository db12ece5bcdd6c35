package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// Draft documento en edición, todavía sin número. Reemplaza el estado de sesión del formulario:
// se arma por request y se descarta después de emitir.
type Draft struct {
	Type          entity.DocumentType
	ClientID      string
	IssueDate     time.Time
	ShippingCost  decimal.Decimal
	PaymentMethod string
	PaymentTerm   string
	DeliveryDays  int
	Items         []*entity.LineItem
}

// NewDraft crea un borrador con el plazo de entrega por defecto.
func NewDraft(t entity.DocumentType, clientID string, issueDate time.Time) *Draft {
	return &Draft{
		Type:         t,
		ClientID:     clientID,
		IssueDate:    issueDate,
		DeliveryDays: entity.DefaultDeliveryDays,
	}
}

// AddItem agrega una línea al final.
func (d *Draft) AddItem(item *entity.LineItem) {
	d.Items = append(d.Items, item)
}

// Total suma de subtotales más frete, sin redondear.
func (d *Draft) Total() decimal.Decimal {
	return ComputeTotal(d.Items, d.ShippingCost)
}

// ComputeTotal Σ subtotal + frete a precisión completa. Se redondea a centavos al persistir.
func ComputeTotal(items []*entity.LineItem, shipping decimal.Decimal) decimal.Decimal {
	total := shipping
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// validate reglas comunes de emisión y edición. No consulta la base.
func (d *Draft) validate() error {
	if !d.Type.Valid() {
		return domain.NewValidationError("type", "tipo deve ser Pedido ou Orçamento")
	}
	if d.ClientID == "" {
		return domain.NewValidationError("client_id", "cliente é obrigatório")
	}
	if len(d.Items) == 0 {
		return domain.NewValidationError("items", "o documento precisa de ao menos um item")
	}
	if d.ShippingCost.IsNegative() {
		return domain.NewValidationError("shipping_cost", "frete não pode ser negativo")
	}
	if d.DeliveryDays < 0 {
		return domain.NewValidationError("delivery_days", "prazo de entrega não pode ser negativo")
	}
	if d.PaymentMethod != "" && !validPaymentMethod(d.PaymentMethod) {
		return domain.NewValidationError("payment_method", "forma de pagamento inválida: "+d.PaymentMethod)
	}
	return nil
}

func validPaymentMethod(m string) bool {
	for _, v := range entity.PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}
