// Package installment convierte el prazo de pagamento en parcelas y deriva su estado visible.
package installment

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// CashTerm código de pago al contado.
const CashTerm = "À vista"

// ParsePaymentTerm devuelve los días desde la emisión de cada parcela.
// "À vista" (sin importar mayúsculas ni acentos) -> [0]; "30/45/60 dias" -> [30 45 60].
func ParsePaymentTerm(code string) ([]int, error) {
	s := normalizeTerm(code)
	if s == "" {
		return nil, domain.NewValidationError("payment_term", "prazo de pagamento não informado")
	}
	if s == normalizeTerm(CashTerm) {
		return []int{0}, nil
	}
	s = strings.ReplaceAll(s, "dias", "")
	s = strings.ReplaceAll(s, "dia", "")

	parts := strings.Split(s, "/")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, domain.NewValidationError("payment_term", "prazo de pagamento inválido: "+code)
		}
		days = append(days, n)
	}
	return days, nil
}

func normalizeTerm(code string) string {
	return strings.ToLower(strings.TrimSpace(stripAccents(code)))
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Split reparte total en len(days) parcelas redondeadas a centavos. La primera absorbe el residuo
// para que la suma sea exactamente el total.
func Split(total decimal.Decimal, issueDate time.Time, days []int) []*entity.Installment {
	n := len(days)
	if n == 0 {
		return nil
	}
	total = total.Round(2)
	each := total.Div(decimal.NewFromInt(int64(n))).Round(2)
	first := total.Sub(each.Mul(decimal.NewFromInt(int64(n - 1))))

	out := make([]*entity.Installment, 0, n)
	for i, d := range days {
		amount := each
		if i == 0 {
			amount = first
		}
		out = append(out, &entity.Installment{
			Number:  i + 1,
			Amount:  amount,
			DueDate: issueDate.AddDate(0, 0, d),
			Status:  entity.InstallmentOpen,
		})
	}
	return out
}

// DisplayStatus estado a mostrar: una parcela abierta con vencimiento anterior a hoy se muestra vencida.
// Las pagas nunca se recalculan.
func DisplayStatus(inst *entity.Installment, today time.Time) entity.InstallmentStatus {
	if inst.Status == entity.InstallmentPaid {
		return entity.InstallmentPaid
	}
	if dateOnly(inst.DueDate).Before(dateOnly(today)) {
		return entity.InstallmentOverdue
	}
	return entity.InstallmentOpen
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
