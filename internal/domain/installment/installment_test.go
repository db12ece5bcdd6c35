package installment_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/installment"
)

var issue = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// ParsePaymentTerm
// ──────────────────────────────────────────────────────────────────────────────

func TestParsePaymentTerm_AVista(t *testing.T) {
	for _, code := range []string{installment.CashTerm, "à vista", "A VISTA", "  a vista ", "À VISTA"} {
		days, err := installment.ParsePaymentTerm(code)
		require.NoError(t, err, code)
		assert.Equal(t, []int{0}, days, code)
	}
}

func TestParsePaymentTerm_ListaDeDias(t *testing.T) {
	days, err := installment.ParsePaymentTerm("30/45/60 dias")
	require.NoError(t, err)
	assert.Equal(t, []int{30, 45, 60}, days)

	days, err = installment.ParsePaymentTerm("30 dias")
	require.NoError(t, err)
	assert.Equal(t, []int{30}, days)

	days, err = installment.ParsePaymentTerm("28/56")
	require.NoError(t, err)
	assert.Equal(t, []int{28, 56}, days)
}

func TestParsePaymentTerm_Invalido(t *testing.T) {
	for _, code := range []string{"", "   ", "30/x/60", "trinta dias", "30//60", "-30"} {
		_, err := installment.ParsePaymentTerm(code)
		require.Error(t, err, "%q debe fallar", code)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Split
// ──────────────────────────────────────────────────────────────────────────────

func TestSplit_PrimeraAbsorbeResiduo(t *testing.T) {
	parts := installment.Split(decimal.RequireFromString("100.00"), issue, []int{30, 45, 60})
	require.Len(t, parts, 3)

	assert.Equal(t, "33.34", parts[0].Amount.StringFixed(2))
	assert.Equal(t, "33.33", parts[1].Amount.StringFixed(2))
	assert.Equal(t, "33.33", parts[2].Amount.StringFixed(2))

	assert.Equal(t, issue.AddDate(0, 0, 30), parts[0].DueDate)
	assert.Equal(t, issue.AddDate(0, 0, 45), parts[1].DueDate)
	assert.Equal(t, issue.AddDate(0, 0, 60), parts[2].DueDate)
	for i, p := range parts {
		assert.Equal(t, i+1, p.Number)
		assert.Equal(t, entity.InstallmentOpen, p.Status)
		assert.Nil(t, p.PaidDate)
	}
}

func TestSplit_SumaExactaParaCualquierN(t *testing.T) {
	totals := []string{"100.00", "0.01", "999.99", "1234.57", "10", "7.77"}
	for _, tot := range totals {
		total := decimal.RequireFromString(tot)
		for n := 1; n <= 12; n++ {
			days := make([]int, n)
			for i := range days {
				days[i] = 30 * (i + 1)
			}
			sum := decimal.Zero
			for _, p := range installment.Split(total, issue, days) {
				sum = sum.Add(p.Amount)
			}
			assert.True(t, sum.Equal(total), "total %s en %d parcelas suma %s", tot, n, sum)
		}
	}
}

func TestSplit_AVistaUnaParcelaEnLaEmision(t *testing.T) {
	parts := installment.Split(decimal.RequireFromString("250.5"), issue, []int{0})
	require.Len(t, parts, 1)
	assert.Equal(t, "250.50", parts[0].Amount.StringFixed(2))
	assert.Equal(t, issue, parts[0].DueDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// DisplayStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestDisplayStatus(t *testing.T) {
	today := time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)
	open := &entity.Installment{Status: entity.InstallmentOpen, DueDate: time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC)}
	dueToday := &entity.Installment{Status: entity.InstallmentOpen, DueDate: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)}
	paid := &entity.Installment{Status: entity.InstallmentPaid, DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, entity.InstallmentOverdue, installment.DisplayStatus(open, today))
	assert.Equal(t, entity.InstallmentOpen, installment.DisplayStatus(dueToday, today), "vence hoy: aún no está vencida")
	assert.Equal(t, entity.InstallmentPaid, installment.DisplayStatus(paid, today), "pagada nunca se muestra vencida")
	assert.Equal(t, entity.InstallmentOpen, open.Status, "el estado persistido no cambia")
}
