package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0", formatMoney("0"))
	assert.Equal(t, "950", formatMoney("950"))
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "-1.500", formatMoney("-1500"))
}

func TestGenerateInvoicePDF(t *testing.T) {
	received := decimal.NewFromInt(50000)
	finalized := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	inv := &entity.Invoice{
		ID:       "2f1c7e9a-0000-4000-8000-000000000001",
		Status:   entity.InvoiceStatusFinalized,
		ClientID: "c1",
		Services: []entity.ServiceLine{{ActivityID: "a1", Name: "Depilación de cejas", Price: decimal.NewFromInt(20000), EmployeeID: "e1"}},
		Products: []entity.ProductLine{{ProductID: "p1", Name: "Crema", UnitPrice: decimal.NewFromInt(5000), Quantity: 2}},
		Payment:  entity.Payment{Method: entity.PaymentMethodCash, AmountReceived: &received, Change: decimal.NewFromInt(20000)},
		Totals: entity.Totals{
			ServicesTotal: decimal.NewFromInt(20000),
			ProductsTotal: decimal.NewFromInt(10000),
			GrandTotal:    decimal.NewFromInt(30000),
		},
		CourtesyProductID: "gift",
		Comment:           "cliente frecuente",
		CreatedAt:         finalized.Add(-time.Hour),
		FinalizedAt:       &finalized,
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), inv, appbilling.ReceiptData{
		BusinessName: "Salón Aurora",
		CourtesyName: "Muestra",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
