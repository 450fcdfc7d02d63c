package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gestion-api/internal/domain/billing"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCalculateTotals_ServicesAndProducts(t *testing.T) {
	services := []entity.ServiceLine{{ActivityID: "a1", Price: dec(20000), EmployeeID: "e1"}}
	products := []entity.ProductLine{{ProductID: "p1", UnitPrice: dec(5000), Quantity: 2}}

	got := billing.CalculateTotals(services, products)

	assert.True(t, got.ServicesTotal.Equal(dec(20000)))
	assert.True(t, got.ProductsTotal.Equal(dec(10000)))
	assert.True(t, got.GrandTotal.Equal(dec(30000)))
}

func TestCalculateTotals_Empty(t *testing.T) {
	got := billing.CalculateTotals(nil, nil)
	assert.True(t, got.GrandTotal.IsZero())
}

func TestCalculateTotals_IsPure(t *testing.T) {
	services := []entity.ServiceLine{{Price: dec(1500), EmployeeID: "e1"}}
	products := []entity.ProductLine{{UnitPrice: decimal.RequireFromString("1250.50"), Quantity: 3}}

	first := billing.CalculateTotals(services, products)
	second := billing.CalculateTotals(services, products)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.Equal(t, "5251.5", first.GrandTotal.String())
}

func TestCalculateChange(t *testing.T) {
	received := dec(30000)
	assert.True(t, billing.CalculateChange(&received, dec(30000)).IsZero())

	more := dec(50000)
	assert.True(t, billing.CalculateChange(&more, dec(30000)).Equal(dec(20000)))

	less := dec(10000)
	assert.True(t, billing.CalculateChange(&less, dec(30000)).IsZero(), "el cambio nunca es negativo")

	assert.True(t, billing.CalculateChange(nil, dec(30000)).IsZero())
}

func TestRecalculate_ReplacesPreviousTotals(t *testing.T) {
	received := dec(30000)
	inv := &entity.Invoice{
		Services: []entity.ServiceLine{{Price: dec(20000), EmployeeID: "e1"}},
		Products: []entity.ProductLine{{UnitPrice: dec(5000), Quantity: 2}},
		Payment:  entity.Payment{Method: entity.PaymentMethodCash, AmountReceived: &received},
	}
	billing.Recalculate(inv)
	assert.True(t, inv.Totals.GrandTotal.Equal(dec(30000)))
	assert.True(t, inv.Payment.Change.IsZero())

	inv.Products = nil
	billing.Recalculate(inv)
	assert.True(t, inv.Totals.ProductsTotal.IsZero())
	assert.True(t, inv.Totals.GrandTotal.Equal(dec(20000)))
	assert.True(t, inv.Payment.Change.Equal(dec(10000)))
}
