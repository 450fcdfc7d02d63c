package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

type stubPDF struct {
	inv  *entity.Invoice
	data billing.ReceiptData
}

func (s *stubPDF) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, data billing.ReceiptData) ([]byte, error) {
	s.inv, s.data = inv, data
	return []byte("%PDF-stub"), nil
}

func TestDownloadInvoicePDF(t *testing.T) {
	f := newFixture(t, billing.Config{})
	ctx := context.Background()
	f.stockIn(t, "p1", 5)
	f.stockIn(t, "gift", 1)
	gen := &stubPDF{}
	uc := billing.NewPDFUseCase(f.invoices, f.catalog, gen, "Salón Aurora")

	req := scenarioA()
	req.CourtesyProductID = "gift"
	created, err := f.uc.CreateInvoice(ctx, "u1", req)
	require.NoError(t, err)

	_, _, err = uc.DownloadInvoicePDF(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un borrador no tiene comprobante")

	_, err = f.uc.FinalizeInvoice(ctx, created.ID, "u1")
	require.NoError(t, err)

	pdf, name, err := uc.DownloadInvoicePDF(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), pdf)
	assert.Equal(t, "factura_"+created.ID+".pdf", name)
	assert.Equal(t, "Muestra", gen.data.CourtesyName)
	assert.Equal(t, "Salón Aurora", gen.data.BusinessName)

	_, _, err = uc.DownloadInvoicePDF(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
