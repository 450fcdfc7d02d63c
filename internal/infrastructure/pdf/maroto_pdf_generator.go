// Package pdf genera el comprobante de venta de una factura finalizada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio              │  N° Factura + Fecha          │
//	│  CLIENTE + estado                                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SERVICIOS: Descripción | Empleado | Precio                  │
//	│  PRODUCTOS: Cant | Descripción | P.Unit | Subtotal           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Servicios / Productos / TOTAL / Pago / Cambio      │
//	│  FOOTER: QR con el ID + cortesía + comentario                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 40, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var paymentLabels = map[string]string{
	entity.PaymentMethodCash:     "Efectivo",
	entity.PaymentMethodTransfer: "Transferencia",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	data appbilling.ReceiptData,
) ([]byte, error) {
	business := nonEmpty(data.BusinessName, "Comprobante de venta")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+invoice.ID, true).
		WithAuthor(business, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, business))
	m.AddRows(clientRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(invoice.Services) > 0 {
		m.AddRows(sectionTitle("SERVICIOS"))
		m.AddRows(serviceRows(invoice.Services)...)
	}
	if len(invoice.Products) > 0 {
		m.AddRows(sectionTitle("PRODUCTOS"))
		m.AddRows(productRows(invoice.Products)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(invoice, data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: negocio (izq) y N° factura + fecha de finalización (der).
func headerRow(invoice *entity.Invoice, business string) core.Row {
	date := invoice.CreatedAt
	if invoice.FinalizedAt != nil {
		date = *invoice.FinalizedAt
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(business, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(invoice.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clientRow(invoice *entity.Invoice) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Cliente: %s   |   Estado: %s", invoice.ClientID, invoice.Status), props.Text{
				Size: 9, Top: 2, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// serviceRows: una fila por servicio.
func serviceRows(services []entity.ServiceLine) []core.Row {
	result := make([]core.Row, 0, len(services))
	for _, s := range services {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				nonEmpty(s.Name, s.ActivityID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				s.EmployeeID,
				props.Text{Size: 8, Align: align.Left, Top: 1, Color: colorGray},
			)),
			col.New(3).Add(text.New(
				money(s.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// productRows: una fila por producto.
func productRows(products []entity.ProductLine) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				nonEmpty(p.Name, p.ProductID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				money(p.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money(p.Subtotal()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	labels := []core.Component{
		label("Servicios:", 0),
		label("Productos:", 5),
		text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10}),
		label("Pago:", 16),
	}
	values := []core.Component{
		value(money(invoice.Totals.ServicesTotal), 0),
		value(money(invoice.Totals.ProductsTotal), 5),
		text.New(money(invoice.Totals.GrandTotal), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10}),
		value(nonEmpty(paymentLabels[invoice.Payment.Method], invoice.Payment.Method), 16),
	}
	if invoice.Payment.AmountReceived != nil {
		labels = append(labels, label("Recibido:", 21), label("Cambio:", 26))
		values = append(values, value(money(*invoice.Payment.AmountReceived), 21), value(money(invoice.Payment.Change), 26))
	}

	return row.New(32).Add(
		col.New(6),
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
	)
}

// footerRows: QR con el ID completo, cortesía y comentario.
func footerRows(invoice *entity.Invoice, data appbilling.ReceiptData) []core.Row {
	notes := make([]string, 0, 2)
	if invoice.CourtesyProductID != "" {
		notes = append(notes, "Cortesía: "+nonEmpty(data.CourtesyName, invoice.CourtesyProductID))
	}
	if invoice.Comment != "" {
		notes = append(notes, "Comentario: "+invoice.Comment)
	}
	return []core.Row{
		row.New(35).Add(
			col.New(3).Add(code.NewQr(invoice.ID, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New(strings.Join(notes, "\n"), props.Text{Size: 8, Top: 3, Left: 3, Color: colorGray}),
				text.New("Gracias por su visita.", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 22, Left: 3, Color: colorPrimary,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	return "$" + formatMoney(d.StringFixed(0))
}

// shortID primeros 8 caracteres del UUID en mayúsculas.
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "N° " + strings.ToUpper(id)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
