// Package pdf implementa el documento imprimible de una operación de
// almacén (remito de entrega / comprobante de recepción).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Referencia + Tipo  │  Estado + Fecha programada    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RUTA: Origen → Destino                                     │
//	│  CONTACTO: proveedor/cliente + responsable                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Cantidad                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con la referencia + firmas                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/stockmaster/warehouse-api/internal/application/operations"
	"github.com/stockmaster/warehouse-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Ensure SlipGenerator implements operations.SlipGenerator.
var _ operations.SlipGenerator = (*SlipGenerator)(nil)

// SlipGenerator genera el documento de operación usando Maroto v2.
type SlipGenerator struct{}

// NewSlipGenerator construye el generador.
func NewSlipGenerator() *SlipGenerator { return &SlipGenerator{} }

// GenerateOperationSlip genera el PDF y devuelve sus bytes.
func (g *SlipGenerator) GenerateOperationSlip(op *entity.Operation, source, dest *entity.Location) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Documento de operación "+op.Reference, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(routeRow(op, source, dest))
	m.AddRows(contactRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(op.Items) {
		m.AddRows(r)
	}

	// Footer: QR con la referencia + firmas
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(op)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// typeLabel título humano del documento según el tipo de operación.
func typeLabel(opType string) string {
	switch opType {
	case entity.OperationTypeReceipt:
		return "COMPROBANTE DE RECEPCIÓN"
	case entity.OperationTypeDelivery:
		return "REMITO DE ENTREGA"
	case entity.OperationTypeAdjustment:
		return "AJUSTE DE INVENTARIO"
	}
	return "OPERACIÓN DE ALMACÉN"
}

// headerRow: referencia + tipo (izq) y estado + fecha programada (der).
func headerRow(op *entity.Operation) core.Row {
	fecha := op.ScheduleDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(op.Reference, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(typeLabel(op.Type), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+op.Status, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Programada: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// routeRow: origen → destino. Ubicación vacía = fuera del sistema
// (proveedor externo o cliente final).
func routeRow(op *entity.Operation, source, dest *entity.Location) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RUTA DEL MOVIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Origen: %s   |   Destino: %s",
				locationLabel(source),
				locationLabel(dest),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// contactRow: contacto (proveedor o cliente) y responsable.
func contactRow(op *entity.Operation) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTACTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Responsable: %s",
				nonEmpty(op.Contact, "—"),
				nonEmpty(op.Responsible, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 7, align.Left),
		h("Cantidad", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de la operación.
func tableItemRows(items []entity.OperationItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				"["+it.ProductSKU+"]",
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(7).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRows: QR con la referencia + espacios de firma.
func footerRows(op *entity.Operation) []core.Row {
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(op.Reference, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(4).Add(
				text.New("Entregado por:", props.Text{Size: 8, Top: 8, Color: colorGray}),
				text.New("_______________________", props.Text{Size: 9, Top: 24}),
			),
			col.New(4).Add(
				text.New("Recibido por:", props.Text{Size: 8, Top: 8, Color: colorGray}),
				text.New("_______________________", props.Text{Size: 9, Top: 24}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Documento generado por StockMaster. Verifique las cantidades al momento de la entrega.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func locationLabel(l *entity.Location) string {
	if l == nil {
		return "Externo"
	}
	if l.ShortCode != "" {
		return fmt.Sprintf("%s (%s)", l.Name, l.ShortCode)
	}
	return l.Name
}
