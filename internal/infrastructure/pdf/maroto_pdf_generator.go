// Package pdf implementa la representación imprimible de un documento de
// inventario validado (recepción, entrega, traslado o ajuste).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento  │  N° Referencia + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLES: Estado / Tercero / Origen / Destino              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | SKU | Demandado | Cumplido | UdM         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de soporte interno                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	appoperation "github.com/jhoicas/stockmaster-api/internal/application/operation"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// titles título legible por tipo de documento.
var titles = map[string]string{
	entity.OperationTypeReceipt:    "RECEPCIÓN DE MERCANCÍA",
	entity.OperationTypeDelivery:   "ENTREGA A CLIENTE",
	entity.OperationTypeTransfer:   "TRASLADO INTERNO",
	entity.OperationTypeAdjustment: "AJUSTE DE INVENTARIO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa operation.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOperationPDF genera el PDF del documento y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOperationPDF(
	_ context.Context,
	op *entity.Operation,
	lines []appoperation.LineForPDF,
	source, destination *entity.Location,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Documento de Inventario "+op.ReferenceNumber, true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailsRows(op, source, destination)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(op))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo de documento (izq) y referencia + fecha (der).
func headerRow(op *entity.Operation) core.Row {
	title := titles[op.OperationType]
	if title == "" {
		title = op.OperationType
	}
	fecha := op.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(op.ReferenceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// detailsRows: estado, tercero y ubicaciones involucradas.
func detailsRows(op *entity.Operation, source, destination *entity.Location) []core.Row {
	partner := op.PartnerName
	if partner == "" {
		partner = "—"
	}
	validada := "—"
	if op.ValidatedAt != nil {
		validada = op.ValidatedAt.Format("02/01/2006 15:04")
	}

	rows := []core.Row{
		row.New(12).Add(
			col.New(12).Add(
				text.New("DETALLES", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(fmt.Sprintf("Estado: %s   |   Tercero: %s   |   Validado: %s",
					op.Status, partner, validada,
				), props.Text{Size: 8, Top: 7, Color: colorGray}),
			),
		),
	}

	origen := locationLabel(source)
	destino := locationLabel(destination)
	rows = append(rows, row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Origen: %s   |   Destino: %s", origen, destino),
				props.Text{Size: 8, Top: 1, Color: colorGray}),
		),
	))
	return rows
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
		h("Producto", 5, align.Left),
		h("SKU", 2, align.Left),
		h("Demandado", 2, align.Right),
		h("Cumplido", 2, align.Right),
		h("UdM", 1, align.Center),
	)
}

// tableLineRows: una fila por línea del documento.
func tableLineRows(lines []appoperation.LineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.Demanded,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				l.Done,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.UOM,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// footerRow: leyenda de soporte interno.
func footerRow(op *entity.Operation) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Documento %s generado por el sistema de inventario. "+
				"Los movimientos de stock asociados son inmutables y auditables.", op.ReferenceNumber),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func locationLabel(loc *entity.Location) string {
	if loc == nil {
		return "—"
	}
	return fmt.Sprintf("%s (%s)", loc.Name, loc.Code)
}
