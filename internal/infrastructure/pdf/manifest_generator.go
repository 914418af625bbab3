// Package pdf implementa la generación de la guía de traslado: el documento
// impreso que acompaña la mercancía entre sedes.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: GUÍA DE TRASLADO + N° + Fecha + Estado              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN:  Sede + Dirección                                   │
//	│  DESTINO: Sede + Dirección                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Descripción | Cantidad                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  QR con el ID para confirmar recepción + Observaciones       │
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

	"github.com/nmarin/posflow-api/internal/application/scope"
	apptransfer "github.com/nmarin/posflow-api/internal/application/transfer"
	"github.com/nmarin/posflow-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ apptransfer.ManifestGenerator = (*MarotoManifestGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoManifestGenerator implementa transfer.ManifestGenerator usando Maroto v2.
type MarotoManifestGenerator struct{}

// NewMarotoManifestGenerator construye el generador.
func NewMarotoManifestGenerator() *MarotoManifestGenerator { return &MarotoManifestGenerator{} }

// GenerateManifest genera el PDF de la guía y devuelve sus bytes.
func (g *MarotoManifestGenerator) GenerateManifest(
	_ context.Context,
	t *entity.Transfer,
	from, to *scope.Location,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de Traslado", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(locationRow("ORIGEN", from))
	m.AddRows(locationRow("DESTINO", to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(t.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRows(t)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar guía: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + N° de guía (izq) y fecha + estado (der).
func headerRow(t *entity.Transfer) core.Row {
	fecha := t.CreatedAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("GUÍA DE TRASLADO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+t.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(transferTypeLabel(t.Type), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(strings.ToUpper(string(t.Status)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// locationRow: bloque de sede (origen o destino).
func locationRow(label string, loc *scope.Location) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(loc.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s  |  Dirección: %s",
				scopeTypeLabel(loc.Scope.Type),
				nonEmpty(loc.Address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de items.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 3, align.Left),
		h("Descripción", 6, align.Left),
		h("Cantidad", 3, align.Right),
	)
}

// tableItemRows: una fila por línea del traslado.
func tableItemRows(items []entity.TransferItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				it.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(6).Add(text.New(
				it.Name,
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

// footerRows: QR con el ID del traslado + observaciones + espacio de firmas.
func footerRows(t *entity.Transfer) []core.Row {
	rows := []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(t.ID, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR al recibir la\nmercancía para confirmar la entrega.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Observaciones: "+nonEmpty(t.Notes, "—"), props.Text{
					Size: 8, Top: 18, Left: 3,
				}),
			),
		),
		row.New(4),
		row.New(12).Add(
			col.New(6).Add(
				text.New("_______________________________", props.Text{Size: 9, Align: align.Center, Top: 2}),
				text.New("Entrega (origen)", props.Text{Size: 8, Align: align.Center, Top: 8, Color: colorGray}),
			),
			col.New(6).Add(
				text.New("_______________________________", props.Text{Size: 9, Align: align.Center, Top: 2}),
				text.New("Recibe (destino)", props.Text{Size: 8, Align: align.Center, Top: 8, Color: colorGray}),
			),
		),
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func transferTypeLabel(t string) string {
	if t == entity.TransferTypeBranchToBranch {
		return "TRASLADO ENTRE SUCURSALES"
	}
	return "TRASLADO ENTRE BODEGAS"
}

func scopeTypeLabel(t string) string {
	if t == entity.ScopeBranch {
		return "Sucursal"
	}
	return "Bodega"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
