// Package pdf implementa la generación del reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: conteos + valorización / margen / rentabilidad     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS: tabla de productos con stock bajo                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INVENTARIO: Código | Producto | Stock | Costo | Precio      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/reports"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlerta  = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reports.InventarioPDFGenerator = (*MarotoInventarioGenerator)(nil)

// MarotoInventarioGenerator implementa reports.InventarioPDFGenerator usando Maroto v2.
type MarotoInventarioGenerator struct{}

// NewMarotoInventarioGenerator construye el generador.
func NewMarotoInventarioGenerator() *MarotoInventarioGenerator { return &MarotoInventarioGenerator{} }

// GenerateInventarioPDF genera el PDF y devuelve sus bytes.
func (g *MarotoInventarioGenerator) GenerateInventarioPDF(
	_ context.Context,
	resumen dto.ResumenDTO,
	stockBajo []*repository.ProductoStockBajo,
	productos []*entity.Producto,
	generadoEn time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generadoEn))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(resumenRows(resumen)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(stockBajo) > 0 {
		m.AddRows(seccionRow("Alertas de stock bajo"))
		m.AddRows(stockBajoHeaderRow())
		for _, p := range stockBajo {
			m.AddRows(stockBajoRow(p))
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(seccionRow("Inventario"))
	m.AddRows(inventarioHeaderRow())
	for _, p := range productos {
		m.AddRows(inventarioRow(p))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generadoEn time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Inventario", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generadoEn.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func resumenRows(r dto.ResumenDTO) []core.Row {
	return []core.Row{
		row.New(8).Add(
			kpiCol("Productos activos", fmt.Sprintf("%d", r.TotalProductos)),
			kpiCol("Categorías", fmt.Sprintf("%d", r.TotalCategorias)),
			kpiCol("Proveedores", fmt.Sprintf("%d", r.TotalProveedores)),
			kpiCol("Stock bajo", fmt.Sprintf("%d", r.ProductosConStockBajo)),
		),
		row.New(8).Add(
			kpiCol("Valorización", r.ValorizacionInventario.StringFixed(2)),
			kpiCol("Valor de venta", r.ValorVentaPotencial.StringFixed(2)),
			kpiCol("Margen", r.MargenPotencial.StringFixed(2)),
			kpiCol("Rentabilidad %", r.Rentabilidad.StringFixed(2)),
		),
	}
}

func kpiCol(label, value string) core.Col {
	return col.New(3).Add(
		text.New(label, props.Text{Size: 7, Color: colorGray}),
		text.New(value, props.Text{Size: 10, Style: fontstyle.Bold, Top: 3.5}),
	)
}

func seccionRow(titulo string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1.5,
			}),
		),
	)
}

func stockBajoHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol(2, "Código"),
		headerCol(5, "Producto"),
		headerCol(3, "Categoría"),
		headerCol(1, "Stock"),
		headerCol(1, "Mínimo"),
	)
}

func stockBajoRow(p *repository.ProductoStockBajo) core.Row {
	return row.New(5).Add(
		cellCol(2, p.Codigo, nil),
		cellCol(5, p.Nombre, nil),
		cellCol(3, p.CategoriaNombre, nil),
		cellCol(1, fmt.Sprintf("%d", p.Stock), colorAlerta),
		cellCol(1, fmt.Sprintf("%d", p.StockMinimo), nil),
	)
}

func inventarioHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol(2, "Código"),
		headerCol(5, "Producto"),
		headerCol(1, "Stock"),
		headerCol(2, "Costo"),
		headerCol(2, "Precio"),
	)
}

func inventarioRow(p *entity.Producto) core.Row {
	var stockColor *props.Color
	if p.StockBajo() {
		stockColor = colorAlerta
	}
	return row.New(5).Add(
		cellCol(2, p.Codigo, nil),
		cellCol(5, p.Nombre, nil),
		cellCol(1, fmt.Sprintf("%d", p.Stock), stockColor),
		cellCol(2, p.Costo.StringFixed(2), nil),
		cellCol(2, p.Precio.StringFixed(2), nil),
	)
}

func headerCol(size int, titulo string) core.Col {
	return col.New(size).Add(
		text.New(titulo, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}),
	)
}

func cellCol(size int, valor string, color *props.Color) core.Col {
	p := props.Text{Size: 8}
	if color != nil {
		p.Color = color
		p.Style = fontstyle.Bold
	}
	return col.New(size).Add(text.New(valor, p))
}
