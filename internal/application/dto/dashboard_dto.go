package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResumenDTO KPIs principales del inventario.
type ResumenDTO struct {
	TotalProductos         int             `json:"totalProductos"`
	TotalCategorias        int             `json:"totalCategorias"`
	TotalProveedores       int             `json:"totalProveedores"`
	ProductosConStockBajo  int             `json:"productosConStockBajo"`
	ValorizacionInventario decimal.Decimal `json:"valorizacionInventario"` // Σ(stock × costo)
	ValorVentaPotencial    decimal.Decimal `json:"valorVentaPotencial"`    // Σ(stock × precio)
	MargenPotencial        decimal.Decimal `json:"margenPotencial"`        // venta − valorización
	Rentabilidad           decimal.Decimal `json:"rentabilidad"`           // margen / valorización × 100
}

// StockBajoDTO fila del widget de alertas.
type StockBajoDTO struct {
	ID          string `json:"id"`
	Codigo      string `json:"codigo"`
	Nombre      string `json:"nombre"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stockMinimo"`
	Categoria   string `json:"categoria"`
}

// CategoriaConteoDTO productos por categoría para el gráfico de distribución.
type CategoriaConteoDTO struct {
	ID             string `json:"id"`
	Nombre         string `json:"nombre"`
	ImagenURL      string `json:"imagenUrl,omitempty"`
	TotalProductos int    `json:"totalProductos"`
}

// HistorialDTO una foto diaria de métricas.
type HistorialDTO struct {
	Fecha          time.Time       `json:"fecha"`
	TotalProductos int             `json:"totalProductos"`
	StockBajo      int             `json:"stockBajo"`
	Valorizacion   decimal.Decimal `json:"valorizacion"`
	ValorVenta     decimal.Decimal `json:"valorVenta"`
	Rentabilidad   decimal.Decimal `json:"rentabilidad"`
}

// AlertasDTO agrupa las alertas del dashboard.
type AlertasDTO struct {
	StockBajo []StockBajoDTO `json:"stockBajo"`
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Resumen               ResumenDTO           `json:"resumen"`
	Alertas               AlertasDTO           `json:"alertas"`
	UltimosMovimientos    []MovimientoResponse `json:"ultimosMovimientos"`
	ProductosPorCategoria []CategoriaConteoDTO `json:"productosPorCategoria"`
	Historial             []HistorialDTO       `json:"historial"`
}
