package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/abastos/inventario-api/internal/domain/entity"
)

// ProductoStockBajo fila del widget de alertas de stock bajo.
type ProductoStockBajo struct {
	ID              string
	Codigo          string
	Nombre          string
	Stock           int
	StockMinimo     int
	CategoriaNombre string
}

// DashboardRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only salvo UpsertHistorial, que escribe la
// foto diaria de forma idempotente (única sobre la fecha).
type DashboardRepository interface {
	CountProductosActivos(ctx context.Context) (int, error)
	CountCategorias(ctx context.Context) (int, error)
	CountProveedoresActivos(ctx context.Context) (int, error)
	// CountStockBajo cuenta productos activos con stock <= stock_minimo.
	CountStockBajo(ctx context.Context) (int, error)
	// TopStockBajo devuelve los `limit` productos activos con stock <= stock_minimo,
	// ordenados por stock ascendente.
	TopStockBajo(ctx context.Context, limit int) ([]*ProductoStockBajo, error)
	UltimosMovimientos(ctx context.Context, limit int) ([]*MovimientoConProducto, error)
	ProductosPorCategoria(ctx context.Context) ([]*CategoriaConConteo, error)
	// HistorialReciente devuelve las últimas `limit` fotos diarias, ascendente por fecha.
	HistorialReciente(ctx context.Context, limit int) ([]*entity.Historial, error)
	// Finanzas es el agregado crudo: Σ(stock×costo) y Σ(stock×precio) sobre activos.
	// COALESCE a cero si no hay filas.
	Finanzas(ctx context.Context) (valorizacion, valorVenta decimal.Decimal, err error)
	UpsertHistorial(ctx context.Context, historial *entity.Historial) error
}
