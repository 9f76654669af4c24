package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Historial es la foto diaria de métricas agregadas del inventario.
// Una fila por día calendario (única sobre Fecha a medianoche local),
// creada o actualizada de forma idempotente desde el dashboard.
type Historial struct {
	ID             string
	Fecha          time.Time // medianoche local del día del snapshot
	TotalProductos int
	StockBajo      int
	Valorizacion   decimal.Decimal // Σ(stock × costo) sobre productos activos
	ValorVenta     decimal.Decimal // Σ(stock × precio) sobre productos activos
	Rentabilidad   decimal.Decimal // margen / valorización × 100 (0 si valorización es 0)
	CreatedAt      time.Time
}
