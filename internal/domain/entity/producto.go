package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un artículo del inventario.
// Stock es el contador derivado del libro de movimientos: solo la ruta de
// registro de movimientos lo modifica (bajo bloqueo de fila); ningún otro
// código debe escribirlo directamente.
type Producto struct {
	ID          string
	Codigo      string // código único
	Nombre      string
	Descripcion string
	Precio      decimal.Decimal // precio de venta
	Costo       decimal.Decimal // costo de adquisición
	Stock       int
	StockMinimo int
	Activo      bool
	CategoriaID string
	ProveedorID string // vacío si no tiene proveedor
	ImagenURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockBajo indica si el producto está en o por debajo de su umbral mínimo.
// Definición canónica: la misma que el predicado SQL stock <= stock_minimo.
func (p *Producto) StockBajo() bool {
	return p.Stock <= p.StockMinimo
}
