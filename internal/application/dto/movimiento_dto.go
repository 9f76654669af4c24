package dto

import "time"

// RegistrarMovimientoRequest entrada de POST /api/movimientos.
type RegistrarMovimientoRequest struct {
	ProductoID  string `json:"productoId"`
	Tipo        string `json:"tipo"` // ENTRADA, SALIDA, AJUSTE
	Cantidad    int    `json:"cantidad"`
	Descripcion string `json:"descripcion"`
}

// MovimientoResponse salida de una entrada del libro de movimientos.
type MovimientoResponse struct {
	ID          string           `json:"id"`
	Tipo        string           `json:"tipo"`
	Cantidad    int              `json:"cantidad"`
	Descripcion string           `json:"descripcion,omitempty"`
	Producto    *ProductoResumen `json:"producto,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// RegistroMovimientoResponse movimiento recién creado, enriquecido con el
// stock antes y después para mostrar al operador.
type RegistroMovimientoResponse struct {
	MovimientoResponse
	StockAnterior int `json:"stockAnterior"`
	StockNuevo    int `json:"stockNuevo"`
}

// KardexResponse historial cronológico de movimientos de un producto.
type KardexResponse struct {
	Producto    ProductoResponse     `json:"producto"`
	Movimientos []MovimientoResponse `json:"movimientos"`
}
