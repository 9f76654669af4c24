package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest entrada para crear un producto.
type CreateProductoRequest struct {
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Costo       decimal.Decimal `json:"costo"`
	Stock       int             `json:"stock"`
	StockMinimo int             `json:"stockMinimo"`
	CategoriaID string          `json:"categoriaId"`
	ProveedorID string          `json:"proveedorId"`
	ImagenURL   string          `json:"imagenUrl"`
}

// UpdateProductoRequest entrada para actualización parcial.
// Stock no es actualizable aquí: se maneja vía movimientos.
type UpdateProductoRequest struct {
	Codigo      *string          `json:"codigo"`
	Nombre      *string          `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	Costo       *decimal.Decimal `json:"costo"`
	StockMinimo *int             `json:"stockMinimo"`
	CategoriaID *string          `json:"categoriaId"`
	ProveedorID *string          `json:"proveedorId"`
	Activo      *bool            `json:"activo"`
	ImagenURL   *string          `json:"imagenUrl"`
}

// ProductoResumen referencia mínima a un producto (para movimientos).
type ProductoResumen struct {
	ID     string `json:"id"`
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID          string             `json:"id"`
	Codigo      string             `json:"codigo"`
	Nombre      string             `json:"nombre"`
	Descripcion string             `json:"descripcion"`
	Precio      decimal.Decimal    `json:"precio"`
	Costo       decimal.Decimal    `json:"costo"`
	Stock       int                `json:"stock"`
	StockMinimo int                `json:"stockMinimo"`
	StockBajo   bool               `json:"stockBajo"`
	Activo      bool               `json:"activo"`
	CategoriaID string             `json:"categoriaId"`
	ProveedorID string             `json:"proveedorId,omitempty"`
	ImagenURL   string             `json:"imagenUrl,omitempty"`
	Categoria   *CategoriaResponse `json:"categoria,omitempty"`
	Proveedor   *ProveedorResponse `json:"proveedor,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ProductoDetalleResponse producto con su historial reciente de movimientos.
type ProductoDetalleResponse struct {
	ProductoResponse
	Movimientos []MovimientoResponse `json:"movimientos"`
}
