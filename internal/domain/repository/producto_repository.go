package repository

import "github.com/abastos/inventario-api/internal/domain/entity"

// ProductoFiltros filtros opcionales del listado de productos.
// Los valores cero se ignoran; Activo es puntero para distinguir "sin filtro".
type ProductoFiltros struct {
	CategoriaID string
	ProveedorID string
	Activo      *bool
	Buscar      string // texto libre sobre nombre, código y descripción
	StockBajo   bool   // stock <= stock_minimo, resuelto como predicado SQL
}

// ProductoRepository define el puerto de persistencia para Producto (DIP).
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	GetByCodigo(codigo string) (*entity.Producto, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Producto, error)
	List(filtros ProductoFiltros) ([]*entity.Producto, error)
	Update(producto *entity.Producto) error
	// UpdateStock escribe el contador derivado; reservado a la ruta de movimientos.
	UpdateStock(id string, stock int) error
	Delete(id string) error
	CountByCategoria(categoriaID string) (int, error)
	CountByProveedor(proveedorID string) (int, error)
}
