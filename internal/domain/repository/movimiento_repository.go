package repository

import (
	"time"

	"github.com/abastos/inventario-api/internal/domain/entity"
)

// MovimientoFiltros filtros opcionales del listado de movimientos.
type MovimientoFiltros struct {
	ProductoID string
	Tipo       string
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int // 0 = default del repositorio (100)
}

// MovimientoConProducto movimiento enriquecido con código y nombre del producto.
type MovimientoConProducto struct {
	entity.Movimiento
	ProductoCodigo string
	ProductoNombre string
}

// MovimientoRepository define el puerto de persistencia del libro de movimientos.
// Los movimientos son inmutables: no hay Update.
type MovimientoRepository interface {
	Create(movimiento *entity.Movimiento) error
	List(filtros MovimientoFiltros) ([]*MovimientoConProducto, error)
	// ListByProducto devuelve el kardex completo del producto, más reciente primero.
	ListByProducto(productoID string) ([]*entity.Movimiento, error)
	// DeleteByProducto elimina en bloque el libro de un producto (al borrarlo).
	DeleteByProducto(productoID string) error
}
