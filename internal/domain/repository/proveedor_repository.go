package repository

import "github.com/abastos/inventario-api/internal/domain/entity"

// ProveedorConConteo proveedor más el número de productos que lo referencian.
type ProveedorConConteo struct {
	entity.Proveedor
	TotalProductos int
}

// ProveedorRepository define el puerto de persistencia para Proveedor.
type ProveedorRepository interface {
	Create(proveedor *entity.Proveedor) error
	GetByID(id string) (*entity.Proveedor, error)
	List() ([]*ProveedorConConteo, error)
	Update(proveedor *entity.Proveedor) error
	Delete(id string) error
}
