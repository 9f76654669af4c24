package repository

import "github.com/abastos/inventario-api/internal/domain/entity"

// CategoriaConConteo categoría más el número de productos que la referencian.
type CategoriaConConteo struct {
	entity.Categoria
	TotalProductos int
}

// CategoriaRepository define el puerto de persistencia para Categoria.
type CategoriaRepository interface {
	Create(categoria *entity.Categoria) error
	GetByID(id string) (*entity.Categoria, error)
	GetByNombre(nombre string) (*entity.Categoria, error)
	List() ([]*CategoriaConConteo, error)
	Update(categoria *entity.Categoria) error
	Delete(id string) error
}
