package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

// CategoriaUseCase casos de uso CRUD para categorías.
type CategoriaUseCase struct {
	repo         repository.CategoriaRepository
	productoRepo repository.ProductoRepository
}

// NewCategoriaUseCase construye el caso de uso.
func NewCategoriaUseCase(repo repository.CategoriaRepository, productoRepo repository.ProductoRepository) *CategoriaUseCase {
	return &CategoriaUseCase{repo: repo, productoRepo: productoRepo}
}

// Listar devuelve todas las categorías con el conteo de productos, por nombre.
func (uc *CategoriaUseCase) Listar() ([]dto.CategoriaResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoriaResponse{
			ID:             c.ID,
			Nombre:         c.Nombre,
			Descripcion:    c.Descripcion,
			ImagenURL:      c.ImagenURL,
			TotalProductos: c.TotalProductos,
			CreatedAt:      c.CreatedAt,
			UpdatedAt:      c.UpdatedAt,
		})
	}
	return items, nil
}

// ObtenerPorID devuelve una categoría, nil si no existe.
func (uc *CategoriaUseCase) ObtenerPorID(id string) (*dto.CategoriaResponse, error) {
	categoria, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, nil
	}
	total, err := uc.productoRepo.CountByCategoria(id)
	if err != nil {
		return nil, err
	}
	return &dto.CategoriaResponse{
		ID:             categoria.ID,
		Nombre:         categoria.Nombre,
		Descripcion:    categoria.Descripcion,
		ImagenURL:      categoria.ImagenURL,
		TotalProductos: total,
		CreatedAt:      categoria.CreatedAt,
		UpdatedAt:      categoria.UpdatedAt,
	}, nil
}

// Crear crea una categoría. Nombre duplicado devuelve ErrDuplicate.
func (uc *CategoriaUseCase) Crear(in dto.CreateCategoriaRequest) (*dto.CategoriaResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	categoria := &entity.Categoria{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		ImagenURL:   in.ImagenURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(categoria); err != nil {
		return nil, err
	}
	return &dto.CategoriaResponse{
		ID:          categoria.ID,
		Nombre:      categoria.Nombre,
		Descripcion: categoria.Descripcion,
		ImagenURL:   categoria.ImagenURL,
		CreatedAt:   categoria.CreatedAt,
		UpdatedAt:   categoria.UpdatedAt,
	}, nil
}

// Actualizar actualización parcial. nil si la categoría no existe.
func (uc *CategoriaUseCase) Actualizar(id string, in dto.UpdateCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		if *in.Nombre == "" {
			return nil, domain.ErrInvalidInput
		}
		categoria.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		categoria.Descripcion = *in.Descripcion
	}
	if in.ImagenURL != nil {
		categoria.ImagenURL = *in.ImagenURL
	}
	categoria.UpdatedAt = time.Now()
	if err := uc.repo.Update(categoria); err != nil {
		return nil, err
	}
	return &dto.CategoriaResponse{
		ID:          categoria.ID,
		Nombre:      categoria.Nombre,
		Descripcion: categoria.Descripcion,
		ImagenURL:   categoria.ImagenURL,
		CreatedAt:   categoria.CreatedAt,
		UpdatedAt:   categoria.UpdatedAt,
	}, nil
}

// Eliminar borra una categoría. Falla con ErrConflict mientras existan
// productos que la referencien; la fila queda intacta.
func (uc *CategoriaUseCase) Eliminar(id string) error {
	categoria, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if categoria == nil {
		return domain.ErrNotFound
	}
	total, err := uc.productoRepo.CountByCategoria(id)
	if err != nil {
		return err
	}
	if total > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}
