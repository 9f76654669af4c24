package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

// ProveedorUseCase casos de uso CRUD para proveedores.
type ProveedorUseCase struct {
	repo         repository.ProveedorRepository
	productoRepo repository.ProductoRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository, productoRepo repository.ProductoRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo, productoRepo: productoRepo}
}

// Listar devuelve todos los proveedores con el conteo de productos.
func (uc *ProveedorUseCase) Listar() ([]dto.ProveedorResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProveedorResponse(&p.Proveedor, p.TotalProductos))
	}
	return items, nil
}

// ObtenerPorID devuelve un proveedor, nil si no existe.
func (uc *ProveedorUseCase) ObtenerPorID(id string) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, nil
	}
	total, err := uc.productoRepo.CountByProveedor(id)
	if err != nil {
		return nil, err
	}
	out := toProveedorResponse(proveedor, total)
	return &out, nil
}

// Crear crea un proveedor activo.
func (uc *ProveedorUseCase) Crear(in dto.CreateProveedorRequest) (*dto.ProveedorResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	proveedor := &entity.Proveedor{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Contacto:  in.Contacto,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(proveedor); err != nil {
		return nil, err
	}
	out := toProveedorResponse(proveedor, 0)
	return &out, nil
}

// Actualizar actualización parcial. nil si el proveedor no existe.
func (uc *ProveedorUseCase) Actualizar(id string, in dto.UpdateProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		if *in.Nombre == "" {
			return nil, domain.ErrInvalidInput
		}
		proveedor.Nombre = *in.Nombre
	}
	if in.Contacto != nil {
		proveedor.Contacto = *in.Contacto
	}
	if in.Telefono != nil {
		proveedor.Telefono = *in.Telefono
	}
	if in.Email != nil {
		proveedor.Email = *in.Email
	}
	if in.Direccion != nil {
		proveedor.Direccion = *in.Direccion
	}
	if in.Activo != nil {
		proveedor.Activo = *in.Activo
	}
	proveedor.UpdatedAt = time.Now()
	if err := uc.repo.Update(proveedor); err != nil {
		return nil, err
	}
	total, err := uc.productoRepo.CountByProveedor(id)
	if err != nil {
		return nil, err
	}
	out := toProveedorResponse(proveedor, total)
	return &out, nil
}

// Eliminar borra un proveedor. ErrConflict mientras existan productos asociados.
func (uc *ProveedorUseCase) Eliminar(id string) error {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if proveedor == nil {
		return domain.ErrNotFound
	}
	total, err := uc.productoRepo.CountByProveedor(id)
	if err != nil {
		return err
	}
	if total > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toProveedorResponse(p *entity.Proveedor, totalProductos int) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Contacto:       p.Contacto,
		Telefono:       p.Telefono,
		Email:          p.Email,
		Direccion:      p.Direccion,
		Activo:         p.Activo,
		TotalProductos: totalProductos,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
