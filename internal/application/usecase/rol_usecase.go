package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

// RolUseCase casos de uso para roles y permisos. Los permisos son un catálogo
// fijo sembrado en la base: aquí solo se listan y se asocian a roles.
type RolUseCase struct {
	repo        repository.RolRepository
	permisoRepo repository.PermisoRepository
	usuarioRepo repository.UsuarioRepository
}

// NewRolUseCase construye el caso de uso.
func NewRolUseCase(
	repo repository.RolRepository,
	permisoRepo repository.PermisoRepository,
	usuarioRepo repository.UsuarioRepository,
) *RolUseCase {
	return &RolUseCase{repo: repo, permisoRepo: permisoRepo, usuarioRepo: usuarioRepo}
}

// Listar devuelve todos los roles con sus permisos.
func (uc *RolUseCase) Listar() ([]dto.RolResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.RolResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toRolResponse(r))
	}
	return items, nil
}

// ListarPermisos devuelve el catálogo de permisos.
func (uc *RolUseCase) ListarPermisos() ([]dto.PermisoResponse, error) {
	list, err := uc.permisoRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermisoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.PermisoResponse{ID: p.ID, Nombre: p.Nombre})
	}
	return items, nil
}

// Crear crea un rol con su conjunto de permisos. Nombre duplicado devuelve
// ErrDuplicate; un ID de permiso desconocido, ErrInvalidInput.
func (uc *RolUseCase) Crear(in dto.RolRequest) (*dto.RolResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.repo.GetByNombre(in.Nombre)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	permisos, err := uc.resolverPermisos(in.Permisos)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rol := &entity.Rol{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Permisos:    permisos,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(rol, in.Permisos); err != nil {
		return nil, err
	}
	out := toRolResponse(rol)
	return &out, nil
}

// Actualizar reemplaza nombre, descripción y el conjunto completo de permisos.
// nil si el rol no existe.
func (uc *RolUseCase) Actualizar(id string, in dto.RolRequest) (*dto.RolResponse, error) {
	rol, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rol == nil {
		return nil, nil
	}
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Nombre != rol.Nombre {
		existente, err := uc.repo.GetByNombre(in.Nombre)
		if err != nil {
			return nil, err
		}
		if existente != nil {
			return nil, domain.ErrDuplicate
		}
	}
	permisos, err := uc.resolverPermisos(in.Permisos)
	if err != nil {
		return nil, err
	}

	rol.Nombre = in.Nombre
	rol.Descripcion = in.Descripcion
	rol.Permisos = permisos
	rol.UpdatedAt = time.Now()
	if err := uc.repo.Update(rol, in.Permisos); err != nil {
		return nil, err
	}
	out := toRolResponse(rol)
	return &out, nil
}

// Eliminar borra un rol. El rol ADMIN no se puede borrar, ni un rol con
// usuarios asignados.
func (uc *RolUseCase) Eliminar(id string) error {
	rol, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rol == nil {
		return domain.ErrNotFound
	}
	if rol.Nombre == entity.RolAdmin {
		return domain.ErrConflict
	}
	usuarios, err := uc.usuarioRepo.CountByRol(id)
	if err != nil {
		return err
	}
	if usuarios > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

// resolverPermisos valida los IDs contra el catálogo y devuelve las entidades.
func (uc *RolUseCase) resolverPermisos(ids []string) ([]entity.Permiso, error) {
	catalogo, err := uc.permisoRepo.List()
	if err != nil {
		return nil, err
	}
	porID := make(map[string]*entity.Permiso, len(catalogo))
	for _, p := range catalogo {
		porID[p.ID] = p
	}
	permisos := make([]entity.Permiso, 0, len(ids))
	for _, id := range ids {
		p, ok := porID[id]
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		permisos = append(permisos, *p)
	}
	return permisos, nil
}

func toRolResponse(r *entity.Rol) dto.RolResponse {
	permisos := make([]dto.PermisoResponse, 0, len(r.Permisos))
	for _, p := range r.Permisos {
		permisos = append(permisos, dto.PermisoResponse{ID: p.ID, Nombre: p.Nombre})
	}
	return dto.RolResponse{
		ID:          r.ID,
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Permisos:    permisos,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
