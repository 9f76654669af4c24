package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

// UsuarioUseCase casos de uso CRUD para usuarios. El password se recibe en
// claro y se guarda únicamente como hash bcrypt.
type UsuarioUseCase struct {
	repo    repository.UsuarioRepository
	rolRepo repository.RolRepository
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(repo repository.UsuarioRepository, rolRepo repository.RolRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo, rolRepo: rolRepo}
}

// Listar devuelve todos los usuarios con el nombre de su rol. Nunca expone el hash.
func (uc *UsuarioUseCase) Listar() ([]dto.UsuarioResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.UsuarioResponse{
			ID:        u.ID,
			Nombre:    u.Nombre,
			Email:     u.Email,
			RolID:     u.RolID,
			RolNombre: u.RolNombre,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	return items, nil
}

// Crear crea un usuario. Email duplicado devuelve ErrDuplicate; rol
// inexistente, ErrConflict.
func (uc *UsuarioUseCase) Crear(in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	if in.Nombre == "" || in.Email == "" || in.Password == "" || in.RolID == "" {
		return nil, domain.ErrInvalidInput
	}

	existente, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	rol, err := uc.rolRepo.GetByID(in.RolID)
	if err != nil {
		return nil, err
	}
	if rol == nil {
		return nil, domain.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Nombre:       in.Nombre,
		Email:        in.Email,
		PasswordHash: string(hash),
		RolID:        in.RolID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(usuario); err != nil {
		return nil, err
	}
	return &dto.UsuarioResponse{
		ID:        usuario.ID,
		Nombre:    usuario.Nombre,
		Email:     usuario.Email,
		RolID:     usuario.RolID,
		RolNombre: rol.Nombre,
		CreatedAt: usuario.CreatedAt,
		UpdatedAt: usuario.UpdatedAt,
	}, nil
}

// Actualizar actualización parcial: campos vacíos se dejan como están. El
// password solo se rehashea si viene uno nuevo. nil si el usuario no existe.
func (uc *UsuarioUseCase) Actualizar(id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, nil
	}

	if in.Email != "" && in.Email != usuario.Email {
		existente, err := uc.repo.GetByEmail(in.Email)
		if err != nil {
			return nil, err
		}
		if existente != nil {
			return nil, domain.ErrDuplicate
		}
		usuario.Email = in.Email
	}
	if in.Nombre != "" {
		usuario.Nombre = in.Nombre
	}
	if in.RolID != "" && in.RolID != usuario.RolID {
		rol, err := uc.rolRepo.GetByID(in.RolID)
		if err != nil {
			return nil, err
		}
		if rol == nil {
			return nil, domain.ErrConflict
		}
		usuario.RolID = in.RolID
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		usuario.PasswordHash = string(hash)
	}
	usuario.UpdatedAt = time.Now()
	if err := uc.repo.Update(usuario); err != nil {
		return nil, err
	}

	rolNombre := ""
	if rol, err := uc.rolRepo.GetByID(usuario.RolID); err == nil && rol != nil {
		rolNombre = rol.Nombre
	}
	return &dto.UsuarioResponse{
		ID:        usuario.ID,
		Nombre:    usuario.Nombre,
		Email:     usuario.Email,
		RolID:     usuario.RolID,
		RolNombre: rolNombre,
		CreatedAt: usuario.CreatedAt,
		UpdatedAt: usuario.UpdatedAt,
	}, nil
}

// Eliminar borra un usuario. Un usuario no puede borrarse a sí mismo.
func (uc *UsuarioUseCase) Eliminar(id, solicitanteID string) error {
	if id == solicitanteID {
		return domain.ErrConflict
	}
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if usuario == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
