package repository

import "github.com/abastos/inventario-api/internal/domain/entity"

// UsuarioConRol usuario más el nombre de su rol (para listados).
type UsuarioConRol struct {
	entity.Usuario
	RolNombre string
}

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	List() ([]*UsuarioConRol, error)
	Update(usuario *entity.Usuario) error
	Delete(id string) error
	CountByRol(rolID string) (int, error)
}
