package repository

import "github.com/abastos/inventario-api/internal/domain/entity"

// RolRepository define el puerto de persistencia para Rol y su tabla de unión
// con Permiso. Create y Update reciben el conjunto completo de permisos: la
// implementación reemplaza las filas de rol_permisos en una sola transacción.
type RolRepository interface {
	Create(rol *entity.Rol, permisoIDs []string) error
	GetByID(id string) (*entity.Rol, error)
	GetByNombre(nombre string) (*entity.Rol, error)
	List() ([]*entity.Rol, error)
	Update(rol *entity.Rol, permisoIDs []string) error
	Delete(id string) error
}

// PermisoRepository define el puerto de lectura para Permiso.
type PermisoRepository interface {
	List() ([]*entity.Permiso, error)
}
