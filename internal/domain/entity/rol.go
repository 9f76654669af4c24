package entity

import "time"

// RolAdmin es el rol distinguido que no puede eliminarse.
const RolAdmin = "ADMIN"

// Rol agrupa permisos; muchos-a-muchos con Permiso vía rol_permisos.
type Rol struct {
	ID          string
	Nombre      string // único
	Descripcion string
	Permisos    []Permiso // aplanados desde la tabla de unión
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PermisoNombres devuelve los nombres de permiso aplanados (para el JWT).
func (r *Rol) PermisoNombres() []string {
	nombres := make([]string, 0, len(r.Permisos))
	for _, p := range r.Permisos {
		nombres = append(nombres, p.Nombre)
	}
	return nombres
}

// Permiso es un permiso individual, convención de nombre "<ENTIDAD>_<ACCION>"
// (ej. PRODUCTO_CREAR, USUARIO_ELIMINAR).
type Permiso struct {
	ID     string
	Nombre string // único
}
