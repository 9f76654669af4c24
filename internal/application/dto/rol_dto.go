package dto

import "time"

// RolRequest entrada para crear o actualizar un rol.
// Permisos es el conjunto completo de IDs de permiso: la actualización reemplaza, no acumula.
type RolRequest struct {
	Nombre      string   `json:"nombre"`
	Descripcion string   `json:"descripcion"`
	Permisos    []string `json:"permisos"`
}

// PermisoResponse salida de un permiso.
type PermisoResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// RolResponse salida de un rol con sus permisos aplanados.
type RolResponse struct {
	ID          string            `json:"id"`
	Nombre      string            `json:"nombre"`
	Descripcion string            `json:"descripcion,omitempty"`
	Permisos    []PermisoResponse `json:"permisos"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
