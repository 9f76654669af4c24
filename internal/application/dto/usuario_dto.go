package dto

import "time"

// CreateUsuarioRequest entrada para crear un usuario (password en claro, se hashea en el use case).
type CreateUsuarioRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RolID    string `json:"rolId"`
}

// UpdateUsuarioRequest entrada para actualizar un usuario. Password vacío = sin cambio.
type UpdateUsuarioRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RolID    string `json:"rolId"`
}

// UsuarioResponse salida de un usuario (nunca incluye el hash).
type UsuarioResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	RolID     string    `json:"rolId"`
	RolNombre string    `json:"rolNombre,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
