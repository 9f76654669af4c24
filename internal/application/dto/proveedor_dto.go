package dto

import "time"

// CreateProveedorRequest entrada para crear un proveedor.
type CreateProveedorRequest struct {
	Nombre    string `json:"nombre"`
	Contacto  string `json:"contacto"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

// UpdateProveedorRequest entrada para actualización parcial.
type UpdateProveedorRequest struct {
	Nombre    *string `json:"nombre"`
	Contacto  *string `json:"contacto"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
	Activo    *bool   `json:"activo"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID             string    `json:"id"`
	Nombre         string    `json:"nombre"`
	Contacto       string    `json:"contacto,omitempty"`
	Telefono       string    `json:"telefono,omitempty"`
	Email          string    `json:"email,omitempty"`
	Direccion      string    `json:"direccion,omitempty"`
	Activo         bool      `json:"activo"`
	TotalProductos int       `json:"totalProductos"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
