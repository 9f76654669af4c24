package dto

import "time"

// CreateCategoriaRequest entrada para crear una categoría.
type CreateCategoriaRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	ImagenURL   string `json:"imagenUrl"`
}

// UpdateCategoriaRequest entrada para actualización parcial.
type UpdateCategoriaRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	ImagenURL   *string `json:"imagenUrl"`
}

// CategoriaResponse salida de una categoría.
type CategoriaResponse struct {
	ID             string    `json:"id"`
	Nombre         string    `json:"nombre"`
	Descripcion    string    `json:"descripcion,omitempty"`
	ImagenURL      string    `json:"imagenUrl,omitempty"`
	TotalProductos int       `json:"totalProductos"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
