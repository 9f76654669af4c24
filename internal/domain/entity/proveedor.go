package entity

import "time"

// Proveedor representa un proveedor de productos.
type Proveedor struct {
	ID        string
	Nombre    string
	Contacto  string
	Telefono  string
	Email     string
	Direccion string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
