package entity

import "time"

// Usuario representa un usuario del sistema.
type Usuario struct {
	ID           string
	Nombre       string
	Email        string // único
	PasswordHash string // bcrypt, nunca en claro después de persistir
	RolID        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
