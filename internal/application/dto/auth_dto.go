package dto

// LoginRequest entrada de POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PerfilResponse identidad del usuario autenticado con permisos aplanados.
type PerfilResponse struct {
	ID       string   `json:"id"`
	Nombre   string   `json:"nombre"`
	Email    string   `json:"email"`
	Rol      string   `json:"rol"`
	Permisos []string `json:"permisos"`
}

// LoginResponse token firmado más el perfil del usuario.
type LoginResponse struct {
	Token   string         `json:"token"`
	Usuario PerfilResponse `json:"usuario"`
}
