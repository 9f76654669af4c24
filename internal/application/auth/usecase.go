package auth

import (
	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
	"github.com/abastos/inventario-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y perfil del usuario actual.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	rolRepo     repository.RolRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, rolRepo repository.RolRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, rolRepo: rolRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, aplana los permisos del rol y emite el JWT.
// Email desconocido y password incorrecto devuelven el mismo ErrUnauthorized:
// el cliente no puede distinguir cuál de los dos falló.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	perfil, err := uc.perfilDe(usuario)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(
		uc.jwtCfg.Secret,
		usuario.ID, usuario.Email, perfil.Rol, perfil.Permisos,
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Usuario: *perfil}, nil
}

// Perfil rederiva la identidad desde la DB usando el subject del token, sin
// confiar en los claims embebidos: un cambio de permisos se refleja en cuanto
// el cliente vuelve a pedir su perfil.
func (uc *AuthUseCase) Perfil(userID string) (*dto.PerfilResponse, error) {
	usuario, err := uc.usuarioRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrNotFound
	}
	return uc.perfilDe(usuario)
}

func (uc *AuthUseCase) perfilDe(usuario *entity.Usuario) (*dto.PerfilResponse, error) {
	rol, err := uc.rolRepo.GetByID(usuario.RolID)
	if err != nil {
		return nil, err
	}
	if rol == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.PerfilResponse{
		ID:       usuario.ID,
		Nombre:   usuario.Nombre,
		Email:    usuario.Email,
		Rol:      rol.Nombre,
		Permisos: rol.PermisoNombres(),
	}, nil
}
