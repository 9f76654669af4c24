package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abastos/inventario-api/internal/application/auth"
	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
	"github.com/abastos/inventario-api/pkg/jwt"
)

const (
	authTestSecret   = "auth-test-secret"
	authTestPassword = "secreto123"
)

type stubUsuarioRepo struct {
	usuario *entity.Usuario
}

func (s *stubUsuarioRepo) Create(*entity.Usuario) error { return nil }
func (s *stubUsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	if s.usuario != nil && s.usuario.ID == id {
		return s.usuario, nil
	}
	return nil, nil
}
func (s *stubUsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	if s.usuario != nil && s.usuario.Email == email {
		return s.usuario, nil
	}
	return nil, nil
}
func (s *stubUsuarioRepo) List() ([]*repository.UsuarioConRol, error) { return nil, nil }
func (s *stubUsuarioRepo) Update(*entity.Usuario) error               { return nil }
func (s *stubUsuarioRepo) Delete(string) error                        { return nil }
func (s *stubUsuarioRepo) CountByRol(string) (int, error)             { return 0, nil }

type stubRolRepo struct {
	rol *entity.Rol
}

func (s *stubRolRepo) Create(*entity.Rol, []string) error { return nil }
func (s *stubRolRepo) GetByID(id string) (*entity.Rol, error) {
	if s.rol != nil && s.rol.ID == id {
		return s.rol, nil
	}
	return nil, nil
}
func (s *stubRolRepo) GetByNombre(string) (*entity.Rol, error) { return nil, nil }
func (s *stubRolRepo) List() ([]*entity.Rol, error)            { return nil, nil }
func (s *stubRolRepo) Update(*entity.Rol, []string) error      { return nil }
func (s *stubRolRepo) Delete(string) error                     { return nil }

func newAuthUC(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(authTestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	usuarios := &stubUsuarioRepo{usuario: &entity.Usuario{
		ID:           "u1",
		Nombre:       "Ana",
		Email:        "ana@abastos.test",
		PasswordHash: string(hash),
		RolID:        "r1",
	}}
	roles := &stubRolRepo{rol: &entity.Rol{
		ID:     "r1",
		Nombre: entity.RolAdmin,
		Permisos: []entity.Permiso{
			{ID: "perm1", Nombre: "PRODUCTO_CREAR"},
			{ID: "perm2", Nombre: "MOVIMIENTO_CREAR"},
		},
	}}
	return auth.NewAuthUseCase(usuarios, roles, auth.JWTConfig{
		Secret:     authTestSecret,
		ExpMinutes: 60,
		Issuer:     "inventario-api-test",
	})
}

func TestLogin_EmiteTokenConClaims(t *testing.T) {
	uc := newAuthUC(t)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@abastos.test", Password: authTestPassword})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	assert.Equal(t, "u1", out.Usuario.ID)
	assert.Equal(t, entity.RolAdmin, out.Usuario.Rol)
	assert.ElementsMatch(t, []string{"PRODUCTO_CREAR", "MOVIMIENTO_CREAR"}, out.Usuario.Permisos)

	claims, err := jwt.Parse(authTestSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ana@abastos.test", claims.Email)
	assert.Equal(t, entity.RolAdmin, claims.Rol)
	assert.ElementsMatch(t, []string{"PRODUCTO_CREAR", "MOVIMIENTO_CREAR"}, claims.Permisos)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newAuthUC(t)

	_, err := uc.Login(dto.LoginRequest{Email: "ana@abastos.test", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocido(t *testing.T) {
	uc := newAuthUC(t)

	// Mismo error que un password incorrecto: no se filtra cuál falló.
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@abastos.test", Password: authTestPassword})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPerfil_RederivaDesdeLaBase(t *testing.T) {
	uc := newAuthUC(t)

	perfil, err := uc.Perfil("u1")
	require.NoError(t, err)
	assert.Equal(t, "ana@abastos.test", perfil.Email)
	assert.Equal(t, entity.RolAdmin, perfil.Rol)
	assert.Len(t, perfil.Permisos, 2)
}

func TestPerfil_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(t)

	_, err := uc.Perfil("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
