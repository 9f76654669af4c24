package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/usecase"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCategoriaRepo struct {
	categorias map[string]*entity.Categoria
}

func (m *memCategoriaRepo) Create(c *entity.Categoria) error {
	for _, e := range m.categorias {
		if e.Nombre == c.Nombre {
			return domain.ErrDuplicate
		}
	}
	m.categorias[c.ID] = c
	return nil
}
func (m *memCategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	c, ok := m.categorias[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (m *memCategoriaRepo) GetByNombre(nombre string) (*entity.Categoria, error) {
	for _, c := range m.categorias {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memCategoriaRepo) List() ([]*repository.CategoriaConConteo, error) { return nil, nil }
func (m *memCategoriaRepo) Update(c *entity.Categoria) error                { m.categorias[c.ID] = c; return nil }
func (m *memCategoriaRepo) Delete(id string) error                          { delete(m.categorias, id); return nil }

type memProductoRepo struct {
	productos    map[string]*entity.Producto
	porCategoria map[string]int
	porProveedor map[string]int
}

func (m *memProductoRepo) Create(p *entity.Producto) error {
	for _, e := range m.productos {
		if e.Codigo == p.Codigo {
			return domain.ErrDuplicate
		}
	}
	m.productos[p.ID] = p
	return nil
}
func (m *memProductoRepo) GetByID(id string) (*entity.Producto, error) {
	p, ok := m.productos[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (m *memProductoRepo) GetByCodigo(string) (*entity.Producto, error)      { return nil, nil }
func (m *memProductoRepo) GetForUpdate(id string) (*entity.Producto, error)  { return m.GetByID(id) }
func (m *memProductoRepo) List(repository.ProductoFiltros) ([]*entity.Producto, error) {
	return nil, nil
}
func (m *memProductoRepo) Update(p *entity.Producto) error    { m.productos[p.ID] = p; return nil }
func (m *memProductoRepo) UpdateStock(id string, s int) error { m.productos[id].Stock = s; return nil }
func (m *memProductoRepo) Delete(id string) error             { delete(m.productos, id); return nil }
func (m *memProductoRepo) CountByCategoria(id string) (int, error) {
	return m.porCategoria[id], nil
}
func (m *memProductoRepo) CountByProveedor(id string) (int, error) {
	return m.porProveedor[id], nil
}

type memProveedorRepo struct {
	proveedores map[string]*entity.Proveedor
}

func (m *memProveedorRepo) Create(p *entity.Proveedor) error { m.proveedores[p.ID] = p; return nil }
func (m *memProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	p, ok := m.proveedores[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (m *memProveedorRepo) List() ([]*repository.ProveedorConConteo, error) { return nil, nil }
func (m *memProveedorRepo) Update(p *entity.Proveedor) error                { m.proveedores[p.ID] = p; return nil }
func (m *memProveedorRepo) Delete(id string) error                          { delete(m.proveedores, id); return nil }

type memMovimientoRepo struct {
	movimientos []*entity.Movimiento
}

func (m *memMovimientoRepo) Create(mov *entity.Movimiento) error {
	m.movimientos = append(m.movimientos, mov)
	return nil
}
func (m *memMovimientoRepo) List(repository.MovimientoFiltros) ([]*repository.MovimientoConProducto, error) {
	return nil, nil
}
func (m *memMovimientoRepo) ListByProducto(id string) ([]*entity.Movimiento, error) {
	var out []*entity.Movimiento
	for _, mov := range m.movimientos {
		if mov.ProductoID == id {
			out = append(out, mov)
		}
	}
	return out, nil
}
func (m *memMovimientoRepo) DeleteByProducto(id string) error {
	var rest []*entity.Movimiento
	for _, mov := range m.movimientos {
		if mov.ProductoID != id {
			rest = append(rest, mov)
		}
	}
	m.movimientos = rest
	return nil
}

type memTxRunner struct {
	movRepo      *memMovimientoRepo
	productoRepo *memProductoRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	return fn(r.movRepo, r.productoRepo)
}

type memUsuarioRepo struct {
	usuarios map[string]*entity.Usuario
	porRol   map[string]int
}

func (m *memUsuarioRepo) Create(u *entity.Usuario) error { m.usuarios[u.ID] = u; return nil }
func (m *memUsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	u, ok := m.usuarios[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (m *memUsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	for _, u := range m.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsuarioRepo) List() ([]*repository.UsuarioConRol, error) { return nil, nil }
func (m *memUsuarioRepo) Update(u *entity.Usuario) error             { m.usuarios[u.ID] = u; return nil }
func (m *memUsuarioRepo) Delete(id string) error                     { delete(m.usuarios, id); return nil }
func (m *memUsuarioRepo) CountByRol(rolID string) (int, error)       { return m.porRol[rolID], nil }

type memRolRepo struct {
	roles map[string]*entity.Rol
}

func (m *memRolRepo) Create(r *entity.Rol, _ []string) error { m.roles[r.ID] = r; return nil }
func (m *memRolRepo) GetByID(id string) (*entity.Rol, error) {
	r, ok := m.roles[id]
	if !ok {
		return nil, nil
	}
	return r, nil
}
func (m *memRolRepo) GetByNombre(nombre string) (*entity.Rol, error) {
	for _, r := range m.roles {
		if r.Nombre == nombre {
			return r, nil
		}
	}
	return nil, nil
}
func (m *memRolRepo) List() ([]*entity.Rol, error)           { return nil, nil }
func (m *memRolRepo) Update(r *entity.Rol, _ []string) error { m.roles[r.ID] = r; return nil }
func (m *memRolRepo) Delete(id string) error                 { delete(m.roles, id); return nil }

type memPermisoRepo struct {
	permisos []*entity.Permiso
}

func (m *memPermisoRepo) List() ([]*entity.Permiso, error) { return m.permisos, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Tests Categoria
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoriaEliminar_ConProductosDevuelveConflicto(t *testing.T) {
	catRepo := &memCategoriaRepo{categorias: map[string]*entity.Categoria{
		"c1": {ID: "c1", Nombre: "Bebidas"},
	}}
	prodRepo := &memProductoRepo{porCategoria: map[string]int{"c1": 3}}
	uc := usecase.NewCategoriaUseCase(catRepo, prodRepo)

	err := uc.Eliminar("c1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, ok := catRepo.categorias["c1"]
	assert.True(t, ok, "la categoría con productos debe quedar intacta")
}

func TestCategoriaEliminar_SinProductos(t *testing.T) {
	catRepo := &memCategoriaRepo{categorias: map[string]*entity.Categoria{
		"c1": {ID: "c1", Nombre: "Bebidas"},
	}}
	prodRepo := &memProductoRepo{porCategoria: map[string]int{}}
	uc := usecase.NewCategoriaUseCase(catRepo, prodRepo)

	require.NoError(t, uc.Eliminar("c1"))
	assert.Empty(t, catRepo.categorias)
}

func TestCategoriaEliminar_NoExiste(t *testing.T) {
	uc := usecase.NewCategoriaUseCase(
		&memCategoriaRepo{categorias: map[string]*entity.Categoria{}},
		&memProductoRepo{},
	)
	assert.ErrorIs(t, uc.Eliminar("nope"), domain.ErrNotFound)
}

func TestCategoriaCrear_NombreDuplicado(t *testing.T) {
	catRepo := &memCategoriaRepo{categorias: map[string]*entity.Categoria{
		"c1": {ID: "c1", Nombre: "Bebidas"},
	}}
	uc := usecase.NewCategoriaUseCase(catRepo, &memProductoRepo{})

	_, err := uc.Crear(dto.CreateCategoriaRequest{Nombre: "Bebidas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Producto
// ──────────────────────────────────────────────────────────────────────────────

func newProductoUC() (*usecase.ProductoUseCase, *memProductoRepo, *memMovimientoRepo) {
	prodRepo := &memProductoRepo{productos: map[string]*entity.Producto{}}
	catRepo := &memCategoriaRepo{categorias: map[string]*entity.Categoria{
		"c1": {ID: "c1", Nombre: "Bebidas"},
	}}
	provRepo := &memProveedorRepo{proveedores: map[string]*entity.Proveedor{
		"pr1": {ID: "pr1", Nombre: "Distribuidora Sur", Activo: true},
	}}
	movRepo := &memMovimientoRepo{}
	runner := &memTxRunner{movRepo: movRepo, productoRepo: prodRepo}
	return usecase.NewProductoUseCase(prodRepo, catRepo, provRepo, movRepo, runner), prodRepo, movRepo
}

func TestProductoCrear_StockMinimoPorDefecto(t *testing.T) {
	uc, _, _ := newProductoUC()

	out, err := uc.Crear(dto.CreateProductoRequest{
		Codigo:      "BEB001",
		Nombre:      "Agua mineral",
		Precio:      decimal.NewFromInt(10),
		Costo:       decimal.NewFromInt(6),
		CategoriaID: "c1",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, out.StockMinimo, "stockMinimo 0 toma el valor por defecto")
	assert.True(t, out.Activo, "los productos nacen activos")
	assert.True(t, out.StockBajo, "stock 0 <= minimo 5")
}

func TestProductoCrear_CodigoDuplicado(t *testing.T) {
	uc, _, _ := newProductoUC()

	in := dto.CreateProductoRequest{
		Codigo: "BEB001", Nombre: "Agua", CategoriaID: "c1",
	}
	_, err := uc.Crear(in)
	require.NoError(t, err)

	in.Nombre = "Otra agua"
	_, err = uc.Crear(in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductoCrear_CategoriaInexistente(t *testing.T) {
	uc, _, _ := newProductoUC()

	_, err := uc.Crear(dto.CreateProductoRequest{
		Codigo: "BEB001", Nombre: "Agua", CategoriaID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProductoCrear_ValoresNegativos(t *testing.T) {
	uc, _, _ := newProductoUC()

	casos := []dto.CreateProductoRequest{
		{Codigo: "X", Nombre: "X", CategoriaID: "c1", Stock: -1},
		{Codigo: "X", Nombre: "X", CategoriaID: "c1", StockMinimo: -1},
		{Codigo: "X", Nombre: "X", CategoriaID: "c1", Precio: decimal.NewFromInt(-1)},
		{Codigo: "X", Nombre: "X", CategoriaID: "c1", Costo: decimal.NewFromInt(-1)},
	}
	for _, in := range casos {
		_, err := uc.Crear(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestProductoEliminar_BorraTambienSusMovimientos(t *testing.T) {
	uc, prodRepo, movRepo := newProductoUC()

	prodRepo.productos["p1"] = &entity.Producto{ID: "p1", Codigo: "BEB001", CategoriaID: "c1"}
	movRepo.movimientos = []*entity.Movimiento{
		{ID: "m1", ProductoID: "p1"},
		{ID: "m2", ProductoID: "p1"},
		{ID: "m3", ProductoID: "otro"},
	}

	require.NoError(t, uc.Eliminar(context.Background(), "p1"))

	assert.NotContains(t, prodRepo.productos, "p1")
	require.Len(t, movRepo.movimientos, 1, "solo sobrevive el libro de otros productos")
	assert.Equal(t, "m3", movRepo.movimientos[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Usuario
// ──────────────────────────────────────────────────────────────────────────────

func newUsuarioUC() (*usecase.UsuarioUseCase, *memUsuarioRepo, *memRolRepo) {
	userRepo := &memUsuarioRepo{usuarios: map[string]*entity.Usuario{}, porRol: map[string]int{}}
	rolRepo := &memRolRepo{roles: map[string]*entity.Rol{
		"r1": {ID: "r1", Nombre: entity.RolAdmin},
		"r2": {ID: "r2", Nombre: "VENDEDOR"},
	}}
	return usecase.NewUsuarioUseCase(userRepo, rolRepo), userRepo, rolRepo
}

func TestUsuarioCrear_GuardaHashNoElPassword(t *testing.T) {
	uc, userRepo, _ := newUsuarioUC()

	out, err := uc.Crear(dto.CreateUsuarioRequest{
		Nombre: "Ana", Email: "ana@abastos.test", Password: "secreto123", RolID: "r2",
	})
	require.NoError(t, err)

	guardado := userRepo.usuarios[out.ID]
	require.NotNil(t, guardado)
	assert.NotEqual(t, "secreto123", guardado.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(guardado.PasswordHash), []byte("secreto123")))
	assert.Equal(t, "VENDEDOR", out.RolNombre)
}

func TestUsuarioCrear_EmailDuplicado(t *testing.T) {
	uc, userRepo, _ := newUsuarioUC()
	userRepo.usuarios["u1"] = &entity.Usuario{ID: "u1", Email: "ana@abastos.test"}

	_, err := uc.Crear(dto.CreateUsuarioRequest{
		Nombre: "Ana", Email: "ana@abastos.test", Password: "x", RolID: "r2",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUsuarioCrear_RolInexistente(t *testing.T) {
	uc, _, _ := newUsuarioUC()

	_, err := uc.Crear(dto.CreateUsuarioRequest{
		Nombre: "Ana", Email: "ana@abastos.test", Password: "x", RolID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUsuarioEliminar_NoPuedeBorrarseASiMismo(t *testing.T) {
	uc, userRepo, _ := newUsuarioUC()
	userRepo.usuarios["u1"] = &entity.Usuario{ID: "u1", Email: "ana@abastos.test"}

	err := uc.Eliminar("u1", "u1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, userRepo.usuarios, "u1")
}

func TestUsuarioEliminar_OtroUsuario(t *testing.T) {
	uc, userRepo, _ := newUsuarioUC()
	userRepo.usuarios["u1"] = &entity.Usuario{ID: "u1"}

	require.NoError(t, uc.Eliminar("u1", "admin-id"))
	assert.NotContains(t, userRepo.usuarios, "u1")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Rol
// ──────────────────────────────────────────────────────────────────────────────

func newRolUC() (*usecase.RolUseCase, *memRolRepo, *memUsuarioRepo) {
	rolRepo := &memRolRepo{roles: map[string]*entity.Rol{
		"r1": {ID: "r1", Nombre: entity.RolAdmin},
		"r2": {ID: "r2", Nombre: "VENDEDOR"},
	}}
	permisoRepo := &memPermisoRepo{permisos: []*entity.Permiso{
		{ID: "perm1", Nombre: "PRODUCTO_CREAR"},
		{ID: "perm2", Nombre: "MOVIMIENTO_CREAR"},
	}}
	userRepo := &memUsuarioRepo{usuarios: map[string]*entity.Usuario{}, porRol: map[string]int{}}
	return usecase.NewRolUseCase(rolRepo, permisoRepo, userRepo), rolRepo, userRepo
}

func TestRolEliminar_AdminProtegido(t *testing.T) {
	uc, rolRepo, _ := newRolUC()

	err := uc.Eliminar("r1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, rolRepo.roles, "r1")
}

func TestRolEliminar_ConUsuariosAsignados(t *testing.T) {
	uc, rolRepo, userRepo := newRolUC()
	userRepo.porRol["r2"] = 2

	err := uc.Eliminar("r2")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, rolRepo.roles, "r2")
}

func TestRolEliminar_SinUsuarios(t *testing.T) {
	uc, rolRepo, _ := newRolUC()

	require.NoError(t, uc.Eliminar("r2"))
	assert.NotContains(t, rolRepo.roles, "r2")
}

func TestRolCrear_PermisoDesconocido(t *testing.T) {
	uc, _, _ := newRolUC()

	_, err := uc.Crear(dto.RolRequest{
		Nombre:   "BODEGA",
		Permisos: []string{"perm1", "no-existe"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRolCrear_ResuelvePermisos(t *testing.T) {
	uc, _, _ := newRolUC()

	out, err := uc.Crear(dto.RolRequest{
		Nombre:   "BODEGA",
		Permisos: []string{"perm1", "perm2"},
	})
	require.NoError(t, err)
	require.Len(t, out.Permisos, 2)
	assert.Equal(t, "PRODUCTO_CREAR", out.Permisos[0].Nombre)
	assert.Equal(t, "MOVIMIENTO_CREAR", out.Permisos[1].Nombre)
}

func TestRolCrear_NombreDuplicado(t *testing.T) {
	uc, _, _ := newRolUC()

	_, err := uc.Crear(dto.RolRequest{Nombre: entity.RolAdmin})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
