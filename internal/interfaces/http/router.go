package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/analytics"
	"github.com/abastos/inventario-api/internal/application/auth"
	"github.com/abastos/inventario-api/internal/application/inventory"
	"github.com/abastos/inventario-api/internal/application/reports"
	"github.com/abastos/inventario-api/internal/application/usecase"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/pkg/logger"
)

// Permisos que gatean las rutas de escritura. Las lecturas solo requieren
// token válido.
const (
	PermisoProductoCrear    = "PRODUCTO_CREAR"
	PermisoProductoEditar   = "PRODUCTO_EDITAR"
	PermisoProductoEliminar = "PRODUCTO_ELIMINAR"

	PermisoCategoriaCrear    = "CATEGORIA_CREAR"
	PermisoCategoriaEditar   = "CATEGORIA_EDITAR"
	PermisoCategoriaEliminar = "CATEGORIA_ELIMINAR"

	PermisoProveedorCrear    = "PROVEEDOR_CREAR"
	PermisoProveedorEditar   = "PROVEEDOR_EDITAR"
	PermisoProveedorEliminar = "PROVEEDOR_ELIMINAR"

	PermisoMovimientoCrear = "MOVIMIENTO_CREAR"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductoUC   *usecase.ProductoUseCase
	CategoriaUC  *usecase.CategoriaUseCase
	ProveedorUC  *usecase.ProveedorUseCase
	UsuarioUC    *usecase.UsuarioUseCase
	RolUC        *usecase.RolUseCase
	UploadUC     *usecase.UploadUseCase
	MovimientoUC *inventory.MovimientoUseCase
	DashboardUC  *analytics.DashboardUseCase
	ReporteUC    *reports.ReporteUseCase
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; /me protegido)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC, deps.Log)
	movimientoHandler := NewMovimientoHandler(deps.MovimientoUC, deps.Log)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Get("/:id/kardex", movimientoHandler.Kardex)
	productos.Post("/", RequirePermission(PermisoProductoCrear), productoHandler.Create)
	productos.Put("/:id", RequirePermission(PermisoProductoEditar), productoHandler.Update)
	productos.Delete("/:id", RequirePermission(PermisoProductoEliminar), productoHandler.Delete)

	// Categorías
	categorias := protected.Group("/categorias")
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC, deps.Log)
	categorias.Get("/", categoriaHandler.List)
	categorias.Get("/:id", categoriaHandler.GetByID)
	categorias.Post("/", RequirePermission(PermisoCategoriaCrear), categoriaHandler.Create)
	categorias.Put("/:id", RequirePermission(PermisoCategoriaEditar), categoriaHandler.Update)
	categorias.Delete("/:id", RequirePermission(PermisoCategoriaEliminar), categoriaHandler.Delete)

	// Proveedores
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC, deps.Log)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Post("/", RequirePermission(PermisoProveedorCrear), proveedorHandler.Create)
	proveedores.Put("/:id", RequirePermission(PermisoProveedorEditar), proveedorHandler.Update)
	proveedores.Delete("/:id", RequirePermission(PermisoProveedorEliminar), proveedorHandler.Delete)

	// Movimientos de stock
	movimientos := protected.Group("/movimientos")
	movimientos.Get("/", movimientoHandler.List)
	movimientos.Get("/producto/:id", movimientoHandler.Kardex)
	movimientos.Post("/", RequirePermission(PermisoMovimientoCrear), movimientoHandler.Registrar)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	protected.Get("/dashboard", dashboardHandler.Get)

	// Reportes
	reporteHandler := NewReporteHandler(deps.ReporteUC, deps.Log)
	protected.Get("/reportes/inventario", reporteHandler.Inventario)

	// Upload de imágenes
	uploadHandler := NewUploadHandler(deps.UploadUC, deps.Log)
	protected.Post("/upload/imagen", uploadHandler.Subir)
	protected.Delete("/upload/imagen", uploadHandler.Eliminar)

	// Administración (solo ADMIN)
	admin := protected.Group("/", RequireRole(entity.RolAdmin))
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC, deps.Log)
	usuarios := admin.Group("/usuarios")
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Put("/:id", usuarioHandler.Update)
	usuarios.Delete("/:id", usuarioHandler.Delete)

	rolHandler := NewRolHandler(deps.RolUC, deps.Log)
	roles := admin.Group("/roles")
	roles.Get("/", rolHandler.List)
	roles.Post("/", rolHandler.Create)
	roles.Put("/:id", rolHandler.Update)
	roles.Delete("/:id", rolHandler.Delete)

	admin.Get("/permisos", rolHandler.ListPermisos)
}
