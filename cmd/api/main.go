package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/abastos/inventario-api/internal/application/analytics"
	"github.com/abastos/inventario-api/internal/application/auth"
	"github.com/abastos/inventario-api/internal/application/inventory"
	"github.com/abastos/inventario-api/internal/application/reports"
	"github.com/abastos/inventario-api/internal/application/usecase"
	"github.com/abastos/inventario-api/internal/infrastructure/cloudinary"
	infrapdf "github.com/abastos/inventario-api/internal/infrastructure/pdf"
	"github.com/abastos/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/abastos/inventario-api/internal/interfaces/http"
	"github.com/abastos/inventario-api/pkg/config"
	"github.com/abastos/inventario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productoRepo := postgres.NewProductoRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	rolRepo := postgres.NewRolRepository(pool)
	permisoRepo := postgres.NewPermisoRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movimientoUC := inventory.NewMovimientoUseCase(txRunner, productoRepo, movimientoRepo, categoriaRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo, categoriaRepo, proveedorRepo, movimientoRepo, txRunner)
	categoriaUC := usecase.NewCategoriaUseCase(categoriaRepo, productoRepo)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo, productoRepo)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo, rolRepo)
	rolUC := usecase.NewRolUseCase(rolRepo, permisoRepo, usuarioRepo)
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo, log)

	cloudinaryClient := cloudinary.NewClient(
		cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder,
	)
	uploadUC := usecase.NewUploadUseCase(cloudinaryClient)

	pdfGenerator := infrapdf.NewMarotoInventarioGenerator()
	reporteUC := reports.NewReporteUseCase(productoRepo, dashboardRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(usuarioRepo, rolRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	if cfg.App.Env == "development" {
		app.Use(fiberlogger.New())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductoUC:   productoUC,
		CategoriaUC:  categoriaUC,
		ProveedorUC:  proveedorUC,
		UsuarioUC:    usuarioUC,
		RolUC:        rolUC,
		UploadUC:     uploadUC,
		MovimientoUC: movimientoUC,
		DashboardUC:  dashboardUC,
		ReporteUC:    reporteUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
