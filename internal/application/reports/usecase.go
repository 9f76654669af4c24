// Package reports genera el reporte PDF de inventario: resumen financiero,
// alertas de stock bajo y el listado completo de productos.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

const reporteTopStockBajo = 20

var decimalCien = decimal.NewFromInt(100)

// InventarioPDFGenerator puerto hacia el generador de PDF.
type InventarioPDFGenerator interface {
	GenerateInventarioPDF(
		ctx context.Context,
		resumen dto.ResumenDTO,
		stockBajo []*repository.ProductoStockBajo,
		productos []*entity.Producto,
		generadoEn time.Time,
	) ([]byte, error)
}

// ReporteUseCase arma los datos del reporte y delega el render al generador.
type ReporteUseCase struct {
	productoRepo  repository.ProductoRepository
	dashboardRepo repository.DashboardRepository
	pdfGen        InventarioPDFGenerator
}

// NewReporteUseCase construye el caso de uso.
func NewReporteUseCase(
	productoRepo repository.ProductoRepository,
	dashboardRepo repository.DashboardRepository,
	pdfGen InventarioPDFGenerator,
) *ReporteUseCase {
	return &ReporteUseCase{
		productoRepo:  productoRepo,
		dashboardRepo: dashboardRepo,
		pdfGen:        pdfGen,
	}
}

// GenerarInventario genera el PDF del estado actual del inventario.
func (uc *ReporteUseCase) GenerarInventario(ctx context.Context) ([]byte, error) {
	resumen := dto.ResumenDTO{}
	var err error
	if resumen.TotalProductos, err = uc.dashboardRepo.CountProductosActivos(ctx); err != nil {
		return nil, err
	}
	if resumen.TotalCategorias, err = uc.dashboardRepo.CountCategorias(ctx); err != nil {
		return nil, err
	}
	if resumen.TotalProveedores, err = uc.dashboardRepo.CountProveedoresActivos(ctx); err != nil {
		return nil, err
	}
	if resumen.ProductosConStockBajo, err = uc.dashboardRepo.CountStockBajo(ctx); err != nil {
		return nil, err
	}
	valorizacion, valorVenta, err := uc.dashboardRepo.Finanzas(ctx)
	if err != nil {
		return nil, err
	}
	resumen.ValorizacionInventario = valorizacion
	resumen.ValorVentaPotencial = valorVenta
	resumen.MargenPotencial = valorVenta.Sub(valorizacion)
	if valorizacion.IsPositive() {
		resumen.Rentabilidad = resumen.MargenPotencial.Div(valorizacion).Mul(decimalCien).Round(2)
	}

	stockBajo, err := uc.dashboardRepo.TopStockBajo(ctx, reporteTopStockBajo)
	if err != nil {
		return nil, err
	}
	activo := true
	productos, err := uc.productoRepo.List(repository.ProductoFiltros{Activo: &activo})
	if err != nil {
		return nil, err
	}

	return uc.pdfGen.GenerateInventarioPDF(ctx, resumen, stockBajo, productos, time.Now())
}
