// Package analytics contiene el caso de uso del dashboard: agregados del
// inventario, alertas de stock bajo y la foto diaria (historial).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
	"github.com/abastos/inventario-api/pkg/logger"
)

const (
	dashboardTopStockBajo = 10 // filas del widget de alertas
	dashboardMovimientos  = 10 // últimos movimientos mostrados
	dashboardHistorial    = 30 // días de historial en el gráfico
)

// DashboardUseCase genera el resumen del inventario.
//
// Fuente de datos: DashboardRepository (consultas read-only). El único efecto
// secundario es el upsert de la foto diaria, disparado fire-and-forget.
type DashboardUseCase struct {
	repo repository.DashboardRepository
	log  *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, log: log}
}

// GetEstadisticas construye el DashboardResponse.
//
// Lanza las consultas en paralelo (goroutines + canales): conteos, top stock
// bajo, últimos movimientos, productos por categoría, historial de 30 días y
// el agregado financiero crudo. Deriva margen y rentabilidad, y si el
// historial no tiene fila para hoy, dispara el upsert del snapshot en una
// goroutine: su fallo se registra, nunca se propaga al caller.
func (uc *DashboardUseCase) GetEstadisticas(ctx context.Context) (*dto.DashboardResponse, error) {
	type countResult struct {
		n   int
		err error
	}
	type stockBajoResult struct {
		items []*repository.ProductoStockBajo
		err   error
	}
	type movsResult struct {
		items []*repository.MovimientoConProducto
		err   error
	}
	type categoriasResult struct {
		items []*repository.CategoriaConConteo
		err   error
	}
	type historialResult struct {
		items []*entity.Historial
		err   error
	}
	type finanzasResult struct {
		valorizacion decimal.Decimal
		valorVenta   decimal.Decimal
		err          error
	}

	productosCh := make(chan countResult, 1)
	categoriasCountCh := make(chan countResult, 1)
	proveedoresCh := make(chan countResult, 1)
	stockBajoCountCh := make(chan countResult, 1)
	stockBajoCh := make(chan stockBajoResult, 1)
	movimientosCh := make(chan movsResult, 1)
	porCategoriaCh := make(chan categoriasResult, 1)
	historialCh := make(chan historialResult, 1)
	finanzasCh := make(chan finanzasResult, 1)

	go func() {
		n, err := uc.repo.CountProductosActivos(ctx)
		productosCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountCategorias(ctx)
		categoriasCountCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountProveedoresActivos(ctx)
		proveedoresCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountStockBajo(ctx)
		stockBajoCountCh <- countResult{n, err}
	}()
	go func() {
		items, err := uc.repo.TopStockBajo(ctx, dashboardTopStockBajo)
		stockBajoCh <- stockBajoResult{items, err}
	}()
	go func() {
		items, err := uc.repo.UltimosMovimientos(ctx, dashboardMovimientos)
		movimientosCh <- movsResult{items, err}
	}()
	go func() {
		items, err := uc.repo.ProductosPorCategoria(ctx)
		porCategoriaCh <- categoriasResult{items, err}
	}()
	go func() {
		items, err := uc.repo.HistorialReciente(ctx, dashboardHistorial)
		historialCh <- historialResult{items, err}
	}()
	go func() {
		valorizacion, valorVenta, err := uc.repo.Finanzas(ctx)
		finanzasCh <- finanzasResult{valorizacion, valorVenta, err}
	}()

	productos := <-productosCh
	categoriasCount := <-categoriasCountCh
	proveedores := <-proveedoresCh
	stockBajoCount := <-stockBajoCountCh
	stockBajo := <-stockBajoCh
	movimientos := <-movimientosCh
	porCategoria := <-porCategoriaCh
	historial := <-historialCh
	finanzas := <-finanzasCh

	for _, e := range []error{
		productos.err, categoriasCount.err, proveedores.err, stockBajoCount.err,
		stockBajo.err, movimientos.err, porCategoria.err, historial.err, finanzas.err,
	} {
		if e != nil {
			return nil, fmt.Errorf("dashboard: %w", e)
		}
	}

	margen := finanzas.valorVenta.Sub(finanzas.valorizacion)
	rentabilidad := decimal.Zero
	if finanzas.valorizacion.IsPositive() {
		rentabilidad = margen.Div(finanzas.valorizacion).Mul(decimal.NewFromInt(100)).Round(2)
	}

	resp := &dto.DashboardResponse{
		Resumen: dto.ResumenDTO{
			TotalProductos:         productos.n,
			TotalCategorias:        categoriasCount.n,
			TotalProveedores:       proveedores.n,
			ProductosConStockBajo:  stockBajoCount.n,
			ValorizacionInventario: finanzas.valorizacion,
			ValorVentaPotencial:    finanzas.valorVenta,
			MargenPotencial:        margen,
			Rentabilidad:           rentabilidad,
		},
		Alertas:               dto.AlertasDTO{StockBajo: make([]dto.StockBajoDTO, 0, len(stockBajo.items))},
		UltimosMovimientos:    make([]dto.MovimientoResponse, 0, len(movimientos.items)),
		ProductosPorCategoria: make([]dto.CategoriaConteoDTO, 0, len(porCategoria.items)),
		Historial:             make([]dto.HistorialDTO, 0, len(historial.items)),
	}

	for _, p := range stockBajo.items {
		resp.Alertas.StockBajo = append(resp.Alertas.StockBajo, dto.StockBajoDTO{
			ID:          p.ID,
			Codigo:      p.Codigo,
			Nombre:      p.Nombre,
			Stock:       p.Stock,
			StockMinimo: p.StockMinimo,
			Categoria:   p.CategoriaNombre,
		})
	}
	for _, m := range movimientos.items {
		resp.UltimosMovimientos = append(resp.UltimosMovimientos, dto.MovimientoResponse{
			ID:          m.ID,
			Tipo:        m.Tipo,
			Cantidad:    m.Cantidad,
			Descripcion: m.Descripcion,
			Producto: &dto.ProductoResumen{
				ID:     m.ProductoID,
				Codigo: m.ProductoCodigo,
				Nombre: m.ProductoNombre,
			},
			CreatedAt: m.CreatedAt,
		})
	}
	for _, c := range porCategoria.items {
		resp.ProductosPorCategoria = append(resp.ProductosPorCategoria, dto.CategoriaConteoDTO{
			ID:             c.ID,
			Nombre:         c.Nombre,
			ImagenURL:      c.ImagenURL,
			TotalProductos: c.TotalProductos,
		})
	}
	for _, h := range historial.items {
		resp.Historial = append(resp.Historial, dto.HistorialDTO{
			Fecha:          h.Fecha,
			TotalProductos: h.TotalProductos,
			StockBajo:      h.StockBajo,
			Valorizacion:   h.Valorizacion,
			ValorVenta:     h.ValorVenta,
			Rentabilidad:   h.Rentabilidad,
		})
	}

	uc.snapshotDiario(historial.items, &dto.HistorialDTO{
		TotalProductos: productos.n,
		StockBajo:      stockBajoCount.n,
		Valorizacion:   finanzas.valorizacion,
		ValorVenta:     finanzas.valorVenta,
		Rentabilidad:   rentabilidad,
	})

	return resp, nil
}

// snapshotDiario dispara el upsert de la foto de hoy si el historial reciente
// no la contiene. Fire-and-forget: el upsert es idempotente sobre la fecha y
// una carrera entre requests concurrentes solo produce una escritura duplicada
// benigna que el ON CONFLICT absorbe. El fallo se registra, no se surfacea.
func (uc *DashboardUseCase) snapshotDiario(recientes []*entity.Historial, metricas *dto.HistorialDTO) {
	hoy := medianoche(time.Now())
	for _, h := range recientes {
		if medianoche(h.Fecha).Equal(hoy) {
			return
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := uc.repo.UpsertHistorial(ctx, &entity.Historial{
			ID:             uuid.New().String(),
			Fecha:          hoy,
			TotalProductos: metricas.TotalProductos,
			StockBajo:      metricas.StockBajo,
			Valorizacion:   metricas.Valorizacion,
			ValorVenta:     metricas.ValorVenta,
			Rentabilidad:   metricas.Rentabilidad,
			CreatedAt:      time.Now(),
		})
		if err != nil && uc.log != nil {
			uc.log.Error().Err(err).Msg("actualizar historial diario")
		}
	}()
}

// medianoche trunca t a las 00:00 locales.
func medianoche(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
