package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abastos/inventario-api/internal/application/analytics"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

// fakeDashboardRepo devuelve valores fijos y captura los upserts de historial
// en un canal para que el test pueda esperar el snapshot fire-and-forget.
type fakeDashboardRepo struct {
	productos    int
	categorias   int
	proveedores  int
	stockBajo    int
	valorizacion decimal.Decimal
	valorVenta   decimal.Decimal
	historial    []*entity.Historial

	upserts chan *entity.Historial
}

func newFakeDashboardRepo() *fakeDashboardRepo {
	return &fakeDashboardRepo{upserts: make(chan *entity.Historial, 1)}
}

func (f *fakeDashboardRepo) CountProductosActivos(context.Context) (int, error) {
	return f.productos, nil
}
func (f *fakeDashboardRepo) CountCategorias(context.Context) (int, error) { return f.categorias, nil }
func (f *fakeDashboardRepo) CountProveedoresActivos(context.Context) (int, error) {
	return f.proveedores, nil
}
func (f *fakeDashboardRepo) CountStockBajo(context.Context) (int, error) { return f.stockBajo, nil }
func (f *fakeDashboardRepo) TopStockBajo(context.Context, int) ([]*repository.ProductoStockBajo, error) {
	return []*repository.ProductoStockBajo{
		{ID: "p1", Codigo: "BEB001", Nombre: "Agua", Stock: 2, StockMinimo: 5, CategoriaNombre: "Bebidas"},
	}, nil
}
func (f *fakeDashboardRepo) UltimosMovimientos(context.Context, int) ([]*repository.MovimientoConProducto, error) {
	return nil, nil
}
func (f *fakeDashboardRepo) ProductosPorCategoria(context.Context) ([]*repository.CategoriaConConteo, error) {
	return nil, nil
}
func (f *fakeDashboardRepo) HistorialReciente(context.Context, int) ([]*entity.Historial, error) {
	return f.historial, nil
}
func (f *fakeDashboardRepo) Finanzas(context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return f.valorizacion, f.valorVenta, nil
}
func (f *fakeDashboardRepo) UpsertHistorial(_ context.Context, h *entity.Historial) error {
	f.upserts <- h
	return nil
}

func esperarUpsert(t *testing.T, repo *fakeDashboardRepo) *entity.Historial {
	t.Helper()
	select {
	case h := <-repo.upserts:
		return h
	case <-time.After(2 * time.Second):
		t.Fatal("el snapshot diario no se disparó")
		return nil
	}
}

func TestGetEstadisticas_CalculaFinanzas(t *testing.T) {
	repo := newFakeDashboardRepo()
	repo.productos = 12
	repo.categorias = 3
	repo.proveedores = 2
	repo.stockBajo = 4
	repo.valorizacion = decimal.NewFromInt(1000)
	repo.valorVenta = decimal.NewFromInt(1500)

	uc := analytics.NewDashboardUseCase(repo, nil)

	resp, err := uc.GetEstadisticas(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, resp.Resumen.TotalProductos)
	assert.Equal(t, 3, resp.Resumen.TotalCategorias)
	assert.Equal(t, 2, resp.Resumen.TotalProveedores)
	assert.Equal(t, 4, resp.Resumen.ProductosConStockBajo)
	assert.True(t, resp.Resumen.MargenPotencial.Equal(decimal.NewFromInt(500)),
		"margen = valor venta - valorización")
	assert.True(t, resp.Resumen.Rentabilidad.Equal(decimal.NewFromInt(50)),
		"rentabilidad = margen / valorización × 100")

	require.Len(t, resp.Alertas.StockBajo, 1)
	assert.Equal(t, "BEB001", resp.Alertas.StockBajo[0].Codigo)
	assert.Equal(t, "Bebidas", resp.Alertas.StockBajo[0].Categoria)

	esperarUpsert(t, repo)
}

func TestGetEstadisticas_RentabilidadCeroSinValorizacion(t *testing.T) {
	repo := newFakeDashboardRepo()
	repo.valorizacion = decimal.Zero
	repo.valorVenta = decimal.Zero

	uc := analytics.NewDashboardUseCase(repo, nil)

	resp, err := uc.GetEstadisticas(context.Background())
	require.NoError(t, err)

	// Inventario vacío: la rentabilidad es 0, no una división entre cero.
	assert.True(t, resp.Resumen.Rentabilidad.IsZero())
	assert.True(t, resp.Resumen.MargenPotencial.IsZero())

	esperarUpsert(t, repo)
}

func TestGetEstadisticas_SnapshotConMetricasDelDia(t *testing.T) {
	repo := newFakeDashboardRepo()
	repo.productos = 8
	repo.stockBajo = 2
	repo.valorizacion = decimal.NewFromInt(200)
	repo.valorVenta = decimal.NewFromInt(260)

	uc := analytics.NewDashboardUseCase(repo, nil)

	_, err := uc.GetEstadisticas(context.Background())
	require.NoError(t, err)

	h := esperarUpsert(t, repo)
	assert.NotEmpty(t, h.ID, "el snapshot lleva su propio id generado")
	assert.False(t, h.CreatedAt.IsZero(), "el snapshot lleva created_at poblado")
	assert.Equal(t, 8, h.TotalProductos)
	assert.Equal(t, 2, h.StockBajo)
	assert.True(t, h.Valorizacion.Equal(decimal.NewFromInt(200)))
	assert.True(t, h.ValorVenta.Equal(decimal.NewFromInt(260)))
	assert.True(t, h.Rentabilidad.Equal(decimal.NewFromInt(30)))

	hoy := time.Now()
	assert.Equal(t, hoy.Day(), h.Fecha.Day())
	assert.Equal(t, 0, h.Fecha.Hour(), "la fecha del snapshot se trunca a medianoche")
}

func TestGetEstadisticas_NoRepiteSnapshotDelDia(t *testing.T) {
	repo := newFakeDashboardRepo()
	ahora := time.Now()
	repo.historial = []*entity.Historial{
		{Fecha: time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())},
	}

	uc := analytics.NewDashboardUseCase(repo, nil)

	_, err := uc.GetEstadisticas(context.Background())
	require.NoError(t, err)

	select {
	case <-repo.upserts:
		t.Fatal("no debe reescribirse el snapshot si hoy ya está en el historial")
	case <-time.After(100 * time.Millisecond):
	}
}
