package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de lectura del dashboard sobre PostgreSQL. Recibe
// ctx por método porque el use case las lanza en paralelo bajo un mismo
// contexto cancelable.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador de consultas del dashboard.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountProductosActivos cuenta los productos activos.
func (r *DashboardRepo) CountProductosActivos(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM productos WHERE activo`)
}

// CountCategorias cuenta todas las categorías.
func (r *DashboardRepo) CountCategorias(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM categorias`)
}

// CountProveedoresActivos cuenta los proveedores activos.
func (r *DashboardRepo) CountProveedoresActivos(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM proveedores WHERE activo`)
}

// CountStockBajo cuenta productos activos en o por debajo de su umbral mínimo.
func (r *DashboardRepo) CountStockBajo(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM productos WHERE activo AND stock <= stock_minimo`)
}

func (r *DashboardRepo) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count dashboard: %w", err)
	}
	return n, nil
}

// TopStockBajo devuelve los productos activos con stock <= stock_minimo,
// peor stock primero.
func (r *DashboardRepo) TopStockBajo(ctx context.Context, limit int) ([]*repository.ProductoStockBajo, error) {
	query := `
		SELECT p.id, p.codigo, p.nombre, p.stock, p.stock_minimo, c.nombre
		FROM productos p
		JOIN categorias c ON c.id = p.categoria_id
		WHERE p.activo AND p.stock <= p.stock_minimo
		ORDER BY p.stock ASC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top stock bajo: %w", err)
	}
	defer rows.Close()
	var list []*repository.ProductoStockBajo
	for rows.Next() {
		var p repository.ProductoStockBajo
		if err := rows.Scan(&p.ID, &p.Codigo, &p.Nombre, &p.Stock, &p.StockMinimo, &p.CategoriaNombre); err != nil {
			return nil, fmt.Errorf("scan stock bajo: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UltimosMovimientos devuelve los movimientos más recientes con su producto.
func (r *DashboardRepo) UltimosMovimientos(ctx context.Context, limit int) ([]*repository.MovimientoConProducto, error) {
	query := `
		SELECT m.id, m.producto_id, m.tipo, m.cantidad, m.descripcion, m.created_at,
			p.codigo, p.nombre
		FROM movimientos m
		JOIN productos p ON p.id = m.producto_id
		ORDER BY m.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ultimos movimientos: %w", err)
	}
	defer rows.Close()
	var list []*repository.MovimientoConProducto
	for rows.Next() {
		var m repository.MovimientoConProducto
		var descripcion *string
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &descripcion,
			&m.CreatedAt, &m.ProductoCodigo, &m.ProductoNombre); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		if descripcion != nil {
			m.Descripcion = *descripcion
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ProductosPorCategoria devuelve cada categoría con su conteo de productos.
func (r *DashboardRepo) ProductosPorCategoria(ctx context.Context) ([]*repository.CategoriaConConteo, error) {
	query := `
		SELECT c.id, c.nombre, c.descripcion, c.imagen_url, c.created_at, c.updated_at,
			COUNT(p.id) AS total_productos
		FROM categorias c
		LEFT JOIN productos p ON p.categoria_id = c.id
		GROUP BY c.id
		ORDER BY total_productos DESC, c.nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("productos por categoria: %w", err)
	}
	defer rows.Close()
	var list []*repository.CategoriaConConteo
	for rows.Next() {
		var c repository.CategoriaConConteo
		var descripcion, imagenURL *string
		if err := rows.Scan(&c.ID, &c.Nombre, &descripcion, &imagenURL,
			&c.CreatedAt, &c.UpdatedAt, &c.TotalProductos); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		if descripcion != nil {
			c.Descripcion = *descripcion
		}
		if imagenURL != nil {
			c.ImagenURL = *imagenURL
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// HistorialReciente devuelve las últimas fotos diarias, ascendente por fecha.
func (r *DashboardRepo) HistorialReciente(ctx context.Context, limit int) ([]*entity.Historial, error) {
	// El LIMIT corta por las más recientes; la subconsulta reordena ascendente.
	query := `
		SELECT id, fecha, total_productos, stock_bajo, valorizacion, valor_venta, rentabilidad, created_at
		FROM (
			SELECT id, fecha, total_productos, stock_bajo, valorizacion, valor_venta, rentabilidad, created_at
			FROM historial_inventario
			ORDER BY fecha DESC
			LIMIT $1
		) ultimos
		ORDER BY fecha ASC`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("historial reciente: %w", err)
	}
	defer rows.Close()
	var list []*entity.Historial
	for rows.Next() {
		var h entity.Historial
		if err := rows.Scan(&h.ID, &h.Fecha, &h.TotalProductos, &h.StockBajo,
			&h.Valorizacion, &h.ValorVenta, &h.Rentabilidad, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// Finanzas devuelve los agregados Σ(stock×costo) y Σ(stock×precio) sobre
// productos activos, a cero si no hay filas.
func (r *DashboardRepo) Finanzas(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(stock * costo), 0), COALESCE(SUM(stock * precio), 0)
		FROM productos WHERE activo`
	var valorizacion, valorVenta decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&valorizacion, &valorVenta); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("finanzas: %w", err)
	}
	return valorizacion, valorVenta, nil
}

// UpsertHistorial crea o reemplaza la foto del día (única sobre fecha).
func (r *DashboardRepo) UpsertHistorial(ctx context.Context, historial *entity.Historial) error {
	query := `
		INSERT INTO historial_inventario (id, fecha, total_productos, stock_bajo, valorizacion, valor_venta, rentabilidad, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (fecha) DO UPDATE SET
			total_productos = EXCLUDED.total_productos,
			stock_bajo = EXCLUDED.stock_bajo,
			valorizacion = EXCLUDED.valorizacion,
			valor_venta = EXCLUDED.valor_venta,
			rentabilidad = EXCLUDED.rentabilidad`
	_, err := r.q.Exec(ctx, query,
		historial.ID, historial.Fecha, historial.TotalProductos, historial.StockBajo,
		historial.Valorizacion, historial.ValorVenta, historial.Rentabilidad, historial.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert historial: %w", err)
	}
	return nil
}
