package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

const movimientoListDefaultLimit = 100

// MovimientoRepo implementación del puerto MovimientoRepository sobre PostgreSQL.
// El libro es inmutable: solo INSERT, SELECT y el DELETE en bloque al borrar
// el producto.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador de persistencia para movimientos.
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create persiste una entrada del libro de movimientos.
func (r *MovimientoRepo) Create(movimiento *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (id, producto_id, tipo, cantidad, descripcion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.ProductoID, movimiento.Tipo,
		movimiento.Cantidad, movimiento.Descripcion, movimiento.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// List lista movimientos con código y nombre del producto, más recientes primero.
func (r *MovimientoRepo) List(filtros repository.MovimientoFiltros) ([]*repository.MovimientoConProducto, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT m.id, m.producto_id, m.tipo, m.cantidad, m.descripcion, m.created_at,
			p.codigo, p.nombre
		FROM movimientos m
		JOIN productos p ON p.id = m.producto_id
		WHERE 1=1`)
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filtros.ProductoID != "" {
		sb.WriteString(` AND m.producto_id = ` + arg(filtros.ProductoID))
	}
	if filtros.Tipo != "" {
		sb.WriteString(` AND m.tipo = ` + arg(filtros.Tipo))
	}
	if filtros.Desde != nil {
		sb.WriteString(` AND m.created_at >= ` + arg(*filtros.Desde))
	}
	if filtros.Hasta != nil {
		sb.WriteString(` AND m.created_at <= ` + arg(*filtros.Hasta))
	}
	limit := filtros.Limit
	if limit <= 0 {
		limit = movimientoListDefaultLimit
	}
	sb.WriteString(` ORDER BY m.created_at DESC LIMIT ` + arg(limit))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
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

// ListByProducto devuelve el kardex completo de un producto, más reciente primero.
func (r *MovimientoRepo) ListByProducto(productoID string) ([]*entity.Movimiento, error) {
	query := `
		SELECT id, producto_id, tipo, cantidad, descripcion, created_at
		FROM movimientos WHERE producto_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, productoID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por producto: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		var descripcion *string
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &descripcion, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		if descripcion != nil {
			m.Descripcion = *descripcion
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteByProducto elimina en bloque el libro de un producto.
func (r *MovimientoRepo) DeleteByProducto(productoID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM movimientos WHERE producto_id = $1`, productoID)
	if err != nil {
		return fmt.Errorf("delete movimientos por producto: %w", err)
	}
	return nil
}
