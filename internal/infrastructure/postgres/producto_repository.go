package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, codigo, nombre, descripcion, precio, costo, stock, stock_minimo, activo, categoria_id, proveedor_id, imagen_url, created_at, updated_at`

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	query := `
		INSERT INTO productos (id, codigo, nombre, descripcion, precio, costo, stock, stock_minimo, activo, categoria_id, proveedor_id, imagen_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Codigo, producto.Nombre, producto.Descripcion,
		producto.Precio, producto.Costo, producto.Stock, producto.StockMinimo,
		producto.Activo, producto.CategoriaID, producto.ProveedorID, producto.ImagenURL,
		producto.CreatedAt, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. nil si no existe.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCodigo obtiene un producto por su código único. nil si no existe.
func (r *ProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE codigo = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, codigo))
}

// GetForUpdate obtiene un producto bloqueando su fila (SELECT FOR UPDATE).
// Fuera de una transacción el bloqueo se libera de inmediato y no sirve de nada.
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// List lista productos aplicando los filtros no vacíos, más recientes primero.
func (r *ProductoRepo) List(filtros repository.ProductoFiltros) ([]*entity.Producto, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productoColumns + ` FROM productos WHERE 1=1`)
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filtros.CategoriaID != "" {
		sb.WriteString(` AND categoria_id = ` + arg(filtros.CategoriaID))
	}
	if filtros.ProveedorID != "" {
		sb.WriteString(` AND proveedor_id = ` + arg(filtros.ProveedorID))
	}
	if filtros.Activo != nil {
		sb.WriteString(` AND activo = ` + arg(*filtros.Activo))
	}
	if filtros.Buscar != "" {
		p := arg("%" + filtros.Buscar + "%")
		sb.WriteString(` AND (nombre ILIKE ` + p + ` OR codigo ILIKE ` + p + ` OR descripcion ILIKE ` + p + `)`)
	}
	if filtros.StockBajo {
		sb.WriteString(` AND stock <= stock_minimo`)
	}
	sb.WriteString(` ORDER BY created_at DESC`)

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto. No toca la columna stock (se maneja vía movimientos).
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos SET codigo = $2, nombre = $3, descripcion = $4, precio = $5, costo = $6,
			stock_minimo = $7, activo = $8, categoria_id = $9, proveedor_id = NULLIF($10, ''),
			imagen_url = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Codigo, producto.Nombre, producto.Descripcion,
		producto.Precio, producto.Costo, producto.StockMinimo, producto.Activo,
		producto.CategoriaID, producto.ProveedorID, producto.ImagenURL, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// UpdateStock escribe el contador de stock. Solo la ruta de movimientos lo llama,
// dentro de la misma transacción que tomó el bloqueo con GetForUpdate.
func (r *ProductoRepo) UpdateStock(id string, stock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}

// CountByCategoria cuenta los productos que referencian una categoría.
func (r *ProductoRepo) CountByCategoria(categoriaID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM productos WHERE categoria_id = $1`, categoriaID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count productos por categoria: %w", err)
	}
	return n, nil
}

// CountByProveedor cuenta los productos que referencian un proveedor.
func (r *ProductoRepo) CountByProveedor(proveedorID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM productos WHERE proveedor_id = $1`, proveedorID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count productos por proveedor: %w", err)
	}
	return n, nil
}

func (r *ProductoRepo) scanOne(row pgx.Row) (*entity.Producto, error) {
	p, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

func (r *ProductoRepo) scanRow(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	var descripcion, proveedorID, imagenURL *string
	err := row.Scan(
		&p.ID, &p.Codigo, &p.Nombre, &descripcion, &p.Precio, &p.Costo,
		&p.Stock, &p.StockMinimo, &p.Activo, &p.CategoriaID, &proveedorID,
		&imagenURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if descripcion != nil {
		p.Descripcion = *descripcion
	}
	if proveedorID != nil {
		p.ProveedorID = *proveedorID
	}
	if imagenURL != nil {
		p.ImagenURL = *imagenURL
	}
	return &p, nil
}
