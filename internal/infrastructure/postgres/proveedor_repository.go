package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación del puerto ProveedorRepository sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador de persistencia para proveedores.
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *ProveedorRepo) Create(proveedor *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (id, nombre, contacto, telefono, email, direccion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		proveedor.ID, proveedor.Nombre, proveedor.Contacto, proveedor.Telefono,
		proveedor.Email, proveedor.Direccion, proveedor.Activo,
		proveedor.CreatedAt, proveedor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. nil si no existe.
func (r *ProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	query := `
		SELECT id, nombre, contacto, telefono, email, direccion, activo, created_at, updated_at
		FROM proveedores WHERE id = $1`
	var p entity.Proveedor
	var contacto, telefono, email, direccion *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Nombre, &contacto, &telefono, &email, &direccion,
		&p.Activo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	asignar(&p.Contacto, contacto)
	asignar(&p.Telefono, telefono)
	asignar(&p.Email, email)
	asignar(&p.Direccion, direccion)
	return &p, nil
}

// List lista todos los proveedores con su conteo de productos, por nombre.
func (r *ProveedorRepo) List() ([]*repository.ProveedorConConteo, error) {
	query := `
		SELECT pr.id, pr.nombre, pr.contacto, pr.telefono, pr.email, pr.direccion, pr.activo,
			pr.created_at, pr.updated_at, COUNT(p.id) AS total_productos
		FROM proveedores pr
		LEFT JOIN productos p ON p.proveedor_id = pr.id
		GROUP BY pr.id
		ORDER BY pr.nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*repository.ProveedorConConteo
	for rows.Next() {
		var p repository.ProveedorConConteo
		var contacto, telefono, email, direccion *string
		if err := rows.Scan(&p.ID, &p.Nombre, &contacto, &telefono, &email, &direccion,
			&p.Activo, &p.CreatedAt, &p.UpdatedAt, &p.TotalProductos); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		asignar(&p.Contacto, contacto)
		asignar(&p.Telefono, telefono)
		asignar(&p.Email, email)
		asignar(&p.Direccion, direccion)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un proveedor existente.
func (r *ProveedorRepo) Update(proveedor *entity.Proveedor) error {
	query := `
		UPDATE proveedores SET nombre = $2, contacto = $3, telefono = $4, email = $5,
			direccion = $6, activo = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		proveedor.ID, proveedor.Nombre, proveedor.Contacto, proveedor.Telefono,
		proveedor.Email, proveedor.Direccion, proveedor.Activo, proveedor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

// Delete elimina un proveedor por ID. Con productos asignados la FK la protege.
func (r *ProveedorRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM proveedores WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete proveedor: %w", err)
	}
	return nil
}

// asignar copia el valor de un puntero de scan nullable si no es nil.
func asignar(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
