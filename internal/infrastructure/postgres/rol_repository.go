package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

var _ repository.RolRepository = (*RolRepo)(nil)

// RolRepo implementación del puerto RolRepository sobre PostgreSQL. Recibe el
// pool directamente (no un Querier) porque Create y Update reemplazan las
// filas de rol_permisos en su propia transacción.
type RolRepo struct {
	pool *pgxpool.Pool
}

// NewRolRepository construye el adaptador de persistencia para roles.
func NewRolRepository(pool *pgxpool.Pool) *RolRepo {
	return &RolRepo{pool: pool}
}

// Create persiste el rol y sus filas de rol_permisos en una transacción.
func (r *RolRepo) Create(rol *entity.Rol, permisoIDs []string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO roles (id, nombre, descripcion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rol.ID, rol.Nombre, rol.Descripcion, rol.CreatedAt, rol.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rol: %w", err)
	}
	if err := insertRolPermisos(ctx, tx, rol.ID, permisoIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un rol con sus permisos. nil si no existe.
func (r *RolRepo) GetByID(id string) (*entity.Rol, error) {
	return r.getBy(`id = $1`, id)
}

// GetByNombre obtiene un rol por nombre. nil si no existe.
func (r *RolRepo) GetByNombre(nombre string) (*entity.Rol, error) {
	return r.getBy(`nombre = $1`, nombre)
}

func (r *RolRepo) getBy(cond string, arg any) (*entity.Rol, error) {
	ctx := context.Background()
	query := `SELECT id, nombre, descripcion, created_at, updated_at FROM roles WHERE ` + cond
	var rol entity.Rol
	var descripcion *string
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&rol.ID, &rol.Nombre, &descripcion, &rol.CreatedAt, &rol.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	if descripcion != nil {
		rol.Descripcion = *descripcion
	}
	permisos, err := r.permisosDeRol(ctx, rol.ID)
	if err != nil {
		return nil, err
	}
	rol.Permisos = permisos
	return &rol, nil
}

// List lista todos los roles con sus permisos, por nombre.
func (r *RolRepo) List() ([]*entity.Rol, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT id, nombre, descripcion, created_at, updated_at FROM roles ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rol
	for rows.Next() {
		var rol entity.Rol
		var descripcion *string
		if err := rows.Scan(&rol.ID, &rol.Nombre, &descripcion, &rol.CreatedAt, &rol.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		if descripcion != nil {
			rol.Descripcion = *descripcion
		}
		list = append(list, &rol)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rol := range list {
		permisos, err := r.permisosDeRol(ctx, rol.ID)
		if err != nil {
			return nil, err
		}
		rol.Permisos = permisos
	}
	return list, nil
}

// Update actualiza el rol y reemplaza sus filas de rol_permisos en una transacción.
func (r *RolRepo) Update(rol *entity.Rol, permisoIDs []string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		UPDATE roles SET nombre = $2, descripcion = $3, updated_at = $4 WHERE id = $1`,
		rol.ID, rol.Nombre, rol.Descripcion, rol.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update rol: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM rol_permisos WHERE rol_id = $1`, rol.ID); err != nil {
		return fmt.Errorf("delete rol_permisos: %w", err)
	}
	if err := insertRolPermisos(ctx, tx, rol.ID, permisoIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Delete elimina un rol por ID; sus filas de rol_permisos caen por cascada.
func (r *RolRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete rol: %w", err)
	}
	return nil
}

func (r *RolRepo) permisosDeRol(ctx context.Context, rolID string) ([]entity.Permiso, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.nombre
		FROM permisos p
		JOIN rol_permisos rp ON rp.permiso_id = p.id
		WHERE rp.rol_id = $1
		ORDER BY p.nombre`, rolID)
	if err != nil {
		return nil, fmt.Errorf("list permisos de rol: %w", err)
	}
	defer rows.Close()
	var permisos []entity.Permiso
	for rows.Next() {
		var p entity.Permiso
		if err := rows.Scan(&p.ID, &p.Nombre); err != nil {
			return nil, fmt.Errorf("scan permiso: %w", err)
		}
		permisos = append(permisos, p)
	}
	return permisos, rows.Err()
}

func insertRolPermisos(ctx context.Context, tx pgx.Tx, rolID string, permisoIDs []string) error {
	for _, permisoID := range permisoIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO rol_permisos (rol_id, permiso_id) VALUES ($1, $2)`,
			rolID, permisoID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidInput
			}
			return fmt.Errorf("insert rol_permiso: %w", err)
		}
	}
	return nil
}

var _ repository.PermisoRepository = (*PermisoRepo)(nil)

// PermisoRepo lectura del catálogo de permisos.
type PermisoRepo struct {
	q Querier
}

// NewPermisoRepository construye el adaptador de lectura para permisos.
func NewPermisoRepository(q Querier) *PermisoRepo {
	return &PermisoRepo{q: q}
}

// List devuelve el catálogo completo de permisos, por nombre.
func (r *PermisoRepo) List() ([]*entity.Permiso, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre FROM permisos ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list permisos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Permiso
	for rows.Next() {
		var p entity.Permiso
		if err := rows.Scan(&p.ID, &p.Nombre); err != nil {
			return nil, fmt.Errorf("scan permiso: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
