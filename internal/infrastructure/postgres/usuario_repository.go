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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste un nuevo usuario. Email duplicado devuelve ErrDuplicate.
func (r *UsuarioRepo) Create(usuario *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, nombre, email, password_hash, rol_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.Nombre, usuario.Email, usuario.PasswordHash,
		usuario.RolID, usuario.CreatedAt, usuario.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. nil si no existe.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	return r.getBy(`id = $1`, id)
}

// GetByEmail obtiene un usuario por email. nil si no existe.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	return r.getBy(`email = $1`, email)
}

func (r *UsuarioRepo) getBy(cond string, arg any) (*entity.Usuario, error) {
	query := `SELECT id, nombre, email, password_hash, rol_id, created_at, updated_at FROM usuarios WHERE ` + cond
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.RolID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// List lista todos los usuarios con el nombre de su rol, por nombre.
func (r *UsuarioRepo) List() ([]*repository.UsuarioConRol, error) {
	query := `
		SELECT u.id, u.nombre, u.email, u.password_hash, u.rol_id, u.created_at, u.updated_at, r.nombre
		FROM usuarios u
		JOIN roles r ON r.id = u.rol_id
		ORDER BY u.nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*repository.UsuarioConRol
	for rows.Next() {
		var u repository.UsuarioConRol
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.RolID,
			&u.CreatedAt, &u.UpdatedAt, &u.RolNombre); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update actualiza un usuario existente.
func (r *UsuarioRepo) Update(usuario *entity.Usuario) error {
	query := `
		UPDATE usuarios SET nombre = $2, email = $3, password_hash = $4, rol_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.Nombre, usuario.Email, usuario.PasswordHash,
		usuario.RolID, usuario.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UsuarioRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}

// CountByRol cuenta los usuarios asignados a un rol.
func (r *UsuarioRepo) CountByRol(rolID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM usuarios WHERE rol_id = $1`, rolID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count usuarios por rol: %w", err)
	}
	return n, nil
}
