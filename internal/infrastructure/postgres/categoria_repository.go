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

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación del puerto CategoriaRepository sobre PostgreSQL.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador de persistencia para categorías.
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create persiste una nueva categoría. Nombre duplicado devuelve ErrDuplicate.
func (r *CategoriaRepo) Create(categoria *entity.Categoria) error {
	query := `
		INSERT INTO categorias (id, nombre, descripcion, imagen_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		categoria.ID, categoria.Nombre, categoria.Descripcion, categoria.ImagenURL,
		categoria.CreatedAt, categoria.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. nil si no existe.
func (r *CategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	return r.getBy(`id = $1`, id)
}

// GetByNombre obtiene una categoría por nombre. nil si no existe.
func (r *CategoriaRepo) GetByNombre(nombre string) (*entity.Categoria, error) {
	return r.getBy(`nombre = $1`, nombre)
}

func (r *CategoriaRepo) getBy(cond string, arg any) (*entity.Categoria, error) {
	query := `SELECT id, nombre, descripcion, imagen_url, created_at, updated_at FROM categorias WHERE ` + cond
	var c entity.Categoria
	var descripcion, imagenURL *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Nombre, &descripcion, &imagenURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	if descripcion != nil {
		c.Descripcion = *descripcion
	}
	if imagenURL != nil {
		c.ImagenURL = *imagenURL
	}
	return &c, nil
}

// List lista todas las categorías con su conteo de productos, por nombre.
func (r *CategoriaRepo) List() ([]*repository.CategoriaConConteo, error) {
	query := `
		SELECT c.id, c.nombre, c.descripcion, c.imagen_url, c.created_at, c.updated_at,
			COUNT(p.id) AS total_productos
		FROM categorias c
		LEFT JOIN productos p ON p.categoria_id = c.id
		GROUP BY c.id
		ORDER BY c.nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
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

// Update actualiza una categoría existente.
func (r *CategoriaRepo) Update(categoria *entity.Categoria) error {
	query := `
		UPDATE categorias SET nombre = $2, descripcion = $3, imagen_url = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		categoria.ID, categoria.Nombre, categoria.Descripcion, categoria.ImagenURL, categoria.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update categoria: %w", err)
	}
	return nil
}

// Delete elimina una categoría por ID. Con productos asignados la FK la protege.
func (r *CategoriaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete categoria: %w", err)
	}
	return nil
}
