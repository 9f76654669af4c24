package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/inventory"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

const productoMovimientosRecientes = 10 // movimientos incluidos en el detalle

// ProductoUseCase casos de uso CRUD para productos. El stock no se edita por
// esta vía: solo la ruta de movimientos lo modifica (el stock inicial del alta
// es la única excepción).
type ProductoUseCase struct {
	repo           repository.ProductoRepository
	categoriaRepo  repository.CategoriaRepository
	proveedorRepo  repository.ProveedorRepository
	movimientoRepo repository.MovimientoRepository
	txRunner       inventory.TxRunner
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(
	repo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	proveedorRepo repository.ProveedorRepository,
	movimientoRepo repository.MovimientoRepository,
	txRunner inventory.TxRunner,
) *ProductoUseCase {
	return &ProductoUseCase{
		repo:           repo,
		categoriaRepo:  categoriaRepo,
		proveedorRepo:  proveedorRepo,
		movimientoRepo: movimientoRepo,
		txRunner:       txRunner,
	}
}

// Listar devuelve productos según filtros. El filtro stockBajo se resuelve
// como predicado SQL (stock <= stock_minimo), la misma definición que usa el
// dashboard.
func (uc *ProductoUseCase) Listar(filtros repository.ProductoFiltros) ([]dto.ProductoResponse, error) {
	list, err := uc.repo.List(filtros)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductoResponse(p))
	}
	return items, nil
}

// ObtenerPorID devuelve el producto con categoría, proveedor y sus últimos
// movimientos. nil si no existe.
func (uc *ProductoUseCase) ObtenerPorID(id string) (*dto.ProductoDetalleResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}

	out := &dto.ProductoDetalleResponse{ProductoResponse: toProductoResponse(producto)}

	if categoria, err := uc.categoriaRepo.GetByID(producto.CategoriaID); err != nil {
		return nil, err
	} else if categoria != nil {
		out.Categoria = &dto.CategoriaResponse{
			ID:          categoria.ID,
			Nombre:      categoria.Nombre,
			Descripcion: categoria.Descripcion,
			ImagenURL:   categoria.ImagenURL,
			CreatedAt:   categoria.CreatedAt,
			UpdatedAt:   categoria.UpdatedAt,
		}
	}
	if producto.ProveedorID != "" {
		if proveedor, err := uc.proveedorRepo.GetByID(producto.ProveedorID); err != nil {
			return nil, err
		} else if proveedor != nil {
			resp := toProveedorResponse(proveedor, 0)
			out.Proveedor = &resp
		}
	}

	movimientos, err := uc.movimientoRepo.ListByProducto(id)
	if err != nil {
		return nil, err
	}
	if len(movimientos) > productoMovimientosRecientes {
		movimientos = movimientos[:productoMovimientosRecientes]
	}
	out.Movimientos = make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		out.Movimientos = append(out.Movimientos, dto.MovimientoResponse{
			ID:          m.ID,
			Tipo:        m.Tipo,
			Cantidad:    m.Cantidad,
			Descripcion: m.Descripcion,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

// Crear crea un producto. Código duplicado devuelve ErrDuplicate; categoría o
// proveedor inexistentes, ErrConflict.
func (uc *ProductoUseCase) Crear(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Codigo == "" || in.Nombre == "" || in.CategoriaID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 || in.StockMinimo < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Precio.IsNegative() || in.Costo.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	categoria, err := uc.categoriaRepo.GetByID(in.CategoriaID)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrConflict
	}
	if in.ProveedorID != "" {
		proveedor, err := uc.proveedorRepo.GetByID(in.ProveedorID)
		if err != nil {
			return nil, err
		}
		if proveedor == nil {
			return nil, domain.ErrConflict
		}
	}

	stockMinimo := in.StockMinimo
	if stockMinimo == 0 {
		stockMinimo = 5
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:          uuid.New().String(),
		Codigo:      in.Codigo,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Precio:      in.Precio,
		Costo:       in.Costo,
		Stock:       in.Stock,
		StockMinimo: stockMinimo,
		Activo:      true,
		CategoriaID: in.CategoriaID,
		ProveedorID: in.ProveedorID,
		ImagenURL:   in.ImagenURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	out := toProductoResponse(producto)
	return &out, nil
}

// Actualizar actualización parcial; stock excluido. nil si el producto no existe.
func (uc *ProductoUseCase) Actualizar(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	if in.Codigo != nil {
		if *in.Codigo == "" {
			return nil, domain.ErrInvalidInput
		}
		producto.Codigo = *in.Codigo
	}
	if in.Nombre != nil {
		if *in.Nombre == "" {
			return nil, domain.ErrInvalidInput
		}
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.Precio != nil {
		if in.Precio.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.Precio = *in.Precio
	}
	if in.Costo != nil {
		if in.Costo.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.Costo = *in.Costo
	}
	if in.StockMinimo != nil {
		if *in.StockMinimo < 0 {
			return nil, domain.ErrInvalidInput
		}
		producto.StockMinimo = *in.StockMinimo
	}
	if in.CategoriaID != nil {
		categoria, err := uc.categoriaRepo.GetByID(*in.CategoriaID)
		if err != nil {
			return nil, err
		}
		if categoria == nil {
			return nil, domain.ErrConflict
		}
		producto.CategoriaID = *in.CategoriaID
	}
	if in.ProveedorID != nil {
		if *in.ProveedorID != "" {
			proveedor, err := uc.proveedorRepo.GetByID(*in.ProveedorID)
			if err != nil {
				return nil, err
			}
			if proveedor == nil {
				return nil, domain.ErrConflict
			}
		}
		producto.ProveedorID = *in.ProveedorID
	}
	if in.Activo != nil {
		producto.Activo = *in.Activo
	}
	if in.ImagenURL != nil {
		producto.ImagenURL = *in.ImagenURL
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	out := toProductoResponse(producto)
	return &out, nil
}

// Eliminar borra el producto junto con su libro de movimientos, en una sola
// transacción: primero el libro, luego la fila del producto.
func (uc *ProductoUseCase) Eliminar(ctx context.Context, id string) error {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
	) error {
		if err := movRepo.DeleteByProducto(id); err != nil {
			return err
		}
		return productoRepo.Delete(id)
	})
}

func toProductoResponse(p *entity.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID,
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Costo:       p.Costo,
		Stock:       p.Stock,
		StockMinimo: p.StockMinimo,
		StockBajo:   p.StockBajo(),
		Activo:      p.Activo,
		CategoriaID: p.CategoriaID,
		ProveedorID: p.ProveedorID,
		ImagenURL:   p.ImagenURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
