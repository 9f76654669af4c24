// Package inventory contiene el caso de uso del libro de movimientos de stock:
// registro transaccional de ENTRADA/SALIDA/AJUSTE y vista kardex por producto.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/entity"
	"github.com/abastos/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción SQL con repositorios atados a
// la tx. Commit si fn devuelve nil; Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
	) error) error
}

// MovimientoUseCase registra movimientos de stock de forma transaccional con
// bloqueo de fila (SELECT FOR UPDATE) sobre el producto, de modo que dos
// SALIDAs simultáneas contra el mismo producto se serialicen y la segunda
// relea el stock ya descontado antes de la verificación de suficiencia.
type MovimientoUseCase struct {
	txRunner       TxRunner
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoRepository
	categoriaRepo  repository.CategoriaRepository
}

// NewMovimientoUseCase construye el caso de uso.
func NewMovimientoUseCase(
	txRunner TxRunner,
	productoRepo repository.ProductoRepository,
	movimientoRepo repository.MovimientoRepository,
	categoriaRepo repository.CategoriaRepository,
) *MovimientoUseCase {
	return &MovimientoUseCase{
		txRunner:       txRunner,
		productoRepo:   productoRepo,
		movimientoRepo: movimientoRepo,
		categoriaRepo:  categoriaRepo,
	}
}

// Registrar valida la entrada, bloquea la fila del producto, calcula el nuevo
// stock según el tipo (ENTRADA suma, SALIDA resta con guardia de suficiencia,
// AJUSTE establece la cantidad como stock absoluto), inserta el movimiento y
// actualiza el contador del producto como una sola unidad atómica: ambas
// escrituras se confirman o ambas se revierten.
func (uc *MovimientoUseCase) Registrar(ctx context.Context, in dto.RegistrarMovimientoRequest) (*dto.RegistroMovimientoResponse, error) {
	if in.ProductoID == "" || !entity.TipoMovimientoValido(in.Tipo) || in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var out *dto.RegistroMovimientoResponse

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
	) error {
		// Bloquea la fila del producto; la guardia de suficiencia se evalúa
		// sobre el stock leído bajo el lock.
		producto, err := productoRepo.GetForUpdate(in.ProductoID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrNotFound
		}

		stockAnterior := producto.Stock
		var stockNuevo int
		switch in.Tipo {
		case entity.MovimientoENTRADA:
			stockNuevo = stockAnterior + in.Cantidad
		case entity.MovimientoSALIDA:
			if stockAnterior < in.Cantidad {
				return domain.ErrInsufficientStock
			}
			stockNuevo = stockAnterior - in.Cantidad
		case entity.MovimientoAJUSTE:
			// El ajuste establece el stock directamente, no suma ni resta.
			stockNuevo = in.Cantidad
		}

		mov := &entity.Movimiento{
			ID:          uuid.New().String(),
			ProductoID:  producto.ID,
			Tipo:        in.Tipo,
			Cantidad:    in.Cantidad,
			Descripcion: in.Descripcion,
			CreatedAt:   now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := productoRepo.UpdateStock(producto.ID, stockNuevo); err != nil {
			return err
		}

		out = &dto.RegistroMovimientoResponse{
			MovimientoResponse: dto.MovimientoResponse{
				ID:          mov.ID,
				Tipo:        mov.Tipo,
				Cantidad:    mov.Cantidad,
				Descripcion: mov.Descripcion,
				Producto: &dto.ProductoResumen{
					ID:     producto.ID,
					Codigo: producto.Codigo,
					Nombre: producto.Nombre,
				},
				CreatedAt: mov.CreatedAt,
			},
			StockAnterior: stockAnterior,
			StockNuevo:    stockNuevo,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Listar devuelve movimientos con filtros opcionales (producto, tipo, rango de fechas).
func (uc *MovimientoUseCase) Listar(filtros repository.MovimientoFiltros) ([]dto.MovimientoResponse, error) {
	list, err := uc.movimientoRepo.List(filtros)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovimientoResponse{
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
	return items, nil
}

// Kardex devuelve el producto con su categoría y el historial completo de
// movimientos, más reciente primero.
func (uc *MovimientoUseCase) Kardex(productoID string) (*dto.KardexResponse, error) {
	producto, err := uc.productoRepo.GetByID(productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	movimientos, err := uc.movimientoRepo.ListByProducto(productoID)
	if err != nil {
		return nil, err
	}

	resp := &dto.KardexResponse{
		Producto:    toProductoResponse(producto),
		Movimientos: make([]dto.MovimientoResponse, 0, len(movimientos)),
	}
	if categoria, err := uc.categoriaRepo.GetByID(producto.CategoriaID); err != nil {
		return nil, err
	} else if categoria != nil {
		resp.Producto.Categoria = &dto.CategoriaResponse{
			ID:          categoria.ID,
			Nombre:      categoria.Nombre,
			Descripcion: categoria.Descripcion,
			ImagenURL:   categoria.ImagenURL,
			CreatedAt:   categoria.CreatedAt,
			UpdatedAt:   categoria.UpdatedAt,
		}
	}
	for _, m := range movimientos {
		resp.Movimientos = append(resp.Movimientos, dto.MovimientoResponse{
			ID:          m.ID,
			Tipo:        m.Tipo,
			Cantidad:    m.Cantidad,
			Descripcion: m.Descripcion,
			CreatedAt:   m.CreatedAt,
		})
	}
	return resp, nil
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
