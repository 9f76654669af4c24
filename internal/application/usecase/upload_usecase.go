package usecase

import (
	"context"
	"io"
	"strings"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/ports"
	"github.com/abastos/inventario-api/internal/domain"
)

// extensiones de imagen aceptadas por el proxy de subida.
var extensionesImagen = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// UploadUseCase proxy de subida de imágenes: el backend firma y reenvía al
// almacenamiento externo, las credenciales nunca llegan al cliente.
type UploadUseCase struct {
	storage ports.ImagenStorage
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(storage ports.ImagenStorage) *UploadUseCase {
	return &UploadUseCase{storage: storage}
}

// Subir valida la extensión y sube la imagen. Extensión desconocida devuelve
// ErrInvalidInput.
func (uc *UploadUseCase) Subir(ctx context.Context, filename string, contenido io.Reader) (*dto.UploadImagenResponse, error) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || !extensionesImagen[strings.ToLower(filename[idx:])] {
		return nil, domain.ErrInvalidInput
	}
	url, publicID, err := uc.storage.Upload(ctx, filename, contenido)
	if err != nil {
		return nil, err
	}
	return &dto.UploadImagenResponse{URL: url, PublicID: publicID}, nil
}

// Eliminar borra una imagen por su public_id.
func (uc *UploadUseCase) Eliminar(ctx context.Context, publicID string) error {
	if publicID == "" {
		return domain.ErrInvalidInput
	}
	return uc.storage.Delete(ctx, publicID)
}
