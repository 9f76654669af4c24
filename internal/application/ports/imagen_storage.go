// Package ports declara los puertos de salida de la capa de aplicación hacia
// servicios externos. Las implementaciones viven en infrastructure.
package ports

import (
	"context"
	"io"
)

// ImagenStorage almacena imágenes en un servicio externo (Cloudinary).
type ImagenStorage interface {
	// Upload sube la imagen y devuelve la URL pública y el public_id
	// con el que se puede eliminar después.
	Upload(ctx context.Context, filename string, contenido io.Reader) (url, publicID string, err error)
	// Delete elimina una imagen por su public_id. Idempotente: eliminar un
	// public_id inexistente no es error.
	Delete(ctx context.Context, publicID string) error
}
