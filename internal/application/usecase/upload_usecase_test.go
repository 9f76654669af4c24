package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abastos/inventario-api/internal/application/usecase"
	"github.com/abastos/inventario-api/internal/domain"
)

type stubImagenStorage struct {
	subidos   []string
	borrados  []string
	uploadErr error
}

func (s *stubImagenStorage) Upload(_ context.Context, filename string, _ io.Reader) (string, string, error) {
	if s.uploadErr != nil {
		return "", "", s.uploadErr
	}
	s.subidos = append(s.subidos, filename)
	return "https://res.cloudinary.test/imagen.jpg", "inventario/abc123", nil
}

func (s *stubImagenStorage) Delete(_ context.Context, publicID string) error {
	s.borrados = append(s.borrados, publicID)
	return nil
}

func TestUploadSubir_ExtensionesValidas(t *testing.T) {
	storage := &stubImagenStorage{}
	uc := usecase.NewUploadUseCase(storage)

	for _, nombre := range []string{"foto.jpg", "foto.JPEG", "logo.png", "banner.webp", "anim.gif"} {
		out, err := uc.Subir(context.Background(), nombre, strings.NewReader("bytes"))
		require.NoError(t, err, nombre)
		assert.Equal(t, "inventario/abc123", out.PublicID)
	}
	assert.Len(t, storage.subidos, 5)
}

func TestUploadSubir_ExtensionRechazada(t *testing.T) {
	storage := &stubImagenStorage{}
	uc := usecase.NewUploadUseCase(storage)

	for _, nombre := range []string{"script.exe", "doc.pdf", "sinextension", "raro.svg"} {
		_, err := uc.Subir(context.Background(), nombre, strings.NewReader("bytes"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, nombre)
	}
	assert.Empty(t, storage.subidos, "nada llega al almacenamiento si la extensión no pasa")
}

func TestUploadEliminar(t *testing.T) {
	storage := &stubImagenStorage{}
	uc := usecase.NewUploadUseCase(storage)

	require.NoError(t, uc.Eliminar(context.Background(), "inventario/abc123"))
	assert.Equal(t, []string{"inventario/abc123"}, storage.borrados)

	assert.ErrorIs(t, uc.Eliminar(context.Background(), ""), domain.ErrInvalidInput)
}
