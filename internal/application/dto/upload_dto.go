package dto

// UploadImagenResponse salida de POST /api/upload/imagen.
type UploadImagenResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// DeleteImagenRequest entrada de DELETE /api/upload/imagen.
type DeleteImagenRequest struct {
	PublicID string `json:"public_id"`
}
