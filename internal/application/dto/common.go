package dto

// ErrorResponse cuerpo de error HTTP: { "error": "<mensaje>" }.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse cuerpo de confirmación simple.
type MessageResponse struct {
	Message string `json:"message"`
}
