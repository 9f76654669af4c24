package entity

import "time"

// Tipos de movimiento válidos.
const (
	MovimientoENTRADA = "ENTRADA" // suma cantidad al stock
	MovimientoSALIDA  = "SALIDA"  // resta cantidad, con verificación de suficiencia
	MovimientoAJUSTE  = "AJUSTE"  // establece el stock en la cantidad, sin sumar ni restar
)

// TipoMovimientoValido verifica el tipo contra el enum.
func TipoMovimientoValido(tipo string) bool {
	return tipo == MovimientoENTRADA || tipo == MovimientoSALIDA || tipo == MovimientoAJUSTE
}

// Movimiento es una entrada del libro de stock (kardex). Inmutable una vez
// creada: nunca se actualiza, solo se lee o se elimina en bloque al borrar
// su producto.
type Movimiento struct {
	ID          string
	ProductoID  string
	Tipo        string // ENTRADA, SALIDA, AJUSTE
	Cantidad    int
	Descripcion string
	CreatedAt   time.Time
}
