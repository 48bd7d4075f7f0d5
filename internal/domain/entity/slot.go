package entity

import "time"

// Direcciones canónicas de una posición dentro de la estantería.
// Se normalizan una sola vez al ingreso; aguas abajo solo existen estos dos valores.
const (
	DirectionRight = "R"
	DirectionLeft  = "L"
)

// Slot representa una posición direccionable dentro de una estantería.
// La clave (rack, direction, bay, level, bin) es única; una vez creada no se borra.
type Slot struct {
	ID        string
	RackID    string
	Direction string // R | L
	Bay       int    // cuerpo, desde 1
	Level     int    // nivel, desde 1
	Bin       int    // posición dentro del cuerpo, desde 1
	CreatedAt time.Time
}
