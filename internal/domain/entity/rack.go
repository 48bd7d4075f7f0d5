package entity

import "time"

// Tipos de cara de una estantería.
const (
	FaceTypeSingle = "SINGLE" // una sola cara accesible
	FaceTypeDouble = "DOUBLE" // doble cara (derecha e izquierda)
)

// Rack representa una estantería dentro de un pasillo. Su configuración estructural
// (cara, niveles, cuerpos, posiciones por cuerpo) queda codificada en Code y es
// inmutable una vez aprovisionadas las posiciones, salvo crecimiento.
type Rack struct {
	ID         string
	AisleID    string
	Name       string
	FaceType   string // SINGLE | DOUBLE
	Levels     int
	Bays       int
	BinsPerBay int
	Code       string // ej. R-D-L3-B4-P2
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
