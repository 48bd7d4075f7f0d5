package rack

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// SlotKey identifica una celda de la grilla de una estantería.
type SlotKey struct {
	Direction string
	Bay       int
	Level     int
	Bin       int
}

// Directions devuelve las direcciones que implica el tipo de cara:
// doble cara → L y R (orden ascendente), cara única → solo R.
func Directions(faceType string) []string {
	if faceType == entity.FaceTypeDouble {
		return []string{entity.DirectionLeft, entity.DirectionRight}
	}
	return []string{entity.DirectionRight}
}

// EnumerateSlots genera el espacio cartesiano completo de posiciones que implica
// la configuración: dirección × nivel[1..] × cuerpo[1..] × posición[1..].
func EnumerateSlots(cfg Config) []SlotKey {
	cfg = Normalize(cfg)
	dirs := Directions(cfg.FaceType)
	keys := make([]SlotKey, 0, len(dirs)*cfg.Levels*cfg.Bays*cfg.BinsPerBay)
	for _, dir := range dirs {
		for level := 1; level <= cfg.Levels; level++ {
			for bay := 1; bay <= cfg.Bays; bay++ {
				for bin := 1; bin <= cfg.BinsPerBay; bin++ {
					keys = append(keys, SlotKey{Direction: dir, Bay: bay, Level: level, Bin: bin})
				}
			}
		}
	}
	return keys
}

// GridSize devuelve el total de posiciones que implica la configuración.
func GridSize(cfg Config) int {
	cfg = Normalize(cfg)
	return len(Directions(cfg.FaceType)) * cfg.Levels * cfg.Bays * cfg.BinsPerBay
}
