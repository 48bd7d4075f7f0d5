package layout

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/rack"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// SlotGridProvisioner materializa la grilla de posiciones que implica la
// configuración de una estantería y la reconcilia contra lo persistido.
// Ensure es idempotente: con configuración sin cambios no crea filas, y dos
// llamadas concurrentes sobre la misma grilla dejan exactamente una fila por
// clave (la inserción perdedora absorbe el conflicto de unicidad como éxito).
type SlotGridProvisioner struct {
	slotRepo repository.SlotRepository
}

// NewSlotGridProvisioner construye el provisioner.
func NewSlotGridProvisioner(slotRepo repository.SlotRepository) *SlotGridProvisioner {
	return &SlotGridProvisioner{slotRepo: slotRepo}
}

// Ensure enumera dirección × nivel × cuerpo × posición, lee las claves ya
// persistidas e inserta en bloque solo las faltantes. Devuelve cuántas
// posiciones insertó realmente.
func (p *SlotGridProvisioner) Ensure(rackID string, cfg rack.Config) (int64, error) {
	wanted := rack.EnumerateSlots(cfg)

	existing, err := p.slotRepo.ListKeys(rackID)
	if err != nil {
		return 0, err
	}
	have := make(map[rack.SlotKey]bool, len(existing))
	for _, k := range existing {
		have[k] = true
	}

	now := time.Now()
	var missing []*entity.Slot
	for _, k := range wanted {
		if have[k] {
			continue
		}
		missing = append(missing, &entity.Slot{
			ID:        uuid.New().String(),
			RackID:    rackID,
			Direction: k.Direction,
			Bay:       k.Bay,
			Level:     k.Level,
			Bin:       k.Bin,
			CreatedAt: now,
		})
	}
	if len(missing) == 0 {
		return 0, nil
	}
	return p.slotRepo.BulkInsert(missing)
}
