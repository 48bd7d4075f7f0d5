package repository

import (
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/rack"
)

// SlotWithStock es la fila del read-model de layout: una posición de la grilla
// y el único registro de stock activo que la ocupa (nil si está libre).
type SlotWithStock struct {
	Slot  entity.Slot
	Stock *entity.Stock
}

// SlotRepository define el puerto de persistencia para Slot (DIP).
// Las posiciones se crean una sola vez y nunca se borran.
type SlotRepository interface {
	// ListKeys devuelve las claves de coordenada ya persistidas para la estantería.
	ListKeys(rackID string) ([]rack.SlotKey, error)
	// BulkInsert inserta posiciones faltantes de forma idempotente: un conflicto
	// de clave única cuenta como éxito (otro proceso ganó la carrera).
	// Devuelve cuántas filas insertó realmente.
	BulkInsert(slots []*entity.Slot) (int64, error)
	GetByID(id string) (*entity.Slot, error)
	// GetForUpdate bloquea la fila de la posición (SELECT FOR UPDATE) dentro de la tx.
	GetForUpdate(id string) (*entity.Slot, error)
	// ListWithStock devuelve la grilla completa con su ocupación actual en orden
	// de lectura de estante: dirección ASC, nivel DESC, cuerpo ASC, posición ASC.
	ListWithStock(rackID string) ([]SlotWithStock, error)
}
