package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para Stock (DIP).
type StockRepository interface {
	Create(stock *entity.Stock) error
	GetByID(id string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila de stock (SELECT FOR UPDATE) para la unidad de trabajo.
	GetForUpdate(id string) (*entity.Stock, error)
	// GetActiveBySlot devuelve el registro activo que ocupa la posición, o nil.
	GetActiveBySlot(slotID string) (*entity.Stock, error)
	Update(stock *entity.Stock) error
	// Deactivate marca el registro como inactivo y libera su posición.
	// No borra la fila: el historial del journal sobrevive en cualquier caso.
	Deactivate(id string) error
}
