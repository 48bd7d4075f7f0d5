package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// RackRepository define el puerto de persistencia para Rack (DIP).
type RackRepository interface {
	Create(rack *entity.Rack) error
	GetByID(id string) (*entity.Rack, error)
	ListByAisle(aisleID string, limit, offset int) ([]*entity.Rack, error)
	// UpdateConfig persiste una reconfiguración (solo crecimiento de grilla).
	UpdateConfig(rack *entity.Rack) error
}
