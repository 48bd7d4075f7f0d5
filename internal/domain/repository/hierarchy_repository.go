package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List(limit, offset int) ([]*entity.Location, error)
}

// DepotRepository define el puerto de persistencia para Depot (DIP).
type DepotRepository interface {
	Create(depot *entity.Depot) error
	GetByID(id string) (*entity.Depot, error)
	ListByLocation(locationID string, limit, offset int) ([]*entity.Depot, error)
}

// AisleRepository define el puerto de persistencia para Aisle (DIP).
type AisleRepository interface {
	Create(aisle *entity.Aisle) error
	GetByID(id string) (*entity.Aisle, error)
	ListByDepot(depotID string, limit, offset int) ([]*entity.Aisle, error)
}
