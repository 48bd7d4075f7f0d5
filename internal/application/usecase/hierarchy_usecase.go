package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// HierarchyUseCase casos de uso CRUD para la jerarquía física
// sede → depósito → pasillo. Las estanterías tienen su propio caso de uso
// porque crean además la grilla de posiciones.
type HierarchyUseCase struct {
	locationRepo repository.LocationRepository
	depotRepo    repository.DepotRepository
	aisleRepo    repository.AisleRepository
}

// NewHierarchyUseCase construye el caso de uso.
func NewHierarchyUseCase(
	locationRepo repository.LocationRepository,
	depotRepo repository.DepotRepository,
	aisleRepo repository.AisleRepository,
) *HierarchyUseCase {
	return &HierarchyUseCase{
		locationRepo: locationRepo,
		depotRepo:    depotRepo,
		aisleRepo:    aisleRepo,
	}
}

// CreateLocation crea una sede.
func (uc *HierarchyUseCase) CreateLocation(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	now := time.Now()
	location := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetLocation obtiene una sede por ID.
func (uc *HierarchyUseCase) GetLocation(id string) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(location), nil
}

// ListLocations lista sedes con paginación.
func (uc *HierarchyUseCase) ListLocations(page dto.PageRequest) (*dto.LocationListResponse, error) {
	page.DefaultPage()
	list, err := uc.locationRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CreateDepot crea un depósito dentro de una sede existente.
func (uc *HierarchyUseCase) CreateDepot(in dto.CreateDepotRequest) (*dto.DepotResponse, error) {
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	depot := &entity.Depot{
		ID:         uuid.New().String(),
		LocationID: in.LocationID,
		Name:       in.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.depotRepo.Create(depot); err != nil {
		return nil, err
	}
	return toDepotResponse(depot), nil
}

// GetDepot obtiene un depósito por ID.
func (uc *HierarchyUseCase) GetDepot(id string) (*dto.DepotResponse, error) {
	depot, err := uc.depotRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if depot == nil {
		return nil, domain.ErrNotFound
	}
	return toDepotResponse(depot), nil
}

// ListDepots lista depósitos de una sede con paginación.
func (uc *HierarchyUseCase) ListDepots(locationID string, page dto.PageRequest) (*dto.DepotListResponse, error) {
	page.DefaultPage()
	list, err := uc.depotRepo.ListByLocation(locationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DepotResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDepotResponse(d))
	}
	return &dto.DepotListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CreateAisle crea un pasillo dentro de un depósito existente.
func (uc *HierarchyUseCase) CreateAisle(in dto.CreateAisleRequest) (*dto.AisleResponse, error) {
	depot, err := uc.depotRepo.GetByID(in.DepotID)
	if err != nil {
		return nil, err
	}
	if depot == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	aisle := &entity.Aisle{
		ID:        uuid.New().String(),
		DepotID:   in.DepotID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.aisleRepo.Create(aisle); err != nil {
		return nil, err
	}
	return toAisleResponse(aisle), nil
}

// GetAisle obtiene un pasillo por ID.
func (uc *HierarchyUseCase) GetAisle(id string) (*dto.AisleResponse, error) {
	aisle, err := uc.aisleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if aisle == nil {
		return nil, domain.ErrNotFound
	}
	return toAisleResponse(aisle), nil
}

// ListAisles lista pasillos de un depósito con paginación.
func (uc *HierarchyUseCase) ListAisles(depotID string, page dto.PageRequest) (*dto.AisleListResponse, error) {
	page.DefaultPage()
	list, err := uc.aisleRepo.ListByDepot(depotID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AisleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAisleResponse(a))
	}
	return &dto.AisleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toDepotResponse(d *entity.Depot) *dto.DepotResponse {
	return &dto.DepotResponse{
		ID:         d.ID,
		LocationID: d.LocationID,
		Name:       d.Name,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func toAisleResponse(a *entity.Aisle) *dto.AisleResponse {
	return &dto.AisleResponse{
		ID:        a.ID,
		DepotID:   a.DepotID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
