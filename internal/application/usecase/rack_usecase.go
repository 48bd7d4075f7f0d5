package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/layout"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/rack"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// RackUseCase crea y consulta estanterías. Crear una estantería compone su
// código desde la configuración estructural y aprovisiona la grilla completa
// de posiciones en el mismo paso.
type RackUseCase struct {
	rackRepo    repository.RackRepository
	aisleRepo   repository.AisleRepository
	provisioner *layout.SlotGridProvisioner
}

// NewRackUseCase construye el caso de uso.
func NewRackUseCase(
	rackRepo repository.RackRepository,
	aisleRepo repository.AisleRepository,
	provisioner *layout.SlotGridProvisioner,
) *RackUseCase {
	return &RackUseCase{rackRepo: rackRepo, aisleRepo: aisleRepo, provisioner: provisioner}
}

// Create valida el pasillo padre, normaliza la configuración, codifica el
// código de estantería y materializa la grilla dirección × nivel × cuerpo × posición.
func (uc *RackUseCase) Create(in dto.CreateRackRequest) (*dto.RackResponse, error) {
	aisle, err := uc.aisleRepo.GetByID(in.AisleID)
	if err != nil {
		return nil, err
	}
	if aisle == nil {
		return nil, domain.ErrNotFound
	}

	cfg := rack.Normalize(rack.Config{
		FaceType:   in.FaceType,
		Levels:     in.Levels,
		Bays:       in.Bays,
		BinsPerBay: in.BinsPerBay,
	})
	now := time.Now()
	rk := &entity.Rack{
		ID:         uuid.New().String(),
		AisleID:    in.AisleID,
		Name:       in.Name,
		FaceType:   cfg.FaceType,
		Levels:     cfg.Levels,
		Bays:       cfg.Bays,
		BinsPerBay: cfg.BinsPerBay,
		Code:       rack.Encode(cfg),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.rackRepo.Create(rk); err != nil {
		return nil, err
	}
	created, err := uc.provisioner.Ensure(rk.ID, cfg)
	if err != nil {
		return nil, err
	}
	resp := toRackResponse(rk)
	resp.SlotCount = int(created)
	return resp, nil
}

// GetByID obtiene una estantería por ID.
func (uc *RackUseCase) GetByID(id string) (*dto.RackResponse, error) {
	rk, err := uc.rackRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rk == nil {
		return nil, domain.ErrNotFound
	}
	return toRackResponse(rk), nil
}

// ListByAisle lista estanterías de un pasillo con paginación.
func (uc *RackUseCase) ListByAisle(aisleID string, page dto.PageRequest) (*dto.RackListResponse, error) {
	page.DefaultPage()
	list, err := uc.rackRepo.ListByAisle(aisleID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RackResponse, 0, len(list))
	for _, rk := range list {
		items = append(items, *toRackResponse(rk))
	}
	return &dto.RackListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Reconfigure cambia la configuración de una estantería existente. Solo se
// admite crecimiento: reducir niveles, cuerpos o posiciones dejaría posiciones
// persistidas fuera de la grilla declarada, y las posiciones nunca se borran.
func (uc *RackUseCase) Reconfigure(id string, in dto.CreateRackRequest) (*dto.RackResponse, error) {
	rk, err := uc.rackRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rk == nil {
		return nil, domain.ErrNotFound
	}
	cfg := rack.Normalize(rack.Config{
		FaceType:   in.FaceType,
		Levels:     in.Levels,
		Bays:       in.Bays,
		BinsPerBay: in.BinsPerBay,
	})
	if cfg.Levels < rk.Levels || cfg.Bays < rk.Bays || cfg.BinsPerBay < rk.BinsPerBay {
		return nil, domain.ErrInvalidInput
	}
	if rk.FaceType == entity.FaceTypeDouble && cfg.FaceType == entity.FaceTypeSingle {
		return nil, domain.ErrInvalidInput
	}

	rk.FaceType = cfg.FaceType
	rk.Levels = cfg.Levels
	rk.Bays = cfg.Bays
	rk.BinsPerBay = cfg.BinsPerBay
	rk.Code = rack.Encode(cfg)
	rk.UpdatedAt = time.Now()
	if err := uc.rackRepo.UpdateConfig(rk); err != nil {
		return nil, err
	}
	created, err := uc.provisioner.Ensure(rk.ID, cfg)
	if err != nil {
		return nil, err
	}
	resp := toRackResponse(rk)
	resp.SlotCount = int(created)
	return resp, nil
}

func toRackResponse(rk *entity.Rack) *dto.RackResponse {
	return &dto.RackResponse{
		ID:         rk.ID,
		AisleID:    rk.AisleID,
		Name:       rk.Name,
		FaceType:   rk.FaceType,
		Levels:     rk.Levels,
		Bays:       rk.Bays,
		BinsPerBay: rk.BinsPerBay,
		Code:       rk.Code,
		CreatedAt:  rk.CreatedAt,
		UpdatedAt:  rk.UpdatedAt,
	}
}
