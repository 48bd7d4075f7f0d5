package layout

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/rack"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// SlotLayoutAssembler arma el read-model de una estantería: la grilla completa
// de posiciones con su ocupación actual, en orden de lectura de estante.
type SlotLayoutAssembler struct {
	rackRepo    repository.RackRepository
	slotRepo    repository.SlotRepository
	provisioner *SlotGridProvisioner
}

// NewSlotLayoutAssembler construye el assembler.
func NewSlotLayoutAssembler(
	rackRepo repository.RackRepository,
	slotRepo repository.SlotRepository,
	provisioner *SlotGridProvisioner,
) *SlotLayoutAssembler {
	return &SlotLayoutAssembler{rackRepo: rackRepo, slotRepo: slotRepo, provisioner: provisioner}
}

// GetLayout decodifica el código vigente de la estantería, garantiza que la
// grilla esté completa (Ensure) y combina cada posición con el único registro
// activo que la ocupa. La coordenada de cada posición se sintetiza fresca a
// partir del código actual; nunca se lee de la coordenada cacheada en Stock.
func (a *SlotLayoutAssembler) GetLayout(rackID string) (*dto.RackLayoutResponse, error) {
	rk, err := a.rackRepo.GetByID(rackID)
	if err != nil {
		return nil, err
	}
	if rk == nil {
		return nil, domain.ErrNotFound
	}
	cfg, err := rack.Decode(rk.Code)
	if err != nil {
		return nil, err
	}
	if _, err := a.provisioner.Ensure(rk.ID, cfg); err != nil {
		return nil, err
	}

	rows, err := a.slotRepo.ListWithStock(rk.ID)
	if err != nil {
		return nil, err
	}
	slots := make([]dto.LayoutSlotDTO, 0, len(rows))
	for _, row := range rows {
		item := dto.LayoutSlotDTO{
			SlotID:     row.Slot.ID,
			Direction:  row.Slot.Direction,
			Bay:        row.Slot.Bay,
			Level:      row.Slot.Level,
			Bin:        row.Slot.Bin,
			Coordinate: rack.Coordinate(rk.Code, row.Slot.Direction, row.Slot.Bay, row.Slot.Level, row.Slot.Bin),
		}
		if row.Stock != nil {
			item.Stock = &dto.SlotStockDTO{
				ID:          row.Stock.ID,
				ProductID:   row.Stock.ProductID,
				Quantity:    row.Stock.Quantity,
				Batch:       row.Stock.Batch,
				Expiry:      row.Stock.Expiry,
				Strategy:    row.Stock.Strategy,
				ProductType: row.Stock.ProductType,
				Consumable:  row.Stock.Consumable,
				SalePrice:   row.Stock.SalePrice,
				CostPrice:   row.Stock.CostPrice,
			}
		}
		slots = append(slots, item)
	}
	return &dto.RackLayoutResponse{RackID: rk.ID, RackCode: rk.Code, Slots: slots}, nil
}

// GetStats calcula la ocupación agregada de la estantería sobre el mismo
// read-model del layout. Porcentaje con dos decimales; sin posiciones → 0.
func (a *SlotLayoutAssembler) GetStats(rackID string) (*dto.RackStatsResponse, error) {
	lay, err := a.GetLayout(rackID)
	if err != nil {
		return nil, err
	}
	total := len(lay.Slots)
	occupied := 0
	for _, s := range lay.Slots {
		if s.Stock != nil {
			occupied++
		}
	}
	percent := decimal.Zero
	if total > 0 {
		percent = decimal.NewFromInt(int64(occupied)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total))).
			Round(2)
	}
	return &dto.RackStatsResponse{
		RackID:        rackID,
		TotalSlots:    total,
		OccupiedSlots: occupied,
		Percent:       percent,
	}, nil
}
