package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/rack"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// Fakes mínimos para correr el caso de uso del ledger completo contra un
// FileJournal real y auditar la proyección relacional por replay.

type replayStore struct {
	stocks map[string]*entity.Stock
	slots  map[string]*entity.Slot
	racks  map[string]*entity.Rack
}

type replayStockRepo struct{ store *replayStore }

func (r *replayStockRepo) Create(s *entity.Stock) error {
	c := *s
	r.store.stocks[s.ID] = &c
	return nil
}

func (r *replayStockRepo) GetByID(id string) (*entity.Stock, error) {
	s, ok := r.store.stocks[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *replayStockRepo) GetForUpdate(id string) (*entity.Stock, error) { return r.GetByID(id) }

func (r *replayStockRepo) GetActiveBySlot(slotID string) (*entity.Stock, error) {
	for _, s := range r.store.stocks {
		if s.Active && s.SlotID != nil && *s.SlotID == slotID {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *replayStockRepo) Update(s *entity.Stock) error {
	c := *s
	r.store.stocks[s.ID] = &c
	return nil
}

func (r *replayStockRepo) Deactivate(id string) error {
	s, ok := r.store.stocks[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = false
	s.SlotID = nil
	return nil
}

type replaySlotRepo struct{ store *replayStore }

func (r *replaySlotRepo) ListKeys(string) ([]rack.SlotKey, error) { return nil, nil }

func (r *replaySlotRepo) BulkInsert([]*entity.Slot) (int64, error) { return 0, nil }

func (r *replaySlotRepo) GetByID(id string) (*entity.Slot, error) {
	s, ok := r.store.slots[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *replaySlotRepo) GetForUpdate(id string) (*entity.Slot, error) { return r.GetByID(id) }

func (r *replaySlotRepo) ListWithStock(string) ([]repository.SlotWithStock, error) {
	return nil, nil
}

type replayRackRepo struct{ store *replayStore }

func (r *replayRackRepo) Create(*entity.Rack) error { return nil }
func (r *replayRackRepo) GetByID(id string) (*entity.Rack, error) {
	rk, ok := r.store.racks[id]
	if !ok {
		return nil, nil
	}
	return rk, nil
}
func (r *replayRackRepo) ListByAisle(string, int, int) ([]*entity.Rack, error) { return nil, nil }
func (r *replayRackRepo) UpdateConfig(*entity.Rack) error                      { return nil }

type replayProductRepo struct{ products map[string]*entity.Product }

func (r *replayProductRepo) Create(*entity.Product) error { return nil }
func (r *replayProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *replayProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *replayProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *replayProductRepo) Update(*entity.Product) error             { return nil }

type replayTxRunner struct{ store *replayStore }

func (t *replayTxRunner) Run(_ context.Context, fn func(
	repository.StockRepository,
	repository.SlotRepository,
	repository.RackRepository,
) error) error {
	return fn(&replayStockRepo{t.store}, &replaySlotRepo{t.store}, &replayRackRepo{t.store})
}

// El journal es la fuente de verdad: tras una secuencia de operaciones del
// ledger, el replay de los eventos reproduce exactamente las cantidades que
// quedaron en la proyección relacional.
func TestReplayQuantities_CoincideConProyeccion(t *testing.T) {
	ctx := context.Background()
	store := &replayStore{
		stocks: make(map[string]*entity.Stock),
		slots:  make(map[string]*entity.Slot),
		racks:  make(map[string]*entity.Rack),
	}
	store.racks["rack-1"] = &entity.Rack{ID: "rack-1", Code: "R-S-L1-B2-P1"}
	store.slots["slot-1"] = &entity.Slot{ID: "slot-1", RackID: "rack-1", Direction: entity.DirectionRight, Bay: 1, Level: 1, Bin: 1}
	store.slots["slot-2"] = &entity.Slot{ID: "slot-2", RackID: "rack-1", Direction: entity.DirectionRight, Bay: 2, Level: 1, Bin: 1}
	products := map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SKU: "SKU-001", Type: entity.ProductTypeGeneral, CostPrice: decimal.NewFromInt(10)},
	}

	j := newTestJournal(t, filepath.Join(t.TempDir(), "ledger.ndjson"))
	uc := ledger.NewStockLedgerUseCase(
		&replayTxRunner{store},
		j,
		&replayStockRepo{store},
		&replayProductRepo{products},
	)

	place := func(slotID string, qty int64) *dto.StockResponse {
		resp, err := uc.Place(ctx, dto.PlaceStockRequest{
			RackID:      "rack-1",
			SlotID:      slotID,
			ProductID:   "prod-1",
			Quantity:    decimal.NewFromInt(qty),
			Strategy:    entity.StrategyFIFO,
			ProductType: entity.ProductTypeGeneral,
		})
		require.NoError(t, err)
		return resp
	}
	a := place("slot-1", 10)
	b := place("slot-2", 4)

	_, err := uc.Inflow(ctx, a.ID, dto.InflowRequest{Quantity: decimal.NewFromInt(5)})
	require.NoError(t, err)
	_, err = uc.Outflow(ctx, a.ID, dto.OutflowRequest{Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)
	require.NoError(t, uc.Transfer(ctx, a.ID, dto.TransferRequest{ToStockID: b.ID, Quantity: decimal.NewFromInt(6)}))
	_, err = uc.Adjust(ctx, b.ID, dto.AdjustRequest{Delta: decimal.NewFromInt(-1)})
	require.NoError(t, err)

	got, err := ReplayQuantities(j)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for id, s := range store.stocks {
		assert.True(t, got[id].Equal(s.Quantity),
			"replay de %s: %s, proyección: %s", id, got[id], s.Quantity)
	}
	// Valores absolutos del escenario: A = 10+5-2-6 = 7, B = 4+6-1 = 9.
	assert.True(t, got[a.ID].Equal(decimal.NewFromInt(7)))
	assert.True(t, got[b.ID].Equal(decimal.NewFromInt(9)))
}
