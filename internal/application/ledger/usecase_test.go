package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/rack"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ---- fakes en memoria ----

type fakeStore struct {
	stocks map[string]*entity.Stock
	slots  map[string]*entity.Slot
	racks  map[string]*entity.Rack
}

func cloneStock(s *entity.Stock) *entity.Stock {
	c := *s
	if s.SlotID != nil {
		id := *s.SlotID
		c.SlotID = &id
	}
	return &c
}

func (st *fakeStore) snapshotStocks() map[string]*entity.Stock {
	out := make(map[string]*entity.Stock, len(st.stocks))
	for id, s := range st.stocks {
		out[id] = cloneStock(s)
	}
	return out
}

type fakeStockRepo struct{ store *fakeStore }

func (r *fakeStockRepo) Create(stock *entity.Stock) error {
	r.store.stocks[stock.ID] = cloneStock(stock)
	return nil
}

func (r *fakeStockRepo) GetByID(id string) (*entity.Stock, error) {
	s, ok := r.store.stocks[id]
	if !ok {
		return nil, nil
	}
	return cloneStock(s), nil
}

func (r *fakeStockRepo) GetForUpdate(id string) (*entity.Stock, error) {
	return r.GetByID(id)
}

func (r *fakeStockRepo) GetActiveBySlot(slotID string) (*entity.Stock, error) {
	for _, s := range r.store.stocks {
		if s.Active && s.SlotID != nil && *s.SlotID == slotID {
			return cloneStock(s), nil
		}
	}
	return nil, nil
}

func (r *fakeStockRepo) Update(stock *entity.Stock) error {
	r.store.stocks[stock.ID] = cloneStock(stock)
	return nil
}

func (r *fakeStockRepo) Deactivate(id string) error {
	s, ok := r.store.stocks[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = false
	s.SlotID = nil
	return nil
}

type fakeSlotRepo struct{ store *fakeStore }

func (r *fakeSlotRepo) ListKeys(rackID string) ([]rack.SlotKey, error) {
	var keys []rack.SlotKey
	for _, s := range r.store.slots {
		if s.RackID == rackID {
			keys = append(keys, rack.SlotKey{Direction: s.Direction, Bay: s.Bay, Level: s.Level, Bin: s.Bin})
		}
	}
	return keys, nil
}

func (r *fakeSlotRepo) BulkInsert(slots []*entity.Slot) (int64, error) {
	for _, s := range slots {
		r.store.slots[s.ID] = s
	}
	return int64(len(slots)), nil
}

func (r *fakeSlotRepo) GetByID(id string) (*entity.Slot, error) {
	s, ok := r.store.slots[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *fakeSlotRepo) GetForUpdate(id string) (*entity.Slot, error) {
	return r.GetByID(id)
}

func (r *fakeSlotRepo) ListWithStock(rackID string) ([]repository.SlotWithStock, error) {
	return nil, nil
}

type fakeRackRepo struct{ store *fakeStore }

func (r *fakeRackRepo) Create(rk *entity.Rack) error {
	r.store.racks[rk.ID] = rk
	return nil
}

func (r *fakeRackRepo) GetByID(id string) (*entity.Rack, error) {
	rk, ok := r.store.racks[id]
	if !ok {
		return nil, nil
	}
	c := *rk
	return &c, nil
}

func (r *fakeRackRepo) ListByAisle(aisleID string, limit, offset int) ([]*entity.Rack, error) {
	return nil, nil
}

func (r *fakeRackRepo) UpdateConfig(rk *entity.Rack) error {
	r.store.racks[rk.ID] = rk
	return nil
}

type fakeProductRepo struct{ products map[string]*entity.Product }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

// fakeTxRunner reproduce la semántica transaccional: las unidades de trabajo
// se serializan (como lo hacen los locks de fila en ascenso de id) y, si fn
// falla, el estado de stock vuelve al snapshot previo y nada queda a medias.
type fakeTxRunner struct {
	mu    sync.Mutex
	store *fakeStore
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.StockRepository,
	repository.SlotRepository,
	repository.RackRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	snapshot := t.store.snapshotStocks()
	err := fn(&fakeStockRepo{t.store}, &fakeSlotRepo{t.store}, &fakeRackRepo{t.store})
	if err != nil {
		t.store.stocks = snapshot
	}
	return err
}

type fakeJournal struct {
	events []*entity.LedgerEvent
	seq    int64
}

func (j *fakeJournal) Append(ev *entity.LedgerEvent) error {
	j.seq++
	c := *ev
	c.Seq = j.seq
	c.CreatedAt = time.Now()
	j.events = append(j.events, &c)
	return nil
}

func (j *fakeJournal) ReadAll() ([]*entity.LedgerEvent, error) {
	out := make([]*entity.LedgerEvent, 0, len(j.events))
	for i := len(j.events) - 1; i >= 0; i-- {
		out = append(out, j.events[i])
	}
	return out, nil
}

// ---- armado de escenario ----

const (
	testRackID    = "rack-1"
	testRackCode  = "R-D-L2-B2-P1"
	testProductID = "prod-1"
)

type fixture struct {
	store   *fakeStore
	journal *fakeJournal
	uc      *StockLedgerUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := &fakeStore{
		stocks: make(map[string]*entity.Stock),
		slots:  make(map[string]*entity.Slot),
		racks:  make(map[string]*entity.Rack),
	}
	store.racks[testRackID] = &entity.Rack{
		ID: testRackID, AisleID: "aisle-1", Name: "Estantería A1",
		FaceType: entity.FaceTypeDouble, Levels: 2, Bays: 2, BinsPerBay: 1,
		Code: testRackCode,
	}
	cfg, err := rack.Decode(testRackCode)
	require.NoError(t, err)
	i := 0
	for _, k := range rack.EnumerateSlots(cfg) {
		i++
		id := "slot-" + string(rune('a'+i-1))
		store.slots[id] = &entity.Slot{
			ID: id, RackID: testRackID,
			Direction: k.Direction, Bay: k.Bay, Level: k.Level, Bin: k.Bin,
		}
	}
	products := map[string]*entity.Product{
		testProductID: {
			ID: testProductID, SKU: "SKU-001", Name: "Tornillo 3mm",
			Type:      entity.ProductTypeGeneral,
			SalePrice: decimal.NewFromInt(150), CostPrice: decimal.NewFromInt(100),
		},
	}
	journal := &fakeJournal{}
	uc := NewStockLedgerUseCase(
		&fakeTxRunner{store: store},
		journal,
		&fakeStockRepo{store},
		&fakeProductRepo{products},
	)
	return &fixture{store: store, journal: journal, uc: uc}
}

func (f *fixture) slotByKey(t *testing.T, dir string, bay, level, bin int) *entity.Slot {
	t.Helper()
	for _, s := range f.store.slots {
		if s.Direction == dir && s.Bay == bay && s.Level == level && s.Bin == bin {
			return s
		}
	}
	t.Fatalf("posición %s-B%d-L%d-P%d no existe en el escenario", dir, bay, level, bin)
	return nil
}

func (f *fixture) place(t *testing.T, slotID string, qty int64) *dto.StockResponse {
	t.Helper()
	resp, err := f.uc.Place(context.Background(), dto.PlaceStockRequest{
		RackID:      testRackID,
		SlotID:      slotID,
		ProductID:   testProductID,
		Quantity:    decimal.NewFromInt(qty),
		Strategy:    entity.StrategyFIFO,
		ProductType: entity.ProductTypeGeneral,
	})
	require.NoError(t, err)
	return resp
}

// ---- tests ----

func TestLedger_ColocarSacarIngresar_Snapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slot := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)

	placed := f.place(t, slot.ID, 10)
	assert.True(t, placed.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, rack.Coordinate(testRackCode, slot.Direction, slot.Bay, slot.Level, slot.Bin), placed.Coordinate)

	_, err := f.uc.Outflow(ctx, placed.ID, dto.OutflowRequest{Quantity: decimal.NewFromInt(4)})
	require.NoError(t, err)
	final, err := f.uc.Inflow(ctx, placed.ID, dto.InflowRequest{Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.True(t, final.Quantity.Equal(decimal.NewFromInt(7)))

	require.Len(t, f.journal.events, 3)
	wantSnaps := []entity.Snapshot{
		{Before: decimal.Zero, After: decimal.NewFromInt(10)},
		{Before: decimal.NewFromInt(10), After: decimal.NewFromInt(6)},
		{Before: decimal.NewFromInt(6), After: decimal.NewFromInt(7)},
	}
	wantTypes := []string{entity.EventTypeInflow, entity.EventTypeOutflow, entity.EventTypeInflow}
	for i, ev := range f.journal.events {
		assert.Equal(t, wantTypes[i], ev.Type)
		assert.True(t, ev.Source.Before.Equal(wantSnaps[i].Before), "evento %d before", i)
		assert.True(t, ev.Source.After.Equal(wantSnaps[i].After), "evento %d after", i)
	}
	// La salida queda con cantidad negativa en el evento.
	assert.True(t, f.journal.events[1].Quantity.Equal(decimal.NewFromInt(-4)))
}

func TestLedger_SalidaInsuficiente_SinEfectoParcial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slot := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	placed := f.place(t, slot.ID, 5)
	eventsBefore := len(f.journal.events)

	_, err := f.uc.Outflow(ctx, placed.ID, dto.OutflowRequest{Quantity: decimal.NewFromInt(9)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	current, err := f.uc.Read(ctx, placed.ID)
	require.NoError(t, err)
	assert.True(t, current.Quantity.Equal(decimal.NewFromInt(5)))
	assert.Len(t, f.journal.events, eventsBefore)
}

func TestLedger_ColocarEnPosicionOcupada(t *testing.T) {
	f := newFixture(t)
	slot := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	f.place(t, slot.ID, 3)
	eventsBefore := len(f.journal.events)

	_, err := f.uc.Place(context.Background(), dto.PlaceStockRequest{
		RackID:      testRackID,
		SlotID:      slot.ID,
		ProductID:   testProductID,
		Quantity:    decimal.NewFromInt(1),
		Strategy:    entity.StrategyFIFO,
		ProductType: entity.ProductTypeGeneral,
	})
	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	assert.Len(t, f.journal.events, eventsBefore)
}

func TestLedger_ColocarValidaEntrada(t *testing.T) {
	f := newFixture(t)
	slot := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	cases := []struct {
		name string
		req  dto.PlaceStockRequest
		want error
	}{
		{"cantidad cero", dto.PlaceStockRequest{RackID: testRackID, SlotID: slot.ID, ProductID: testProductID, Quantity: decimal.Zero, Strategy: entity.StrategyFIFO, ProductType: entity.ProductTypeGeneral}, domain.ErrInvalidInput},
		{"estrategia desconocida", dto.PlaceStockRequest{RackID: testRackID, SlotID: slot.ID, ProductID: testProductID, Quantity: decimal.NewFromInt(1), Strategy: "XYZ", ProductType: entity.ProductTypeGeneral}, domain.ErrInvalidInput},
		{"producto inexistente", dto.PlaceStockRequest{RackID: testRackID, SlotID: slot.ID, ProductID: "no-existe", Quantity: decimal.NewFromInt(1), Strategy: entity.StrategyFIFO, ProductType: entity.ProductTypeGeneral}, domain.ErrNotFound},
		{"rack ajeno", dto.PlaceStockRequest{RackID: "otro-rack", SlotID: slot.ID, ProductID: testProductID, Quantity: decimal.NewFromInt(1), Strategy: entity.StrategyFIFO, ProductType: entity.ProductTypeGeneral}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Place(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.journal.events)
}

func TestLedger_Transferencia_UnEventoCuatroSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotA := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	slotB := f.slotByKey(t, entity.DirectionRight, 2, 1, 1)
	src := f.place(t, slotA.ID, 10)
	dst := f.place(t, slotB.ID, 2)
	eventsBefore := len(f.journal.events)

	err := f.uc.Transfer(ctx, src.ID, dto.TransferRequest{
		ToStockID: dst.ID,
		Quantity:  decimal.NewFromInt(3),
		Note:      "rebalanceo",
	})
	require.NoError(t, err)

	srcAfter, _ := f.uc.Read(ctx, src.ID)
	dstAfter, _ := f.uc.Read(ctx, dst.ID)
	assert.True(t, srcAfter.Quantity.Equal(decimal.NewFromInt(7)))
	assert.True(t, dstAfter.Quantity.Equal(decimal.NewFromInt(5)))

	require.Len(t, f.journal.events, eventsBefore+1)
	ev := f.journal.events[len(f.journal.events)-1]
	assert.Equal(t, entity.EventTypeTransfer, ev.Type)
	assert.Equal(t, src.ID, ev.StockID)
	assert.Equal(t, dst.ID, ev.DestStockID)
	assert.Equal(t, slotA.ID, ev.FromSlotID)
	assert.Equal(t, slotB.ID, ev.ToSlotID)
	assert.True(t, ev.Source.Before.Equal(decimal.NewFromInt(10)))
	assert.True(t, ev.Source.After.Equal(decimal.NewFromInt(7)))
	require.NotNil(t, ev.Dest)
	assert.True(t, ev.Dest.Before.Equal(decimal.NewFromInt(2)))
	assert.True(t, ev.Dest.After.Equal(decimal.NewFromInt(5)))
	// Valor: cantidad por costo del registro origen.
	assert.True(t, ev.TotalValue.Equal(decimal.NewFromInt(300)))
}

func TestLedger_TransferenciaInsuficiente_Atomica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotA := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	slotB := f.slotByKey(t, entity.DirectionRight, 2, 1, 1)
	src := f.place(t, slotA.ID, 2)
	dst := f.place(t, slotB.ID, 1)
	eventsBefore := len(f.journal.events)

	err := f.uc.Transfer(ctx, src.ID, dto.TransferRequest{
		ToStockID: dst.ID,
		Quantity:  decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	srcAfter, _ := f.uc.Read(ctx, src.ID)
	dstAfter, _ := f.uc.Read(ctx, dst.ID)
	assert.True(t, srcAfter.Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, dstAfter.Quantity.Equal(decimal.NewFromInt(1)))
	assert.Len(t, f.journal.events, eventsBefore)
}

func TestLedger_TransferenciaEntradaInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	err := f.uc.Transfer(ctx, "s1", dto.TransferRequest{ToStockID: "s1", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = f.uc.Transfer(ctx, "s1", dto.TransferRequest{ToStockID: "s2", Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_Ajuste(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slot := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	placed := f.place(t, slot.ID, 4)

	t.Run("delta cero rechazado", func(t *testing.T) {
		_, err := f.uc.Adjust(ctx, placed.ID, dto.AdjustRequest{Delta: decimal.Zero})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("resultado negativo rechazado", func(t *testing.T) {
		_, err := f.uc.Adjust(ctx, placed.ID, dto.AdjustRequest{Delta: decimal.NewFromInt(-10)})
		assert.ErrorIs(t, err, domain.ErrNegativeResult)
		current, _ := f.uc.Read(ctx, placed.ID)
		assert.True(t, current.Quantity.Equal(decimal.NewFromInt(4)))
	})

	t.Run("ajuste automatizado con rutina", func(t *testing.T) {
		resp, err := f.uc.Adjust(ctx, placed.ID, dto.AdjustRequest{
			Delta:      decimal.NewFromInt(-1),
			Automated:  true,
			RoutineRef: "conteo-ciclico-7",
		})
		require.NoError(t, err)
		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(3)))
		ev := f.journal.events[len(f.journal.events)-1]
		assert.Equal(t, entity.EventTypeAdjustment, ev.Type)
		assert.True(t, ev.Automated)
		assert.Equal(t, "conteo-ciclico-7", ev.RoutineRef)
		assert.True(t, ev.Quantity.Equal(decimal.NewFromInt(-1)))
	})
}

func TestLedger_ReubicacionDentroDeEstanteria(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotA := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	slotB := f.slotByKey(t, entity.DirectionLeft, 2, 2, 1)
	placed := f.place(t, slotA.ID, 6)

	resp, err := f.uc.RelocateWithinRack(ctx, placed.ID, slotB.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.SlotID)
	assert.Equal(t, slotB.ID, *resp.SlotID)
	assert.Equal(t, rack.Coordinate(testRackCode, slotB.Direction, slotB.Bay, slotB.Level, slotB.Bin), resp.Coordinate)
	assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(6)))

	ev := f.journal.events[len(f.journal.events)-1]
	assert.Equal(t, entity.EventTypeRelocation, ev.Type)
	assert.Equal(t, slotA.ID, ev.FromSlotID)
	assert.Equal(t, slotB.ID, ev.ToSlotID)
	assert.True(t, ev.Quantity.IsZero())
	assert.False(t, ev.CrossBoundary)
	assert.True(t, ev.Source.Before.Equal(ev.Source.After))
}

func TestLedger_ReubicacionDestinoOcupado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotA := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	slotB := f.slotByKey(t, entity.DirectionRight, 2, 1, 1)
	placed := f.place(t, slotA.ID, 6)
	f.place(t, slotB.ID, 1)
	eventsBefore := len(f.journal.events)

	_, err := f.uc.RelocateWithinRack(ctx, placed.ID, slotB.ID)
	assert.ErrorIs(t, err, domain.ErrTargetOccupied)
	current, _ := f.uc.Read(ctx, placed.ID)
	assert.Equal(t, slotA.ID, *current.SlotID)
	assert.Len(t, f.journal.events, eventsBefore)
}

func TestLedger_MigracionCruzandoLimite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotA := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	slotB := f.slotByKey(t, entity.DirectionLeft, 1, 2, 1)
	placed := f.place(t, slotA.ID, 6)

	t.Run("codigo destino no parseable", func(t *testing.T) {
		_, err := f.uc.MigrateAcrossBoundary(ctx, placed.ID, slotB.ID, "RACK-01")
		assert.ErrorIs(t, err, domain.ErrRackCodeNotParseable)
	})

	t.Run("migracion valida marca el cruce", func(t *testing.T) {
		newCode := "R-S-L3-B4-P2"
		resp, err := f.uc.MigrateAcrossBoundary(ctx, placed.ID, slotB.ID, newCode)
		require.NoError(t, err)
		assert.Equal(t, rack.Coordinate(newCode, slotB.Direction, slotB.Bay, slotB.Level, slotB.Bin), resp.Coordinate)

		ev := f.journal.events[len(f.journal.events)-1]
		assert.Equal(t, entity.EventTypeRelocation, ev.Type)
		assert.True(t, ev.CrossBoundary)
		assert.True(t, ev.Quantity.IsZero())
	})
}

func TestLedger_Descarte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slot := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	placed := f.place(t, slot.ID, 8)

	require.NoError(t, f.uc.Discard(ctx, placed.ID))

	ev := f.journal.events[len(f.journal.events)-1]
	assert.Equal(t, entity.EventTypeAdjustment, ev.Type)
	assert.True(t, ev.Quantity.Equal(decimal.NewFromInt(-8)))
	assert.True(t, ev.Source.Before.Equal(decimal.NewFromInt(8)))
	assert.True(t, ev.Source.After.IsZero())

	// El registro sigue legible pero inactivo, y su posición queda libre.
	current, err := f.uc.Read(ctx, placed.ID)
	require.NoError(t, err)
	assert.False(t, current.Active)

	_, err = f.uc.Inflow(ctx, placed.ID, dto.InflowRequest{Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// La posición liberada admite una nueva colocación.
	again := f.place(t, slot.ID, 2)
	assert.True(t, again.Quantity.Equal(decimal.NewFromInt(2)))
}

func TestLedger_TransferenciasOpuestasConcurrentes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotA := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	slotB := f.slotByKey(t, entity.DirectionRight, 2, 1, 1)
	a := f.place(t, slotA.ID, 10)
	b := f.place(t, slotB.ID, 10)

	// Dos transferencias opuestas en paralelo. El orden fijo de bloqueo
	// (ids de stock ascendentes) serializa sin deadlock y ambas aplican
	// completas: el resultado no depende de quién llega primero.
	var wg sync.WaitGroup
	var errA, errB error
	wg.Add(2)
	go func() {
		defer wg.Done()
		errA = f.uc.Transfer(ctx, a.ID, dto.TransferRequest{ToStockID: b.ID, Quantity: decimal.NewFromInt(5)})
	}()
	go func() {
		defer wg.Done()
		errB = f.uc.Transfer(ctx, b.ID, dto.TransferRequest{ToStockID: a.ID, Quantity: decimal.NewFromInt(3)})
	}()
	wg.Wait()
	require.NoError(t, errA)
	require.NoError(t, errB)

	aAfter, err := f.uc.Read(ctx, a.ID)
	require.NoError(t, err)
	bAfter, err := f.uc.Read(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, aAfter.Quantity.Equal(decimal.NewFromInt(8)), "A: 10 - 5 + 3")
	assert.True(t, bAfter.Quantity.Equal(decimal.NewFromInt(12)), "B: 10 + 5 - 3")

	// Dos colocaciones más dos transferencias: cuatro eventos, secuencia sin huecos.
	require.Len(t, f.journal.events, 4)
	seen := make(map[int64]bool)
	for _, ev := range f.journal.events {
		assert.False(t, seen[ev.Seq], "secuencia duplicada %d", ev.Seq)
		seen[ev.Seq] = true
	}
	assert.Equal(t, entity.EventTypeTransfer, f.journal.events[2].Type)
	assert.Equal(t, entity.EventTypeTransfer, f.journal.events[3].Type)
}

func TestLedger_ExactamenteUnEventoPorOperacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotA := f.slotByKey(t, entity.DirectionRight, 1, 1, 1)
	slotB := f.slotByKey(t, entity.DirectionRight, 2, 1, 1)

	src := f.place(t, slotA.ID, 10)
	dst := f.place(t, slotB.ID, 1)
	_, err := f.uc.Inflow(ctx, src.ID, dto.InflowRequest{Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)
	_, err = f.uc.Outflow(ctx, src.ID, dto.OutflowRequest{Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)
	require.NoError(t, f.uc.Transfer(ctx, src.ID, dto.TransferRequest{ToStockID: dst.ID, Quantity: decimal.NewFromInt(1)}))
	_, err = f.uc.Adjust(ctx, src.ID, dto.AdjustRequest{Delta: decimal.NewFromInt(1)})
	require.NoError(t, err)
	require.NoError(t, f.uc.Discard(ctx, dst.ID))

	assert.Len(t, f.journal.events, 7)
	for i, ev := range f.journal.events {
		assert.Equal(t, int64(i+1), ev.Seq)
	}
}
