package journal

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

type stubJournal struct{ events []*entity.LedgerEvent }

func (j *stubJournal) Append(ev *entity.LedgerEvent) error {
	j.events = append(j.events, ev)
	return nil
}

// ReadAll en orden canónico: más reciente primero.
func (j *stubJournal) ReadAll() ([]*entity.LedgerEvent, error) {
	out := make([]*entity.LedgerEvent, 0, len(j.events))
	for i := len(j.events) - 1; i >= 0; i-- {
		out = append(out, j.events[i])
	}
	return out, nil
}

type stubProductRepo struct{ products map[string]*entity.Product }

func (r *stubProductRepo) Create(p *entity.Product) error { return nil }
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *stubProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Update(p *entity.Product) error { return nil }

func seedEvents() *stubJournal {
	now := time.Now()
	return &stubJournal{events: []*entity.LedgerEvent{
		{
			ID: "ev-1", Seq: 1, Type: entity.EventTypeInflow, StockID: "stock-1",
			ProductID: "prod-1", ToSlotID: "slot-a",
			Quantity:  decimal.NewFromInt(10),
			Note:      "recepción camión 42",
			CreatedAt: now.AddDate(0, -2, 0),
		},
		{
			ID: "ev-2", Seq: 2, Type: entity.EventTypeOutflow, StockID: "stock-1",
			ProductID: "prod-1", FromSlotID: "slot-a",
			Quantity:  decimal.NewFromInt(-4),
			ClientRef: "pedido-77",
			CreatedAt: now.AddDate(0, 0, -3),
		},
		{
			ID: "ev-3", Seq: 3, Type: entity.EventTypeAdjustment, StockID: "stock-2",
			ProductID: "prod-2", FromSlotID: "slot-b",
			Quantity:  decimal.NewFromInt(-1),
			Automated: true, RoutineRef: "conteo-ciclico",
			CreatedAt: now.Add(-20 * time.Minute),
		},
		{
			ID: "ev-4", Seq: 4, Type: entity.EventTypeTransfer, StockID: "stock-1",
			DestStockID: "stock-2", ProductID: "prod-1",
			FromSlotID: "slot-a", ToSlotID: "slot-b",
			Quantity:  decimal.NewFromInt(2),
			Dest:      &entity.Snapshot{Before: decimal.NewFromInt(1), After: decimal.NewFromInt(3)},
			Note:      "Reposición CAMIÓN",
			CreatedAt: now.Add(-10 * time.Minute),
		},
	}}
}

func newQueryFixture() *QueryUseCase {
	return NewQueryUseCase(seedEvents(), &stubProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SKU: "SKU-001", Name: "Tornillo 3mm"},
	}})
}

func TestQuery_OrdenCanonicoYEnriquecimiento(t *testing.T) {
	uc := newQueryFixture()
	out, err := uc.List(context.Background(), dto.MovementQueryRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 4)
	assert.Equal(t, 4, out.Page.Total)

	// Más reciente primero.
	assert.Equal(t, "ev-4", out.Items[0].ID)
	assert.Equal(t, "ev-1", out.Items[3].ID)

	// prod-1 se enriquece; prod-2 no existe y queda vacío sin fallar.
	assert.Equal(t, "Tornillo 3mm", out.Items[0].ProductName)
	assert.Equal(t, "SKU-001", out.Items[0].ProductSKU)
	assert.Empty(t, out.Items[1].ProductName)

	// Snapshots de destino solo en la transferencia.
	require.NotNil(t, out.Items[0].DestBefore)
	assert.True(t, out.Items[0].DestBefore.Equal(decimal.NewFromInt(1)))
	assert.Nil(t, out.Items[1].DestBefore)
}

func TestQuery_FiltroAutomatizado(t *testing.T) {
	uc := newQueryFixture()
	yes, no := true, false

	out, err := uc.List(context.Background(), dto.MovementQueryRequest{Automated: &yes})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "ev-3", out.Items[0].ID)

	out, err = uc.List(context.Background(), dto.MovementQueryRequest{Automated: &no})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
}

func TestQuery_VentanasDeFecha(t *testing.T) {
	uc := newQueryFixture()
	cases := []struct {
		window string
		want   int
	}{
		{WindowToday, 2}, // ev-3 y ev-4
		{WindowWeek, 3},  // + ev-2
		{WindowMonth, 3}, // ev-1 tiene dos meses
		{"", 4},
	}
	for _, tc := range cases {
		out, err := uc.List(context.Background(), dto.MovementQueryRequest{Window: tc.window})
		require.NoError(t, err)
		assert.Len(t, out.Items, tc.want, "window=%q", tc.window)
	}
}

func TestQuery_FiltrosPorCampo(t *testing.T) {
	uc := newQueryFixture()
	ctx := context.Background()

	out, err := uc.List(ctx, dto.MovementQueryRequest{ProductID: "prod-2"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "ev-3", out.Items[0].ID)

	out, err = uc.List(ctx, dto.MovementQueryRequest{Type: entity.EventTypeTransfer})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "ev-4", out.Items[0].ID)

	// Pertenencia a posición: origen o destino cuentan.
	out, err = uc.List(ctx, dto.MovementQueryRequest{SlotID: "slot-b"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
}

func TestQuery_BusquedaInsensibleAAcentos(t *testing.T) {
	uc := newQueryFixture()
	ctx := context.Background()

	// "camion" sin tilde matchea "camión" y "CAMIÓN" en notas.
	out, err := uc.List(ctx, dto.MovementQueryRequest{Search: "camion"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)

	// También busca sobre referencias de cliente y rutina.
	out, err = uc.List(ctx, dto.MovementQueryRequest{Search: "PEDIDO-77"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "ev-2", out.Items[0].ID)

	out, err = uc.List(ctx, dto.MovementQueryRequest{Search: "ciclico"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "ev-3", out.Items[0].ID)
}

func TestQuery_Paginacion(t *testing.T) {
	uc := newQueryFixture()
	ctx := context.Background()

	out, err := uc.List(ctx, dto.MovementQueryRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 4, out.Page.Total)
	assert.Equal(t, "ev-4", out.Items[0].ID)

	out, err = uc.List(ctx, dto.MovementQueryRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "ev-2", out.Items[0].ID)

	// Offset más allá del total: página vacía, total intacto.
	out, err = uc.List(ctx, dto.MovementQueryRequest{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, 4, out.Page.Total)
}
