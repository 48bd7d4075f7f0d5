package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/rack"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.SlotRepository = (*SlotRepo)(nil)

// SlotRepo implementación de SlotRepository sobre PostgreSQL (usable con pool o tx).
type SlotRepo struct {
	q Querier
}

// NewSlotRepository construye el adaptador de posiciones. Pasar pool o tx (Querier).
func NewSlotRepository(q Querier) *SlotRepo {
	return &SlotRepo{q: q}
}

// ListKeys devuelve las claves de coordenada ya persistidas para la estantería.
func (r *SlotRepo) ListKeys(rackID string) ([]rack.SlotKey, error) {
	query := `SELECT direction, bay, level, bin FROM slots WHERE rack_id = $1`
	rows, err := r.q.Query(context.Background(), query, rackID)
	if err != nil {
		return nil, fmt.Errorf("list slot keys: %w", err)
	}
	defer rows.Close()
	var keys []rack.SlotKey
	for rows.Next() {
		var k rack.SlotKey
		if err := rows.Scan(&k.Direction, &k.Bay, &k.Level, &k.Bin); err != nil {
			return nil, fmt.Errorf("scan slot key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// BulkInsert inserta las posiciones faltantes. ON CONFLICT DO NOTHING hace la
// operación idempotente frente a aprovisionamientos concurrentes: perder la
// carrera por una clave cuenta como éxito. Devuelve cuántas filas insertó.
func (r *SlotRepo) BulkInsert(slots []*entity.Slot) (int64, error) {
	query := `
		INSERT INTO slots (id, rack_id, direction, bay, level, bin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (rack_id, direction, bay, level, bin) DO NOTHING`
	var inserted int64
	for _, s := range slots {
		cmd, err := r.q.Exec(context.Background(), query,
			s.ID, s.RackID, s.Direction, s.Bay, s.Level, s.Bin, s.CreatedAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert slot: %w", err)
		}
		inserted += cmd.RowsAffected()
	}
	return inserted, nil
}

// GetByID obtiene una posición por ID.
func (r *SlotRepo) GetByID(id string) (*entity.Slot, error) {
	query := `SELECT id, rack_id, direction, bay, level, bin, created_at FROM slots WHERE id = $1`
	var s entity.Slot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.RackID, &s.Direction, &s.Bay, &s.Level, &s.Bin, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la posición y bloquea la fila (SELECT FOR UPDATE).
func (r *SlotRepo) GetForUpdate(id string) (*entity.Slot, error) {
	query := `
		SELECT id, rack_id, direction, bay, level, bin, created_at
		FROM slots WHERE id = $1 FOR UPDATE`
	var s entity.Slot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.RackID, &s.Direction, &s.Bay, &s.Level, &s.Bin, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot for update: %w", err)
	}
	return &s, nil
}

// ListWithStock devuelve la grilla con su ocupación en orden de lectura de
// estante: dirección ASC, nivel DESC, cuerpo ASC, posición ASC. El LEFT JOIN
// deja el stock en NULL para posiciones libres.
func (r *SlotRepo) ListWithStock(rackID string) ([]repository.SlotWithStock, error) {
	query := `
		SELECT sl.id, sl.rack_id, sl.direction, sl.bay, sl.level, sl.bin, sl.created_at,
		       st.id, st.slot_id, st.product_id, st.quantity, st.batch, st.expiry,
		       st.strategy, st.product_type, st.consumable, st.sale_price, st.cost_price,
		       st.coordinate, st.active, st.created_at, st.updated_at
		FROM slots sl
		LEFT JOIN stock st ON st.slot_id = sl.id AND st.active
		WHERE sl.rack_id = $1
		ORDER BY sl.direction ASC, sl.level DESC, sl.bay ASC, sl.bin ASC`
	rows, err := r.q.Query(context.Background(), query, rackID)
	if err != nil {
		return nil, fmt.Errorf("list slots with stock: %w", err)
	}
	defer rows.Close()

	var list []repository.SlotWithStock
	for rows.Next() {
		var row repository.SlotWithStock
		var (
			stID, stSlotID, stProductID, stBatch    *string
			stStrategy, stProductType, stCoordinate *string
			stQuantity, stSalePrice, stCostPrice    *decimal.Decimal
			stExpiry, stCreatedAt, stUpdatedAt      *time.Time
			stConsumable, stActive                  *bool
		)
		err := rows.Scan(
			&row.Slot.ID, &row.Slot.RackID, &row.Slot.Direction, &row.Slot.Bay,
			&row.Slot.Level, &row.Slot.Bin, &row.Slot.CreatedAt,
			&stID, &stSlotID, &stProductID, &stQuantity, &stBatch, &stExpiry,
			&stStrategy, &stProductType, &stConsumable, &stSalePrice, &stCostPrice,
			&stCoordinate, &stActive, &stCreatedAt, &stUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot with stock: %w", err)
		}
		if stID != nil {
			stock := &entity.Stock{
				ID:          *stID,
				SlotID:      stSlotID,
				ProductID:   deref(stProductID),
				Batch:       deref(stBatch),
				Expiry:      stExpiry,
				Strategy:    deref(stStrategy),
				ProductType: deref(stProductType),
				Coordinate:  deref(stCoordinate),
			}
			if stQuantity != nil {
				stock.Quantity = *stQuantity
			}
			if stSalePrice != nil {
				stock.SalePrice = *stSalePrice
			}
			if stCostPrice != nil {
				stock.CostPrice = *stCostPrice
			}
			if stConsumable != nil {
				stock.Consumable = *stConsumable
			}
			if stActive != nil {
				stock.Active = *stActive
			}
			if stCreatedAt != nil {
				stock.CreatedAt = *stCreatedAt
			}
			if stUpdatedAt != nil {
				stock.UpdatedAt = *stUpdatedAt
			}
			row.Stock = stock
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
