package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `
	id, slot_id, product_id, quantity, batch, expiry, strategy, product_type,
	consumable, sale_price, cost_price, coordinate, active, created_at, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(
		&s.ID, &s.SlotID, &s.ProductID, &s.Quantity, &s.Batch, &s.Expiry,
		&s.Strategy, &s.ProductType, &s.Consumable, &s.SalePrice, &s.CostPrice,
		&s.Coordinate, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un registro de stock nuevo. El índice único parcial sobre
// slot_id (solo filas activas) garantiza un ocupante por posición aunque dos
// Place concurrentes pasen la verificación previa.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.SlotID, stock.ProductID, stock.Quantity, stock.Batch,
		stock.Expiry, stock.Strategy, stock.ProductType, stock.Consumable,
		stock.SalePrice, stock.CostPrice, stock.Coordinate, stock.Active,
		stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlotOccupied
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de stock por ID.
func (r *StockRepo) GetByID(id string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE id = $1`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(id string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE id = $1 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// GetActiveBySlot devuelve el registro activo que ocupa la posición, o nil.
func (r *StockRepo) GetActiveBySlot(slotID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE slot_id = $1 AND active`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, slotID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock by slot: %w", err)
	}
	return s, nil
}

// Update persiste cantidad, posición y coordenada de un registro existente.
func (r *StockRepo) Update(stock *entity.Stock) error {
	query := `
		UPDATE stock SET slot_id = $2, quantity = $3, coordinate = $4, cost_price = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.SlotID, stock.Quantity, stock.Coordinate, stock.CostPrice, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTargetOccupied
		}
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Deactivate marca el registro como inactivo y libera su posición.
// No borra la fila: el historial del journal sobrevive en cualquier caso.
func (r *StockRepo) Deactivate(id string) error {
	query := `UPDATE stock SET active = false, slot_id = NULL, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
