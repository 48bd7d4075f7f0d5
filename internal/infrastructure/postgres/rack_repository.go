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

var _ repository.RackRepository = (*RackRepo)(nil)

// RackRepo implementación de RackRepository sobre PostgreSQL (usable con pool o tx).
type RackRepo struct {
	q Querier
}

// NewRackRepository construye el adaptador de estanterías. Pasar pool o tx (Querier).
func NewRackRepository(q Querier) *RackRepo {
	return &RackRepo{q: q}
}

// Create persiste una estantería nueva con su código ya compuesto.
func (r *RackRepo) Create(rack *entity.Rack) error {
	query := `
		INSERT INTO racks (id, aisle_id, name, face_type, levels, bays, bins_per_bay, code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		rack.ID, rack.AisleID, rack.Name, rack.FaceType, rack.Levels, rack.Bays,
		rack.BinsPerBay, rack.Code, rack.CreatedAt, rack.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert rack: %w", err)
	}
	return nil
}

// GetByID obtiene una estantería por ID.
func (r *RackRepo) GetByID(id string) (*entity.Rack, error) {
	query := `
		SELECT id, aisle_id, name, face_type, levels, bays, bins_per_bay, code, created_at, updated_at
		FROM racks WHERE id = $1`
	var rk entity.Rack
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rk.ID, &rk.AisleID, &rk.Name, &rk.FaceType, &rk.Levels, &rk.Bays,
		&rk.BinsPerBay, &rk.Code, &rk.CreatedAt, &rk.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rack: %w", err)
	}
	return &rk, nil
}

// ListByAisle lista estanterías de un pasillo con paginación.
func (r *RackRepo) ListByAisle(aisleID string, limit, offset int) ([]*entity.Rack, error) {
	query := `
		SELECT id, aisle_id, name, face_type, levels, bays, bins_per_bay, code, created_at, updated_at
		FROM racks WHERE aisle_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, aisleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list racks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rack
	for rows.Next() {
		var rk entity.Rack
		if err := rows.Scan(
			&rk.ID, &rk.AisleID, &rk.Name, &rk.FaceType, &rk.Levels, &rk.Bays,
			&rk.BinsPerBay, &rk.Code, &rk.CreatedAt, &rk.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rack: %w", err)
		}
		list = append(list, &rk)
	}
	return list, rows.Err()
}

// UpdateConfig persiste una reconfiguración de grilla (solo crecimiento).
func (r *RackRepo) UpdateConfig(rack *entity.Rack) error {
	query := `
		UPDATE racks SET face_type = $2, levels = $3, bays = $4, bins_per_bay = $5,
		       code = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		rack.ID, rack.FaceType, rack.Levels, rack.Bays, rack.BinsPerBay,
		rack.Code, rack.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rack: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
