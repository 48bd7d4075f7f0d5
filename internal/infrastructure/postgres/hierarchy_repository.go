package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var (
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.DepotRepository    = (*DepotRepo)(nil)
	_ repository.AisleRepository    = (*AisleRepo)(nil)
)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	pool *pgxpool.Pool
}

// NewLocationRepository construye el adaptador de persistencia para sedes.
func NewLocationRepository(pool *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{pool: pool}
}

// Create persiste una sede nueva.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		location.ID, location.Name, location.Address, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una sede por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM locations WHERE id = $1`
	var l entity.Location
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.Name, &l.Address, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// List lista sedes con paginación.
func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM locations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DepotRepo implementación del puerto DepotRepository sobre PostgreSQL.
type DepotRepo struct {
	pool *pgxpool.Pool
}

// NewDepotRepository construye el adaptador de persistencia para depósitos.
func NewDepotRepository(pool *pgxpool.Pool) *DepotRepo {
	return &DepotRepo{pool: pool}
}

// Create persiste un depósito nuevo dentro de una sede.
func (r *DepotRepo) Create(depot *entity.Depot) error {
	query := `
		INSERT INTO depots (id, location_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		depot.ID, depot.LocationID, depot.Name, depot.CreatedAt, depot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert depot: %w", err)
	}
	return nil
}

// GetByID obtiene un depósito por ID.
func (r *DepotRepo) GetByID(id string) (*entity.Depot, error) {
	query := `SELECT id, location_id, name, created_at, updated_at FROM depots WHERE id = $1`
	var d entity.Depot
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.LocationID, &d.Name, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get depot: %w", err)
	}
	return &d, nil
}

// ListByLocation lista depósitos de una sede con paginación.
func (r *DepotRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.Depot, error) {
	query := `
		SELECT id, location_id, name, created_at, updated_at
		FROM depots WHERE location_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list depots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Depot
	for rows.Next() {
		var d entity.Depot
		if err := rows.Scan(&d.ID, &d.LocationID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan depot: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// AisleRepo implementación del puerto AisleRepository sobre PostgreSQL.
type AisleRepo struct {
	pool *pgxpool.Pool
}

// NewAisleRepository construye el adaptador de persistencia para pasillos.
func NewAisleRepository(pool *pgxpool.Pool) *AisleRepo {
	return &AisleRepo{pool: pool}
}

// Create persiste un pasillo nuevo dentro de un depósito.
func (r *AisleRepo) Create(aisle *entity.Aisle) error {
	query := `
		INSERT INTO aisles (id, depot_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		aisle.ID, aisle.DepotID, aisle.Name, aisle.CreatedAt, aisle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert aisle: %w", err)
	}
	return nil
}

// GetByID obtiene un pasillo por ID.
func (r *AisleRepo) GetByID(id string) (*entity.Aisle, error) {
	query := `SELECT id, depot_id, name, created_at, updated_at FROM aisles WHERE id = $1`
	var a entity.Aisle
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.DepotID, &a.Name, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get aisle: %w", err)
	}
	return &a, nil
}

// ListByDepot lista pasillos de un depósito con paginación.
func (r *AisleRepo) ListByDepot(depotID string, limit, offset int) ([]*entity.Aisle, error) {
	query := `
		SELECT id, depot_id, name, created_at, updated_at
		FROM aisles WHERE depot_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, depotID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list aisles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Aisle
	for rows.Next() {
		var a entity.Aisle
		if err := rows.Scan(&a.ID, &a.DepotID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan aisle: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
