package dto

import "time"

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

// LocationResponse salida de una sede.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDepotRequest body para POST /api/depots.
type CreateDepotRequest struct {
	LocationID string `json:"location_id" validate:"required,uuid"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
}

// DepotResponse salida de un depósito.
type DepotResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateAisleRequest body para POST /api/aisles.
type CreateAisleRequest struct {
	DepotID string `json:"depot_id" validate:"required,uuid"`
	Name    string `json:"name" validate:"required,min=1,max=200"`
}

// AisleResponse salida de un pasillo.
type AisleResponse struct {
	ID        string    `json:"id"`
	DepotID   string    `json:"depot_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRackRequest body para POST /api/racks. La configuración estructural
// se codifica y la grilla de posiciones se aprovisiona al crear.
type CreateRackRequest struct {
	AisleID    string `json:"aisle_id" validate:"required,uuid"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	FaceType   string `json:"face_type" validate:"required,oneof=SINGLE DOUBLE"`
	Levels     int    `json:"levels" validate:"required,min=1"`
	Bays       int    `json:"bays" validate:"required,min=1"`
	BinsPerBay int    `json:"bins_per_bay" validate:"required,min=1"`
}

// RackResponse salida de una estantería.
type RackResponse struct {
	ID         string    `json:"id"`
	AisleID    string    `json:"aisle_id"`
	Name       string    `json:"name"`
	FaceType   string    `json:"face_type"`
	Levels     int       `json:"levels"`
	Bays       int       `json:"bays"`
	BinsPerBay int       `json:"bins_per_bay"`
	Code       string    `json:"code"`
	SlotCount  int       `json:"slot_count,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListResponse genérico con página.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

type DepotListResponse struct {
	Items []DepotResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

type AisleListResponse struct {
	Items []AisleResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

type RackListResponse struct {
	Items []RackResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
