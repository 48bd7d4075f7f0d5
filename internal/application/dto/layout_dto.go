package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SlotStockDTO payload de ocupación de una posición (nil si está libre).
type SlotStockDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Batch       string          `json:"batch,omitempty"`
	Expiry      *time.Time      `json:"expiry,omitempty"`
	Strategy    string          `json:"strategy"`
	ProductType string          `json:"product_type"`
	Consumable  bool            `json:"consumable"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

// LayoutSlotDTO una posición de la grilla con su coordenada sintetizada
// desde el código vigente de la estantería (nunca desde caché).
type LayoutSlotDTO struct {
	SlotID     string        `json:"slot_id"`
	Direction  string        `json:"direction"`
	Bay        int           `json:"bay"`
	Level      int           `json:"level"`
	Bin        int           `json:"bin"`
	Coordinate string        `json:"coordinate"`
	Stock      *SlotStockDTO `json:"stock"`
}

// RackLayoutResponse grilla completa de una estantería en orden de lectura
// de estante (dirección ASC, nivel DESC de arriba hacia abajo, cuerpo ASC, posición ASC).
type RackLayoutResponse struct {
	RackID   string          `json:"rack_id"`
	RackCode string          `json:"rack_code"`
	Slots    []LayoutSlotDTO `json:"slots"`
}

// RackStatsResponse ocupación agregada de una estantería.
// Percent se redondea a dos decimales; estantería sin posiciones reporta 0.
type RackStatsResponse struct {
	RackID        string          `json:"rack_id"`
	TotalSlots    int             `json:"total_slots"`
	OccupiedSlots int             `json:"occupied_slots"`
	Percent       decimal.Decimal `json:"percent"`
}
