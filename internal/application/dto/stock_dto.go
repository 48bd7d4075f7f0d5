package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceStockRequest body para POST /api/stock: primera colocación de un lote en una posición.
type PlaceStockRequest struct {
	RackID      string           `json:"rack_id" validate:"required,uuid"`
	SlotID      string           `json:"slot_id" validate:"required,uuid"`
	ProductID   string           `json:"product_id" validate:"required,uuid"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Batch       string           `json:"batch" validate:"omitempty,max=64"`
	Expiry      *time.Time       `json:"expiry,omitempty"`
	Strategy    string           `json:"strategy" validate:"required,oneof=FIFO LIFO JIT"`
	ProductType string           `json:"product_type" validate:"required"`
	Consumable  bool             `json:"consumable"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
}

// InflowRequest body para POST /api/stock/:id/inflow.
type InflowRequest struct {
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	SourceRef string           `json:"source_ref,omitempty"`
	Note      string           `json:"note,omitempty"`
}

// OutflowRequest body para POST /api/stock/:id/outflow.
type OutflowRequest struct {
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	ClientRef string           `json:"client_ref,omitempty"`
	Note      string           `json:"note,omitempty"`
}

// TransferRequest body para POST /api/stock/:id/transfer.
type TransferRequest struct {
	ToStockID string          `json:"to_stock_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note,omitempty"`
}

// AdjustRequest body para POST /api/stock/:id/adjust. Delta con signo, distinto de cero.
type AdjustRequest struct {
	Delta      decimal.Decimal  `json:"delta"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	Note       string           `json:"note,omitempty"`
	Automated  bool             `json:"automated,omitempty"`
	RoutineRef string           `json:"routine_ref,omitempty"`
}

// RelocateRequest body para POST /api/stock/:id/relocate (dentro de la misma estantería).
type RelocateRequest struct {
	TargetSlotID string `json:"target_slot_id" validate:"required,uuid"`
}

// MigrateRequest body para POST /api/stock/:id/migrate: reubicación que cruza
// el límite del contenedor; el código de la estantería destino lo aporta el caller.
type MigrateRequest struct {
	TargetSlotID string `json:"target_slot_id" validate:"required,uuid"`
	NewRackCode  string `json:"new_rack_code" validate:"required"`
}

// StockResponse salida de un registro de stock.
type StockResponse struct {
	ID          string          `json:"id"`
	SlotID      *string         `json:"slot_id"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Batch       string          `json:"batch,omitempty"`
	Expiry      *time.Time      `json:"expiry,omitempty"`
	Strategy    string          `json:"strategy"`
	ProductType string          `json:"product_type"`
	Consumable  bool            `json:"consumable"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Coordinate  string          `json:"coordinate,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
