package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementQueryRequest filtros para GET /api/movements.
// Window acepta today | week | month (vacío = sin filtro de fecha).
type MovementQueryRequest struct {
	Automated *bool  `query:"automated"`
	Window    string `query:"window"`
	ProductID string `query:"product_id"`
	Type      string `query:"type"`
	SlotID    string `query:"slot_id"`
	Search    string `query:"search"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

// MovementDTO un evento del journal en orden canónico de auditoría,
// enriquecido best-effort con datos del producto.
type MovementDTO struct {
	ID            string           `json:"id"`
	Seq           int64            `json:"seq"`
	Type          string           `json:"type"`
	StockID       string           `json:"stock_id"`
	DestStockID   string           `json:"dest_stock_id,omitempty"`
	ProductID     string           `json:"product_id"`
	ProductName   string           `json:"product_name,omitempty"` // enriquecido, puede faltar
	ProductSKU    string           `json:"product_sku,omitempty"`
	FromSlotID    string           `json:"from_slot_id,omitempty"`
	ToSlotID      string           `json:"to_slot_id,omitempty"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Before        decimal.Decimal  `json:"before"`
	After         decimal.Decimal  `json:"after"`
	DestBefore    *decimal.Decimal `json:"dest_before,omitempty"`
	DestAfter     *decimal.Decimal `json:"dest_after,omitempty"`
	TotalValue    decimal.Decimal  `json:"total_value"`
	CrossBoundary bool             `json:"cross_boundary,omitempty"`
	Automated     bool             `json:"automated"`
	RoutineRef    string           `json:"routine_ref,omitempty"`
	SourceRef     string           `json:"source_ref,omitempty"`
	ClientRef     string           `json:"client_ref,omitempty"`
	Note          string           `json:"note,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}
