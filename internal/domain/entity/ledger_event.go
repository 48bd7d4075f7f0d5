package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento del ledger de stock.
const (
	EventTypeInflow     = "INFLOW"
	EventTypeOutflow    = "OUTFLOW"
	EventTypeTransfer   = "TRANSFER"
	EventTypeAdjustment = "ADJUSTMENT"
	EventTypeRelocation = "RELOCATION"
)

// ValidEventType verifica que el tipo pertenezca al conjunto cerrado de eventos.
func ValidEventType(t string) bool {
	switch t {
	case EventTypeInflow, EventTypeOutflow, EventTypeTransfer, EventTypeAdjustment, EventTypeRelocation:
		return true
	}
	return false
}

// Snapshot par antes/después de la cantidad de una fila de stock.
type Snapshot struct {
	Before decimal.Decimal `json:"before"`
	After  decimal.Decimal `json:"after"`
}

// LedgerEvent es el registro inmutable de una operación que afecta cantidad o ubicación.
// Todas las variantes comparten el snapshot de la fila origen; TRANSFER añade además
// el snapshot de la fila destino. Los eventos nunca se borran, aunque el Stock al que
// refieren desaparezca de la base relacional.
type LedgerEvent struct {
	ID            string          `json:"id"`
	Seq           int64           `json:"seq"`
	Type          string          `json:"type"`
	StockID       string          `json:"stock_id"`
	DestStockID   string          `json:"dest_stock_id,omitempty"` // solo TRANSFER
	ProductID     string          `json:"product_id"`
	FromSlotID    string          `json:"from_slot_id,omitempty"`
	ToSlotID      string          `json:"to_slot_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"` // delta declarado; cero en RELOCATION
	Source        Snapshot        `json:"source"`
	Dest          *Snapshot       `json:"dest,omitempty"` // solo TRANSFER
	TotalValue    decimal.Decimal `json:"total_value"`
	CrossBoundary bool            `json:"cross_boundary,omitempty"` // RELOCATION que cruza contenedor
	Automated     bool            `json:"automated"`
	RoutineRef    string          `json:"routine_ref,omitempty"`
	SourceRef     string          `json:"source_ref,omitempty"` // proveedor (INFLOW)
	ClientRef     string          `json:"client_ref,omitempty"` // cliente (OUTFLOW)
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
