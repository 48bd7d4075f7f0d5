package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estrategias de consumo por registro de stock (sugerencia, no la aplica el ledger).
const (
	StrategyFIFO = "FIFO"
	StrategyLIFO = "LIFO"
	StrategyJIT  = "JIT"
)

// Vocabulario de tipos de producto aceptado por el ledger.
const (
	ProductTypeGeneral    = "GENERAL"
	ProductTypePerishable = "PERISHABLE"
	ProductTypeFragile    = "FRAGILE"
	ProductTypeChemical   = "CHEMICAL"
)

// ValidStrategy verifica que la estrategia pertenezca al conjunto cerrado.
func ValidStrategy(s string) bool {
	return s == StrategyFIFO || s == StrategyLIFO || s == StrategyJIT
}

// ValidProductType verifica que el tipo de producto pertenezca al vocabulario.
func ValidProductType(t string) bool {
	switch t {
	case ProductTypeGeneral, ProductTypePerishable, ProductTypeFragile, ProductTypeChemical:
		return true
	}
	return false
}

// Stock representa un lote de producto ocupando (o que ocupó) una posición.
// SlotID es nil mientras el lote no está ubicado. Quantity nunca es negativa:
// ninguna operación confirmada del ledger viola ese invariante.
type Stock struct {
	ID          string
	SlotID      *string
	ProductID   string
	Quantity    decimal.Decimal
	Batch       string
	Expiry      *time.Time
	Strategy    string // FIFO | LIFO | JIT
	ProductType string
	Consumable  bool
	SalePrice   decimal.Decimal
	CostPrice   decimal.Decimal
	Coordinate  string // cacheada para listados; la vista de layout la recalcula siempre
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
