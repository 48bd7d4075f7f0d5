package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU almacenable.
// Los precios por lote viven en Stock; aquí van los valores de catálogo.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Type        string // vocabulario de ProductType
	SalePrice   decimal.Decimal
	CostPrice   decimal.Decimal
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
