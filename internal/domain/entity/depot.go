package entity

import "time"

// Depot representa un depósito dentro de una sede (jerarquía sede→depósito→pasillo→estantería).
type Depot struct {
	ID         string
	LocationID string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
