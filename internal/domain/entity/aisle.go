package entity

import "time"

// Aisle representa un pasillo dentro de un depósito.
type Aisle struct {
	ID        string
	DepotID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
