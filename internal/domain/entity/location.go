package entity

import "time"

// Location representa una sede física donde viven los depósitos.
type Location struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
