package domain

import "time"

type Material struct {
	ID         uint
	DealerID   uint
	Name       string
	Category   string
	Unit       string
	PriceCents int64
	Stock      int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (m Material) Available(quantity int) bool {
	return m.IsActive && m.Stock >= quantity
}
