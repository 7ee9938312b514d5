package domain

import "time"

type Professional struct {
	ID         uint
	UserID     uint
	Profession Role
	Company    string
	City       string
	Bio        string
	Rating     float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
