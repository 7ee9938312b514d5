package domain

import "time"

type Notification struct {
	ID        uint
	UserID    uint
	Kind      string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
