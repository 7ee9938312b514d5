package domain

import "time"

type Role string

const (
	RoleCustomer       Role = "customer"
	RoleContractor     Role = "contractor"
	RoleArchitect      Role = "architect"
	RoleDealer         Role = "dealer"
	RoleRentalMerchant Role = "rental_merchant"
	RoleAdmin          Role = "admin"
)

var roles = map[Role]bool{
	RoleCustomer:       true,
	RoleContractor:     true,
	RoleArchitect:      true,
	RoleDealer:         true,
	RoleRentalMerchant: true,
	RoleAdmin:          true,
}

// ParseRole rejects unknown roles instead of defaulting to customer.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, roles[r]
}

type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
