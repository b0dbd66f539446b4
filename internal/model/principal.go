package model

import "github.com/google/uuid"

// Principal is the authenticated caller as seen by the service layer.
type Principal struct {
	ID       uuid.UUID
	Role     Role
	FullName string
	Rating   float64
}

func (p Principal) IsFarmer() bool   { return p.Role == RoleFarmer }
func (p Principal) IsBusiness() bool { return p.Role == RoleBusiness }
func (p Principal) IsCustomer() bool { return p.Role == RoleCustomer }
func (p Principal) IsAdmin() bool    { return p.Role == RoleAdmin }

func NewPrincipal(user *User) Principal {
	return Principal{
		ID:       user.ID,
		Role:     user.Role,
		FullName: user.FullName,
		Rating:   user.RatingOrDefault(),
	}
}
