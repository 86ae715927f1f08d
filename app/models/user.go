package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account roles. It is the only role type in the
// codebase; never a bare string.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleWholesaler Role = "wholesaler"
	RoleRetailer   Role = "retailer"
	RoleDispatch   Role = "dispatch"
)

// IsValid reports whether r is one of the defined roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleWholesaler, RoleRetailer, RoleDispatch:
		return true
	}
	return false
}

// User is a marketplace account.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"` // bcrypt hash, never serialised
	FirstName  string             `bson:"first_name,omitempty" json:"first_name,omitempty"`
	MiddleName string             `bson:"middle_name,omitempty" json:"middle_name,omitempty"`
	LastName   string             `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address    string             `bson:"address,omitempty" json:"address,omitempty"`
	ImageURL   string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Role       Role               `bson:"role" json:"role"`
	IsActive   bool               `bson:"is_active" json:"is_active"`
	IsAdmin    bool               `bson:"is_admin" json:"is_admin"`
	LastLogin  time.Time          `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
