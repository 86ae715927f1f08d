// Package permissions holds the pure role/ownership predicates. Every
// mutating or resource-read endpoint evaluates exactly one of these before
// touching storage; denial surfaces as Forbidden with no partial side effect.
package permissions

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodnest/foodnest/app/models"
)

// HasAdmin reports whether u is an administrator, either by role or by the
// explicit admin flag.
func HasAdmin(u *models.User) bool {
	return u.Role == models.RoleAdmin || u.IsAdmin
}

// HasOwner reports whether u may view order resources: any non-dispatch
// role (admin, wholesaler, retailer).
func HasOwner(u *models.User) bool {
	switch u.Role {
	case models.RoleAdmin, models.RoleWholesaler, models.RoleRetailer:
		return true
	}
	return HasAdmin(u)
}

// HasRetailer reports whether u may place orders: retailers and admins.
func HasRetailer(u *models.User) bool {
	return u.Role == models.RoleRetailer || HasAdmin(u)
}

// CanCreateProduct reports whether u may list products: wholesalers and admins.
func CanCreateProduct(u *models.User) bool {
	return u.Role == models.RoleWholesaler || HasAdmin(u)
}

// Owns reports whether u is the owner identified by ownerID, or an admin.
func Owns(u *models.User, ownerID primitive.ObjectID) bool {
	return u.ID == ownerID || HasAdmin(u)
}
