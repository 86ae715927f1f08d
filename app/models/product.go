package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the closed set of product categories.
type Category string

const (
	CategoryGrains     Category = "grains"
	CategoryVegetables Category = "vegetables"
	CategoryNuts       Category = "nuts"
	CategoryDairy      Category = "dairy"
	CategoryRoots      Category = "roots"
	CategoryOther      Category = "other"
)

// IsValid reports whether c is one of the defined categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryGrains, CategoryVegetables, CategoryNuts,
		CategoryDairy, CategoryRoots, CategoryOther:
		return true
	}
	return false
}

// Product is a catalog listing owned by a wholesaler or admin seller.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Category      Category           `bson:"category" json:"category"`
	Unit          string             `bson:"unit" json:"unit"`
	PricePerUnit  float64            `bson:"price_per_unit" json:"price_per_unit"`
	StockQuantity int                `bson:"stock_quantity" json:"stock_quantity"`
	SellerID      primitive.ObjectID `bson:"seller_id" json:"seller_id"`
	IsAvailable   bool               `bson:"is_available" json:"is_available"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
