package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/app/permissions"
	"github.com/foodnest/foodnest/app/repositories"
	"github.com/foodnest/foodnest/pkg/apperr"
	"github.com/foodnest/foodnest/pkg/metrics"
	"github.com/foodnest/foodnest/pkg/paginate"
)

// ProductInput is the create/update payload for a catalog listing.
type ProductInput struct {
	Name          string          `json:"name" validate:"required,max=255"`
	Description   string          `json:"description" validate:"required,max=2000"`
	Category      models.Category `json:"category" validate:"required,in=grains,vegetables,nuts,dairy,roots,other"`
	Unit          string          `json:"unit" validate:"required,max=30"`
	PricePerUnit  float64         `json:"price_per_unit" validate:"required,gte=0"`
	StockQuantity int             `json:"stock_quantity" validate:"nullable,gte=0"`
	SellerID      string          `json:"seller_id" validate:"nullable"` // admins may list on behalf of a seller
	IsAvailable   bool            `json:"is_available"`
}

// ProductService covers the catalog: listing, creation and in-place updates.
type ProductService struct {
	products repositories.ProductRepository
}

func NewProductService(products repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns one page of products, optionally filtered by category.
func (s *ProductService) List(ctx context.Context, category string, p paginate.Params) ([]models.Product, paginate.Meta, error) {
	var filter *models.Category
	if category != "" {
		c := models.Category(category)
		if !c.IsValid() {
			return nil, paginate.Meta{}, apperr.Validation("unknown category %q", category)
		}
		filter = &c
	}

	products, total, err := s.products.List(ctx, filter, p)
	if err != nil {
		return nil, paginate.Meta{}, err
	}
	return products, p.MetaFor(total), nil
}

// Create lists a new product. Only wholesalers and admins may create; the
// (name, description, seller) triple must not already exist.
func (s *ProductService) Create(ctx context.Context, requester *models.User, in ProductInput) (*models.Product, error) {
	if !permissions.CanCreateProduct(requester) {
		return nil, apperr.Forbidden("only wholesalers or admins can perform this action")
	}

	sellerID := requester.ID
	if in.SellerID != "" && permissions.HasAdmin(requester) {
		id, err := primitive.ObjectIDFromHex(in.SellerID)
		if err != nil {
			return nil, apperr.Validation("invalid seller_id")
		}
		sellerID = id
	}

	exists, err := s.products.Exists(ctx, in.Name, in.Description, sellerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("product already exists")
	}

	now := time.Now()
	product := &models.Product{
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Unit:          in.Unit,
		PricePerUnit:  in.PricePerUnit,
		StockQuantity: in.StockQuantity,
		SellerID:      sellerID,
		IsAvailable:   in.IsAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	metrics.ProductsCreated.WithLabelValues(string(product.Category)).Inc()

	return product, nil
}

// Update edits an existing listing in place, preserving its identifier and
// created timestamp. Only the owning seller or an admin may update.
func (s *ProductService) Update(ctx context.Context, requester *models.User, id primitive.ObjectID, in ProductInput) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !permissions.Owns(requester, product.SellerID) {
		return nil, apperr.Forbidden("only admins or the product owner can perform this action")
	}

	fields := bson.M{
		"name":           in.Name,
		"description":    in.Description,
		"category":       in.Category,
		"unit":           in.Unit,
		"price_per_unit": in.PricePerUnit,
		"stock_quantity": in.StockQuantity,
		"is_available":   in.IsAvailable,
	}
	if err := s.products.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.products.FindByID(ctx, id)
}
