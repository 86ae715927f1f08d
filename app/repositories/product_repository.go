package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/pkg/apperr"
	"github.com/foodnest/foodnest/pkg/database"
	"github.com/foodnest/foodnest/pkg/paginate"
)

// ProductRepository handles storage operations for Product documents.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// Exists reports whether a product with the same name, description and
	// seller is already listed. Uniqueness is a pre-insert check, not a
	// database constraint.
	Exists(ctx context.Context, name, description string, sellerID primitive.ObjectID) (bool, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	List(ctx context.Context, category *models.Category, p paginate.Params) ([]models.Product, int64, error)
}

type productRepository struct {
	col *mongo.Collection
}

// NewProductRepository returns the MongoDB-backed ProductRepository.
func NewProductRepository(db *database.DB) ProductRepository {
	return &productRepository{col: db.Collection(database.ColProducts)}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	res, err := r.col.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("products: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("product %s", id.Hex())
		}
		return nil, fmt.Errorf("products: find by id: %w", err)
	}
	return &product, nil
}

func (r *productRepository) Exists(ctx context.Context, name, description string, sellerID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"name":        name,
		"description": description,
		"seller_id":   sellerID,
	}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("products: duplicate check: %w", err)
	}
	return n > 0, nil
}

// UpdateFields applies a partial $set in place, preserving _id and
// created_at; updated_at is always stamped.
func (r *productRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("products: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("product %s", id.Hex())
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, category *models.Category, p paginate.Params) ([]models.Product, int64, error) {
	filter := bson.M{}
	if category != nil {
		filter["category"] = *category
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("products: count: %w", err)
	}

	opts := options.Find().
		SetSkip(p.Skip()).
		SetLimit(p.Limit()).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("products: find: %w", err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("products: decode: %w", err)
	}

	return products, total, nil
}
