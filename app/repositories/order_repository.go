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

// OrderFilter narrows an order listing. A nil Participant means no ownership
// restriction (admin view); otherwise only orders where the participant is
// buyer or seller match.
type OrderFilter struct {
	Status      *models.OrderStatus
	Participant *primitive.ObjectID
}

// OrderRepository handles storage operations for Order documents.
type OrderRepository interface {
	// Insert persists a fully-built order in one write. The document must
	// already carry its items, total and timestamps; there is never a
	// partially-constructed order visible to readers.
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	List(ctx context.Context, f OrderFilter, p paginate.Params) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type orderRepository struct {
	col *mongo.Collection
}

// NewOrderRepository returns the MongoDB-backed OrderRepository.
func NewOrderRepository(db *database.DB) OrderRepository {
	return &orderRepository{col: db.Collection(database.ColOrders)}
}

func (r *orderRepository) Insert(ctx context.Context, order *models.Order) error {
	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("orders: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("order %s", id.Hex())
		}
		return nil, fmt.Errorf("orders: find by id: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, f OrderFilter, p paginate.Params) ([]models.Order, int64, error) {
	filter := bson.M{}
	if f.Status != nil {
		filter["status"] = *f.Status
	}
	if f.Participant != nil {
		filter["$or"] = bson.A{
			bson.M{"buyer_id": *f.Participant},
			bson.M{"seller_id": *f.Participant},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("orders: count: %w", err)
	}

	opts := options.Find().
		SetSkip(p.Skip()).
		SetLimit(p.Limit()).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("orders: find: %w", err)
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("orders: decode: %w", err)
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("orders: update status: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("order %s", id.Hex())
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("orders: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("order %s", id.Hex())
	}
	return nil
}
