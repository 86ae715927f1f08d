package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/app/permissions"
	"github.com/foodnest/foodnest/app/repositories"
	"github.com/foodnest/foodnest/pkg/apperr"
	"github.com/foodnest/foodnest/pkg/metrics"
	"github.com/foodnest/foodnest/pkg/paginate"
)

// OrderItemInput is one requested line item.
type OrderItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// CreateOrderInput is the order placement payload.
type CreateOrderInput struct {
	Items []OrderItemInput `json:"items" validate:"required"`
}

// OrderService implements the order workflow: placement with price
// snapshotting, ownership-scoped reads, status transitions and deletion.
type OrderService struct {
	orders   repositories.OrderRepository
	products repositories.ProductRepository
}

func NewOrderService(orders repositories.OrderRepository, products repositories.ProductRepository) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// Create places an order for the requesting retailer. Each item snapshots
// the product's name, description and unit price at order time; the fully
// built document is persisted in a single insert, so a partially constructed
// order is never visible. All items must belong to one seller.
func (s *OrderService) Create(ctx context.Context, buyer *models.User, in CreateOrderInput) ([]models.OrderItem, error) {
	if !permissions.HasRetailer(buyer) {
		return nil, apperr.Forbidden("not allowed, contact Administrator")
	}
	if len(in.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}

	var sellerID primitive.ObjectID
	items := make([]models.OrderItem, 0, len(in.Items))
	total := 0.0

	for _, item := range in.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, apperr.Validation("invalid product_id %q", item.ProductID)
		}
		if item.Quantity < 1 {
			return nil, apperr.Validation("quantity must be at least 1")
		}

		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}

		if sellerID.IsZero() {
			sellerID = product.SellerID
		} else if sellerID != product.SellerID {
			return nil, apperr.Validation("all items must belong to a single seller")
		}

		subtotal := product.PricePerUnit * float64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID:          product.ID,
			ProductName:        product.Name,
			ProductDescription: product.Description,
			Price:              product.PricePerUnit,
			Quantity:           item.Quantity,
			Subtotal:           subtotal,
		})
		total += subtotal
	}

	now := time.Now()
	order := &models.Order{
		BuyerID:    buyer.ID,
		SellerID:   sellerID,
		Items:      items,
		TotalPrice: total,
		Status:     models.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderValue.Observe(total)

	return order.Items, nil
}

// Get returns one order. Requester needs owner permission; a retailer-only
// requester must additionally be the buyer on the order.
func (s *OrderService) Get(ctx context.Context, requester *models.User, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !permissions.HasOwner(requester) {
		return nil, apperr.Forbidden("not allowed, contact Administrator")
	}
	if s.retailerOnly(requester) && order.BuyerID != requester.ID {
		return nil, apperr.Forbidden("not allowed, contact Administrator")
	}

	return order, nil
}

// ListMine returns one page of orders. Admins see every order; everyone else
// sees only orders where they are buyer or seller. Both views honour an
// optional status filter and are paginated.
func (s *OrderService) ListMine(ctx context.Context, requester *models.User, status string, p paginate.Params) ([]models.Order, paginate.Meta, error) {
	if !permissions.HasOwner(requester) {
		return nil, paginate.Meta{}, apperr.Forbidden("not allowed")
	}

	var filter repositories.OrderFilter
	if status != "" {
		st := models.OrderStatus(status)
		if !st.IsValid() {
			return nil, paginate.Meta{}, apperr.Validation("unknown status %q", status)
		}
		filter.Status = &st
	}
	if !permissions.HasAdmin(requester) {
		id := requester.ID
		filter.Participant = &id
	}

	orders, total, err := s.orders.List(ctx, filter, p)
	if err != nil {
		return nil, paginate.Meta{}, err
	}
	return orders, p.MetaFor(total), nil
}

// Complete moves a pending order to completed. Only the seller on the order
// or an admin may complete it.
func (s *OrderService) Complete(ctx context.Context, requester *models.User, id primitive.ObjectID) (*models.Order, error) {
	return s.transition(ctx, requester, id, models.OrderCompleted, func(o *models.Order) bool {
		return permissions.Owns(requester, o.SellerID)
	})
}

// Cancel moves a pending order to cancelled. Only the buyer on the order or
// an admin may cancel it.
func (s *OrderService) Cancel(ctx context.Context, requester *models.User, id primitive.ObjectID) (*models.Order, error) {
	return s.transition(ctx, requester, id, models.OrderCancelled, func(o *models.Order) bool {
		return permissions.Owns(requester, o.BuyerID)
	})
}

// Delete removes an order. Admins and retailers may delete, and only while
// the order is still pending.
func (s *OrderService) Delete(ctx context.Context, requester *models.User, id primitive.ObjectID) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !(permissions.HasAdmin(requester) || permissions.HasRetailer(requester)) {
		return apperr.Forbidden("not allowed, contact Administrator")
	}
	if order.Status != models.OrderPending {
		return apperr.Conflict("only pending orders can be deleted")
	}

	return s.orders.Delete(ctx, id)
}

func (s *OrderService) transition(ctx context.Context, requester *models.User, id primitive.ObjectID, next models.OrderStatus, allowed func(*models.Order) bool) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !allowed(order) {
		return nil, apperr.Forbidden("not allowed, contact Administrator")
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, apperr.Conflict("order is %s, cannot move to %s", order.Status, next)
	}

	if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	order.Status = next
	return order, nil
}

// retailerOnly reports whether u holds the retailer role without admin
// privileges.
func (s *OrderService) retailerOnly(u *models.User) bool {
	return u.Role == models.RoleRetailer && !permissions.HasAdmin(u)
}
