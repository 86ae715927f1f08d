package services_test

import (
	"bytes"
	"context"
	"io"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/app/repositories"
	"github.com/foodnest/foodnest/pkg/apperr"
	"github.com/foodnest/foodnest/pkg/paginate"
)

// In-memory repository fakes. Each applies the same error taxonomy as the
// MongoDB implementations so the services under test see identical behavior.

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[primitive.ObjectID]*models.User
	updates []bson.M // every UpdateFields payload, in call order
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperr.Conflict("email already registered")
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("user %s", id.Hex())
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("user %s", email)
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperr.NotFound("user %s", id.Hex())
	}
	r.updates = append(r.updates, fields)

	for k, v := range fields {
		switch k {
		case "role":
			u.Role = v.(models.Role)
		case "image_url":
			u.ImageURL = v.(string)
		case "first_name":
			u.FirstName = v.(string)
		case "middle_name":
			u.MiddleName = v.(string)
		case "last_name":
			u.LastName = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "address":
			u.Address = v.(string)
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("user %s", id.Hex())
	}
	delete(r.users, id)
	return nil
}

// updatedKeys flattens every recorded update payload into one key set.
func (r *fakeUserRepo) updatedKeys() map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := map[string]bool{}
	for _, fields := range r.updates {
		for k := range fields {
			keys[k] = true
		}
	}
	return keys
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[primitive.ObjectID]*models.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = primitive.NewObjectID()
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product %s", id.Hex())
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) Exists(_ context.Context, name, description string, sellerID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Name == name && p.Description == description && p.SellerID == sellerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return apperr.NotFound("product %s", id.Hex())
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "description":
			p.Description = v.(string)
		case "category":
			p.Category = v.(models.Category)
		case "unit":
			p.Unit = v.(string)
		case "price_per_unit":
			p.PricePerUnit = v.(float64)
		case "stock_quantity":
			p.StockQuantity = v.(int)
		case "is_available":
			p.IsAvailable = v.(bool)
		}
	}
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, category *models.Category, p paginate.Params) ([]models.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, prod := range r.products {
		if category != nil && prod.Category != *category {
			continue
		}
		out = append(out, *prod)
	}
	return page(out, p), int64(len(out)), nil
}

// setPrice mutates a stored product directly, bypassing the service layer.
func (r *fakeProductRepo) setPrice(id primitive.ObjectID, price float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[id].PricePerUnit = price
}

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[primitive.ObjectID]*models.Order
	inserts int
	lastID  primitive.ObjectID
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[primitive.ObjectID]*models.Order{}}
}

func (r *fakeOrderRepo) Insert(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts++
	order.ID = primitive.NewObjectID()
	r.lastID = order.ID
	clone := *order
	clone.Items = append([]models.OrderItem(nil), order.Items...)
	r.orders[order.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("order %s", id.Hex())
	}
	clone := *o
	clone.Items = append([]models.OrderItem(nil), o.Items...)
	return &clone, nil
}

func (r *fakeOrderRepo) List(_ context.Context, f repositories.OrderFilter, p paginate.Params) ([]models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if f.Participant != nil && o.BuyerID != *f.Participant && o.SellerID != *f.Participant {
			continue
		}
		out = append(out, *o)
	}
	return page(out, p), int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return apperr.NotFound("order %s", id.Hex())
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return apperr.NotFound("order %s", id.Hex())
	}
	delete(r.orders, id)
	return nil
}

// fakeDisk records object-store writes in memory.
type fakeDisk struct {
	mu   sync.Mutex
	blob map[string][]byte
}

func newFakeDisk() *fakeDisk { return &fakeDisk{blob: map[string][]byte{}} }

func (d *fakeDisk) Put(_ context.Context, path string, content io.Reader) error {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blob[path] = buf.Bytes()
	return nil
}

func (d *fakeDisk) Delete(_ context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.blob, path)
	return nil
}

func (d *fakeDisk) URL(path string) string { return "https://cdn.test/" + path }

func page[T any](all []T, p paginate.Params) []T {
	start := int(p.Skip())
	if start >= len(all) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
