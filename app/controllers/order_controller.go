package controllers

import (
	"net/http"

	"github.com/foodnest/foodnest/app/services"
	"github.com/foodnest/foodnest/pkg/bind"
	"github.com/foodnest/foodnest/pkg/logger"
	"github.com/foodnest/foodnest/pkg/paginate"
	"github.com/foodnest/foodnest/pkg/response"
)

// OrderController serves the order workflow endpoints.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}

	var in services.CreateOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	items, err := c.orders.Create(r.Context(), req, in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order placed", "buyer", req.ID.Hex(), "items", len(items))
	response.Created(w, items)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}
	id, ok := pathID(r, w)
	if !ok {
		return
	}

	order, err := c.orders.Get(r.Context(), req, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, order)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}

	p := paginate.FromRequest(r)
	status := r.URL.Query().Get("status")

	orders, meta, err := c.orders.ListMine(r.Context(), req, status, p)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Paginated(w, orders, meta)
}

func (c *OrderController) Complete(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}
	id, ok := pathID(r, w)
	if !ok {
		return
	}

	order, err := c.orders.Complete(r.Context(), req, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, order)
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}
	id, ok := pathID(r, w)
	if !ok {
		return
	}

	order, err := c.orders.Cancel(r.Context(), req, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, order)
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}
	id, ok := pathID(r, w)
	if !ok {
		return
	}

	if err := c.orders.Delete(r.Context(), req, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
