package controllers

import (
	"net/http"

	"github.com/foodnest/foodnest/app/services"
	"github.com/foodnest/foodnest/pkg/bind"
	"github.com/foodnest/foodnest/pkg/paginate"
	"github.com/foodnest/foodnest/pkg/response"
)

// ProductController serves the catalog endpoints.
type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// List is public: no authentication required for browsing the catalog.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	p := paginate.FromRequest(r)
	category := r.URL.Query().Get("category")

	products, meta, err := c.products.List(r.Context(), category, p)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Paginated(w, products, meta)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}

	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Create(r.Context(), req, in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}
	id, ok := pathID(r, w)
	if !ok {
		return
	}

	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Update(r.Context(), req, id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, product)
}
