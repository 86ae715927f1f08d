package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodnest/foodnest/app/middleware"
	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/app/services"
	"github.com/foodnest/foodnest/pkg/bind"
	"github.com/foodnest/foodnest/pkg/response"
)

// maxImageBytes caps profile image uploads at 8 MB.
const maxImageBytes = 8 << 20

// UserController serves profile reads and mutations.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// requester pulls the authenticated user injected by RequireUser; the route
// table guarantees it is present.
func requester(r *http.Request, w http.ResponseWriter) (*models.User, bool) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
	}
	return u, ok
}

// pathID parses the {id} route parameter as an ObjectID.
func pathID(r *http.Request, w http.ResponseWriter) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}
	id, ok := pathID(r, w)
	if !ok {
		return
	}

	user, err := c.users.Get(r.Context(), req, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, user)
}

func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}
	id, ok := pathID(r, w)
	if !ok {
		return
	}

	var in services.UpdateUserInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.Update(r.Context(), req, id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, user)
}

func (c *UserController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}
	id, ok := pathID(r, w)
	if !ok {
		return
	}

	var in services.UpdateRoleInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.UpdateRole(r.Context(), req, id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, user)
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}
	id, ok := pathID(r, w)
	if !ok {
		return
	}

	if err := c.users.Delete(r.Context(), req, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// UploadImage accepts a multipart form with a single "image" part and stores
// it on the object store.
func (c *UserController) UploadImage(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r, w)
	if !ok {
		return
	}
	id, ok := pathID(r, w)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	url, err := c.users.UploadImage(r.Context(), req, id, header.Header.Get("Content-Type"), file)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, map[string]string{"image_url": url})
}
