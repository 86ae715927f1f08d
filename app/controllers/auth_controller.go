// Package controllers translates HTTP requests into service calls and
// service results into JSON envelopes. No business rules live here.
package controllers

import (
	"net/http"

	"github.com/foodnest/foodnest/app/services"
	"github.com/foodnest/foodnest/pkg/bind"
	"github.com/foodnest/foodnest/pkg/logger"
	"github.com/foodnest/foodnest/pkg/response"
)

// AuthController serves registration, login and token refresh.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	payload, err := c.auth.Register(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("user registered", "email", payload.Email)
	response.Created(w, payload)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	payload, err := c.auth.Login(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, payload)
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	payload, err := c.auth.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payload)
}
