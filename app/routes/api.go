// Package routes declares the HTTP surface. Handlers and middleware are
// injected; nothing here reaches for process-wide state.
package routes

import (
	"net/http"

	"github.com/foodnest/foodnest/app/controllers"
	"github.com/foodnest/foodnest/pkg/metrics"
	"github.com/foodnest/foodnest/pkg/response"
	"github.com/foodnest/foodnest/pkg/router"
)

// Deps carries the wired controllers and the authentication middleware.
type Deps struct {
	Auth        *controllers.AuthController
	Users       *controllers.UserController
	Products    *controllers.ProductController
	Orders      *controllers.OrderController
	RequireUser router.Middleware
}

// RegisterAPI mounts every endpoint under /api/v1 plus the operational
// endpoints (/healthz, /metrics).
func RegisterAPI(r *router.Router, d Deps) {
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api/v1")

	// Accounts
	account := api.Group("/auth/user")
	account.Post("/register", "auth.register", d.Auth.Register)
	account.Post("/login", "auth.login", d.Auth.Login)
	account.Post("/refresh", "auth.refresh", d.Auth.Refresh)

	profile := account.Group("", d.RequireUser)
	profile.Get("/{id}", "users.show", d.Users.Get)
	profile.Patch("/{id}", "users.update", d.Users.Update)
	profile.Patch("/{id}/role", "users.role", d.Users.UpdateRole)
	profile.Delete("/{id}", "users.delete", d.Users.Delete)
	profile.Post("/{id}/images", "users.images", d.Users.UploadImage)

	// Catalog — listing is public, mutation requires a user.
	api.Get("/products", "products.list", d.Products.List)
	catalog := api.Group("/products", d.RequireUser)
	catalog.Post("", "products.create", d.Products.Create)
	catalog.Patch("/{id}", "products.update", d.Products.Update)

	// Orders
	orders := api.Group("/orders", d.RequireUser)
	orders.Get("", "orders.list", d.Orders.List)
	orders.Post("", "orders.create", d.Orders.Create)
	orders.Get("/{id}", "orders.show", d.Orders.Get)
	orders.Post("/{id}/complete", "orders.complete", d.Orders.Complete)
	orders.Post("/{id}/cancel", "orders.cancel", d.Orders.Cancel)
	orders.Delete("/{id}", "orders.delete", d.Orders.Delete)
}
