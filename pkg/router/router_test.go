package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodnest/foodnest/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

func TestNamedRoutesAreListed(t *testing.T) {
	r := router.New()
	r.Get("/healthz", "healthz", ok)

	api := r.Group("/api/v1")
	api.Get("/products", "products.list", ok)
	api.Post("/products", "products.create", ok)

	infos := r.Routes()
	if len(infos) != 3 {
		t.Fatalf("got %d routes, want 3", len(infos))
	}

	path, found := r.Path("products.list")
	if !found || path != "/api/v1/products" {
		t.Errorf("Path(products.list) = %q, %v", path, found)
	}
}

func TestURLSubstitutesParams(t *testing.T) {
	r := router.New()
	r.Get("/api/v1/orders/{id}", "orders.show", ok)

	url, err := r.URL("orders.show", map[string]string{"id": "abc123"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/api/v1/orders/abc123" {
		t.Errorf("url = %q", url)
	}

	if _, err := r.URL("orders.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("no.such.route", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/api", tag("outer"))
	sub := g.Group("/orders", tag("inner"))
	sub.Get("", "orders.list", func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/orders", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("call order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("call order = %v, want %v", order, want)
		}
	}
}

func TestUnnamedRoutesNotListed(t *testing.T) {
	r := router.New()
	r.Get("/internal", "", ok)
	if len(r.Routes()) != 0 {
		t.Error("unnamed route should not be listed")
	}
}
