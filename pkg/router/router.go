// Package router wraps chi with named routes so the CLI can list the API
// surface and handlers can build URLs from route names.
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered named route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux    chi.Router
	mu     sync.RWMutex
	routes []RouteInfo
}

// Group scopes a path prefix and a middleware stack.
type Group struct {
	router      *Router
	prefix      string
	middlewares []Middleware
}

func New() *Router {
	return &Router{mux: chi.NewRouter()}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      r,
		prefix:      normalizePath(prefix),
		middlewares: append([]Middleware(nil), middlewares...),
	}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodGet, path, name, h, mw...)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodPost, path, name, h, mw...)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodPatch, path, name, h, mw...)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodDelete, path, name, h, mw...)
}

// Routes returns the registered named routes sorted by path then method.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]RouteInfo(nil), r.routes...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Path returns the pattern registered under name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ri := range r.routes {
		if ri.Name == name {
			return ri.Path, true
		}
	}
	return "", false
}

// URL builds a concrete URL for a named route by substituting params.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}

	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}

	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}

	return path, nil
}

func (r *Router) mount(method, path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	fullPath := normalizePath(path)
	r.mux.Method(method, fullPath, chain(handler, middlewares...))

	if name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, RouteInfo{Method: method, Path: fullPath, Name: name})
}

func (g *Group) Group(prefix string, middlewares ...Middleware) *Group {
	combined := append(append([]Middleware(nil), g.middlewares...), middlewares...)
	return &Group{
		router:      g.router,
		prefix:      joinPath(g.prefix, prefix),
		middlewares: combined,
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.mount(http.MethodGet, path, name, h, mw...)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.mount(http.MethodPost, path, name, h, mw...)
}

func (g *Group) Patch(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.mount(http.MethodPatch, path, name, h, mw...)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.mount(http.MethodDelete, path, name, h, mw...)
}

func (g *Group) mount(method, path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	fullPath := joinPath(g.prefix, path)
	combined := append(append([]Middleware(nil), g.middlewares...), middlewares...)
	g.router.mux.Method(method, fullPath, chain(handler, combined...))

	if name == "" {
		return
	}

	g.router.mu.Lock()
	defer g.router.mu.Unlock()
	g.router.routes = append(g.router.routes, RouteInfo{Method: method, Path: fullPath, Name: name})
}

func chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func joinPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}

	if len(segments) == 0 {
		return "/"
	}

	return "/" + strings.Join(segments, "/")
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return joinPath(path)
}
