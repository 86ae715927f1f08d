// Package reqid tags every HTTP request with an identifier that travels
// through the context, the X-Request-ID response header and the structured
// log lines emitted while serving it.
package reqid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// Header carries the request ID between client and server.
const Header = "X-Request-ID"

// maxInbound caps the length of a client-supplied ID before it is echoed
// back and logged.
const maxInbound = 64

type ctxKey struct{}

// New returns a fresh 32-character random ID.
func New() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// WithValue returns a copy of ctx carrying id.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the request ID stored in ctx, or "" when there is none.
func FromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware assigns each request an ID and mirrors it in the response
// header. A usable inbound X-Request-ID (set by a gateway or a retrying
// client) is kept so traces line up across hops; oversized or missing
// values are replaced with a fresh ID.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" || len(id) > maxInbound {
				id = New()
			}
			w.Header().Set(Header, id)

			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
