package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/foodnest/foodnest/pkg/logger"
	"github.com/foodnest/foodnest/pkg/response"
)

// Recovery converts a downstream panic into a 500 response after logging
// the panic value and stack. http.ErrAbortHandler is re-raised so aborted
// requests keep the net/http semantics.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			logger.WithCtx(r.Context()).Error("panic recovered",
				"panic", v,
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
			)
			response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		}()

		next.ServeHTTP(w, r)
	})
}
