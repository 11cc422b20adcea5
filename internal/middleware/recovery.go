package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/thallesrafaell/jurandir-finance/internal/httputil"
)

// Recovery catches panics in HTTP handlers, logs them with a stack
// trace, and returns a 500 instead of dropping the connection.
// http.ErrAbortHandler is re-raised so net/http can abort the reply
// the way the handler asked for.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
