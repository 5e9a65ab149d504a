package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/shandysiswandi/gostopwatch/internal/pkg/stacktrace"
)

//nolint:contextcheck // request context is used for logging only
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				//nolint:err113,errorlint // this must compare directly
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(r.Context(), "panic on the server", "because", rvr, "stack", paths)
				} else {
					slog.ErrorContext(r.Context(), "panic on the server trace debug", "because", rvr, "stack", string(stack))
				}

				writeText(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
