package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/battleship/internal/api/apierr"
	"github.com/mcoot/battleship/internal/middleware"
)

// Recovery answers handler panics with the API's INTERNAL_ERROR body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "api")),
		func(w http.ResponseWriter, _ *http.Request, _ any) {
			apierr.WriteError(w, apierr.NewInternalError())
		})
}
