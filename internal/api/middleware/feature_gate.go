package middleware

import (
	"context"
	"net/http"

	"github.com/metroconnect/metroconnect/internal/api/models"
)

// FlagChecker reports whether a boolean feature flag is set.
// *featureflags.Service satisfies it.
type FlagChecker interface {
	IsEnabled(ctx context.Context, key string) bool
}

// DisabledBy answers 503 while the kill switch flag is set.
// A nil checker never blocks.
func DisabledBy(flags FlagChecker, flag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if flags != nil && flags.IsEnabled(r.Context(), flag) {
				problem := models.NewServiceUnavailable(GetRequestID(r.Context()), "this feature is temporarily unavailable")
				problem.Instance = r.URL.Path
				problem.Write(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
