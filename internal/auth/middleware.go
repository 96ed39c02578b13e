package auth

import (
	"net/http"
	"strconv"

	"libraryapi/internal/httpx"
	"libraryapi/internal/reader"
)

// Middleware authenticates the bearer token and stores the reader in the
// request context. Requests without a valid token get 401.
func Middleware(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httpx.BearerToken(r)
			if !ok {
				httpx.Unauthorized(w, r)
				return
			}

			rd, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				httpx.Error(w, r, err)
				return
			}

			httpx.SetLogUserID(r.Context(), strconv.FormatInt(rd.ID, 10))
			ctx := reader.NewContext(r.Context(), rd)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after Middleware. Non-admins get 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rd, ok := reader.FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w, r)
			return
		}
		if err := RequireRole(rd, reader.RoleAdmin); err != nil {
			httpx.Error(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
