package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/contact-manager/internal/model"
)

// HeaderToken is the request header carrying the bearer token.
const HeaderToken = "X-API-TOKEN"

// contextKey is an unexported type used for context keys in this package.
//
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "user", u), ANY package that knows the string "user"
// can read or shadow your value. A package-private key type means only THIS
// package can read or write the authenticated user in the context.
type contextKey string

const userKey contextKey = "user"

// UserResolver resolves a raw token to its owning user.
// It returns (nil, nil) when no user holds the token — "not found" is a
// normal outcome here, not a store failure. The user repository implements
// this; tests supply fakes.
type UserResolver interface {
	FindByToken(ctx context.Context, token string) (*model.User, error)
}

// RequireAuth enforces authentication on protected routes.
//
// It reads the X-API-TOKEN header, resolves it through the store, checks
// expiry, and injects the resolved user into the request context. Any
// failure ends the request with 401 before the handler runs — a handler
// behind this middleware can always assume UserFromContext succeeds.
//
// Two failure messages exist on purpose:
//   - "UNAUTHORIZED" for a missing header AND for a token no user holds.
//     The two cases are indistinguishable from outside, so responses leak
//     nothing about which tokens exist.
//   - "Token Expired" for a real token past its expiry. The caller held a
//     valid session once, so telling them why it stopped working is safe
//     and saves a confused retry loop.
//
// The lookup happens per request with no caching: a login or logout
// elsewhere is visible on the very next request.
func RequireAuth(resolver UserResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(HeaderToken)
			if token == "" {
				writeUnauthorized(w, "UNAUTHORIZED")
				return
			}

			user, err := resolver.FindByToken(r.Context(), token)
			if err != nil {
				logger.Error("token lookup failed", slog.String("error", err.Error()))
				writeUnauthorized(w, "UNAUTHORIZED")
				return
			}
			if user == nil {
				writeUnauthorized(w, "UNAUTHORIZED")
				return
			}

			if !user.HasActiveToken(time.Now()) {
				writeUnauthorized(w, "Token Expired")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user placed by RequireAuth.
// Returns (nil, false) on requests that did not pass the middleware.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// ContextWithUser injects a user into a context.
// Used by handler tests to simulate an authenticated request without
// running the middleware.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// writeUnauthorized sends the 401 error envelope. The middleware cannot use
// the handler package's helpers without an import cycle, so it writes the
// envelope directly — the shape must stay in sync with handler/response.go.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"errors": message})
}
