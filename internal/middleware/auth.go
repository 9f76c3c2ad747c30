package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/qarzdaftar/qarzdaftar/internal/auth"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// PhoneKey is the context key for storing the authenticated user's phone.
	PhoneKey contextKey = "phone"
	// RoleKey is the context key for storing the authenticated user's role.
	RoleKey contextKey = "role"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetPhone extracts the user phone from the context.
// Returns empty string if not found.
func GetPhone(ctx context.Context) string {
	phone, _ := ctx.Value(PhoneKey).(string)
	return phone
}

// GetRole extracts the user role from the context.
// Returns empty string if not found.
func GetRole(ctx context.Context) models.Role {
	role, _ := ctx.Value(RoleKey).(string)
	return models.Role(role)
}

// RequireAuth returns a middleware that validates JWT tokens and requires
// authentication. It extracts the token from the Authorization header,
// validates it, and adds the user ID, phone and role to the request context.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, auth.ErrMissingToken)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, PhoneKey, claims.Phone)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that rejects authenticated requests whose
// token does not carry the given role. It must be mounted after RequireAuth.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetRole(r.Context()) != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient permissions"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + err.Error() + `"}`))
}
