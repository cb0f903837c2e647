package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/studyhub/backend/internal/auth"
	"github.com/studyhub/backend/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// Auth extracts bearer-token identities for the wrapped routes.
type Auth struct {
	signer *auth.Signer
}

func NewAuth(signer *auth.Signer) *Auth {
	return &Auth{signer: signer}
}

// Optional attaches the identity when a valid token is present and lets
// anonymous requests through.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := a.identify(r); ok {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// Required rejects requests without a valid token.
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.identify(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Authentication required"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (a *Auth) identify(r *http.Request) (models.Identity, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return models.Identity{}, false
	}
	id, err := a.signer.Parse(strings.TrimSpace(token))
	if err != nil {
		return models.Identity{}, false
	}
	return id, true
}

func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity attached by Optional or Required.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok && id.UserID != ""
}

// UserID is a shortcut for handlers that only need the user id.
func UserID(r *http.Request) (string, bool) {
	id, ok := IdentityFrom(r.Context())
	return id.UserID, ok
}

// RequestIdentity adapts IdentityFrom to handlers that take a request.
func RequestIdentity(r *http.Request) (models.Identity, bool) {
	return IdentityFrom(r.Context())
}
