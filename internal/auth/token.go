package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studyhub/backend/internal/models"
)

// DefaultTokenTTL matches the lifetime of tokens handed out by the sign-in
// provider.
const DefaultTokenTTL = 72 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Signer issues and verifies HS256 bearer tokens. The subject claim carries
// the opaque user id.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

type claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for userID that expires after ttl.
func (s *Signer) GenerateToken(userID, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// Parse verifies a token and returns the identity it names.
func (s *Signer) Parse(tokenString string) (models.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return models.Identity{UserID: c.Subject, Name: c.Name}, nil
}

// ── Handler ─────────────────────────────────────────────

type IdentityFunc func(r *http.Request) (models.Identity, bool)

type Handler struct {
	identity IdentityFunc
}

func NewHandler(identity IdentityFunc) *Handler {
	return &Handler{identity: identity}
}

type CurrentUserResponse struct {
	models.Identity
	DisplayName string `json:"display_name"`
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, CurrentUserResponse{Identity: id, DisplayName: id.DisplayName()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
