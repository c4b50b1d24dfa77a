package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/logger"
	"github.com/hieuluvjingliu/GardenBred/internal/session"
)

type userIDKey struct{}

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "sid"

// TokenResolver resolves session tokens to user ids
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

// AuthMiddleware authenticates every request through the session token and
// stores the user id on the request context. The token is accepted from an
// Authorization bearer header, the session cookie, or (for websocket
// clients, which cannot set headers) a query parameter.
func AuthMiddleware(sessions TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, ErrMsgNoSession)
				return
			}

			userID, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context()).Warn("Session resolution failed", "error", err)
				respondError(w, http.StatusUnauthorized, ErrMsgInvalidSession)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id set by AuthMiddleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}

func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.URL.Query().Get("token")
}

// mustUserID reads the authenticated user id, failing the request if the
// middleware did not run
func mustUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgNoSession)
		return 0, false
	}
	return userID, true
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=2,max=32"`
}

// LoginResponse returns the logged-in user and their session token
type LoginResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Coins    int64  `json:"coins"`
	Token    string `json:"token"`
}

// AuthHandler handles login requests
type AuthHandler struct {
	sessions *session.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login handles the login endpoint. First login creates the user with their
// starting coins and first floor; every login issues a fresh session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req LoginRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
		return
	}

	user, token, err := h.sessions.Login(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidUsername) {
			log.Warn("Login rejected", "username", req.Username, "error", err)
			respondError(w, http.StatusBadRequest, domain.ErrMsgInvalidUsername)
			return
		}
		respondServiceError(w, r, "Login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	log.Info("User logged in", "userID", user.ID, "username", user.Username)
	respondJSON(w, http.StatusOK, LoginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Coins:    user.Coins,
		Token:    token,
	})
}
