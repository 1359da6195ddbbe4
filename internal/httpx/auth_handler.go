package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/auth"
)

// AuthHandler serves registration, login and profile management.
type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register creates an account and returns it with a fresh token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	u, token, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailInUse) {
			writeError(w, http.StatusBadRequest, "email already in use")
			return
		}
		h.internalError(w, r, "register failed", err)
		return
	}

	writeMessage(w, http.StatusCreated, "account created", map[string]any{
		"user":  u,
		"token": token,
	})
}

// Login verifies credentials and returns the account with a fresh token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	u, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.internalError(w, r, "login failed", err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"user":  u,
		"token": token,
	})
}

// Profile returns the authenticated account.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	u, err := h.svc.Profile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.internalError(w, r, "profile lookup failed", err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{"user": u})
}

// UpdateProfile changes name and/or email; omitted fields stay untouched.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), claims.UserID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailInUse):
			writeError(w, http.StatusBadRequest, "email already in use")
		case errors.Is(err, auth.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			h.internalError(w, r, "profile update failed", err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "profile updated", map[string]any{"user": u})
}

// Logout acknowledges the client-side token discard. Tokens are stateless,
// so there is nothing to revoke server-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
