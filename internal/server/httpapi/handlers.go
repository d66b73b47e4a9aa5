// Package httpapi is the JSON boundary in front of the authentication core.
// It validates request shapes, maps service outcomes onto status codes, and
// never leaks which check failed a login.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sbperudesarrollo/authbase/internal/common"
	"github.com/sbperudesarrollo/authbase/internal/logging"
	"github.com/sbperudesarrollo/authbase/internal/server/services"
)

// Rotation length bounds enforced before the request reaches the core.
const (
	minPasswordLength = 8
	maxPasswordLength = 64
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type generatePasswordRequest struct {
	UserID int64 `json:"userId"`
	Length int   `json:"length"`
}

// Handler owns the auth endpoints.
type Handler struct {
	auth      *services.AuthService
	passwords *services.PasswordService
	logger    logging.Logger
}

func NewHandler(auth *services.AuthService, passwords *services.PasswordService, logger logging.Logger) *Handler {
	return &Handler{
		auth:      auth,
		passwords: passwords,
		logger:    logger.With("module", "http_api"),
	}
}

// Register attaches the auth routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/auth/password", h.handleGeneratePassword)
	mux.HandleFunc("/healthz", h.handleHealth)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	validationErrors := map[string][]string{}
	if strings.TrimSpace(req.Username) == "" {
		validationErrors["username"] = []string{"Username is required."}
	}
	if strings.TrimSpace(req.Password) == "" {
		validationErrors["password"] = []string{"Password is required."}
	}
	if len(validationErrors) > 0 {
		writeValidationProblem(w, validationErrors)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, context.Canceled):
			// Client is gone; nothing useful to write.
		case errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusGatewayTimeout, "request timed out")
		default:
			h.logger.Error(r.Context(), "login failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGeneratePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req generatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	validationErrors := map[string][]string{}
	if req.UserID <= 0 {
		validationErrors["userId"] = []string{"UserId must be greater than zero."}
	}
	if req.Length < minPasswordLength || req.Length > maxPasswordLength {
		validationErrors["length"] = []string{"Length must be between 8 and 64."}
	}
	if len(validationErrors) > 0 {
		writeValidationProblem(w, validationErrors)
		return
	}

	result, err := h.passwords.Rotate(r.Context(), req.UserID, req.Length)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrUpdateConflict):
			writeError(w, http.StatusNotFound, "User not found or password could not be updated")
		case errors.Is(err, context.Canceled):
		case errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusGatewayTimeout, "request timed out")
		default:
			h.logger.Error(r.Context(), "password rotation failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
