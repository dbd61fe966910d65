package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/internal/mockserver/service"
	"github.com/hungrynow/hungrynow/pkg/httputil"
	"github.com/hungrynow/hungrynow/pkg/middleware"
)

// UserHandler handles HTTP requests for profile and address endpoints.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetProfile(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, user, "")
}

// UpdateProfile handles PUT /api/users/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfilePatch
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, user, "Profile updated")
}

// ChangePassword handles POST /api/users/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordChange
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.users.ChangePassword(r.Context(), middleware.UserIDFromContext(r.Context()), req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, nil, service.MsgPasswordChanged)
}

// VerifyPhone handles POST /api/users/verify-phone
func (h *UserHandler) VerifyPhone(w http.ResponseWriter, r *http.Request) {
	var req domain.PhoneVerification
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.users.VerifyPhone(r.Context(), middleware.UserIDFromContext(r.Context()), req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, nil, service.MsgPhoneVerified)
}

// ListAddresses handles GET /api/addresses
func (h *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.users.ListAddresses(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, addresses, "")
}

// AddAddress handles POST /api/addresses
func (h *UserHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var req domain.Address
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	address, err := h.users.AddAddress(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, address, "Address added")
}

// UpdateAddress handles PUT /api/addresses/{id}
func (h *UserHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, "address", chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req domain.AddressPatch
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	address, err := h.users.UpdateAddress(r.Context(), middleware.UserIDFromContext(r.Context()), id.String(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, address, "Address updated")
}

// DeleteAddress handles DELETE /api/addresses/{id}
func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, "address", chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := h.users.DeleteAddress(r.Context(), middleware.UserIDFromContext(r.Context()), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, nil, "Address deleted")
}
