package handler

import (
	"errors"
	"net/http"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/logging"
	"fsanano/catalog-api/internal/service"
)

type AccountHandler struct {
	svc *service.AccountService
	log logging.Logger
}

func NewAccountHandler(svc *service.AccountService, log logging.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, log: log.With("component", "account")}
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	token, err := h.svc.Signup(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, resultResponse{Errors: "Existing user found with same email address"})
		return
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, resultResponse{Errors: err.Error()})
		return
	default:
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info(r.Context(), "user registered", "email", req.Email)

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Token: token})
}

// Login reports bad credentials with success=false and a 200 status.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeJSON(w, http.StatusOK, resultResponse{Errors: err.Error()})
			return
		}
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Token: token})
}
