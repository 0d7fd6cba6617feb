package handler

import (
	"context"
	"errors"
	"net/http"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/logging"
	"fsanano/catalog-api/internal/service"
)

type CartHandler struct {
	svc *service.CartService
	log logging.Logger
}

func NewCartHandler(svc *service.CartService, log logging.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log.With("component", "cart")}
}

type CartRequest struct {
	ItemID *flexInt `json:"itemId"`
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.svc.AddToCart, "Product added to cart")
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.svc.RemoveFromCart, "Product removed from cart")
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	cart, err := h.svc.GetCart(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) update(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID string, slot int) error, message string) {
	var req CartRequest
	if err := decodeBody(r, &req); err != nil || req.ItemID == nil {
		writeBadBody(w)
		return
	}
	userID, _ := UserIDFromContext(r.Context())
	slot := int(*req.ItemID)

	if err := op(r.Context(), userID, slot); err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info(r.Context(), message, "item_id", slot)

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: message})
}

func (h *CartHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidSlot):
		writeJSON(w, http.StatusBadRequest, resultResponse{Errors: "invalid item slot"})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, resultResponse{Errors: "user not found"})
	default:
		writeError(w, r, h.log, err)
	}
}
