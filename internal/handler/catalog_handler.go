package handler

import (
	"errors"
	"net/http"
	"strconv"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/logging"
	"fsanano/catalog-api/internal/model"
	"fsanano/catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	svc *service.CatalogService
	log logging.Logger
}

func NewCatalogHandler(svc *service.CatalogService, log logging.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log.With("component", "catalog")}
}

type AddProductRequest struct {
	Name     string    `json:"name"`
	Image    string    `json:"image"`
	Category string    `json:"category"`
	NewPrice flexFloat `json:"new_price"`
	OldPrice flexFloat `json:"old_price"`
}

type RemoveProductRequest struct {
	ID   *flexInt `json:"id"`
	Name string   `json:"name"`
}

func (h *CatalogHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req AddProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	p, err := h.svc.AddProduct(r.Context(), model.ProductInput{
		Name:     req.Name,
		Image:    req.Image,
		Category: req.Category,
		NewPrice: float64(req.NewPrice),
		OldPrice: float64(req.OldPrice),
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info(r.Context(), "product saved", "id", p.ID, "name", p.Name, "image", p.Image)

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Name: req.Name})
}

func (h *CatalogHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	var req RemoveProductRequest
	if err := decodeBody(r, &req); err != nil || req.ID == nil {
		writeBadBody(w)
		return
	}

	if err := h.svc.RemoveProduct(r.Context(), int(*req.ID)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info(r.Context(), "product removed", "id", int(*req.ID))

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Name: req.Name})
}

func (h *CatalogHandler) AllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info(r.Context(), "all products fetched", "count", len(products))
	writeJSON(w, http.StatusOK, products)
}

// GetProduct answers 404 both for unknown ids and for ids that are not
// integers, since neither can match a product.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Product not found"})
		return
	}
	h.log.Debug(r.Context(), "product lookup", "id", id)

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Product not found"})
			return
		}
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) NewCollections(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.NewCollection(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info(r.Context(), "new collection fetched", "count", len(products))
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) PopularInWomen(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.PopularInCategory(r.Context(), model.PopularCategory)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info(r.Context(), "popular in women fetched", "count", len(products))
	writeJSON(w, http.StatusOK, products)
}
