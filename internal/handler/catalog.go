package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// ListProducts returns the rental catalog, optionally filtered by category.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	products, err := h.products.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, products)
}

// GetProduct returns a single rental product.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	p, err := h.products.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, p)
}

// ListServices returns the repair/maintenance service catalog.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	services, err := h.services.List(r.Context())
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, services)
}

// GetService returns a single service offering.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s, err := h.services.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, s)
}
