package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arifhossain/multimart-backend/internal/apperr"
	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

// Handler exposes category and product HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Post("/", h.createCategory)
		r.Get("/{slug}", h.getCategory)
		r.Put("/{slug}", h.updateCategory)
		r.Delete("/{slug}", h.deleteCategory)
	})
	router.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/status-choices", h.statusChoices)
		r.Get("/{slug}", h.getProduct)
		r.Put("/{slug}", h.updateProduct)
		r.Delete("/{slug}", h.deleteProduct)
	})
}

// ── Categories ────────────────────────────────────────────────────────────

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	caller := policy.CallerFromContext(r.Context())
	c, err := h.service.CreateCategory(r.Context(), caller, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	caller := policy.CallerFromContext(r.Context())
	c, err := h.service.UpdateCategory(r.Context(), caller, chi.URLParam(r, "slug"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	if err := h.service.DeleteCategory(r.Context(), caller, chi.URLParam(r, "slug")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Products ──────────────────────────────────────────────────────────────

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	views, err := h.service.ListProducts(r.Context(), caller,
		r.URL.Query().Get("category"), r.URL.Query().Get("vendor"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, views)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	caller := policy.CallerFromContext(r.Context())
	view, err := h.service.CreateProduct(r.Context(), caller, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, view)
}

func (h *Handler) statusChoices(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]interface{}{"choices": StatusChoices()})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	view, err := h.service.GetProduct(r.Context(), caller, chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	caller := policy.CallerFromContext(r.Context())
	view, err := h.service.UpdateProduct(r.Context(), caller, chi.URLParam(r, "slug"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	if err := h.service.DeleteProduct(r.Context(), caller, chi.URLParam(r, "slug")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, apperr.HTTPStatus(err), apperr.Payload(err))
}
