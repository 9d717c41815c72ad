package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arifhossain/multimart-backend/internal/apperr"
	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

// Handler exposes cart HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/carts", func(r chi.Router) {
		r.Get("/", h.listCarts)
		r.Get("/user", h.userCart)
		r.Post("/add", h.addItem)
		r.Delete("/remove/{id}", h.removeItem)
		r.Patch("/increment/{id}", h.incrementItem)
		r.Patch("/decrement/{id}", h.decrementItem)
	})
}

func (h *Handler) listCarts(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	views, err := h.service.ListCarts(r.Context(), caller)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, views)
}

func (h *Handler) userCart(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	view, err := h.service.GetUserCart(r.Context(), caller)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	caller := policy.CallerFromContext(r.Context())
	if _, err := h.service.AddItem(r.Context(), caller, req); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"message": "product added successfully"})
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	if err := h.service.RemoveItem(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) incrementItem(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	quantity, err := h.service.IncrementItem(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message":  "product quantity incremented successfully",
		"quantity": quantity,
	})
}

func (h *Handler) decrementItem(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	quantity, err := h.service.DecrementItem(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message":  "product quantity decremented successfully",
		"quantity": quantity,
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, apperr.HTTPStatus(err), apperr.Payload(err))
}
