package review

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/arifhossain/multimart-backend/internal/apperr"
	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

// Handler exposes review HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/reviews", func(r chi.Router) {
		r.Get("/", h.listUserReviews)
		r.Post("/", h.createReview)
		r.Get("/product/{slug}", h.listProductReviews)
		r.Get("/{id}", h.getReview)
		r.Put("/{id}", h.updateReview)
		r.Delete("/{id}", h.deleteReview)
	})
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	caller := policy.CallerFromContext(r.Context())
	rv, err := h.service.CreateReview(r.Context(), caller, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, rv)
}

func (h *Handler) listProductReviews(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	reviews, err := h.service.ListProductReviews(r.Context(), caller, chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, reviews)
}

func (h *Handler) listUserReviews(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	rating, _ := strconv.Atoi(r.URL.Query().Get("rating"))
	reviews, err := h.service.ListUserReviews(r.Context(), caller, r.URL.Query().Get("user_id"), rating)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, reviews)
}

func (h *Handler) getReview(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	rv, err := h.service.GetReview(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, rv)
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	caller := policy.CallerFromContext(r.Context())
	rv, err := h.service.UpdateReview(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, rv)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	caller := policy.CallerFromContext(r.Context())
	if err := h.service.DeleteReview(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
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
