package handler

import (
	"net/http"

	"github.com/furnet/instance-server/internal/domain"
	"github.com/furnet/instance-server/internal/storage"
	"github.com/go-chi/chi/v5"
)

// ItemHandler handles the demo item endpoints.
type ItemHandler struct {
	store storage.Storage
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(store storage.Storage) *ItemHandler {
	return &ItemHandler{store: store}
}

// Create creates a new item.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, "name is required")
		return
	}

	item := &domain.Item{
		ID:          generateID(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.store.CreateItem(r.Context(), item); err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// List lists all items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListItems(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	if items == nil {
		items = []*domain.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Get gets an item by id.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.store.GetItem(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Delete deletes an item by id.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteItem(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}
