package handler

import (
	"net/http"

	"github.com/furnet/instance-server/internal/domain"
	"github.com/furnet/instance-server/internal/service"
)

// FriendHandler handles the friend directory endpoints.
type FriendHandler struct {
	friends *service.FriendService
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(friends *service.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// Create registers a friend from caller-supplied peer data (POST /friends).
func (h *FriendHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateFriendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, "invalid request body")
		return
	}

	link, err := h.friends.RegisterFriendDirect(r.Context(), req.UniqueID, req.DNSName, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, link)
}

// Add registers a friend by its public instance URL (POST /friends/add).
// The peer's identity is fetched and validated before the link commits.
func (h *FriendHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.AddFriendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, "invalid request body")
		return
	}
	if req.InstanceURL == "" {
		respondError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, "instance_url is required")
		return
	}

	link, err := h.friends.RegisterFriend(r.Context(), req.InstanceURL)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, link)
}

// List returns all friend links (GET /friends).
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	friends, err := h.friends.ListFriends(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	// An empty directory serializes as [], not null.
	if friends == nil {
		friends = []*domain.FriendLink{}
	}
	respondJSON(w, http.StatusOK, friends)
}
