package handler

import (
	"net/http"

	"github.com/furnet/instance-server/internal/config"
	"github.com/furnet/instance-server/internal/domain"
	"github.com/furnet/instance-server/internal/netid"
)

// IdentityHandler serves this instance's own animal identity.
type IdentityHandler struct {
	cfg *config.Config
}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler(cfg *config.Config) *IdentityHandler {
	return &IdentityHandler{cfg: cfg}
}

// Get returns the local identity, rebuilt from static configuration on
// every request.
func (h *IdentityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := netid.GenerateAnimalID(h.cfg.Instance.InstanceURL, h.cfg.Animal.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	animal := &domain.Animal{
		ID:          id,
		Name:        h.cfg.Animal.Name,
		Species:     h.cfg.Animal.Species,
		Description: h.cfg.Animal.Description,
		InstanceURL: h.cfg.Instance.InstanceURL,
		Habitat:     h.cfg.Animal.Habitat,
		Diet:        h.cfg.Animal.Diet,
		FunFact:     h.cfg.Animal.FunFact,
		Emoji:       h.cfg.Animal.Emoji,
		Color:       h.cfg.Animal.Color,
	}

	respondJSON(w, http.StatusOK, animal)
}
