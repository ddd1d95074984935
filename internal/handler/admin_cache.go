package handler

import (
	"net/http"

	"github.com/osse101/BoxLedger_Go/internal/lootbox"
)

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	boxService lootbox.Service
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(boxService lootbox.Service) *AdminCacheHandler {
	return &AdminCacheHandler{
		boxService: boxService,
	}
}

// HandleGetCacheStats returns current reward cache statistics
// @Summary Get reward cache stats
// @Description Returns cache hit/miss statistics for monitoring (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} lootbox.CacheStats
// @Router /api/v1/admin/cache/stats [get]
// @Security ApiKeyAuth
func (h *AdminCacheHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.boxService.GetCacheStats())
}
