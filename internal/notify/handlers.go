package notify

import (
	"net/http"
	"strconv"

	"github.com/noah-isme/backend-shop/internal/common"
)

// Handler exposes the notification feed over HTTP.
type Handler struct {
	Feed *Feed
}

// List returns recent notifications, newest first. The optional limit query
// parameter caps the result.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Feed == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "notification feed not configured", nil)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid limit", nil)
			return
		}
		limit = parsed
	}
	common.JSONData(w, http.StatusOK, h.Feed.Recent(limit))
}
