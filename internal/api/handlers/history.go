package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"optiroute/internal/api/dto"
	"optiroute/internal/ports"
)

// HistoryHandler serves persisted routes from the database and the
// most recent results from the cache.
type HistoryHandler struct {
	History ports.RouteHistory
	Cache   ports.RouteCache
}

// List returns persisted routes, newest first. ?limit=n caps the page.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.History == nil {
		writeError(w, r, http.StatusNotFound, "route history not configured")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	records, err := h.History.ListRoutes(r.Context(), limit)
	if err != nil {
		log.Printf("list routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteRecordResponse, 0, len(records))}
	for _, rec := range records {
		res.Routes = append(res.Routes, dto.RouteRecordResponse{
			ID:            rec.ID,
			Steps:         toStepResponses(rec.Steps),
			TotalDistance: rec.TotalDistance,
			Algorithm:     rec.Algorithm,
			ExecutionMs:   rec.ExecutionMs,
			CapacityUsed:  rec.CapacityUsed,
			Efficiency:    rec.Efficiency,
			CreatedAt:     rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Recent returns the latest computed routes from the cache without
// touching the database. Unavailable when no cache is configured.
func (h *HistoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.Cache == nil {
		writeError(w, r, http.StatusNotFound, "recent route cache not configured")
		return
	}

	results, err := h.Cache.RecentRoutes(r.Context(), 10)
	if err != nil {
		log.Printf("recent routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.RecentRoutesResponse{Routes: make([]dto.OptimizeRouteResponse, 0, len(results))}
	for _, result := range results {
		res.Routes = append(res.Routes, toRouteResponse(result))
	}

	writeJSON(w, r, http.StatusOK, res)
}
