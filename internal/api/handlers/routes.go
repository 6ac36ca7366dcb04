package handlers

import (
	"log"
	"net/http"

	"optiroute/internal/api/dto"
	"optiroute/internal/domain"
	"optiroute/internal/metrics"
	"optiroute/internal/ports"
	"optiroute/internal/services"
)

// RouteHandler exposes the route optimization endpoint. Sink and Cache
// are optional; without them routes are computed but not persisted.
type RouteHandler struct {
	Sink   ports.RouteSink
	Cache  ports.RouteCache
	Tuning domain.Tuning
}

// Optimize runs the configured solver over the submitted city map and
// deliveries.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.OptimizeRouteRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	algorithm, err := domain.ParseAlgorithm(req.Algorithm)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deliveries, err := toDomainDeliveries(req.Deliveries)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cfg := domain.RouteConfig{
		SourceLocation:  req.SourceLocation,
		Algorithm:       algorithm,
		VehicleCapacity: req.VehicleCapacity,
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := services.OptimizeRoute(r.Context(), cfg, deliveries, toDomainCityMap(req.CityMap), h.Sink, h.Tuning)
	if err != nil {
		metrics.SolverRuns.WithLabelValues(algorithm.String(), "error").Inc()
		if services.IsInvalidInput(err) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("optimize route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.SolverRuns.WithLabelValues(algorithm.String(), "ok").Inc()
	metrics.SolverDuration.WithLabelValues(algorithm.String()).
		Observe(float64(result.ExecutionTime.Microseconds()) / 1000)

	if h.Cache != nil {
		if err := h.Cache.PushRoute(r.Context(), result); err != nil {
			log.Printf("route cache push failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(result))
}
