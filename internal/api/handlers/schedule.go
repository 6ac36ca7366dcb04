package handlers

import (
	"net/http"

	"optiroute/internal/api/dto"
	"optiroute/internal/domain"
	"optiroute/internal/metrics"
	"optiroute/internal/services"
)

// ScheduleHandler exposes the adaptive delivery scheduling endpoint.
type ScheduleHandler struct {
	Tuning domain.Tuning
}

func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.ScheduleRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deliveries, err := toDomainDeliveries(req.Deliveries)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	constraints := domain.Constraints{
		Capacity:  req.Constraints.Capacity,
		TimeLimit: req.Constraints.TimeLimit,
	}

	result, err := services.ScheduleDeliveries(deliveries, constraints, h.Tuning)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	metrics.ScheduleRuns.WithLabelValues(string(result.AlgorithmUsed)).Inc()

	writeJSON(w, r, http.StatusOK, dto.ScheduleResponse{
		Scheduled:           toScheduledResponses(result.Scheduled),
		Rejected:            toScheduledResponses(result.Rejected),
		TotalValue:          result.TotalValue,
		CapacityUsed:        result.CapacityUsed,
		CapacityUtilization: result.CapacityUtilization,
		Efficiency:          result.Efficiency,
		AlgorithmUsed:       string(result.AlgorithmUsed),
	})
}
