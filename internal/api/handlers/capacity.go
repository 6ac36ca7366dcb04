package handlers

import (
	"net/http"

	"optiroute/internal/api/dto"
	"optiroute/internal/domain"
	"optiroute/internal/services"
)

// CapacityHandler exposes the vehicle capacity planning endpoint.
type CapacityHandler struct{}

func (h *CapacityHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.PlanCapacityRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	mode, err := domain.ParseSelectionMode(req.Mode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deliveries, err := toDomainDeliveries(req.Deliveries)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := services.PlanCapacity(deliveries, req.Capacity, mode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	selected := make([]dto.SelectedItemResponse, 0, len(result.Selected))
	for _, item := range result.Selected {
		selected = append(selected, dto.SelectedItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Load:     item.Load,
			Profit:   item.Profit,
			Fraction: item.Fraction,
		})
	}

	writeJSON(w, r, http.StatusOK, dto.PlanCapacityResponse{
		Selected:            selected,
		TotalValue:          result.TotalValue,
		TotalWeight:         result.TotalWeight,
		RemainingCapacity:   result.RemainingCapacity,
		CapacityUtilization: result.CapacityUtilization,
		Mode:                string(result.Mode),
	})
}
