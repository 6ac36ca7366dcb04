package handlers

import (
	"log"
	"net/http"

	"optiroute/internal/api/dto"
	"optiroute/internal/ports"
)

// DeliveryHandler exposes stored-delivery retrieval and creation.
type DeliveryHandler struct {
	Repo ports.DeliveryRepository
}

func (h *DeliveryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *DeliveryHandler) list(w http.ResponseWriter, r *http.Request) {
	deliveries, err := h.Repo.ListDeliveries(r.Context())
	if err != nil {
		log.Printf("list deliveries failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDeliveriesResponse{
		Deliveries: make([]dto.DeliveryResponse, 0, len(deliveries)),
	}
	for _, d := range deliveries {
		res.Deliveries = append(res.Deliveries, dto.DeliveryResponse{
			ID:          d.ID,
			Name:        d.Name,
			Location:    d.Location,
			Load:        d.Load,
			Profit:      d.Profit,
			Priority:    d.Priority.String(),
			WindowStart: d.Window.Start,
			WindowEnd:   d.Window.End,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *DeliveryHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.DeliveryRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deliveries, err := toDomainDeliveries([]dto.DeliveryRequest{req})
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.SaveDelivery(r.Context(), deliveries[0]); err != nil {
		log.Printf("save delivery failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]string{"id": deliveries[0].ID})
}
