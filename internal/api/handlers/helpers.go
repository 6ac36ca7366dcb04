package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"optiroute/internal/api/dto"
	"optiroute/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeStrict parses a single JSON object into dst, rejecting unknown
// fields and trailing content.
func decodeStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("body must contain only one JSON object")
	}
	return nil
}

// requirePost guards mutation endpoints, writing the 405 itself.
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func toDomainDeliveries(reqs []dto.DeliveryRequest) ([]domain.Delivery, error) {
	deliveries := make([]domain.Delivery, 0, len(reqs))
	for i, req := range reqs {
		priority, err := domain.ParsePriority(req.Priority)
		if err != nil {
			return nil, fmt.Errorf("deliveries[%d]: %w", i, err)
		}

		d := domain.Delivery{
			ID:       req.ID,
			Name:     req.Name,
			Location: req.Location,
			Load:     req.Load,
			Profit:   req.Profit,
			Priority: priority,
			Window:   domain.TimeWindow{Start: req.WindowStart, End: req.WindowEnd},
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("deliveries[%d]: %w", i, err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

func toDomainCityMap(req dto.CityMapRequest) domain.CityMap {
	m := domain.CityMap{Graph: domain.Graph(req.Graph)}
	for _, loc := range req.Locations {
		m.Locations = append(m.Locations, domain.Location{
			ID:          loc.ID,
			Name:        loc.Name,
			Coordinates: domain.Coordinates{X: loc.X, Y: loc.Y},
		})
	}
	return m
}

func toStepResponses(steps []domain.RouteStep) []dto.RouteStepResponse {
	out := make([]dto.RouteStepResponse, 0, len(steps))
	for _, s := range steps {
		out = append(out, dto.RouteStepResponse{
			Seq:        s.Seq,
			Location:   s.Location,
			DeliveryID: s.DeliveryID,
			Distance:   s.Distance,
			ETA:        s.ETA,
			Load:       s.Load,
		})
	}
	return out
}

func toRouteResponse(result domain.RouteResult) dto.OptimizeRouteResponse {
	return dto.OptimizeRouteResponse{
		RouteID: result.RouteID,
		Path:    result.Path,
		Steps:   toStepResponses(result.Steps),
		Metrics: dto.RouteMetricsResponse{
			TotalDistance:       result.Metrics.TotalDistance,
			TotalTimeMinutes:    result.Metrics.TotalTimeMinutes,
			Deliveries:          result.Metrics.Deliveries,
			CapacityUsed:        result.Metrics.CapacityUsed,
			CapacityUtilization: result.Metrics.CapacityUtilization,
			Efficiency:          result.Metrics.Efficiency,
		},
		Algorithm:      result.Algorithm.String(),
		ExecutionMs:    float64(result.ExecutionTime.Microseconds()) / 1000,
		NodesExplored:  result.NodesExplored,
		Unreachable:    result.Unreachable,
		ImprovementPct: result.Improvement,
	}
}

func toScheduledResponses(items []domain.ScheduledDelivery) []dto.ScheduledDeliveryResponse {
	out := make([]dto.ScheduledDeliveryResponse, 0, len(items))
	for _, sd := range items {
		out = append(out, dto.ScheduledDeliveryResponse{
			ID:           sd.ID,
			Name:         sd.Name,
			Location:     sd.Location,
			Status:       string(sd.Status),
			ScheduledAt:  sd.ScheduledAt,
			CompletionAt: sd.CompletionAt,
			Sequence:     sd.Sequence,
			ETA:          sd.ETA,
		})
	}
	return out
}
