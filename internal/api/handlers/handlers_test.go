package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"optiroute/internal/api/dto"
	"optiroute/internal/domain"
	"optiroute/internal/ports"
)

type stubRepo struct {
	deliveries []domain.Delivery
	saveErr    error
}

func (s *stubRepo) ListDeliveries(context.Context) ([]domain.Delivery, error) {
	return s.deliveries, nil
}

func (s *stubRepo) SaveDelivery(_ context.Context, d domain.Delivery) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.deliveries = append(s.deliveries, d)
	return nil
}

type stubHistory struct {
	records []ports.RouteRecord
}

func (s *stubHistory) ListRoutes(_ context.Context, limit int) ([]ports.RouteRecord, error) {
	if limit > len(s.records) {
		limit = len(s.records)
	}
	return s.records[:limit], nil
}

func optimizeBody() string {
	return `{
		"source_location": "A",
		"algorithm": "dijkstra",
		"vehicle_capacity": 10,
		"city_map": {
			"graph": {"A": {"B": 1, "C": 4}, "B": {"C": 1, "D": 2}, "C": {"D": 1}, "D": {}},
			"locations": [
				{"id": "A", "x": 0, "y": 0},
				{"id": "B", "x": 1, "y": 0},
				{"id": "C", "x": 1, "y": 1},
				{"id": "D", "x": 2, "y": 1}
			]
		},
		"deliveries": [
			{"id": "d1", "name": "drop", "location": "D", "load": 5, "profit": 40, "priority": "High", "window_start": 0, "window_end": 24}
		]
	}`
}

func TestOptimizeHandler(t *testing.T) {
	h := &RouteHandler{Tuning: domain.DefaultTuning()}

	req := httptest.NewRequest(http.MethodPost, "/optimize-route", strings.NewReader(optimizeBody()))
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.OptimizeRouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Metrics.TotalDistance != 3 {
		t.Fatalf("total distance = %v, want 3", res.Metrics.TotalDistance)
	}
	if res.Algorithm != "dijkstra" {
		t.Fatalf("algorithm = %q", res.Algorithm)
	}
	if len(res.Steps) != 1 || res.Steps[0].DeliveryID != "d1" {
		t.Fatalf("steps = %+v", res.Steps)
	}
}

func TestOptimizeHandlerRejectsUnknownAlgorithm(t *testing.T) {
	h := &RouteHandler{Tuning: domain.DefaultTuning()}
	body := strings.Replace(optimizeBody(), `"dijkstra"`, `"warp"`, 1)

	req := httptest.NewRequest(http.MethodPost, "/optimize-route", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOptimizeHandlerRejectsUnknownFields(t *testing.T) {
	h := &RouteHandler{Tuning: domain.DefaultTuning()}

	req := httptest.NewRequest(http.MethodPost, "/optimize-route", strings.NewReader(`{"bogus": true}`))
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOptimizeHandlerMethodNotAllowed(t *testing.T) {
	h := &RouteHandler{Tuning: domain.DefaultTuning()}

	req := httptest.NewRequest(http.MethodGet, "/optimize-route", nil)
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow = %q, want POST", allow)
	}
}

func TestCapacityHandler(t *testing.T) {
	h := &CapacityHandler{}
	body := `{
		"capacity": 50,
		"mode": "01",
		"deliveries": [
			{"id": "d1", "location": "A", "load": 10, "profit": 60, "priority": "Normal", "window_end": 24},
			{"id": "d2", "location": "B", "load": 20, "profit": 100, "priority": "Normal", "window_end": 24},
			{"id": "d3", "location": "C", "load": 30, "profit": 120, "priority": "Normal", "window_end": 24}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/plan-capacity", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.PlanCapacityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.TotalValue != 220 {
		t.Fatalf("total value = %v, want 220", res.TotalValue)
	}
	if len(res.Selected) != 2 {
		t.Fatalf("selected = %+v", res.Selected)
	}
}

func TestCapacityHandlerRejectsBadCapacity(t *testing.T) {
	h := &CapacityHandler{}
	body := `{"capacity": 0, "mode": "01", "deliveries": []}`

	req := httptest.NewRequest(http.MethodPost, "/plan-capacity", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestScheduleHandler(t *testing.T) {
	h := &ScheduleHandler{Tuning: domain.DefaultTuning()}
	body := `{
		"constraints": {"capacity": 30, "time_limit": 8},
		"deliveries": [
			{"id": "d1", "location": "A", "load": 10, "profit": 60, "priority": "High", "window_end": 8},
			{"id": "d2", "location": "B", "load": 10, "profit": 40, "priority": "Low", "window_end": 8}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/schedule", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Schedule(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.ScheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.AlgorithmUsed != string(domain.ScheduleDP) {
		t.Fatalf("algorithm = %q, want dp for 2 deliveries", res.AlgorithmUsed)
	}
	if len(res.Scheduled) != 2 {
		t.Fatalf("scheduled = %+v", res.Scheduled)
	}
	if res.TotalValue != 100 {
		t.Fatalf("total value = %v, want 100", res.TotalValue)
	}
}

func TestDeliveryHandlerListAndCreate(t *testing.T) {
	repo := &stubRepo{}
	h := &DeliveryHandler{Repo: repo}

	body := `{"id": "d1", "name": "drop", "location": "A", "load": 5, "profit": 30, "priority": "Normal", "window_start": 0, "window_end": 8}`
	req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/deliveries", nil)
	rec = httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var res dto.ListDeliveriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Deliveries) != 1 || res.Deliveries[0].ID != "d1" {
		t.Fatalf("deliveries = %+v", res.Deliveries)
	}
	if res.Deliveries[0].Priority != "Normal" {
		t.Fatalf("priority = %q", res.Deliveries[0].Priority)
	}
}

func TestDeliveryHandlerRejectsBadPriority(t *testing.T) {
	h := &DeliveryHandler{Repo: &stubRepo{}}

	body := `{"id": "d1", "location": "A", "load": 5, "priority": "urgent", "window_end": 8}`
	req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHistoryHandler(t *testing.T) {
	history := &stubHistory{records: []ports.RouteRecord{
		{ID: "r1", Algorithm: "dijkstra", TotalDistance: 3, CreatedAt: time.Now()},
		{ID: "r2", Algorithm: "tsp", TotalDistance: 15, CreatedAt: time.Now()},
	}}
	h := &HistoryHandler{History: history}

	req := httptest.NewRequest(http.MethodGet, "/history?limit=1", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.ListRoutesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Routes) != 1 || res.Routes[0].ID != "r1" {
		t.Fatalf("routes = %+v", res.Routes)
	}
}

func TestHistoryHandlerLimitValidation(t *testing.T) {
	h := &HistoryHandler{History: &stubHistory{}}

	req := httptest.NewRequest(http.MethodGet, "/history?limit=0", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
