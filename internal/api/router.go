package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"optiroute/internal/api/handlers"
	"optiroute/internal/domain"
	"optiroute/internal/metrics"
	"optiroute/internal/ports"
)

// Deps carries the concrete adapters the router wires behind ports.
// Sink, History, and Cache may be nil; the affected endpoints degrade
// instead of the whole server refusing to start.
type Deps struct {
	Repo    ports.DeliveryRepository
	Sink    ports.RouteSink
	History ports.RouteHistory
	Cache   ports.RouteCache
	Tuning  domain.Tuning
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	metrics.RegisterDefault()
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Sink: deps.Sink, Cache: deps.Cache, Tuning: deps.Tuning}
	capacityHandler := &handlers.CapacityHandler{}
	scheduleHandler := &handlers.ScheduleHandler{Tuning: deps.Tuning}
	deliveryHandler := &handlers.DeliveryHandler{Repo: deps.Repo}
	historyHandler := &handlers.HistoryHandler{History: deps.History, Cache: deps.Cache}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/optimize-route", routeHandler.Optimize)
	mux.HandleFunc("/plan-capacity", capacityHandler.Plan)
	mux.HandleFunc("/schedule", scheduleHandler.Schedule)
	mux.HandleFunc("/deliveries", deliveryHandler.Handle)
	mux.HandleFunc("/history", historyHandler.List)
	mux.HandleFunc("/recent", historyHandler.Recent)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
