package dto

type LocationRequest struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type CityMapRequest struct {
	Graph     map[string]map[string]float64 `json:"graph"`
	Locations []LocationRequest             `json:"locations"`
}

type DeliveryRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Load        int     `json:"load"`
	Profit      float64 `json:"profit"`
	Priority    string  `json:"priority"`
	WindowStart float64 `json:"window_start"`
	WindowEnd   float64 `json:"window_end"`
}

type OptimizeRouteRequest struct {
	SourceLocation  string            `json:"source_location"`
	Algorithm       string            `json:"algorithm"`
	VehicleCapacity int               `json:"vehicle_capacity"`
	CityMap         CityMapRequest    `json:"city_map"`
	Deliveries      []DeliveryRequest `json:"deliveries"`
}

type RouteStepResponse struct {
	Seq        int     `json:"seq"`
	Location   string  `json:"location"`
	DeliveryID string  `json:"delivery_id"`
	Distance   float64 `json:"distance"`
	ETA        string  `json:"eta"`
	Load       int     `json:"load"`
}

type RouteMetricsResponse struct {
	TotalDistance       float64 `json:"total_distance"`
	TotalTimeMinutes    int     `json:"total_time_minutes"`
	Deliveries          int     `json:"deliveries"`
	CapacityUsed        int     `json:"capacity_used"`
	CapacityUtilization float64 `json:"capacity_utilization"`
	Efficiency          float64 `json:"efficiency"`
}

type OptimizeRouteResponse struct {
	RouteID        string               `json:"route_id,omitempty"`
	Path           []string             `json:"path"`
	Steps          []RouteStepResponse  `json:"steps"`
	Metrics        RouteMetricsResponse `json:"metrics"`
	Algorithm      string               `json:"algorithm"`
	ExecutionMs    float64              `json:"execution_ms"`
	NodesExplored  int                  `json:"nodes_explored"`
	Unreachable    int                  `json:"unreachable"`
	ImprovementPct float64              `json:"improvement_pct"`
}

type RouteRecordResponse struct {
	ID            string              `json:"id"`
	Steps         []RouteStepResponse `json:"steps"`
	TotalDistance float64             `json:"total_distance"`
	Algorithm     string              `json:"algorithm"`
	ExecutionMs   float64             `json:"execution_ms"`
	CapacityUsed  int                 `json:"capacity_used"`
	Efficiency    float64             `json:"efficiency"`
	CreatedAt     string              `json:"created_at"`
}

type ListRoutesResponse struct {
	Routes []RouteRecordResponse `json:"routes"`
}

type RecentRoutesResponse struct {
	Routes []OptimizeRouteResponse `json:"routes"`
}
