package dto

type ConstraintsRequest struct {
	Capacity  int     `json:"capacity"`
	TimeLimit float64 `json:"time_limit"`
}

type ScheduleRequest struct {
	Constraints ConstraintsRequest `json:"constraints"`
	Deliveries  []DeliveryRequest  `json:"deliveries"`
}

type ScheduledDeliveryResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Status       string  `json:"status"`
	ScheduledAt  float64 `json:"scheduled_at"`
	CompletionAt float64 `json:"completion_at"`
	Sequence     int     `json:"sequence"`
	ETA          string  `json:"eta,omitempty"`
}

type ScheduleResponse struct {
	Scheduled           []ScheduledDeliveryResponse `json:"scheduled"`
	Rejected            []ScheduledDeliveryResponse `json:"rejected"`
	TotalValue          float64                     `json:"total_value"`
	CapacityUsed        int                         `json:"capacity_used"`
	CapacityUtilization float64                     `json:"capacity_utilization"`
	Efficiency          float64                     `json:"efficiency"`
	AlgorithmUsed       string                      `json:"algorithm_used"`
}
