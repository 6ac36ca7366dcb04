package dto

type PlanCapacityRequest struct {
	Capacity   int               `json:"capacity"`
	Mode       string            `json:"mode"`
	Deliveries []DeliveryRequest `json:"deliveries"`
}

type SelectedItemResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Load     int     `json:"load"`
	Profit   float64 `json:"profit"`
	Fraction float64 `json:"fraction"`
}

type PlanCapacityResponse struct {
	Selected            []SelectedItemResponse `json:"selected"`
	TotalValue          float64                `json:"total_value"`
	TotalWeight         float64                `json:"total_weight"`
	RemainingCapacity   float64                `json:"remaining_capacity"`
	CapacityUtilization float64                `json:"capacity_utilization"`
	Mode                string                 `json:"mode"`
}
