package ports

import (
	"context"

	"optiroute/internal/domain"
)

// Port: a boundary for retrieving and storing Delivery entities.
type DeliveryRepository interface {
	// Retrieve all deliveries available for planning.
	ListDeliveries(ctx context.Context) ([]domain.Delivery, error)
	// Insert or replace a delivery.
	SaveDelivery(ctx context.Context, d domain.Delivery) error
}
