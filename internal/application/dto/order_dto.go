package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest creación directa de orden por el staff (sin cita).
type CreateOrderRequest struct {
	CustomerID   string   `json:"customer_id"`
	VehicleID    string   `json:"vehicle_id"`
	ServiceIDs   []string `json:"service_ids"`
	Observations string   `json:"observations"`
}

// UpdateOrderStatusRequest patch de estado desde el Kanban. Observations
// persiste aunque el estado no cambie (el patch repetido es no-op solo para
// los efectos de checkpoint).
type UpdateOrderStatusRequest struct {
	Status       string  `json:"status"`
	Observations *string `json:"observations"`
}

// OrderItemResponse línea de la orden con precio congelado.
type OrderItemResponse struct {
	ServiceID     string          `json:"service_id"`
	ServiceName   string          `json:"service_name"`
	PriceSnapshot decimal.Decimal `json:"price_snapshot"`
}

// OrderResponse orden de servicio.
type OrderResponse struct {
	ID                  string              `json:"id"`
	TenantID            string              `json:"tenant_id"`
	SequentialCode      int64               `json:"sequential_code"`
	CustomerID          string              `json:"customer_id"`
	VehicleID           string              `json:"vehicle_id"`
	Status              string              `json:"status"`
	Observations        string              `json:"observations,omitempty"`
	Total               decimal.Decimal     `json:"total"`
	EnteredAt           time.Time           `json:"entered_at"`
	EstimatedReadyAt    *time.Time          `json:"estimated_ready_at,omitempty"`
	CompletedAt         *time.Time          `json:"completed_at,omitempty"`
	LinkedAppointmentID string              `json:"linked_appointment_id,omitempty"`
	Items               []OrderItemResponse `json:"items,omitempty"`
}

// OrderListResponse listado paginado de órdenes.
type OrderListResponse struct {
	Items []*OrderResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
