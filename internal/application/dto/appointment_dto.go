package dto

import "time"

// CreateAppointmentRequest reserva pública hecha por el cliente final.
type CreateAppointmentRequest struct {
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email"`
	VehiclePlate  string    `json:"vehicle_plate"`
	VehicleModel  string    `json:"vehicle_model"`
	VehicleColor  string    `json:"vehicle_color"`
	ServiceIDs    []string  `json:"service_ids"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

// PatchAppointmentRequest cambio de estado de la cita por el staff.
// Pasar a IN_PROGRESS dispara la conversión a orden de servicio.
type PatchAppointmentRequest struct {
	Status       string `json:"status"`
	CancelReason string `json:"cancel_reason"`
}

// AppointmentResponse cita con sus servicios solicitados.
type AppointmentResponse struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	VehiclePlate  string    `json:"vehicle_plate"`
	VehicleModel  string    `json:"vehicle_model"`
	VehicleColor  string    `json:"vehicle_color,omitempty"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	CancelReason  string    `json:"cancel_reason,omitempty"`
	LinkedOrderID string    `json:"linked_order_id,omitempty"`
	ServiceIDs    []string  `json:"service_ids"`
}

// AppointmentListResponse listado de citas.
type AppointmentListResponse struct {
	Items []*AppointmentResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
