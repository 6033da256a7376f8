package entity

import "time"

// Appointment representa una reserva hecha por el cliente final contra la
// vitrina pública de un operador. El cliente puede no existir aún como
// Customer del tenant: los datos de contacto y vehículo viven aquí como
// referencia hasta que la conversión los materializa.
type Appointment struct {
	ID            string
	TenantID      string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	VehiclePlate  string
	VehicleModel  string
	VehicleColor  string
	ScheduledAt   time.Time
	Status        AppointmentStatus
	CancelReason  string
	LinkedOrderID string // orden creada por la conversión; vacío hasta entonces
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AppointmentItem servicio solicitado en la reserva.
type AppointmentItem struct {
	ID            string
	AppointmentID string
	ServiceID     string
}
