package repository

import "github.com/lavapro/lavapro-api/internal/domain/entity"

// AppointmentRepository puerto de persistencia para citas.
type AppointmentRepository interface {
	Create(a *entity.Appointment, items []entity.AppointmentItem) error
	GetByID(tenantID, id string) (*entity.Appointment, error)
	// GetForUpdate bloquea la fila de la cita; sostiene la idempotencia de la
	// conversión (LinkedOrderID se decide bajo el lock).
	GetForUpdate(tenantID, id string) (*entity.Appointment, error)
	ListByTenant(tenantID string, status entity.AppointmentStatus, limit, offset int) ([]*entity.Appointment, error)
	UpdateStatus(tenantID, id string, status entity.AppointmentStatus, cancelReason string) error
	SetLinkedOrder(tenantID, id, orderID string) error
	ItemsByAppointment(appointmentID string) ([]entity.AppointmentItem, error)
}
