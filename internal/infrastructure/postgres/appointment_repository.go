package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	q Querier
}

func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

const appointmentColumns = `id, tenant_id, customer_name, customer_phone, customer_email,
		vehicle_plate, vehicle_model, vehicle_color, scheduled_at, status, cancel_reason,
		linked_order_id, created_at, updated_at`

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	var linkedOrder *string
	err := row.Scan(
		&a.ID, &a.TenantID, &a.CustomerName, &a.CustomerPhone, &a.CustomerEmail,
		&a.VehiclePlate, &a.VehicleModel, &a.VehicleColor, &a.ScheduledAt, &a.Status, &a.CancelReason,
		&linkedOrder, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if linkedOrder != nil {
		a.LinkedOrderID = *linkedOrder
	}
	return &a, nil
}

// Create persiste la cita y sus servicios solicitados.
func (r *AppointmentRepo) Create(a *entity.Appointment, items []entity.AppointmentItem) error {
	ctx := context.Background()
	query := `
		INSERT INTO appointments (id, tenant_id, customer_name, customer_phone, customer_email,
			vehicle_plate, vehicle_model, vehicle_color, scheduled_at, status, cancel_reason,
			linked_order_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13, $14)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TenantID, a.CustomerName, a.CustomerPhone, a.CustomerEmail,
		a.VehiclePlate, a.VehicleModel, a.VehicleColor, a.ScheduledAt, a.Status, a.CancelReason,
		a.LinkedOrderID, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO appointment_items (id, appointment_id, service_id) VALUES ($1, $2, $3)`,
			it.ID, it.AppointmentID, it.ServiceID,
		)
		if err != nil {
			return fmt.Errorf("insert appointment item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la cita del tenant. ID de otro tenant devuelve nil.
func (r *AppointmentRepo) GetByID(tenantID, id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE tenant_id = $1 AND id = $2`
	a, err := scanAppointment(r.q.QueryRow(context.Background(), query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

// GetForUpdate obtiene la cita con bloqueo de fila. La conversión a orden
// decide sobre linked_order_id bajo este lock para garantizar idempotencia.
func (r *AppointmentRepo) GetForUpdate(tenantID, id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE tenant_id = $1 AND id = $2 FOR UPDATE`
	a, err := scanAppointment(r.q.QueryRow(context.Background(), query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("get appointment for update: %w", err)
	}
	return a, nil
}

// ListByTenant citas del tenant, filtro opcional por estado.
func (r *AppointmentRepo) ListByTenant(tenantID string, status entity.AppointmentStatus, limit, offset int) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY scheduled_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		var linkedOrder *string
		if err := rows.Scan(
			&a.ID, &a.TenantID, &a.CustomerName, &a.CustomerPhone, &a.CustomerEmail,
			&a.VehiclePlate, &a.VehicleModel, &a.VehicleColor, &a.ScheduledAt, &a.Status, &a.CancelReason,
			&linkedOrder, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		if linkedOrder != nil {
			a.LinkedOrderID = *linkedOrder
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// UpdateStatus escribe estado y motivo de cancelación.
func (r *AppointmentRepo) UpdateStatus(tenantID, id string, status entity.AppointmentStatus, cancelReason string) error {
	query := `
		UPDATE appointments SET status = $3, cancel_reason = $4, updated_at = $5
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, tenantID, id, status, cancelReason, time.Now())
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return nil
}

// SetLinkedOrder vincula la orden generada con la cita que la originó.
func (r *AppointmentRepo) SetLinkedOrder(tenantID, id, orderID string) error {
	query := `
		UPDATE appointments SET linked_order_id = $3, updated_at = $4
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, tenantID, id, orderID, time.Now())
	if err != nil {
		return fmt.Errorf("set linked order: %w", err)
	}
	return nil
}

// ItemsByAppointment servicios solicitados en la cita.
func (r *AppointmentRepo) ItemsByAppointment(appointmentID string) ([]entity.AppointmentItem, error) {
	query := `SELECT id, appointment_id, service_id FROM appointment_items WHERE appointment_id = $1`
	rows, err := r.q.Query(context.Background(), query, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("list appointment items: %w", err)
	}
	defer rows.Close()
	var list []entity.AppointmentItem
	for rows.Next() {
		var it entity.AppointmentItem
		if err := rows.Scan(&it.ID, &it.AppointmentID, &it.ServiceID); err != nil {
			return nil, fmt.Errorf("scan appointment item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
