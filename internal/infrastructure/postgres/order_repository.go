package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, tenant_id, sequential_code, customer_id, vehicle_id, status, observations,
		total, entered_at, estimated_ready_at, completed_at, linked_appointment_id, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.ServiceOrder, error) {
	var o entity.ServiceOrder
	var linkedAppt *string
	err := row.Scan(
		&o.ID, &o.TenantID, &o.SequentialCode, &o.CustomerID, &o.VehicleID, &o.Status, &o.Observations,
		&o.Total, &o.EnteredAt, &o.EstimatedReadyAt, &o.CompletedAt, &linkedAppt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if linkedAppt != nil {
		o.LinkedAppointmentID = *linkedAppt
	}
	return &o, nil
}

// Create persiste la orden y sus ítems (snapshot de precios).
func (r *OrderRepo) Create(o *entity.ServiceOrder, items []entity.OrderItem) error {
	ctx := context.Background()
	query := `
		INSERT INTO service_orders (id, tenant_id, sequential_code, customer_id, vehicle_id, status, observations,
			total, entered_at, estimated_ready_at, completed_at, linked_appointment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13, $14)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.TenantID, o.SequentialCode, o.CustomerID, o.VehicleID, o.Status, o.Observations,
		o.Total, o.EnteredAt, o.EstimatedReadyAt, o.CompletedAt, o.LinkedAppointmentID, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_items (id, order_id, service_id, service_name, price_snapshot) VALUES ($1, $2, $3, $4, $5)`,
			it.ID, it.OrderID, it.ServiceID, it.ServiceName, it.PriceSnapshot,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden del tenant. ID de otro tenant devuelve nil.
func (r *OrderRepo) GetByID(tenantID, id string) (*entity.ServiceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM service_orders WHERE tenant_id = $1 AND id = $2`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE). El
// estado leído bajo este lock es el "previo" autoritativo para decidir los
// checkpoints dentro de la misma tx que escribe el nuevo.
func (r *OrderRepo) GetForUpdate(tenantID, id string) (*entity.ServiceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM service_orders WHERE tenant_id = $1 AND id = $2 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// GetByAppointment obtiene la orden creada a partir de una cita.
func (r *OrderRepo) GetByAppointment(tenantID, appointmentID string) (*entity.ServiceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM service_orders WHERE tenant_id = $1 AND linked_appointment_id = $2`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, tenantID, appointmentID))
	if err != nil {
		return nil, fmt.Errorf("get order by appointment: %w", err)
	}
	return o, nil
}

// ListByTenant órdenes del tenant, filtro opcional por estado.
func (r *OrderRepo) ListByTenant(tenantID string, status entity.OrderStatus, limit, offset int) ([]*entity.ServiceOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM service_orders
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY sequential_code DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceOrder
	for rows.Next() {
		var o entity.ServiceOrder
		var linkedAppt *string
		if err := rows.Scan(
			&o.ID, &o.TenantID, &o.SequentialCode, &o.CustomerID, &o.VehicleID, &o.Status, &o.Observations,
			&o.Total, &o.EnteredAt, &o.EstimatedReadyAt, &o.CompletedAt, &linkedAppt, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if linkedAppt != nil {
			o.LinkedAppointmentID = *linkedAppt
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update escribe estado, observaciones y completed_at.
func (r *OrderRepo) Update(o *entity.ServiceOrder) error {
	query := `
		UPDATE service_orders SET status = $3, observations = $4, completed_at = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		o.TenantID, o.ID, o.Status, o.Observations, o.CompletedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// ItemsByOrder ítems de la orden con su snapshot de precio.
func (r *OrderRepo) ItemsByOrder(orderID string) ([]entity.OrderItem, error) {
	query := `SELECT id, order_id, service_id, service_name, price_snapshot FROM order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ServiceID, &it.ServiceName, &it.PriceSnapshot); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// NextSequentialCode consecutivo por tenant en UNA sola sentencia atómica
// sobre la fila contador. Jamás "leer max e insertar": dos creaciones
// concurrentes del mismo tenant recibirían el mismo código.
func (r *OrderRepo) NextSequentialCode(tenantID string) (int64, error) {
	query := `
		INSERT INTO order_counters (tenant_id, last_code)
		VALUES ($1, 1)
		ON CONFLICT (tenant_id)
		DO UPDATE SET last_code = order_counters.last_code + 1
		RETURNING last_code`
	var code int64
	if err := r.q.QueryRow(context.Background(), query, tenantID).Scan(&code); err != nil {
		return 0, fmt.Errorf("next sequential code: %w", err)
	}
	return code, nil
}
