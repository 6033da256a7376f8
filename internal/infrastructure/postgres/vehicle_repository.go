package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación de VehicleRepository sobre PostgreSQL (usable con pool o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

const vehicleColumns = `id, tenant_id, customer_id, plate, model, color, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(&v.ID, &v.TenantID, &v.CustomerID, &v.Plate, &v.Model, &v.Color, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// Create persiste un vehículo nuevo. Placa única por tenant.
func (r *VehicleRepo) Create(v *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, tenant_id, customer_id, plate, model, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.TenantID, v.CustomerID, v.Plate, v.Model, v.Color, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo del tenant.
func (r *VehicleRepo) GetByID(tenantID, id string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE tenant_id = $1 AND id = $2`
	v, err := scanVehicle(r.q.QueryRow(context.Background(), query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// GetByPlate obtiene un vehículo por placa dentro del tenant (clave de dedup).
func (r *VehicleRepo) GetByPlate(tenantID, plate string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE tenant_id = $1 AND plate = $2`
	v, err := scanVehicle(r.q.QueryRow(context.Background(), query, tenantID, plate))
	if err != nil {
		return nil, fmt.Errorf("get vehicle by plate: %w", err)
	}
	return v, nil
}

// ListByCustomer vehículos de un cliente del tenant.
func (r *VehicleRepo) ListByCustomer(tenantID, customerID string) ([]*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE tenant_id = $1 AND customer_id = $2 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.TenantID, &v.CustomerID, &v.Plate, &v.Model, &v.Color, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update actualiza modelo y color.
func (r *VehicleRepo) Update(v *entity.Vehicle) error {
	query := `
		UPDATE vehicles SET model = $3, color = $4, updated_at = $5
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, v.TenantID, v.ID, v.Model, v.Color, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// Delete elimina el vehículo; la FK de órdenes bloquea si sigue referenciado.
func (r *VehicleRepo) Delete(tenantID, id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM vehicles WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}
