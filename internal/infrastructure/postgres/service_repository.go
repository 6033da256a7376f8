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

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo implementación de ServiceRepository sobre PostgreSQL (usable con pool o tx).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

const serviceColumns = `id, tenant_id, name, price, estimated_minutes, created_at, updated_at`

// Create persiste un servicio y su receta de consumo.
func (r *ServiceRepo) Create(s *entity.Service, consumption []entity.ServiceConsumption) error {
	query := `
		INSERT INTO services (id, tenant_id, name, price, estimated_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.TenantID, s.Name, s.Price, s.EstimatedMinutes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return r.replaceConsumption(s.ID, consumption)
}

// GetByID obtiene un servicio del tenant.
func (r *ServiceRepo) GetByID(tenantID, id string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE tenant_id = $1 AND id = $2`
	var s entity.Service
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Price, &s.EstimatedMinutes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// GetByIDs resuelve varios servicios del tenant. IDs inexistentes no aparecen.
func (r *ServiceRepo) GetByIDs(tenantID string, ids []string) ([]*entity.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + serviceColumns + ` FROM services WHERE tenant_id = $1 AND id = ANY($2)`
	rows, err := r.q.Query(context.Background(), query, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("get services by ids: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Price, &s.EstimatedMinutes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListByTenant servicios del tenant con paginación.
func (r *ServiceRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Price, &s.EstimatedMinutes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza el servicio; si consumption no es nil reemplaza la receta.
// Las órdenes abiertas no se ven afectadas: llevan snapshot propio.
func (r *ServiceRepo) Update(s *entity.Service, consumption []entity.ServiceConsumption) error {
	query := `
		UPDATE services SET name = $3, price = $4, estimated_minutes = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		s.TenantID, s.ID, s.Name, s.Price, s.EstimatedMinutes, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if consumption == nil {
		return nil
	}
	return r.replaceConsumption(s.ID, consumption)
}

// Delete elimina el servicio y su receta.
func (r *ServiceRepo) Delete(tenantID, id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM service_consumption WHERE service_id = $1`, id); err != nil {
		return fmt.Errorf("delete service consumption: %w", err)
	}
	_, err := r.q.Exec(ctx, `DELETE FROM services WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

// ConsumptionByService receta vigente del servicio.
func (r *ServiceRepo) ConsumptionByService(serviceID string) ([]entity.ServiceConsumption, error) {
	query := `SELECT service_id, product_id, quantity FROM service_consumption WHERE service_id = $1`
	rows, err := r.q.Query(context.Background(), query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get consumption: %w", err)
	}
	defer rows.Close()
	var list []entity.ServiceConsumption
	for rows.Next() {
		var c entity.ServiceConsumption
		if err := rows.Scan(&c.ServiceID, &c.ProductID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// replaceConsumption reemplaza la receta completa del servicio.
func (r *ServiceRepo) replaceConsumption(serviceID string, consumption []entity.ServiceConsumption) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM service_consumption WHERE service_id = $1`, serviceID); err != nil {
		return fmt.Errorf("clear consumption: %w", err)
	}
	for _, c := range consumption {
		_, err := r.q.Exec(ctx,
			`INSERT INTO service_consumption (service_id, product_id, quantity) VALUES ($1, $2, $3)`,
			serviceID, c.ProductID, c.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert consumption: %w", err)
		}
	}
	return nil
}
