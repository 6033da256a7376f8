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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, tenant_id, name, phone, email, loyalty_points, monthly_plan, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.Email, &c.LoyaltyPoints, &c.MonthlyPlan, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, tenant_id, name, phone, email, loyalty_points, monthly_plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.TenantID, c.Name, c.Phone, c.Email, c.LoyaltyPoints, c.MonthlyPlan, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente del tenant. Un ID de otro tenant devuelve nil.
func (r *CustomerRepo) GetByID(tenantID, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1 AND id = $2`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// FindByEmailOrPhone busca por la clave natural de dedup: email O teléfono
// dentro del tenant. El email vacío no participa del match.
func (r *CustomerRepo) FindByEmailOrPhone(tenantID, email, phone string) (*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE tenant_id = $1 AND (($2 <> '' AND email = $2) OR phone = $3)
		ORDER BY created_at
		LIMIT 1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, tenantID, email, phone))
	if err != nil {
		return nil, fmt.Errorf("find customer by email/phone: %w", err)
	}
	return c, nil
}

// ListByTenant lista clientes del tenant con paginación.
func (r *CustomerRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.Email, &c.LoyaltyPoints, &c.MonthlyPlan, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza datos del cliente. No toca loyalty_points: el saldo solo
// muta vía AddPoints/RedeemPoints (updates atómicos).
func (r *CustomerRepo) Update(c *entity.Customer) error {
	query := `
		UPDATE customers SET name = $3, phone = $4, email = $5, monthly_plan = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		c.TenantID, c.ID, c.Name, c.Phone, c.Email, c.MonthlyPlan, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina el cliente; la FK de órdenes/citas bloquea el borrado si
// sigue referenciado.
func (r *CustomerRepo) Delete(tenantID, id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// AddPoints incremento atómico del saldo; devuelve el saldo resultante.
func (r *CustomerRepo) AddPoints(tenantID, id string, delta int) (int, error) {
	query := `
		UPDATE customers SET loyalty_points = loyalty_points + $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
		RETURNING loyalty_points`
	var points int
	err := r.q.QueryRow(context.Background(), query, tenantID, id, delta).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("add loyalty points: %w", err)
	}
	return points, nil
}

// RedeemPoints descuento condicional: solo si el saldo autoritativo alcanza n
// en el momento del update. Cero filas afectadas = puntos insuficientes (o el
// cliente dejó de existir; GetByID previo del caso de uso desambigua).
func (r *CustomerRepo) RedeemPoints(tenantID, id string, n int) (int, error) {
	query := `
		UPDATE customers SET loyalty_points = loyalty_points - $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2 AND loyalty_points >= $3
		RETURNING loyalty_points`
	var points int
	err := r.q.QueryRow(context.Background(), query, tenantID, id, n).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientPoints
		}
		return 0, fmt.Errorf("redeem loyalty points: %w", err)
	}
	return points, nil
}
