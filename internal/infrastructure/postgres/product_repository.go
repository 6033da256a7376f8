package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, tenant_id, name, quantity, reorder_point, unit, created_at, updated_at`

// Create persiste un insumo nuevo.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, name, quantity, reorder_point, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.TenantID, p.Name, p.Quantity, p.ReorderPoint, p.Unit, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo del tenant.
func (r *ProductRepo) GetByID(tenantID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND id = $2`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Quantity, &p.ReorderPoint, &p.Unit, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByTenant insumos del tenant con paginación.
func (r *ProductRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Update actualiza nombre, unidad y punto de reposición. La cantidad solo
// muta vía AdjustQuantity.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET name = $3, reorder_point = $4, unit = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		p.TenantID, p.ID, p.Name, p.ReorderPoint, p.Unit, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina el insumo; la FK de recetas bloquea si sigue referenciado.
func (r *ProductRepo) Delete(tenantID, id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// AdjustQuantity ajuste atómico (`SET quantity = quantity + delta`), nunca
// leer-modificar-guardar: finalizaciones concurrentes que comparten un insumo
// no pierden updates. La cantidad puede quedar negativa (señal operativa).
func (r *ProductRepo) AdjustQuantity(tenantID, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE products SET quantity = quantity + $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
		RETURNING quantity`
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, tenantID, id, delta).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("adjust product quantity: %w", err)
	}
	return qty, nil
}

// ListBelowReorderPoint insumos en o bajo su punto de reposición.
func (r *ProductRepo) ListBelowReorderPoint(tenantID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND quantity <= reorder_point ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list products below reorder point: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.Quantity, &p.ReorderPoint, &p.Unit, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
