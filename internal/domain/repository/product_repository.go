package repository

import (
	"github.com/shopspring/decimal"

	"github.com/lavapro/lavapro-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para insumos.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(tenantID, id string) (*entity.Product, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error)
	Update(p *entity.Product) error
	Delete(tenantID, id string) error
	// AdjustQuantity suma delta (negativo para descuento) en un solo UPDATE
	// atómico y devuelve la cantidad resultante. Puede quedar negativa.
	AdjustQuantity(tenantID, id string, delta decimal.Decimal) (decimal.Decimal, error)
	// ListBelowReorderPoint insumos en o bajo su punto de reposición.
	ListBelowReorderPoint(tenantID string) ([]*entity.Product, error)
}
