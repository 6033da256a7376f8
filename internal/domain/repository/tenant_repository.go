package repository

import "github.com/lavapro/lavapro-api/internal/domain/entity"

// TenantRepository puerto de persistencia para operadores.
type TenantRepository interface {
	Create(t *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	GetBySlug(slug string) (*entity.Tenant, error)
	ListActive() ([]*entity.Tenant, error)
	Update(t *entity.Tenant) error
}
