package repository

import "github.com/lavapro/lavapro-api/internal/domain/entity"

// ServiceRepository puerto de persistencia para el catálogo de servicios.
type ServiceRepository interface {
	Create(s *entity.Service, consumption []entity.ServiceConsumption) error
	GetByID(tenantID, id string) (*entity.Service, error)
	// GetByIDs resuelve varios servicios del tenant; los IDs que no existen
	// simplemente no aparecen en el resultado.
	GetByIDs(tenantID string, ids []string) ([]*entity.Service, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Service, error)
	Update(s *entity.Service, consumption []entity.ServiceConsumption) error
	Delete(tenantID, id string) error
	// ConsumptionByService receta vigente del servicio. Se lee al momento de
	// aplicar el consumo, no desde el snapshot de la orden: la receta es dato
	// operativo, no de precio.
	ConsumptionByService(serviceID string) ([]entity.ServiceConsumption, error)
}
