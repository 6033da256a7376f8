package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// ServiceUseCase CRUD del catálogo de servicios con su receta de consumo.
type ServiceUseCase struct {
	repo        repository.ServiceRepository
	productRepo repository.ProductRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository, productRepo repository.ProductRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, productRepo: productRepo}
}

// Create crea un servicio. Cada línea de la receta debe apuntar a un insumo
// del mismo tenant.
func (uc *ServiceUseCase) Create(tenantID string, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) || in.EstimatedMinutes <= 0 {
		return nil, domain.ErrInvalidInput
	}
	consumption, err := uc.validateConsumption(tenantID, in.Consumption)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	svc := &entity.Service{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		Name:             in.Name,
		Price:            in.Price,
		EstimatedMinutes: in.EstimatedMinutes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for i := range consumption {
		consumption[i].ServiceID = svc.ID
	}
	if err := uc.repo.Create(svc, consumption); err != nil {
		return nil, err
	}
	return toServiceResponse(svc, consumption), nil
}

// GetByID obtiene un servicio con su receta.
func (uc *ServiceUseCase) GetByID(tenantID, id string) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	consumption, err := uc.repo.ConsumptionByService(svc.ID)
	if err != nil {
		return nil, err
	}
	return toServiceResponse(svc, consumption), nil
}

// List servicios del tenant.
func (uc *ServiceUseCase) List(tenantID string, limit, offset int) ([]*dto.ServiceResponse, error) {
	services, err := uc.repo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, toServiceResponse(s, nil))
	}
	return out, nil
}

// Update edita el servicio. Cambios de precio o receta NO afectan órdenes
// abiertas: el snapshot se tomó al crearlas.
func (uc *ServiceUseCase) Update(tenantID, id string, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		svc.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		svc.Price = *in.Price
	}
	if in.EstimatedMinutes != nil {
		if *in.EstimatedMinutes <= 0 {
			return nil, domain.ErrInvalidInput
		}
		svc.EstimatedMinutes = *in.EstimatedMinutes
	}
	var consumption []entity.ServiceConsumption
	if in.Consumption != nil {
		consumption, err = uc.validateConsumption(tenantID, in.Consumption)
		if err != nil {
			return nil, err
		}
		for i := range consumption {
			consumption[i].ServiceID = svc.ID
		}
	}
	svc.UpdatedAt = time.Now()
	if err := uc.repo.Update(svc, consumption); err != nil {
		return nil, err
	}
	return toServiceResponse(svc, consumption), nil
}

// Delete elimina el servicio del catálogo.
func (uc *ServiceUseCase) Delete(tenantID, id string) error {
	svc, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return err
	}
	if svc == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(tenantID, id)
}

func (uc *ServiceUseCase) validateConsumption(tenantID string, lines []dto.ConsumptionLine) ([]entity.ServiceConsumption, error) {
	out := make([]entity.ServiceConsumption, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(tenantID, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		out = append(out, entity.ServiceConsumption{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return out, nil
}

func toServiceResponse(s *entity.Service, consumption []entity.ServiceConsumption) *dto.ServiceResponse {
	resp := &dto.ServiceResponse{
		ID:               s.ID,
		TenantID:         s.TenantID,
		Name:             s.Name,
		Price:            s.Price,
		EstimatedMinutes: s.EstimatedMinutes,
	}
	for _, c := range consumption {
		resp.Consumption = append(resp.Consumption, dto.ConsumptionLine{
			ProductID: c.ProductID,
			Quantity:  c.Quantity,
		})
	}
	return resp
}
