package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/loyalty"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes del tenant.
type CustomerUseCase struct {
	repo       repository.CustomerRepository
	tenantRepo repository.TenantRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, tenantRepo repository.TenantRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, tenantRepo: tenantRepo}
}

// cycleFor ciclo de carimbos del tenant para derivar el estado de fidelidad.
func (uc *CustomerUseCase) cycleFor(tenantID string) int {
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil || tenant == nil || tenant.StampCycle <= 0 {
		return loyalty.DefaultCycle
	}
	return tenant.StampCycle
}

// Create crea un cliente. Dedup por email o teléfono dentro del tenant.
func (uc *CustomerUseCase) Create(tenantID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.FindByEmailOrPhone(tenantID, in.Email, in.Phone)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        in.Name,
		Phone:       in.Phone,
		Email:       in.Email,
		MonthlyPlan: in.MonthlyPlan,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return uc.toResponse(customer), nil
}

// GetByID obtiene un cliente del tenant.
func (uc *CustomerUseCase) GetByID(tenantID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(customer), nil
}

// List lista clientes del tenant con paginación.
func (uc *CustomerUseCase) List(tenantID string, limit, offset int) (*dto.CustomerListResponse, error) {
	customers, err := uc.repo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Items: make([]*dto.CustomerResponse, 0, len(customers)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, c := range customers {
		out.Items = append(out.Items, uc.toResponse(c))
	}
	return out, nil
}

// Update edita datos del cliente. Los puntos no se tocan por acá: solo
// mediante los updates atómicos del programa de fidelidad.
func (uc *CustomerUseCase) Update(tenantID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.MonthlyPlan != nil {
		customer.MonthlyPlan = *in.MonthlyPlan
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return uc.toResponse(customer), nil
}

// Delete elimina un cliente. Falla con ErrConflict si sigue referenciado por
// órdenes o citas.
func (uc *CustomerUseCase) Delete(tenantID, id string) error {
	customer, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(tenantID, id)
}

func (uc *CustomerUseCase) toResponse(c *entity.Customer) *dto.CustomerResponse {
	cycle := uc.cycleFor(c.TenantID)
	return &dto.CustomerResponse{
		ID:            c.ID,
		TenantID:      c.TenantID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		MonthlyPlan:   c.MonthlyPlan,
		LoyaltyPoints: c.LoyaltyPoints,
		Carimbos:      loyalty.Carimbos(c.LoyaltyPoints, cycle),
		Rewards:       loyalty.Rewards(c.LoyaltyPoints, cycle),
	}
}
