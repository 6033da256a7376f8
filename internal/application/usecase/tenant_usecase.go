package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// TenantUseCase alta y configuración de operadores.
type TenantUseCase struct {
	repo repository.TenantRepository
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo}
}

// Create signup de un operador nuevo. Slug único (vitrina pública).
func (uc *TenantUseCase) Create(in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if in.Name == "" || in.Slug == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySlug(in.Slug)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	tenant := &entity.Tenant{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Slug:       in.Slug,
		Phone:      in.Phone,
		Email:      in.Email,
		Active:     true,
		StampCycle: in.StampCycle,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// Get configuración del operador autenticado.
func (uc *TenantUseCase) Get(tenantID string) (*dto.TenantResponse, error) {
	tenant, err := uc.repo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(tenant), nil
}

// Update edición de la configuración (solo owner, vía RBAC del router).
func (uc *TenantUseCase) Update(tenantID string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	tenant, err := uc.repo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		tenant.Name = *in.Name
	}
	if in.Phone != nil {
		tenant.Phone = *in.Phone
	}
	if in.Email != nil {
		tenant.Email = *in.Email
	}
	if in.StampCycle != nil {
		if *in.StampCycle < 0 {
			return nil, domain.ErrInvalidInput
		}
		tenant.StampCycle = *in.StampCycle
	}
	if in.Active != nil {
		tenant.Active = *in.Active
	}
	tenant.UpdatedAt = time.Now()
	if err := uc.repo.Update(tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:         t.ID,
		Name:       t.Name,
		Slug:       t.Slug,
		Phone:      t.Phone,
		Email:      t.Email,
		Active:     t.Active,
		StampCycle: t.StampCycle,
	}
}
