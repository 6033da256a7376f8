package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// VehicleUseCase CRUD de vehículos.
type VehicleUseCase struct {
	repo         repository.VehicleRepository
	customerRepo repository.CustomerRepository
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository, customerRepo repository.CustomerRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, customerRepo: customerRepo}
}

// Create crea un vehículo bajo un cliente del tenant. Placa única por tenant.
func (uc *VehicleUseCase) Create(tenantID string, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if in.CustomerID == "" || in.Plate == "" || in.Model == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(tenantID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.repo.GetByPlate(tenantID, in.Plate)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CustomerID: in.CustomerID,
		Plate:      in.Plate,
		Model:      in.Model,
		Color:      in.Color,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// ListByCustomer vehículos de un cliente.
func (uc *VehicleUseCase) ListByCustomer(tenantID, customerID string) ([]*dto.VehicleResponse, error) {
	vehicles, err := uc.repo.ListByCustomer(tenantID, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	return out, nil
}

// Update edita modelo/color. La placa y el dueño no cambian.
func (uc *VehicleUseCase) Update(tenantID, id string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	if in.Model != nil {
		vehicle.Model = *in.Model
	}
	if in.Color != nil {
		vehicle.Color = *in.Color
	}
	vehicle.UpdatedAt = time.Now()
	if err := uc.repo.Update(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// Delete elimina el vehículo; ErrConflict si sigue referenciado por órdenes.
func (uc *VehicleUseCase) Delete(tenantID, id string) error {
	vehicle, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(tenantID, id)
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:         v.ID,
		TenantID:   v.TenantID,
		CustomerID: v.CustomerID,
		Plate:      v.Plate,
		Model:      v.Model,
		Color:      v.Color,
	}
}
