package repository

import "github.com/lavapro/lavapro-api/internal/domain/entity"

// VehicleRepository puerto de persistencia para vehículos.
type VehicleRepository interface {
	Create(v *entity.Vehicle) error
	GetByID(tenantID, id string) (*entity.Vehicle, error)
	// GetByPlate clave natural de dedup del conversor: placa dentro del tenant.
	GetByPlate(tenantID, plate string) (*entity.Vehicle, error)
	ListByCustomer(tenantID, customerID string) ([]*entity.Vehicle, error)
	Update(v *entity.Vehicle) error
	// Delete falla con domain.ErrConflict si el vehículo sigue referenciado.
	Delete(tenantID, id string) error
}
