package fulfillment

import (
	"context"
	"time"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// CreateOrderUseCase crea una orden directa (vehículo que llega sin cita).
// Comparte con el conversor el consecutivo atómico y el snapshot de precios;
// arranca en AWAITING en vez de WASHING.
type CreateOrderUseCase struct {
	txRunner TxRunner
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(txRunner TxRunner) *CreateOrderUseCase {
	return &CreateOrderUseCase{txRunner: txRunner}
}

// Create valida cliente, vehículo y servicios del tenant y persiste la orden
// con su consecutivo en una sola transacción.
func (uc *CreateOrderUseCase) Create(ctx context.Context, tenantID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerID == "" || in.VehicleID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.ServiceIDs) == 0 {
		return nil, domain.ErrNoServicesSelected
	}

	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.AppointmentRepository,
		customerRepo repository.CustomerRepository,
		vehicleRepo repository.VehicleRepository,
		serviceRepo repository.ServiceRepository,
		_ repository.ProductRepository,
	) error {
		customer, err := customerRepo.GetByID(tenantID, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		vehicle, err := vehicleRepo.GetByID(tenantID, in.VehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return domain.ErrNotFound
		}
		if vehicle.CustomerID != customer.ID {
			return domain.ErrInvalidInput
		}

		services, err := serviceRepo.GetByIDs(tenantID, in.ServiceIDs)
		if err != nil {
			return err
		}
		if len(services) == 0 {
			return domain.ErrNoServicesSelected
		}
		if len(services) != len(in.ServiceIDs) {
			return domain.ErrInvalidInput
		}

		code, err := orderRepo.NextSequentialCode(tenantID)
		if err != nil {
			return err
		}

		now := time.Now()
		order, items := buildOrder(tenantID, code, customer.ID, vehicle.ID, services, now)
		order.Status = entity.OrderStatusAwaiting
		order.Observations = in.Observations

		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		out = toOrderResponse(order, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
