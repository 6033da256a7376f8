package fulfillment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// ConvertAppointmentUseCase materializa Customer + Vehicle + ServiceOrder a
// partir de una cita cuando el staff la pasa a IN_PROGRESS. La conversión es
// idempotente: una cita con LinkedOrderID ya asignado devuelve la orden
// existente, nunca un duplicado.
type ConvertAppointmentUseCase struct {
	txRunner   TxRunner
	tenantRepo repository.TenantRepository
}

// NewConvertAppointmentUseCase construye el caso de uso.
func NewConvertAppointmentUseCase(txRunner TxRunner, tenantRepo repository.TenantRepository) *ConvertAppointmentUseCase {
	return &ConvertAppointmentUseCase{txRunner: txRunner, tenantRepo: tenantRepo}
}

// Convert garantiza que exista exactamente una orden para la cita:
//  1. find-or-create del cliente (clave de dedup: email O teléfono)
//  2. find-or-create del vehículo (clave: placa)
//  3. consecutivo atómico por tenant
//  4. snapshot de precios y estimación de entrega
//  5. orden en WASHING (la cita ya está "en curso" por definición)
//
// Todo bajo el lock de la fila de la cita, en una sola transacción.
func (uc *ConvertAppointmentUseCase) Convert(ctx context.Context, tenantID, appointmentID string) (*dto.OrderResponse, error) {
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || !tenant.Active {
		return nil, domain.ErrTenantUnavailable
	}

	var out *dto.OrderResponse
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		appointmentRepo repository.AppointmentRepository,
		customerRepo repository.CustomerRepository,
		vehicleRepo repository.VehicleRepository,
		serviceRepo repository.ServiceRepository,
		_ repository.ProductRepository,
	) error {
		appt, err := appointmentRepo.GetForUpdate(tenantID, appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return domain.ErrNotFound
		}

		// Reintento o doble submit: la orden ya existe, devolverla sin tocar nada.
		if appt.LinkedOrderID != "" {
			existing, err := orderRepo.GetByID(tenantID, appt.LinkedOrderID)
			if err != nil {
				return err
			}
			if existing == nil {
				return domain.ErrNotFound
			}
			items, err := orderRepo.ItemsByOrder(existing.ID)
			if err != nil {
				return err
			}
			out = toOrderResponse(existing, items)
			return nil
		}

		apptItems, err := appointmentRepo.ItemsByAppointment(appt.ID)
		if err != nil {
			return err
		}
		serviceIDs := make([]string, 0, len(apptItems))
		for _, it := range apptItems {
			serviceIDs = append(serviceIDs, it.ServiceID)
		}
		services, err := serviceRepo.GetByIDs(tenantID, serviceIDs)
		if err != nil {
			return err
		}
		if len(services) == 0 {
			return domain.ErrNoServicesSelected
		}
		// Servicios que dejaron de existir no se descartan en silencio.
		if len(services) != len(serviceIDs) {
			return domain.ErrInvalidInput
		}

		customer, err := customerRepo.FindByEmailOrPhone(tenantID, appt.CustomerEmail, appt.CustomerPhone)
		if err != nil {
			return err
		}
		now := time.Now()
		if customer == nil {
			customer = &entity.Customer{
				ID:        uuid.New().String(),
				TenantID:  tenantID,
				Name:      appt.CustomerName,
				Phone:     appt.CustomerPhone,
				Email:     appt.CustomerEmail,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := customerRepo.Create(customer); err != nil {
				return err
			}
		}

		vehicle, err := vehicleRepo.GetByPlate(tenantID, appt.VehiclePlate)
		if err != nil {
			return err
		}
		if vehicle == nil {
			vehicle = &entity.Vehicle{
				ID:         uuid.New().String(),
				TenantID:   tenantID,
				CustomerID: customer.ID,
				Plate:      appt.VehiclePlate,
				Model:      appt.VehicleModel,
				Color:      appt.VehicleColor,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := vehicleRepo.Create(vehicle); err != nil {
				return err
			}
		}

		code, err := orderRepo.NextSequentialCode(tenantID)
		if err != nil {
			return err
		}

		order, items := buildOrder(tenantID, code, customer.ID, vehicle.ID, services, now)
		order.Status = entity.OrderStatusWashing
		order.LinkedAppointmentID = appt.ID

		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		if err := appointmentRepo.SetLinkedOrder(tenantID, appt.ID, order.ID); err != nil {
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

// buildOrder arma la orden con el snapshot de precios y la estimación de
// entrega (ahora + suma de minutos estimados de cada servicio).
func buildOrder(tenantID string, code int64, customerID, vehicleID string, services []*entity.Service, now time.Time) (*entity.ServiceOrder, []entity.OrderItem) {
	orderID := uuid.New().String()
	total := decimal.Zero
	minutes := 0
	items := make([]entity.OrderItem, 0, len(services))
	for _, svc := range services {
		items = append(items, entity.OrderItem{
			ID:            uuid.New().String(),
			OrderID:       orderID,
			ServiceID:     svc.ID,
			ServiceName:   svc.Name,
			PriceSnapshot: svc.Price,
		})
		total = total.Add(svc.Price)
		minutes += svc.EstimatedMinutes
	}
	ready := now.Add(time.Duration(minutes) * time.Minute)

	order := &entity.ServiceOrder{
		ID:               orderID,
		TenantID:         tenantID,
		SequentialCode:   code,
		CustomerID:       customerID,
		VehicleID:        vehicleID,
		Status:           entity.OrderStatusAwaiting,
		Total:            total,
		EnteredAt:        now,
		EstimatedReadyAt: &ready,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return order, items
}

// toOrderResponse mapea la entidad al DTO de respuesta.
func toOrderResponse(o *entity.ServiceOrder, items []entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:                  o.ID,
		TenantID:            o.TenantID,
		SequentialCode:      o.SequentialCode,
		CustomerID:          o.CustomerID,
		VehicleID:           o.VehicleID,
		Status:              string(o.Status),
		Observations:        o.Observations,
		Total:               o.Total,
		EnteredAt:           o.EnteredAt,
		EstimatedReadyAt:    o.EstimatedReadyAt,
		CompletedAt:         o.CompletedAt,
		LinkedAppointmentID: o.LinkedAppointmentID,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ServiceID:     it.ServiceID,
			ServiceName:   it.ServiceName,
			PriceSnapshot: it.PriceSnapshot,
		})
	}
	return resp
}
