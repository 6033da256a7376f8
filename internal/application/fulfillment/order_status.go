package fulfillment

import (
	"context"
	"fmt"
	"time"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/loyalty"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
	"github.com/lavapro/lavapro-api/pkg/logger"
)

// UpdateOrderStatusUseCase la máquina de estados de la orden. Acepta cualquier
// estado destino (el Kanban permite arrastres arbitrarios) pero aplica los
// efectos de checkpoint solo en la primera entrada a cada estado, decidida
// contra el estado persistido bajo lock dentro de la misma transacción que
// escribe el nuevo:
//
//	FINISHING  -> descuenta el consumo de insumos de la orden
//	READY      -> notifica "orden lista" al cliente
//	DELIVERED  -> sella completedAt, acredita floor(total/10) puntos y agradece
//
// Las notificaciones salen después del commit y sus fallos se tragan.
type UpdateOrderStatusUseCase struct {
	txRunner   TxRunner
	dispatcher NotificationDispatcher
	log        *logger.Logger
}

// NewUpdateOrderStatusUseCase construye el caso de uso.
func NewUpdateOrderStatusUseCase(txRunner TxRunner, dispatcher NotificationDispatcher, log *logger.Logger) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{txRunner: txRunner, dispatcher: dispatcher, log: log}
}

// pendingNotice notificación encolada durante la tx, enviada tras el commit.
type pendingNotice struct {
	phone    string
	template NotificationTemplate
	vars     map[string]string
}

// UpdateStatus aplica el patch de estado. Re-enviar el mismo estado es no-op
// para los efectos pero persiste los demás campos (observaciones).
func (uc *UpdateOrderStatusUseCase) UpdateStatus(ctx context.Context, tenantID, orderID string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	next, ok := entity.ParseOrderStatus(in.Status)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}

	var out *dto.OrderResponse
	var notices []pendingNotice

	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		appointmentRepo repository.AppointmentRepository,
		customerRepo repository.CustomerRepository,
		_ repository.VehicleRepository,
		serviceRepo repository.ServiceRepository,
		productRepo repository.ProductRepository,
	) error {
		order, err := orderRepo.GetForUpdate(tenantID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			// Inexistente o de otro tenant: indistinguibles a propósito.
			return domain.ErrNotFound
		}
		prev := order.Status
		now := time.Now()

		if in.Observations != nil {
			order.Observations = *in.Observations
		}

		items, err := orderRepo.ItemsByOrder(order.ID)
		if err != nil {
			return err
		}

		if entity.EntersCheckpoint(prev, next, entity.OrderStatusFinishing) {
			if err := uc.applyConsumption(tenantID, items, serviceRepo, productRepo); err != nil {
				return err
			}
		}

		if entity.EntersCheckpoint(prev, next, entity.OrderStatusReady) {
			customer, err := customerRepo.GetByID(tenantID, order.CustomerID)
			if err != nil {
				return err
			}
			if customer != nil && customer.Phone != "" {
				notices = append(notices, pendingNotice{
					phone:    customer.Phone,
					template: TemplateOrderReady,
					vars: map[string]string{
						"name": customer.Name,
						"code": fmt.Sprintf("%d", order.SequentialCode),
					},
				})
			}
		}

		if entity.EntersCheckpoint(prev, next, entity.OrderStatusDelivered) {
			order.CompletedAt = &now
			earned := loyalty.PointsForSpend(order.Total)
			customer, err := customerRepo.GetByID(tenantID, order.CustomerID)
			if err != nil {
				return err
			}
			if customer != nil {
				points := customer.LoyaltyPoints
				if earned > 0 {
					points, err = customerRepo.AddPoints(tenantID, customer.ID, earned)
					if err != nil {
						return err
					}
				}
				if customer.Phone != "" {
					notices = append(notices, pendingNotice{
						phone:    customer.Phone,
						template: TemplateOrderDelivered,
						vars: map[string]string{
							"name":   customer.Name,
							"earned": fmt.Sprintf("%d", earned),
							"points": fmt.Sprintf("%d", points),
						},
					})
				}
			}
		}

		order.Status = next
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		if err := uc.syncAppointment(tenantID, order, appointmentRepo); err != nil {
			return err
		}

		out = toOrderResponse(order, items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ctx, notices)
	return out, nil
}

// syncAppointment propaga el estado de la orden a su cita de origen con la
// tabla fija orden→cita, escribiendo solo si el estado realmente cambia.
func (uc *UpdateOrderStatusUseCase) syncAppointment(tenantID string, order *entity.ServiceOrder, appointmentRepo repository.AppointmentRepository) error {
	if order.LinkedAppointmentID == "" {
		return nil
	}
	mapped, ok := entity.AppointmentStatusFor(order.Status)
	if !ok {
		return nil
	}
	appt, err := appointmentRepo.GetByID(tenantID, order.LinkedAppointmentID)
	if err != nil {
		return err
	}
	if appt == nil || appt.Status == mapped {
		return nil
	}
	return appointmentRepo.UpdateStatus(tenantID, appt.ID, mapped, appt.CancelReason)
}

// dispatch envía las notificaciones encoladas. Best-effort: error → log y seguir.
func (uc *UpdateOrderStatusUseCase) dispatch(ctx context.Context, notices []pendingNotice) {
	for _, n := range notices {
		if err := uc.dispatcher.Send(ctx, n.phone, n.template, n.vars); err != nil {
			uc.log.Error().Err(err).
				Str("template", string(n.template)).
				Msg("envío de notificación falló")
		}
	}
}
