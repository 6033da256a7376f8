package fulfillment

import (
	"context"

	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el cambio de estado y sus
// efectos (inventario, puntos, sincronización de la cita) se confirmen o
// reviertan juntos: nunca queda inventario descontado sin estado avanzado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		appointmentRepo repository.AppointmentRepository,
		customerRepo repository.CustomerRepository,
		vehicleRepo repository.VehicleRepository,
		serviceRepo repository.ServiceRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// NotificationTemplate plantilla de mensaje saliente al cliente.
type NotificationTemplate string

const (
	TemplateOrderReady     NotificationTemplate = "order_ready"
	TemplateOrderDelivered NotificationTemplate = "order_delivered"
	TemplateLowStock       NotificationTemplate = "low_stock"
)

// NotificationDispatcher envío saliente best-effort, dirigido por teléfono y
// plantilla. Los fallos se registran y se tragan: la corrección del flujo no
// depende de que el mensaje llegue, y nunca bloquean la transición que los
// disparó.
type NotificationDispatcher interface {
	Send(ctx context.Context, toPhone string, template NotificationTemplate, vars map[string]string) error
}
