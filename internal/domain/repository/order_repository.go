package repository

import "github.com/lavapro/lavapro-api/internal/domain/entity"

// OrderRepository puerto de persistencia para órdenes de servicio.
type OrderRepository interface {
	Create(o *entity.ServiceOrder, items []entity.OrderItem) error
	GetByID(tenantID, id string) (*entity.ServiceOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE). El estado
	// persistido que devuelve es el "previo" autoritativo para decidir
	// checkpoints dentro de la misma transacción que escribe el nuevo.
	GetForUpdate(tenantID, id string) (*entity.ServiceOrder, error)
	GetByAppointment(tenantID, appointmentID string) (*entity.ServiceOrder, error)
	ListByTenant(tenantID string, status entity.OrderStatus, limit, offset int) ([]*entity.ServiceOrder, error)
	Update(o *entity.ServiceOrder) error
	ItemsByOrder(orderID string) ([]entity.OrderItem, error)
	// NextSequentialCode consecutivo por tenant en una sola sentencia atómica
	// sobre la fila contador (nunca leer-max-e-insertar).
	NextSequentialCode(tenantID string) (int64, error)
}
