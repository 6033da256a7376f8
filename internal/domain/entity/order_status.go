package entity

// OrderStatus estado de una orden de servicio dentro del flujo de cumplimiento.
type OrderStatus string

// Flujo nominal: AWAITING → WASHING → FINISHING → READY → DELIVERED.
// El tablero Kanban permite arrastrar a cualquier estado; los efectos de
// checkpoint se disparan solo en la primera entrada a cada estado.
const (
	OrderStatusAwaiting  OrderStatus = "AWAITING"
	OrderStatusWashing   OrderStatus = "WASHING"
	OrderStatusFinishing OrderStatus = "FINISHING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// orderStatusRank posición de cada estado en el flujo nominal.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusAwaiting:  0,
	OrderStatusWashing:   1,
	OrderStatusFinishing: 2,
	OrderStatusReady:     3,
	OrderStatusDelivered: 4,
}

// ParseOrderStatus valida un estado recibido por la API.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	_, ok := orderStatusRank[st]
	return st, ok
}

// EntersCheckpoint indica si el cambio prev→next constituye la primera entrada
// al estado checkpoint: next es exactamente ese estado y prev está estrictamente
// antes en el flujo. Re-enviar el mismo estado, o retroceder una tarjeta y
// volver a avanzarla, no vuelve a disparar el efecto.
func EntersCheckpoint(prev, next, checkpoint OrderStatus) bool {
	if next != checkpoint {
		return false
	}
	return orderStatusRank[prev] < orderStatusRank[checkpoint]
}

// AppointmentStatus estado de una cita (reserva hecha por el cliente final).
type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed  AppointmentStatus = "CONFIRMED"
	AppointmentStatusInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusCompleted  AppointmentStatus = "COMPLETED"
	AppointmentStatusCanceled   AppointmentStatus = "CANCELED"
)

// ParseAppointmentStatus valida un estado de cita recibido por la API.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch st := AppointmentStatus(s); st {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCanceled:
		return st, true
	}
	return "", false
}

// orderToAppointment tabla fija de sincronización orden→cita. Explícita y
// exhaustiva a propósito: la sincronización es un mapeo auditable, no un if.
var orderToAppointment = map[OrderStatus]AppointmentStatus{
	OrderStatusAwaiting:  AppointmentStatusInProgress,
	OrderStatusWashing:   AppointmentStatusInProgress,
	OrderStatusFinishing: AppointmentStatusInProgress,
	OrderStatusReady:     AppointmentStatusCompleted,
	OrderStatusDelivered: AppointmentStatusCompleted,
}

// AppointmentStatusFor devuelve el estado de cita que corresponde a un estado
// de orden. ok=false significa "sin cambio" (el estado no propaga a la cita).
func AppointmentStatusFor(s OrderStatus) (AppointmentStatus, bool) {
	st, ok := orderToAppointment[s]
	return st, ok
}
