package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOrder representa la orden de servicio: el registro operativo de un
// vehículo físicamente en el lavadero, con su propia máquina de estados.
// SequentialCode es el número visible de la orden, único y monótono por tenant.
type ServiceOrder struct {
	ID                  string
	TenantID            string
	SequentialCode      int64
	CustomerID          string
	VehicleID           string
	Status              OrderStatus
	Observations        string
	Total               decimal.Decimal
	EnteredAt           time.Time
	EstimatedReadyAt    *time.Time
	CompletedAt         *time.Time
	LinkedAppointmentID string // vacío si la orden no nació de una cita
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderItem línea de la orden con el precio del servicio congelado al momento
// de crearla (snapshot). ServiceName se copia para que la orden sobreviva a
// renombres del catálogo.
type OrderItem struct {
	ID            string
	OrderID       string
	ServiceID     string
	ServiceName   string
	PriceSnapshot decimal.Decimal
}
