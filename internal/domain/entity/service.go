package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service representa un servicio del catálogo (lavado simple, encerado, etc.).
// El precio vigente se congela en el OrderItem al crear la orden; cambios
// posteriores de precio o receta no afectan órdenes abiertas.
type Service struct {
	ID               string
	TenantID         string
	Name             string
	Price            decimal.Decimal
	EstimatedMinutes int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ServiceConsumption línea de la receta de consumo de un servicio:
// cuánto producto gasta una ejecución del servicio.
type ServiceConsumption struct {
	ServiceID string
	ProductID string
	Quantity  decimal.Decimal
}
