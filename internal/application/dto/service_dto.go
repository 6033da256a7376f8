package dto

import "github.com/shopspring/decimal"

// ConsumptionLine línea de receta: cuánto insumo gasta el servicio.
type ConsumptionLine struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateServiceRequest alta de servicio en el catálogo.
type CreateServiceRequest struct {
	Name             string            `json:"name"`
	Price            decimal.Decimal   `json:"price"`
	EstimatedMinutes int               `json:"estimated_minutes"`
	Consumption      []ConsumptionLine `json:"consumption"`
}

// UpdateServiceRequest edición de servicio. Consumption nil = no tocar la receta.
type UpdateServiceRequest struct {
	Name             *string           `json:"name"`
	Price            *decimal.Decimal  `json:"price"`
	EstimatedMinutes *int              `json:"estimated_minutes"`
	Consumption      []ConsumptionLine `json:"consumption"`
}

// ServiceResponse servicio del catálogo.
type ServiceResponse struct {
	ID               string            `json:"id"`
	TenantID         string            `json:"tenant_id"`
	Name             string            `json:"name"`
	Price            decimal.Decimal   `json:"price"`
	EstimatedMinutes int               `json:"estimated_minutes"`
	Consumption      []ConsumptionLine `json:"consumption,omitempty"`
}

// PublicServiceResponse vista pública del catálogo (sin receta).
type PublicServiceResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	EstimatedMinutes int             `json:"estimated_minutes"`
}
