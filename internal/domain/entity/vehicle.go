package entity

import "time"

// Vehicle representa un vehículo de un cliente. La placa es única por tenant.
type Vehicle struct {
	ID         string
	TenantID   string
	CustomerID string
	Plate      string
	Model      string
	Color      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
