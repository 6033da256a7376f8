package dto

// CreateVehicleRequest alta de vehículo bajo un cliente.
type CreateVehicleRequest struct {
	CustomerID string `json:"customer_id"`
	Plate      string `json:"plate"`
	Model      string `json:"model"`
	Color      string `json:"color"`
}

// UpdateVehicleRequest edición de vehículo.
type UpdateVehicleRequest struct {
	Model *string `json:"model"`
	Color *string `json:"color"`
}

// VehicleResponse vehículo.
type VehicleResponse struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenant_id"`
	CustomerID string `json:"customer_id"`
	Plate      string `json:"plate"`
	Model      string `json:"model"`
	Color      string `json:"color,omitempty"`
}
