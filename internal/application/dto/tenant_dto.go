package dto

// CreateTenantRequest alta de operador (signup público).
type CreateTenantRequest struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	StampCycle int    `json:"stamp_cycle"` // 0 = default
}

// UpdateTenantRequest edición de la configuración del operador (solo owner).
type UpdateTenantRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	StampCycle *int    `json:"stamp_cycle"`
	Active     *bool   `json:"active"`
}

// TenantResponse operador.
type TenantResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Active     bool   `json:"active"`
	StampCycle int    `json:"stamp_cycle"`
}
