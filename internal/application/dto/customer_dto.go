package dto

// CreateCustomerRequest alta directa de cliente (CRUD del staff).
type CreateCustomerRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	MonthlyPlan bool   `json:"monthly_plan"`
}

// UpdateCustomerRequest edición de cliente.
type UpdateCustomerRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	MonthlyPlan *bool   `json:"monthly_plan"`
}

// CustomerResponse cliente con su estado de fidelidad derivado.
type CustomerResponse struct {
	ID            string `json:"id"`
	TenantID      string `json:"tenant_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	MonthlyPlan   bool   `json:"monthly_plan"`
	LoyaltyPoints int    `json:"loyalty_points"`
	Carimbos      int    `json:"carimbos"`
	Rewards       int    `json:"rewards"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []*CustomerResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
