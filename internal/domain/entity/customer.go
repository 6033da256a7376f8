package entity

import "time"

// Customer representa un cliente del tenant.
// LoyaltyPoints es el saldo acumulado del programa de fidelidad; los carimbos
// visibles se derivan con points mod N (ver internal/domain/loyalty).
type Customer struct {
	ID            string
	TenantID      string
	Name          string
	Phone         string
	Email         string
	LoyaltyPoints int
	MonthlyPlan   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
