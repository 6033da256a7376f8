package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo consumible (shampoo, cera, paños).
// Quantity puede ser fraccionaria y puede quedar negativa: el descuento de
// inventario no reserva ni valida stock, un negativo es señal operativa
// para el barrido de reposición.
type Product struct {
	ID           string
	TenantID     string
	Name         string
	Quantity     decimal.Decimal
	ReorderPoint decimal.Decimal
	Unit         string // "ml", "l", "un", ...
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
