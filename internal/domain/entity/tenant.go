package entity

import "time"

// Tenant representa un operador de lavadero. Toda entidad del sistema cuelga
// de un tenant y toda consulta debe filtrar por TenantID.
type Tenant struct {
	ID         string
	Name       string
	Slug       string // identificador público para el flujo de reservas
	Phone      string
	Email      string
	Active     bool
	StampCycle int // largo N del ciclo de carimbos (0 = usar el default de config)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
