package entity

import "time"

// Roles de usuario dentro de un tenant.
// El owner administra equipo y configuración; cualquier rol opera el flujo de órdenes.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// User representa un usuario del sistema (personal del lavadero).
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	Name         string
	Role         string // "owner" | "staff"
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
