package repository

import "github.com/lavapro/lavapro-api/internal/domain/entity"

// CustomerRepository puerto de persistencia para clientes.
// Todas las consultas filtran por tenantID; un ID de otro tenant se comporta
// como inexistente.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(tenantID, id string) (*entity.Customer, error)
	// FindByEmailOrPhone busca por la clave natural de dedup del conversor:
	// email O teléfono dentro del tenant. Email vacío no matchea.
	FindByEmailOrPhone(tenantID, email, phone string) (*entity.Customer, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error)
	Update(c *entity.Customer) error
	// Delete falla con domain.ErrConflict si el cliente sigue referenciado
	// por órdenes o citas.
	Delete(tenantID, id string) error
	// AddPoints incrementa el saldo de forma atómica y devuelve el saldo nuevo.
	AddPoints(tenantID, id string, delta int) (int, error)
	// RedeemPoints descuenta n puntos solo si el saldo alcanza (update
	// condicional); devuelve el saldo nuevo o domain.ErrInsufficientPoints.
	RedeemPoints(tenantID, id string, n int) (int, error)
}
