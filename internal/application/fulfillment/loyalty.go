package fulfillment

import (
	"context"
	"fmt"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/loyalty"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// LoyaltyUseCase acciones manuales del staff sobre el programa de carimbos:
// agregar un carimbo por visita o canjear un ciclo completo por un lavado
// gratis. Ambas mutan el saldo con updates atómicos; el chequeo de
// elegibilidad del canje se re-verifica contra el saldo autoritativo en el
// momento del descuento (update condicional), no contra una lectura previa.
type LoyaltyUseCase struct {
	customerRepo repository.CustomerRepository
	tenantRepo   repository.TenantRepository
	defaultCycle int
}

// NewLoyaltyUseCase construye el caso de uso.
func NewLoyaltyUseCase(customerRepo repository.CustomerRepository, tenantRepo repository.TenantRepository, defaultCycle int) *LoyaltyUseCase {
	if defaultCycle <= 0 {
		defaultCycle = loyalty.DefaultCycle
	}
	return &LoyaltyUseCase{customerRepo: customerRepo, tenantRepo: tenantRepo, defaultCycle: defaultCycle}
}

// cycleFor largo del ciclo configurado por el tenant, o el default.
func (uc *LoyaltyUseCase) cycleFor(tenantID string) (int, error) {
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return 0, err
	}
	if tenant == nil {
		return 0, domain.ErrNotFound
	}
	if tenant.StampCycle > 0 {
		return tenant.StampCycle, nil
	}
	return uc.defaultCycle, nil
}

// AddStamp suma un carimbo manual (+1 punto) y reporta el estado del ciclo.
func (uc *LoyaltyUseCase) AddStamp(ctx context.Context, tenantID, customerID string) (*dto.LoyaltyResponse, error) {
	cycle, err := uc.cycleFor(tenantID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	points, err := uc.customerRepo.AddPoints(tenantID, customerID, 1)
	if err != nil {
		return nil, err
	}

	resp := loyaltyState(customerID, points, cycle)
	if resp.Completed {
		resp.Message = "¡Ciclo completo! El cliente ganó un lavado gratis."
	} else {
		resp.Message = fmt.Sprintf("Carimbo agregado: %d de %d.", resp.Carimbos, cycle)
	}
	return resp, nil
}

// Redeem canjea un ciclo completo (N puntos) por un lavado gratis.
// Falla con ErrInsufficientPoints si el saldo no alcanza en el momento del
// descuento, aunque una lectura anterior dijera lo contrario.
func (uc *LoyaltyUseCase) Redeem(ctx context.Context, tenantID, customerID string) (*dto.LoyaltyResponse, error) {
	cycle, err := uc.cycleFor(tenantID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	points, err := uc.customerRepo.RedeemPoints(tenantID, customerID, cycle)
	if err != nil {
		return nil, err
	}

	resp := loyaltyState(customerID, points, cycle)
	resp.Message = "Canje realizado: un lavado gratis."
	return resp, nil
}

// loyaltyState deriva carimbos, premios y cierre de ciclo del saldo.
func loyaltyState(customerID string, points, cycle int) *dto.LoyaltyResponse {
	return &dto.LoyaltyResponse{
		CustomerID: customerID,
		Points:     points,
		Carimbos:   loyalty.Carimbos(points, cycle),
		Rewards:    loyalty.Rewards(points, cycle),
		Completed:  loyalty.CycleCompleted(points, cycle),
	}
}
