package fulfillment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavapro/lavapro-api/internal/application/fulfillment"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
)

func newLoyaltyUC(store *memStore) *fulfillment.LoyaltyUseCase {
	return fulfillment.NewLoyaltyUseCase(&fakeCustomerRepo{s: store}, &fakeTenantRepo{s: store}, 10)
}

func seedLoyaltyCustomer(store *memStore, points int) {
	seedTenant(store, testTenantID)
	store.customers["cust-1"] = &entity.Customer{
		ID: "cust-1", TenantID: testTenantID, Name: "María López",
		Phone: "+5511988887777", LoyaltyPoints: points,
	}
}

func TestAddStamp_AvanzaElCiclo(t *testing.T) {
	store := newMemStore()
	seedLoyaltyCustomer(store, 3)
	uc := newLoyaltyUC(store)

	out, err := uc.AddStamp(context.Background(), testTenantID, "cust-1")
	require.NoError(t, err)

	assert.Equal(t, 4, out.Points)
	assert.Equal(t, 4, out.Carimbos)
	assert.False(t, out.Completed)
	assert.Equal(t, "Carimbo agregado: 4 de 10.", out.Message)
}

func TestAddStamp_CierraElCiclo(t *testing.T) {
	store := newMemStore()
	seedLoyaltyCustomer(store, 9)
	uc := newLoyaltyUC(store)

	out, err := uc.AddStamp(context.Background(), testTenantID, "cust-1")
	require.NoError(t, err)

	assert.Equal(t, 10, out.Points)
	assert.Equal(t, 0, out.Carimbos, "al cerrar el ciclo los carimbos visibles vuelven a 0")
	assert.Equal(t, 1, out.Rewards, "un lavado gratis disponible")
	assert.True(t, out.Completed)
	assert.Equal(t, "¡Ciclo completo! El cliente ganó un lavado gratis.", out.Message)
}

func TestAddStamp_RespetaElCicloDelTenant(t *testing.T) {
	store := newMemStore()
	seedLoyaltyCustomer(store, 4)
	store.tenants[testTenantID].StampCycle = 5
	uc := newLoyaltyUC(store)

	out, err := uc.AddStamp(context.Background(), testTenantID, "cust-1")
	require.NoError(t, err)
	assert.True(t, out.Completed, "con ciclo 5, el quinto carimbo cierra el ciclo")
}

func TestRedeem_DescuentaUnCiclo(t *testing.T) {
	store := newMemStore()
	seedLoyaltyCustomer(store, 13)
	uc := newLoyaltyUC(store)

	out, err := uc.Redeem(context.Background(), testTenantID, "cust-1")
	require.NoError(t, err)

	assert.Equal(t, 3, out.Points, "13 - 10 = 3 puntos restantes")
	assert.Equal(t, "Canje realizado: un lavado gratis.", out.Message)
}

func TestRedeem_SaldoInsuficiente_Falla(t *testing.T) {
	store := newMemStore()
	seedLoyaltyCustomer(store, 7)
	uc := newLoyaltyUC(store)

	_, err := uc.Redeem(context.Background(), testTenantID, "cust-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
	assert.Equal(t, 7, store.customers["cust-1"].LoyaltyPoints,
		"el canje fallido no toca el saldo")
}

func TestLoyalty_ClienteDeOtroTenant_NotFound(t *testing.T) {
	store := newMemStore()
	seedLoyaltyCustomer(store, 5)
	seedTenant(store, otherTenantID)
	uc := newLoyaltyUC(store)

	_, err := uc.AddStamp(context.Background(), otherTenantID, "cust-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
