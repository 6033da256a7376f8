package fulfillment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavapro/lavapro-api/internal/application/fulfillment"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
)

const (
	testTenantID  = "tenant-1"
	otherTenantID = "tenant-2"
)

// seedTenant taller activo con ciclo de carimbos default.
func seedTenant(s *memStore, id string) {
	s.tenants[id] = &entity.Tenant{
		ID:         id,
		Name:       "Lavadero Central",
		Slug:       "lavadero-central",
		Phone:      "+5511999990000",
		Active:     true,
		StampCycle: 10,
	}
}

// seedService servicio con precio y duración.
func seedService(s *memStore, id string, price int64, minutes int) {
	s.services[id] = &entity.Service{
		ID:               id,
		TenantID:         testTenantID,
		Name:             "Servicio " + id,
		Price:            decimal.NewFromInt(price),
		EstimatedMinutes: minutes,
	}
}

// seedAppointment cita PENDING con los servicios indicados.
func seedAppointment(s *memStore, id string, serviceIDs ...string) *entity.Appointment {
	a := &entity.Appointment{
		ID:            id,
		TenantID:      testTenantID,
		CustomerName:  "María López",
		CustomerPhone: "+5511988887777",
		CustomerEmail: "maria@example.com",
		VehiclePlate:  "ABC1234",
		VehicleModel:  "Onix",
		VehicleColor:  "Rojo",
		ScheduledAt:   time.Now().Add(time.Hour),
		Status:        entity.AppointmentStatusPending,
	}
	s.appointments[id] = a
	items := make([]entity.AppointmentItem, 0, len(serviceIDs))
	for i, svcID := range serviceIDs {
		items = append(items, entity.AppointmentItem{
			ID:            a.ID + "-item-" + string(rune('a'+i)),
			AppointmentID: a.ID,
			ServiceID:     svcID,
		})
	}
	s.apptItems[id] = items
	return a
}

func TestConvert_CreaOrdenConSnapshotYConsecutivo(t *testing.T) {
	store := newMemStore()
	seedTenant(store, testTenantID)
	seedService(store, "svc-1", 50, 30)
	seedService(store, "svc-2", 100, 45)
	seedAppointment(store, "appt-1", "svc-1", "svc-2")

	uc := fulfillment.NewConvertAppointmentUseCase(&fakeTxRunner{store: store}, &fakeTenantRepo{s: store})

	out, err := uc.Convert(context.Background(), testTenantID, "appt-1")
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, int64(1), out.SequentialCode, "primera orden del tenant debe ser #1")
	assert.Equal(t, string(entity.OrderStatusWashing), out.Status,
		"la orden convertida nace en WASHING, la cita ya está en curso")
	assert.True(t, decimal.NewFromInt(150).Equal(out.Total), "total = suma de precios congelados")
	assert.Len(t, out.Items, 2)
	require.NotNil(t, out.EstimatedReadyAt)
	assert.Equal(t, "appt-1", out.LinkedAppointmentID)

	// Cliente y vehículo materializados a partir de los datos de la cita.
	assert.Len(t, store.customers, 1, "debe crearse exactamente un cliente")
	assert.Len(t, store.vehicles, 1, "debe crearse exactamente un vehículo")
	assert.Equal(t, out.ID, store.appointments["appt-1"].LinkedOrderID,
		"la cita queda vinculada a la orden")
}

func TestConvert_ReutilizaClienteYVehiculoExistentes(t *testing.T) {
	store := newMemStore()
	seedTenant(store, testTenantID)
	seedService(store, "svc-1", 50, 30)
	seedAppointment(store, "appt-1", "svc-1")

	// Cliente preexistente con el mismo teléfono y vehículo con la misma placa.
	store.customers["cust-1"] = &entity.Customer{
		ID: "cust-1", TenantID: testTenantID, Name: "María López", Phone: "+5511988887777",
	}
	store.vehicles["veh-1"] = &entity.Vehicle{
		ID: "veh-1", TenantID: testTenantID, CustomerID: "cust-1", Plate: "ABC1234",
	}

	uc := fulfillment.NewConvertAppointmentUseCase(&fakeTxRunner{store: store}, &fakeTenantRepo{s: store})

	out, err := uc.Convert(context.Background(), testTenantID, "appt-1")
	require.NoError(t, err)

	assert.Equal(t, "cust-1", out.CustomerID, "debe reutilizar el cliente por teléfono")
	assert.Equal(t, "veh-1", out.VehicleID, "debe reutilizar el vehículo por placa")
	assert.Len(t, store.customers, 1, "no debe duplicar el cliente")
	assert.Len(t, store.vehicles, 1, "no debe duplicar el vehículo")
}

func TestConvert_EsIdempotente(t *testing.T) {
	store := newMemStore()
	seedTenant(store, testTenantID)
	seedService(store, "svc-1", 50, 30)
	seedAppointment(store, "appt-1", "svc-1")

	uc := fulfillment.NewConvertAppointmentUseCase(&fakeTxRunner{store: store}, &fakeTenantRepo{s: store})

	first, err := uc.Convert(context.Background(), testTenantID, "appt-1")
	require.NoError(t, err)

	second, err := uc.Convert(context.Background(), testTenantID, "appt-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "reconversión debe devolver la misma orden")
	assert.Len(t, store.orders, 1, "jamás debe existir una segunda orden para la cita")
	assert.Equal(t, int64(1), store.counters[testTenantID],
		"el consecutivo no debe avanzar en la reconversión")
}

func TestConvert_SinServicios_Falla(t *testing.T) {
	store := newMemStore()
	seedTenant(store, testTenantID)
	seedAppointment(store, "appt-1") // cita sin servicios

	uc := fulfillment.NewConvertAppointmentUseCase(&fakeTxRunner{store: store}, &fakeTenantRepo{s: store})

	_, err := uc.Convert(context.Background(), testTenantID, "appt-1")
	assert.ErrorIs(t, err, domain.ErrNoServicesSelected)
	assert.Empty(t, store.orders, "no debe crearse ninguna orden")
}

func TestConvert_ServicioEliminado_Falla(t *testing.T) {
	store := newMemStore()
	seedTenant(store, testTenantID)
	seedService(store, "svc-1", 50, 30)
	// "svc-borrado" ya no existe en el catálogo.
	seedAppointment(store, "appt-1", "svc-1", "svc-borrado")

	uc := fulfillment.NewConvertAppointmentUseCase(&fakeTxRunner{store: store}, &fakeTenantRepo{s: store})

	_, err := uc.Convert(context.Background(), testTenantID, "appt-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"servicios faltantes no se descartan en silencio")
}

func TestConvert_TenantInactivo_Falla(t *testing.T) {
	store := newMemStore()
	seedTenant(store, testTenantID)
	store.tenants[testTenantID].Active = false
	seedService(store, "svc-1", 50, 30)
	seedAppointment(store, "appt-1", "svc-1")

	uc := fulfillment.NewConvertAppointmentUseCase(&fakeTxRunner{store: store}, &fakeTenantRepo{s: store})

	_, err := uc.Convert(context.Background(), testTenantID, "appt-1")
	assert.ErrorIs(t, err, domain.ErrTenantUnavailable)
}

func TestConvert_CitaDeOtroTenant_NotFound(t *testing.T) {
	store := newMemStore()
	seedTenant(store, testTenantID)
	seedTenant(store, otherTenantID)
	seedService(store, "svc-1", 50, 30)
	seedAppointment(store, "appt-1", "svc-1") // pertenece a testTenantID

	uc := fulfillment.NewConvertAppointmentUseCase(&fakeTxRunner{store: store}, &fakeTenantRepo{s: store})

	_, err := uc.Convert(context.Background(), otherTenantID, "appt-1")
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"cita de otro tenant debe ser indistinguible de inexistente")
}

// Ejercita el contrato del puerto contra el fake en memoria. En producción la
// garantía no depende de locks en Go: vive en el upsert de una sola sentencia
// (ON CONFLICT .. DO UPDATE .. RETURNING) de postgres.OrderRepo.NextSequentialCode.
func TestNextSequentialCode_ConcurrenciaSinDuplicados(t *testing.T) {
	store := newMemStore()
	repo := &fakeOrderRepo{s: store}

	const goroutines = 50
	codes := make(chan int64, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := repo.NextSequentialCode(testTenantID)
			require.NoError(t, err)
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[int64]bool)
	for code := range codes {
		assert.False(t, seen[code], "código %d repetido", code)
		seen[code] = true
	}
	assert.Len(t, seen, goroutines)
}
