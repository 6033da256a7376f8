package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavapro/lavapro-api/internal/application/booking"
	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para el flujo de reservas
// ──────────────────────────────────────────────────────────────────────────────

type fakeTenantRepo struct {
	bySlug map[string]*entity.Tenant
}

func (r *fakeTenantRepo) Create(t *entity.Tenant) error          { return nil }
func (r *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	for _, t := range r.bySlug {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}
func (r *fakeTenantRepo) GetBySlug(slug string) (*entity.Tenant, error) {
	return r.bySlug[slug], nil
}
func (r *fakeTenantRepo) ListActive() ([]*entity.Tenant, error) { return nil, nil }
func (r *fakeTenantRepo) Update(t *entity.Tenant) error         { return nil }

type fakeServiceRepo struct {
	services map[string]*entity.Service // por ID
}

func (r *fakeServiceRepo) Create(s *entity.Service, c []entity.ServiceConsumption) error { return nil }
func (r *fakeServiceRepo) GetByID(tenantID, id string) (*entity.Service, error) {
	s, ok := r.services[id]
	if !ok || s.TenantID != tenantID {
		return nil, nil
	}
	return s, nil
}
func (r *fakeServiceRepo) GetByIDs(tenantID string, ids []string) ([]*entity.Service, error) {
	out := make([]*entity.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.services[id]; ok && s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *fakeServiceRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Service, error) {
	out := make([]*entity.Service, 0)
	for _, s := range r.services {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *fakeServiceRepo) Update(s *entity.Service, c []entity.ServiceConsumption) error { return nil }
func (r *fakeServiceRepo) Delete(tenantID, id string) error                              { return nil }
func (r *fakeServiceRepo) ConsumptionByService(serviceID string) ([]entity.ServiceConsumption, error) {
	return nil, nil
}

type fakeAppointmentRepo struct {
	appts map[string]*entity.Appointment
	items map[string][]entity.AppointmentItem
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appts: make(map[string]*entity.Appointment),
		items: make(map[string][]entity.AppointmentItem),
	}
}

func (r *fakeAppointmentRepo) Create(a *entity.Appointment, items []entity.AppointmentItem) error {
	cp := *a
	r.appts[a.ID] = &cp
	r.items[a.ID] = items
	return nil
}
func (r *fakeAppointmentRepo) GetByID(tenantID, id string) (*entity.Appointment, error) {
	a, ok := r.appts[id]
	if !ok || a.TenantID != tenantID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}
func (r *fakeAppointmentRepo) GetForUpdate(tenantID, id string) (*entity.Appointment, error) {
	return r.GetByID(tenantID, id)
}
func (r *fakeAppointmentRepo) ListByTenant(tenantID string, status entity.AppointmentStatus, limit, offset int) ([]*entity.Appointment, error) {
	out := make([]*entity.Appointment, 0)
	for _, a := range r.appts {
		if a.TenantID != tenantID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}
func (r *fakeAppointmentRepo) UpdateStatus(tenantID, id string, status entity.AppointmentStatus, cancelReason string) error {
	a, ok := r.appts[id]
	if !ok || a.TenantID != tenantID {
		return domain.ErrNotFound
	}
	a.Status = status
	a.CancelReason = cancelReason
	a.UpdatedAt = time.Now()
	return nil
}
func (r *fakeAppointmentRepo) SetLinkedOrder(tenantID, id, orderID string) error {
	a, ok := r.appts[id]
	if !ok || a.TenantID != tenantID {
		return domain.ErrNotFound
	}
	a.LinkedOrderID = orderID
	return nil
}
func (r *fakeAppointmentRepo) ItemsByAppointment(appointmentID string) ([]entity.AppointmentItem, error) {
	return r.items[appointmentID], nil
}

func buildBookingUC() (*booking.PublicBookingUseCase, *fakeAppointmentRepo) {
	tenants := &fakeTenantRepo{bySlug: map[string]*entity.Tenant{
		"lavadero-centro": {ID: "tenant-1", Name: "Lavadero Centro", Slug: "lavadero-centro", Active: true, StampCycle: 10},
		"lavadero-cerrado": {ID: "tenant-9", Name: "Lavadero Cerrado", Slug: "lavadero-cerrado", Active: false, StampCycle: 10},
	}}
	services := &fakeServiceRepo{services: map[string]*entity.Service{
		"svc-1": {ID: "svc-1", TenantID: "tenant-1", Name: "Lavado completo", Price: decimal.NewFromInt(150), EstimatedMinutes: 45},
		"svc-2": {ID: "svc-2", TenantID: "tenant-1", Name: "Encerado", Price: decimal.NewFromInt(80), EstimatedMinutes: 30},
	}}
	appts := newFakeAppointmentRepo()
	return booking.NewPublicBookingUseCase(tenants, appts, services), appts
}

func validAppointmentRequest() dto.CreateAppointmentRequest {
	return dto.CreateAppointmentRequest{
		CustomerName:  "María López",
		CustomerPhone: "+5511988887777",
		VehiclePlate:  "ABC1234",
		VehicleModel:  "Gol",
		ServiceIDs:    []string{"svc-1", "svc-2"},
		ScheduledAt:   time.Now().Add(24 * time.Hour),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del flujo público de reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestListServices_CatalogoPublico(t *testing.T) {
	uc, _ := buildBookingUC()

	out, err := uc.ListServices("lavadero-centro")
	require.NoError(t, err)
	assert.Len(t, out, 2, "el catálogo debe listar los dos servicios del operador")
}

func TestListServices_SlugInexistente_NotFound(t *testing.T) {
	uc, _ := buildBookingUC()

	_, err := uc.ListServices("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListServices_OperadorInactivo_Falla(t *testing.T) {
	uc, _ := buildBookingUC()

	_, err := uc.ListServices("lavadero-cerrado")
	assert.ErrorIs(t, err, domain.ErrTenantUnavailable,
		"un operador desactivado no debe exponer su catálogo")
}

func TestCreateAppointment_ReservaQuedaPendiente(t *testing.T) {
	uc, appts := buildBookingUC()

	out, err := uc.CreateAppointment(context.Background(), "lavadero-centro", validAppointmentRequest())
	require.NoError(t, err)

	assert.Equal(t, string(entity.AppointmentStatusPending), out.Status,
		"toda reserva nueva nace en PENDING")
	assert.Equal(t, "tenant-1", out.TenantID)
	assert.ElementsMatch(t, []string{"svc-1", "svc-2"}, out.ServiceIDs)

	stored, err := appts.GetByID("tenant-1", out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored, "la cita debe quedar persistida")
	assert.Equal(t, "María López", stored.CustomerName)
}

func TestCreateAppointment_SinServicios_Falla(t *testing.T) {
	uc, _ := buildBookingUC()

	in := validAppointmentRequest()
	in.ServiceIDs = nil
	_, err := uc.CreateAppointment(context.Background(), "lavadero-centro", in)
	assert.ErrorIs(t, err, domain.ErrNoServicesSelected)
}

func TestCreateAppointment_ServicioAjeno_Falla(t *testing.T) {
	uc, _ := buildBookingUC()

	in := validAppointmentRequest()
	in.ServiceIDs = []string{"svc-1", "svc-de-otro-tenant"}
	_, err := uc.CreateAppointment(context.Background(), "lavadero-centro", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"pedir un servicio que no existe en el catálogo debe rechazarse")
}

func TestCreateAppointment_FechaPasada_Falla(t *testing.T) {
	uc, _ := buildBookingUC()

	in := validAppointmentRequest()
	in.ScheduledAt = time.Now().Add(-time.Hour)
	_, err := uc.CreateAppointment(context.Background(), "lavadero-centro", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateAppointment_DatosIncompletos_Falla(t *testing.T) {
	uc, _ := buildBookingUC()

	in := validAppointmentRequest()
	in.CustomerPhone = ""
	_, err := uc.CreateAppointment(context.Background(), "lavadero-centro", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de citas del staff (sin conversión: los estados que no son IN_PROGRESS
// nunca tocan el convertidor)
// ──────────────────────────────────────────────────────────────────────────────

func seedStaffAppointment(appts *fakeAppointmentRepo) *entity.Appointment {
	appt := &entity.Appointment{
		ID:            "appt-1",
		TenantID:      "tenant-1",
		CustomerName:  "María López",
		CustomerPhone: "+5511988887777",
		VehiclePlate:  "ABC1234",
		ScheduledAt:   time.Now().Add(2 * time.Hour),
		Status:        entity.AppointmentStatusPending,
	}
	_ = appts.Create(appt, []entity.AppointmentItem{{ID: "item-1", AppointmentID: "appt-1", ServiceID: "svc-1"}})
	return appt
}

func TestPatchStatus_CancelaConMotivo(t *testing.T) {
	appts := newFakeAppointmentRepo()
	seedStaffAppointment(appts)
	uc := booking.NewAppointmentUseCase(appts, nil)

	out, err := uc.PatchStatus(context.Background(), "tenant-1", "appt-1", dto.PatchAppointmentRequest{
		Status:       "CANCELED",
		CancelReason: "cliente no se presentó",
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.AppointmentStatusCanceled), out.Status)
	assert.Equal(t, "cliente no se presentó", out.CancelReason,
		"el motivo de cancelación debe quedar registrado")
}

func TestPatchStatus_EstadoInvalido_Falla(t *testing.T) {
	appts := newFakeAppointmentRepo()
	seedStaffAppointment(appts)
	uc := booking.NewAppointmentUseCase(appts, nil)

	_, err := uc.PatchStatus(context.Background(), "tenant-1", "appt-1", dto.PatchAppointmentRequest{Status: "VOLANDO"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestPatchStatus_CitaDeOtroTenant_NotFound(t *testing.T) {
	appts := newFakeAppointmentRepo()
	seedStaffAppointment(appts)
	uc := booking.NewAppointmentUseCase(appts, nil)

	_, err := uc.PatchStatus(context.Background(), "tenant-2", "appt-1", dto.PatchAppointmentRequest{Status: "CANCELED"})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"otra cuenta no debe poder distinguir una cita ajena de una inexistente")
}

func TestList_FiltraPorEstado(t *testing.T) {
	appts := newFakeAppointmentRepo()
	seedStaffAppointment(appts)
	_ = appts.Create(&entity.Appointment{
		ID: "appt-2", TenantID: "tenant-1", CustomerName: "Juan", CustomerPhone: "+5511911112222",
		VehiclePlate: "XYZ9876", ScheduledAt: time.Now().Add(3 * time.Hour),
		Status: entity.AppointmentStatusCanceled,
	}, nil)
	uc := booking.NewAppointmentUseCase(appts, nil)

	out, err := uc.List("tenant-1", "PENDING", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "solo debe listar las citas PENDING")
	assert.Equal(t, "appt-1", out.Items[0].ID)

	all, err := uc.List("tenant-1", "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2, "sin filtro deben venir las dos citas")
}

func TestList_EstadoInvalido_Falla(t *testing.T) {
	uc := booking.NewAppointmentUseCase(newFakeAppointmentRepo(), nil)

	_, err := uc.List("tenant-1", "CUALQUIERA", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
