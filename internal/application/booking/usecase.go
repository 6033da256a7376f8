package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/application/fulfillment"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// PublicBookingUseCase flujo público de reservas: la vitrina del operador que
// ve el cliente final. No requiere sesión de staff; solo un operador activo.
type PublicBookingUseCase struct {
	tenantRepo      repository.TenantRepository
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.ServiceRepository
}

// NewPublicBookingUseCase construye el caso de uso.
func NewPublicBookingUseCase(
	tenantRepo repository.TenantRepository,
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
) *PublicBookingUseCase {
	return &PublicBookingUseCase{tenantRepo: tenantRepo, appointmentRepo: appointmentRepo, serviceRepo: serviceRepo}
}

// resolveTenant resuelve el slug público a un operador activo.
func (uc *PublicBookingUseCase) resolveTenant(slug string) (*entity.Tenant, error) {
	tenant, err := uc.tenantRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	if !tenant.Active {
		return nil, domain.ErrTenantUnavailable
	}
	return tenant, nil
}

// ListServices catálogo público del operador (sin recetas ni datos internos).
func (uc *PublicBookingUseCase) ListServices(slug string) ([]*dto.PublicServiceResponse, error) {
	tenant, err := uc.resolveTenant(slug)
	if err != nil {
		return nil, err
	}
	services, err := uc.serviceRepo.ListByTenant(tenant.ID, 100, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PublicServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, &dto.PublicServiceResponse{
			ID:               s.ID,
			Name:             s.Name,
			Price:            s.Price,
			EstimatedMinutes: s.EstimatedMinutes,
		})
	}
	return out, nil
}

// CreateAppointment crea la reserva en PENDING. Valida operador activo, fecha
// futura y que todos los servicios pedidos existan en el catálogo.
func (uc *PublicBookingUseCase) CreateAppointment(ctx context.Context, slug string, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tenant, err := uc.resolveTenant(slug)
	if err != nil {
		return nil, err
	}
	if in.CustomerName == "" || in.CustomerPhone == "" || in.VehiclePlate == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.ServiceIDs) == 0 {
		return nil, domain.ErrNoServicesSelected
	}
	if in.ScheduledAt.Before(time.Now()) {
		return nil, domain.ErrInvalidInput
	}

	services, err := uc.serviceRepo.GetByIDs(tenant.ID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, domain.ErrNoServicesSelected
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	appt := &entity.Appointment{
		ID:            uuid.New().String(),
		TenantID:      tenant.ID,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		VehiclePlate:  in.VehiclePlate,
		VehicleModel:  in.VehicleModel,
		VehicleColor:  in.VehicleColor,
		ScheduledAt:   in.ScheduledAt,
		Status:        entity.AppointmentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	items := make([]entity.AppointmentItem, 0, len(in.ServiceIDs))
	for _, sid := range in.ServiceIDs {
		items = append(items, entity.AppointmentItem{
			ID:            uuid.New().String(),
			AppointmentID: appt.ID,
			ServiceID:     sid,
		})
	}
	if err := uc.appointmentRepo.Create(appt, items); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appt, items), nil
}

// AppointmentUseCase operaciones de staff sobre citas: listar y avanzar el
// estado. El paso a IN_PROGRESS dispara la conversión a orden de servicio.
type AppointmentUseCase struct {
	appointmentRepo repository.AppointmentRepository
	converter       *fulfillment.ConvertAppointmentUseCase
}

// NewAppointmentUseCase construye el caso de uso.
func NewAppointmentUseCase(appointmentRepo repository.AppointmentRepository, converter *fulfillment.ConvertAppointmentUseCase) *AppointmentUseCase {
	return &AppointmentUseCase{appointmentRepo: appointmentRepo, converter: converter}
}

// List citas del tenant, con filtro opcional por estado.
func (uc *AppointmentUseCase) List(tenantID, status string, limit, offset int) (*dto.AppointmentListResponse, error) {
	var st entity.AppointmentStatus
	if status != "" {
		parsed, ok := entity.ParseAppointmentStatus(status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		st = parsed
	}
	appts, err := uc.appointmentRepo.ListByTenant(tenantID, st, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.AppointmentListResponse{
		Items: make([]*dto.AppointmentResponse, 0, len(appts)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, a := range appts {
		items, err := uc.appointmentRepo.ItemsByAppointment(a.ID)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, toAppointmentResponse(a, items))
	}
	return out, nil
}

// PatchStatus cambia el estado de la cita. IN_PROGRESS convierte primero
// (idempotente) y solo entonces escribe el estado: si la conversión falla la
// cita no queda "en curso" sin orden.
func (uc *AppointmentUseCase) PatchStatus(ctx context.Context, tenantID, appointmentID string, in dto.PatchAppointmentRequest) (*dto.AppointmentResponse, error) {
	next, ok := entity.ParseAppointmentStatus(in.Status)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}
	appt, err := uc.appointmentRepo.GetByID(tenantID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}

	if next == entity.AppointmentStatusInProgress {
		if _, err := uc.converter.Convert(ctx, tenantID, appointmentID); err != nil {
			return nil, err
		}
	}

	reason := appt.CancelReason
	if next == entity.AppointmentStatusCanceled && in.CancelReason != "" {
		reason = in.CancelReason
	}
	if appt.Status != next || reason != appt.CancelReason {
		if err := uc.appointmentRepo.UpdateStatus(tenantID, appointmentID, next, reason); err != nil {
			return nil, err
		}
	}

	updated, err := uc.appointmentRepo.GetByID(tenantID, appointmentID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.appointmentRepo.ItemsByAppointment(updated.ID)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponse(updated, items), nil
}

// toAppointmentResponse mapea la entidad al DTO.
func toAppointmentResponse(a *entity.Appointment, items []entity.AppointmentItem) *dto.AppointmentResponse {
	resp := &dto.AppointmentResponse{
		ID:            a.ID,
		TenantID:      a.TenantID,
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		CustomerEmail: a.CustomerEmail,
		VehiclePlate:  a.VehiclePlate,
		VehicleModel:  a.VehicleModel,
		VehicleColor:  a.VehicleColor,
		ScheduledAt:   a.ScheduledAt,
		Status:        string(a.Status),
		CancelReason:  a.CancelReason,
		LinkedOrderID: a.LinkedOrderID,
		ServiceIDs:    make([]string, 0, len(items)),
	}
	for _, it := range items {
		resp.ServiceIDs = append(resp.ServiceIDs, it.ServiceID)
	}
	return resp
}
